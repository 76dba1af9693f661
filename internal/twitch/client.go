// Package twitch provides the Twitch Helix adapter for the featured
// pipeline.
//
// This package enables the pipeline to:
// - Fetch a broadcaster's recent broadcast recordings (VODs)
// - Fetch a broadcaster's recent clips
// - Authenticate with a cached app access token
//
// Helix does not report peak concurrent viewers or chat rate for past
// broadcasts; those signals stay zero and the engagement formula falls back
// accordingly.
package twitch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/failsafe-go/failsafe-go"

	"github.com/bigtalents/featured/internal/content"
	"github.com/bigtalents/featured/internal/httpx"
)

const defaultBaseURL = "https://api.twitch.tv"

// TokenProvider supplies a valid app access token per request.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient httpx.Doer) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithBaseURL sets a custom base URL (useful for testing).
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithExecutor overrides the retry/timeout policy.
func WithExecutor(executor failsafe.Executor[*http.Response]) ClientOption {
	return func(c *Client) {
		c.executor = executor
	}
}

// Client is a Twitch Helix API adapter.
type Client struct {
	clientID   string
	tokens     TokenProvider
	baseURL    string
	httpClient httpx.Doer
	executor   failsafe.Executor[*http.Response]
}

// NewClient creates a new Twitch adapter.
func NewClient(clientID string, tokens TokenProvider, opts ...ClientOption) *Client {
	c := &Client{
		clientID:   clientID,
		tokens:     tokens,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{},
		executor:   httpx.NewExecutor(httpx.DefaultExecutorConfig()),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// FetchRecentBroadcasts retrieves a broadcaster's most recent archived
// broadcasts, normalized as broadcast content.
func (c *Client) FetchRecentBroadcasts(ctx context.Context, userID string, limit int) ([]content.Content, error) {
	reqURL := fmt.Sprintf("%s/helix/videos?user_id=%s&first=%d&type=archive&sort=time",
		c.baseURL, url.QueryEscape(userID), limit)

	body, err := c.doRequest(ctx, reqURL)
	if err != nil {
		return nil, err
	}

	var resp videosResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse videos response: %w", err)
	}

	items := make([]content.Content, 0, len(resp.Data))
	for _, v := range resp.Data {
		publishedAt, _ := time.Parse(time.RFC3339, v.PublishedAt)
		items = append(items, content.Content{
			ID:              v.ID,
			Platform:        content.PlatformTwitch,
			Type:            content.TypeBroadcast,
			Title:           v.Title,
			Thumbnail:       renderThumbnail(v.ThumbnailURL),
			URL:             v.URL,
			PublishedAt:     publishedAt,
			ViewCount:       v.ViewCount,
			DurationSeconds: parseHelixDuration(v.Duration),
		})
	}

	return items, nil
}

// FetchRecentClips retrieves a broadcaster's most recent clips, normalized
// as clip content.
func (c *Client) FetchRecentClips(ctx context.Context, userID string, limit int) ([]content.Content, error) {
	reqURL := fmt.Sprintf("%s/helix/clips?broadcaster_id=%s&first=%d",
		c.baseURL, url.QueryEscape(userID), limit)

	body, err := c.doRequest(ctx, reqURL)
	if err != nil {
		return nil, err
	}

	var resp clipsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse clips response: %w", err)
	}

	items := make([]content.Content, 0, len(resp.Data))
	for _, clip := range resp.Data {
		publishedAt, _ := time.Parse(time.RFC3339, clip.CreatedAt)
		items = append(items, content.Content{
			ID:              clip.ID,
			Platform:        content.PlatformTwitch,
			Type:            content.TypeClip,
			Title:           clip.Title,
			Thumbnail:       clip.ThumbnailURL,
			URL:             clip.URL,
			PublishedAt:     publishedAt,
			ViewCount:       clip.ViewCount,
			DurationSeconds: int64(clip.Duration),
		})
	}

	return items, nil
}

func (c *Client) doRequest(ctx context.Context, url string) ([]byte, error) {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get app token: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
	req.Header.Set("Client-Id", c.clientID)
	req.Header.Set("Accept", "application/json")

	resp, err := httpx.Do(ctx, c.executor, c.httpClient, req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if resp.StatusCode == http.StatusUnauthorized {
			// A rejected token is useless; drop it so the next run
			// fetches a fresh one instead of failing the same way.
			if inv, ok := c.tokens.(interface{ Invalidate() }); ok {
				inv.Invalidate()
			}
		}
		return nil, c.handleAPIError(resp.StatusCode)
	}

	return body, nil
}

func (c *Client) handleAPIError(statusCode int) error {
	switch statusCode {
	case http.StatusUnauthorized:
		return fmt.Errorf("Twitch API authentication failed - check app credentials")
	case http.StatusTooManyRequests:
		return fmt.Errorf("Twitch API rate limit exceeded")
	case http.StatusInternalServerError, http.StatusBadGateway,
		http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return fmt.Errorf("Twitch API server error")
	default:
		return fmt.Errorf("Twitch API error (status %d)", statusCode)
	}
}

// parseHelixDuration parses Helix VOD durations ("3h8m33s", "45m12s") into
// seconds. Unparseable values yield 0.
func parseHelixDuration(s string) int64 {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0
	}
	return int64(d / time.Second)
}

// renderThumbnail substitutes concrete dimensions into Helix thumbnail URL
// templates like ...%{width}x%{height}.jpg.
func renderThumbnail(template string) string {
	s := strings.ReplaceAll(template, "%{width}", "640")
	return strings.ReplaceAll(s, "%{height}", "360")
}

// API response types (private - implementation detail)

type videosResponse struct {
	Data []struct {
		ID           string `json:"id"`
		Title        string `json:"title"`
		URL          string `json:"url"`
		ThumbnailURL string `json:"thumbnail_url"`
		PublishedAt  string `json:"published_at"`
		ViewCount    int64  `json:"view_count"`
		Duration     string `json:"duration"`
	} `json:"data"`
}

type clipsResponse struct {
	Data []struct {
		ID           string  `json:"id"`
		Title        string  `json:"title"`
		URL          string  `json:"url"`
		ThumbnailURL string  `json:"thumbnail_url"`
		CreatedAt    string  `json:"created_at"`
		ViewCount    int64   `json:"view_count"`
		Duration     float64 `json:"duration"`
	} `json:"data"`
}
