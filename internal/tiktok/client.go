// Package tiktok provides the TikTok adapter for the featured pipeline.
//
// This package enables the pipeline to:
// - Fetch a creator's recent video posts with engagement counters
// - Fetch recaps of a creator's recent live broadcasts
//
// TikTok exposes no stable public content API; this client targets the
// creator content endpoints and tolerates their loosely versioned payloads.
package tiktok

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/failsafe-go/failsafe-go"

	"github.com/bigtalents/featured/internal/content"
	"github.com/bigtalents/featured/internal/httpx"
)

const defaultBaseURL = "https://open.tiktokapis.com"

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

// Client is a TikTok content API adapter.
type Client struct {
	clientKey  string
	baseURL    string
	httpClient httpx.Doer
	executor   failsafe.Executor[*http.Response]
}

// NewClient creates a new TikTok adapter with the given client key.
func NewClient(clientKey string, opts ...ClientOption) *Client {
	c := &Client{
		clientKey:  clientKey,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{},
		executor:   httpx.NewExecutor(httpx.DefaultExecutorConfig()),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// FetchRecentPosts retrieves a creator's most recent video posts,
// normalized as post content.
func (c *Client) FetchRecentPosts(ctx context.Context, username string, limit int) ([]content.Content, error) {
	reqURL := fmt.Sprintf("%s/v2/creator/%s/videos?limit=%d",
		c.baseURL, url.PathEscape(username), limit)

	body, err := c.doRequest(ctx, reqURL)
	if err != nil {
		return nil, err
	}

	var resp postsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse posts response: %w", err)
	}

	items := make([]content.Content, 0, len(resp.Data.Videos))
	for _, v := range resp.Data.Videos {
		items = append(items, content.Content{
			ID:              v.ID,
			Platform:        content.PlatformTikTok,
			Type:            content.TypePost,
			Title:           v.Title,
			Thumbnail:       v.CoverURL,
			URL:             fmt.Sprintf("https://www.tiktok.com/@%s/video/%s", username, v.ID),
			PublishedAt:     time.Unix(v.CreateTime, 0).UTC(),
			ViewCount:       v.PlayCount,
			LikeCount:       v.LikeCount,
			CommentCount:    v.CommentCount,
			ShareCount:      v.ShareCount,
			DurationSeconds: v.Duration,
		})
	}

	return items, nil
}

// FetchRecentLives retrieves recaps of a creator's most recent live
// broadcasts, normalized as live content.
func (c *Client) FetchRecentLives(ctx context.Context, username string, limit int) ([]content.Content, error) {
	reqURL := fmt.Sprintf("%s/v2/creator/%s/lives?limit=%d",
		c.baseURL, url.PathEscape(username), limit)

	body, err := c.doRequest(ctx, reqURL)
	if err != nil {
		return nil, err
	}

	var resp livesResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse lives response: %w", err)
	}

	items := make([]content.Content, 0, len(resp.Data.Lives))
	for _, l := range resp.Data.Lives {
		items = append(items, content.Content{
			ID:              l.ID,
			Platform:        content.PlatformTikTok,
			Type:            content.TypeLive,
			Title:           l.Title,
			Thumbnail:       l.CoverURL,
			URL:             fmt.Sprintf("https://www.tiktok.com/@%s/live", username),
			PublishedAt:     time.Unix(l.StartTime, 0).UTC(),
			ViewCount:       l.TotalViewers,
			PeakViewers:     l.PeakViewers,
			GiftCount:       l.GiftCount,
			DurationSeconds: l.Duration,
		})
	}

	return items, nil
}

func (c *Client) doRequest(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Client-Key", c.clientKey)
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
		return nil, c.handleAPIError(resp.StatusCode)
	}

	return body, nil
}

func (c *Client) handleAPIError(statusCode int) error {
	switch statusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("TikTok API access denied - check FEATURED_TIKTOK_CLIENT_KEY")
	case http.StatusTooManyRequests:
		return fmt.Errorf("TikTok API rate limit exceeded")
	case http.StatusInternalServerError, http.StatusBadGateway,
		http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return fmt.Errorf("TikTok API server error")
	default:
		return fmt.Errorf("TikTok API error (status %d)", statusCode)
	}
}

// API response types (private - implementation detail)

type postsResponse struct {
	Data struct {
		Videos []struct {
			ID           string `json:"id"`
			Title        string `json:"title"`
			CoverURL     string `json:"cover_image_url"`
			CreateTime   int64  `json:"create_time"`
			PlayCount    int64  `json:"view_count"`
			LikeCount    int64  `json:"like_count"`
			CommentCount int64  `json:"comment_count"`
			ShareCount   int64  `json:"share_count"`
			Duration     int64  `json:"duration"`
		} `json:"videos"`
	} `json:"data"`
}

type livesResponse struct {
	Data struct {
		Lives []struct {
			ID           string `json:"id"`
			Title        string `json:"title"`
			CoverURL     string `json:"cover_image_url"`
			StartTime    int64  `json:"start_time"`
			TotalViewers int64  `json:"total_viewers"`
			PeakViewers  int64  `json:"peak_viewers"`
			GiftCount    int64  `json:"gift_count"`
			Duration     int64  `json:"duration"`
		} `json:"lives"`
	} `json:"data"`
}
