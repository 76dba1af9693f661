// Package youtube provides the YouTube Data API v3 adapter for the featured
// pipeline.
//
// This package enables the pipeline to:
// - Fetch a channel's most recent uploads with view/like/comment statistics
// - Normalize uploads into Content items, classifying shorts by duration
package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/failsafe-go/failsafe-go"

	"github.com/bigtalents/featured/internal/content"
	"github.com/bigtalents/featured/internal/httpx"
)

const defaultBaseURL = "https://www.googleapis.com"

// shortMaxDuration is the cutoff under which an upload is normalized as a
// short rather than a long-form video.
const shortMaxDuration = 60 * time.Second

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

// Client is a YouTube Data API adapter authenticated with an API key.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient httpx.Doer
	executor   failsafe.Executor[*http.Response]
}

// NewClient creates a new YouTube adapter with the given API key.
func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{},
		executor:   httpx.NewExecutor(httpx.DefaultExecutorConfig()),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// FetchRecentVideos retrieves a channel's most recent uploads, normalized
// as video or short content. Two calls: a date-ordered search for IDs, then
// a statistics batch for counters and durations.
func (c *Client) FetchRecentVideos(ctx context.Context, channelID string, limit int) ([]content.Content, error) {
	searchURL := fmt.Sprintf("%s/youtube/v3/search?part=snippet&channelId=%s&maxResults=%d&order=date&type=video&key=%s",
		c.baseURL, url.QueryEscape(channelID), limit, url.QueryEscape(c.apiKey))

	body, err := c.doRequest(ctx, searchURL)
	if err != nil {
		return nil, err
	}

	var searchResp searchResponse
	if err := json.Unmarshal(body, &searchResp); err != nil {
		return nil, fmt.Errorf("failed to parse search response: %w", err)
	}

	if len(searchResp.Items) == 0 {
		return []content.Content{}, nil
	}

	videoIDs := make([]string, 0, len(searchResp.Items))
	for _, item := range searchResp.Items {
		videoIDs = append(videoIDs, item.ID.VideoID)
	}

	videosURL := fmt.Sprintf("%s/youtube/v3/videos?part=statistics,contentDetails&id=%s&key=%s",
		c.baseURL, strings.Join(videoIDs, ","), url.QueryEscape(c.apiKey))

	body, err = c.doRequest(ctx, videosURL)
	if err != nil {
		return nil, err
	}

	var videosResp videosResponse
	if err := json.Unmarshal(body, &videosResp); err != nil {
		return nil, fmt.Errorf("failed to parse videos response: %w", err)
	}

	statsMap := make(map[string]videoStats)
	for _, item := range videosResp.Items {
		viewCount, _ := strconv.ParseInt(item.Statistics.ViewCount, 10, 64)
		likeCount, _ := strconv.ParseInt(item.Statistics.LikeCount, 10, 64)
		commentCount, _ := strconv.ParseInt(item.Statistics.CommentCount, 10, 64)
		statsMap[item.ID] = videoStats{
			viewCount:    viewCount,
			likeCount:    likeCount,
			commentCount: commentCount,
			duration:     parseISO8601Duration(item.ContentDetails.Duration),
		}
	}

	items := make([]content.Content, 0, len(searchResp.Items))
	for _, item := range searchResp.Items {
		publishedAt, _ := time.Parse(time.RFC3339, item.Snippet.PublishedAt)
		stats := statsMap[item.ID.VideoID]

		contentType := content.TypeVideo
		if stats.duration > 0 && stats.duration <= shortMaxDuration {
			contentType = content.TypeShort
		}

		items = append(items, content.Content{
			ID:              item.ID.VideoID,
			Platform:        content.PlatformYouTube,
			Type:            contentType,
			Title:           item.Snippet.Title,
			Thumbnail:       item.Snippet.Thumbnails.High.URL,
			URL:             fmt.Sprintf("https://www.youtube.com/watch?v=%s", item.ID.VideoID),
			PublishedAt:     publishedAt,
			ViewCount:       stats.viewCount,
			LikeCount:       stats.likeCount,
			CommentCount:    stats.commentCount,
			DurationSeconds: int64(stats.duration / time.Second),
		})
	}

	return items, nil
}

func (c *Client) doRequest(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
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
		return fmt.Errorf("YouTube API access denied - check FEATURED_YOUTUBE_API_KEY")
	case http.StatusTooManyRequests:
		return fmt.Errorf("YouTube API rate limit exceeded")
	case http.StatusInternalServerError, http.StatusBadGateway,
		http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return fmt.Errorf("YouTube API server error")
	default:
		return fmt.Errorf("YouTube API error (status %d)", statusCode)
	}
}

// parseISO8601Duration parses the subset of ISO 8601 durations the YouTube
// API emits (e.g. PT1H2M3S, P1DT2H). Unparseable values yield 0.
func parseISO8601Duration(s string) time.Duration {
	if !strings.HasPrefix(s, "P") {
		return 0
	}
	s = s[1:]

	var total time.Duration
	inTime := false
	num := 0
	hasNum := false
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			num = num*10 + int(r-'0')
			hasNum = true
		case r == 'T':
			inTime = true
		default:
			if !hasNum {
				return 0
			}
			switch {
			case r == 'D' && !inTime:
				total += time.Duration(num) * 24 * time.Hour
			case r == 'H' && inTime:
				total += time.Duration(num) * time.Hour
			case r == 'M' && inTime:
				total += time.Duration(num) * time.Minute
			case r == 'S' && inTime:
				total += time.Duration(num) * time.Second
			default:
				return 0
			}
			num = 0
			hasNum = false
		}
	}
	return total
}

// API response types (private - implementation detail)

type searchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
		Snippet struct {
			Title       string `json:"title"`
			ChannelID   string `json:"channelId"`
			PublishedAt string `json:"publishedAt"`
			Thumbnails  struct {
				High struct {
					URL string `json:"url"`
				} `json:"high"`
			} `json:"thumbnails"`
		} `json:"snippet"`
	} `json:"items"`
}

type videosResponse struct {
	Items []struct {
		ID         string `json:"id"`
		Statistics struct {
			ViewCount    string `json:"viewCount"`
			LikeCount    string `json:"likeCount"`
			CommentCount string `json:"commentCount"`
		} `json:"statistics"`
		ContentDetails struct {
			Duration string `json:"duration"`
		} `json:"contentDetails"`
	} `json:"items"`
}

type videoStats struct {
	viewCount    int64
	likeCount    int64
	commentCount int64
	duration     time.Duration
}
