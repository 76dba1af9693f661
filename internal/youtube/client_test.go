package youtube

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bigtalents/featured/internal/content"
)

const searchPayload = `{
	"items": [
		{
			"id": {"videoId": "vid-long"},
			"snippet": {
				"title": "Tournament recap",
				"channelId": "UC123",
				"publishedAt": "2026-07-30T10:00:00Z",
				"thumbnails": {"high": {"url": "https://example.com/long.jpg"}}
			}
		},
		{
			"id": {"videoId": "vid-short"},
			"snippet": {
				"title": "Insane flick",
				"channelId": "UC123",
				"publishedAt": "2026-07-31T18:00:00Z",
				"thumbnails": {"high": {"url": "https://example.com/short.jpg"}}
			}
		}
	]
}`

const videosPayload = `{
	"items": [
		{
			"id": "vid-long",
			"statistics": {"viewCount": "120000", "likeCount": "8000", "commentCount": "900"},
			"contentDetails": {"duration": "PT14M22S"}
		},
		{
			"id": "vid-short",
			"statistics": {"viewCount": "450000", "likeCount": "52000", "commentCount": "1300"},
			"contentDetails": {"duration": "PT48S"}
		}
	]
}`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.HasPrefix(r.URL.Path, "/youtube/v3/search"):
			_, _ = w.Write([]byte(searchPayload))
		case strings.HasPrefix(r.URL.Path, "/youtube/v3/videos"):
			_, _ = w.Write([]byte(videosPayload))
		default:
			t.Errorf("unexpected request path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestFetchRecentVideos_NormalizesAndClassifies(t *testing.T) {
	server := newTestServer(t)
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL))
	items, err := client.FetchRecentVideos(context.Background(), "UC123", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}

	long := items[0]
	if long.ID != "vid-long" || long.Type != content.TypeVideo {
		t.Errorf("14-minute upload should normalize as long-form video, got %s/%s", long.ID, long.Type)
	}
	if long.Platform != content.PlatformYouTube {
		t.Errorf("platform = %s, want youtube", long.Platform)
	}
	if long.ViewCount != 120000 || long.LikeCount != 8000 || long.CommentCount != 900 {
		t.Errorf("statistics not mapped: %+v", long)
	}
	if long.DurationSeconds != 14*60+22 {
		t.Errorf("duration = %d, want 862", long.DurationSeconds)
	}
	if long.URL != "https://www.youtube.com/watch?v=vid-long" {
		t.Errorf("url = %s", long.URL)
	}
	if want := time.Date(2026, 7, 30, 10, 0, 0, 0, time.UTC); !long.PublishedAt.Equal(want) {
		t.Errorf("publishedAt = %s, want %s", long.PublishedAt, want)
	}

	short := items[1]
	if short.Type != content.TypeShort {
		t.Errorf("48-second upload should normalize as short, got %s", short.Type)
	}
	if short.Thumbnail != "https://example.com/short.jpg" {
		t.Errorf("thumbnail = %s", short.Thumbnail)
	}
}

func TestFetchRecentVideos_EmptyChannel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items": []}`))
	}))
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL))
	items, err := client.FetchRecentVideos(context.Background(), "UC123", 5)
	if err != nil {
		t.Fatalf("empty channel should not error: %v", err)
	}
	if items == nil {
		t.Fatal("should return empty slice, not nil")
	}
	if len(items) != 0 {
		t.Errorf("expected 0 items, got %d", len(items))
	}
}

func TestFetchRecentVideos_AccessDenied(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client := NewClient("bad-key", WithBaseURL(server.URL))
	_, err := client.FetchRecentVideos(context.Background(), "UC123", 5)
	if err == nil {
		t.Fatal("expected an error for denied access")
	}
	if !strings.Contains(err.Error(), "access denied") {
		t.Errorf("error should mention access denial, got: %v", err)
	}
}

func TestFetchRecentVideos_IgnoresUnexpectedFields(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if strings.HasPrefix(r.URL.Path, "/youtube/v3/search") {
			_, _ = w.Write([]byte(`{"items": [{"id": {"videoId": "v1"}, "snippet": {"title": "T", "publishedAt": "2026-07-30T10:00:00Z", "surpriseField": [1,2,3]}}], "brandNewTopLevel": {}}`))
			return
		}
		_, _ = w.Write([]byte(`{"items": [{"id": "v1", "statistics": {"viewCount": "10"}, "contentDetails": {"duration": "PT2M"}}]}`))
	}))
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL))
	items, err := client.FetchRecentVideos(context.Background(), "UC123", 5)
	if err != nil {
		t.Fatalf("unexpected API fields must not break parsing: %v", err)
	}
	if len(items) != 1 || items[0].ViewCount != 10 {
		t.Errorf("item not parsed from response with unknown fields: %+v", items)
	}
}

func TestParseISO8601Duration(t *testing.T) {
	cases := []struct {
		in   string
		want time.Duration
	}{
		{"PT48S", 48 * time.Second},
		{"PT14M22S", 14*time.Minute + 22*time.Second},
		{"PT1H2M3S", time.Hour + 2*time.Minute + 3*time.Second},
		{"P1DT2H", 26 * time.Hour},
		{"PT0S", 0},
		{"", 0},
		{"garbage", 0},
	}
	for _, tc := range cases {
		if got := parseISO8601Duration(tc.in); got != tc.want {
			t.Errorf("parseISO8601Duration(%q) = %s, want %s", tc.in, got, tc.want)
		}
	}
}
