package twitch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bigtalents/featured/internal/content"
)

type staticTokens struct {
	token       string
	err         error
	invalidated bool
}

func (s *staticTokens) Token(_ context.Context) (string, error) {
	return s.token, s.err
}

func (s *staticTokens) Invalidate() {
	s.invalidated = true
}

const helixVideosPayload = `{
	"data": [
		{
			"id": "v100",
			"title": "Ranked grind day 3",
			"url": "https://www.twitch.tv/videos/v100",
			"thumbnail_url": "https://example.com/thumb-%{width}x%{height}.jpg",
			"published_at": "2026-07-31T20:00:00Z",
			"view_count": 15000,
			"duration": "3h8m33s"
		}
	]
}`

const helixClipsPayload = `{
	"data": [
		{
			"id": "ClipSlug",
			"title": "The 1v5",
			"url": "https://clips.twitch.tv/ClipSlug",
			"thumbnail_url": "https://example.com/clip.jpg",
			"created_at": "2026-08-01T01:30:00Z",
			"view_count": 98000,
			"duration": 27.5
		}
	]
}`

func TestFetchRecentBroadcasts_Normalizes(t *testing.T) {
	var gotAuth, gotClientID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotClientID = r.Header.Get("Client-Id")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(helixVideosPayload))
	}))
	defer server.Close()

	client := NewClient("client-abc", &staticTokens{token: "app-token"}, WithBaseURL(server.URL))
	items, err := client.FetchRecentBroadcasts(context.Background(), "111", 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "Bearer app-token" {
		t.Errorf("Authorization = %q, want bearer app token", gotAuth)
	}
	if gotClientID != "client-abc" {
		t.Errorf("Client-Id = %q", gotClientID)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}

	b := items[0]
	if b.Platform != content.PlatformTwitch || b.Type != content.TypeBroadcast {
		t.Errorf("broadcast tagged %s/%s", b.Platform, b.Type)
	}
	if b.ViewCount != 15000 {
		t.Errorf("view count = %d", b.ViewCount)
	}
	if b.DurationSeconds != 3*3600+8*60+33 {
		t.Errorf("duration = %d, want 11313", b.DurationSeconds)
	}
	if b.Thumbnail != "https://example.com/thumb-640x360.jpg" {
		t.Errorf("thumbnail template not rendered: %s", b.Thumbnail)
	}
	if b.PeakViewers != 0 {
		t.Errorf("helix reports no peak viewers, got %d", b.PeakViewers)
	}
}

func TestFetchRecentClips_Normalizes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/helix/clips") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(helixClipsPayload))
	}))
	defer server.Close()

	client := NewClient("client-abc", &staticTokens{token: "app-token"}, WithBaseURL(server.URL))
	items, err := client.FetchRecentClips(context.Background(), "111", 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 clip, got %d", len(items))
	}

	clip := items[0]
	if clip.Type != content.TypeClip {
		t.Errorf("clip tagged %s", clip.Type)
	}
	if clip.ViewCount != 98000 {
		t.Errorf("view count = %d", clip.ViewCount)
	}
	if clip.DurationSeconds != 27 {
		t.Errorf("fractional clip duration should truncate to 27, got %d", clip.DurationSeconds)
	}
}

func TestFetchRecentBroadcasts_TokenFailure(t *testing.T) {
	client := NewClient("client-abc", &staticTokens{err: errors.New("credentials rejected")})
	_, err := client.FetchRecentBroadcasts(context.Background(), "111", 3)
	if err == nil {
		t.Fatal("expected token failure to surface")
	}
	if !strings.Contains(err.Error(), "app token") {
		t.Errorf("error should mention the app token, got: %v", err)
	}
}

func TestFetchRecentBroadcasts_AuthRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	tokens := &staticTokens{token: "stale"}
	client := NewClient("client-abc", tokens, WithBaseURL(server.URL))
	_, err := client.FetchRecentBroadcasts(context.Background(), "111", 3)
	if err == nil {
		t.Fatal("expected an error for rejected auth")
	}
	if !strings.Contains(err.Error(), "authentication failed") {
		t.Errorf("error should mention authentication, got: %v", err)
	}
	if !tokens.invalidated {
		t.Error("a 401 should invalidate the cached token")
	}
}

func TestParseHelixDuration(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"3h8m33s", 11313},
		{"45m12s", 2712},
		{"58s", 58},
		{"", 0},
		{"bogus", 0},
	}
	for _, tc := range cases {
		if got := parseHelixDuration(tc.in); got != tc.want {
			t.Errorf("parseHelixDuration(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}
