package display

import (
	"strings"
	"testing"
	"time"

	"github.com/bigtalents/featured/internal/content"
)

func sampleItem() content.ScoredContent {
	return content.ScoredContent{
		Content: content.Content{
			ID:          "vid-1",
			Platform:    content.PlatformYouTube,
			Type:        content.TypeVideo,
			Title:       "Grand final breakdown",
			URL:         "https://www.youtube.com/watch?v=vid-1",
			PublishedAt: time.Now().Add(-2 * time.Hour),
			CreatorName: "Nova",
			CreatorTier: content.TierElite,
			ViewCount:   120000,
			LikeCount:   8000,
		},
		Score:    27.45,
		RawScore: 22.45,
		Breakdown: content.Breakdown{
			BaseEngagement: 37.3,
			RecencyDecay:   20,
			TierBonus:      8,
			DiversityBonus: 5,
		},
	}
}

func TestFormatItem_ShowsRankCreatorAndScore(t *testing.T) {
	f := NewTerminalFormatter()
	out := f.FormatItem(1, sampleItem())

	for _, want := range []string{
		"1. [YOUTUBE/video] Grand final breakdown",
		"by Nova (elite)",
		"score 27.45 (raw 22.45)",
		"120000 views",
		"https://www.youtube.com/watch?v=vid-1",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output should contain %q, got:\n%s", want, out)
		}
	}
}

func TestFormatItem_BreakdownOnlyWhenEnabled(t *testing.T) {
	f := NewTerminalFormatter()
	if out := f.FormatItem(1, sampleItem()); strings.Contains(out, "engagement") {
		t.Errorf("breakdown should be hidden by default:\n%s", out)
	}

	f.ShowBreakdown = true
	out := f.FormatItem(1, sampleItem())
	if !strings.Contains(out, "engagement 37.3") || !strings.Contains(out, "diversity +5.0") {
		t.Errorf("breakdown line missing:\n%s", out)
	}
}

func TestFormatFeatured_EmptyList(t *testing.T) {
	f := NewTerminalFormatter()
	out := f.FormatFeatured(nil)
	if out != "No featured content right now.\n" {
		t.Errorf("empty list message = %q", out)
	}
}

func TestFormatFeatured_NumbersItems(t *testing.T) {
	f := NewTerminalFormatter()
	second := sampleItem()
	second.ID = "vid-2"
	second.Title = "Scrim highlights"

	out := f.FormatFeatured([]content.ScoredContent{sampleItem(), second})
	if !strings.Contains(out, "1. ") || !strings.Contains(out, "2. [YOUTUBE/video] Scrim highlights") {
		t.Errorf("items should be numbered in order:\n%s", out)
	}
}

func TestFormatTimestamp_RelativeTimes(t *testing.T) {
	f := NewTerminalFormatter()
	cases := []struct {
		age  time.Duration
		want string
	}{
		{30 * time.Second, "just now"},
		{5 * time.Minute, "5 minutes ago"},
		{1 * time.Hour, "1 hour ago"},
		{3 * 24 * time.Hour, "3 days ago"},
	}
	for _, tc := range cases {
		if got := f.FormatTimestamp(time.Now().Add(-tc.age)); got != tc.want {
			t.Errorf("FormatTimestamp(-%s) = %q, want %q", tc.age, got, tc.want)
		}
	}
}
