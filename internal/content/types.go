// Package content defines the shared shapes flowing through the featured
// content pipeline.
//
// This package enables the ranking engine to:
// - Represent roster creators and their per-platform presence
// - Normalize heterogeneous platform payloads into one Content shape
// - Carry scores and their breakdown alongside display fields
package content

import "time"

// Platform identifies the origin of a content item.
type Platform string

const (
	PlatformYouTube Platform = "youtube"
	PlatformTwitch  Platform = "twitch"
	PlatformTikTok  Platform = "tiktok"
)

// Platforms lists every platform the pipeline fetches from, in fan-out order.
var Platforms = []Platform{PlatformYouTube, PlatformTwitch, PlatformTikTok}

// ContentType discriminates the six normalized content variants.
type ContentType string

const (
	TypeVideo     ContentType = "video"     // long-form YouTube video
	TypeShort     ContentType = "short"     // YouTube short
	TypeBroadcast ContentType = "broadcast" // Twitch broadcast recording (VOD)
	TypeClip      ContentType = "clip"      // Twitch clip
	TypePost      ContentType = "post"      // TikTok video post
	TypeLive      ContentType = "live"      // TikTok live recap
)

// Tier is a creator's roster level, ordered academy < partnered < elite.
type Tier string

const (
	TierAcademy   Tier = "academy"
	TierPartnered Tier = "partnered"
	TierElite     Tier = "elite"
)

// Valid reports whether t is one of the three known tiers.
func (t Tier) Valid() bool {
	switch t {
	case TierAcademy, TierPartnered, TierElite:
		return true
	}
	return false
}

// PlatformProfile holds a creator's identity on one platform.
type PlatformProfile struct {
	// Handle is the platform-native identifier: YouTube channel ID,
	// Twitch user ID, TikTok username.
	Handle string `yaml:"handle" json:"handle"`

	// Followers is the cached follower/subscriber count, refreshed out of
	// band when the roster file is regenerated.
	Followers int64 `yaml:"followers" json:"followers"`
}

// Creator is a roster member. Creators are static configuration loaded once
// per request and never mutated during scoring.
type Creator struct {
	ID        string                       `yaml:"id" json:"id"`
	Name      string                       `yaml:"name" json:"name"`
	Tier      Tier                         `yaml:"tier" json:"tier"`
	Region    string                       `yaml:"region,omitempty" json:"region,omitempty"`
	Country   string                       `yaml:"country,omitempty" json:"country,omitempty"`
	Platforms map[Platform]PlatformProfile `yaml:"platforms" json:"platforms"`
}

// Content is a normalized item from any platform, tagged by Type.
// Signals a platform does not report are left zero and score as absent.
type Content struct {
	ID          string      `json:"id"`
	Platform    Platform    `json:"platform"`
	Type        ContentType `json:"content_type"`
	Title       string      `json:"title"`
	Thumbnail   string      `json:"thumbnail,omitempty"`
	URL         string      `json:"url"`
	PublishedAt time.Time   `json:"published_at"`

	CreatorID   string `json:"creator_id"`
	CreatorName string `json:"creator_name"`
	CreatorTier Tier   `json:"creator_tier"`

	ViewCount    int64 `json:"view_count"`
	LikeCount    int64 `json:"like_count,omitempty"`
	CommentCount int64 `json:"comment_count,omitempty"`
	ShareCount   int64 `json:"share_count,omitempty"`

	// Livestream signals.
	PeakViewers        int64   `json:"peak_viewers,omitempty"`
	ChatMessagesPerMin float64 `json:"chat_messages_per_min,omitempty"`
	GiftCount          int64   `json:"gift_count,omitempty"`

	DurationSeconds  int64   `json:"duration_seconds,omitempty"`
	WatchTimePercent float64 `json:"watch_time_percent,omitempty"`
}

// Breakdown records the named sub-scores behind a composite score, retained
// for transparency. All terms are non-negative except DiversityBonus.
type Breakdown struct {
	BaseEngagement        float64 `json:"base_engagement"`
	ContentTypeMultiplier float64 `json:"content_type_multiplier"`
	PlatformAuthority     float64 `json:"platform_authority"`
	RecencyDecay          float64 `json:"recency_decay"`
	TierBonus             float64 `json:"tier_bonus"`
	DiversityBonus        float64 `json:"diversity_bonus"`
}

// ScoredContent is a Content with its composite score attached.
// Invariant: Score == round2(RawScore + Breakdown.DiversityBonus).
type ScoredContent struct {
	Content
	Score     float64   `json:"score"`
	RawScore  float64   `json:"raw_score"`
	Breakdown Breakdown `json:"breakdown"`
}
