// Package scoring computes composite scores for normalized content items.
//
// This package enables the featured pipeline to:
// - Reduce heterogeneous engagement signals to a bounded base score
// - Combine base engagement with type, authority, recency and tier factors
// - Retain a per-item breakdown of every sub-score
package scoring

import (
	"math"

	"github.com/bigtalents/featured/internal/content"
)

// MaxBaseEngagement bounds every per-type engagement formula.
const MaxBaseEngagement = 50

// Per-type formula constants. Each sub-term is independently capped so a
// single signal can never dominate and missing optional signals degrade to 0.
const (
	videoViewCap       = 22
	videoViewCurveAt   = 500_000
	videoLikeCap       = 16
	videoLikeFactor    = 2.0
	videoCommentCap    = 8
	videoCommentFactor = 20
	videoWatchTimeCap  = 4

	shortViewCap     = 24
	shortViewCurveAt = 5_000_000
	shortLikeCap     = 16
	shortLikeFactor  = 1.8
	shortShareCap    = 10
	shortShareFactor = 500

	broadcastViewCap        = 16
	broadcastViewCurveAt    = 30_000
	broadcastPeakCap        = 20
	broadcastPeakCurveAt    = 3_000
	broadcastChatCap        = 8
	broadcastChatPerMinFull = 120
	broadcastDurationCap    = 6
	broadcastDurationFull   = 7_200

	clipViewCap     = 30
	clipViewCurveAt = 300_000
	clipLikeCap     = 20
	clipLikeFactor  = 2.0

	postViewCap       = 18
	postViewCurveAt   = 3_000_000
	postLikeCap       = 14
	postLikeFactor    = 1.5
	postShareCap      = 12
	postShareFactor   = 400
	postCommentCap    = 6
	postCommentFactor = 400

	livePeakCap      = 24
	livePeakCurveAt  = 2_000
	liveGiftCap      = 16
	liveGiftFull     = 500
	liveDurationCap  = 10
	liveDurationFull = 3_600
)

// BaseEngagement computes the bounded base engagement score for an item.
// The result is in [0, MaxBaseEngagement] for every content type; unknown
// content types score 0.
func BaseEngagement(c content.Content) float64 {
	var score float64
	switch c.Type {
	case content.TypeVideo:
		score = videoEngagement(c)
	case content.TypeShort:
		score = shortEngagement(c)
	case content.TypeBroadcast:
		score = broadcastEngagement(c)
	case content.TypeClip:
		score = clipEngagement(c)
	case content.TypePost:
		score = postEngagement(c)
	case content.TypeLive:
		score = liveEngagement(c)
	}
	return clamp(score, 0, MaxBaseEngagement)
}

func videoEngagement(c content.Content) float64 {
	score := logCurve(c.ViewCount, videoViewCurveAt, videoViewCap)
	score += capped(ratioPct(c.LikeCount, c.ViewCount)*videoLikeFactor, videoLikeCap)
	score += capped(ratioPct(c.CommentCount, c.ViewCount)*videoCommentFactor, videoCommentCap)
	score += capped(c.WatchTimePercent/100*videoWatchTimeCap, videoWatchTimeCap)
	return score
}

func shortEngagement(c content.Content) float64 {
	score := logCurve(c.ViewCount, shortViewCurveAt, shortViewCap)
	score += capped(ratioPct(c.LikeCount, c.ViewCount)*shortLikeFactor, shortLikeCap)
	score += capped(ratio(c.ShareCount, c.ViewCount)*shortShareFactor, shortShareCap)
	return score
}

func broadcastEngagement(c content.Content) float64 {
	viewTerm := logCurve(c.ViewCount, broadcastViewCurveAt, broadcastViewCap)

	// Peak concurrent viewers is the stronger signal; when the platform
	// does not report it, fall back to half the view term.
	peakTerm := viewTerm / 2
	if c.PeakViewers > 0 {
		peakTerm = logCurve(c.PeakViewers, broadcastPeakCurveAt, broadcastPeakCap)
	}

	score := viewTerm + peakTerm
	score += capped(c.ChatMessagesPerMin/broadcastChatPerMinFull*broadcastChatCap, broadcastChatCap)
	score += capped(float64(c.DurationSeconds)/broadcastDurationFull*broadcastDurationCap, broadcastDurationCap)
	return score
}

func clipEngagement(c content.Content) float64 {
	score := logCurve(c.ViewCount, clipViewCurveAt, clipViewCap)
	if c.LikeCount > 0 {
		score += capped(ratioPct(c.LikeCount, c.ViewCount)*clipLikeFactor, clipLikeCap)
	}
	return score
}

func postEngagement(c content.Content) float64 {
	score := logCurve(c.ViewCount, postViewCurveAt, postViewCap)
	score += capped(ratioPct(c.LikeCount, c.ViewCount)*postLikeFactor, postLikeCap)
	score += capped(ratio(c.ShareCount, c.ViewCount)*postShareFactor, postShareCap)
	score += capped(ratio(c.CommentCount, c.ViewCount)*postCommentFactor, postCommentCap)
	return score
}

func liveEngagement(c content.Content) float64 {
	score := logCurve(c.PeakViewers, livePeakCurveAt, livePeakCap)
	score += capped(float64(c.GiftCount)/liveGiftFull*liveGiftCap, liveGiftCap)
	score += capped(float64(c.DurationSeconds)/liveDurationFull*liveDurationCap, liveDurationCap)
	return score
}

// logCurve maps a count onto [0, cap] along a log10 curve that reaches the
// cap at curveAt. Non-positive counts score 0.
func logCurve(count int64, curveAt, cap float64) float64 {
	if count <= 0 {
		return 0
	}
	term := math.Log10(float64(count)+1) / math.Log10(curveAt) * cap
	return capped(term, cap)
}

// ratioPct returns part per 100 of whole, 0 when either is non-positive.
func ratioPct(part, whole int64) float64 {
	return ratio(part, whole) * 100
}

func ratio(part, whole int64) float64 {
	if part <= 0 || whole <= 0 {
		return 0
	}
	return float64(part) / float64(whole)
}

func capped(term, cap float64) float64 {
	if term < 0 {
		return 0
	}
	return math.Min(term, cap)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
