package scoring

import (
	"math"
	"time"

	"github.com/bigtalents/featured/internal/content"
)

// Weight vector for the composite score. Sums to 1.0: engagement dominates,
// recency is second, content type and tier are tertiary, platform authority
// is a minor tiebreaker. Empirically tuned, do not re-derive.
const (
	weightEngagement = 0.5
	weightType       = 0.15
	weightAuthority  = 0.05
	weightRecency    = 0.2
	weightTier       = 0.1
)

// typeScale rescales base engagement onto a 15-point scale before the
// per-type multiplier is applied.
const typeScale = 15

// MaxPlatformAuthority caps the authority sub-score.
const MaxPlatformAuthority = 5

// typeMultipliers reflect the relative production effort expected per
// content type.
var typeMultipliers = map[content.ContentType]float64{
	content.TypeVideo:     1.0,
	content.TypeBroadcast: 1.0,
	content.TypeShort:     0.85,
	content.TypeClip:      0.80,
	content.TypePost:      0.80,
	content.TypeLive:      0.75,
}

// authorityDifficulty weights follower reach by how hard an audience is to
// build for each format.
var authorityDifficulty = map[content.ContentType]float64{
	content.TypeBroadcast: 2.2,
	content.TypeVideo:     2.0,
	content.TypeClip:      1.5,
	content.TypeShort:     1.2,
	content.TypePost:      1.0,
	content.TypeLive:      0.9,
}

// tierBonuses award fixed points per roster tier.
var tierBonuses = map[content.Tier]float64{
	content.TierElite:     8,
	content.TierPartnered: 5,
	content.TierAcademy:   2,
}

// ScoreContent combines base engagement with the type multiplier, platform
// authority, recency decay and tier bonus into a single raw score, keeping
// the breakdown for transparency. Pure: identical inputs yield identical
// output, and the input content is not mutated.
func ScoreContent(c content.Content, creator content.Creator, averages content.PlatformAverages, now time.Time) content.ScoredContent {
	base := BaseEngagement(c)
	typeMult := base / MaxBaseEngagement * typeScale * typeMultipliers[c.Type]
	authority := platformAuthority(c, creator, averages)
	recency := RecencyDecay(c.Type, now.Sub(c.PublishedAt))
	tier := tierBonuses[creator.Tier]

	raw := base*weightEngagement +
		typeMult*weightType +
		authority*weightAuthority +
		recency*weightRecency +
		tier*weightTier
	raw = Round2(math.Max(raw, 0))

	return content.ScoredContent{
		Content:  c,
		Score:    raw,
		RawScore: raw,
		Breakdown: content.Breakdown{
			BaseEngagement:        base,
			ContentTypeMultiplier: typeMult,
			PlatformAuthority:     authority,
			RecencyDecay:          recency,
			TierBonus:             tier,
		},
	}
}

// platformAuthority scores the creator's reach on the item's platform
// relative to the roster-wide average, weighted by per-type difficulty and
// capped at MaxPlatformAuthority. Creators without a presence on the
// platform score 0.
func platformAuthority(c content.Content, creator content.Creator, averages content.PlatformAverages) float64 {
	profile, ok := creator.Platforms[c.Platform]
	if !ok || profile.Followers <= 0 {
		return 0
	}
	avg := averages[c.Platform]
	if avg <= 0 {
		avg = content.DefaultPlatformAverage
	}
	authority := float64(profile.Followers) / avg * authorityDifficulty[c.Type]
	return math.Min(authority, MaxPlatformAuthority)
}

// Round2 rounds to two decimal places, the precision every published score
// carries.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
