package scoring

import (
	"time"

	"github.com/bigtalents/featured/internal/content"
)

// MaxRecencyDecay is the score of freshly published content for every type.
const MaxRecencyDecay = 20

const day = 24 * time.Hour

// decayStep awards Points while content age stays within MaxAge.
type decayStep struct {
	MaxAge time.Duration
	Points float64
}

// Per-type decay tables, tuned to each format's natural shelf life: clips,
// posts and broadcasts are stale within days, long-form video stays relevant
// for weeks, TikTok lives are measured in hours. Steps must be ordered by
// MaxAge ascending with non-increasing Points.
var decayTables = map[content.ContentType][]decayStep{
	content.TypeVideo: {
		{1 * day, 20}, {3 * day, 18}, {7 * day, 15},
		{14 * day, 11}, {30 * day, 7}, {60 * day, 3},
	},
	content.TypeShort: {
		{1 * day, 20}, {2 * day, 16}, {4 * day, 11}, {7 * day, 6}, {14 * day, 2},
	},
	content.TypeBroadcast: {
		{1 * day, 20}, {2 * day, 8}, {3 * day, 3},
	},
	content.TypeClip: {
		{1 * day, 20}, {2 * day, 10}, {4 * day, 4},
	},
	content.TypePost: {
		{1 * day, 20}, {2 * day, 12}, {3 * day, 6}, {5 * day, 2},
	},
	content.TypeLive: {
		{6 * time.Hour, 20}, {12 * time.Hour, 12}, {24 * time.Hour, 5},
	},
}

// decayFloors holds the residual score once every step has elapsed.
// Long-form video never quite reaches zero.
var decayFloors = map[content.ContentType]float64{
	content.TypeVideo: 1,
}

// RecencyDecay scores how fresh an item of the given type still is at age.
// Monotone non-increasing in age; future timestamps score as age zero.
func RecencyDecay(t content.ContentType, age time.Duration) float64 {
	steps, ok := decayTables[t]
	if !ok {
		return 0
	}
	if age < 0 {
		age = 0
	}
	for _, step := range steps {
		if age <= step.MaxAge {
			return step.Points
		}
	}
	return decayFloors[t]
}
