// Package selection picks the final featured shortlist from scored
// candidates, trading a little raw score for creator, platform and
// content-type variety.
package selection

import (
	"github.com/bigtalents/featured/internal/content"
	"github.com/bigtalents/featured/internal/scoring"
)

const (
	// repetitionPenalty is charged per prior appearance of the same
	// creator, so a creator's second pick costs 15, the third 30.
	repetitionPenalty = 15

	platformNoveltyBonus    = 5
	contentTypeNoveltyBonus = 3
)

// SelectTopN greedily picks up to n items from candidates. After every pick
// the diversity bonus of each remaining candidate is recomputed against the
// selection so far; the recomputation is what lets an unrepresented creator
// or platform overtake a heavily repeated one. The loop is inherently
// sequential and must stay single-threaded for reproducible ordering.
//
// Candidates should arrive sorted by RawScore descending; ties on adjusted
// score go to the earlier candidate. Returns fewer than n items when the
// pool runs out.
func SelectTopN(candidates []content.ScoredContent, n int) []content.ScoredContent {
	selected := make([]content.ScoredContent, 0, n)
	if n <= 0 {
		return selected
	}

	available := make([]content.ScoredContent, len(candidates))
	copy(available, candidates)

	for len(selected) < n && len(available) > 0 {
		bestIdx := 0
		bestBonus := diversityBonus(available[0], selected)
		bestAdjusted := available[0].RawScore + bestBonus

		for i := 1; i < len(available); i++ {
			bonus := diversityBonus(available[i], selected)
			adjusted := available[i].RawScore + bonus
			if adjusted > bestAdjusted {
				bestIdx, bestBonus, bestAdjusted = i, bonus, adjusted
			}
		}

		pick := available[bestIdx]
		pick.Breakdown.DiversityBonus = bestBonus
		pick.Score = scoring.Round2(pick.RawScore + bestBonus)
		selected = append(selected, pick)
		available = append(available[:bestIdx], available[bestIdx+1:]...)
	}

	return selected
}

// diversityBonus scores a candidate against the current selection: a
// repetition penalty scaling with the creator's prior appearances, plus
// novelty bonuses for an unrepresented platform or content type.
func diversityBonus(candidate content.ScoredContent, selected []content.ScoredContent) float64 {
	occurrences := 0
	platformSeen := false
	typeSeen := false
	for _, s := range selected {
		if s.CreatorID == candidate.CreatorID {
			occurrences++
		}
		if s.Platform == candidate.Platform {
			platformSeen = true
		}
		if s.Content.Type == candidate.Content.Type {
			typeSeen = true
		}
	}

	bonus := 0.0
	if occurrences >= 1 {
		bonus -= repetitionPenalty * float64(occurrences)
	}
	if !platformSeen {
		bonus += platformNoveltyBonus
	}
	if !typeSeen {
		bonus += contentTypeNoveltyBonus
	}
	return bonus
}
