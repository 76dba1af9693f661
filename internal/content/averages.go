package content

// DefaultPlatformAverage stands in for a platform's mean follower count when
// no roster creator is configured on it, keeping the authority denominator
// finite.
const DefaultPlatformAverage = 25_000

// PlatformAverages maps each platform to the mean follower count across all
// roster creators present on it. It is computed once per ranking run and used
// only as the denominator in platform-authority scoring.
type PlatformAverages map[Platform]float64

// AverageFollowers computes per-platform mean follower counts for the roster.
// Every known platform gets an entry.
func AverageFollowers(creators []Creator) PlatformAverages {
	sums := make(map[Platform]int64, len(Platforms))
	counts := make(map[Platform]int, len(Platforms))
	for _, c := range creators {
		for platform, profile := range c.Platforms {
			sums[platform] += profile.Followers
			counts[platform]++
		}
	}

	averages := make(PlatformAverages, len(Platforms))
	for _, platform := range Platforms {
		if counts[platform] == 0 {
			averages[platform] = DefaultPlatformAverage
			continue
		}
		averages[platform] = float64(sums[platform]) / float64(counts[platform])
	}
	return averages
}
