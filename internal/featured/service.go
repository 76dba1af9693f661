// Package featured orchestrates the featured content pipeline: concurrent
// platform fetches, composite scoring, and diversity selection.
package featured

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/bigtalents/featured/internal/content"
	"github.com/bigtalents/featured/internal/logging"
	"github.com/bigtalents/featured/internal/metrics"
	"github.com/bigtalents/featured/internal/scoring"
	"github.com/bigtalents/featured/internal/selection"
)

// DefaultMaxResults is how many items the featured list carries when the
// caller does not say otherwise.
const DefaultMaxResults = 4

// fetchConcurrency bounds the number of platform requests in flight.
const fetchConcurrency = 8

// FetchLimits holds the per-creator item limits for each platform feed.
type FetchLimits struct {
	Videos     int
	Broadcasts int
	Clips      int
	Posts      int
	Lives      int
}

// DefaultFetchLimits matches the product's per-platform freshness windows.
func DefaultFetchLimits() FetchLimits {
	return FetchLimits{
		Videos:     5,
		Broadcasts: 3,
		Clips:      3,
		Posts:      4,
		Lives:      2,
	}
}

// Service runs the featured content pipeline over a fixed roster.
type Service struct {
	creators []content.Creator
	youtube  VideoSource
	twitch   StreamSource
	tiktok   ShortVideoSource
	limits   FetchLimits
	log      *logrus.Logger
	now      func() time.Time
}

// Option configures the Service.
type Option func(*Service)

// WithYouTube wires the video-platform source.
func WithYouTube(src VideoSource) Option {
	return func(s *Service) { s.youtube = src }
}

// WithTwitch wires the livestream-platform source.
func WithTwitch(src StreamSource) Option {
	return func(s *Service) { s.twitch = src }
}

// WithTikTok wires the short-video-platform source.
func WithTikTok(src ShortVideoSource) Option {
	return func(s *Service) { s.tiktok = src }
}

// WithFetchLimits overrides the per-creator fetch limits.
func WithFetchLimits(limits FetchLimits) Option {
	return func(s *Service) { s.limits = limits }
}

// WithLogger sets the logger for recovered fetch failures.
func WithLogger(log *logrus.Logger) Option {
	return func(s *Service) { s.log = log }
}

// WithClock overrides the time source used for recency scoring.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a Service over the given roster. Sources left unwired
// contribute no content, which keeps partial deployments (e.g. no TikTok
// credentials) working.
func NewService(creators []content.Creator, opts ...Option) *Service {
	s := &Service{
		creators: creators,
		limits:   DefaultFetchLimits(),
		log:      logging.NewNopLogger(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetFeaturedContent produces the ranked, diversity-adjusted featured list.
// maxResults <= 0 selects DefaultMaxResults. Every adapter failure is
// recovered here: logged, counted, and treated as zero items for that
// creator/platform pair. An empty result is valid and means "nothing to
// feature". The only error returned is a cancelled context.
func (s *Service) GetFeaturedContent(ctx context.Context, maxResults int) ([]content.ScoredContent, error) {
	start := time.Now()
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	averages := content.AverageFollowers(s.creators)
	candidates := s.fetchAll(ctx)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	creatorsByID := make(map[string]content.Creator, len(s.creators))
	for _, c := range s.creators {
		creatorsByID[c.ID] = c
	}

	now := s.now()
	scored := make([]content.ScoredContent, 0, len(candidates))
	for _, item := range candidates {
		creator, ok := creatorsByID[item.CreatorID]
		if !ok {
			// Content that cannot be matched back to the roster is
			// dropped silently.
			continue
		}
		sc := scoring.ScoreContent(item, creator, averages, now)
		if sc.RawScore <= 0 {
			continue
		}
		scored = append(scored, sc)
	}

	// Candidates arrive in goroutine-completion order, so the sort breaks
	// raw-score ties on publish time and ID to keep runs reproducible.
	sort.SliceStable(scored, func(i, j int) bool {
		a, b := scored[i], scored[j]
		if a.RawScore != b.RawScore {
			return a.RawScore > b.RawScore
		}
		if !a.PublishedAt.Equal(b.PublishedAt) {
			return a.PublishedAt.After(b.PublishedAt)
		}
		return a.ID < b.ID
	})

	featured := selection.SelectTopN(scored, maxResults)

	metrics.Rankings.Inc()
	metrics.ObserveRankingDuration(start)
	s.log.WithFields(logging.Fields{
		"candidates": len(scored),
		"selected":   len(featured),
	}).Debug("featured ranking complete")

	return featured, nil
}

// fetchAll fans out one task per creator-platform feed and gathers every
// normalized item, stamped with its creator's identity. Fetch tasks always
// return nil so one failing platform never cancels the group; completion
// order cannot affect the final ranking because scoring and selection run
// only after the join.
func (s *Service) fetchAll(ctx context.Context) []content.Content {
	var (
		mu    sync.Mutex
		items []content.Content
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(fetchConcurrency)

	collect := func(creator content.Creator, platform content.Platform, fetched []content.Content, err error) {
		metrics.Fetches.WithLabelValues(string(platform)).Inc()
		if err != nil {
			metrics.FetchFailures.WithLabelValues(string(platform)).Inc()
			s.log.WithFields(logging.Fields{
				"creator":  creator.ID,
				"platform": platform,
			}).WithError(err).Warn("platform fetch failed, continuing without it")
			return
		}
		for i := range fetched {
			fetched[i].CreatorID = creator.ID
			fetched[i].CreatorName = creator.Name
			fetched[i].CreatorTier = creator.Tier
		}
		mu.Lock()
		items = append(items, fetched...)
		mu.Unlock()
	}

	for _, creator := range s.creators {
		creator := creator

		if profile, ok := creator.Platforms[content.PlatformYouTube]; ok && s.youtube != nil {
			handle := profile.Handle
			g.Go(func() error {
				fetched, err := s.youtube.FetchRecentVideos(ctx, handle, s.limits.Videos)
				collect(creator, content.PlatformYouTube, fetched, err)
				return nil
			})
		}

		if profile, ok := creator.Platforms[content.PlatformTwitch]; ok && s.twitch != nil {
			handle := profile.Handle
			g.Go(func() error {
				fetched, err := s.twitch.FetchRecentBroadcasts(ctx, handle, s.limits.Broadcasts)
				collect(creator, content.PlatformTwitch, fetched, err)
				return nil
			})
			g.Go(func() error {
				fetched, err := s.twitch.FetchRecentClips(ctx, handle, s.limits.Clips)
				collect(creator, content.PlatformTwitch, fetched, err)
				return nil
			})
		}

		if profile, ok := creator.Platforms[content.PlatformTikTok]; ok && s.tiktok != nil {
			handle := profile.Handle
			g.Go(func() error {
				fetched, err := s.tiktok.FetchRecentPosts(ctx, handle, s.limits.Posts)
				collect(creator, content.PlatformTikTok, fetched, err)
				return nil
			})
			g.Go(func() error {
				fetched, err := s.tiktok.FetchRecentLives(ctx, handle, s.limits.Lives)
				collect(creator, content.PlatformTikTok, fetched, err)
				return nil
			})
		}
	}

	_ = g.Wait()
	return items
}
