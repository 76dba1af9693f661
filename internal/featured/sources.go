package featured

import (
	"context"

	"github.com/bigtalents/featured/internal/content"
)

// VideoSource fetches a creator's recent uploads from the video platform.
// Implementations must normalize items but leave creator fields blank; the
// orchestrator stamps them.
type VideoSource interface {
	FetchRecentVideos(ctx context.Context, channelID string, limit int) ([]content.Content, error)
}

// StreamSource fetches a creator's recent broadcasts and clips from the
// livestream platform.
type StreamSource interface {
	FetchRecentBroadcasts(ctx context.Context, userID string, limit int) ([]content.Content, error)
	FetchRecentClips(ctx context.Context, userID string, limit int) ([]content.Content, error)
}

// ShortVideoSource fetches a creator's recent posts and live recaps from
// the short-video platform.
type ShortVideoSource interface {
	FetchRecentPosts(ctx context.Context, username string, limit int) ([]content.Content, error)
	FetchRecentLives(ctx context.Context, username string, limit int) ([]content.Content, error)
}
