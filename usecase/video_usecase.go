package usecase

import (
	"context"
	"fmt"

	"music-stream/domain/model"
	"music-stream/domain/repository"
	"music-stream/infrastructure/logger"
)

// IVideoUseCase is the surface the route layer consumes. Every operation
// follows cache-aside: a valid cached response short-circuits the
// provider entirely.
type IVideoUseCase interface {
	SearchVideos(ctx context.Context, query string) ([]model.Video, error)
	// GetVideoDetails returns (nil, nil) when the id does not exist.
	GetVideoDetails(ctx context.Context, videoID string) (*model.Video, error)
	GetTrendingVideos(ctx context.Context) ([]model.Video, error)
	GetPlaylistVideos(ctx context.Context, playlistID string) ([]model.Video, error)
	RecentSearches(limit int) []string
}

// VideoUseCase composes the provider adapter, the response cache and the
// recent searches log.
type VideoUseCase struct {
	provider repository.IVideoProvider
	cache    repository.IResponseCache
	recent   repository.IRecentSearches
}

// NewVideoUseCase wires the use case; all collaborators are required.
func NewVideoUseCase(provider repository.IVideoProvider, cache repository.IResponseCache, recent repository.IRecentSearches) IVideoUseCase {
	return &VideoUseCase{provider: provider, cache: cache, recent: recent}
}

// SearchVideos records the query in the recent log unconditionally (cache
// hits included), then serves from cache or runs the provider's two-stage
// search and caches the result.
func (u *VideoUseCase) SearchVideos(ctx context.Context, query string) ([]model.Video, error) {
	if query == "" {
		return nil, fmt.Errorf("search query is required")
	}
	u.recent.Add(query)

	if videos, ok := u.cache.GetSearchResults(query); ok {
		logger.GetLogger().WithField("query", query).Debug("Serving search results from cache")
		return videos, nil
	}

	videos, err := u.provider.SearchVideos(ctx, query)
	if err != nil {
		return nil, err
	}
	u.cache.SaveSearchResults(query, videos)
	return videos, nil
}

// GetVideoDetails serves a single video, cache-aside. A provider miss
// (nil, nil) is not cached: absence is cheap to re-check and may heal.
func (u *VideoUseCase) GetVideoDetails(ctx context.Context, videoID string) (*model.Video, error) {
	if videoID == "" {
		return nil, fmt.Errorf("video ID is required")
	}

	if video, ok := u.cache.GetVideoDetails(videoID); ok {
		logger.GetLogger().WithField("videoId", videoID).Debug("Serving video details from cache")
		return video, nil
	}

	video, err := u.provider.GetVideoDetails(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if video != nil {
		u.cache.SaveVideoDetails(videoID, *video)
	}
	return video, nil
}

// GetTrendingVideos serves the trending chart, cache-aside.
func (u *VideoUseCase) GetTrendingVideos(ctx context.Context) ([]model.Video, error) {
	if videos, ok := u.cache.GetTrendingVideos(); ok {
		logger.GetLogger().Debug("Serving trending videos from cache")
		return videos, nil
	}

	videos, err := u.provider.GetTrendingVideos(ctx)
	if err != nil {
		return nil, err
	}
	u.cache.SaveTrendingVideos(videos)
	return videos, nil
}

// GetPlaylistVideos is not cached: playlist imports are rare, large and
// expected to reflect the playlist's current contents.
func (u *VideoUseCase) GetPlaylistVideos(ctx context.Context, playlistID string) ([]model.Video, error) {
	if playlistID == "" {
		return nil, fmt.Errorf("playlist ID is required")
	}
	return u.provider.GetPlaylistVideos(ctx, playlistID)
}

// RecentSearches exposes the persisted search history.
func (u *VideoUseCase) RecentSearches(limit int) []string {
	return u.recent.Recent(limit)
}
