package repository

import (
	"context"

	"music-stream/domain/model"
)

// IVideoProvider is the outbound contract against the external video
// metadata provider. Implementations own credential handling and payload
// parsing; callers only ever see domain Video values.
type IVideoProvider interface {
	// SearchVideos runs the two-stage search (match, then detail batch).
	SearchVideos(ctx context.Context, query string) ([]model.Video, error)
	// GetVideoDetails returns (nil, nil) when the provider reports no such id.
	GetVideoDetails(ctx context.Context, videoID string) (*model.Video, error)
	// GetTrendingVideos returns the provider's music chart.
	GetTrendingVideos(ctx context.Context) ([]model.Video, error)
	// GetPlaylistVideos validates the playlist id (or URL) and accumulates
	// every page of the playlist.
	GetPlaylistVideos(ctx context.Context, playlistID string) ([]model.Video, error)
}

// IResponseCache is the time-windowed cache of provider responses.
type IResponseCache interface {
	GetSearchResults(query string) ([]model.Video, bool)
	SaveSearchResults(query string, videos []model.Video)
	GetVideoDetails(videoID string) (*model.Video, bool)
	SaveVideoDetails(videoID string, video model.Video)
	GetTrendingVideos() ([]model.Video, bool)
	SaveTrendingVideos(videos []model.Video)
}

// IRecentSearches is the bounded, persisted log of search terms.
type IRecentSearches interface {
	Add(query string)
	Recent(limit int) []string
}
