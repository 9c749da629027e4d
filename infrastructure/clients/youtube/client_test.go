package youtube_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"music-stream/domain/dto"
	youtube "music-stream/infrastructure/clients/youtube"
)

// fakeYouTube is an httptest-backed stand-in for the Data API, just
// enough surface for the adapter's four operations.
type fakeYouTube struct {
	t *testing.T

	searchItems   []dto.YouTubeSearchItem
	playlistPages []dto.YouTubePlaylistItemsResponse
	knownPlaylist string

	searchCalls    int
	videosCalls    int
	playlistsCalls int
	pageCalls      int
}

func (f *fakeYouTube) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		f.searchCalls++
		writeJSON(f.t, w, dto.YouTubeSearchResponse{Items: f.searchItems})
	})
	mux.HandleFunc("/videos", func(w http.ResponseWriter, r *http.Request) {
		f.videosCalls++
		ids := strings.Split(r.URL.Query().Get("id"), ",")
		resp := dto.YouTubeVideosResponse{}
		for _, id := range ids {
			if id == "" || id == "missing" {
				continue
			}
			item := dto.YouTubeVideoItem{ID: id}
			item.Snippet.Title = "Title " + id
			item.Snippet.ChannelTitle = "Channel " + id
			item.Snippet.Thumbnails.High = &dto.YouTubeThumbnail{URL: "https://i.ytimg.com/" + id + ".jpg"}
			item.ContentDetails.Duration = "PT3M33S"
			resp.Items = append(resp.Items, item)
		}
		writeJSON(f.t, w, resp)
	})
	mux.HandleFunc("/playlists", func(w http.ResponseWriter, r *http.Request) {
		f.playlistsCalls++
		resp := dto.YouTubePlaylistsResponse{}
		if r.URL.Query().Get("id") == f.knownPlaylist {
			resp.Items = append(resp.Items, struct {
				ID      string             `json:"id"`
				Snippet dto.YouTubeSnippet `json:"snippet"`
			}{ID: f.knownPlaylist})
		}
		writeJSON(f.t, w, resp)
	})
	mux.HandleFunc("/playlistItems", func(w http.ResponseWriter, r *http.Request) {
		f.pageCalls++
		token := r.URL.Query().Get("pageToken")
		for i, page := range f.playlistPages {
			pageToken := ""
			if i > 0 {
				pageToken = fmt.Sprintf("page-%d", i)
			}
			if token == pageToken {
				writeJSON(f.t, w, page)
				return
			}
		}
		http.Error(w, "unknown page token", http.StatusBadRequest)
	})
	return mux
}

func writeJSON(t *testing.T, w http.ResponseWriter, v interface{}) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func searchItem(videoID string) dto.YouTubeSearchItem {
	item := dto.YouTubeSearchItem{}
	item.ID.Kind = "youtube#video"
	item.ID.VideoID = videoID
	return item
}

func channelItem(channelID string) dto.YouTubeSearchItem {
	item := dto.YouTubeSearchItem{}
	item.ID.Kind = "youtube#channel"
	item.ID.ChannelID = channelID
	return item
}

func TestSearchVideosTwoStage(t *testing.T) {
	fake := &fakeYouTube{t: t, searchItems: []dto.YouTubeSearchItem{
		searchItem("vid-1"),
		channelItem("chan-1"), // non-video result, filtered before stage two
		searchItem("vid-2"),
	}}
	server := httptest.NewServer(fake.handler())
	defer server.Close()

	pool, err := youtube.NewKeyPool([]string{"test-key"})
	require.NoError(t, err)
	client := youtube.NewClient(youtube.NewFetcher(pool), server.URL)

	videos, err := client.SearchVideos(context.Background(), "test query")
	require.NoError(t, err)

	require.Len(t, videos, 2)
	assert.Equal(t, "vid-1", videos[0].ID)
	assert.Equal(t, "Title vid-1", videos[0].Title)
	assert.Equal(t, "Channel vid-1", videos[0].ChannelTitle)
	assert.Equal(t, "https://i.ytimg.com/vid-1.jpg", videos[0].Thumbnail)
	assert.Equal(t, "3:33", videos[0].Duration)
	assert.Equal(t, 1, fake.searchCalls)
	assert.Equal(t, 1, fake.videosCalls)
}

func TestSearchVideosNoMatches(t *testing.T) {
	fake := &fakeYouTube{t: t, searchItems: []dto.YouTubeSearchItem{channelItem("chan-1")}}
	server := httptest.NewServer(fake.handler())
	defer server.Close()

	pool, err := youtube.NewKeyPool([]string{"test-key"})
	require.NoError(t, err)
	client := youtube.NewClient(youtube.NewFetcher(pool), server.URL)

	videos, err := client.SearchVideos(context.Background(), "nothing")
	require.NoError(t, err)
	assert.Empty(t, videos)
	// Without any video ids the detail stage is skipped entirely.
	assert.Equal(t, 0, fake.videosCalls)
}

func TestGetVideoDetailsNotFound(t *testing.T) {
	fake := &fakeYouTube{t: t}
	server := httptest.NewServer(fake.handler())
	defer server.Close()

	pool, err := youtube.NewKeyPool([]string{"test-key"})
	require.NoError(t, err)
	client := youtube.NewClient(youtube.NewFetcher(pool), server.URL)

	video, err := client.GetVideoDetails(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, video)
}

func TestGetVideoDetailsFound(t *testing.T) {
	fake := &fakeYouTube{t: t}
	server := httptest.NewServer(fake.handler())
	defer server.Close()

	pool, err := youtube.NewKeyPool([]string{"test-key"})
	require.NoError(t, err)
	client := youtube.NewClient(youtube.NewFetcher(pool), server.URL)

	video, err := client.GetVideoDetails(context.Background(), "vid-9")
	require.NoError(t, err)
	require.NotNil(t, video)
	assert.Equal(t, "vid-9", video.ID)
	assert.Equal(t, "3:33", video.Duration)
}

func TestGetTrendingVideos(t *testing.T) {
	fake := &fakeYouTube{t: t}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/videos", r.URL.Path)
		assert.Equal(t, "mostPopular", r.URL.Query().Get("chart"))
		assert.Equal(t, "10", r.URL.Query().Get("videoCategoryId"))
		resp := dto.YouTubeVideosResponse{}
		item := dto.YouTubeVideoItem{ID: "trend-1"}
		item.Snippet.Title = "Trending"
		item.ContentDetails.Duration = "PT45S"
		resp.Items = append(resp.Items, item)
		writeJSON(fake.t, w, resp)
	}))
	defer server.Close()

	pool, err := youtube.NewKeyPool([]string{"test-key"})
	require.NoError(t, err)
	client := youtube.NewClient(youtube.NewFetcher(pool), server.URL)

	videos, err := client.GetTrendingVideos(context.Background())
	require.NoError(t, err)
	require.Len(t, videos, 1)
	assert.Equal(t, "0:45", videos[0].Duration)
}

func playlistPage(count, pageIndex int, nextToken string) dto.YouTubePlaylistItemsResponse {
	page := dto.YouTubePlaylistItemsResponse{NextPageToken: nextToken}
	for i := 0; i < count; i++ {
		item := dto.YouTubePlaylistItem{ID: fmt.Sprintf("entry-%d-%d", pageIndex, i)}
		item.Snippet.ResourceID = &dto.YouTubeResource{
			Kind:    "youtube#video",
			VideoID: fmt.Sprintf("vid-%d-%d", pageIndex, i),
		}
		page.Items = append(page.Items, item)
	}
	return page
}

func TestGetPlaylistVideosPaginatesAllPages(t *testing.T) {
	fake := &fakeYouTube{
		t:             t,
		knownPlaylist: "PL123",
		playlistPages: []dto.YouTubePlaylistItemsResponse{
			playlistPage(50, 0, "page-1"),
			playlistPage(50, 1, "page-2"),
			playlistPage(7, 2, ""),
		},
	}
	server := httptest.NewServer(fake.handler())
	defer server.Close()

	pool, err := youtube.NewKeyPool([]string{"test-key"})
	require.NoError(t, err)
	client := youtube.NewClient(youtube.NewFetcher(pool), server.URL)

	videos, err := client.GetPlaylistVideos(context.Background(), "PL123")
	require.NoError(t, err)

	assert.Len(t, videos, 107)
	assert.Equal(t, 1, fake.playlistsCalls, "playlist id must be validated exactly once")
	assert.Equal(t, 3, fake.pageCalls)
	assert.Equal(t, 3, fake.videosCalls)
}

func TestGetPlaylistVideosExtractsIDFromURL(t *testing.T) {
	fake := &fakeYouTube{
		t:             t,
		knownPlaylist: "PLxyz",
		playlistPages: []dto.YouTubePlaylistItemsResponse{playlistPage(2, 0, "")},
	}
	server := httptest.NewServer(fake.handler())
	defer server.Close()

	pool, err := youtube.NewKeyPool([]string{"test-key"})
	require.NoError(t, err)
	client := youtube.NewClient(youtube.NewFetcher(pool), server.URL)

	videos, err := client.GetPlaylistVideos(context.Background(), "https://www.youtube.com/playlist?list=PLxyz")
	require.NoError(t, err)
	assert.Len(t, videos, 2)
}

func TestGetPlaylistVideosRejectsURLWithoutListParam(t *testing.T) {
	fake := &fakeYouTube{t: t}
	server := httptest.NewServer(fake.handler())
	defer server.Close()

	pool, err := youtube.NewKeyPool([]string{"test-key"})
	require.NoError(t, err)
	client := youtube.NewClient(youtube.NewFetcher(pool), server.URL)

	_, err = client.GetPlaylistVideos(context.Background(), "https://www.youtube.com/watch?v=abc123")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list")
	assert.Equal(t, 0, fake.playlistsCalls)
}

func TestGetPlaylistVideosRejectsNonPlaylistID(t *testing.T) {
	fake := &fakeYouTube{t: t, knownPlaylist: "PL123"}
	server := httptest.NewServer(fake.handler())
	defer server.Close()

	pool, err := youtube.NewKeyPool([]string{"test-key"})
	require.NoError(t, err)
	client := youtube.NewClient(youtube.NewFetcher(pool), server.URL)

	_, err = client.GetPlaylistVideos(context.Background(), "bare-video-id")
	require.ErrorIs(t, err, youtube.ErrNotPlaylist)
	assert.Equal(t, 0, fake.pageCalls)
}

func TestSearchSurfacesQuotaExhaustion(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, quotaErrorBody)
	}))
	defer server.Close()

	pool, err := youtube.NewKeyPool([]string{"key-1", "key-2"})
	require.NoError(t, err)
	client := youtube.NewClient(youtube.NewFetcher(pool), server.URL)

	_, err = client.SearchVideos(context.Background(), "anything")
	require.Error(t, err)
	assert.True(t, errors.Is(err, youtube.ErrQuotaExhausted))
}
