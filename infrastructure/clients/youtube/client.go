package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"music-stream/domain/dto"
	"music-stream/domain/model"
	"music-stream/domain/repository"
	"music-stream/infrastructure/logger"

	"github.com/google/go-querystring/query"
)

// DefaultBaseURL is the YouTube Data API v3 endpoint root.
const DefaultBaseURL = "https://www.googleapis.com/youtube/v3"

const (
	searchMaxResults      = 20
	trendingMaxResults    = 20
	playlistPageSize      = 50
	musicCategoryID       = "10"
	mostPopularChart      = "mostPopular"
	playlistPageHardLimit = 200 // ~10k items; guards against a provider that never drops the token
)

// Client is the provider adapter against the YouTube Data API. All
// outbound calls go through the Fetcher, which owns credential injection
// and rotation; the client owns payload parsing into domain Videos.
type Client struct {
	baseURL string
	fetcher *Fetcher
}

// NewClient builds the adapter. An empty baseURL selects the real API;
// tests point it at a fake server.
func NewClient(fetcher *Fetcher, baseURL string) repository.IVideoProvider {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{baseURL: strings.TrimSuffix(baseURL, "/"), fetcher: fetcher}
}

// SearchVideos runs the two-stage search protocol: search.list for
// matching ids, then a videos.list batch for full details (duration is
// only available on the videos resource). Non-video matches are filtered
// out before the second stage.
func (c *Client) SearchVideos(ctx context.Context, q string) ([]model.Video, error) {
	searchURL, err := c.endpoint("search", dto.SearchParams{
		Part:       "snippet",
		MaxResults: searchMaxResults,
		Query:      q,
		Type:       "video",
	})
	if err != nil {
		return nil, err
	}

	var searchResp dto.YouTubeSearchResponse
	if err := c.getJSON(ctx, "search", searchURL, &searchResp); err != nil {
		return nil, err
	}

	videoIDs := make([]string, 0, len(searchResp.Items))
	for _, item := range searchResp.Items {
		if item.ID.VideoID != "" {
			videoIDs = append(videoIDs, item.ID.VideoID)
		}
	}
	if len(videoIDs) == 0 {
		return []model.Video{}, nil
	}

	return c.fetchVideoBatch(ctx, videoIDs)
}

// GetVideoDetails returns (nil, nil) when the provider has no such id.
func (c *Client) GetVideoDetails(ctx context.Context, videoID string) (*model.Video, error) {
	detailsURL, err := c.endpoint("videos", dto.VideosParams{
		Part: "snippet,contentDetails",
		ID:   videoID,
	})
	if err != nil {
		return nil, err
	}

	var resp dto.YouTubeVideosResponse
	if err := c.getJSON(ctx, "video details", detailsURL, &resp); err != nil {
		return nil, err
	}
	if len(resp.Items) == 0 {
		return nil, nil
	}
	v := toVideo(resp.Items[0])
	return &v, nil
}

// GetTrendingVideos fetches the music chart.
func (c *Client) GetTrendingVideos(ctx context.Context) ([]model.Video, error) {
	trendingURL, err := c.endpoint("videos", dto.VideosParams{
		Part:            "snippet,contentDetails",
		Chart:           mostPopularChart,
		VideoCategoryID: musicCategoryID,
		MaxResults:      trendingMaxResults,
	})
	if err != nil {
		return nil, err
	}

	var resp dto.YouTubeVideosResponse
	if err := c.getJSON(ctx, "trending", trendingURL, &resp); err != nil {
		return nil, err
	}
	videos := make([]model.Video, 0, len(resp.Items))
	for _, item := range resp.Items {
		videos = append(videos, toVideo(item))
	}
	return videos, nil
}

// GetPlaylistVideos accepts a playlist id or a youtube.com/youtu.be URL,
// validates it resolves to an actual playlist (exactly once), then pages
// through playlistItems with the provider's continuation token, running
// the detail batch per page and accumulating the results.
func (c *Client) GetPlaylistVideos(ctx context.Context, playlistID string) ([]model.Video, error) {
	playlistID, err := extractPlaylistID(playlistID)
	if err != nil {
		return nil, err
	}

	ok, err := c.isValidPlaylist(ctx, playlistID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotPlaylist
	}

	var videos []model.Video
	pageToken := ""
	for page := 0; page < playlistPageHardLimit; page++ {
		pageURL, err := c.endpoint("playlistItems", dto.PlaylistItemsParams{
			Part:       "snippet",
			PlaylistID: playlistID,
			MaxResults: playlistPageSize,
			PageToken:  pageToken,
		})
		if err != nil {
			return nil, err
		}

		var pageResp dto.YouTubePlaylistItemsResponse
		if err := c.getJSON(ctx, "playlist items", pageURL, &pageResp); err != nil {
			return nil, err
		}

		videoIDs := make([]string, 0, len(pageResp.Items))
		for _, item := range pageResp.Items {
			if item.Snippet.ResourceID != nil && item.Snippet.ResourceID.VideoID != "" {
				videoIDs = append(videoIDs, item.Snippet.ResourceID.VideoID)
			}
		}
		if len(videoIDs) > 0 {
			pageVideos, err := c.fetchVideoBatch(ctx, videoIDs)
			if err != nil {
				return nil, err
			}
			videos = append(videos, pageVideos...)
		}

		if pageResp.NextPageToken == "" {
			break
		}
		pageToken = pageResp.NextPageToken
	}
	return videos, nil
}

// isValidPlaylist asks playlists.list whether the id names a playlist.
func (c *Client) isValidPlaylist(ctx context.Context, playlistID string) (bool, error) {
	validateURL, err := c.endpoint("playlists", dto.PlaylistsParams{
		Part:       "snippet",
		ID:         playlistID,
		MaxResults: 1,
	})
	if err != nil {
		return false, err
	}

	resp, err := c.fetcher.Do(ctx, validateURL)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		if quotaErr := quotaFromResponse(resp); quotaErr != nil {
			return false, quotaErr
		}
		return false, nil
	}
	var data dto.YouTubePlaylistsResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return false, nil
	}
	return len(data.Items) > 0, nil
}

// fetchVideoBatch resolves full details for a batch of ids.
func (c *Client) fetchVideoBatch(ctx context.Context, videoIDs []string) ([]model.Video, error) {
	batchURL, err := c.endpoint("videos", dto.VideosParams{
		Part: "snippet,contentDetails",
		ID:   strings.Join(videoIDs, ","),
	})
	if err != nil {
		return nil, err
	}

	var resp dto.YouTubeVideosResponse
	if err := c.getJSON(ctx, "video batch", batchURL, &resp); err != nil {
		return nil, err
	}
	videos := make([]model.Video, 0, len(resp.Items))
	for _, item := range resp.Items {
		videos = append(videos, toVideo(item))
	}
	return videos, nil
}

// getJSON runs a fetch through the rotation layer and decodes the body,
// translating provider failures into the adapter's error taxonomy.
func (c *Client) getJSON(ctx context.Context, op, rawURL string, out interface{}) error {
	resp, err := c.fetcher.Do(ctx, rawURL)
	if err != nil {
		logger.GetLogger().WithFields(map[string]interface{}{
			"operation": op,
			"error":     err,
		}).Error("Provider request failed")
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		if quotaErr := quotaFromResponse(resp); quotaErr != nil {
			return fmt.Errorf("%s: %w", op, quotaErr)
		}
		return fmt.Errorf("%s: youtube api returned status %s", op, resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode provider response: %w", op, err)
	}
	return nil
}

// quotaFromResponse detects the pool-wide exhaustion case: the fetcher
// hands back the original 403 once every key has been tried.
func quotaFromResponse(resp *http.Response) error {
	if resp.StatusCode != http.StatusForbidden {
		return nil
	}
	var errResp dto.YouTubeErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil {
		return nil
	}
	msg := errResp.Error.Message
	if msg != "" && (strings.Contains(msg, "quota") || strings.Contains(msg, "Quota") || strings.Contains(msg, "exceeded")) {
		return ErrQuotaExhausted
	}
	return nil
}

// extractPlaylistID pulls the `list` parameter out of a YouTube URL, or
// passes a bare id through.
func extractPlaylistID(input string) (string, error) {
	if !strings.Contains(input, "youtube.com") && !strings.Contains(input, "youtu.be") {
		return input, nil
	}
	u, err := url.Parse(input)
	if err != nil {
		return "", fmt.Errorf("the supplied playlist URL is not valid: %w", err)
	}
	listParam := u.Query().Get("list")
	if listParam == "" {
		return "", fmt.Errorf("the supplied URL does not contain a playlist id (missing \"list\" parameter)")
	}
	return listParam, nil
}

// endpoint assembles <base>/<resource>?<params>; the API key is appended
// later by the Fetcher.
func (c *Client) endpoint(resource string, params interface{}) (string, error) {
	values, err := query.Values(params)
	if err != nil {
		return "", fmt.Errorf("encode %s params: %w", resource, err)
	}
	return c.baseURL + "/" + resource + "?" + values.Encode(), nil
}

// toVideo maps a provider video item to the domain shape.
func toVideo(item dto.YouTubeVideoItem) model.Video {
	return model.Video{
		ID:           item.ID,
		Title:        item.Snippet.Title,
		Thumbnail:    item.Snippet.Thumbnails.BestURL(),
		ChannelTitle: item.Snippet.ChannelTitle,
		Duration:     formatDuration(item.ContentDetails.Duration),
	}
}
