package dto

// Wire shapes for the YouTube Data API v3. Only the fields the adapter
// reads are declared; everything else in the provider payload is ignored.

// YouTubeThumbnail is a single thumbnail rendition.
type YouTubeThumbnail struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// YouTubeThumbnails holds the renditions the API returns per item.
type YouTubeThumbnails struct {
	Default *YouTubeThumbnail `json:"default,omitempty"`
	Medium  *YouTubeThumbnail `json:"medium,omitempty"`
	High    *YouTubeThumbnail `json:"high,omitempty"`
}

// BestURL prefers the highest resolution rendition available.
func (t YouTubeThumbnails) BestURL() string {
	switch {
	case t.High != nil:
		return t.High.URL
	case t.Medium != nil:
		return t.Medium.URL
	case t.Default != nil:
		return t.Default.URL
	}
	return ""
}

// YouTubeResource identifies the item a search result or playlist entry
// points at. Only one of the id fields is populated.
type YouTubeResource struct {
	Kind       string `json:"kind"`
	VideoID    string `json:"videoId,omitempty"`
	ChannelID  string `json:"channelId,omitempty"`
	PlaylistID string `json:"playlistId,omitempty"`
}

// YouTubeSnippet is the shared metadata block on search, video and
// playlistItem resources.
type YouTubeSnippet struct {
	PublishedAt  string            `json:"publishedAt"`
	ChannelID    string            `json:"channelId"`
	Title        string            `json:"title"`
	Description  string            `json:"description"`
	Thumbnails   YouTubeThumbnails `json:"thumbnails"`
	ChannelTitle string            `json:"channelTitle"`
	ResourceID   *YouTubeResource  `json:"resourceId,omitempty"` // playlistItems only
}

// YouTubeSearchItem is one entry of a search.list response.
type YouTubeSearchItem struct {
	ID      YouTubeResource `json:"id"`
	Snippet YouTubeSnippet  `json:"snippet"`
}

// YouTubeSearchResponse is the search.list envelope.
type YouTubeSearchResponse struct {
	Kind          string              `json:"kind"`
	ETag          string              `json:"etag"`
	NextPageToken string              `json:"nextPageToken,omitempty"`
	PrevPageToken string              `json:"prevPageToken,omitempty"`
	PageInfo      YouTubePageInfo     `json:"pageInfo"`
	Items         []YouTubeSearchItem `json:"items"`
}

// YouTubeContentDetails carries the ISO-8601 duration of a video.
type YouTubeContentDetails struct {
	Duration string `json:"duration"`
}

// YouTubeVideoItem is one entry of a videos.list response.
type YouTubeVideoItem struct {
	ID             string                `json:"id"`
	Snippet        YouTubeSnippet        `json:"snippet"`
	ContentDetails YouTubeContentDetails `json:"contentDetails"`
}

// YouTubeVideosResponse is the videos.list envelope.
type YouTubeVideosResponse struct {
	Kind     string             `json:"kind"`
	ETag     string             `json:"etag"`
	PageInfo YouTubePageInfo    `json:"pageInfo"`
	Items    []YouTubeVideoItem `json:"items"`
}

// YouTubePlaylistItem is one entry of a playlistItems.list response.
type YouTubePlaylistItem struct {
	ID      string         `json:"id"`
	Snippet YouTubeSnippet `json:"snippet"`
}

// YouTubePlaylistItemsResponse is the playlistItems.list envelope.
type YouTubePlaylistItemsResponse struct {
	Kind          string                `json:"kind"`
	NextPageToken string                `json:"nextPageToken,omitempty"`
	PageInfo      YouTubePageInfo       `json:"pageInfo"`
	Items         []YouTubePlaylistItem `json:"items"`
}

// YouTubePlaylistsResponse is the playlists.list envelope; the adapter
// only uses it to confirm an id actually resolves to a playlist.
type YouTubePlaylistsResponse struct {
	Kind  string `json:"kind"`
	Items []struct {
		ID      string         `json:"id"`
		Snippet YouTubeSnippet `json:"snippet"`
	} `json:"items"`
}

// YouTubePageInfo is the paging block every list envelope carries.
type YouTubePageInfo struct {
	TotalResults   int64 `json:"totalResults"`
	ResultsPerPage int64 `json:"resultsPerPage"`
}

// YouTubeErrorResponse is the error envelope on non-2xx responses. Quota
// exhaustion is keyed on the message content, per the API's convention.
type YouTubeErrorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Errors  []struct {
			Reason string `json:"reason"`
			Domain string `json:"domain"`
		} `json:"errors"`
	} `json:"error"`
}
