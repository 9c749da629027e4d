package dto

// Request parameter structs for the YouTube Data API v3, encoded into
// query strings with google/go-querystring.

// SearchParams drives search.list.
type SearchParams struct {
	Part       string `url:"part"`
	MaxResults int64  `url:"maxResults"`
	Query      string `url:"q"`
	Type       string `url:"type"`
}

// VideosParams drives videos.list, both by id batch and by chart.
type VideosParams struct {
	Part            string `url:"part"`
	ID              string `url:"id,omitempty"`
	Chart           string `url:"chart,omitempty"`
	VideoCategoryID string `url:"videoCategoryId,omitempty"`
	MaxResults      int64  `url:"maxResults,omitempty"`
}

// PlaylistItemsParams drives playlistItems.list, continuation-token style.
type PlaylistItemsParams struct {
	Part       string `url:"part"`
	PlaylistID string `url:"playlistId"`
	MaxResults int64  `url:"maxResults"`
	PageToken  string `url:"pageToken,omitempty"`
}

// PlaylistsParams drives playlists.list, used for playlist id validation.
type PlaylistsParams struct {
	Part       string `url:"part"`
	ID         string `url:"id"`
	MaxResults int64  `url:"maxResults"`
}
