package model

// Video represents a playable track sourced from YouTube.
// Values are immutable once constructed; the adapter always builds
// whole videos from provider payloads, never partial updates.
type Video struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Thumbnail    string `json:"thumbnail"`
	ChannelTitle string `json:"channel_title"`
	// Duration is human readable: "m:ss", or "h:mm:ss" when an hour or longer.
	// Empty when the provider did not report a duration.
	Duration string `json:"duration,omitempty"`
}
