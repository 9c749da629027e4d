package youtube

import "errors"

// ErrQuotaExhausted signals that every configured API key is out of
// quota. The route layer maps it to a 429 with a machine-readable code,
// distinct from empty results and transport failures.
var ErrQuotaExhausted = errors.New("youtube api quota exhausted on all keys")

// ErrNotPlaylist signals that a supplied playlist id or URL does not
// resolve to a playlist (a bare video id, for example).
var ErrNotPlaylist = errors.New("the supplied id does not resolve to a YouTube playlist; make sure it is a playlist URL, not a single video")
