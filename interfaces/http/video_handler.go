package http

import (
	"errors"
	"net/http"
	"strconv"

	"music-stream/infrastructure/clients/youtube"
	"music-stream/usecase"

	"github.com/gin-gonic/gin"
)

// IVideoHandler defines the HTTP handlers over the video use case.
type IVideoHandler interface {
	Search(ctx *gin.Context)
	GetVideoDetails(ctx *gin.Context)
	GetTrending(ctx *gin.Context)
	GetPlaylistItems(ctx *gin.Context)
	GetRecentSearches(ctx *gin.Context)
}

// VideoHandler translates use case results and errors into HTTP. It is
// the boundary where the typed quota error becomes a 429 with a
// machine-readable code the frontend keys on.
type VideoHandler struct {
	videoUseCase usecase.IVideoUseCase
}

// NewVideoHandler creates a new video handler instance.
func NewVideoHandler(videoUseCase usecase.IVideoUseCase) IVideoHandler {
	return &VideoHandler{videoUseCase: videoUseCase}
}

// Search handles GET /api/search?query=...
func (h *VideoHandler) Search(ctx *gin.Context) {
	query := ctx.Query("query")
	if query == "" {
		query = ctx.Query("q")
	}
	if query == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "query parameter is required"})
		return
	}

	videos, err := h.videoUseCase.SearchVideos(ctx.Request.Context(), query)
	if err != nil {
		h.renderError(ctx, err, "Failed to search videos")
		return
	}
	ctx.JSON(http.StatusOK, videos)
}

// GetVideoDetails handles GET /api/videos/:videoId
func (h *VideoHandler) GetVideoDetails(ctx *gin.Context) {
	videoID := ctx.Param("videoId")
	video, err := h.videoUseCase.GetVideoDetails(ctx.Request.Context(), videoID)
	if err != nil {
		h.renderError(ctx, err, "Failed to get video")
		return
	}
	if video == nil {
		ctx.JSON(http.StatusNotFound, gin.H{"message": "Video not found"})
		return
	}
	ctx.JSON(http.StatusOK, video)
}

// GetTrending handles GET /api/trending
func (h *VideoHandler) GetTrending(ctx *gin.Context) {
	videos, err := h.videoUseCase.GetTrendingVideos(ctx.Request.Context())
	if err != nil {
		h.renderError(ctx, err, "Failed to get trending videos")
		return
	}
	ctx.JSON(http.StatusOK, videos)
}

// GetPlaylistItems handles GET /api/playlists/items?id=<playlist id or URL>
func (h *VideoHandler) GetPlaylistItems(ctx *gin.Context) {
	playlistID := ctx.Query("id")
	if playlistID == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "id parameter is required"})
		return
	}

	videos, err := h.videoUseCase.GetPlaylistVideos(ctx.Request.Context(), playlistID)
	if err != nil {
		if errors.Is(err, youtube.ErrNotPlaylist) {
			ctx.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		h.renderError(ctx, err, "Failed to get playlist items")
		return
	}
	ctx.JSON(http.StatusOK, videos)
}

// GetRecentSearches handles GET /api/recent-searches?limit=5
func (h *VideoHandler) GetRecentSearches(ctx *gin.Context) {
	limit := 5
	if raw := ctx.Query("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			limit = v
		}
	}
	ctx.JSON(http.StatusOK, h.videoUseCase.RecentSearches(limit))
}

// renderError maps the error taxonomy onto HTTP statuses: pool-wide quota
// exhaustion is a 429 the client can distinguish from empty results and
// transport failures, which stay 500.
func (h *VideoHandler) renderError(ctx *gin.Context, err error, fallback string) {
	if errors.Is(err, youtube.ErrQuotaExhausted) {
		ctx.JSON(http.StatusTooManyRequests, gin.H{
			"message": "YouTube API quota limit exceeded. Please try again later.",
			"error":   "QUOTA_EXCEEDED",
		})
		return
	}
	ctx.JSON(http.StatusInternalServerError, gin.H{
		"message": fallback,
		"error":   err.Error(),
	})
}
