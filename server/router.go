package server

import (
	"net/http"
	"time"

	youtubeclient "music-stream/infrastructure/clients/youtube"
	httpHandler "music-stream/interfaces/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// InitiateRouter assembles the HTTP surface. The resilience core hides
// behind the video handler; the key pool is only exposed read-only for
// quota observability.
func InitiateRouter(videoHandler httpHandler.IVideoHandler, keyPool *youtubeclient.KeyPool) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:4200", "http://localhost:5173", "http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/healthz", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("api")
	{
		api.GET("/search", videoHandler.Search)
		api.GET("/videos/:videoId", videoHandler.GetVideoDetails)
		api.GET("/trending", videoHandler.GetTrending)
		api.GET("/playlists/items", videoHandler.GetPlaylistItems)
		api.GET("/recent-searches", videoHandler.GetRecentSearches)

		// Key pool usage, for dashboards and debugging.
		api.GET("/youtube/quota", func(ctx *gin.Context) {
			ctx.JSON(http.StatusOK, keyPool.Stats())
		})
	}

	return router
}
