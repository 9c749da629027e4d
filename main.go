package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"music-stream/infrastructure/cache"
	youtubeclient "music-stream/infrastructure/clients/youtube"
	"music-stream/infrastructure/configuration"
	"music-stream/infrastructure/logger"
	"music-stream/infrastructure/persistence"
	httpHandler "music-stream/interfaces/http"
	"music-stream/server"
	"music-stream/usecase"

	"golang.org/x/sync/errgroup"
)

func recoverPanic() {
	if err := recover(); err != nil {
		logger.GetLogger().WithField("error", err).Error("Application panic recovered")
	}
}

func main() {
	defer recoverPanic()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(interrupt)

	g, ctx := errgroup.WithContext(ctx)

	// Load env from files (non-destructive; OS env still has precedence)
	configuration.LoadEnvFromFile("config.env", ".env")
	configuration.LoadConfig()
	app := configuration.C.App

	apiKeys, err := configuration.GetYouTubeAPIKeys()
	if err != nil {
		logger.GetLogger().WithField("error", err).Fatal("YouTube API keys missing")
	}
	keyPool, err := youtubeclient.NewKeyPool(apiKeys)
	if err != nil {
		logger.GetLogger().WithField("error", err).Fatal("Failed to initialize API key pool")
	}
	fetcher := youtubeclient.NewFetcher(keyPool)
	provider := youtubeclient.NewClient(fetcher, "")

	redisAddr := ""
	if configuration.C.RedisClient.Host != "" {
		redisAddr = fmt.Sprintf("%s:%s", configuration.C.RedisClient.Host, configuration.C.RedisClient.Port)
	}
	redisClient := cache.NewRedisClient(ctx, redisAddr, configuration.C.RedisClient.Username, configuration.C.RedisClient.Password)

	responseCache := cache.NewResponseCache(
		time.Duration(configuration.C.Cache.DurationMinutes)*time.Minute,
		time.Duration(configuration.C.Cache.SweepMinutes)*time.Minute,
		redisClient,
	)
	g.Go(func() error {
		err := responseCache.Run(ctx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})

	recentSearches := persistence.NewRecentSearchesRepository(
		filepath.Join(configuration.C.Data.Dir, "recent_searches.json"),
	)

	videoUseCase := usecase.NewVideoUseCase(provider, responseCache, recentSearches)
	videoHandler := httpHandler.NewVideoHandler(videoUseCase)
	router := server.InitiateRouter(videoHandler, keyPool)

	logger.GetLogger().WithFields(map[string]interface{}{
		"port":         app.Port,
		"keys":         keyPool.Stats().Total,
		"cacheMinutes": configuration.C.Cache.DurationMinutes,
		"redis":        redisClient != nil,
	}).Info("Starting application")

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", app.Port),
		Handler: router,
	}
	g.Go(func() error {
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	select {
	case <-interrupt:
		logger.GetLogger().Info("Application shutdown requested")
	case <-ctx.Done():
	}

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = httpServer.Shutdown(shutdownCtx)

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.GetLogger().WithField("error", err).Error("Server returned an error")
		os.Exit(2)
	}
}
