package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/Cassio-Ac/minerva-intelligence-sub006/internal/api"
	"github.com/Cassio-Ac/minerva-intelligence-sub006/internal/core/service"
	"github.com/Cassio-Ac/minerva-intelligence-sub006/internal/infrastructure/config"
	mongodb "github.com/Cassio-Ac/minerva-intelligence-sub006/internal/infrastructure/db/mongo"
	redisdb "github.com/Cassio-Ac/minerva-intelligence-sub006/internal/infrastructure/db/redis"
	"github.com/Cassio-Ac/minerva-intelligence-sub006/internal/infrastructure/feed"
	"github.com/Cassio-Ac/minerva-intelligence-sub006/internal/infrastructure/upstream"
	"github.com/Cassio-Ac/minerva-intelligence-sub006/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx := context.Background()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}

	backend := upstream.NewClient(cfg.APIBase, 0)
	vault := redisdb.NewTokenVault(rdb)
	store := service.NewSessionStore(backend, vault, log)
	prefs := service.NewPreferencesService(mongodb.NewPreferencesRepository(db))
	bridge := feed.NewBridge(cfg.FeedURL, log)

	e := api.NewRouter(api.Deps{
		Store:        store,
		Preferences:  prefs,
		Bridge:       bridge,
		Mongo:        db,
		Redis:        rdb,
		Log:          log,
		CookieSecure: cfg.CookieSecure,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("api_base", cfg.APIBase).Msg("dashboard gateway started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
	bridge.Shutdown()

	if err := mongoClient.Disconnect(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("mongo disconnect failed")
	}
	if err := rdb.Close(); err != nil {
		log.Error().Err(err).Msg("redis close failed")
	}

	log.Info().Msg("stopped")
}
