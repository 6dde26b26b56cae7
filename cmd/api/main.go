package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/kudoshq/kudos-api/internal/api"
	"github.com/kudoshq/kudos-api/internal/core/service"
	"github.com/kudoshq/kudos-api/internal/infrastructure/config"
	mongodb "github.com/kudoshq/kudos-api/internal/infrastructure/db/mongo"
	redisdb "github.com/kudoshq/kudos-api/internal/infrastructure/db/redis"
	"github.com/kudoshq/kudos-api/internal/infrastructure/queue"
	"github.com/kudoshq/kudos-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		// Missing session secret lands here: refuse to start.
		log.Fatalf("startup: %v", err)
	}

	zlog := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: !cfg.Production(),
	})

	codec, err := service.NewSessionCodec(cfg.SessionSecret, cfg.SessionTTL)
	if err != nil {
		zlog.Fatal().Err(err).Msg("session codec")
	}

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		zlog.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			zlog.Warn().Err(err).Msg("mongo disconnect")
		}
	}()

	userRepo := mongodb.NewUserRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		zlog.Fatal().Err(err).Msg("mongo index creation failed")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		zlog.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	cache := redisdb.NewRecentCache(rdb)
	notifier := service.NewKudoNotifier(cache, zlog)
	dispatcher := queue.NewDispatcher(0, notifier, zlog)
	dispatcher.Start(ctx)

	e := api.NewRouter(api.Options{
		DB:         db,
		Redis:      rdb,
		Codec:      codec,
		Cache:      cache,
		Dispatcher: dispatcher,
		Secure:     cfg.Production(),
		Log:        zlog,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal().Err(err).Msg("server stopped")
		}
	}()
	zlog.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("kudos api listening")

	<-ctx.Done()
	zlog.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		zlog.Error().Err(err).Msg("graceful shutdown failed")
	}
}
