package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/lol-team-randomizer/backend/internal/config"
	"github.com/lol-team-randomizer/backend/internal/history"
	"github.com/lol-team-randomizer/backend/internal/httpapi"
	"github.com/lol-team-randomizer/backend/internal/kv"
	"github.com/lol-team-randomizer/backend/internal/prefs"
	"github.com/lol-team-randomizer/backend/internal/room"
	"github.com/lol-team-randomizer/backend/internal/store"
	"github.com/lol-team-randomizer/backend/internal/watch"
)

func main() {
	cfg := config.Load()

	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var rooms room.Store = store.NewMemory()
	if cfg.DatabaseURL != "" {
		pg, err := store.NewPostgres(cfg.DatabaseURL)
		if err != nil {
			log.Fatal("postgres unavailable", zap.Error(err))
		}
		rooms = pg
		log.Info("room store: postgres")
	} else {
		log.Info("room store: memory")
	}

	var values kv.Store = kv.NewMemory()
	if cfg.RedisAddr != "" {
		rds := kv.NewRedis(cfg.RedisAddr)
		if err := rds.Ping(ctx); err != nil {
			log.Fatal("redis unavailable", zap.Error(err))
		}
		values = rds
		log.Info("kv store: redis", zap.String("addr", cfg.RedisAddr))
	} else {
		log.Info("kv store: memory")
	}

	registry := watch.NewRegistry(ctx, log)
	svc := room.NewService(rooms, registry)

	go store.RunSweeper(ctx, rooms, cfg.RoomTTL, cfg.SweepInterval, log)

	handler := httpapi.SetupRoutes(svc, history.NewService(values), prefs.NewService(values), log)

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: handler}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		registry.Shutdown()
	}()

	log.Info("listening", zap.String("addr", srv.Addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("server stopped", zap.Error(err))
	}
}
