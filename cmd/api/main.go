package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/krib-platform/super-admin-backend/config"
	"github.com/krib-platform/super-admin-backend/internal/auth"
	"github.com/krib-platform/super-admin-backend/internal/bootstrap"
	"github.com/krib-platform/super-admin-backend/internal/cache"
	syncsvc "github.com/krib-platform/super-admin-backend/internal/sync"
	cronjob "github.com/krib-platform/super-admin-backend/internal/sync/cron"
	"github.com/krib-platform/super-admin-backend/internal/unified/repository"
)

const serviceName = "super-admin-api"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	bootstrap.SetGinMode(cfg.App.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := bootstrap.OpenDB(ctx, bootstrap.DBOptions{DSN: cfg.Database.DSN()})
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer pool.Close()

	sqlDB, err := bootstrap.OpenSQLDB(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer sqlDB.Close()

	redisClient, err := bootstrap.OpenRedis(ctx, cfg.Redis.URL)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	defer redisClient.Close()

	cacheStore := cache.NewStore(redisClient)
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLMin)*time.Minute)

	platformRepo := repository.NewPlatformRepository(pool)
	clients := bootstrap.LoadPlatformClients(ctx, platformRepo, cacheStore)

	syncService := syncsvc.NewService(syncsvc.Deps{
		Platforms:     platformRepo,
		Users:         repository.NewUserRepository(pool),
		Properties:    repository.NewPropertyRepository(pool),
		Bookings:      repository.NewBookingRepository(pool),
		Verifications: repository.NewVerificationRepository(pool),
		Cache:         cacheStore,
	})

	if cfg.Sync.Schedule != "" {
		scheduler := cronjob.NewScheduler(syncService, cfg.Sync.Schedule, time.Duration(cfg.Sync.RunTimeoutMin)*time.Minute)
		scheduler.Start()
		defer scheduler.Stop()
	}

	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName: serviceName,
		Version:     cfg.App.Version,
		DB:          pool,
		SQLDB:       sqlDB,
		Redis:       redisClient,
		Tokens:      tokens,
		Sync:        syncService,
		Host:        clients.Host,
		Agent:       clients.Agent,
		Customer:    clients.Customer,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		log.Printf("[info] service=%s version=%s listening on :%s", serviceName, cfg.App.Version, cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("[info] shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[error] shutdown: %v", err)
	}
}
