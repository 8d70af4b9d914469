package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/krib-platform/super-admin-backend/config"
	"github.com/krib-platform/super-admin-backend/internal/bootstrap"
	"github.com/krib-platform/super-admin-backend/internal/cache"
	syncsvc "github.com/krib-platform/super-admin-backend/internal/sync"
	"github.com/krib-platform/super-admin-backend/internal/unified/repository"
)

// One-shot sync run. Exits zero even when branches fail; the report tells
// the operator what happened.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Sync.RunTimeoutMin)*time.Minute)
	defer cancel()

	pool, err := bootstrap.OpenDB(ctx, bootstrap.DBOptions{DSN: cfg.Database.DSN()})
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer pool.Close()

	var cacheStore *cache.Store
	if redisClient, err := bootstrap.OpenRedis(ctx, cfg.Redis.URL); err != nil {
		log.Printf("[warn] redis unavailable, running uncached: %v", err)
	} else {
		defer redisClient.Close()
		cacheStore = cache.NewStore(redisClient)
	}

	service := syncsvc.NewService(syncsvc.Deps{
		Platforms:     repository.NewPlatformRepository(pool),
		Users:         repository.NewUserRepository(pool),
		Properties:    repository.NewPropertyRepository(pool),
		Bookings:      repository.NewBookingRepository(pool),
		Verifications: repository.NewVerificationRepository(pool),
		Cache:         cacheStore,
	})

	report := service.SyncAll(ctx)

	out, _ := json.MarshalIndent(report, "", "  ")
	fmt.Println(string(out))
}
