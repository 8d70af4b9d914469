package bootstrap

import (
	"database/sql"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	httpapi "github.com/krib-platform/super-admin-backend/internal/api/http"
	"github.com/krib-platform/super-admin-backend/internal/api/http/middleware"
	"github.com/krib-platform/super-admin-backend/internal/api/http/routes"
	"github.com/krib-platform/super-admin-backend/internal/auth"
	"github.com/krib-platform/super-admin-backend/internal/cache"
	"github.com/krib-platform/super-admin-backend/internal/platform"
	syncsvc "github.com/krib-platform/super-admin-backend/internal/sync"
)

type RouterDeps struct {
	ServiceName string
	Version     string

	DB     *pgxpool.Pool
	SQLDB  *sql.DB
	Redis  *redis.Client
	Tokens *auth.TokenManager
	Sync   *syncsvc.Service

	Host     *platform.HostClient
	Agent    *platform.AgentClient
	Customer *platform.CustomerClient
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.Default()

	r.Use(middleware.RequestIDMiddleware())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Request-Id"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.DB, dep.Redis)
	healthHandler.RegisterRoutes(r)

	routes.RegisterV1(r, routes.V1Deps{
		Pool:     dep.DB,
		SQLDB:    dep.SQLDB,
		Cache:    cache.NewStore(dep.Redis),
		Tokens:   dep.Tokens,
		Sync:     dep.Sync,
		Host:     dep.Host,
		Agent:    dep.Agent,
		Customer: dep.Customer,
	})

	return r
}
