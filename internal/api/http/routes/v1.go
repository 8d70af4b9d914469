package routes

import (
	"database/sql"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/krib-platform/super-admin-backend/internal/api/http/admin"
	"github.com/krib-platform/super-admin-backend/internal/auth"
	authmw "github.com/krib-platform/super-admin-backend/internal/auth/middleware"
	authrepo "github.com/krib-platform/super-admin-backend/internal/auth/repository"
	authsvc "github.com/krib-platform/super-admin-backend/internal/auth/service"
	"github.com/krib-platform/super-admin-backend/internal/cache"
	"github.com/krib-platform/super-admin-backend/internal/platform"
	syncsvc "github.com/krib-platform/super-admin-backend/internal/sync"
	"github.com/krib-platform/super-admin-backend/internal/unified/repository"
)

type V1Deps struct {
	Pool   *pgxpool.Pool
	SQLDB  *sql.DB
	Cache  *cache.Store
	Tokens *auth.TokenManager
	Sync   *syncsvc.Service

	Host     *platform.HostClient
	Agent    *platform.AgentClient
	Customer *platform.CustomerClient
}

// RegisterV1 mounts the admin API. Everything except login sits behind JWT
// auth; triggering a sync additionally requires an admin role.
func RegisterV1(r *gin.Engine, dep V1Deps) {
	userRepo := repository.NewUserRepository(dep.Pool)
	propertyRepo := repository.NewPropertyRepository(dep.Pool)
	bookingRepo := repository.NewBookingRepository(dep.Pool)
	verificationRepo := repository.NewVerificationRepository(dep.Pool)
	platformRepo := repository.NewPlatformRepository(dep.Pool)
	auditRepo := repository.NewAuditRepository(dep.SQLDB)
	adminRepo := authrepo.NewAdminRepository(dep.SQLDB)

	authService := authsvc.NewAuthService(adminRepo, dep.Tokens)
	authHandler := admin.NewAuthHandler(authService)

	api := r.Group("/api/v1")
	authHandler.RegisterPublicRoutes(api)

	protected := api.Group("")
	protected.Use(authmw.JWTAuthMiddleware(dep.Tokens))

	authHandler.RegisterRoutes(protected)
	admin.NewUsersHandler(userRepo, auditRepo).RegisterRoutes(protected)
	admin.NewPropertiesHandler(dep.Host, auditRepo).RegisterRoutes(protected)
	admin.NewBookingsHandler(dep.Host, auditRepo).RegisterRoutes(protected)
	admin.NewVerificationHandler(dep.Agent, verificationRepo, auditRepo).RegisterRoutes(protected)
	admin.NewCustomersHandler(dep.Customer).RegisterRoutes(protected)
	admin.NewPlatformsHandler(platformRepo, dep.Cache).RegisterRoutes(protected)
	admin.NewDashboardHandler(userRepo, propertyRepo, bookingRepo, verificationRepo).RegisterRoutes(protected)
	admin.NewAuditHandler(auditRepo).RegisterRoutes(protected)

	elevated := protected.Group("")
	elevated.Use(authmw.RequireRole("super_admin", "admin"))
	admin.NewSyncHandler(dep.Sync, auditRepo).RegisterRoutes(elevated)
}
