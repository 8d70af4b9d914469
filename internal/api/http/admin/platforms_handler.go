package admin

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/krib-platform/super-admin-backend/internal/cache"
	"github.com/krib-platform/super-admin-backend/internal/platform"
	"github.com/krib-platform/super-admin-backend/internal/unified/repository"
)

type PlatformsHandler struct {
	platforms *repository.PlatformRepository
	cache     *cache.Store
}

func NewPlatformsHandler(platforms *repository.PlatformRepository, store *cache.Store) *PlatformsHandler {
	return &PlatformsHandler{platforms: platforms, cache: store}
}

func (h *PlatformsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/platforms", h.List)
	rg.GET("/platforms/health", h.Health)
}

func (h *PlatformsHandler) List(c *gin.Context) {
	rows, err := h.platforms.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list platforms"})
		return
	}

	out := make([]PlatformResponse, 0, len(rows))
	for i := range rows {
		out = append(out, toPlatformResponse(&rows[i]))
	}
	c.JSON(http.StatusOK, gin.H{"data": out})
}

// Health probes every configured platform and persists the result, the same
// signal the sync run records.
func (h *PlatformsHandler) Health(c *gin.Context) {
	ctx := c.Request.Context()
	rows, err := h.platforms.List(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list platforms"})
		return
	}

	type probe struct {
		Name    string `json:"name"`
		Healthy bool   `json:"healthy"`
		Status  string `json:"status"`
	}

	results := make([]probe, 0, len(rows))
	for i := range rows {
		p := &rows[i]
		client := platform.NewClient(p.Name, p.APIBaseURL, p.APIKey, h.cache)
		healthy := client.HealthCheck(ctx)

		status := "active"
		if !healthy {
			status = "offline"
		}
		if err := h.platforms.UpdateHealth(ctx, p.ID, status, time.Now().UTC()); err == nil {
			p.Status = status
		}
		results = append(results, probe{Name: p.Name, Healthy: healthy, Status: status})
	}

	c.JSON(http.StatusOK, gin.H{"data": results, "checked_at": time.Now().UTC()})
}
