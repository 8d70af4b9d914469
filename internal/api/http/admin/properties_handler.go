package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	authmw "github.com/krib-platform/super-admin-backend/internal/auth/middleware"
	"github.com/krib-platform/super-admin-backend/internal/platform"
	"github.com/krib-platform/super-admin-backend/internal/unified/domain"
	"github.com/krib-platform/super-admin-backend/internal/unified/repository"
)

// PropertiesHandler proxies property reads and moderation actions to the host
// dashboard, keeping the cached views coherent after each mutation.
type PropertiesHandler struct {
	host *platform.HostClient
	recorder
}

func NewPropertiesHandler(host *platform.HostClient, audit *repository.AuditRepository) *PropertiesHandler {
	return &PropertiesHandler{host: host, recorder: recorder{audit: audit}}
}

func (h *PropertiesHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/properties", h.List)
	rg.GET("/properties/:id", h.Get)
	rg.PATCH("/properties/:id/status", h.UpdateStatus)
}

func (h *PropertiesHandler) List(c *gin.Context) {
	if h.host == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "host platform not configured"})
		return
	}

	page, limit := pageParams(c)
	col, err := h.host.Properties(c.Request.Context(), page, limit, c.Query("status"))
	if err != nil {
		writePlatformError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": col.Data, "total": col.Total, "page": page, "limit": limit})
}

func (h *PropertiesHandler) Get(c *gin.Context) {
	if h.host == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "host platform not configured"})
		return
	}

	raw, err := h.host.Property(c.Request.Context(), c.Param("id"))
	if err != nil {
		writePlatformError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", raw)
}

func (h *PropertiesHandler) UpdateStatus(c *gin.Context) {
	if h.host == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "host platform not configured"})
		return
	}

	var req UpdatePropertyStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id := c.Param("id")
	ctx := c.Request.Context()

	raw, err := h.host.UpdatePropertyStatus(ctx, id, req.Status)
	if err != nil {
		writePlatformError(c, err)
		return
	}

	h.record(ctx, authmw.AdminID(c), "property_status_update", domain.PlatformHostDashboard, "property", id, domain.JSONMap{
		"status": req.Status,
		"reason": req.Reason,
	})
	c.Data(http.StatusOK, "application/json", raw)
}
