package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	authmw "github.com/krib-platform/super-admin-backend/internal/auth/middleware"
	syncsvc "github.com/krib-platform/super-admin-backend/internal/sync"
	"github.com/krib-platform/super-admin-backend/internal/unified/domain"
	"github.com/krib-platform/super-admin-backend/internal/unified/repository"
)

type SyncHandler struct {
	service *syncsvc.Service
	recorder
}

func NewSyncHandler(service *syncsvc.Service, audit *repository.AuditRepository) *SyncHandler {
	return &SyncHandler{service: service, recorder: recorder{audit: audit}}
}

func (h *SyncHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/sync/run", h.Run)
}

// Run executes a full sync inline and returns the per-platform report. The
// run itself never fails; failed branches are reported, not raised.
func (h *SyncHandler) Run(c *gin.Context) {
	ctx := c.Request.Context()
	report := h.service.SyncAll(ctx)

	h.record(ctx, authmw.AdminID(c), "sync_run", "", "sync", "", domain.JSONMap{
		"platforms": len(report.Platforms),
	})
	c.JSON(http.StatusOK, report)
}
