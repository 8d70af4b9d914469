package admin

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/krib-platform/super-admin-backend/internal/unified/repository"
)

type AuditHandler struct {
	audit *repository.AuditRepository
}

func NewAuditHandler(audit *repository.AuditRepository) *AuditHandler {
	return &AuditHandler{audit: audit}
}

func (h *AuditHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/audit", h.List)
}

func (h *AuditHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit < 1 || limit > 500 {
		limit = 50
	}

	entries, err := h.audit.List(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list audit log"})
		return
	}

	out := make([]AuditEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, AuditEntryResponse{
			ID:               e.ID,
			AdminUserID:      e.AdminUserID,
			ActionType:       e.ActionType,
			TargetPlatform:   e.TargetPlatform,
			TargetEntityType: e.TargetEntityType,
			TargetEntityID:   e.TargetEntityID,
			Details:          e.Details,
			CreatedAt:        e.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{"data": out})
}
