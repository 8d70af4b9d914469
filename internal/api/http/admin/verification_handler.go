package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	authmw "github.com/krib-platform/super-admin-backend/internal/auth/middleware"
	"github.com/krib-platform/super-admin-backend/internal/platform"
	"github.com/krib-platform/super-admin-backend/internal/unified/domain"
	"github.com/krib-platform/super-admin-backend/internal/unified/repository"
)

// VerificationHandler serves the local verification queue and forwards
// decisions to the agent dashboard, mirroring each decision into the queue.
type VerificationHandler struct {
	agent *platform.AgentClient
	queue *repository.VerificationRepository
	recorder
}

func NewVerificationHandler(agent *platform.AgentClient, queue *repository.VerificationRepository, audit *repository.AuditRepository) *VerificationHandler {
	return &VerificationHandler{agent: agent, queue: queue, recorder: recorder{audit: audit}}
}

func (h *VerificationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/verification/queue", h.Queue)
	rg.GET("/verification/pending", h.Pending)
	rg.GET("/verification/statistics", h.Statistics)
	rg.GET("/verification/users/:id", h.Details)
	rg.GET("/verification/users/:id/audit", h.AuditLog)
	rg.POST("/verification/users/:id/approve", h.Approve)
	rg.POST("/verification/users/:id/reject", h.Reject)
	rg.POST("/verification/users/:id/resubmit", h.RequestResubmission)
}

// Queue lists locally synced verification items, optionally filtered by status.
func (h *VerificationHandler) Queue(c *gin.Context) {
	page, limit := pageParams(c)
	items, err := h.queue.List(c.Request.Context(), c.Query("status"), limit, (page-1)*limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list verification queue"})
		return
	}

	out := make([]VerificationResponse, 0, len(items))
	for i := range items {
		out = append(out, toVerificationResponse(&items[i]))
	}
	c.JSON(http.StatusOK, gin.H{"data": out, "page": page, "limit": limit})
}

// Pending proxies the live pending list from the agent dashboard.
func (h *VerificationHandler) Pending(c *gin.Context) {
	if h.agent == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "agent platform not configured"})
		return
	}

	col, err := h.agent.PendingVerifications(c.Request.Context())
	if err != nil {
		writePlatformError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": col.Data, "total": col.Total})
}

func (h *VerificationHandler) Statistics(c *gin.Context) {
	if h.agent == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "agent platform not configured"})
		return
	}

	raw, err := h.agent.VerificationStatistics(c.Request.Context())
	if err != nil {
		writePlatformError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", raw)
}

func (h *VerificationHandler) Details(c *gin.Context) {
	if h.agent == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "agent platform not configured"})
		return
	}

	raw, err := h.agent.VerificationDetails(c.Request.Context(), c.Param("id"))
	if err != nil {
		writePlatformError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", raw)
}

func (h *VerificationHandler) AuditLog(c *gin.Context) {
	if h.agent == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "agent platform not configured"})
		return
	}

	raw, err := h.agent.AuditLog(c.Request.Context(), c.Param("id"))
	if err != nil {
		writePlatformError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", raw)
}

func (h *VerificationHandler) Approve(c *gin.Context) {
	h.decide(c, "approve")
}

func (h *VerificationHandler) Reject(c *gin.Context) {
	h.decide(c, "reject")
}

func (h *VerificationHandler) RequestResubmission(c *gin.Context) {
	h.decide(c, "resubmit")
}

func (h *VerificationHandler) decide(c *gin.Context, action string) {
	if h.agent == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "agent platform not configured"})
		return
	}

	var req VerificationDecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if action != "approve" && req.Reason == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "reason is required"})
		return
	}

	userID := c.Param("id")
	adminID := authmw.AdminID(c)
	ctx := c.Request.Context()

	var (
		raw    []byte
		err    error
		status domain.VerificationStatus
	)
	switch action {
	case "approve":
		raw, err = h.agent.ApproveAgent(ctx, userID, req.Notes, adminID)
		status = domain.VerificationApproved
	case "reject":
		raw, err = h.agent.RejectAgent(ctx, userID, req.Reason, req.Notes, adminID)
		status = domain.VerificationRejected
	default:
		raw, err = h.agent.RequestResubmission(ctx, userID, req.Reason, adminID)
		status = domain.VerificationPending
	}
	if err != nil {
		writePlatformError(c, err)
		return
	}

	// Keep the local queue in step with the decision; the next sync pass
	// would converge it anyway.
	h.updateQueue(c, userID, status)

	h.record(ctx, adminID, "verification_"+action, domain.PlatformAgentDashboard, "user", userID, domain.JSONMap{
		"reason": req.Reason,
		"notes":  req.Notes,
	})
	c.Data(http.StatusOK, "application/json", raw)
}

func (h *VerificationHandler) updateQueue(c *gin.Context, platformUserID string, status domain.VerificationStatus) {
	if h.queue == nil {
		return
	}
	if err := h.queue.UpdateStatusByPlatformUser(c.Request.Context(), domain.PlatformAgentDashboard, platformUserID, status); err != nil {
		// stale queue rows are tolerated
		return
	}
}
