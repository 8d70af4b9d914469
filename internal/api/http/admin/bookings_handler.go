package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	authmw "github.com/krib-platform/super-admin-backend/internal/auth/middleware"
	"github.com/krib-platform/super-admin-backend/internal/platform"
	"github.com/krib-platform/super-admin-backend/internal/unified/domain"
	"github.com/krib-platform/super-admin-backend/internal/unified/repository"
)

type BookingsHandler struct {
	host *platform.HostClient
	recorder
}

func NewBookingsHandler(host *platform.HostClient, audit *repository.AuditRepository) *BookingsHandler {
	return &BookingsHandler{host: host, recorder: recorder{audit: audit}}
}

func (h *BookingsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/bookings", h.List)
	rg.GET("/bookings/:id", h.Get)
	rg.POST("/bookings/:id/cancel", h.Cancel)
}

func (h *BookingsHandler) List(c *gin.Context) {
	if h.host == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "host platform not configured"})
		return
	}

	page, limit := pageParams(c)
	col, err := h.host.Bookings(c.Request.Context(), page, limit, c.Query("status"))
	if err != nil {
		writePlatformError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": col.Data, "total": col.Total, "page": page, "limit": limit})
}

func (h *BookingsHandler) Get(c *gin.Context) {
	if h.host == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "host platform not configured"})
		return
	}

	raw, err := h.host.Booking(c.Request.Context(), c.Param("id"))
	if err != nil {
		writePlatformError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", raw)
}

func (h *BookingsHandler) Cancel(c *gin.Context) {
	if h.host == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "host platform not configured"})
		return
	}

	var req CancelBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id := c.Param("id")
	ctx := c.Request.Context()

	raw, err := h.host.CancelBooking(ctx, id, req.Reason)
	if err != nil {
		writePlatformError(c, err)
		return
	}

	h.record(ctx, authmw.AdminID(c), "booking_cancel", domain.PlatformHostDashboard, "booking", id, domain.JSONMap{
		"reason": req.Reason,
	})
	c.Data(http.StatusOK, "application/json", raw)
}
