package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/krib-platform/super-admin-backend/internal/unified/domain"
	"github.com/krib-platform/super-admin-backend/internal/unified/repository"
)

// DashboardHandler aggregates top-line counts from the canonical store.
type DashboardHandler struct {
	users         *repository.UserRepository
	properties    *repository.PropertyRepository
	bookings      *repository.BookingRepository
	verifications *repository.VerificationRepository
}

func NewDashboardHandler(
	users *repository.UserRepository,
	properties *repository.PropertyRepository,
	bookings *repository.BookingRepository,
	verifications *repository.VerificationRepository,
) *DashboardHandler {
	return &DashboardHandler{
		users:         users,
		properties:    properties,
		bookings:      bookings,
		verifications: verifications,
	}
}

func (h *DashboardHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/dashboard/metrics", h.Metrics)
}

func (h *DashboardHandler) Metrics(c *gin.Context) {
	ctx := c.Request.Context()

	userCount, err := h.users.Count(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load metrics"})
		return
	}
	propertyCount, err := h.properties.Count(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load metrics"})
		return
	}
	bookingCount, err := h.bookings.Count(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load metrics"})
		return
	}
	revenue, err := h.bookings.TotalRevenue(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load metrics"})
		return
	}
	pendingVerifications, err := h.verifications.CountByStatus(ctx, domain.VerificationPending)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load metrics"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total_users":           userCount,
		"total_properties":      propertyCount,
		"total_bookings":        bookingCount,
		"total_revenue":         revenue,
		"pending_verifications": pendingVerifications,
		"currency":              domain.DefaultCurrency,
	})
}
