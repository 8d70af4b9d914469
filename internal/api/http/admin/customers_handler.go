package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/krib-platform/super-admin-backend/internal/platform"
)

// CustomersHandler proxies live customer-platform views that are not part of
// the canonical store (conversations, platform analytics).
type CustomersHandler struct {
	customer *platform.CustomerClient
}

func NewCustomersHandler(customer *platform.CustomerClient) *CustomersHandler {
	return &CustomersHandler{customer: customer}
}

func (h *CustomersHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/customers", h.List)
	rg.GET("/customers/analytics", h.Analytics)
	rg.GET("/customers/:id", h.Get)
	rg.GET("/customers/:id/conversations", h.Conversations)
}

func (h *CustomersHandler) List(c *gin.Context) {
	if h.customer == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "customer platform not configured"})
		return
	}

	col, err := h.customer.Users(c.Request.Context())
	if err != nil {
		writePlatformError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": col.Data, "total": col.Total})
}

func (h *CustomersHandler) Get(c *gin.Context) {
	if h.customer == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "customer platform not configured"})
		return
	}

	raw, err := h.customer.User(c.Request.Context(), c.Param("id"))
	if err != nil {
		writePlatformError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", raw)
}

func (h *CustomersHandler) Conversations(c *gin.Context) {
	if h.customer == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "customer platform not configured"})
		return
	}

	raw, err := h.customer.Conversations(c.Request.Context(), c.Param("id"))
	if err != nil {
		writePlatformError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", raw)
}

func (h *CustomersHandler) Analytics(c *gin.Context) {
	if h.customer == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "customer platform not configured"})
		return
	}

	raw, err := h.customer.Analytics(c.Request.Context())
	if err != nil {
		writePlatformError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", raw)
}
