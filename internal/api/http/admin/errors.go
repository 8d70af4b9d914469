package admin

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/krib-platform/super-admin-backend/internal/platform"
)

// writePlatformError translates upstream failures: platform API errors keep
// their upstream status code, transport failures become 502.
func writePlatformError(c *gin.Context, err error) {
	var apiErr *platform.APIError
	if errors.As(err, &apiErr) {
		status := apiErr.Status
		if status < 400 || status > 599 {
			status = http.StatusBadGateway
		}
		c.JSON(status, gin.H{"error": "platform error", "platform": apiErr.Platform, "detail": apiErr.Body})
		return
	}

	var transportErr *platform.TransportError
	if errors.As(err, &transportErr) {
		c.JSON(http.StatusBadGateway, gin.H{"error": "platform unreachable", "platform": transportErr.Platform})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
