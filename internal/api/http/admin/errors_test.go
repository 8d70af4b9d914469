package admin

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/krib-platform/super-admin-backend/internal/platform"
)

func performWithError(err error) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	writePlatformError(c, err)
	return w
}

func TestWritePlatformError_KeepsUpstreamStatus(t *testing.T) {
	w := performWithError(&platform.APIError{Platform: "host_dashboard", Status: 404, Body: `{"detail":"gone"}`})

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "host_dashboard")
}

func TestWritePlatformError_TransportBecomesBadGateway(t *testing.T) {
	w := performWithError(&platform.TransportError{Platform: "customer_platform", Err: assert.AnError})

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "unreachable")
}

func TestWritePlatformError_UnknownErrorIs500(t *testing.T) {
	w := performWithError(assert.AnError)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
