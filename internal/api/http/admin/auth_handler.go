package admin

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	authmw "github.com/krib-platform/super-admin-backend/internal/auth/middleware"
	authsvc "github.com/krib-platform/super-admin-backend/internal/auth/service"
	"github.com/krib-platform/super-admin-backend/internal/unified/domain"
)

type AuthHandler struct {
	auth *authsvc.AuthService
}

func NewAuthHandler(auth *authsvc.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// RegisterPublicRoutes mounts the unauthenticated login endpoint.
func (h *AuthHandler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth/login", h.Login)
}

func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/auth/me", h.Me)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	admin, token, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, authsvc.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		Admin: AdminProfile{
			ID:       admin.ID,
			Email:    admin.Email,
			FullName: admin.FullName,
			Role:     admin.Role,
		},
	})
}

func (h *AuthHandler) Me(c *gin.Context) {
	admin, err := h.auth.GetAdmin(c.Request.Context(), authmw.AdminID(c))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "admin not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load admin"})
		return
	}

	c.JSON(http.StatusOK, AdminProfile{
		ID:       admin.ID,
		Email:    admin.Email,
		FullName: admin.FullName,
		Role:     admin.Role,
	})
}
