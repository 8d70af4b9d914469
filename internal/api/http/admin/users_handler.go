package admin

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	authmw "github.com/krib-platform/super-admin-backend/internal/auth/middleware"
	"github.com/krib-platform/super-admin-backend/internal/unified/domain"
	"github.com/krib-platform/super-admin-backend/internal/unified/repository"
)

type UsersHandler struct {
	users *repository.UserRepository
	recorder
}

func NewUsersHandler(users *repository.UserRepository, audit *repository.AuditRepository) *UsersHandler {
	return &UsersHandler{users: users, recorder: recorder{audit: audit}}
}

func (h *UsersHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/users", h.List)
	rg.GET("/users/:id", h.Get)
	rg.PATCH("/users/:id/status", h.UpdateStatus)
}

func (h *UsersHandler) List(c *gin.Context) {
	page, limit := pageParams(c)
	userType := c.Query("user_type")

	users, err := h.users.List(c.Request.Context(), userType, limit, (page-1)*limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list users"})
		return
	}

	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, toUserResponse(&users[i]))
	}
	c.JSON(http.StatusOK, gin.H{"data": out, "page": page, "limit": limit})
}

func (h *UsersHandler) Get(c *gin.Context) {
	u, err := h.users.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load user"})
		return
	}
	c.JSON(http.StatusOK, toUserResponse(u))
}

func (h *UsersHandler) UpdateStatus(c *gin.Context) {
	var req UpdateAccountStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id := c.Param("id")
	ctx := c.Request.Context()

	if err := h.users.UpdateAccountStatus(ctx, id, domain.AccountStatus(req.Status)); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update account status"})
		return
	}

	h.record(ctx, authmw.AdminID(c), "user_status_update", "", "user", id, domain.JSONMap{
		"status": req.Status,
		"reason": req.Reason,
	})
	c.JSON(http.StatusOK, gin.H{"id": id, "account_status": req.Status})
}

// pageParams reads 1-based page and a capped limit from the query string.
func pageParams(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}
