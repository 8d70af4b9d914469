package admin

import (
	"time"

	"github.com/krib-platform/super-admin-backend/internal/unified/domain"
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	Admin       AdminProfile `json:"admin"`
}

type AdminProfile struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

type UpdateAccountStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=active suspended banned"`
	Reason string `json:"reason"`
}

type UpdatePropertyStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Reason string `json:"reason"`
}

type CancelBookingRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type VerificationDecisionRequest struct {
	Reason string `json:"reason"`
	Notes  string `json:"notes"`
}

type UserResponse struct {
	ID                 string         `json:"id"`
	Email              string         `json:"email"`
	PlatformID         string         `json:"platform_id"`
	PlatformUserID     string         `json:"platform_user_id"`
	UserType           string         `json:"user_type"`
	FullName           string         `json:"full_name"`
	Phone              string         `json:"phone,omitempty"`
	VerificationStatus string         `json:"verification_status"`
	AccountStatus      string         `json:"account_status"`
	PlatformData       domain.JSONMap `json:"platform_data,omitempty"`
	LastSyncedAt       time.Time      `json:"last_synced_at"`
	CreatedAt          time.Time      `json:"created_at"`
}

func toUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:                 u.ID,
		Email:              u.Email,
		PlatformID:         u.PlatformID,
		PlatformUserID:     u.PlatformUserID,
		UserType:           string(u.UserType),
		FullName:           u.FullName,
		Phone:              u.Phone,
		VerificationStatus: u.VerificationStatus,
		AccountStatus:      string(u.AccountStatus),
		PlatformData:       u.PlatformData,
		LastSyncedAt:       u.LastSyncedAt,
		CreatedAt:          u.CreatedAt,
	}
}

type VerificationResponse struct {
	ID               string         `json:"id"`
	PlatformID       string         `json:"platform_id"`
	UserID           string         `json:"user_id"`
	PlatformUserID   string         `json:"platform_user_id"`
	VerificationType string         `json:"verification_type"`
	Status           string         `json:"status"`
	Documents        domain.JSONMap `json:"documents,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

func toVerificationResponse(v *domain.VerificationQueueItem) VerificationResponse {
	return VerificationResponse{
		ID:               v.ID,
		PlatformID:       v.PlatformID,
		UserID:           v.UserID,
		PlatformUserID:   v.PlatformUserID,
		VerificationType: v.VerificationType,
		Status:           string(v.Status),
		Documents:        v.Documents,
		CreatedAt:        v.CreatedAt,
		UpdatedAt:        v.UpdatedAt,
	}
}

// PlatformResponse never exposes the stored API key.
type PlatformResponse struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	DisplayName     string     `json:"display_name"`
	APIBaseURL      string     `json:"api_base_url"`
	Status          string     `json:"status"`
	LastHealthCheck *time.Time `json:"last_health_check,omitempty"`
}

func toPlatformResponse(p *domain.Platform) PlatformResponse {
	return PlatformResponse{
		ID:              p.ID,
		Name:            p.Name,
		DisplayName:     p.DisplayName,
		APIBaseURL:      p.APIBaseURL,
		Status:          p.Status,
		LastHealthCheck: p.LastHealthCheck,
	}
}

type AuditEntryResponse struct {
	ID               string         `json:"id"`
	AdminUserID      string         `json:"admin_user_id"`
	ActionType       string         `json:"action_type"`
	TargetPlatform   string         `json:"target_platform,omitempty"`
	TargetEntityType string         `json:"target_entity_type,omitempty"`
	TargetEntityID   string         `json:"target_entity_id,omitempty"`
	Details          domain.JSONMap `json:"details,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
}
