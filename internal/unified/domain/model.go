package domain

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a canonical record does not exist.
var ErrNotFound = errors.New("record not found")

// Platform names as configured in the platforms table.
const (
	PlatformHostDashboard    = "host_dashboard"
	PlatformAgentDashboard   = "agent_dashboard"
	PlatformCustomerPlatform = "customer_platform"
)

// DefaultCurrency is used when a source platform omits the price currency.
const DefaultCurrency = "AED"

type UserType string

const (
	UserTypeHost     UserType = "host"
	UserTypeAgent    UserType = "agent"
	UserTypeCustomer UserType = "customer"
	UserTypeGuest    UserType = "guest"
)

type AccountStatus string

const (
	AccountActive    AccountStatus = "active"
	AccountSuspended AccountStatus = "suspended"
	AccountBanned    AccountStatus = "banned"
)

type ListingType string

const (
	ListingShortTerm ListingType = "short_term"
	ListingLongTerm  ListingType = "long_term"
)

// JSONMap holds the opaque platform-specific payload stored alongside each
// canonical record.
type JSONMap map[string]interface{}

// Platform is a configured source system.
type Platform struct {
	ID              string
	Name            string
	DisplayName     string
	APIBaseURL      string
	APIKey          string
	Status          string
	LastHealthCheck *time.Time
	CreatedAt       time.Time
}

// User is the canonical, deduplicated representation of a person across
// platforms. The pair (PlatformID, PlatformUserID) is the identity key and is
// immutable once assigned.
type User struct {
	ID                 string
	Email              string
	PlatformID         string
	PlatformUserID     string
	UserType           UserType
	FullName           string
	Phone              string
	VerificationStatus string
	AccountStatus      AccountStatus
	PlatformData       JSONMap
	LastSyncedAt       time.Time
	CreatedAt          time.Time
}

// Property is one canonical listing, keyed by (PlatformID, PlatformPropertyID).
// OwnerUserID may be empty when the owning user could not be resolved.
type Property struct {
	ID                 string
	PlatformID         string
	PlatformPropertyID string
	OwnerUserID        string
	Title              string
	PropertyType       string
	ListingType        ListingType
	City               string
	Price              float64
	PriceCurrency      string
	Status             string
	IsFeatured         bool
	PlatformData       JSONMap
	LastSyncedAt       time.Time
	CreatedAt          time.Time
}

// Booking is one canonical reservation, keyed by (PlatformID, PlatformBookingID).
// PropertyID always references an existing canonical property; bookings whose
// property is unknown are never stored.
type Booking struct {
	ID                string
	PlatformID        string
	PlatformBookingID string
	PropertyID        string
	GuestUserID       string
	HostUserID        string
	CheckIn           string
	CheckOut          string
	TotalPrice        float64
	Status            string
	PaymentStatus     string
	PlatformData      JSONMap
	LastSyncedAt      time.Time
	CreatedAt         time.Time
}

// VerificationQueueItem tracks one pending or processed verification, at most
// one per (PlatformID, PlatformUserID).
type VerificationQueueItem struct {
	ID               string
	PlatformID       string
	UserID           string
	PlatformUserID   string
	VerificationType string
	Status           VerificationStatus
	Documents        JSONMap
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// AdminUser is an operator of this control plane, not a synced entity.
type AdminUser struct {
	ID           string
	Email        string
	PasswordHash string
	FullName     string
	Role         string
	CreatedAt    time.Time
}

// AuditEntry records one mutating admin action.
type AuditEntry struct {
	ID               string
	AdminUserID      string
	ActionType       string
	TargetPlatform   string
	TargetEntityType string
	TargetEntityID   string
	Details          JSONMap
	CreatedAt        time.Time
}
