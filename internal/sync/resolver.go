package sync

import (
	"context"
	"errors"

	"github.com/krib-platform/super-admin-backend/internal/unified/domain"
)

// UserStore is the slice of the canonical store the resolver needs.
type UserStore interface {
	Upsert(ctx context.Context, u *domain.User) (string, error)
	FindIDByPlatformUser(ctx context.Context, platformID, platformUserID string) (string, error)
}

// Resolver maps a (platform id, platform-native user id) pair to a canonical
// user id. It never mints ids itself; the store's insert path owns them.
type Resolver struct {
	users UserStore
}

func NewResolver(users UserStore) *Resolver {
	return &Resolver{users: users}
}

// ResolveOrCreate returns the canonical id for the identity pair, creating
// the user on first sight. Repeat calls with the same pair always return the
// same id; only denormalized display fields and the sync timestamp are
// refreshed.
func (r *Resolver) ResolveOrCreate(ctx context.Context, platformID, platformUserID, email string, userType domain.UserType, payload map[string]interface{}) (string, error) {
	u := &domain.User{
		Email:              email,
		PlatformID:         platformID,
		PlatformUserID:     platformUserID,
		UserType:           userType,
		FullName:           displayName(payload),
		Phone:              getString(payload, "phone"),
		VerificationStatus: getString(payload, "verification_status"),
		AccountStatus:      domain.AccountActive,
		PlatformData:       payload,
	}
	return r.users.Upsert(ctx, u)
}

// Lookup resolves the pair without creating anything. A missing user yields
// an empty id and no error; callers treat that as "unresolved".
func (r *Resolver) Lookup(ctx context.Context, platformID, platformUserID string) (string, error) {
	if platformUserID == "" {
		return "", nil
	}

	id, err := r.users.FindIDByPlatformUser(ctx, platformID, platformUserID)
	if errors.Is(err, domain.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return id, nil
}
