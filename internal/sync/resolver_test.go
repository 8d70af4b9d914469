package sync

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krib-platform/super-admin-backend/internal/unified/domain"
)

func TestResolver_SameIdentityPairKeepsID(t *testing.T) {
	users := newFakeUsers()
	r := NewResolver(users)
	ctx := context.Background()

	first, err := r.ResolveOrCreate(ctx, "pf-1", "u-9", "old@example.com", domain.UserTypeHost, nil)
	require.NoError(t, err)

	// the platform changed the user's email; the canonical id must not move
	second, err := r.ResolveOrCreate(ctx, "pf-1", "u-9", "new@example.com", domain.UserTypeHost, nil)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, "new@example.com", users.byID[first].Email)
}

func TestResolver_SameNativeIDOnDifferentPlatforms(t *testing.T) {
	users := newFakeUsers()
	r := NewResolver(users)
	ctx := context.Background()

	hostID, err := r.ResolveOrCreate(ctx, "pf-1", "u-1", "a@example.com", domain.UserTypeHost, nil)
	require.NoError(t, err)
	agentID, err := r.ResolveOrCreate(ctx, "pf-2", "u-1", "a@example.com", domain.UserTypeAgent, nil)
	require.NoError(t, err)

	assert.NotEqual(t, hostID, agentID)
}

func TestResolver_LookupNeverCreates(t *testing.T) {
	users := newFakeUsers()
	r := NewResolver(users)
	ctx := context.Background()

	id, err := r.Lookup(ctx, "pf-1", "missing")
	require.NoError(t, err)
	assert.Empty(t, id)
	assert.Zero(t, users.upserts)

	id, err = r.Lookup(ctx, "pf-1", "")
	require.NoError(t, err)
	assert.Empty(t, id)
}

func TestResolver_PayloadFieldsDenormalized(t *testing.T) {
	users := newFakeUsers()
	r := NewResolver(users)

	id, err := r.ResolveOrCreate(context.Background(), "pf-1", "u-1", "x@example.com", domain.UserTypeAgent, map[string]interface{}{
		"first_name":          "Lina",
		"last_name":           "Haddad",
		"phone":               "+971500000000",
		"verification_status": "approved",
	})
	require.NoError(t, err)

	u := users.byID[id]
	assert.Equal(t, "Lina Haddad", u.FullName)
	assert.Equal(t, "+971500000000", u.Phone)
	assert.Equal(t, "approved", u.VerificationStatus)
	assert.Equal(t, domain.AccountActive, u.AccountStatus)
}
