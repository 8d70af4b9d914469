package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krib-platform/super-admin-backend/internal/unified/domain"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)

	token, err := m.Issue(&domain.AdminUser{
		ID:    "admin-1",
		Email: "root@example.com",
		Role:  "super_admin",
	})
	require.NoError(t, err)

	claims, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "admin-1", claims.Subject)
	assert.Equal(t, "root@example.com", claims.Email)
	assert.Equal(t, "super_admin", claims.Role)
}

func TestTokenManager_RejectsExpired(t *testing.T) {
	m := NewTokenManager("test-secret", -time.Minute)

	token, err := m.Issue(&domain.AdminUser{ID: "admin-1"})
	require.NoError(t, err)

	_, err = m.Verify(token)
	assert.Error(t, err)
}

func TestTokenManager_RejectsWrongSecret(t *testing.T) {
	issuer := NewTokenManager("secret-a", time.Hour)
	verifier := NewTokenManager("secret-b", time.Hour)

	token, err := issuer.Issue(&domain.AdminUser{ID: "admin-1"})
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.Error(t, err)
}
