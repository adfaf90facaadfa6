package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naminara/ferry-logbook/internal/auth"
	"github.com/naminara/ferry-logbook/internal/domain"
)

func TestManager_IssueAndVerify(t *testing.T) {
	m := auth.NewManager("test-secret", time.Hour)

	token, err := m.Issue(domain.User{ID: "u2", Role: domain.RoleCaptain})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "u2", claims.UserID)
	assert.Equal(t, domain.RoleCaptain, claims.Role)
}

func TestManager_Verify_rejects(t *testing.T) {
	m := auth.NewManager("test-secret", time.Hour)

	t.Run("garbage", func(t *testing.T) {
		_, err := m.Verify("not-a-token")
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := auth.NewManager("different-secret", time.Hour)
		token, err := other.Issue(domain.User{ID: "u1", Role: domain.RoleAdmin})
		require.NoError(t, err)

		_, err = m.Verify(token)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		shortLived := auth.NewManager("test-secret", -time.Minute)
		token, err := shortLived.Issue(domain.User{ID: "u1", Role: domain.RoleAdmin})
		require.NoError(t, err)

		_, err = m.Verify(token)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("unknown role", func(t *testing.T) {
		token, err := m.Issue(domain.User{ID: "u1", Role: domain.Role("stowaway")})
		require.NoError(t, err)

		_, err = m.Verify(token)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})
}

func TestClaimsContext(t *testing.T) {
	ctx := context.Background()

	_, ok := auth.ClaimsFrom(ctx)
	assert.False(t, ok)

	want := auth.Claims{UserID: "u3", Role: domain.RoleChiefEngineer}
	ctx = auth.WithClaims(ctx, want)

	got, ok := auth.ClaimsFrom(ctx)
	require.True(t, ok)
	assert.Equal(t, want, got)
}
