package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meddetector/credential-gateway/internal/core/domain"
	"github.com/meddetector/credential-gateway/internal/infrastructure/security"
)

func issuerAt(t time.Time) *security.JWTIssuer {
	return security.NewJWTIssuer("secret", domain.SessionTTL).WithClock(func() time.Time { return t })
}

func seedProvider(t *testing.T, repo *stubUserRepo, username string, approved bool) *domain.User {
	t.Helper()
	u, err := repo.Create(context.Background(), &domain.User{
		Username: username,
		Email:    username + "@example.com",
		Role:     domain.RoleProvider,
		Approved: approved,
	})
	require.NoError(t, err)
	return u
}

func TestGuard_Authenticate_ReturnsLiveRecord(t *testing.T) {
	repo := newStubUserRepo()
	u := seedProvider(t, repo, "alice", false)

	token, err := issuerAt(testNow).Issue("alice", domain.RoleProvider)
	require.NoError(t, err)

	// Approval after issuance must be visible through the same token.
	ok, err := repo.Approve(context.Background(), u.ID)
	require.NoError(t, err)
	require.True(t, ok)

	user, err := NewGuard(issuerAt(testNow), repo).Authenticate(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.True(t, user.Approved)
}

func TestGuard_Authenticate_Expiry(t *testing.T) {
	repo := newStubUserRepo()
	seedProvider(t, repo, "alice", true)

	token, err := issuerAt(testNow).Issue("alice", domain.RoleProvider)
	require.NoError(t, err)

	accepted := []time.Duration{0, time.Minute, 59 * time.Minute, time.Hour}
	for _, d := range accepted {
		_, err := NewGuard(issuerAt(testNow.Add(d)), repo).Authenticate(context.Background(), token)
		assert.NoError(t, err, "at T+%s", d)
	}

	rejected := []time.Duration{time.Hour + time.Second, 2 * time.Hour}
	for _, d := range rejected {
		_, err := NewGuard(issuerAt(testNow.Add(d)), repo).Authenticate(context.Background(), token)
		assert.ErrorIs(t, err, domain.ErrTokenInvalid, "at T+%s", d)
	}
}

func TestGuard_Authenticate_MissingAndInvalid(t *testing.T) {
	g := NewGuard(issuerAt(testNow), newStubUserRepo())

	_, err := g.Authenticate(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrTokenMissing)

	_, err = g.Authenticate(context.Background(), "garbage")
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)

	forged, err := security.NewJWTIssuer("other-secret", time.Hour).Issue("alice", domain.RoleAdmin)
	require.NoError(t, err)
	_, err = g.Authenticate(context.Background(), forged)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestGuard_Authenticate_DeletedUser(t *testing.T) {
	repo := newStubUserRepo()
	u := seedProvider(t, repo, "alice", true)

	token, err := issuerAt(testNow).Issue("alice", domain.RoleProvider)
	require.NoError(t, err)

	ok, err := repo.DeleteByRole(context.Background(), u.ID, domain.RoleProvider)
	require.NoError(t, err)
	require.True(t, ok)

	_, err = NewGuard(issuerAt(testNow), repo).Authenticate(context.Background(), token)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestGuard_Authenticate_StoreFailure(t *testing.T) {
	repo := newStubUserRepo()
	repo.findErr = errStoreDown

	token, err := issuerAt(testNow).Issue("alice", domain.RoleProvider)
	require.NoError(t, err)

	_, err = NewGuard(issuerAt(testNow), repo).Authenticate(context.Background(), token)
	assert.ErrorIs(t, err, errStoreDown)
}

func TestRequireRole_ExactMatch(t *testing.T) {
	admin := &domain.User{Role: domain.RoleAdmin}
	provider := &domain.User{Role: domain.RoleProvider, Approved: true}

	assert.NoError(t, RequireRole(admin, domain.RoleAdmin))
	assert.NoError(t, RequireRole(provider, domain.RoleProvider))
	assert.ErrorIs(t, RequireRole(admin, domain.RoleProvider), domain.ErrForbidden)
	assert.ErrorIs(t, RequireRole(provider, domain.RoleAdmin), domain.ErrForbidden)
	assert.ErrorIs(t, RequireRole(nil, domain.RoleAdmin), domain.ErrForbidden)
}

func TestRequireApproved(t *testing.T) {
	assert.NoError(t, RequireApproved(&domain.User{Role: domain.RoleProvider, Approved: true}))
	assert.NoError(t, RequireApproved(&domain.User{Role: domain.RoleAdmin}))
	assert.ErrorIs(t, RequireApproved(&domain.User{Role: domain.RoleProvider}), domain.ErrNotApproved)
	assert.ErrorIs(t, RequireApproved(nil), domain.ErrNotApproved)
}
