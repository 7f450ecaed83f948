package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/meddetector/credential-gateway/internal/core/domain"
	"github.com/meddetector/credential-gateway/internal/core/ports"
)

// Guard resolves session tokens to live user records.
type Guard struct {
	tokens ports.TokenIssuer
	repo   ports.UserRepository
}

func NewGuard(tokens ports.TokenIssuer, repo ports.UserRepository) *Guard {
	return &Guard{tokens: tokens, repo: repo}
}

// Authenticate verifies rawToken and returns the current stored record for its
// username, so role and approval checks see live state rather than claims.
func (g *Guard) Authenticate(ctx context.Context, rawToken string) (*domain.User, error) {
	claims, err := g.tokens.Verify(rawToken)
	if err != nil {
		if errors.Is(err, domain.ErrTokenMissing) {
			return nil, domain.ErrTokenMissing
		}
		return nil, domain.ErrTokenInvalid
	}

	user, err := g.repo.FindByUsername(ctx, claims.Username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("authenticate: %w", err)
	}
	return user, nil
}

// RequireRole demands an exact role match. There is no hierarchy: an admin
// does not pass a provider check.
func RequireRole(user *domain.User, role domain.Role) error {
	if user == nil || user.Role != role {
		return domain.ErrForbidden
	}
	return nil
}

// RequireApproved rejects accounts still pending approval.
func RequireApproved(user *domain.User) error {
	if user == nil || !user.IsApproved() {
		return domain.ErrNotApproved
	}
	return nil
}
