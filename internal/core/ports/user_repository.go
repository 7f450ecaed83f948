package ports

import (
	"context"

	"github.com/meddetector/credential-gateway/internal/core/domain"
)

// UserRepository defines the credential store: user records looked up by
// username, email or id, with conditional updates applied atomically per document.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// Create inserts a user. A unique username or email collision yields domain.ErrUserExists.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// ListByRole returns every user with the given role, credentials excluded.
	ListByRole(ctx context.Context, role domain.Role) ([]*domain.User, error)
	// Approve sets approved=true on a pending provider. It reports false when no
	// pending provider with that id exists.
	Approve(ctx context.Context, id string) (bool, error)
	// DeleteByRole removes the user with the given id only if it holds role.
	DeleteByRole(ctx context.Context, id string, role domain.Role) (bool, error)
}
