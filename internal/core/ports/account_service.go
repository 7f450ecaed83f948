package ports

import (
	"context"

	"github.com/meddetector/credential-gateway/internal/core/domain"
)

// AccountService governs the provider approval workflow and admin bootstrap.
type AccountService interface {
	ListProviders(ctx context.Context) ([]*domain.User, error)
	Approve(ctx context.Context, providerID string) error
	Delete(ctx context.Context, providerID string) error
	Bootstrap(ctx context.Context, seeds []domain.SeedAdmin) (int, error)
}
