package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/meddetector/credential-gateway/internal/core/domain"
	"github.com/meddetector/credential-gateway/internal/core/ports"
)

const (
	bootstrapLockKey = "bootstrap:admins"
	bootstrapLockTTL = 30 * time.Second
)

// AccountService implements the provider approval workflow
// (Pending -> Approved, Deleted from either) and administrator bootstrap.
type AccountService struct {
	repo   ports.UserRepository
	hasher ports.PasswordHasher
	locker ports.Locker
	log    zerolog.Logger
}

// NewAccountService returns an AccountService. locker may be nil, in which
// case bootstrap runs without cross-replica coordination.
func NewAccountService(repo ports.UserRepository, hasher ports.PasswordHasher, locker ports.Locker, log zerolog.Logger) *AccountService {
	return &AccountService{repo: repo, hasher: hasher, locker: locker, log: log}
}

func (s *AccountService) ListProviders(ctx context.Context) ([]*domain.User, error) {
	users, err := s.repo.ListByRole(ctx, domain.RoleProvider)
	if err != nil {
		return nil, fmt.Errorf("list providers: %w", err)
	}
	for _, u := range users {
		u.PasswordHash = nil
	}
	return users, nil
}

// Approve moves a pending provider to approved. A missing id and an already
// approved provider both return domain.ErrNotFoundOrApproved.
func (s *AccountService) Approve(ctx context.Context, providerID string) error {
	ok, err := s.repo.Approve(ctx, providerID)
	if err != nil {
		return fmt.Errorf("approve provider: %w", err)
	}
	if !ok {
		return domain.ErrNotFoundOrApproved
	}

	s.log.Info().Str("provider_id", providerID).Msg("provider approved")
	return nil
}

// Delete removes a provider in either state. Ids of other roles are not found.
func (s *AccountService) Delete(ctx context.Context, providerID string) error {
	ok, err := s.repo.DeleteByRole(ctx, providerID, domain.RoleProvider)
	if err != nil {
		return fmt.Errorf("delete provider: %w", err)
	}
	if !ok {
		return domain.ErrProviderNotFound
	}

	s.log.Info().Str("provider_id", providerID).Msg("provider deleted")
	return nil
}

// Bootstrap creates each seed administrator whose username is absent and
// returns how many were created. Existing records are left untouched.
func (s *AccountService) Bootstrap(ctx context.Context, seeds []domain.SeedAdmin) (int, error) {
	if s.locker != nil {
		acquired, err := s.locker.TryLock(ctx, bootstrapLockKey, bootstrapLockTTL)
		switch {
		case err != nil:
			s.log.Warn().Err(err).Msg("bootstrap lock unavailable, seeding anyway")
		case !acquired:
			s.log.Info().Msg("admin bootstrap running on another replica, skipping")
			return 0, nil
		default:
			defer func() {
				if err := s.locker.Unlock(ctx, bootstrapLockKey); err != nil {
					s.log.Warn().Err(err).Msg("failed to release bootstrap lock")
				}
			}()
		}
	}

	created := 0
	for _, seed := range seeds {
		if seed.Username == "" || seed.Password == "" {
			s.log.Warn().Str("username", seed.Username).Msg("skipping incomplete admin seed")
			continue
		}

		ok, err := s.seedAdmin(ctx, seed)
		if err != nil {
			return created, err
		}
		if ok {
			created++
		}
	}

	s.log.Info().Int("created", created).Int("seeds", len(seeds)).Msg("admin bootstrap complete")
	return created, nil
}

func (s *AccountService) seedAdmin(ctx context.Context, seed domain.SeedAdmin) (bool, error) {
	_, err := s.repo.FindByUsername(ctx, seed.Username)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return false, fmt.Errorf("bootstrap %s: %w", seed.Username, err)
	}

	hash, err := s.hasher.Hash(ctx, seed.Password)
	if err != nil {
		return false, fmt.Errorf("bootstrap %s: hash password: %w", seed.Username, err)
	}

	_, err = s.repo.Create(ctx, &domain.User{
		Username:     seed.Username,
		Email:        seed.Email(),
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			s.log.Warn().Str("username", seed.Username).Msg("admin seed collides with an existing account, skipping")
			return false, nil
		}
		return false, fmt.Errorf("bootstrap %s: %w", seed.Username, err)
	}

	s.log.Info().Str("username", seed.Username).Msg("admin account created")
	return true, nil
}
