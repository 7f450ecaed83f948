package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/meddetector/credential-gateway/internal/core/domain"
	"github.com/meddetector/credential-gateway/internal/core/ports"
)

// AuthService implements provider registration and login.
type AuthService struct {
	repo   ports.UserRepository
	hasher ports.PasswordHasher
	tokens ports.TokenIssuer
	log    zerolog.Logger
	now    func() time.Time

	dummyMu     sync.Mutex
	dummyDigest []byte
}

func NewAuthService(repo ports.UserRepository, hasher ports.PasswordHasher, tokens ports.TokenIssuer, log zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, hasher: hasher, tokens: tokens, log: log, now: time.Now}
}

// Register creates a pending provider account. Username and email must both
// be unused; the check happens before hashing and is backed by the store's
// unique indexes for concurrent registrations.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	if in.Username == "" || in.Email == "" || in.Password == "" || in.HospitalName == "" || in.ContactNumber == "" {
		return nil, domain.ErrValidation
	}

	if err := s.ensureUnused(ctx, in.Username, in.Email); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(ctx, in.Password)
	if err != nil {
		return nil, fmt.Errorf("register: hash password: %w", err)
	}

	user := &domain.User{
		Username:          in.Username,
		Email:             in.Email,
		PasswordHash:      hash,
		Role:              domain.RoleProvider,
		Approved:          false,
		HospitalName:      in.HospitalName,
		ContactNumber:     in.ContactNumber,
		Specialization:    in.Specialization,
		YearsOfExperience: in.YearsOfExperience,
		CreatedAt:         s.now().UTC(),
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return nil, err
		}
		return nil, fmt.Errorf("register: %w", err)
	}

	s.log.Info().Str("username", created.Username).Str("id", created.ID).Msg("provider registered, pending approval")
	return created, nil
}

func (s *AuthService) ensureUnused(ctx context.Context, username, email string) error {
	if _, err := s.repo.FindByUsername(ctx, username); err == nil {
		return domain.ErrUsernameTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return fmt.Errorf("register: lookup username: %w", err)
	}

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return fmt.Errorf("register: lookup email: %w", err)
	}
	return nil
}

// Login verifies credentials and issues a session token. Unknown usernames and
// wrong passwords both yield domain.ErrInvalidCredentials, and both pay for a
// hash comparison.
func (s *AuthService) Login(ctx context.Context, username, password string) (*ports.LoginResult, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.hasher.Verify(ctx, password, s.dummy(ctx))
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login: %w", err)
	}

	if !s.hasher.Verify(ctx, password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.Username, user.Role)
	if err != nil {
		return nil, fmt.Errorf("login: issue token: %w", err)
	}

	s.log.Debug().Str("username", user.Username).Str("role", string(user.Role)).Msg("login succeeded")

	return &ports.LoginResult{
		Token:    token,
		Username: user.Username,
		Role:     user.Role,
		Approved: user.IsApproved(),
	}, nil
}

// dummy returns a digest for comparing against when the user does not exist.
// The digest is built detached from the request context and retried on the
// next call if hashing fails, so one cancelled request cannot leave it unset.
func (s *AuthService) dummy(ctx context.Context) []byte {
	s.dummyMu.Lock()
	defer s.dummyMu.Unlock()

	if s.dummyDigest == nil {
		digest, err := s.hasher.Hash(context.WithoutCancel(ctx), "credential-gateway-timing-pad")
		if err != nil {
			s.log.Warn().Err(err).Msg("failed to build timing pad digest")
			return nil
		}
		s.dummyDigest = digest
	}
	return s.dummyDigest
}
