package ports

import (
	"context"

	"github.com/meddetector/credential-gateway/internal/core/domain"
)

// RegisterInput carries the self-registration payload of a provider.
type RegisterInput struct {
	Username          string
	Email             string
	Password          string
	HospitalName      string
	ContactNumber     string
	Specialization    string
	YearsOfExperience int
}

// LoginResult is returned on a successful login.
type LoginResult struct {
	Token    string
	Username string
	Role     domain.Role
	Approved bool
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, username, password string) (*LoginResult, error)
}

// Guard resolves a raw session token to the live user record.
type Guard interface {
	Authenticate(ctx context.Context, rawToken string) (*domain.User, error)
}
