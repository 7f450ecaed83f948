package ports

import (
	"context"
	"time"

	"github.com/meddetector/credential-gateway/internal/core/domain"
)

// PasswordHasher produces salted one-way digests. Verify never errors: a
// malformed digest simply does not match.
type PasswordHasher interface {
	Hash(ctx context.Context, plaintext string) ([]byte, error)
	Verify(ctx context.Context, plaintext string, digest []byte) bool
}

// Claims is the identity carried inside a session token.
type Claims struct {
	Username  string
	Role      domain.Role
	ExpiresAt time.Time
}

// TokenIssuer signs and verifies stateless session tokens.
type TokenIssuer interface {
	Issue(username string, role domain.Role) (string, error)
	Verify(token string) (*Claims, error)
}

// Locker is a best-effort mutual exclusion primitive shared across replicas.
type Locker interface {
	TryLock(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Unlock(ctx context.Context, key string) error
}
