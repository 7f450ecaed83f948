package security

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/meddetector/credential-gateway/internal/core/domain"
	"github.com/meddetector/credential-gateway/internal/core/ports"
)

// exp is inclusive: a token is still accepted at exactly its expiry instant.
const expiryLeeway = time.Nanosecond

type sessionClaims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// JWTIssuer signs HS256 session tokens with a process-wide secret.
type JWTIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewJWTIssuer(secret string, ttl time.Duration) *JWTIssuer {
	if ttl <= 0 {
		ttl = domain.SessionTTL
	}
	return &JWTIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// WithClock replaces the time source used for issuing and validating tokens.
func (i *JWTIssuer) WithClock(now func() time.Time) *JWTIssuer {
	i.now = now
	return i
}

func (i *JWTIssuer) Issue(username string, role domain.Role) (string, error) {
	now := i.now()
	claims := sessionClaims{
		Username: username,
		Role:     string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(i.secret)
}

// Verify checks signature, algorithm and expiry. Any failure is reported as
// domain.ErrTokenInvalid.
func (i *JWTIssuer) Verify(raw string) (*ports.Claims, error) {
	if raw == "" {
		return nil, domain.ErrTokenMissing
	}

	var claims sessionClaims
	tkn, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (interface{}, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
		jwt.WithLeeway(expiryLeeway),
	)
	if err != nil || !tkn.Valid {
		return nil, domain.ErrTokenInvalid
	}
	if claims.Username == "" || claims.ExpiresAt == nil {
		return nil, domain.ErrTokenInvalid
	}

	return &ports.Claims{
		Username:  claims.Username,
		Role:      domain.Role(claims.Role),
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
