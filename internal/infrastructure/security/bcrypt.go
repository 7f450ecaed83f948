package security

import (
	"context"

	"golang.org/x/crypto/bcrypt"
)

// BcryptHasher implements ports.PasswordHasher with bcrypt. Each digest embeds
// its own random salt and cost, so repeated hashes of one input differ.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a hasher using cost, falling back to bcrypt.DefaultCost
// when cost is outside the range bcrypt accepts.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(_ context.Context, plaintext string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
}

// Verify compares in constant time. Malformed or empty digests return false.
func (h *BcryptHasher) Verify(_ context.Context, plaintext string, digest []byte) bool {
	if len(digest) == 0 {
		return false
	}
	return bcrypt.CompareHashAndPassword(digest, []byte(plaintext)) == nil
}
