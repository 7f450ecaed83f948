package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/meddetector/credential-gateway/internal/core/domain"
)

// stubUserRepo is an in-memory ports.UserRepository. Create enforces
// username/email uniqueness under a lock, mirroring the store's unique indexes.
type stubUserRepo struct {
	mu      sync.Mutex
	byID    map[string]*domain.User
	nextID  int
	findErr error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byID: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	clone.PasswordHash = append([]byte(nil), u.PasswordHash...)
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.byID {
		if u.Username == user.Username || u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.nextID++
	stored := cloneUser(user)
	stored.ID = fmt.Sprintf("%024x", r.nextID)
	r.byID[stored.ID] = stored
	return cloneUser(stored), nil
}

func (r *stubUserRepo) find(match func(*domain.User) bool) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, u := range r.byID {
		if match(u) {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return u.Username == username })
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return u.Email == email })
}

func (r *stubUserRepo) ListByRole(_ context.Context, role domain.Role) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := []*domain.User{}
	for _, u := range r.byID {
		if u.Role == role {
			out = append(out, cloneUser(u))
		}
	}
	return out, nil
}

func (r *stubUserRepo) Approve(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[id]
	if !ok || u.Role != domain.RoleProvider || u.Approved {
		return false, nil
	}
	u.Approved = true
	return true, nil
}

func (r *stubUserRepo) DeleteByRole(_ context.Context, id string, role domain.Role) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[id]
	if !ok || u.Role != role {
		return false, nil
	}
	delete(r.byID, id)
	return true, nil
}

func (r *stubUserRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byID)
}

func (r *stubUserRepo) mustGet(username string) *domain.User {
	u, err := r.FindByUsername(context.Background(), username)
	if err != nil {
		panic(err)
	}
	return u
}

// fakeHasher is a fast, salted stand-in for bcrypt that counts hash calls.
type fakeHasher struct {
	mu     sync.Mutex
	hashes int
	salt   int
}

func (h *fakeHasher) Hash(_ context.Context, plaintext string) ([]byte, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.hashes++
	h.salt++
	return []byte(fmt.Sprintf("fake$%d$%s", h.salt, plaintext)), nil
}

func (h *fakeHasher) Verify(_ context.Context, plaintext string, digest []byte) bool {
	parts := strings.SplitN(string(digest), "$", 3)
	return len(parts) == 3 && parts[0] == "fake" && parts[2] == plaintext
}

func (h *fakeHasher) hashCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.hashes
}

type stubLocker struct {
	acquire  bool
	lockErr  error
	locked   []string
	unlocked []string
}

func (l *stubLocker) TryLock(_ context.Context, key string, _ time.Duration) (bool, error) {
	if l.lockErr != nil {
		return false, l.lockErr
	}
	l.locked = append(l.locked, key)
	return l.acquire, nil
}

func (l *stubLocker) Unlock(_ context.Context, key string) error {
	l.unlocked = append(l.unlocked, key)
	return nil
}

var errStoreDown = errors.New("store down")
