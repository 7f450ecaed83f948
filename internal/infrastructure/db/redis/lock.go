package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const lockPrefix = "lock:"

// unlockScript deletes the key only while it still holds this owner's token.
var unlockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Locker provides best-effort cross-replica mutual exclusion backed by Redis.
// Key format: lock:<name>
type Locker struct {
	client *redis.Client
	owner  string
}

// NewLocker creates a Locker wrapping the given Redis client. Each Locker has
// its own owner token so it can only release locks it acquired.
func NewLocker(client *redis.Client) *Locker {
	return &Locker{client: client, owner: newOwnerToken()}
}

// TryLock attempts to take the lock without waiting. The lock expires after ttl.
func (l *Locker) TryLock(ctx context.Context, name string, ttl time.Duration) (bool, error) {
	ok, err := l.client.SetNX(ctx, l.key(name), l.owner, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("lock %s: %w", name, err)
	}
	return ok, nil
}

// Unlock releases the lock if this Locker still owns it.
func (l *Locker) Unlock(ctx context.Context, name string) error {
	if err := unlockScript.Run(ctx, l.client, []string{l.key(name)}, l.owner).Err(); err != nil {
		return fmt.Errorf("unlock %s: %w", name, err)
	}
	return nil
}

func (l *Locker) key(name string) string {
	return lockPrefix + name
}

func newOwnerToken() string {
	return uuid.NewString()
}
