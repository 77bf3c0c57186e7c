package lock

import (
	"context"
	"fmt"
	"time"

	"blogcore/pkg/apperrors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// releaseScript deletes the lock only when the stored token matches,
// so a holder whose lock already expired and was re-acquired by someone
// else never deletes the new holder's lock.
var releaseScript = redis.NewScript(`
	if redis.call("GET", KEYS[1]) == ARGV[1] then
		return redis.call("DEL", KEYS[1])
	end
	return 0
`)

// Locker is a non-blocking, TTL-bounded mutex keyed by resource. It
// serializes one expensive operation per resource: a second caller is
// told to retry later, never queued.
type Locker interface {
	WithLock(ctx context.Context, key string, ttl time.Duration, fn func(ctx context.Context) error) error
}

type redisLocker struct {
	client *redis.Client
	prefix string
}

// NewRedisLocker creates a Locker on the shared redis client.
func NewRedisLocker(client *redis.Client) Locker {
	return &redisLocker{client: client, prefix: "lock:"}
}

// WithLock runs fn while holding the lock for key. If the lock is held
// elsewhere it fails immediately with ErrLockContention. The lock is
// released on every exit path; the TTL covers a crashed holder.
func (l *redisLocker) WithLock(ctx context.Context, key string, ttl time.Duration, fn func(ctx context.Context) error) error {
	fullKey := l.prefix + key
	token := uuid.New().String()

	ok, err := l.client.SetNX(ctx, fullKey, token, ttl).Result()
	if err != nil {
		return apperrors.Infrastructure(fmt.Errorf("lock acquire %s: %v", key, err))
	}
	if !ok {
		return fmt.Errorf("%w: %s", apperrors.ErrLockContention, key)
	}

	defer func() {
		// Best-effort release on a background-derived context: the
		// caller's context may already be canceled.
		releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
		defer cancel()
		_ = releaseScript.Run(releaseCtx, l.client, []string{fullKey}, token).Err()
	}()

	return fn(ctx)
}
