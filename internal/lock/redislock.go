package lock

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	defaultTTL     = 30 * time.Second
	defaultBackoff = 50 * time.Millisecond
)

// ErrNotConfigured is returned when the Locker has no Redis client.
var ErrNotConfigured = errors.New("lock: redis client not configured")

// releaseScript deletes the key only while it still holds our token, so a
// lock that expired and was taken by someone else is left alone.
var releaseScript = redis.NewScript(`if redis.call("get", KEYS[1]) == ARGV[1] then
  return redis.call("del", KEYS[1])
end
return 0`)

// Locker serialises work on a key across processes using SET NX with a TTL.
type Locker struct {
	client  redis.Cmdable
	prefix  string
	ttl     time.Duration
	backoff time.Duration
}

// Options tunes a Locker. Zero values fall back to 30s TTL and 50ms backoff.
type Options struct {
	Prefix       string
	TTL          time.Duration
	RetryBackoff time.Duration
}

// New constructs a Locker over client.
func New(client redis.Cmdable, opts Options) *Locker {
	l := &Locker{client: client, prefix: opts.Prefix, ttl: opts.TTL, backoff: opts.RetryBackoff}
	if l.prefix == "" {
		l.prefix = "lock:"
	}
	if l.ttl <= 0 {
		l.ttl = defaultTTL
	}
	if l.backoff <= 0 {
		l.backoff = defaultBackoff
	}
	return l
}

// WithLock runs fn while holding the lock for key, polling until it is free
// or ctx ends. The lock is released when fn returns, whatever its result.
func (l *Locker) WithLock(ctx context.Context, key string, fn func(context.Context) error) error {
	if l == nil || l.client == nil {
		return ErrNotConfigured
	}
	if fn == nil {
		return errors.New("lock: callback not provided")
	}
	full := l.prefix + key
	token := uuid.NewString()

	for {
		ok, err := l.client.SetNX(ctx, full, token, l.ttl).Result()
		if err != nil {
			return err
		}
		if ok {
			break
		}
		timer := time.NewTimer(l.backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
	defer l.release(full, token)
	return fn(ctx)
}

func (l *Locker) release(key, token string) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_ = releaseScript.Run(ctx, l.client, []string{key}, token).Err()
}
