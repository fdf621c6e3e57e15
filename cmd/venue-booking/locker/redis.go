package locker

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// releaseScript deletes the key only while it still carries our token, so an
// expired lock re-acquired by someone else is never released by us.
const releaseScript = `if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
else
	return 0
end`

var ErrNotAcquired = errors.New("lock not acquired")

type RedisOption func(*Redis)

// WithTTL bounds how long a crashed holder can keep the key.
func WithTTL(ttl time.Duration) RedisOption {
	return func(r *Redis) { r.ttl = ttl }
}

func WithRetryInterval(d time.Duration) RedisOption {
	return func(r *Redis) { r.retry = d }
}

// WithTokenFunc replaces the random owner token generator.
func WithTokenFunc(fn func() string) RedisOption {
	return func(r *Redis) { r.token = fn }
}

// Redis is a SET NX PX lock shared by every replica talking to the same
// Redis.
type Redis struct {
	client redis.Cmdable
	prefix string
	ttl    time.Duration
	retry  time.Duration
	token  func() string
}

func NewRedis(client redis.Cmdable, prefix string, opts ...RedisOption) *Redis {
	r := &Redis{
		client: client,
		prefix: prefix,
		ttl:    10 * time.Second,
		retry:  50 * time.Millisecond,
		token:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Lock polls until the key is free or ctx is done.
func (r *Redis) Lock(ctx context.Context, key string) (func(), error) {
	k := r.prefix + key
	token := r.token()

	for {
		ok, err := r.client.SetNX(ctx, k, token, r.ttl).Result()
		if err != nil {
			return nil, errors.Wrapf(err, "lock %s", k)
		}
		if ok {
			break
		}

		select {
		case <-ctx.Done():
			return nil, errors.Wrapf(ErrNotAcquired, "%s: %v", k, ctx.Err())
		case <-time.After(r.retry):
		}
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			ctx, cancel := context.WithTimeout(context.Background(), r.ttl)
			defer cancel()

			if err := r.client.Eval(ctx, releaseScript, []string{k}, token).Err(); err != nil {
				log.Warn().Err(err).Str("key", k).Msg("release lock")
			}
		})
	}, nil
}
