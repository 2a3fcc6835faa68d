package contextstore

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/rueidis"

	"github.com/claro-labs/claro/internal/domain"
)

// Redis is a redis-backed context store. It trades the "process lifetime"
// bound of the memory store for server-side TTL eviction, which also lets
// multiple API replicas share one context cache.
type Redis struct {
	client rueidis.Client
	prefix string
	ttl    time.Duration
}

// RedisConfig holds redis store settings.
type RedisConfig struct {
	Addrs     []string
	Password  string
	KeyPrefix string
	TTL       time.Duration
}

// NewRedis creates a redis-backed context store.
func NewRedis(cfg RedisConfig) (*Redis, error) {
	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress: cfg.Addrs,
		Password:    cfg.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("create redis client: %w", err)
	}
	return &Redis{client: client, prefix: cfg.KeyPrefix, ttl: cfg.TTL}, nil
}

// Close releases the underlying client.
func (r *Redis) Close() {
	r.client.Close()
}

// Put implements Store. The SET is atomic, so concurrent writers resolve
// to last-writer-wins without torn values.
func (r *Redis) Put(ctx context.Context, userID string, d domain.ContextDomain, text string) error {
	k := key(r.prefix, userID, d)

	var cmd rueidis.Completed
	if r.ttl > 0 {
		cmd = r.client.B().Set().Key(k).Value(text).Ex(r.ttl).Build()
	} else {
		cmd = r.client.B().Set().Key(k).Value(text).Build()
	}
	if err := r.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("put context %s: %w", k, err)
	}
	return nil
}

// Get implements Store.
func (r *Redis) Get(ctx context.Context, userID string, d domain.ContextDomain) (string, bool, error) {
	k := key(r.prefix, userID, d)

	text, err := r.client.Do(ctx, r.client.B().Get().Key(k).Build()).ToString()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("get context %s: %w", k, err)
	}
	return text, true, nil
}
