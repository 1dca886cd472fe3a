package nominee

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"vetting/internal/vetting/models"
	"vetting/pkg/platform/circuit"
)

var cacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "vetting_nominee_cache_lookups_total",
	Help: "Nominee cache lookups by result (hit, miss, error, bypass)",
}, []string{"result"})

const (
	// Redis key prefix for cached nominees
	nomineeKeyPrefix = "vetting:nominee:"

	defaultCacheTTL = 5 * time.Minute
)

// Lookup is the read side the cache sits in front of.
type Lookup interface {
	FindByID(ctx context.Context, id models.NomineeID) (*models.Nominee, error)
}

// RedisCache is a read-through nominee cache. Concurrent misses for the same
// nominee share one backing lookup. Redis failures fall back to the backing
// lookup instead of failing the read. Once the breaker opens, reads skip Redis
// and only cache writes probe it until it recovers.
type RedisCache struct {
	client  *redis.Client
	backing Lookup
	ttl     time.Duration
	logger  *slog.Logger
	group   singleflight.Group
	breaker *circuit.Breaker
}

// RedisCacheOption configures a RedisCache instance.
type RedisCacheOption func(*RedisCache)

// WithCacheTTL sets how long cached nominees live.
func WithCacheTTL(ttl time.Duration) RedisCacheOption {
	return func(c *RedisCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithCacheLogger sets the logger for cache failures.
func WithCacheLogger(logger *slog.Logger) RedisCacheOption {
	return func(c *RedisCache) {
		c.logger = logger
	}
}

// WithCacheBreaker replaces the default breaker guarding Redis.
func WithCacheBreaker(b *circuit.Breaker) RedisCacheOption {
	return func(c *RedisCache) {
		if b != nil {
			c.breaker = b
		}
	}
}

// NewRedisCache constructs a cache in front of backing.
func NewRedisCache(client *redis.Client, backing Lookup, opts ...RedisCacheOption) *RedisCache {
	c := &RedisCache{
		client:  client,
		backing: backing,
		ttl:     defaultCacheTTL,
		logger:  slog.Default(),
		breaker: circuit.New("nominee-cache"),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

func (c *RedisCache) FindByID(ctx context.Context, id models.NomineeID) (*models.Nominee, error) {
	key := nomineeKeyPrefix + id.String()

	var raw []byte
	var err error
	if c.breaker.IsOpen() {
		cacheLookups.WithLabelValues("bypass").Inc()
		err = errBypass
	} else {
		raw, err = c.client.Get(ctx, key).Bytes()
		c.record(ctx, err)
	}
	switch {
	case errors.Is(err, errBypass):
	case err == nil:
		var n models.Nominee
		if uerr := json.Unmarshal(raw, &n); uerr == nil {
			cacheLookups.WithLabelValues("hit").Inc()
			n = models.NormalizeNominee(n)
			return &n, nil
		}
		c.logger.WarnContext(ctx, "discarding corrupt cached nominee", "nominee_id", id)
	case errors.Is(err, redis.Nil):
		cacheLookups.WithLabelValues("miss").Inc()
	default:
		cacheLookups.WithLabelValues("error").Inc()
		c.logger.WarnContext(ctx, "nominee cache read failed", "nominee_id", id, "error", err)
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		n, err := c.backing.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		c.store(ctx, key, n)
		return n, nil
	})
	if err != nil {
		return nil, err
	}
	out := v.(*models.Nominee).Clone()
	return &out, nil
}

var errBypass = errors.New("cache bypassed")

// record feeds the breaker. redis.Nil is a normal miss, not a failure.
func (c *RedisCache) record(ctx context.Context, err error) {
	if err == nil || errors.Is(err, redis.Nil) {
		if _, change := c.breaker.RecordSuccess(); change.Closed {
			c.logger.InfoContext(ctx, "nominee cache recovered")
		}
		return
	}
	if _, change := c.breaker.RecordFailure(); change.Opened {
		c.logger.WarnContext(ctx, "nominee cache disabled after repeated failures", "error", err)
	}
}

// Invalidate drops cached entries so the next read goes to the backing store.
func (c *RedisCache) Invalidate(ctx context.Context, ids ...models.NomineeID) error {
	if len(ids) == 0 {
		return nil
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = nomineeKeyPrefix + id.String()
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("invalidate cached nominees: %w", err)
	}
	return nil
}

func (c *RedisCache) store(ctx context.Context, key string, n *models.Nominee) {
	payload, err := json.Marshal(n)
	if err != nil {
		c.logger.WarnContext(ctx, "failed to encode nominee for cache", "nominee_id", n.ID, "error", err)
		return
	}
	err = c.client.Set(ctx, key, payload, c.ttl).Err()
	c.record(ctx, err)
	if err != nil {
		c.logger.WarnContext(ctx, "nominee cache write failed", "nominee_id", n.ID, "error", err)
	}
}
