package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	lru "github.com/hashicorp/golang-lru/v2/expirable"
)

// Revoker keeps identifiers of tokens that were logged out before expiry.
type Revoker interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

const revokedKeyPrefix = "loandesk:revoked:"

// RedisRevoker stores revoked token ids in Redis with a TTL matching the token expiry.
type RedisRevoker struct {
	client *redis.Client
	now    func() time.Time
}

// NewRedisRevoker connects to Redis at url and verifies the connection.
func NewRedisRevoker(ctx context.Context, url string) (*RedisRevoker, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisRevoker{client: client, now: time.Now}, nil
}

func (r *RedisRevoker) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	ttl := until.Sub(r.now())
	if tokenID == "" || ttl <= 0 {
		return nil
	}
	if err := r.client.Set(ctx, revokedKeyPrefix+tokenID, "1", ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (r *RedisRevoker) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	if tokenID == "" {
		return false, nil
	}
	n, err := r.client.Exists(ctx, revokedKeyPrefix+tokenID).Result()
	if err != nil {
		return false, fmt.Errorf("redis exists failed: %w", err)
	}
	return n > 0, nil
}

// Close releases the underlying connection pool.
func (r *RedisRevoker) Close() error {
	return r.client.Close()
}

// MemoryRevoker keeps revoked ids in a bounded in-process LRU.
type MemoryRevoker struct {
	cache *lru.LRU[string, time.Time]
	now   func() time.Time
}

// NewMemoryRevoker creates a revoker holding up to size ids for at most ttl.
func NewMemoryRevoker(size int, ttl time.Duration) *MemoryRevoker {
	if size <= 0 {
		size = 10000
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &MemoryRevoker{
		cache: lru.NewLRU[string, time.Time](size, nil, ttl),
		now:   time.Now,
	}
}

func (r *MemoryRevoker) Revoke(_ context.Context, tokenID string, until time.Time) error {
	if tokenID == "" || !r.now().Before(until) {
		return nil
	}
	r.cache.Add(tokenID, until)
	return nil
}

func (r *MemoryRevoker) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	until, ok := r.cache.Get(tokenID)
	if !ok {
		return false, nil
	}
	return r.now().Before(until), nil
}
