package provider

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ZaguanLabs/gotlmem"
)

// CachedProvider wraps another Provider with a Redis lookaside cache keyed
// on the content hash plus target language. A cache failure is treated as a
// miss; the wrapped provider is the source of truth.
type CachedProvider struct {
	inner     Provider
	client    redis.UniversalClient
	ttl       time.Duration
	keyPrefix string
}

// CachedConfig holds configuration for the Redis lookaside cache.
type CachedConfig struct {
	URL       string // Redis connection URL (e.g. "redis://localhost:6379")
	TTL       int    // TTL in seconds (0 = no expiration)
	KeyPrefix string // prefix for all keys (default: "gotlmem:")
}

// NewCachedProvider connects to Redis and wraps inner with the cache.
func NewCachedProvider(inner Provider, cfg CachedConfig) (*CachedProvider, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return NewCachedProviderFromClient(inner, client, cfg.TTL, cfg.KeyPrefix), nil
}

// NewCachedProviderFromClient wraps inner using an existing Redis client.
func NewCachedProviderFromClient(inner Provider, client redis.UniversalClient, ttlSeconds int, keyPrefix string) *CachedProvider {
	if keyPrefix == "" {
		keyPrefix = "gotlmem:"
	}
	ttl := time.Duration(ttlSeconds) * time.Second
	if ttlSeconds <= 0 {
		ttl = 0
	}
	return &CachedProvider{
		inner:     inner,
		client:    client,
		ttl:       ttl,
		keyPrefix: keyPrefix,
	}
}

// Translate consults the cache before delegating to the wrapped provider.
func (c *CachedProvider) Translate(ctx context.Context, text, targetLang string) (string, error) {
	key := c.keyPrefix + gotlmem.CacheKey(gotlmem.HashText(text), targetLang)

	if val, err := c.client.Get(ctx, key).Result(); err == nil && val != "" {
		return val, nil
	}

	out, err := c.inner.Translate(ctx, text, targetLang)
	if err != nil {
		return "", err
	}

	// Best effort; a failed write must not fail the translation.
	c.client.Set(ctx, key, out, c.ttl)

	return out, nil
}

// TestConnection delegates to the wrapped provider.
func (c *CachedProvider) TestConnection(ctx context.Context) error {
	return c.inner.TestConnection(ctx)
}

// Close closes the Redis connection.
func (c *CachedProvider) Close() error {
	return c.client.Close()
}

// Verify CachedProvider implements Provider
var _ Provider = (*CachedProvider)(nil)
