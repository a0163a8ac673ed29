package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/redis/go-redis/v9"
)

func Connect(ctx context.Context, addr string, db int) (*redis.Client, error) {
	r := redis.NewClient(&redis.Options{Addr: addr, DB: db})
	if err := r.Ping(ctx).Err(); err != nil {
		_ = r.Close()
		return nil, err
	}
	return r, nil
}

// TextCache remembers text extracted from uploads (PDF pages, OCR of a
// photo) keyed by the upload's content hash. Model replies are never cached.
type TextCache struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
}

func NewTextCache(rdb *redis.Client, prefix string, ttl time.Duration) *TextCache {
	return &TextCache{rdb: rdb, prefix: prefix, ttl: ttl}
}

func (c *TextCache) Get(ctx context.Context, content []byte) (string, bool) {
	if c == nil || c.rdb == nil {
		return "", false
	}
	txt, err := c.rdb.Get(ctx, c.Key(content)).Result()
	if err != nil || txt == "" {
		return "", false
	}
	return txt, true
}

func (c *TextCache) Set(ctx context.Context, content []byte, text string) error {
	if c == nil || c.rdb == nil || text == "" || c.ttl <= 0 {
		return nil
	}
	return c.rdb.Set(ctx, c.Key(content), text, c.ttl).Err()
}

func (c *TextCache) Key(content []byte) string {
	h := sha256.Sum256(content)
	return c.prefix + hex.EncodeToString(h[:])
}
