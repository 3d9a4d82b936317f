package session

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"chartisan/internal/types"
)

const (
	defaultMaxEntries = 1000
	defaultTTL        = 2 * time.Minute
)

// CachedResponse is a previously computed pipeline result plus when it was
// cached.
type CachedResponse struct {
	Result   types.PipelineResult
	CachedAt time.Time
}

// Cache is a TTL'd LRU of request responses, so identical prompts replayed
// within the window (retries, duplicate webhooks) skip the completion
// service entirely.
type Cache struct {
	lru *expirable.LRU[string, CachedResponse]
}

func New(maxEntries int, ttl time.Duration) *Cache {
	if maxEntries <= 0 {
		maxEntries = defaultMaxEntries
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Cache{lru: expirable.NewLRU[string, CachedResponse](maxEntries, nil, ttl)}
}

// Key hashes the request identity. Conversation ID participates so the same
// prompt in different conversations never collides.
func Key(platform, prompt string, conversationID int64) string {
	sum := sha256.Sum256(fmt.Appendf(nil, "%s:%s:%d", platform, prompt, conversationID))
	return hex.EncodeToString(sum[:])
}

func (c *Cache) Get(key string) (CachedResponse, bool) {
	if c == nil || c.lru == nil {
		return CachedResponse{}, false
	}
	return c.lru.Get(key)
}

func (c *Cache) Put(key string, result types.PipelineResult) {
	if c == nil || c.lru == nil {
		return
	}
	c.lru.Add(key, CachedResponse{Result: result, CachedAt: time.Now()})
}
