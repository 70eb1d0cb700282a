package enricher

import (
	"os"
	"strings"
	"sync"
	"time"

	"github.com/oracle-trading/oracle/internal/domain"
	"github.com/oracle-trading/oracle/internal/utils"
	"github.com/vmihailenco/msgpack/v5"
)

// cacheEntry is one topic's cached DataContext plus its expiry instant.
type cacheEntry struct {
	context domain.DataContext
	expires time.Time
}

// topicCache is the TTL-indexed, topic-keyed enrichment cache: keyed by
// category + the market question's significant tokens, not by market id,
// so every "Sydney rainfall" market in a batch shares one weather fetch.
type topicCache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
}

func newTopicCache() *topicCache {
	return &topicCache{entries: make(map[string]cacheEntry)}
}

// Key computes the cache key for a market: lower(category) + ":" +
// sorted(top-4-significant-tokens(question)).
func Key(category domain.Category, question string) string {
	tokens := utils.SignificantTokens(question, utils.StopWords)
	return strings.ToLower(string(category)) + ":" + strings.Join(tokens, ",")
}

// Get returns the cached DataContext for key if it exists and has not
// expired.
func (c *topicCache) Get(key string, now time.Time) (domain.DataContext, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok || now.After(entry.expires) {
		return domain.DataContext{}, false
	}
	return entry.context, true
}

// Put inserts ctx under key with the given time-to-live.
func (c *topicCache) Put(key string, ctx domain.DataContext, ttl time.Duration, now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{context: ctx, expires: now.Add(ttl)}
}

// EvictExpired drops every entry whose TTL has passed. Called once at the
// start of every enrich_batch call.
func (c *topicCache) EvictExpired(now time.Time) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	evicted := 0
	for key, entry := range c.entries {
		if now.After(entry.expires) {
			delete(c.entries, key)
			evicted++
		}
	}
	return evicted
}

// Len reports the number of live entries, for tests and metrics.
func (c *topicCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// snapshot is the on-disk shape of the cache: msgpack rather than
// AgentState's JSON format, since this file is an optional warm-start
// optimisation, not durable state.
type snapshot struct {
	Entries map[string]cacheEntry
}

// SaveSnapshot persists the live cache entries to path in msgpack form,
// so a restart can warm-start instead of re-paying every provider call.
func (c *topicCache) SaveSnapshot(path string) error {
	c.mu.Lock()
	snap := snapshot{Entries: make(map[string]cacheEntry, len(c.entries))}
	for k, v := range c.entries {
		snap.Entries[k] = v
	}
	c.mu.Unlock()

	data, err := msgpack.Marshal(snap)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// LoadSnapshot replaces the cache contents with the entries in path that
// have not yet expired as of now. A missing file is not an error: the
// cache simply starts cold.
func (c *topicCache) LoadSnapshot(path string, now time.Time) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}

	var snap snapshot
	if err := msgpack.Unmarshal(data, &snap); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for k, v := range snap.Entries {
		if now.After(v.expires) {
			continue
		}
		c.entries[k] = v
	}
	return nil
}
