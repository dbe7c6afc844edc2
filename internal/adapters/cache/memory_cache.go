package cache

import (
	"sync"
	"time"

	"github.com/mailroom/email-triage/internal/core"
	"go.uber.org/zap"
)

type entry struct {
	reply     *core.ReplySuggestion
	expiresAt time.Time
}

// MemoryCache is an in-memory TTL implementation of the ReplyCache
// interface. Nothing is ever written to disk; entries die with the
// process.
type MemoryCache struct {
	entries     map[string]entry
	mu          sync.RWMutex
	logger      *zap.Logger
	cleanupFreq time.Duration
	stopCh      chan struct{}
	stopOnce    sync.Once
}

// NewMemoryCache creates a new in-memory reply cache with a background
// cleanup task.
func NewMemoryCache(logger *zap.Logger, cleanupFreq time.Duration) *MemoryCache {
	c := &MemoryCache{
		entries:     make(map[string]entry),
		logger:      logger,
		cleanupFreq: cleanupFreq,
		stopCh:      make(chan struct{}),
	}

	go c.startCleanupTask()

	return c
}

// Get retrieves a cached reply if it has not expired.
func (c *MemoryCache) Get(key string) (*core.ReplySuggestion, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok || time.Now().After(e.expiresAt) {
		return nil, false
	}
	return e.reply, true
}

// Set stores a reply with the given TTL.
func (c *MemoryCache) Set(key string, reply *core.ReplySuggestion, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry{
		reply:     reply,
		expiresAt: time.Now().Add(ttl),
	}
}

// cleanup removes expired entries.
func (c *MemoryCache) cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	expired := 0
	for key, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, key)
			expired++
		}
	}

	if expired > 0 {
		c.logger.Debug("Cleaned up expired reply cache entries", zap.Int("expired_count", expired))
	}
}

func (c *MemoryCache) startCleanupTask() {
	ticker := time.NewTicker(c.cleanupFreq)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.cleanup()
		case <-c.stopCh:
			return
		}
	}
}

// Stop stops the background cleanup task
func (c *MemoryCache) Stop() {
	c.stopOnce.Do(func() {
		close(c.stopCh)
	})
}
