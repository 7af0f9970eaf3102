package cache

import (
	"container/list"
	"log"
	"path/filepath"
	"sync"

	"github.com/fathuur7/translate-backend/internal/job"
)

// ResultCache is a bounded, content-addressed cache of processing results.
// Keys are file-content fingerprints combined with the target language, so a
// byte-identical upload under any name hits. Eviction is strictly
// least-recently-used; reads count as use.
type ResultCache struct {
	mu      sync.Mutex
	maxSize int
	entries map[string]*list.Element
	order   *list.List // front = most recently used
}

type resultEntry struct {
	key    string
	result job.Result
}

// NewResultCache creates a cache holding at most maxSize entries.
// A maxSize of 0 disables caching entirely.
func NewResultCache(maxSize int) *ResultCache {
	if maxSize < 0 {
		maxSize = 0
	}
	return &ResultCache{
		maxSize: maxSize,
		entries: make(map[string]*list.Element),
		order:   list.New(),
	}
}

// Get returns the cached result for the file at path and the target language.
// A hit refreshes the entry's recency. An unreadable file is a miss, never an
// error: processing must proceed rather than fail on fingerprint trouble.
func (c *ResultCache) Get(path, targetLanguage string) (job.Result, bool) {
	if c.maxSize == 0 {
		return job.Result{}, false
	}

	key, err := Fingerprint(path, targetLanguage)
	if err != nil {
		log.Printf("[cache] fingerprint failed, treating as miss: %v", err)
		return job.Result{}, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.entries[key]
	if !ok {
		log.Printf("[cache] MISS %s (lang=%s)", filepath.Base(path), langLabel(targetLanguage))
		return job.Result{}, false
	}

	c.order.MoveToFront(el)
	log.Printf("[cache] HIT %s (lang=%s)", filepath.Base(path), langLabel(targetLanguage))
	return el.Value.(*resultEntry).result, true
}

// Put stores the result for the file at path and the target language,
// evicting the least-recently-used entry if a new key would exceed capacity.
// An unreadable file makes Put a no-op.
func (c *ResultCache) Put(path string, result job.Result, targetLanguage string) {
	if c.maxSize == 0 {
		return
	}

	key, err := Fingerprint(path, targetLanguage)
	if err != nil {
		log.Printf("[cache] fingerprint failed, skipping store: %v", err)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[key]; ok {
		el.Value.(*resultEntry).result = result
		c.order.MoveToFront(el)
		return
	}

	if c.order.Len() >= c.maxSize {
		oldest := c.order.Back()
		if oldest != nil {
			evicted := oldest.Value.(*resultEntry)
			c.order.Remove(oldest)
			delete(c.entries, evicted.key)
			log.Printf("[cache] evicted LRU entry %s", evicted.key)
		}
	}

	c.entries[key] = c.order.PushFront(&resultEntry{key: key, result: result})
	log.Printf("[cache] stored result for %s (lang=%s)", filepath.Base(path), langLabel(targetLanguage))
}

// Clear empties the cache.
func (c *ResultCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*list.Element)
	c.order.Init()
	log.Printf("[cache] cleared")
}

// Size returns the number of cached entries.
func (c *ResultCache) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Stats describes cache occupancy for the admin API.
type Stats struct {
	Size    int `json:"size"`
	MaxSize int `json:"max_size"`
}

// Stats returns current occupancy and the configured capacity.
func (c *ResultCache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{Size: c.order.Len(), MaxSize: c.maxSize}
}

func langLabel(targetLanguage string) string {
	if targetLanguage == "" {
		return noTranslation
	}
	return targetLanguage
}
