package cache

import (
	"container/list"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"sync"
)

// MemoCache memoizes per-segment translations keyed by (normalized source
// text, target language). Unlike the original system's unbounded map it is
// LRU-bounded, so a long-lived process cannot grow without limit.
type MemoCache struct {
	mu      sync.Mutex
	maxSize int
	entries map[string]*list.Element
	order   *list.List
}

type memoEntry struct {
	key  string
	text string
}

// NewMemoCache creates a memo cache holding at most maxSize translations.
// A maxSize of 0 disables memoization.
func NewMemoCache(maxSize int) *MemoCache {
	if maxSize < 0 {
		maxSize = 0
	}
	return &MemoCache{
		maxSize: maxSize,
		entries: make(map[string]*list.Element),
		order:   list.New(),
	}
}

// Get returns the memoized translation for text into targetLanguage.
func (c *MemoCache) Get(text, targetLanguage string) (string, bool) {
	if c.maxSize == 0 {
		return "", false
	}

	key := memoKey(text, targetLanguage)

	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.entries[key]
	if !ok {
		return "", false
	}
	c.order.MoveToFront(el)
	return el.Value.(*memoEntry).text, true
}

// Put records a successful translation for reuse.
func (c *MemoCache) Put(text, targetLanguage, translated string) {
	if c.maxSize == 0 {
		return
	}

	key := memoKey(text, targetLanguage)

	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[key]; ok {
		el.Value.(*memoEntry).text = translated
		c.order.MoveToFront(el)
		return
	}

	if c.order.Len() >= c.maxSize {
		oldest := c.order.Back()
		if oldest != nil {
			evicted := oldest.Value.(*memoEntry)
			c.order.Remove(oldest)
			delete(c.entries, evicted.key)
		}
	}

	c.entries[key] = c.order.PushFront(&memoEntry{key: key, text: translated})
}

// Size returns the number of memoized translations.
func (c *MemoCache) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

func memoKey(text, targetLanguage string) string {
	h := sha256.Sum256([]byte(strings.TrimSpace(text) + "\x00" + targetLanguage))
	return hex.EncodeToString(h[:])
}
