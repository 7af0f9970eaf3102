package handlers

import (
	"net/http"

	"github.com/fathuur7/translate-backend/internal/cache"
)

type CacheHandler struct {
	cache *cache.ResultCache
}

func NewCacheHandler(c *cache.ResultCache) *CacheHandler {
	return &CacheHandler{cache: c}
}

// Stats returns cache occupancy and capacity
func (h *CacheHandler) Stats(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, h.cache.Stats(), http.StatusOK)
}

// Clear empties the result cache
func (h *CacheHandler) Clear(w http.ResponseWriter, r *http.Request) {
	h.cache.Clear()
	jsonResponse(w, map[string]string{"status": "cleared"}, http.StatusOK)
}
