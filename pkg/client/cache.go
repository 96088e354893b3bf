package client

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
)

// ResponseCache caches successful API response bodies by request.
// Key is SHA256(method + url + body + auth) so authenticated and anonymous
// responses, which may differ in how much case text they carry, are kept
// apart.
type ResponseCache struct {
	bodies map[string][]byte
	mu     sync.RWMutex
}

// NewResponseCache creates a new response cache.
func NewResponseCache() *ResponseCache {
	return &ResponseCache{
		bodies: make(map[string][]byte),
	}
}

// Get retrieves a cached body for the given request.
// Returns nil if not found.
func (c *ResponseCache) Get(method, rawURL, body string, auth bool) []byte {
	key := computeCacheKey(method, rawURL, body, auth)
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.bodies[key]
}

// Set stores a response body for the given request.
func (c *ResponseCache) Set(method, rawURL, body string, auth bool, response []byte) {
	key := computeCacheKey(method, rawURL, body, auth)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bodies[key] = response
}

// Len returns the number of cached responses.
func (c *ResponseCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.bodies)
}

// computeCacheKey returns SHA256 hash of the request as hex string.
func computeCacheKey(method, rawURL, body string, auth bool) string {
	h := sha256.New()
	h.Write([]byte(method))
	h.Write([]byte{0})
	h.Write([]byte(rawURL))
	h.Write([]byte{0})
	h.Write([]byte(body))
	if auth {
		h.Write([]byte{0, 1})
	}
	return hex.EncodeToString(h.Sum(nil))
}
