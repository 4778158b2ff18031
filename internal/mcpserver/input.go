package mcpserver

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/erraggy/oasdelta/parser"
)

// specInput represents the three ways an OpenAPI document can be provided
// to a tool. Exactly one of File, URL, or Content must be set.
type specInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to an OpenAPI document on disk"`
	URL     string `json:"url,omitempty"     jsonschema:"URL to fetch an OpenAPI document from"`
	Content string `json:"content,omitempty" jsonschema:"Inline OpenAPI document content (JSON or YAML)"`
}

// cacheEntry holds a cached parse result with LRU ordering and TTL expiry.
type cacheEntry struct {
	result    *parser.ParseResult
	touchedAt time.Time
	expiresAt time.Time
}

// docCacheStore is a session-scoped cache of parse results, so an agent
// iterating on one revision does not re-read and re-decode the unchanged
// base document on every call. File inputs are keyed by (absolutePath,
// modTime), which invalidates on edit. Content inputs are keyed by a
// SHA-256 hash. URL inputs are keyed by URL string. Expired entries are
// dropped lazily on lookup; the least recently used entry is evicted
// when the cache is full.
type docCacheStore struct {
	mu      sync.Mutex
	entries map[string]*cacheEntry
	maxSize int
	ttl     time.Duration
}

var docCache = &docCacheStore{
	entries: make(map[string]*cacheEntry),
	maxSize: cfg.CacheMaxSize,
	ttl:     cfg.CacheTTL,
}

// get returns a cached result or nil. Expired entries are removed.
func (c *docCacheStore) get(key string) *parser.ParseResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return nil
	}
	if time.Now().After(e.expiresAt) {
		delete(c.entries, key)
		return nil
	}
	// Touch entry for LRU.
	e.touchedAt = time.Now()
	return e.result
}

// put stores a result, evicting the least recently used entry if at capacity.
func (c *docCacheStore) put(key string, result *parser.ParseResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	entry := &cacheEntry{result: result, touchedAt: now, expiresAt: now.Add(c.ttl)}

	// If already cached, just update.
	if _, ok := c.entries[key]; ok {
		c.entries[key] = entry
		return
	}

	if len(c.entries) >= c.maxSize {
		var oldestKey string
		var oldestTime time.Time
		for k, e := range c.entries {
			if oldestKey == "" || e.touchedAt.Before(oldestTime) {
				oldestKey = k
				oldestTime = e.touchedAt
			}
		}
		if oldestKey != "" {
			delete(c.entries, oldestKey)
		}
	}

	c.entries[key] = entry
}

// reset clears all cached entries. Used in tests.
func (c *docCacheStore) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*cacheEntry)
}

// size returns the number of cached entries.
func (c *docCacheStore) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// cacheKey creates a cache key for the given input, or empty when the
// input cannot be keyed safely.
func cacheKey(s specInput) string {
	switch {
	case s.File != "":
		absPath, err := filepath.Abs(s.File)
		if err != nil {
			return ""
		}
		info, err := os.Stat(absPath)
		if err != nil {
			return "" // Can't stat, don't cache.
		}
		return fmt.Sprintf("file:%s:%d", absPath, info.ModTime().UnixNano())
	case s.URL != "":
		return "url:" + s.URL
	case s.Content != "":
		h := sha256.Sum256([]byte(s.Content))
		return "content:" + hex.EncodeToString(h[:])
	default:
		return ""
	}
}

// resolve parses the document from whichever input was provided, using the
// session cache when enabled.
func (s specInput) resolve() (*parser.ParseResult, error) {
	count := 0
	if s.File != "" {
		count++
	}
	if s.URL != "" {
		count++
	}
	if s.Content != "" {
		count++
	}
	if count != 1 {
		return nil, fmt.Errorf("exactly one of file, url, or content must be provided (got %d)", count)
	}

	// Enforce inline content size limit.
	if s.Content != "" && int64(len(s.Content)) > cfg.MaxInlineSize {
		return nil, fmt.Errorf("inline content size %d bytes exceeds maximum %d bytes; use file input instead, or set OASDELTA_MCP_MAX_INLINE_SIZE to increase",
			len(s.Content), cfg.MaxInlineSize)
	}

	var key string
	if cfg.CacheEnabled {
		key = cacheKey(s)
	}
	if key != "" {
		if cached := docCache.get(key); cached != nil {
			return cached, nil
		}
	}

	p := parser.New()
	// Block requests to private/loopback IPs when resolving agent-provided
	// URLs unless explicitly allowed.
	if s.URL != "" && !cfg.AllowPrivateIPs {
		p.HTTPClient = newSafeHTTPClient()
	}

	var result *parser.ParseResult
	var err error
	switch {
	case s.File != "":
		result, err = p.Parse(s.File)
	case s.URL != "":
		result, err = p.Parse(s.URL)
	default:
		result, err = p.ParseBytes([]byte(s.Content))
	}
	if err != nil {
		return nil, err
	}

	if key != "" {
		docCache.put(key, result)
	}

	return result, nil
}
