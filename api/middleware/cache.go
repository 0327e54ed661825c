package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/podcast-catalog/internal/services/cache"
)

// Cache status values reported in the X-Cache header
const (
	CacheHit    = "HIT"
	CacheMiss   = "MISS"
	CacheBypass = "BYPASS"
)

// CacheConfig holds configuration for cache middleware
type CacheConfig struct {
	Cache      cache.Cache
	DefaultTTL time.Duration
	TTLByPath  map[string]time.Duration // Path prefix TTLs; longest prefix wins
	Enabled    bool
}

// CachedResponse is a stored GET response
type CachedResponse struct {
	Status      int       `json:"status"`
	ContentType string    `json:"contentType"`
	Body        []byte    `json:"body"`
	CachedAt    time.Time `json:"cachedAt"`
	ETag        string    `json:"etag"`
}

// responseWriter captures response for caching
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *responseWriter) Write(data []byte) (int, error) {
	w.body.Write(data)
	return w.ResponseWriter.Write(data)
}

func (w *responseWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// CacheMiddleware serves repeated GET requests from the cache. Only 200
// responses are stored. Clients can skip the cache with Cache-Control
// no-cache, no-store or max-age=0.
func CacheMiddleware(config CacheConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !config.Enabled || config.Cache == nil || c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		if shouldBypassCache(c.Request) {
			c.Header("X-Cache", CacheBypass)
			c.Next()
			return
		}

		key := generateCacheKey(c.Request)
		ctx := c.Request.Context()

		if data, found := config.Cache.Get(ctx, key); found {
			if response, err := parseCachedResponse(data); err == nil {
				serveCached(c, response)
				return
			}
			_ = config.Cache.Delete(ctx, key)
		}

		c.Header("X-Cache", CacheMiss)
		w := &responseWriter{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = w

		c.Next()

		if w.Status() != http.StatusOK || w.body.Len() == 0 {
			return
		}

		response := CachedResponse{
			Status:      w.Status(),
			ContentType: w.Header().Get("Content-Type"),
			Body:        w.body.Bytes(),
			CachedAt:    time.Now().UTC(),
			ETag:        generateETag(w.body.Bytes()),
		}
		if data, err := serializeCachedResponse(response); err == nil {
			_ = config.Cache.Set(context.WithoutCancel(ctx), key, data, ttlFor(config, c.Request.URL.Path))
		}
	}
}

func serveCached(c *gin.Context, response *CachedResponse) {
	c.Header("X-Cache", CacheHit)
	c.Header("ETag", response.ETag)
	c.Header("Age", fmt.Sprintf("%d", int(time.Since(response.CachedAt).Seconds())))

	if match := c.GetHeader("If-None-Match"); match != "" && match == response.ETag {
		c.AbortWithStatus(http.StatusNotModified)
		return
	}

	c.Data(response.Status, response.ContentType, response.Body)
	c.Abort()
}

func ttlFor(config CacheConfig, path string) time.Duration {
	ttl := config.DefaultTTL
	longest := -1
	for prefix, pathTTL := range config.TTLByPath {
		if strings.HasPrefix(path, prefix) && len(prefix) > longest {
			ttl = pathTTL
			longest = len(prefix)
		}
	}
	return ttl
}

// shouldBypassCache checks if cache should be bypassed based on request headers
func shouldBypassCache(req *http.Request) bool {
	if req.Header.Get("Pragma") == "no-cache" {
		return true
	}

	cacheControl := req.Header.Get("Cache-Control")
	if cacheControl == "" {
		return false
	}

	for _, directive := range strings.Split(strings.ToLower(cacheControl), ",") {
		switch strings.TrimSpace(directive) {
		case "no-cache", "no-store", "max-age=0":
			return true
		}
	}
	return false
}

// generateCacheKey builds a key from the path and the sorted query
func generateCacheKey(req *http.Request) string {
	parts := []string{req.URL.Path}

	params := req.URL.Query()
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		for _, v := range params[k] {
			parts = append(parts, k+"="+v)
		}
	}

	return "http:" + strings.Join(parts, ":")
}

func generateETag(body []byte) string {
	hash := sha256.Sum256(body)
	return fmt.Sprintf(`"%s"`, hex.EncodeToString(hash[:16]))
}

func serializeCachedResponse(response CachedResponse) ([]byte, error) {
	return json.Marshal(response)
}

func parseCachedResponse(data []byte) (*CachedResponse, error) {
	var response CachedResponse
	if err := json.Unmarshal(data, &response); err != nil {
		return nil, fmt.Errorf("invalid cached response: %w", err)
	}
	if response.Status == 0 {
		return nil, fmt.Errorf("invalid cached response: missing status")
	}
	return &response, nil
}
