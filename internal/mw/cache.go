package mw

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
)

// cacheEntry is a replayable snapshot of one successful GET response. Only
// the content type is kept; per-request headers like correlation IDs must
// not be replayed to later clients.
type cacheEntry struct {
	status      int
	contentType string
	body        []byte
}

func (e cacheEntry) replay(c *gin.Context) {
	if e.contentType != "" {
		c.Writer.Header().Set("Content-Type", e.contentType)
	}
	c.Writer.WriteHeader(e.status)
	c.Writer.Write(e.body)
	c.Abort()
}

// recordingWriter tees the body so the response can be snapshotted after the
// handler chain finishes.
type recordingWriter struct {
	gin.ResponseWriter
	buf bytes.Buffer
}

func (w *recordingWriter) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *recordingWriter) WriteString(s string) (int, error) {
	w.buf.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// Cache serves repeated GETs of slow-changing endpoints from memory, keyed
// on the full request URI. Non-GET methods and non-2xx responses pass
// through uncached.
func Cache(store *cache.Cache, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		key := c.Request.RequestURI
		if hit, ok := store.Get(key); ok {
			hit.(cacheEntry).replay(c)
			return
		}

		rec := &recordingWriter{ResponseWriter: c.Writer}
		c.Writer = rec

		c.Next()

		status := rec.Status()
		if status < 200 || status >= 300 {
			return
		}
		store.Set(key, cacheEntry{
			status:      status,
			contentType: rec.Header().Get("Content-Type"),
			body:        rec.buf.Bytes(),
		}, ttl)
	}
}
