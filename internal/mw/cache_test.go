package mw

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCachedRouter(t *testing.T) (*gin.Engine, *int) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hits := 0
	store := cache.New(time.Minute, time.Minute)

	r := gin.New()
	r.Use(Cache(store, time.Minute))
	r.GET("/slow", func(c *gin.Context) {
		hits++
		c.JSON(http.StatusOK, gin.H{"hits": hits})
	})
	r.GET("/missing", func(c *gin.Context) {
		hits++
		c.JSON(http.StatusNotFound, gin.H{"detail": "nope"})
	})
	r.POST("/slow", func(c *gin.Context) {
		hits++
		c.JSON(http.StatusOK, gin.H{"hits": hits})
	})
	return r, &hits
}

func get(router *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", path, nil)
	router.ServeHTTP(w, req)
	return w
}

func TestCacheServesRepeatGetsFromMemory(t *testing.T) {
	router, hits := newCachedRouter(t)

	first := get(router, "/slow")
	require.Equal(t, http.StatusOK, first.Code)

	second := get(router, "/slow")
	require.Equal(t, http.StatusOK, second.Code)

	assert.Equal(t, 1, *hits, "second GET must be served without invoking the handler")
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, first.Header().Get("Content-Type"), second.Header().Get("Content-Type"))
}

func TestCacheSkipsNon2xx(t *testing.T) {
	router, hits := newCachedRouter(t)

	get(router, "/missing")
	get(router, "/missing")

	assert.Equal(t, 2, *hits, "error responses must not be cached")
}

func TestCacheSkipsNonGet(t *testing.T) {
	router, hits := newCachedRouter(t)

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/slow", nil)
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
	}

	assert.Equal(t, 2, *hits)
}
