package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func cachedRouter(rdb *redis.Client, calls *int) *gin.Engine {
	r := gin.New()
	r.GET("/categories", CacheMiddleware(rdb, "trivia:categories", time.Minute), func(c *gin.Context) {
		*calls++
		c.JSON(http.StatusOK, gin.H{"success": true, "categories": []string{"Science", "Art"}})
	})
	r.GET("/missing", CacheMiddleware(rdb, "trivia:categories", time.Minute), func(c *gin.Context) {
		*calls++
		c.JSON(http.StatusNotFound, gin.H{"success": false})
	})
	return r
}

func get(r http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestCacheMiddlewareServesHits(t *testing.T) {
	mr, rdb := newRedis(t)
	calls := 0
	r := cachedRouter(rdb, &calls)

	first := get(r, "/categories")
	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "MISS", first.Header().Get("X-Cache"))
	assert.Len(t, mr.Keys(), 1)

	second := get(r, "/categories")
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, first.Header().Get("Content-Type"), second.Header().Get("Content-Type"))
	assert.Equal(t, 1, calls)

	key := mr.Keys()[0]
	assert.Equal(t, time.Minute, mr.TTL(key))
	mr.FastForward(2 * time.Minute)
	assert.Equal(t, "MISS", get(r, "/categories").Header().Get("X-Cache"))
	assert.Equal(t, 2, calls)
}

func TestCacheMiddlewareSkipsErrors(t *testing.T) {
	mr, rdb := newRedis(t)
	calls := 0
	r := cachedRouter(rdb, &calls)

	for i := 0; i < 2; i++ {
		w := get(r, "/missing")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "MISS", w.Header().Get("X-Cache"))
	}
	assert.Equal(t, 2, calls)
	assert.Empty(t, mr.Keys())
}

func TestInvalidateCache(t *testing.T) {
	mr, rdb := newRedis(t)
	calls := 0
	r := cachedRouter(rdb, &calls)
	require.NoError(t, mr.Set("other:key", "keep"))

	get(r, "/categories")
	require.Equal(t, "HIT", get(r, "/categories").Header().Get("X-Cache"))

	require.NoError(t, InvalidateCache(context.Background(), rdb, "trivia:categories"))
	assert.Equal(t, []string{"other:key"}, mr.Keys())
	assert.Equal(t, "MISS", get(r, "/categories").Header().Get("X-Cache"))
	assert.Equal(t, 2, calls)

	assert.NoError(t, InvalidateCache(context.Background(), nil, "trivia:categories"))
}
