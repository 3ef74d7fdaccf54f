package revalidate

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/atelier-studio/core/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPurger struct {
	mu    sync.Mutex
	paths []string
}

func (p *recordingPurger) Purge(_ context.Context, path string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.paths = append(p.paths, path)
	return nil
}

func TestDispatchFiltersNonPaths(t *testing.T) {
	purger := &recordingPurger{}
	d := NewDispatcher(purger, "", nil)

	d.Dispatch(context.Background(), "/", "/projects", "https://evil.example", "projects", "", "/blog/x")

	assert.Equal(t, []string{"/", "/projects", "/blog/x"}, purger.paths)
}

func TestDispatchNoValidPaths(t *testing.T) {
	purger := &recordingPurger{}
	d := NewDispatcher(purger, "", nil)

	d.Dispatch(context.Background(), "not-a-path", "")
	assert.Empty(t, purger.paths)
}

func TestDispatchNotifiesFrontend(t *testing.T) {
	received := make(chan []string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Paths []string `json:"paths"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		received <- body.Paths
	}))
	defer srv.Close()

	d := NewDispatcher(&recordingPurger{}, srv.URL, nil)
	d.Dispatch(context.Background(), "/", "/blog/some-post")

	select {
	case paths := <-received:
		assert.Equal(t, []string{"/", "/blog/some-post"}, paths)
	case <-time.After(2 * time.Second):
		t.Fatal("notify request never arrived")
	}
}

func TestDispatchSwallowsNotifyFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	purger := &recordingPurger{}
	d := NewDispatcher(purger, srv.URL, nil)

	// must not panic or error; purge still happens
	d.Dispatch(context.Background(), "/projects")
	assert.Equal(t, []string{"/projects"}, purger.paths)

	// unreachable endpoint is equally harmless
	d = NewDispatcher(purger, "http://127.0.0.1:1", nil)
	d.Dispatch(context.Background(), "/blog")
	time.Sleep(50 * time.Millisecond)
}

func TestRedisPurgerCacheTargets(t *testing.T) {
	p := NewRedisPurger(nil, "/api/v1")

	assert.Equal(t, []string{"/api/v1/projects"}, p.cacheTargets("/projects"))
	assert.Equal(t, []string{"/api/v1/projects/brand-refresh"}, p.cacheTargets("/projects/brand-refresh"))
	assert.Equal(t, []string{"/api/v1/posts"}, p.cacheTargets("/blog"))
	assert.Equal(t, []string{"/api/v1/posts/grid-systems"}, p.cacheTargets("/blog/grid-systems"))
	assert.Equal(t, []string{"/api/v1/projects", "/api/v1/posts"}, p.cacheTargets("/"))
	// already-API paths pass through untouched
	assert.Equal(t, []string{"/api/v1/posts"}, p.cacheTargets("/api/v1/posts"))
}

func TestDispatchEvictsCachedAPIResponses(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	hits := 0
	r := gin.New()
	r.Use(middleware.RouteCache(rdb, middleware.RouteCacheOptions{TTL: time.Minute}))
	r.GET("/api/v1/projects", func(c *gin.Context) {
		hits++
		c.JSON(http.StatusOK, gin.H{"version": hits})
	})
	r.GET("/api/v1/posts", func(c *gin.Context) {
		hits++
		c.JSON(http.StatusOK, gin.H{"version": hits})
	})

	serve := func(target string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
		return w
	}

	serve("/api/v1/projects")
	serve("/api/v1/posts")
	require.Equal(t, "hit", serve("/api/v1/projects").Header().Get("x-atelier-cache"))

	// a write dispatches the front end's logical vocabulary, yet the cached
	// API listing must be re-rendered afterwards
	d := NewDispatcher(NewRedisPurger(rdb, "/api/v1"), "", nil)
	d.Dispatch(context.Background(), "/projects")

	fresh := serve("/api/v1/projects")
	assert.Empty(t, fresh.Header().Get("x-atelier-cache"))
	assert.Equal(t, 3, hits)

	// the other collection's cache entry survives the targeted purge
	assert.Equal(t, "hit", serve("/api/v1/posts").Header().Get("x-atelier-cache"))
}
