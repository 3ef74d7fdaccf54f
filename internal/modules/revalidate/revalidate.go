// Package revalidate invalidates cached public routes after content writes
// and forwards the affected paths to the front end, best-effort.
package revalidate

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/atelier-studio/core/internal/middleware"
	"github.com/atelier-studio/core/internal/modules/content"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// CachePurger is the local cache-invalidation primitive. Purge is idempotent
// and safe to call on paths with no cached entry.
type CachePurger interface {
	Purge(ctx context.Context, path string) error
}

// RedisPurger purges the route-cache keyspace in Redis. The cache keys
// responses by request URI under the API prefix, while callers speak the
// front end's logical paths ("/projects", "/blog/<slug>"), so each logical
// path is translated to the API routes whose cached responses it stales.
type RedisPurger struct {
	rdb       *redis.Client
	apiPrefix string
}

func NewRedisPurger(rdb *redis.Client, apiPrefix string) *RedisPurger {
	return &RedisPurger{rdb: rdb, apiPrefix: strings.TrimSuffix(apiPrefix, "/")}
}

func (p *RedisPurger) Purge(ctx context.Context, path string) error {
	for _, target := range p.cacheTargets(path) {
		if err := middleware.PurgeRoutePath(ctx, p.rdb, target); err != nil {
			return err
		}
	}
	return nil
}

// cacheTargets maps a logical front-end path onto the API request paths the
// route cache actually keys by. The home page aggregates both collections,
// so "/" fans out to both list routes. Paths already under the API prefix
// pass through untouched.
func (p *RedisPurger) cacheTargets(path string) []string {
	projects := content.KindProject.ListPath()
	posts := content.KindPost.ListPath()

	switch {
	case path == "/":
		return []string{p.apiPrefix + "/projects", p.apiPrefix + "/posts"}
	case path == projects:
		return []string{p.apiPrefix + "/projects"}
	case strings.HasPrefix(path, projects+"/"):
		return []string{p.apiPrefix + "/projects/" + strings.TrimPrefix(path, projects+"/")}
	case path == posts:
		return []string{p.apiPrefix + "/posts"}
	case strings.HasPrefix(path, posts+"/"):
		return []string{p.apiPrefix + "/posts/" + strings.TrimPrefix(path, posts+"/")}
	default:
		return []string{path}
	}
}

// Dispatcher fans a set of logical paths out to the cache purger and, when
// configured, to an out-of-process notification endpoint.
type Dispatcher struct {
	purger    CachePurger
	notifyURL string
	client    *http.Client
	logger    *zap.Logger
}

func NewDispatcher(purger CachePurger, notifyURL string, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{
		purger:    purger,
		notifyURL: strings.TrimSpace(notifyURL),
		client:    &http.Client{Timeout: 10 * time.Second},
		logger:    logger,
	}
}

// Dispatch purges every conforming path synchronously, then notifies the
// front end in the background. Paths not starting with "/" are silently
// skipped. Dispatch never fails the calling write: purge errors are logged,
// notification errors are swallowed.
func (d *Dispatcher) Dispatch(ctx context.Context, paths ...string) {
	valid := make([]string, 0, len(paths))
	for _, p := range paths {
		if !strings.HasPrefix(p, "/") {
			continue
		}
		valid = append(valid, p)
	}
	if len(valid) == 0 {
		return
	}

	if d.purger != nil {
		for _, p := range valid {
			if err := d.purger.Purge(ctx, p); err != nil {
				d.logger.Warn("route cache purge failed", zap.String("path", p), zap.Error(err))
			}
		}
	}

	if d.notifyURL != "" {
		go d.notify(valid)
	}
}

func (d *Dispatcher) notify(paths []string) {
	body, err := json.Marshal(map[string]interface{}{"paths": paths})
	if err != nil {
		return
	}
	req, err := http.NewRequest(http.MethodPost, d.notifyURL, bytes.NewReader(body))
	if err != nil {
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		d.logger.Debug("revalidation notify failed", zap.Error(err))
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		d.logger.Debug("revalidation notify rejected", zap.Int("status", resp.StatusCode))
	}
}
