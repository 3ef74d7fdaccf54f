package app

import (
	"time"

	"github.com/atelier-studio/core/internal/middleware"
	"github.com/atelier-studio/core/internal/modules/auth"
	"github.com/atelier-studio/core/internal/modules/content"
	"github.com/atelier-studio/core/internal/modules/content/post"
	"github.com/atelier-studio/core/internal/modules/content/preview"
	"github.com/atelier-studio/core/internal/modules/content/project"
	"github.com/atelier-studio/core/internal/modules/content/slugtracker"
	"github.com/atelier-studio/core/internal/modules/media"
	"github.com/atelier-studio/core/internal/modules/revalidate"
	pkgredis "github.com/atelier-studio/core/internal/pkg/redis"
	"github.com/atelier-studio/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

const apiPrefix = "/api/v1"

func (a *App) registerRoutes(rc *pkgredis.Client) error {
	r := a.router
	db := a.db
	authMW := middleware.Auth(db)

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c)
	})
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	r.GET("/health", func(c *gin.Context) {
		response.OK(c, gin.H{"status": "ok"})
	})
	r.Static("/uploads", a.cfg.StaticDir+"/uploads")

	// Revalidation: purge the route cache locally, notify the front end.
	var dispatcher *revalidate.Dispatcher
	if rc != nil {
		dispatcher = revalidate.NewDispatcher(revalidate.NewRedisPurger(rc.Raw(), apiPrefix), a.cfg.Revalidate.NotifyURL, a.logger)
	} else {
		dispatcher = revalidate.NewDispatcher(nil, a.cfg.Revalidate.NotifyURL, a.logger)
	}

	trackerSvc := slugtracker.NewService(db)
	projectSvc := project.NewService(db, dispatcher, trackerSvc)
	postSvc := post.NewService(db, dispatcher, trackerSvc)
	authSvc := auth.NewService(db)

	var tokenStore preview.TokenStore
	if rc != nil {
		tokenStore = preview.NewRedisStore(rc)
	} else {
		tokenStore = preview.NewMemoryStore()
	}
	previewSvc := preview.NewService(tokenStore)

	mediaSvc, err := media.NewService(db, a.cfg, a.logger)
	if err != nil {
		return err
	}

	api := r.Group(apiPrefix)
	api.Use(middleware.OptionalAuth(db))
	if rc != nil {
		api.Use(middleware.RateLimit(rc.Raw()))
		api.Use(middleware.RouteCache(rc.Raw(), middleware.RouteCacheOptions{
			TTL:     60 * time.Second,
			Disable: a.cfg.IsDev(),
			SkipPaths: []string{
				apiPrefix + "/preview/*",
				apiPrefix + "/admin/*",
				apiPrefix + "/auth/*",
				apiPrefix + "/media*",
			},
		}))
	}

	auth.NewHandler(authSvc).RegisterRoutes(api, authMW)
	project.NewHandler(projectSvc).RegisterRoutes(api, authMW)
	post.NewHandler(postSvc).RegisterRoutes(api, authMW)
	preview.NewHandler(previewSvc, projectSvc, postSvc).RegisterRoutes(api, authMW)
	revalidate.NewHandler(dispatcher, a.cfg.Revalidate.DeployHookURL).RegisterRoutes(api, authMW)
	media.NewHandler(mediaSvc).RegisterRoutes(api, authMW)
	slugtracker.NewHandler(trackerSvc).RegisterRoutes(api)
	content.NewAdminHandler(map[content.Kind]content.SlugChecker{
		content.KindProject: projectSvc,
		content.KindPost:    postSvc,
	}).RegisterRoutes(api, authMW)

	return nil
}
