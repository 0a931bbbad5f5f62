package app

import (
	"github.com/gin-gonic/gin"

	"github.com/folio-space/core/internal/middleware"
	"github.com/folio-space/core/internal/modules/booking"
	"github.com/folio-space/core/internal/modules/comment"
	"github.com/folio-space/core/internal/modules/content"
	"github.com/folio-space/core/internal/modules/engagement"
	"github.com/folio-space/core/internal/modules/media"
	"github.com/folio-space/core/internal/modules/user"
	"github.com/folio-space/core/internal/pkg/response"
)

func (a *App) registerRoutes() {
	r := a.router

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c)
	})
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	userSvc := user.NewService(a.store)

	r.Use(middleware.ResolveIdentity(userSvc))
	r.Use(middleware.RateLimit(a.rc.Raw()))

	authMW := middleware.RequireAuth()
	adminMW := middleware.RequireAdmin()

	r.GET("/", func(c *gin.Context) {
		response.OK(c, gin.H{
			"name":    "folio-core",
			"version": "1.0.0",
		})
	})
	r.GET("/health", func(c *gin.Context) {
		response.OK(c, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")

	content.NewHandler(content.NewService(a.store)).RegisterRoutes(api, authMW, adminMW)
	engagement.NewHandler(engagement.NewService(a.store)).RegisterRoutes(api, authMW)
	comment.NewHandler(comment.NewService(a.store)).RegisterRoutes(api, authMW)
	booking.NewHandler(booking.NewService(a.store)).RegisterRoutes(api, authMW, adminMW)
	media.NewHandler(media.NewService(a.cfg.Media.BudgetKB), a.cfg.Media.UploadLimitMB).RegisterRoutes(api, authMW, adminMW)
	user.NewHandler(userSvc).RegisterRoutes(api, authMW, adminMW)
}
