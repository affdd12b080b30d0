package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/medflow-hq/medflow/internal/server/handlers"
	"github.com/medflow-hq/medflow/internal/service/auth"
)

// Handlers bundles the HTTP adapters wired into the engine.
type Handlers struct {
	Auth      *handlers.AuthHandler
	Inventory *handlers.InventoryHandler
	Dashboard *handlers.DashboardHandler
	Assistant *handlers.AssistantHandler
	Backup    *handlers.BackupHandler
}

// New wires the Gin engine with required routes and middlewares.
func New(h Handlers, authSvc *auth.Service, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.POST("/login", h.Auth.Login)

	authed := api.Group("")
	authed.Use(handlers.SessionMiddleware(authSvc, logger))
	{
		authed.POST("/logout", h.Auth.Logout)
		authed.GET("/session", h.Auth.Session)

		authed.GET("/inventory", h.Inventory.List)
		authed.POST("/inventory", h.Inventory.Create)
		authed.PUT("/inventory/:id", h.Inventory.Update)
		authed.DELETE("/inventory/:id", h.Inventory.Delete)

		authed.GET("/dashboard", h.Dashboard.Stats)
		authed.GET("/insights", h.Dashboard.Insights)
		authed.GET("/activity", h.Dashboard.Activity)

		authed.POST("/assistant", h.Assistant.Query)
		authed.GET("/backup", h.Backup.Download)
	}

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
