package server

import (
	"github.com/gin-gonic/gin"

	"github.com/statera-app/statera-backend/internal/http/handlers"
	"github.com/statera-app/statera-backend/internal/http/middleware"
	"github.com/statera-app/statera-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log                 *logger.Logger
	Auth                *middleware.Auth
	UserHandler         *handlers.UserHandler
	LeadHandler         *handlers.LeadHandler
	OrganizationHandler *handlers.OrganizationHandler
	SubscriptionHandler *handlers.SubscriptionHandler
	BillingHandler      *handlers.BillingHandler
	AnnouncementHandler *handlers.AnnouncementHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())
	router.Use(middleware.RequestLogger(cfg.Log))

	router.GET("/healthcheck", handlers.HealthCheck)

	// Public funnel
	router.POST("/leads", cfg.LeadHandler.Capture)
	router.POST("/register", cfg.UserHandler.Create)

	protected := router.Group("/")
	protected.Use(cfg.Auth.RequireAuth())

	protected.GET("/user", cfg.UserHandler.GetMe)
	protected.GET("/organizations", cfg.OrganizationHandler.List)
	protected.POST("/organizations", cfg.OrganizationHandler.Create)
	protected.PATCH("/organizations/:id", cfg.OrganizationHandler.Rename)

	protected.POST("/subscriptions", cfg.SubscriptionHandler.Purchase)
	protected.POST("/subscriptions/:id/cancel", cfg.SubscriptionHandler.Cancel)

	protected.GET("/billing/current", cfg.BillingHandler.Current)
	protected.GET("/billing/status", cfg.BillingHandler.Status)
	protected.GET("/billing/history", cfg.BillingHandler.History)

	admin := protected.Group("/admin")
	admin.Use(cfg.Auth.RequireAdmin())

	admin.GET("/leads", cfg.LeadHandler.List)
	admin.PATCH("/leads/:id", cfg.LeadHandler.UpdateStatus)

	admin.DELETE("/users/:id", cfg.UserHandler.Remove)
	admin.POST("/users/:id/restore", cfg.UserHandler.Restore)

	admin.POST("/announcements", cfg.AnnouncementHandler.Create)
	admin.GET("/announcements/:id", cfg.AnnouncementHandler.Get)
	admin.POST("/announcements/:id/dispatch", cfg.AnnouncementHandler.Dispatch)

	return router
}
