package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/polkiloo/loandesk/internal/config"
	"github.com/polkiloo/loandesk/internal/domain/model"
	"github.com/polkiloo/loandesk/internal/metrics"
	"github.com/polkiloo/loandesk/internal/server/http/handlers"
	"github.com/polkiloo/loandesk/internal/server/http/middleware"
)

const maxRequestBody = 1 << 20

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.LoanDeskFacade, cfg *config.Config, m *metrics.Metrics, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.Metrics(m))
	engine.Use(middleware.CORS(cfg.CORSOrigins))
	engine.Use(middleware.DecompressRequest(maxRequestBody))
	engine.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})))

	authHandler := handlers.NewAuthHandler(facade)
	loanHandler := handlers.NewLoanHandler(facade)
	paymentHandler := handlers.NewPaymentHandler(facade)
	dashboardHandler := handlers.NewDashboardHandler(facade)
	userHandler := handlers.NewUserHandler(facade)

	engine.GET("/metrics", gin.WrapH(m.Handler()))

	api := engine.Group("/api")
	api.GET("/health", dashboardHandler.Health)
	api.GET("/db-status", dashboardHandler.DBStatus)
	api.POST("/auth/login", authHandler.Login)

	private := api.Group("")
	private.Use(middleware.AuthRequired(facade))
	private.POST("/auth/logout", authHandler.Logout)
	private.GET("/auth/me", authHandler.Me)

	private.GET("/dashboard", dashboardHandler.Summary)

	private.GET("/loans", loanHandler.List)
	private.GET("/loans/:id", loanHandler.Get)
	private.POST("/loans", loanHandler.Create)
	private.PUT("/loans/:id", loanHandler.Update)
	private.DELETE("/loans/:id", middleware.RequireRole(model.RoleAdmin, model.RoleManager), loanHandler.Delete)
	private.GET("/loans/:id/payments", paymentHandler.List)
	private.POST("/loans/:id/payments", paymentHandler.Record)

	private.GET("/users", middleware.RequireRole(model.RoleAdmin, model.RoleManager), userHandler.List)
	private.POST("/users", middleware.RequireRole(model.RoleAdmin), userHandler.Create)
	private.PUT("/users/:id/password", userHandler.ChangePassword)
	private.PUT("/users/:id/role", middleware.RequireRole(model.RoleAdmin), userHandler.ChangeRole)
	private.DELETE("/users/:id", middleware.RequireRole(model.RoleAdmin), userHandler.Deactivate)

	return engine
}
