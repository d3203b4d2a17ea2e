package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/volleybot/admin-api/internal/api/handler"
	"github.com/volleybot/admin-api/internal/api/middleware"
	"github.com/volleybot/admin-api/internal/core/ports"
	"github.com/volleybot/admin-api/internal/core/service"
	"github.com/volleybot/admin-api/internal/infrastructure/config"
	mongodb "github.com/volleybot/admin-api/internal/infrastructure/db/mongo"
	redisdb "github.com/volleybot/admin-api/internal/infrastructure/db/redis"
	"github.com/volleybot/admin-api/internal/telegram"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, audit ports.AuditSink, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("volleybot_admin"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	settingsRepo := mongodb.NewSettingsRepository(db)
	tokenStore := redisdb.NewTokenStore(rdb)
	replayGuard := redisdb.NewReplayGuard(rdb)
	verifier := telegram.NewLoginVerifier(cfg.Telegram.BotToken)

	authService := service.NewAuthService(userRepo, settingsRepo, tokenStore, replayGuard, verifier, cfg.JWTSecret, log)
	settingsService := service.NewSettingsService(settingsRepo, audit, log)

	secureCookies := cfg.Env != "development"
	authHandler := handler.NewAuthHandler(authService, cfg.Telegram.BotUsername, secureCookies)
	settingsHandler := handler.NewSettingsHandler(settingsService)
	userHandler := handler.NewUserHandler(userRepo)

	session := middleware.Session(authService)
	adminOnly := middleware.AdminOnly()

	// --- Auth routes ---
	auth := e.Group("/api/auth")
	auth.POST("/telegram", authHandler.Login)
	auth.GET("/telegram/config", authHandler.WidgetConfig)
	auth.POST("/refresh", authHandler.Refresh)
	auth.POST("/logout", authHandler.Logout)
	auth.GET("/me", authHandler.Me, session)

	// --- Admin routes (session + admin rights required) ---
	admin := e.Group("/api/admin", session, adminOnly)
	admin.GET("/users", userHandler.List)
	admin.GET("/settings/template", settingsHandler.Template)
	admin.PUT("/settings/template", settingsHandler.SaveTemplate)
	admin.GET("/settings/schedules", settingsHandler.Schedules)
	admin.POST("/settings/schedules", settingsHandler.AddSchedule)
	admin.PUT("/settings/schedules/:id", settingsHandler.UpdateSchedule)
	admin.DELETE("/settings/schedules/:id", settingsHandler.DeleteSchedule)
	admin.GET("/settings/active_polls", settingsHandler.ActivePolls)
	admin.GET("/settings/admin_ids", settingsHandler.AdminIDs)
	admin.POST("/settings/admin_ids", settingsHandler.AddAdminID)
	admin.DELETE("/settings/admin_ids/:id", settingsHandler.RemoveAdminID)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)          // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
