package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/softtronics/msw-portal/internal/api/handler"
	"github.com/softtronics/msw-portal/internal/api/middleware"
	"github.com/softtronics/msw-portal/internal/core/ports"
	"github.com/softtronics/msw-portal/internal/core/service"
)

// Deps carries everything the router needs; services are wired in main.
type Deps struct {
	Sessions ports.SessionService
	Users    ports.UserService
	Issuer   *service.TokenIssuer
	Mongo    *mongo.Database
	Redis    *redis.Client
	Log      zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("portal"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Sessions)
	userHandler := handler.NewUserHandler(deps.Users)
	requireAuth := middleware.Auth(deps.Issuer)
	requireAdmin := middleware.AdminOnly()

	// --- Public auth routes ---
	apiGroup := e.Group("/api")
	apiGroup.POST("/send-otp", authHandler.SendOTP)
	apiGroup.POST("/verify-credentials", authHandler.VerifyCredentials)
	apiGroup.POST("/login", authHandler.Login)
	apiGroup.POST("/auth/refresh", authHandler.Refresh)
	apiGroup.POST("/logout", authHandler.Logout)

	// --- Administrative routes ---
	adminGroup := apiGroup.Group("", requireAuth, requireAdmin)
	adminGroup.POST("/signup", userHandler.Signup)
	adminGroup.GET("/users", userHandler.List)
	adminGroup.DELETE("/users/:id", userHandler.Delete)

	// --- Probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
