package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/teamhub/identity-service/internal/api/handler"
	"github.com/teamhub/identity-service/internal/api/middleware"
	"github.com/teamhub/identity-service/internal/core/domain"
	"github.com/teamhub/identity-service/internal/core/ports"
	"github.com/teamhub/identity-service/internal/core/service"
	"github.com/teamhub/identity-service/internal/infrastructure/config"
	mongodb "github.com/teamhub/identity-service/internal/infrastructure/db/mongo"
	redisdb "github.com/teamhub/identity-service/internal/infrastructure/db/redis"
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
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("identity"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	roleRepo := mongodb.NewRoleRepository(db)

	hasher := service.NewPasswordHasher(cfg.BcryptCost)
	tokens := service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	authService := service.NewAuthService(userRepo, hasher, tokens, log)
	registration := service.NewRegistrationService(userRepo, roleRepo, hasher, log)
	provisioning := service.NewProvisioningService(userRepo, roleRepo, log)

	throttle := redisdb.NewLoginThrottle(rdb, cfg.LoginMaxAttempts, cfg.LoginWindow)
	authHandler := handler.NewAuthHandler(authService, registration, provisioning, userRepo, throttle, audit)
	authMiddleware := middleware.Auth(tokens)

	// --- Auth routes ---
	e.POST("/auth/signin", authHandler.SignIn)
	e.POST("/auth/signup", authHandler.SignUp)
	e.POST("/auth/addroles", authHandler.AddRoles)
	e.POST("/auth/addadmin/:userId", authHandler.AddAdmin)
	e.GET("/auth/me", authHandler.Me, authMiddleware)
	e.GET("/auth/users", authHandler.Users, authMiddleware, middleware.RBAC(domain.RoleAdmin))

	// --- Observability ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	return e
}
