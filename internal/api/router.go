package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/voyagedesk/crm-system/docs"
	"github.com/voyagedesk/crm-system/internal/api/handler"
	"github.com/voyagedesk/crm-system/internal/api/middleware"
	"github.com/voyagedesk/crm-system/internal/core/domain"
	"github.com/voyagedesk/crm-system/internal/core/ports"
	"github.com/voyagedesk/crm-system/internal/core/service"
	mongodb "github.com/voyagedesk/crm-system/internal/infrastructure/db/mongo"
	redisdb "github.com/voyagedesk/crm-system/internal/infrastructure/db/redis"
	"github.com/voyagedesk/crm-system/internal/pkg/config"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// The audit recorder must already be started; the router only enqueues to it.
func NewRouter(
	db *mongo.Database,
	rdb *redis.Client,
	recorder ports.AuditRecorder,
	cfg *config.Config,
	log zerolog.Logger,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("crm"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	leadRepo := mongodb.NewLeadRepository(db)
	auditRepo := mongodb.NewAuditRepository(db)
	throttle := redisdb.NewLoginThrottle(rdb, cfg.LoginMaxFailures, cfg.LoginLockWindow)

	authService := service.NewAuthService(userRepo, throttle, recorder, cfg.JWTSecret, cfg.TokenTTL, log)
	userService := service.NewUserService(userRepo, recorder, log)
	leadService := service.NewLeadService(leadRepo, log)
	auditService := service.NewAuditService(auditRepo)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	leadHandler := handler.NewLeadHandler(leadService)
	auditHandler := handler.NewAuditHandler(auditService)

	// --- Auth routes (unauthenticated) ---
	e.POST("/auth/bootstrap", authHandler.Bootstrap)
	e.POST("/auth/login", authHandler.Login)

	// --- Authenticated API ---
	authMW := middleware.Auth(cfg.JWTSecret)
	manageRoles := middleware.RBAC(string(domain.RoleSuper), string(domain.RoleAdmin))
	superOnly := middleware.RBAC(string(domain.RoleSuper))

	v1 := e.Group("/v1", authMW)

	v1.POST("/users", userHandler.Create, manageRoles)
	v1.GET("/users", userHandler.List)
	v1.GET("/users/:id", userHandler.Get)
	v1.PUT("/users/:id/password", userHandler.ChangePassword)
	v1.DELETE("/users/:id", userHandler.Delete, manageRoles)

	v1.GET("/leads", leadHandler.List)
	v1.POST("/leads", leadHandler.Create)
	v1.GET("/leads/:id", leadHandler.Get)
	v1.PUT("/leads/:id/status", leadHandler.UpdateStatus)

	v1.GET("/audit", auditHandler.List, superOnly)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
