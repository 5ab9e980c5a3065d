package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/accounthub/account-service/docs"
	"github.com/accounthub/account-service/internal/api/handler"
	"github.com/accounthub/account-service/internal/api/metrics"
	"github.com/accounthub/account-service/internal/api/middleware"
	"github.com/accounthub/account-service/internal/core/domain"
	"github.com/accounthub/account-service/internal/core/ports"
	"github.com/accounthub/account-service/internal/core/service"
	mongorepo "github.com/accounthub/account-service/internal/infrastructure/db/mongo"
	redisstore "github.com/accounthub/account-service/internal/infrastructure/db/redis"
	"github.com/accounthub/account-service/internal/pkg/config"
	"github.com/accounthub/account-service/pkg/signature"
)

// Dependencies are the long-lived collaborators built by main.
type Dependencies struct {
	DB *mongo.Database
	// Redis backs the replay guard and is optional.
	Redis      *redis.Client
	Tokens     *service.TokenAuthority
	Signatures *signature.Authority
	Signature  config.SignatureConfig
	Activity   ports.ActivityRecorder
	Log        zerolog.Logger
}

// routes groups what registerRoutes needs, so the wiring can be exercised
// without a database.
type routes struct {
	auth      *handler.AuthHandler
	users     *handler.UserHandler
	alerts    *handler.AlertHandler
	health    *handler.HealthHandler
	readiness *handler.HealthDependenciesHandler
	bearer    echo.MiddlewareFunc
	service   echo.MiddlewareFunc
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := newEcho(deps.Log)
	e.Use(echoprometheus.NewMiddleware(metrics.Namespace))

	// --- Dependencies ---
	accounts := mongorepo.NewAccountRepository(deps.DB)
	alertRepo := mongorepo.NewAlertRepository(deps.DB)

	authService := service.NewAuthService(accounts, deps.Tokens, deps.Activity, deps.Log)
	userService := service.NewUserService(accounts, service.FieldChangePolicy{}, deps.Activity, deps.Log)
	alertService := service.NewAlertService(alertRepo, accounts, deps.Activity, deps.Log)

	sigCfg := middleware.SignatureConfig{
		Header:   deps.Signature.Header,
		Audience: deps.Signature.Audience,
		Log:      deps.Log,
	}
	if deps.Signature.ReplayGuard && deps.Redis != nil {
		sigCfg.Guard = redisstore.NewReplayGuard(deps.Redis, 2*deps.Signatures.MaxSkew())
	}

	registerRoutes(e, routes{
		auth:      handler.NewAuthHandler(authService),
		users:     handler.NewUserHandler(userService),
		alerts:    handler.NewAlertHandler(alertService),
		health:    handler.NewHealthHandler(),
		readiness: handler.NewHealthDependenciesHandler(deps.DB, deps.Redis),
		bearer:    middleware.Auth(deps.Tokens),
		service:   middleware.ServiceSignature(deps.Signatures, sigCfg),
	})

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// newEcho returns an Echo instance with the global middleware, validator and
// error handler installed.
func newEcho(log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(log))
	return e
}

func registerRoutes(e *echo.Echo, r routes) {
	api := e.Group("/api")

	// --- Public ---
	api.POST("/login", r.auth.Login)
	api.POST("/register/client", r.auth.RegisterClient)
	api.POST("/register/cliente", r.auth.RegisterClient) // legacy path
	api.POST("/register/employee", r.auth.RegisterEmployee)

	// --- Bearer token ---
	api.POST("/refresh-token", r.auth.Refresh, r.bearer)
	api.GET("/me", r.users.Me, r.bearer)
	api.PUT("/update/client", r.users.UpdateClient, r.bearer)
	api.PUT("/update/employee", r.users.UpdateEmployee, r.bearer)
	api.GET("/alerts/user/:userId", r.alerts.ListByUser, r.bearer)
	api.GET("/alerts", r.alerts.ListAll, r.bearer, middleware.RBAC(domain.RoleEmployee, domain.RoleAdmin))
	api.PUT("/alerts/:alertId/read", r.alerts.MarkRead, r.bearer)

	// --- Service signature ---
	api.GET("/users", r.users.ListUsers, r.service)

	// --- Health probes (no auth required) ---
	e.GET("/health", r.health.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", r.readiness.Readiness) // readiness – are dependencies up?
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		Skipper: func(c echo.Context) bool {
			p := c.Request().URL.Path
			return p == "/health" || p == "/metrics"
		},
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Str("request_id", v.RequestID).
				Dur("latency", v.Latency.Round(time.Microsecond)).
				Msg("request")
			return nil
		},
	})
}
