package api

import (
	"net"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/smeworks/backoffice-api/docs"
	"github.com/smeworks/backoffice-api/internal/api/handler"
	"github.com/smeworks/backoffice-api/internal/api/middleware"
	"github.com/smeworks/backoffice-api/internal/core/domain"
	"github.com/smeworks/backoffice-api/internal/core/ports"
)

// Deps carries everything the HTTP layer needs. Nil Registry means the
// default Prometheus registry. Without TrustedProxies the client IP is the
// socket peer and forwarding headers are ignored.
type Deps struct {
	Auth      ports.AuthService
	Users     ports.UserService
	Records   ports.RecordService
	AuditLog  ports.AuditRepository
	AuditSink ports.AuditSink
	Limiter   ports.LoginLimiter
	Checks    []handler.DependencyCheck
	Registry  *prometheus.Registry
	Log       zerolog.Logger

	TrustedProxies []*net.IPNet
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)
	e.IPExtractor = ipExtractor(d.TrustedProxies)

	// --- Global middleware ---
	// The request logger renders errors, so it must sit inside the
	// prometheus middleware for the real status to be recorded.
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(prometheusMiddleware(d.Registry))
	e.Use(requestLogger(d.Log))

	// --- Operational routes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(d.Checks...)
	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", metricsHandler(d.Registry))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	authn := middleware.Authenticate(d.Auth)
	adminOrSuper := middleware.RequirePolicy(domain.AdminOrSuperAdmin, d.AuditSink)
	superOnly := middleware.RequirePolicy(domain.SuperAdminOnly, d.AuditSink)

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(d.Auth)
	auth := e.Group("/auth")
	if d.Limiter != nil {
		auth.POST("/login", authHandler.Login, middleware.LoginRateLimit(d.Limiter, d.Log))
	} else {
		auth.POST("/login", authHandler.Login)
	}
	auth.POST("/register", authHandler.Register)
	auth.GET("/me", authHandler.Me, authn)

	v1 := e.Group("/v1", authn)

	// --- User administration ---
	userHandler := handler.NewUserHandler(d.Users)
	v1.GET("/users", userHandler.List, adminOrSuper)
	v1.POST("/users", userHandler.Create, superOnly)
	v1.PATCH("/users/:username/role", userHandler.ChangeRole, superOnly)
	v1.PATCH("/users/:username/active", userHandler.SetActive, adminOrSuper)

	// --- SME records ---
	recordHandler := handler.NewRecordHandler(d.Records)
	v1.GET("/employees", recordHandler.ListEmployees)
	v1.GET("/employees/:id", recordHandler.GetEmployee)
	v1.GET("/departments", recordHandler.ListDepartments)
	v1.GET("/projects", recordHandler.ListProjects)
	v1.GET("/projects/:id", recordHandler.GetProject)
	v1.GET("/customers", recordHandler.ListCustomers)
	v1.GET("/materials", recordHandler.ListMaterials)
	v1.GET("/time-entries", recordHandler.ListTimeEntries)
	v1.GET("/leave-requests", recordHandler.ListLeaveRequests)
	v1.GET("/tools", recordHandler.ListTools)
	v1.GET("/analytics/dashboard", recordHandler.Dashboard, adminOrSuper)

	// --- Audit trail ---
	auditHandler := handler.NewAuditHandler(d.AuditLog)
	v1.GET("/audit", auditHandler.List, superOnly)

	return e
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURIPath:   true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics" || c.Path() == "/health"
		},
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Status >= 500 {
				ev = log.Error()
			} else if v.Status >= 400 {
				ev = log.Warn()
			}
			if u, ok := middleware.CurrentUser(c); ok {
				ev = ev.Str("username", u.Username)
			}
			ev.Str("request_id", v.RequestID).
				Str("method", v.Method).
				Str("path", v.URIPath).
				Str("remote_ip", v.RemoteIP).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Msg("request")
			return nil
		},
	})
}

// ipExtractor only honours X-Forwarded-For hops that come from a trusted
// proxy range.
func ipExtractor(trusted []*net.IPNet) echo.IPExtractor {
	if len(trusted) == 0 {
		return echo.ExtractIPDirect()
	}
	opts := []echo.TrustOption{
		echo.TrustLoopback(false),
		echo.TrustLinkLocal(false),
		echo.TrustPrivateNet(false),
	}
	for _, n := range trusted {
		opts = append(opts, echo.TrustIPRange(n))
	}
	return echo.ExtractIPFromXFFHeader(opts...)
}

func prometheusMiddleware(reg *prometheus.Registry) echo.MiddlewareFunc {
	cfg := echoprometheus.MiddlewareConfig{Subsystem: "backoffice"}
	if reg != nil {
		cfg.Registerer = reg
	}
	return echoprometheus.NewMiddlewareWithConfig(cfg)
}

func metricsHandler(reg *prometheus.Registry) echo.HandlerFunc {
	if reg == nil {
		return echoprometheus.NewHandler()
	}
	return echo.WrapHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
}
