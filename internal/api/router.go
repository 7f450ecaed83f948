package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/meddetector/credential-gateway/docs"
	"github.com/meddetector/credential-gateway/internal/api/handler"
	"github.com/meddetector/credential-gateway/internal/api/middleware"
	"github.com/meddetector/credential-gateway/internal/core/domain"
	"github.com/meddetector/credential-gateway/internal/core/ports"
	"github.com/meddetector/credential-gateway/internal/infrastructure/http/handlers"
)

// Services are the core use cases the HTTP surface exposes.
type Services struct {
	Auth     ports.AuthService
	Accounts ports.AccountService
	Guard    ports.Guard
}

// Options tunes the router outside of the route table.
type Options struct {
	CORSOrigins []string
	// Readiness lists the dependencies checked by /health/ready.
	Readiness map[string]handlers.Pinger
	// Registerer receives the HTTP request metrics. Nil means the default registry.
	Registerer prometheus.Registerer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(svc Services, opts Options, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	origins := opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(log))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: origins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderAuthorization, echo.HeaderContentType},
	}))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "http",
		Registerer: opts.Registerer,
	}))

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(svc.Auth)
	adminHandler := handler.NewAdminHandler(svc.Accounts)
	providerHandler := handler.NewProviderHandler(log)
	authenticate := middleware.Authenticate(svc.Guard)

	// --- Auth routes ---
	e.POST("/login", authHandler.Login)
	e.POST("/register", authHandler.Register)

	// --- Admin routes ---
	admin := e.Group("/admin", authenticate, middleware.RequireRole(domain.RoleAdmin))
	admin.GET("/doctors", adminHandler.ListDoctors)
	admin.PUT("/approve/:id", adminHandler.Approve)
	admin.DELETE("/delete/:id", adminHandler.Delete)

	// --- Provider routes ---
	doctor := e.Group("/doctor", authenticate, middleware.RequireRole(domain.RoleProvider))
	doctor.GET("/profile", providerHandler.Profile)
	doctor.POST("/upload", providerHandler.Upload, middleware.RequireApproved())

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(opts.Readiness)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Operations ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
