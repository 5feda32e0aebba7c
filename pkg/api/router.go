package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/marmos91/resourced/internal/logger"
	"github.com/marmos91/resourced/pkg/api/auth"
	"github.com/marmos91/resourced/pkg/api/handlers"
	apiMiddleware "github.com/marmos91/resourced/pkg/api/middleware"
	"github.com/marmos91/resourced/pkg/deploy"
	"github.com/marmos91/resourced/pkg/naming"
	"github.com/marmos91/resourced/pkg/registry"
)

// NewRouter creates and configures the chi router with all middleware and routes.
//
// The router is configured with:
//   - Request ID middleware for request tracking
//   - Real IP extraction for proper client identification
//   - Custom request logging using the internal logger
//   - Panic recovery to prevent server crashes
//   - Request timeout to prevent hung requests
//
// Routes:
//   - GET /health - Liveness probe
//   - GET /health/ready - Readiness probe
//   - POST /api/v1/auth/login - Authentication
//   - POST /api/v1/auth/refresh - Token refresh
//   - GET /api/v1/auth/me - Current user info
//   - /api/v1/applications/* - Application management (admin only)
//   - /api/v1/applications/{name}/bundles/{bundle}/admin-objects/* - Admin-object lookups
//   - POST /api/v1/applications/{name}/sessions/deploy - Mail-session registration
//   - POST /api/v1/applications/{name}/sessions/undeploy - Mail-session unregistration
//   - GET /api/v1/bindings - Naming-service binding listing
func NewRouter(
	reg *registry.Registry,
	deployer *deploy.Deployer,
	namingService naming.Service,
	jwtService *auth.JWTService,
	creds handlers.Credentials,
) http.Handler {
	r := chi.NewRouter()

	// Middleware stack - order matters
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	// Health routes - unauthenticated
	healthHandler := handlers.NewHealthHandler(reg, namingService)
	r.Route("/health", func(r chi.Router) {
		r.Get("/", healthHandler.Liveness)
		r.Get("/ready", healthHandler.Readiness)
	})

	// Root redirect to health for convenience
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/health", http.StatusTemporaryRedirect)
	})

	authHandler := handlers.NewAuthHandler(creds, jwtService)
	appHandler := handlers.NewApplicationHandler(reg, deployer)
	adminObjectHandler := handlers.NewAdminObjectHandler(reg)
	sessionHandler := handlers.NewSessionHandler(reg, deployer, namingService)

	r.Route("/api/v1", func(r chi.Router) {
		// Auth routes - mostly unauthenticated
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)

			r.Group(func(r chi.Router) {
				r.Use(apiMiddleware.JWTAuth(jwtService))
				r.Get("/me", authHandler.Me)
			})
		})

		// Protected routes - require authentication
		r.Group(func(r chi.Router) {
			r.Use(apiMiddleware.JWTAuth(jwtService))

			r.Route("/applications", func(r chi.Router) {
				r.Get("/", appHandler.List)

				// Write operations: admin only
				r.Group(func(r chi.Router) {
					r.Use(apiMiddleware.RequireAdmin())
					r.Post("/", appHandler.Create)
				})

				r.Route("/{name}", func(r chi.Router) {
					r.Get("/", appHandler.Get)

					// Delete: admin only
					r.Group(func(r chi.Router) {
						r.Use(apiMiddleware.RequireAdmin())
						r.Delete("/", appHandler.Delete)
					})

					// Admin-object lookups within a bundle
					r.Route("/bundles/{bundle}/admin-objects", func(r chi.Router) {
						r.Get("/interfaces", adminObjectHandler.Interfaces)
						r.Get("/classes", adminObjectHandler.Classes)
						r.Get("/exists", adminObjectHandler.Exists)
						r.Get("/properties", adminObjectHandler.Properties)
						r.Get("/confidential", adminObjectHandler.Confidential)
					})

					// Mail-session deployment: admin only
					r.Route("/sessions", func(r chi.Router) {
						r.Use(apiMiddleware.RequireAdmin())
						r.Post("/deploy", sessionHandler.Deploy)
						r.Post("/undeploy", sessionHandler.Undeploy)
					})
				})
			})

			r.Get("/bindings", sessionHandler.Bindings)
		})
	})

	return r
}

// isHealthPath returns true if the request path is a healthcheck endpoint.
func isHealthPath(path string) bool {
	return path == "/health" || strings.HasPrefix(path, "/health/")
}

// requestLogger is a custom middleware that logs requests using the internal logger.
//
// It logs:
//   - Request start (DEBUG level): method, path, remote addr
//   - Request completion (INFO level): method, path, status, duration
//   - Healthcheck requests are logged at DEBUG level to reduce noise
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := middleware.GetReqID(r.Context())

		logger.Debug("API request started",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
		)

		// Wrap response writer to capture status code
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		duration := time.Since(start)

		logArgs := []any{
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", duration.String(),
		}

		// Log healthcheck requests at DEBUG to avoid polluting logs in k8s
		if isHealthPath(r.URL.Path) {
			logger.Debug("API request completed", logArgs...)
		} else {
			logger.Info("API request completed", logArgs...)
		}
	})
}
