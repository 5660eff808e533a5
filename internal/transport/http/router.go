package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"aegis/internal/platform/middleware"
	reputationMW "aegis/internal/reputation/middleware"
	"aegis/internal/transport/httputil"
	"aegis/pkg/platform/middleware/requesttime"
)

// RouterConfig carries the collaborators the router wires together.
type RouterConfig struct {
	Auth       *AuthHandler
	Admin      *AdminHandler
	Validator  TokenValidator
	Reputation reputationMW.Checker

	// AdminKeyHash is the bcrypt hash gating /admin routes; empty disables them.
	AdminKeyHash string

	Logger *slog.Logger
}

// NewRouter assembles the full HTTP surface: platform middleware, then the
// security pipeline, then routes. Auth endpoints sit behind the reputation
// stage; protected endpoints additionally pass the auth stage. Health and
// metrics bypass the pipeline entirely.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.ClientIP)
	r.Use(requesttime.Middleware)
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.Timeout(30 * time.Second))

	pipeline := NewPipeline(
		reputationMW.New(cfg.Reputation, cfg.Logger).Guard(),
		RequireAuth(cfg.Validator, cfg.Logger),
	)

	r.Get("/healthz", handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(pipeline.Public()...)
		r.Post("/auth/login", cfg.Auth.handleLogin)
		r.Post("/auth/refresh", cfg.Auth.handleRefresh)
	})

	r.Group(func(r chi.Router) {
		r.Use(pipeline.Protected()...)
		r.Post("/auth/logout", cfg.Auth.handleLogout)
		r.Get("/me", cfg.Auth.handleMe)
	})

	// Admin routes authenticate with the operator key, not a bearer token, so
	// they take the public pipeline plus the key check.
	r.Group(func(r chi.Router) {
		r.Use(pipeline.Public()...)
		r.Use(RequireAdminKey(cfg.AdminKeyHash, cfg.Logger))
		r.Post("/admin/unblock-ip", cfg.Admin.handleUnblockIP)
		r.Post("/admin/force-logout", cfg.Admin.handleForceLogout)
		r.Get("/admin/accounts/{id}/sessions", cfg.Admin.handleListSessions)
		r.Get("/admin/blocks", cfg.Admin.handleListBlocks)
		r.Get("/admin/ips/{ip}/attempts", cfg.Admin.handleRecentAttempts)
	})

	return r
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
