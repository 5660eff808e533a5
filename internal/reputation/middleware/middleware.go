package middleware

import (
	"context"
	"log/slog"
	"net/http"

	platformMW "aegis/internal/platform/middleware"
	"aegis/internal/reputation/models"
	"aegis/internal/transport/httputil"
)

// Checker is the reputation guard the middleware consults.
type Checker interface {
	Check(ctx context.Context, ip string) (*models.CheckResult, error)
}

type Middleware struct {
	checker Checker
	logger  *slog.Logger
}

func New(checker Checker, logger *slog.Logger) *Middleware {
	return &Middleware{checker: checker, logger: logger}
}

// Guard rejects requests from blocked IPs before any credential or token in
// the request is examined. A guard that cannot reach its store rejects with
// 503; it never falls open.
func (m *Middleware) Guard() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			ip := platformMW.GetClientIP(ctx)

			result, err := m.checker.Check(ctx, ip)
			if err != nil {
				m.logger.ErrorContext(ctx, "reputation_check_failed", "ip", ip, "error", err)
				httputil.WriteError(w, err)
				return
			}
			if !result.Allowed {
				m.logger.WarnContext(ctx, "request_blocked", "ip", ip, "block_kind", string(result.Block.Kind))
				httputil.WriteBlocked(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
