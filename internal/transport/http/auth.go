package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"aegis/internal/session/models"
	"aegis/internal/transport/httputil"
	dErrors "aegis/pkg/domain-errors"
)

// TokenValidator is the validation point the auth stage consults.
type TokenValidator interface {
	Validate(ctx context.Context, rawToken string) (*models.Principal, error)
}

type principalKey struct{}

// GetPrincipal retrieves the authenticated principal from the context.
func GetPrincipal(ctx context.Context) (*models.Principal, bool) {
	principal, ok := ctx.Value(principalKey{}).(*models.Principal)
	return principal, ok
}

// RequireAuth is the auth pipeline stage: it extracts the bearer token,
// validates it, and stores the principal in the context. Every rejection is
// the same uniform 401; the reason is visible only in server logs and metrics.
func RequireAuth(validator TokenValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			rawToken, ok := bearerToken(r)
			if !ok {
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "missing bearer token"))
				return
			}

			principal, err := validator.Validate(ctx, rawToken)
			if err != nil {
				logger.InfoContext(ctx, "auth_stage_rejected",
					"path", r.URL.Path, "reject_code", string(dErrors.CodeOf(err)))
				httputil.WriteError(w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(ctx, principalKey{}, principal)))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}
