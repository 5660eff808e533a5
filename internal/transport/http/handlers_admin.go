package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	reputationModels "aegis/internal/reputation/models"
	"aegis/internal/session/models"
	"aegis/internal/transport/httputil"
	id "aegis/pkg/domain"
	dErrors "aegis/pkg/domain-errors"
	"aegis/pkg/secrets"
)

// adminKeyHeader carries the operator key on admin routes.
const adminKeyHeader = "X-Admin-Key"

// SessionAdmin is the slice of the session core exposed to operators.
type SessionAdmin interface {
	ForceLogout(ctx context.Context, accountID id.AccountID) error
	ListSessions(ctx context.Context, accountID id.AccountID) ([]models.SessionSummary, error)
}

// ReputationAdmin is the slice of the reputation guard exposed to operators.
type ReputationAdmin interface {
	Unblock(ctx context.Context, ip string) error
	ListBlocks(ctx context.Context) ([]*reputationModels.IpBlockEntry, error)
	RecentAttempts(ctx context.Context, ip string) ([]*reputationModels.AttackAttemptRecord, error)
}

// AdminHandler serves the operator surface: manual unblocks, forced logouts,
// and per-account session listings.
type AdminHandler struct {
	sessions   SessionAdmin
	reputation ReputationAdmin
	logger     *slog.Logger
}

func NewAdminHandler(sessions SessionAdmin, reputation ReputationAdmin, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{sessions: sessions, reputation: reputation, logger: logger}
}

// RequireAdminKey gates admin routes behind a bcrypt-verified operator key.
// An empty configured hash disables the surface entirely; routes behind it
// then answer 404 as if they did not exist.
func RequireAdminKey(keyHash string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if keyHash == "" {
				httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "not found"))
				return
			}
			key := r.Header.Get(adminKeyHeader)
			if key == "" {
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "missing admin key"))
				return
			}
			if err := secrets.Verify(key, keyHash); err != nil {
				logger.WarnContext(r.Context(), "admin_key_rejected", "path", r.URL.Path)
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "invalid admin key"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

type unblockIPRequest struct {
	IP string `json:"ip"`
}

func (h *AdminHandler) handleUnblockIP(w http.ResponseWriter, r *http.Request) {
	var req unblockIPRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	if req.IP == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, "ip is required"))
		return
	}

	if err := h.reputation.Unblock(r.Context(), req.IP); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}

type forceLogoutRequest struct {
	AccountID string `json:"account_id"`
}

func (h *AdminHandler) handleForceLogout(w http.ResponseWriter, r *http.Request) {
	var req forceLogoutRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	accountID, err := id.ParseAccountID(req.AccountID)
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, "invalid account_id"))
		return
	}

	if err := h.sessions.ForceLogout(r.Context(), accountID); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *AdminHandler) handleListSessions(w http.ResponseWriter, r *http.Request) {
	accountID, err := id.ParseAccountID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, "invalid account id"))
		return
	}

	sessions, err := h.sessions.ListSessions(r.Context(), accountID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"account_id": accountID.String(),
		"sessions":   sessions,
	})
}

func (h *AdminHandler) handleListBlocks(w http.ResponseWriter, r *http.Request) {
	blocks, err := h.reputation.ListBlocks(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"blocks": blocks})
}

func (h *AdminHandler) handleRecentAttempts(w http.ResponseWriter, r *http.Request) {
	ip := chi.URLParam(r, "ip")
	attempts, err := h.reputation.RecentAttempts(r.Context(), ip)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"ip":       ip,
		"attempts": attempts,
	})
}
