package httptransport

import (
	"context"
	"net/http"
	"time"

	platformMW "aegis/internal/platform/middleware"
	"aegis/internal/session/device"
	"aegis/internal/session/models"
	"aegis/internal/session/service"
	"aegis/internal/transport/httputil"
	dErrors "aegis/pkg/domain-errors"
)

// SessionService is the slice of the session core the auth handlers delegate to.
type SessionService interface {
	Login(ctx context.Context, req *service.LoginRequest) (*models.TokenPair, error)
	Refresh(ctx context.Context, req *service.RefreshRequest) (*models.TokenPair, error)
	Logout(ctx context.Context, req *service.LogoutRequest) error
}

// AuthHandler is the thin HTTP layer over the session core. It translates
// requests into service calls and service errors into the uniform envelope;
// no session semantics live here.
type AuthHandler struct {
	sessions SessionService
}

func NewAuthHandler(sessions SessionService) *AuthHandler {
	return &AuthHandler{sessions: sessions}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type logoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type tokenPairResponse struct {
	TokenType        string    `json:"token_type"`
	AccessToken      string    `json:"access_token"`
	AccessExpiresAt  time.Time `json:"access_expires_at"`
	RefreshToken     string    `json:"refresh_token"`
	RefreshExpiresAt time.Time `json:"refresh_expires_at"`
}

func newTokenPairResponse(pair *models.TokenPair) *tokenPairResponse {
	return &tokenPairResponse{
		TokenType:        "Bearer",
		AccessToken:      pair.AccessToken,
		AccessExpiresAt:  pair.AccessExpiresAt,
		RefreshToken:     pair.RefreshToken,
		RefreshExpiresAt: pair.RefreshExpiresAt,
	}
}

func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}

	pair, err := h.sessions.Login(r.Context(), &service.LoginRequest{
		Email:    req.Email,
		Password: req.Password,
		Device:   device.Describe(r.UserAgent()),
		IP:       platformMW.GetClientIP(r.Context()),
	})
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, newTokenPairResponse(pair))
}

func (h *AuthHandler) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}

	pair, err := h.sessions.Refresh(r.Context(), &service.RefreshRequest{
		RefreshToken: req.RefreshToken,
		Device:       device.Describe(r.UserAgent()),
		IP:           platformMW.GetClientIP(r.Context()),
	})
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, newTokenPairResponse(pair))
}

func (h *AuthHandler) handleLogout(w http.ResponseWriter, r *http.Request) {
	principal, ok := GetPrincipal(r.Context())
	if !ok {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "missing principal"))
		return
	}

	// The refresh token is optional; logout with an empty body only revokes
	// the access token.
	var req logoutRequest
	if r.ContentLength != 0 {
		if err := httputil.DecodeJSON(r, &req); err != nil {
			httputil.WriteError(w, err)
			return
		}
	}

	err := h.sessions.Logout(r.Context(), &service.LogoutRequest{
		Principal:    *principal,
		RefreshToken: req.RefreshToken,
		IP:           platformMW.GetClientIP(r.Context()),
	})
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// handleMe echoes the validated principal; it exists so clients and tests can
// probe whether a token is still honored.
func (h *AuthHandler) handleMe(w http.ResponseWriter, r *http.Request) {
	principal, ok := GetPrincipal(r.Context())
	if !ok {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "missing principal"))
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"account_id":       principal.AccountID.String(),
		"jti":              principal.JTI,
		"security_version": principal.SecurityVersion,
	})
}
