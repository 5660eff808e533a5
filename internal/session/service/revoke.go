package service

import (
	"context"
	"errors"

	"aegis/internal/audit"
	"aegis/internal/session/models"
	"aegis/internal/session/store/accesstoken"
	"aegis/internal/session/store/refreshtoken"
	id "aegis/pkg/domain"
	dErrors "aegis/pkg/domain-errors"
	"aegis/pkg/secrets"
)

// LogoutRequest identifies the session being ended. RefreshToken is optional;
// when present its chain is ended with zero successors.
type LogoutRequest struct {
	Principal    models.Principal
	RefreshToken string
	IP           string
}

// Logout revokes the caller's access token and, when the refresh token is
// presented, its device chain. Logout is idempotent: records already revoked
// or pruned do not fail the operation.
func (s *Service) Logout(ctx context.Context, req *LogoutRequest) error {
	if err := s.accessTokens.RevokeByJTI(ctx, req.Principal.JTI); err != nil {
		if !errors.Is(err, accesstoken.ErrNotFound) {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to revoke access token")
		}
	}

	if req.RefreshToken != "" {
		if err := s.endRefreshChain(ctx, req.Principal.AccountID, req.RefreshToken); err != nil {
			return err
		}
	}

	s.logAudit(ctx, audit.EventLogout, req.Principal.AccountID.String(), req.IP, "")
	return nil
}

// endRefreshChain locates the presented refresh token's record and revokes the
// live tail of its chain. A token belonging to a different account is ignored
// rather than revealed.
func (s *Service) endRefreshChain(ctx context.Context, accountID id.AccountID, rawToken string) error {
	record, err := s.refreshTokens.FindByHash(ctx, secrets.Digest(rawToken))
	if err != nil {
		if errors.Is(err, refreshtoken.ErrNotFound) {
			return nil
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up refresh token")
	}
	if record.AccountID != accountID {
		s.authFailure(ctx, "logout_refresh_account_mismatch", false, "account_id", accountID.String())
		return nil
	}
	if err := s.refreshTokens.RevokeChain(ctx, accountID, record.Device.ChainKey()); err != nil {
		if !errors.Is(err, refreshtoken.ErrNotFound) {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to revoke refresh chain")
		}
	}
	return nil
}

// ForceLogout terminates every session of an account: security-version bump
// plus blanket revocation of both token kinds. Admin surface.
func (s *Service) ForceLogout(ctx context.Context, accountID id.AccountID) error {
	if accountID.IsNil() {
		return dErrors.New(dErrors.CodeValidation, "account ID is required")
	}

	current, previous, err := s.securityVersions.Bump(ctx, accountID)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to bump security version")
	}
	s.incrementSecurityVersionBump()

	accessRevoked, err := s.accessTokens.RevokeByAccount(ctx, accountID)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to revoke access tokens")
	}
	refreshRevoked, err := s.refreshTokens.RevokeByAccount(ctx, accountID)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to revoke refresh tokens")
	}

	s.logger.InfoContext(ctx, string(audit.EventSecurityVersionBump),
		"account_id", accountID.String(),
		"previous", previous,
		"current", current,
		"access_revoked", accessRevoked,
		"refresh_revoked", refreshRevoked,
		"reason", "force_logout",
	)
	s.logAudit(ctx, audit.EventTokenRevoked, accountID.String(), "", "force_logout")
	return nil
}
