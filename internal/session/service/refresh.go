package service

import (
	"context"
	"errors"
	"time"

	"aegis/internal/audit"
	"aegis/internal/platform/tracer"
	"aegis/internal/session/models"
	"aegis/internal/session/store/refreshtoken"
	dErrors "aegis/pkg/domain-errors"
	"aegis/pkg/platform/middleware/requesttime"
	"aegis/pkg/secrets"
)

// RefreshRequest carries the presented refresh token and request context.
type RefreshRequest struct {
	RefreshToken string
	Device       models.DeviceInfo
	IP           string
}

// Refresh rotates a refresh token: the presented token is consumed exactly
// once and a fresh pair is minted on the same device chain. Presenting an
// already-consumed token is treated as evidence of theft; the entire account
// is locked out by a security-version bump and blanket revocation, because
// there is no way to tell which party holding the chain is the attacker.
func (s *Service) Refresh(ctx context.Context, req *RefreshRequest) (*models.TokenPair, error) {
	ctx, span := s.tracer.Start(ctx, tracer.SpanTokenRefresh)
	var opErr error
	defer func() { span.End(opErr) }()
	defer s.observeDuration(time.Now(), s.observeRefreshDuration)

	if req.RefreshToken == "" {
		opErr = dErrors.New(dErrors.CodeValidation, "refresh token is required")
		return nil, opErr
	}

	storeCtx, cancel := context.WithTimeout(ctx, s.cfg.StoreDeadline)
	defer cancel()

	now := requesttime.Now(ctx)
	record, err := s.refreshTokens.Consume(storeCtx, secrets.Digest(req.RefreshToken), now)
	if err != nil {
		opErr = s.handleConsumeError(ctx, err, record, req.IP)
		return nil, opErr
	}

	span.SetAttributes(tracer.String(tracer.AttrAccountID, record.AccountID.String()))

	// Rotation continues the consumed record's chain; the device identity of
	// a chain is fixed at login.
	pair, err := s.issuePair(ctx, record.AccountID, record.Device, req.IP)
	if err != nil {
		opErr = err
		return nil, err
	}

	s.logAudit(ctx, audit.EventTokenRefreshed, record.AccountID.String(), req.IP, "")
	s.incrementTokensRefreshed()
	return pair, nil
}

// handleConsumeError maps a Consume failure to the caller-facing error and
// runs the theft response when the failure is a replay.
func (s *Service) handleConsumeError(ctx context.Context, err error, record *models.RefreshTokenRecord, ip string) error {
	switch {
	case errors.Is(err, refreshtoken.ErrNotFound):
		s.authFailure(ctx, "unknown_refresh_token", false, "ip", ip)
		s.incrementAuthFailure()
		return dErrors.New(dErrors.CodeUnauthorized, "invalid refresh token")

	case dErrors.HasCode(err, dErrors.CodeExpiredRefreshToken):
		accountID := ""
		if record != nil {
			accountID = record.AccountID.String()
		}
		s.authFailure(ctx, "refresh_token_expired", false, "account_id", accountID, "ip", ip)
		s.incrementAuthFailure()
		return err

	case dErrors.HasCode(err, dErrors.CodeRefreshReuseDetected):
		if record != nil {
			s.respondToReuse(ctx, record, ip)
		}
		return err

	case dErrors.HasCode(err, dErrors.CodeStoreUnavailable):
		s.authFailure(ctx, "refresh_store_unavailable", true, "error", err)
		s.incrementValidationFailure(dErrors.CodeStoreUnavailable)
		return err

	default:
		s.authFailure(ctx, "refresh_consume_failed", true, "error", err)
		return dErrors.Wrap(err, dErrors.CodeInternal, "refresh rotation failed")
	}
}

// respondToReuse is the theft response: bump the account's security version,
// revoke every outstanding token, and report the replaying IP to the
// reputation layer. Access tokens already in flight die at their next
// validation via the stale-version check.
func (s *Service) respondToReuse(ctx context.Context, record *models.RefreshTokenRecord, ip string) {
	accountID := record.AccountID

	s.logAudit(ctx, audit.EventRefreshReuse, accountID.String(), ip, "consumed refresh token replayed")
	s.incrementReuseDetection()
	s.recordAttempt(ctx, ip, AttemptInvalidTokenReuse, "/auth/refresh", accountID.String())

	if current, previous, err := s.securityVersions.Bump(ctx, accountID); err != nil {
		s.authFailure(ctx, "reuse_version_bump_failed", true, "account_id", accountID.String(), "error", err)
	} else {
		s.incrementSecurityVersionBump()
		s.logger.InfoContext(ctx, string(audit.EventSecurityVersionBump),
			"account_id", accountID.String(),
			"previous", previous,
			"current", current,
			"reason", "refresh_reuse",
		)
	}

	if _, err := s.accessTokens.RevokeByAccount(ctx, accountID); err != nil {
		s.authFailure(ctx, "reuse_access_revoke_failed", true, "account_id", accountID.String(), "error", err)
	}
	if _, err := s.refreshTokens.RevokeByAccount(ctx, accountID); err != nil {
		s.authFailure(ctx, "reuse_refresh_revoke_failed", true, "account_id", accountID.String(), "error", err)
	}
	s.logAudit(ctx, audit.EventSecurityVersionBump, accountID.String(), ip, "refresh_reuse")
}
