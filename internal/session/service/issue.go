package service

import (
	"context"
	"errors"
	"time"

	"aegis/internal/audit"
	"aegis/internal/platform/tracer"
	"aegis/internal/session/models"
	"aegis/internal/session/store/account"
	id "aegis/pkg/domain"
	dErrors "aegis/pkg/domain-errors"
	"aegis/pkg/platform/middleware/requesttime"
	"aegis/pkg/secrets"
)

// LoginRequest carries the credentials and request context for issuance.
type LoginRequest struct {
	Email    string
	Password string
	Device   models.DeviceInfo
	IP       string
}

// Login verifies credentials against the account directory and, for an active
// account, issues a fresh access/refresh pair. Credential failures are
// reported uniformly as unauthorized so the response does not reveal whether
// the email exists; an inactive account is the one distinguishable outcome.
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*models.TokenPair, error) {
	ctx, span := s.tracer.Start(ctx, tracer.SpanTokenIssue)
	var opErr error
	defer func() { span.End(opErr) }()
	defer s.observeDuration(time.Now(), s.observeLoginDuration)

	if req.Email == "" || req.Password == "" {
		opErr = dErrors.New(dErrors.CodeValidation, "email and password are required")
		return nil, opErr
	}
	if s.accounts == nil {
		s.authFailure(ctx, "account_directory_missing", true)
		opErr = dErrors.New(dErrors.CodeInternal, "account directory not configured")
		return nil, opErr
	}

	acct, err := s.accounts.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			s.authFailure(ctx, "unknown_account", false, "ip", req.IP)
			s.incrementAuthFailure()
			s.recordAttempt(ctx, req.IP, AttemptCredentialStuffing, "/auth/login", "")
			opErr = dErrors.New(dErrors.CodeUnauthorized, "invalid credentials")
			return nil, opErr
		}
		s.authFailure(ctx, "account_lookup_failed", true, "error", err)
		opErr = dErrors.Wrap(err, dErrors.CodeStoreUnavailable, "account lookup failed")
		return nil, opErr
	}

	if err := secrets.Verify(req.Password, acct.PasswordHash); err != nil {
		s.authFailure(ctx, "invalid_password", false, "account_id", acct.ID.String(), "ip", req.IP)
		s.incrementAuthFailure()
		s.recordAttempt(ctx, req.IP, AttemptCredentialStuffing, "/auth/login", acct.ID.String())
		opErr = dErrors.New(dErrors.CodeUnauthorized, "invalid credentials")
		return nil, opErr
	}

	if !acct.Active {
		s.authFailure(ctx, "account_locked", false, "account_id", acct.ID.String())
		s.incrementAuthFailure()
		opErr = dErrors.New(dErrors.CodeAccountLocked, "account is locked")
		return nil, opErr
	}

	span.SetAttributes(tracer.String(tracer.AttrAccountID, acct.ID.String()))

	pair, err := s.issuePair(ctx, acct.ID, req.Device, req.IP)
	if err != nil {
		opErr = err
		return nil, err
	}

	s.logAudit(ctx, audit.EventTokenIssued, acct.ID.String(), req.IP, "")
	return pair, nil
}

// issuePair mints and persists one access/refresh pair stamped with the
// account's current security version. Shared by login and rotation. Store
// round-trips are bounded by the configured deadline, same as validation.
func (s *Service) issuePair(ctx context.Context, accountID id.AccountID, device models.DeviceInfo, ip string) (*models.TokenPair, error) {
	storeCtx, cancel := context.WithTimeout(ctx, s.cfg.StoreDeadline)
	defer cancel()

	version, err := s.securityVersions.Current(storeCtx, accountID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeStoreUnavailable, "security version lookup failed")
	}

	accessToken, jti, err := s.jwt.GenerateAccessToken(ctx, accountID, version)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to generate access token")
	}
	refreshToken, err := s.jwt.CreateRefreshToken()
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to generate refresh token")
	}

	now := requesttime.Now(ctx)
	accessExpiry := now.Add(s.jwt.TokenTTL())
	refreshExpiry := now.Add(s.cfg.RefreshTokenTTL)

	accessRecord, err := models.NewAccessTokenRecord(jti, accountID, now, accessExpiry, device, ip)
	if err != nil {
		return nil, err
	}
	refreshRecord, err := models.NewRefreshTokenRecord(secrets.Digest(refreshToken), accountID, now, refreshExpiry, device, ip)
	if err != nil {
		return nil, err
	}

	if err := s.accessTokens.Create(storeCtx, accessRecord); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to persist access token record")
	}
	if err := s.refreshTokens.Create(storeCtx, refreshRecord); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to persist refresh token record")
	}
	s.incrementTokensIssued()

	return &models.TokenPair{
		AccessToken:      accessToken,
		AccessExpiresAt:  accessExpiry,
		RefreshToken:     refreshToken,
		RefreshExpiresAt: refreshExpiry,
	}, nil
}
