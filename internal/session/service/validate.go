package service

import (
	"context"
	"errors"

	"aegis/internal/platform/tracer"
	"aegis/internal/session/models"
	"aegis/internal/session/store/accesstoken"
	id "aegis/pkg/domain"
	dErrors "aegis/pkg/domain-errors"
)

// Validate checks a presented access token and returns the authenticated
// principal. Rejection points run in a fixed order, each with its own code:
//
//  1. malformed_token  - signature, structure, or required claims
//  2. expired_token    - cryptographically valid but past exp
//  3. token_revoked    - server-side record missing or revoked
//  4. stale_security_version - token minted before the account's current version
//
// Validation is read-only: it never mutates any record. Store round-trips are
// bounded by the configured deadline; a store that cannot answer produces
// store_unavailable. An unreachable store never falls open.
func (s *Service) Validate(ctx context.Context, rawToken string) (*models.Principal, error) {
	ctx, span := s.tracer.Start(ctx, tracer.SpanTokenValidate)
	var opErr error
	defer func() { span.End(opErr) }()

	claims, err := s.jwt.ValidateToken(rawToken)
	if err != nil {
		code := dErrors.CodeOf(err)
		s.incrementValidationFailure(code)
		span.SetAttributes(tracer.String(tracer.AttrRejectCode, string(code)))
		opErr = err
		return nil, err
	}

	accountID, err := id.ParseAccountID(claims.AccountID)
	if err != nil {
		s.incrementValidationFailure(dErrors.CodeMalformedToken)
		opErr = dErrors.New(dErrors.CodeMalformedToken, "invalid account_id claim")
		return nil, opErr
	}
	span.SetAttributes(
		tracer.String(tracer.AttrAccountID, accountID.String()),
		tracer.String(tracer.AttrJTI, claims.ID),
	)

	storeCtx, cancel := context.WithTimeout(ctx, s.cfg.StoreDeadline)
	defer cancel()

	record, err := s.accessTokens.FindByJTI(storeCtx, claims.ID)
	if err != nil {
		// A jti we never issued or already pruned is indistinguishable from a
		// revoked one; both are rejected the same way.
		if errors.Is(err, accesstoken.ErrNotFound) {
			s.incrementValidationFailure(dErrors.CodeTokenRevoked)
			span.SetAttributes(tracer.String(tracer.AttrRejectCode, string(dErrors.CodeTokenRevoked)))
			opErr = dErrors.New(dErrors.CodeTokenRevoked, "token has been revoked")
			return nil, opErr
		}
		s.authFailure(ctx, "access_token_lookup_failed", true, "jti", claims.ID, "error", err)
		s.incrementValidationFailure(dErrors.CodeStoreUnavailable)
		opErr = dErrors.Wrap(err, dErrors.CodeStoreUnavailable, "token store unavailable")
		return nil, opErr
	}
	if record.Revoked {
		s.incrementValidationFailure(dErrors.CodeTokenRevoked)
		span.SetAttributes(tracer.String(tracer.AttrRejectCode, string(dErrors.CodeTokenRevoked)))
		opErr = dErrors.New(dErrors.CodeTokenRevoked, "token has been revoked")
		return nil, opErr
	}

	currentVersion, err := s.securityVersions.Current(storeCtx, accountID)
	if err != nil {
		s.authFailure(ctx, "security_version_lookup_failed", true, "account_id", accountID.String(), "error", err)
		s.incrementValidationFailure(dErrors.CodeStoreUnavailable)
		opErr = dErrors.Wrap(err, dErrors.CodeStoreUnavailable, "security version store unavailable")
		return nil, opErr
	}
	if *claims.SecurityVersion != currentVersion {
		s.incrementValidationFailure(dErrors.CodeStaleSecurityVersion)
		span.SetAttributes(tracer.String(tracer.AttrRejectCode, string(dErrors.CodeStaleSecurityVersion)))
		opErr = dErrors.New(dErrors.CodeStaleSecurityVersion, "token predates a security event")
		return nil, opErr
	}

	return &models.Principal{
		AccountID:       accountID,
		JTI:             claims.ID,
		SecurityVersion: *claims.SecurityVersion,
	}, nil
}
