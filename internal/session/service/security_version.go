package service

import (
	"context"

	"aegis/internal/audit"
	id "aegis/pkg/domain"
	dErrors "aegis/pkg/domain-errors"
)

// BumpSecurityVersion advances the account's security version, invalidating
// every access token minted before the bump at its next validation. Tokens
// are not touched; the stale-version check does the work lazily.
func (s *Service) BumpSecurityVersion(ctx context.Context, accountID id.AccountID) (int64, error) {
	if accountID.IsNil() {
		return 0, dErrors.New(dErrors.CodeValidation, "account ID is required")
	}
	current, previous, err := s.securityVersions.Bump(ctx, accountID)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to bump security version")
	}
	s.incrementSecurityVersionBump()
	s.logger.InfoContext(ctx, string(audit.EventSecurityVersionBump),
		"account_id", accountID.String(),
		"previous", previous,
		"current", current,
	)
	s.logAudit(ctx, audit.EventSecurityVersionBump, accountID.String(), "", "")
	return current, nil
}
