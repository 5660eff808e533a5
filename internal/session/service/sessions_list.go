package service

import (
	"context"
	"sort"

	"aegis/internal/session/models"
	id "aegis/pkg/domain"
	dErrors "aegis/pkg/domain-errors"
	"aegis/pkg/platform/middleware/requesttime"
)

// ListSessions returns the admin view of an account's outstanding records:
// one entry per refresh chain plus every unexpired access token, newest first.
func (s *Service) ListSessions(ctx context.Context, accountID id.AccountID) ([]models.SessionSummary, error) {
	if accountID.IsNil() {
		return nil, dErrors.New(dErrors.CodeValidation, "account ID is required")
	}
	now := requesttime.Now(ctx)

	refreshRecords, err := s.refreshTokens.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list refresh tokens")
	}
	accessRecords, err := s.accessTokens.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list access tokens")
	}

	summaries := make([]models.SessionSummary, 0, len(refreshRecords)+len(accessRecords))

	// One entry per chain, represented by its newest record.
	newestPerChain := make(map[string]*models.RefreshTokenRecord)
	for _, record := range refreshRecords {
		chain := record.Device.ChainKey()
		if best, ok := newestPerChain[chain]; !ok || record.IssuedAt.After(best.IssuedAt) {
			newestPerChain[chain] = record
		}
	}
	for _, record := range newestPerChain {
		summaries = append(summaries, models.SessionSummary{
			AccountID:    record.AccountID,
			Device:       record.Device.DisplayName,
			OriginIP:     record.OriginIP,
			IssuedAt:     record.IssuedAt,
			ExpiresAt:    record.ExpiresAt,
			Revoked:      record.Revoked,
			RecordKind:   "refresh",
			RefreshAlive: record.IsValid(now),
		})
	}

	for _, record := range accessRecords {
		if record.IsExpired(now) {
			continue
		}
		summaries = append(summaries, models.SessionSummary{
			AccountID:  record.AccountID,
			Device:     record.Device.DisplayName,
			OriginIP:   record.OriginIP,
			IssuedAt:   record.IssuedAt,
			ExpiresAt:  record.ExpiresAt,
			Revoked:    record.Revoked,
			RecordKind: "access",
			JTI:        record.JTI,
		})
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].IssuedAt.After(summaries[j].IssuedAt)
	})
	return summaries, nil
}
