package service

import (
	"context"
	"time"

	"go.uber.org/mock/gomock"

	"aegis/internal/session/models"
	id "aegis/pkg/domain"
)

func (s *ServiceSuite) TestListSessions() {
	accountID := id.NewAccountID()
	now := time.Now()

	// Two rotations on the laptop chain; only the newest represents the chain.
	oldLaptop := &models.RefreshTokenRecord{
		TokenHash: "hash-old", AccountID: accountID,
		IssuedAt: now.Add(-2 * time.Hour), ExpiresAt: now.Add(24 * time.Hour),
		Revoked: true,
		Device:  models.DeviceInfo{DisplayName: "Chrome on macOS", Fingerprint: "fp-laptop"},
	}
	newLaptop := &models.RefreshTokenRecord{
		TokenHash: "hash-new", AccountID: accountID,
		IssuedAt: now.Add(-time.Hour), ExpiresAt: now.Add(24 * time.Hour),
		Device:   models.DeviceInfo{DisplayName: "Chrome on macOS", Fingerprint: "fp-laptop"},
		OriginIP: "198.51.100.7",
	}
	phone := &models.RefreshTokenRecord{
		TokenHash: "hash-phone", AccountID: accountID,
		IssuedAt: now.Add(-30 * time.Minute), ExpiresAt: now.Add(24 * time.Hour),
		Device:   models.DeviceInfo{DisplayName: "Safari on iOS", Fingerprint: "fp-phone"},
	}
	liveAccess := &models.AccessTokenRecord{
		JTI: "jti-live", AccountID: accountID,
		IssuedAt: now.Add(-10 * time.Minute), ExpiresAt: now.Add(20 * time.Minute),
		Device: models.DeviceInfo{DisplayName: "Chrome on macOS", Fingerprint: "fp-laptop"},
	}
	expiredAccess := &models.AccessTokenRecord{
		JTI: "jti-expired", AccountID: accountID,
		IssuedAt: now.Add(-2 * time.Hour), ExpiresAt: now.Add(-time.Hour),
	}

	s.mockRefreshTokens.EXPECT().ListByAccount(gomock.Any(), accountID).
		Return([]*models.RefreshTokenRecord{oldLaptop, newLaptop, phone}, nil)
	s.mockAccessTokens.EXPECT().ListByAccount(gomock.Any(), accountID).
		Return([]*models.AccessTokenRecord{liveAccess, expiredAccess}, nil)

	summaries, err := s.service.ListSessions(context.Background(), accountID)
	s.Require().NoError(err)

	// Two chains plus one unexpired access token, newest first.
	s.Require().Len(summaries, 3)
	s.Equal("access", summaries[0].RecordKind)
	s.Equal("jti-live", summaries[0].JTI)

	chains := 0
	for _, summary := range summaries {
		if summary.RecordKind == "refresh" {
			chains++
			s.True(summary.RefreshAlive)
		}
	}
	s.Equal(2, chains)
}

func (s *ServiceSuite) TestListSessions_Empty() {
	accountID := id.NewAccountID()
	s.mockRefreshTokens.EXPECT().ListByAccount(gomock.Any(), accountID).Return(nil, nil)
	s.mockAccessTokens.EXPECT().ListByAccount(gomock.Any(), accountID).Return(nil, nil)

	summaries, err := s.service.ListSessions(context.Background(), accountID)
	s.Require().NoError(err)
	s.Empty(summaries)
}
