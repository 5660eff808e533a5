package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/mock/gomock"

	"aegis/internal/session/models"
	"aegis/internal/session/store/refreshtoken"
	id "aegis/pkg/domain"
	dErrors "aegis/pkg/domain-errors"
	"aegis/pkg/secrets"
)

// newRecordOnChain matches a *models.RefreshTokenRecord created on the given
// device chain.
type chainMatcher struct {
	chain string
}

func newRecordOnChain(chain string) gomock.Matcher {
	return chainMatcher{chain: chain}
}

func (m chainMatcher) Matches(x any) bool {
	record, ok := x.(*models.RefreshTokenRecord)
	return ok && record.Device.ChainKey() == m.chain
}

func (m chainMatcher) String() string {
	return fmt.Sprintf("refresh record on chain %q", m.chain)
}

func (s *ServiceSuite) TestRefresh_Success() {
	raw := "raw-refresh-token"
	record := s.newTestRefreshRecord(id.NewAccountID(), secrets.Digest(raw))
	now := time.Now()
	record.Revoked = true
	record.ConsumedAt = &now

	s.mockRefreshTokens.EXPECT().Consume(gomock.Any(), secrets.Digest(raw), gomock.Any()).Return(record, nil)
	accessToken, _, refreshToken := s.expectPairIssuance(record.AccountID, 0)

	pair, err := s.service.Refresh(context.Background(), &RefreshRequest{
		RefreshToken: raw,
		Device:       s.newTestDevice(),
		IP:           "198.51.100.7",
	})
	s.Require().NoError(err)
	s.Equal(accessToken, pair.AccessToken)
	s.Equal(refreshToken, pair.RefreshToken)
	s.NotEqual(raw, pair.RefreshToken)
}

// Rotation bounds its store round-trips with the configured deadline, the
// same way validation does; an unresponsive store cannot hold a rotation
// open past it.
func (s *ServiceSuite) TestRefresh_BoundsStoreCalls() {
	raw := "raw-refresh-token"
	record := s.newTestRefreshRecord(id.NewAccountID(), secrets.Digest(raw))

	s.mockRefreshTokens.EXPECT().Consume(gomock.Any(), secrets.Digest(raw), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ string, _ time.Time) (*models.RefreshTokenRecord, error) {
			_, ok := ctx.Deadline()
			s.True(ok, "consume context should carry a deadline")
			return record, nil
		})
	s.mockSecurityVersions.EXPECT().Current(gomock.Any(), record.AccountID).
		DoAndReturn(func(ctx context.Context, _ id.AccountID) (int64, error) {
			_, ok := ctx.Deadline()
			s.True(ok, "security version lookup should carry a deadline")
			return 0, nil
		})
	s.mockJWT.EXPECT().GenerateAccessToken(gomock.Any(), record.AccountID, int64(0)).Return("t", "j", nil)
	s.mockJWT.EXPECT().CreateRefreshToken().Return("new-raw", nil)
	s.mockJWT.EXPECT().TokenTTL().Return(30 * time.Minute)
	s.mockAccessTokens.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
	s.mockRefreshTokens.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

	_, err := s.service.Refresh(context.Background(), &RefreshRequest{RefreshToken: raw})
	s.Require().NoError(err)
}

// Replaying a consumed refresh token is treated as theft: the account's
// security version is bumped and every outstanding token is revoked, so both
// the attacker and the legitimate holder lose access.
func (s *ServiceSuite) TestRefresh_ReuseTriggersAccountLockout() {
	raw := "raw-refresh-token"
	record := s.newTestRefreshRecord(id.NewAccountID(), secrets.Digest(raw))
	consumedAt := time.Now().Add(-time.Minute)
	record.Revoked = true
	record.ConsumedAt = &consumedAt

	s.mockRefreshTokens.EXPECT().Consume(gomock.Any(), secrets.Digest(raw), gomock.Any()).
		Return(record, dErrors.New(dErrors.CodeRefreshReuseDetected, "refresh token already used"))
	s.mockAttempts.EXPECT().
		RecordAttempt(gomock.Any(), "203.0.113.5", AttemptInvalidTokenReuse, "/auth/refresh", record.AccountID.String()).
		Return(nil)
	s.mockSecurityVersions.EXPECT().Bump(gomock.Any(), record.AccountID).Return(int64(1), int64(0), nil)
	s.mockAccessTokens.EXPECT().RevokeByAccount(gomock.Any(), record.AccountID).Return(2, nil)
	s.mockRefreshTokens.EXPECT().RevokeByAccount(gomock.Any(), record.AccountID).Return(1, nil)

	_, err := s.service.Refresh(context.Background(), &RefreshRequest{
		RefreshToken: raw,
		IP:           "203.0.113.5",
	})
	s.True(dErrors.HasCode(err, dErrors.CodeRefreshReuseDetected))
}

// A reuse response must survive a partial failure: if the version bump errors
// the revocations still run.
func (s *ServiceSuite) TestRefresh_ReuseLockoutSurvivesBumpFailure() {
	raw := "raw-refresh-token"
	record := s.newTestRefreshRecord(id.NewAccountID(), secrets.Digest(raw))
	record.Revoked = true

	s.mockRefreshTokens.EXPECT().Consume(gomock.Any(), secrets.Digest(raw), gomock.Any()).
		Return(record, dErrors.New(dErrors.CodeRefreshReuseDetected, "refresh token already used"))
	s.mockAttempts.EXPECT().RecordAttempt(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	s.mockSecurityVersions.EXPECT().Bump(gomock.Any(), record.AccountID).
		Return(int64(0), int64(0), dErrors.New(dErrors.CodeStoreUnavailable, "store timeout"))
	s.mockAccessTokens.EXPECT().RevokeByAccount(gomock.Any(), record.AccountID).Return(0, nil)
	s.mockRefreshTokens.EXPECT().RevokeByAccount(gomock.Any(), record.AccountID).Return(0, nil)

	_, err := s.service.Refresh(context.Background(), &RefreshRequest{RefreshToken: raw, IP: "203.0.113.5"})
	s.True(dErrors.HasCode(err, dErrors.CodeRefreshReuseDetected))
}

func (s *ServiceSuite) TestRefresh_ExpiredToken() {
	raw := "raw-refresh-token"
	record := s.newTestRefreshRecord(id.NewAccountID(), secrets.Digest(raw))
	record.ExpiresAt = time.Now().Add(-time.Hour)

	s.mockRefreshTokens.EXPECT().Consume(gomock.Any(), secrets.Digest(raw), gomock.Any()).
		Return(record, dErrors.New(dErrors.CodeExpiredRefreshToken, "refresh token expired"))

	_, err := s.service.Refresh(context.Background(), &RefreshRequest{RefreshToken: raw})
	s.True(dErrors.HasCode(err, dErrors.CodeExpiredRefreshToken))
}

func (s *ServiceSuite) TestRefresh_UnknownToken() {
	s.mockRefreshTokens.EXPECT().Consume(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, refreshtoken.ErrNotFound)

	_, err := s.service.Refresh(context.Background(), &RefreshRequest{RefreshToken: "never-issued"})
	s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func (s *ServiceSuite) TestRefresh_StoreUnavailable() {
	s.mockRefreshTokens.EXPECT().Consume(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, dErrors.New(dErrors.CodeStoreUnavailable, "store timeout"))

	_, err := s.service.Refresh(context.Background(), &RefreshRequest{RefreshToken: "raw"})
	s.True(dErrors.HasCode(err, dErrors.CodeStoreUnavailable))
}

func (s *ServiceSuite) TestRefresh_MissingToken() {
	_, err := s.service.Refresh(context.Background(), &RefreshRequest{})
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
}

// Rotation stays on the consumed record's device chain even when the caller
// presents different device metadata.
func (s *ServiceSuite) TestRefresh_KeepsOriginalChain() {
	raw := "raw-refresh-token"
	record := s.newTestRefreshRecord(id.NewAccountID(), secrets.Digest(raw))

	s.mockRefreshTokens.EXPECT().Consume(gomock.Any(), secrets.Digest(raw), gomock.Any()).Return(record, nil)
	s.mockSecurityVersions.EXPECT().Current(gomock.Any(), record.AccountID).Return(int64(0), nil)
	s.mockJWT.EXPECT().GenerateAccessToken(gomock.Any(), record.AccountID, int64(0)).Return("t", "j", nil)
	s.mockJWT.EXPECT().CreateRefreshToken().Return("new-raw", nil)
	s.mockJWT.EXPECT().TokenTTL().Return(30 * time.Minute)
	s.mockAccessTokens.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
	s.mockRefreshTokens.EXPECT().Create(gomock.Any(), newRecordOnChain(record.Device.ChainKey())).Return(nil)

	_, err := s.service.Refresh(context.Background(), &RefreshRequest{
		RefreshToken: raw,
		Device:       models.DeviceInfo{DisplayName: "curl", Fingerprint: "fp-other-device"},
		IP:           "198.51.100.9",
	})
	s.Require().NoError(err)
}
