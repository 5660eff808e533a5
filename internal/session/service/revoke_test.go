package service

import (
	"context"

	"go.uber.org/mock/gomock"

	"aegis/internal/session/models"
	"aegis/internal/session/store/accesstoken"
	"aegis/internal/session/store/refreshtoken"
	id "aegis/pkg/domain"
	dErrors "aegis/pkg/domain-errors"
	"aegis/pkg/secrets"
)

func (s *ServiceSuite) TestLogout_RevokesAccessTokenAndChain() {
	accountID := id.NewAccountID()
	raw := "raw-refresh-token"
	record := s.newTestRefreshRecord(accountID, secrets.Digest(raw))

	s.mockAccessTokens.EXPECT().RevokeByJTI(gomock.Any(), "jti-1").Return(nil)
	s.mockRefreshTokens.EXPECT().FindByHash(gomock.Any(), secrets.Digest(raw)).Return(record, nil)
	s.mockRefreshTokens.EXPECT().RevokeChain(gomock.Any(), accountID, record.Device.ChainKey()).Return(nil)

	err := s.service.Logout(context.Background(), &LogoutRequest{
		Principal:    models.Principal{AccountID: accountID, JTI: "jti-1"},
		RefreshToken: raw,
		IP:           "198.51.100.7",
	})
	s.Require().NoError(err)
}

func (s *ServiceSuite) TestLogout_WithoutRefreshToken() {
	accountID := id.NewAccountID()
	s.mockAccessTokens.EXPECT().RevokeByJTI(gomock.Any(), "jti-1").Return(nil)

	err := s.service.Logout(context.Background(), &LogoutRequest{
		Principal: models.Principal{AccountID: accountID, JTI: "jti-1"},
	})
	s.Require().NoError(err)
}

// Logout is idempotent: already-pruned records do not fail the operation.
func (s *ServiceSuite) TestLogout_Idempotent() {
	accountID := id.NewAccountID()
	s.mockAccessTokens.EXPECT().RevokeByJTI(gomock.Any(), "jti-1").Return(accesstoken.ErrNotFound)
	s.mockRefreshTokens.EXPECT().FindByHash(gomock.Any(), gomock.Any()).Return(nil, refreshtoken.ErrNotFound)

	err := s.service.Logout(context.Background(), &LogoutRequest{
		Principal:    models.Principal{AccountID: accountID, JTI: "jti-1"},
		RefreshToken: "already-gone",
	})
	s.Require().NoError(err)
}

// A refresh token belonging to another account is ignored, not revoked.
func (s *ServiceSuite) TestLogout_ForeignRefreshTokenIgnored() {
	accountID := id.NewAccountID()
	raw := "raw-refresh-token"
	foreign := s.newTestRefreshRecord(id.NewAccountID(), secrets.Digest(raw))

	s.mockAccessTokens.EXPECT().RevokeByJTI(gomock.Any(), "jti-1").Return(nil)
	s.mockRefreshTokens.EXPECT().FindByHash(gomock.Any(), secrets.Digest(raw)).Return(foreign, nil)

	err := s.service.Logout(context.Background(), &LogoutRequest{
		Principal:    models.Principal{AccountID: accountID, JTI: "jti-1"},
		RefreshToken: raw,
	})
	s.Require().NoError(err)
}

func (s *ServiceSuite) TestForceLogout() {
	accountID := id.NewAccountID()

	s.mockSecurityVersions.EXPECT().Bump(gomock.Any(), accountID).Return(int64(3), int64(2), nil)
	s.mockAccessTokens.EXPECT().RevokeByAccount(gomock.Any(), accountID).Return(4, nil)
	s.mockRefreshTokens.EXPECT().RevokeByAccount(gomock.Any(), accountID).Return(2, nil)

	s.Require().NoError(s.service.ForceLogout(context.Background(), accountID))
}

func (s *ServiceSuite) TestForceLogout_NilAccount() {
	err := s.service.ForceLogout(context.Background(), id.AccountID{})
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
}

func (s *ServiceSuite) TestBumpSecurityVersion() {
	accountID := id.NewAccountID()
	s.mockSecurityVersions.EXPECT().Bump(gomock.Any(), accountID).Return(int64(1), int64(0), nil)

	current, err := s.service.BumpSecurityVersion(context.Background(), accountID)
	s.Require().NoError(err)
	s.Equal(int64(1), current)
}
