package service

import (
	"context"

	"go.uber.org/mock/gomock"

	"aegis/internal/session/models"
	"aegis/internal/session/store/accesstoken"
	id "aegis/pkg/domain"
	dErrors "aegis/pkg/domain-errors"
)

func (s *ServiceSuite) TestValidate_Success() {
	accountID := id.NewAccountID()
	claims := s.newTestClaims(accountID, "jti-1", 2)

	s.mockJWT.EXPECT().ValidateToken("raw-token").Return(claims, nil)
	s.mockAccessTokens.EXPECT().FindByJTI(gomock.Any(), "jti-1").
		Return(&models.AccessTokenRecord{JTI: "jti-1", AccountID: accountID}, nil)
	s.mockSecurityVersions.EXPECT().Current(gomock.Any(), accountID).Return(int64(2), nil)

	principal, err := s.service.Validate(context.Background(), "raw-token")
	s.Require().NoError(err)
	s.Equal(accountID, principal.AccountID)
	s.Equal("jti-1", principal.JTI)
	s.Equal(int64(2), principal.SecurityVersion)
}

func (s *ServiceSuite) TestValidate_MalformedToken() {
	s.mockJWT.EXPECT().ValidateToken("garbage").
		Return(nil, dErrors.New(dErrors.CodeMalformedToken, "invalid token"))

	_, err := s.service.Validate(context.Background(), "garbage")
	s.True(dErrors.HasCode(err, dErrors.CodeMalformedToken))
}

func (s *ServiceSuite) TestValidate_ExpiredToken() {
	s.mockJWT.EXPECT().ValidateToken("stale").
		Return(nil, dErrors.New(dErrors.CodeExpiredToken, "token expired"))

	_, err := s.service.Validate(context.Background(), "stale")
	s.True(dErrors.HasCode(err, dErrors.CodeExpiredToken))
}

func (s *ServiceSuite) TestValidate_UnknownJTIReportedAsRevoked() {
	accountID := id.NewAccountID()
	claims := s.newTestClaims(accountID, "jti-gone", 0)

	s.mockJWT.EXPECT().ValidateToken("raw-token").Return(claims, nil)
	s.mockAccessTokens.EXPECT().FindByJTI(gomock.Any(), "jti-gone").Return(nil, accesstoken.ErrNotFound)

	_, err := s.service.Validate(context.Background(), "raw-token")
	s.True(dErrors.HasCode(err, dErrors.CodeTokenRevoked))
}

func (s *ServiceSuite) TestValidate_RevokedToken() {
	accountID := id.NewAccountID()
	claims := s.newTestClaims(accountID, "jti-1", 0)

	s.mockJWT.EXPECT().ValidateToken("raw-token").Return(claims, nil)
	s.mockAccessTokens.EXPECT().FindByJTI(gomock.Any(), "jti-1").
		Return(&models.AccessTokenRecord{JTI: "jti-1", AccountID: accountID, Revoked: true}, nil)

	_, err := s.service.Validate(context.Background(), "raw-token")
	s.True(dErrors.HasCode(err, dErrors.CodeTokenRevoked))
}

func (s *ServiceSuite) TestValidate_StaleSecurityVersion() {
	accountID := id.NewAccountID()
	claims := s.newTestClaims(accountID, "jti-1", 1)

	s.mockJWT.EXPECT().ValidateToken("raw-token").Return(claims, nil)
	s.mockAccessTokens.EXPECT().FindByJTI(gomock.Any(), "jti-1").
		Return(&models.AccessTokenRecord{JTI: "jti-1", AccountID: accountID}, nil)
	s.mockSecurityVersions.EXPECT().Current(gomock.Any(), accountID).Return(int64(2), nil)

	_, err := s.service.Validate(context.Background(), "raw-token")
	s.True(dErrors.HasCode(err, dErrors.CodeStaleSecurityVersion))
}

func (s *ServiceSuite) TestValidate_StoreUnavailableFailsClosed() {
	accountID := id.NewAccountID()
	claims := s.newTestClaims(accountID, "jti-1", 0)

	s.mockJWT.EXPECT().ValidateToken("raw-token").Return(claims, nil)
	s.mockAccessTokens.EXPECT().FindByJTI(gomock.Any(), "jti-1").
		Return(nil, dErrors.New(dErrors.CodeStoreUnavailable, "store timeout"))

	_, err := s.service.Validate(context.Background(), "raw-token")
	s.True(dErrors.HasCode(err, dErrors.CodeStoreUnavailable))
}

func (s *ServiceSuite) TestValidate_VersionStoreUnavailableFailsClosed() {
	accountID := id.NewAccountID()
	claims := s.newTestClaims(accountID, "jti-1", 0)

	s.mockJWT.EXPECT().ValidateToken("raw-token").Return(claims, nil)
	s.mockAccessTokens.EXPECT().FindByJTI(gomock.Any(), "jti-1").
		Return(&models.AccessTokenRecord{JTI: "jti-1", AccountID: accountID}, nil)
	s.mockSecurityVersions.EXPECT().Current(gomock.Any(), accountID).
		Return(int64(0), dErrors.New(dErrors.CodeStoreUnavailable, "store timeout"))

	_, err := s.service.Validate(context.Background(), "raw-token")
	s.True(dErrors.HasCode(err, dErrors.CodeStoreUnavailable))
}

// Validation never mutates records; the mock setup above proves it by
// accepting only read calls. This test pins the same property for a token
// validated twice in a row.
func (s *ServiceSuite) TestValidate_ReadOnlyAndRepeatable() {
	accountID := id.NewAccountID()
	claims := s.newTestClaims(accountID, "jti-1", 0)

	s.mockJWT.EXPECT().ValidateToken("raw-token").Return(claims, nil).Times(2)
	s.mockAccessTokens.EXPECT().FindByJTI(gomock.Any(), "jti-1").
		Return(&models.AccessTokenRecord{JTI: "jti-1", AccountID: accountID}, nil).Times(2)
	s.mockSecurityVersions.EXPECT().Current(gomock.Any(), accountID).Return(int64(0), nil).Times(2)

	for range 2 {
		principal, err := s.service.Validate(context.Background(), "raw-token")
		s.Require().NoError(err)
		s.Equal(accountID, principal.AccountID)
	}
}
