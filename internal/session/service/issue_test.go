package service

import (
	"context"

	"go.uber.org/mock/gomock"

	"aegis/internal/session/models"
	"aegis/internal/session/store/account"
	id "aegis/pkg/domain"
	dErrors "aegis/pkg/domain-errors"
	"aegis/pkg/secrets"
)

const testPassword = "correct-horse-battery"

func (s *ServiceSuite) newTestAccount(active bool) *models.Account {
	hash, err := secrets.Hash(testPassword)
	s.Require().NoError(err)
	return &models.Account{
		ID:           id.NewAccountID(),
		Email:        "user@example.com",
		PasswordHash: hash,
		Active:       active,
	}
}

func (s *ServiceSuite) TestLogin_Success() {
	acct := s.newTestAccount(true)
	s.mockAccounts.EXPECT().FindByEmail(gomock.Any(), acct.Email).Return(acct, nil)
	accessToken, _, refreshToken := s.expectPairIssuance(acct.ID, 0)

	pair, err := s.service.Login(context.Background(), &LoginRequest{
		Email:    acct.Email,
		Password: testPassword,
		Device:   s.newTestDevice(),
		IP:       "198.51.100.7",
	})
	s.Require().NoError(err)
	s.Equal(accessToken, pair.AccessToken)
	s.Equal(refreshToken, pair.RefreshToken)
	s.True(pair.RefreshExpiresAt.After(pair.AccessExpiresAt))
}

func (s *ServiceSuite) TestLogin_StampsCurrentSecurityVersion() {
	acct := s.newTestAccount(true)
	s.mockAccounts.EXPECT().FindByEmail(gomock.Any(), acct.Email).Return(acct, nil)
	// The account already survived a security event; new tokens carry the
	// bumped version.
	s.expectPairIssuance(acct.ID, 3)

	_, err := s.service.Login(context.Background(), &LoginRequest{
		Email:    acct.Email,
		Password: testPassword,
		Device:   s.newTestDevice(),
	})
	s.Require().NoError(err)
}

func (s *ServiceSuite) TestLogin_UnknownAccount() {
	s.mockAccounts.EXPECT().FindByEmail(gomock.Any(), "nobody@example.com").Return(nil, account.ErrNotFound)
	s.mockAttempts.EXPECT().
		RecordAttempt(gomock.Any(), "203.0.113.5", AttemptCredentialStuffing, "/auth/login", "").
		Return(nil)

	_, err := s.service.Login(context.Background(), &LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
		IP:       "203.0.113.5",
	})
	s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func (s *ServiceSuite) TestLogin_WrongPassword() {
	acct := s.newTestAccount(true)
	s.mockAccounts.EXPECT().FindByEmail(gomock.Any(), acct.Email).Return(acct, nil)
	s.mockAttempts.EXPECT().
		RecordAttempt(gomock.Any(), "203.0.113.5", AttemptCredentialStuffing, "/auth/login", acct.ID.String()).
		Return(nil)

	_, err := s.service.Login(context.Background(), &LoginRequest{
		Email:    acct.Email,
		Password: "wrong-password",
		IP:       "203.0.113.5",
	})
	s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func (s *ServiceSuite) TestLogin_LockedAccount() {
	acct := s.newTestAccount(false)
	s.mockAccounts.EXPECT().FindByEmail(gomock.Any(), acct.Email).Return(acct, nil)

	_, err := s.service.Login(context.Background(), &LoginRequest{
		Email:    acct.Email,
		Password: testPassword,
	})
	s.True(dErrors.HasCode(err, dErrors.CodeAccountLocked))
}

func (s *ServiceSuite) TestLogin_MissingCredentials() {
	_, err := s.service.Login(context.Background(), &LoginRequest{Email: "user@example.com"})
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
}
