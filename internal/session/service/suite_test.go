package service

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"aegis/internal/session/models"
	"aegis/internal/session/service/mocks"
	"aegis/internal/session/token"
	id "aegis/pkg/domain"
)

type ServiceSuite struct {
	suite.Suite
	ctrl                 *gomock.Controller
	mockAccessTokens     *mocks.MockAccessTokenStore
	mockRefreshTokens    *mocks.MockRefreshTokenStore
	mockSecurityVersions *mocks.MockSecurityVersionStore
	mockAccounts         *mocks.MockAccountDirectory
	mockJWT              *mocks.MockTokenGenerator
	mockAuditPublisher   *mocks.MockAuditPublisher
	mockAttempts         *mocks.MockAttemptRecorder
	service              *Service
}

func (s *ServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockAccessTokens = mocks.NewMockAccessTokenStore(s.ctrl)
	s.mockRefreshTokens = mocks.NewMockRefreshTokenStore(s.ctrl)
	s.mockSecurityVersions = mocks.NewMockSecurityVersionStore(s.ctrl)
	s.mockAccounts = mocks.NewMockAccountDirectory(s.ctrl)
	s.mockJWT = mocks.NewMockTokenGenerator(s.ctrl)
	s.mockAuditPublisher = mocks.NewMockAuditPublisher(s.ctrl)
	s.mockAttempts = mocks.NewMockAttemptRecorder(s.ctrl)

	// Audit emission is best-effort and exercised on most paths; individual
	// tests assert the security-relevant calls explicitly.
	s.mockAuditPublisher.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &Config{
		RefreshTokenTTL: 14 * 24 * time.Hour,
		StoreDeadline:   2 * time.Second,
	}
	var err error
	s.service, err = New(
		s.mockAccessTokens,
		s.mockRefreshTokens,
		s.mockSecurityVersions,
		s.mockAccounts,
		s.mockJWT,
		cfg,
		WithLogger(logger),
		WithAuditPublisher(s.mockAuditPublisher),
		WithAttemptRecorder(s.mockAttempts),
	)
	s.Require().NoError(err)
}

func (s *ServiceSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

// Shared fixture builders.

func (s *ServiceSuite) newTestDevice() models.DeviceInfo {
	return models.DeviceInfo{
		DisplayName: "Chrome on macOS",
		Fingerprint: "fp-test-device",
	}
}

func (s *ServiceSuite) newTestClaims(accountID id.AccountID, jti string, version int64) *token.AccessTokenClaims {
	return &token.AccessTokenClaims{
		AccountID:       accountID.String(),
		SecurityVersion: &version,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(30 * time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
}

func (s *ServiceSuite) newTestRefreshRecord(accountID id.AccountID, hash string) *models.RefreshTokenRecord {
	return &models.RefreshTokenRecord{
		TokenHash: hash,
		AccountID: accountID,
		IssuedAt:  time.Now().Add(-time.Hour),
		ExpiresAt: time.Now().Add(13 * 24 * time.Hour),
		Device:    s.newTestDevice(),
		OriginIP:  "198.51.100.7",
	}
}

// expectPairIssuance sets up the mock calls issuePair makes on the happy path.
func (s *ServiceSuite) expectPairIssuance(accountID id.AccountID, version int64) (accessToken, jti, refreshToken string) {
	accessToken = "mock-access-token"
	jti = "mock-jti"
	refreshToken = "mock-refresh-token"

	s.mockSecurityVersions.EXPECT().Current(gomock.Any(), accountID).Return(version, nil)
	s.mockJWT.EXPECT().GenerateAccessToken(gomock.Any(), accountID, version).Return(accessToken, jti, nil)
	s.mockJWT.EXPECT().CreateRefreshToken().Return(refreshToken, nil)
	s.mockJWT.EXPECT().TokenTTL().Return(30 * time.Minute)
	s.mockAccessTokens.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
	s.mockRefreshTokens.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
	return
}
