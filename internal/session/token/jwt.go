package token

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	id "aegis/pkg/domain"
	dErrors "aegis/pkg/domain-errors"
	"aegis/pkg/platform/middleware/requesttime"
)

// AccessTokenClaims represents the JWT claims for our access tokens.
// SecurityVersion is a pointer so a token minted without the claim is
// distinguishable from one minted at version 0; tokens lacking the claim are
// rejected as malformed (no legacy migration shim).
type AccessTokenClaims struct {
	AccountID       string `json:"account_id"`
	SecurityVersion *int64 `json:"security_version,omitempty"`
	jwt.RegisteredClaims
}

// Service handles JWT creation and cryptographic validation. Server-side
// revocation and security-version checks live in the session service; this
// layer only answers "is the token ours, well-formed, and unexpired".
type Service struct {
	signingKey []byte
	issuer     string
	audience   string
	tokenTTL   time.Duration
}

func NewService(signingKey, issuer, audience string, tokenTTL time.Duration) *Service {
	return &Service{
		signingKey: []byte(signingKey),
		issuer:     issuer,
		audience:   audience,
		tokenTTL:   tokenTTL,
	}
}

// TokenTTL exposes the configured access-token lifetime.
func (s *Service) TokenTTL() time.Duration {
	return s.tokenTTL
}

// GenerateAccessToken mints a signed access token stamped with the account's
// current security version. Returns the signed token and its JTI.
func (s *Service) GenerateAccessToken(ctx context.Context, accountID id.AccountID, securityVersion int64) (string, string, error) {
	if accountID.IsNil() {
		return "", "", dErrors.New(dErrors.CodeInvalidInput, "account ID cannot be empty")
	}

	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", "", err
	}
	jti := hex.EncodeToString(b)
	now := requesttime.Now(ctx)

	version := securityVersion
	newToken := jwt.NewWithClaims(jwt.SigningMethodHS256, AccessTokenClaims{
		AccountID:       accountID.String(),
		SecurityVersion: &version,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   accountID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    s.issuer,
			Audience:  []string{s.audience},
			ID:        jti,
		},
	})

	signedToken, err := newToken.SignedString(s.signingKey)
	if err != nil {
		return "", "", err
	}
	return signedToken, jti, nil
}

// ValidateToken verifies signature, structure, and expiry, then checks the
// claims this core requires (jti, account_id, security_version).
// Error codes distinguish the validator's first three rejection points:
// malformed_token for structural/signature failures and missing claims,
// expired_token for a valid-but-expired token.
func (s *Service) ValidateToken(tokenString string) (*AccessTokenClaims, error) {
	if tokenString == "" {
		return nil, dErrors.New(dErrors.CodeMalformedToken, "empty token")
	}

	parsed, err := jwt.ParseWithClaims(tokenString, &AccessTokenClaims{}, func(token *jwt.Token) (any, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenUnverifiable
		}
		return s.signingKey, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, dErrors.New(dErrors.CodeExpiredToken, "token expired")
		}
		return nil, dErrors.New(dErrors.CodeMalformedToken, "invalid token")
	}

	if !parsed.Valid {
		return nil, dErrors.New(dErrors.CodeMalformedToken, "invalid token")
	}

	claims, ok := parsed.Claims.(*AccessTokenClaims)
	if !ok {
		return nil, dErrors.New(dErrors.CodeMalformedToken, "invalid token claims")
	}

	if claims.ID == "" {
		return nil, dErrors.New(dErrors.CodeMalformedToken, "missing jti claim")
	}
	if claims.AccountID == "" {
		return nil, dErrors.New(dErrors.CodeMalformedToken, "missing account_id claim")
	}
	if claims.SecurityVersion == nil {
		return nil, dErrors.New(dErrors.CodeMalformedToken, "missing security_version claim")
	}
	if claims.Issuer != s.issuer {
		return nil, dErrors.New(dErrors.CodeMalformedToken, "invalid token issuer")
	}

	return claims, nil
}

// CreateRefreshToken returns a fresh opaque refresh-token value. Only its
// one-way digest is ever persisted.
func (s *Service) CreateRefreshToken() (string, error) {
	randomBytes := make([]byte, 32)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", fmt.Errorf("failed to generate refresh token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(randomBytes), nil
}
