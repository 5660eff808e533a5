package service

import (
	"context"
	"time"

	"aegis/internal/audit"
	"aegis/internal/session/models"
	"aegis/internal/session/token"
	id "aegis/pkg/domain"
)

// AccessTokenStore defines the persistence interface for access token records.
// Error Contract: All Find methods return store.ErrNotFound when the entity doesn't exist.
type AccessTokenStore interface {
	Create(ctx context.Context, record *models.AccessTokenRecord) error
	FindByJTI(ctx context.Context, jti string) (*models.AccessTokenRecord, error)
	RevokeByJTI(ctx context.Context, jti string) error
	RevokeByAccount(ctx context.Context, accountID id.AccountID) (int, error)
	ListByAccount(ctx context.Context, accountID id.AccountID) ([]*models.AccessTokenRecord, error)
}

// RefreshTokenStore defines the persistence interface for refresh token records.
// Records are keyed by token digest; the raw value never reaches the store.
// Error Contract: All Find methods return store.ErrNotFound when the entity doesn't exist.
type RefreshTokenStore interface {
	Create(ctx context.Context, record *models.RefreshTokenRecord) error
	FindByHash(ctx context.Context, tokenHash string) (*models.RefreshTokenRecord, error)
	Consume(ctx context.Context, tokenHash string, now time.Time) (*models.RefreshTokenRecord, error)
	RevokeChain(ctx context.Context, accountID id.AccountID, chain string) error
	RevokeByAccount(ctx context.Context, accountID id.AccountID) (int, error)
	ListByAccount(ctx context.Context, accountID id.AccountID) ([]*models.RefreshTokenRecord, error)
}

// SecurityVersionStore holds the per-account monotonic security version.
type SecurityVersionStore interface {
	Current(ctx context.Context, accountID id.AccountID) (int64, error)
	Bump(ctx context.Context, accountID id.AccountID) (current int64, previous int64, err error)
}

// AccountDirectory is the read-side view of the account base.
// Error Contract: Find methods return store.ErrNotFound when the entity doesn't exist.
type AccountDirectory interface {
	FindByID(ctx context.Context, accountID id.AccountID) (*models.Account, error)
	FindByEmail(ctx context.Context, email string) (*models.Account, error)
}

type TokenGenerator interface {
	GenerateAccessToken(ctx context.Context, accountID id.AccountID, securityVersion int64) (string, string, error)
	ValidateToken(tokenString string) (*token.AccessTokenClaims, error)
	CreateRefreshToken() (string, error)
	TokenTTL() time.Duration
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// AttemptRecorder feeds authentication failures into the IP reputation layer.
// Recording is best-effort; a recorder failure never fails the caller's request.
type AttemptRecorder interface {
	RecordAttempt(ctx context.Context, ip, kind, endpoint string, accountID string) error
}
