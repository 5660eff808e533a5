package models

import (
	"time"

	id "aegis/pkg/domain"
	dErrors "aegis/pkg/domain-errors"
)

// This file contains pure domain models for the session-security core:
// entities that should not depend on transport or HTTP-specific concerns.

// DeviceInfo describes the device a token pair was issued to. The fingerprint
// keys the refresh-token chain; the display name is for session listings.
type DeviceInfo struct {
	DisplayName string // e.g. "Chrome on macOS"
	Fingerprint string // SHA-256(browser|version|os|platform), hex
}

// ChainKey identifies the refresh-token chain this device belongs to.
// Devices without a fingerprint share the "unknown" chain.
func (d DeviceInfo) ChainKey() string {
	if d.Fingerprint == "" {
		return "unknown"
	}
	return d.Fingerprint
}

// AccessTokenRecord is the server-side row backing one issued access token.
// Lifecycle: created at issuance, mutated only to flip Revoked, pruned after
// expiry. Indexed by JTI (validation point lookup) and AccountID (bulk ops).
type AccessTokenRecord struct {
	JTI       string
	AccountID id.AccountID
	IssuedAt  time.Time
	ExpiresAt time.Time
	Revoked   bool
	Device    DeviceInfo
	OriginIP  string
}

// IsExpired returns true if the record's token has expired.
func (a *AccessTokenRecord) IsExpired(now time.Time) bool {
	return now.After(a.ExpiresAt)
}

// IsActive returns true if the record backs a currently honorable token.
func (a *AccessTokenRecord) IsActive(now time.Time) bool {
	return !a.Revoked && !a.IsExpired(now)
}

// Revoke flips the revoked flag. Returns false if already revoked.
func (a *AccessTokenRecord) Revoke() bool {
	if a.Revoked {
		return false
	}
	a.Revoked = true
	return true
}

// RefreshTokenRecord is the server-side row backing one refresh token.
// The raw token value is never stored; TokenHash is a one-way SHA-256 digest,
// so possession of the row cannot be used to forge validity.
// Invariants:
//   - Single-use: consuming marks Revoked and produces exactly one successor
//     (rotation) or zero (logout)
//   - At most one unconsumed record per (AccountID, chain) at any time
//   - Replay of a consumed token indicates potential token theft
type RefreshTokenRecord struct {
	TokenHash  string
	AccountID  id.AccountID
	IssuedAt   time.Time
	ExpiresAt  time.Time
	Revoked    bool
	ConsumedAt *time.Time
	Device     DeviceInfo
	OriginIP   string
}

// IsExpired returns true if the refresh token has expired.
func (r *RefreshTokenRecord) IsExpired(now time.Time) bool {
	return now.After(r.ExpiresAt)
}

// IsValid returns true if the refresh token can still be consumed.
func (r *RefreshTokenRecord) IsValid(now time.Time) bool {
	return !r.Revoked && !r.IsExpired(now)
}

// Consume marks the record consumed for rotation tracking.
// Returns false if the record was already consumed or revoked.
func (r *RefreshTokenRecord) Consume(at time.Time) bool {
	if r.Revoked {
		return false
	}
	r.Revoked = true
	if r.ConsumedAt == nil || at.After(*r.ConsumedAt) {
		r.ConsumedAt = &at
	}
	return true
}

// ValidateForConsume checks if the refresh token can be consumed.
// The revoked flag is checked before expiry: replaying a consumed token is a
// theft signal no matter how stale the token is, and expiry must not mask it.
func (r *RefreshTokenRecord) ValidateForConsume(now time.Time) error {
	if r.Revoked {
		return dErrors.New(dErrors.CodeRefreshReuseDetected, "refresh token already used")
	}
	if r.IsExpired(now) {
		return dErrors.New(dErrors.CodeExpiredRefreshToken, "refresh token expired")
	}
	return nil
}

// Principal is the authenticated identity a successful validation yields.
type Principal struct {
	AccountID       id.AccountID
	JTI             string
	SecurityVersion int64
}

// TokenPair is the result of issuance or rotation. RefreshToken holds the raw
// value; it exists only in this in-flight result, never at rest.
type TokenPair struct {
	AccessToken      string
	AccessExpiresAt  time.Time
	RefreshToken     string
	RefreshExpiresAt time.Time
}

// SessionSummary is the admin-facing view of one refresh chain and its
// latest access token.
type SessionSummary struct {
	AccountID    id.AccountID `json:"account_id"`
	Device       string       `json:"device"`
	OriginIP     string       `json:"origin_ip"`
	IssuedAt     time.Time    `json:"issued_at"`
	ExpiresAt    time.Time    `json:"expires_at"`
	Revoked      bool         `json:"revoked"`
	RecordKind   string       `json:"kind"` // "access" or "refresh"
	JTI          string       `json:"jti,omitempty"`
	RefreshAlive bool         `json:"refresh_alive,omitempty"`
}

// NewAccessTokenRecord constructs an AccessTokenRecord and enforces basic invariants.
func NewAccessTokenRecord(jti string, accountID id.AccountID, issuedAt, expiresAt time.Time, device DeviceInfo, originIP string) (*AccessTokenRecord, error) {
	if jti == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "jti cannot be empty")
	}
	if accountID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "account ID cannot be empty")
	}
	if expiresAt.Before(issuedAt) {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "access token expiry must be after issuance")
	}
	return &AccessTokenRecord{
		JTI:       jti,
		AccountID: accountID,
		IssuedAt:  issuedAt,
		ExpiresAt: expiresAt,
		Device:    device,
		OriginIP:  originIP,
	}, nil
}

// NewRefreshTokenRecord constructs a RefreshTokenRecord with invariant checks.
// tokenHash must be the digest of the raw token, never the raw token itself.
func NewRefreshTokenRecord(tokenHash string, accountID id.AccountID, issuedAt, expiresAt time.Time, device DeviceInfo, originIP string) (*RefreshTokenRecord, error) {
	if tokenHash == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "refresh token hash cannot be empty")
	}
	if accountID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "account ID cannot be empty")
	}
	if expiresAt.Before(issuedAt) {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "refresh token expiry must be after issuance")
	}
	return &RefreshTokenRecord{
		TokenHash: tokenHash,
		AccountID: accountID,
		IssuedAt:  issuedAt,
		ExpiresAt: expiresAt,
		Device:    device,
		OriginIP:  originIP,
	}, nil
}
