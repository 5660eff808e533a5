package models

import (
	"time"
)

// AttemptKind classifies why an attempt looked hostile.
type AttemptKind string

const (
	KindCredentialStuffing AttemptKind = "credential_stuffing"
	KindInvalidTokenReuse  AttemptKind = "invalid_token_reuse"
	KindRateViolation      AttemptKind = "rate_violation"
)

// BlockKind distinguishes temporary blocks from permanent ones.
type BlockKind string

const (
	BlockTemporary BlockKind = "temporary"
	BlockPermanent BlockKind = "permanent"
)

// AttackAttemptRecord is one append-only ledger row: a failed request that
// carried an abuse signal. AccountID is empty when the attempt never resolved
// to an account.
type AttackAttemptRecord struct {
	IP              string      `json:"ip"`
	Timestamp       time.Time   `json:"timestamp"`
	Kind            AttemptKind `json:"kind"`
	Endpoint        string      `json:"endpoint"`
	AccountID       string      `json:"account_id,omitempty"`
	ResultedInBlock bool        `json:"resulted_in_block"`
}

// IpBlockEntry is the current verdict on one source IP. ExpiresAt is nil if
// and only if the block is permanent.
type IpBlockEntry struct {
	IP             string     `json:"ip"`
	Reason         string     `json:"reason,omitempty"`
	Kind           BlockKind  `json:"kind"`
	BlockedAt      time.Time  `json:"blocked_at"`
	ExpiresAt      *time.Time `json:"expires_at,omitempty"`
	ViolationCount int        `json:"violation_count"`
}

// IsPermanent reports whether the block never expires.
func (e *IpBlockEntry) IsPermanent() bool {
	return e.Kind == BlockPermanent
}

// IsActive reports whether the block still applies at the given instant.
func (e *IpBlockEntry) IsActive(now time.Time) bool {
	if e.IsPermanent() {
		return true
	}
	return e.ExpiresAt != nil && now.Before(*e.ExpiresAt)
}

// CheckResult is the outcome of a reputation check.
type CheckResult struct {
	Allowed bool
	Block   *IpBlockEntry
}
