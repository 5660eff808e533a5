package audit

import (
	"time"
)

// Event is emitted from domain logic to capture key security actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Timestamp time.Time
	AccountID string
	IP        string
	Action    string
	Reason    string
	RequestID string
}

type AuditEvent string

const (
	EventTokenIssued         AuditEvent = "token_issued"
	EventTokenRefreshed      AuditEvent = "token_refreshed"
	EventTokenRevoked        AuditEvent = "token_revoked"
	EventRefreshReuse        AuditEvent = "refresh_token_reuse_detected"
	EventSecurityVersionBump AuditEvent = "security_version_bumped"
	EventAuthFailed          AuditEvent = "auth_failed"
	EventIPBlocked           AuditEvent = "ip_blocked"
	EventIPUnblocked         AuditEvent = "ip_unblocked"
	EventLogout              AuditEvent = "logout"
)
