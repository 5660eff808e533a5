package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"log/slog"
	"time"

	"aegis/internal/audit"
	"aegis/internal/platform/middleware"
	"aegis/internal/platform/tracer"
	"aegis/internal/session/metrics"
	dErrors "aegis/pkg/domain-errors"
	"aegis/pkg/platform/middleware/requesttime"
)

const (
	defaultRefreshTokenTTL = 14 * 24 * time.Hour
	defaultStoreDeadline   = 2 * time.Second
)

// Attempt kinds reported to the reputation layer.
const (
	AttemptCredentialStuffing = "credential_stuffing"
	AttemptInvalidTokenReuse  = "invalid_token_reuse"
)

// Config carries the tunable knobs of the session service. Zero values fall
// back to defaults in New.
type Config struct {
	RefreshTokenTTL time.Duration
	// StoreDeadline bounds store round-trips on the validation hot path. A
	// store that cannot answer within the deadline causes a store_unavailable
	// rejection; validation never falls open.
	StoreDeadline time.Duration
}

type Service struct {
	accessTokens     AccessTokenStore
	refreshTokens    RefreshTokenStore
	securityVersions SecurityVersionStore
	accounts         AccountDirectory
	jwt              TokenGenerator
	cfg              *Config

	logger         *slog.Logger
	auditPublisher AuditPublisher
	attempts       AttemptRecorder
	metrics        *metrics.Metrics
	tracer         tracer.Tracer
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

func WithAttemptRecorder(recorder AttemptRecorder) Option {
	return func(s *Service) {
		s.attempts = recorder
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithTracer(t tracer.Tracer) Option {
	return func(s *Service) {
		s.tracer = t
	}
}

func New(
	accessTokens AccessTokenStore,
	refreshTokens RefreshTokenStore,
	securityVersions SecurityVersionStore,
	accounts AccountDirectory,
	jwt TokenGenerator,
	cfg *Config,
	opts ...Option,
) (*Service, error) {
	if accessTokens == nil || refreshTokens == nil || securityVersions == nil {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "token stores are required")
	}
	if jwt == nil {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "token generator is required")
	}
	if cfg == nil {
		cfg = &Config{}
	}
	if cfg.RefreshTokenTTL <= 0 {
		cfg.RefreshTokenTTL = defaultRefreshTokenTTL
	}
	if cfg.StoreDeadline <= 0 {
		cfg.StoreDeadline = defaultStoreDeadline
	}

	svc := &Service{
		accessTokens:     accessTokens,
		refreshTokens:    refreshTokens,
		securityVersions: securityVersions,
		accounts:         accounts,
		jwt:              jwt,
		cfg:              cfg,
	}
	for _, opt := range opts {
		opt(svc)
	}
	if svc.logger == nil {
		svc.logger = slog.Default()
	}
	if svc.tracer == nil {
		svc.tracer = tracer.NewNoop()
	}
	return svc, nil
}

func (s *Service) logAudit(ctx context.Context, event audit.AuditEvent, accountID, ip, reason string) {
	attributes := []any{"event", string(event), "log_type", "audit"}
	if accountID != "" {
		attributes = append(attributes, "account_id", accountID)
	}
	if ip != "" {
		attributes = append(attributes, "ip", ip)
	}
	if reason != "" {
		attributes = append(attributes, "reason", reason)
	}
	if requestID := middleware.GetRequestID(ctx); requestID != "" {
		attributes = append(attributes, "request_id", requestID)
	}
	s.logger.InfoContext(ctx, string(event), attributes...)

	if s.auditPublisher == nil {
		return
	}
	_ = s.auditPublisher.Emit(ctx, audit.Event{
		Timestamp: requesttime.Now(ctx),
		AccountID: accountID,
		IP:        ip,
		Action:    string(event),
		Reason:    reason,
		RequestID: middleware.GetRequestID(ctx),
	})
}

func (s *Service) authFailure(ctx context.Context, reason string, isError bool, attributes ...any) {
	if requestID := middleware.GetRequestID(ctx); requestID != "" {
		attributes = append(attributes, "request_id", requestID)
	}
	args := append(attributes, "event", string(audit.EventAuthFailed), "reason", reason, "log_type", "standard")
	if isError {
		s.logger.ErrorContext(ctx, string(audit.EventAuthFailed), args...)
		return
	}
	s.logger.WarnContext(ctx, string(audit.EventAuthFailed), args...)
}

// recordAttempt reports a hostile-looking failure to the reputation layer.
// Best-effort: errors are logged, never propagated.
func (s *Service) recordAttempt(ctx context.Context, ip, kind, endpoint, accountID string) {
	if s.attempts == nil || ip == "" {
		return
	}
	if err := s.attempts.RecordAttempt(ctx, ip, kind, endpoint, accountID); err != nil {
		s.logger.WarnContext(ctx, "attempt_record_failed", "ip", ip, "kind", kind, "error", err)
	}
}

func (s *Service) incrementTokensIssued() {
	if s.metrics != nil {
		s.metrics.IncrementTokensIssued()
		s.metrics.AddActiveAccessTokens(1)
	}
}

func (s *Service) incrementTokensRefreshed() {
	if s.metrics != nil {
		s.metrics.IncrementTokensRefreshed()
	}
}

func (s *Service) incrementValidationFailure(code dErrors.Code) {
	if s.metrics != nil {
		s.metrics.IncrementValidationFailures(string(code))
		if code == dErrors.CodeStoreUnavailable {
			s.metrics.IncrementStoreUnavailableRejects()
		}
	}
}

func (s *Service) incrementAuthFailure() {
	if s.metrics != nil {
		s.metrics.IncrementAuthFailures()
	}
}

func (s *Service) incrementReuseDetection() {
	if s.metrics != nil {
		s.metrics.IncrementRefreshReuseDetections()
	}
}

// observeDuration records wall-clock latency for an operation; wall time, not
// the request-scoped instant, because latency is what the histogram measures.
func (s *Service) observeDuration(start time.Time, observe func(float64)) {
	if s.metrics != nil {
		observe(float64(time.Since(start).Milliseconds()))
	}
}

func (s *Service) observeLoginDuration(ms float64) {
	if s.metrics != nil {
		s.metrics.ObserveLoginDuration(ms)
	}
}

func (s *Service) observeRefreshDuration(ms float64) {
	if s.metrics != nil {
		s.metrics.ObserveRefreshDuration(ms)
	}
}

func (s *Service) incrementSecurityVersionBump() {
	if s.metrics != nil {
		s.metrics.IncrementSecurityVersionBumps()
	}
}
