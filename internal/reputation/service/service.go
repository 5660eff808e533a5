package service

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"time"

	"aegis/internal/audit"
	"aegis/internal/platform/middleware"
	"aegis/internal/platform/tracer"
	"aegis/internal/reputation/metrics"
	"aegis/internal/reputation/models"
	"aegis/internal/reputation/store/ipblock"
	"aegis/internal/reputation/window"
	dErrors "aegis/pkg/domain-errors"
	"aegis/pkg/platform/middleware/requesttime"
)

// BlockStore holds the per-IP verdicts.
// Error Contract: Get returns store.ErrNotFound when the IP has no entry.
type BlockStore interface {
	Get(ctx context.Context, ip string) (*models.IpBlockEntry, error)
	Upsert(ctx context.Context, entry *models.IpBlockEntry) error
	Delete(ctx context.Context, ip string) error
	List(ctx context.Context) ([]*models.IpBlockEntry, error)
}

// AttemptStore is the append-only attack ledger.
type AttemptStore interface {
	Append(ctx context.Context, record *models.AttackAttemptRecord) error
	ListByIP(ctx context.Context, ip string, since time.Time) ([]*models.AttackAttemptRecord, error)
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Config carries the escalation thresholds.
type Config struct {
	// Window is the sliding interval attempts are counted over.
	Window time.Duration
	// WindowLimit is how many attempts inside Window trigger a block.
	WindowLimit int
	// TempBlockBase is the first temporary block's duration; each further
	// violation doubles it.
	TempBlockBase time.Duration
	// PermanentThreshold is the violation count at which an IP is blocked
	// permanently.
	PermanentThreshold int
}

const (
	defaultWindow             = 5 * time.Minute
	defaultWindowLimit        = 5
	defaultTempBlockBase      = 10 * time.Minute
	defaultPermanentThreshold = 4

	// maxTempBlockShift caps the doubling so a permanent threshold configured
	// far above the default cannot overflow time.Duration into a negative
	// expiry. base 10m << 16 is roughly 455 days.
	maxTempBlockShift = 16
)

// Service is the IP reputation guard: it answers "may this IP proceed" before
// any credential or token is touched, and escalates IPs that keep failing.
type Service struct {
	blocks   BlockStore
	attempts AttemptStore
	counter  *window.Counter
	cfg      *Config

	logger         *slog.Logger
	auditPublisher AuditPublisher
	metrics        *metrics.Metrics
	tracer         tracer.Tracer
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) { s.auditPublisher = publisher }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithTracer(t tracer.Tracer) Option {
	return func(s *Service) { s.tracer = t }
}

func New(blocks BlockStore, attempts AttemptStore, cfg *Config, opts ...Option) (*Service, error) {
	if blocks == nil || attempts == nil {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "reputation stores are required")
	}
	if cfg == nil {
		cfg = &Config{}
	}
	if cfg.Window <= 0 {
		cfg.Window = defaultWindow
	}
	if cfg.WindowLimit <= 0 {
		cfg.WindowLimit = defaultWindowLimit
	}
	if cfg.TempBlockBase <= 0 {
		cfg.TempBlockBase = defaultTempBlockBase
	}
	if cfg.PermanentThreshold <= 0 {
		cfg.PermanentThreshold = defaultPermanentThreshold
	}

	svc := &Service{
		blocks:   blocks,
		attempts: attempts,
		counter:  window.NewCounter(cfg.Window),
		cfg:      cfg,
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

// Counter exposes the sliding-window counter for the cleanup worker.
func (s *Service) Counter() *window.Counter {
	return s.counter
}

// Check answers whether requests from the IP may proceed. Loopback is always
// allowed. An unreadable block store rejects the request; the guard never
// falls open.
func (s *Service) Check(ctx context.Context, ip string) (*models.CheckResult, error) {
	ctx, span := s.tracer.Start(ctx, tracer.SpanReputationScan)
	var opErr error
	defer func() { span.End(opErr) }()

	if isLoopback(ip) {
		return &models.CheckResult{Allowed: true}, nil
	}

	entry, err := s.blocks.Get(ctx, ip)
	if err != nil {
		if errors.Is(err, ipblock.ErrNotFound) {
			return &models.CheckResult{Allowed: true}, nil
		}
		opErr = dErrors.Wrap(err, dErrors.CodeStoreUnavailable, "block store unavailable")
		return nil, opErr
	}

	now := requesttime.Now(ctx)
	if !entry.IsActive(now) {
		// Expired temporary block; the cleanup worker prunes the row.
		return &models.CheckResult{Allowed: true}, nil
	}

	span.SetAttributes(tracer.String(tracer.AttrBlockKind, string(entry.Kind)))
	if s.metrics != nil {
		s.metrics.IncrementChecksRejected()
	}
	return &models.CheckResult{Allowed: false, Block: entry}, nil
}

// RecordAttempt appends a hostile attempt to the ledger and escalates the IP
// when it crosses the window limit. The signature satisfies the session
// service's AttemptRecorder.
func (s *Service) RecordAttempt(ctx context.Context, ip, kind, endpoint string, accountID string) error {
	if ip == "" || isLoopback(ip) {
		return nil
	}
	now := requesttime.Now(ctx)
	attemptKind := models.AttemptKind(kind)

	if s.metrics != nil {
		s.metrics.IncrementAttemptsRecorded(kind)
	}

	record := &models.AttackAttemptRecord{
		IP:        ip,
		Timestamp: now,
		Kind:      attemptKind,
		Endpoint:  endpoint,
		AccountID: accountID,
	}

	if count := s.counter.Record(ip, now); count >= s.cfg.WindowLimit {
		if err := s.escalate(ctx, ip, attemptKind, now); err != nil {
			return err
		}
		record.ResultedInBlock = true
		// A block starts a fresh window; attempts made while blocked are
		// rejected upstream and never reach this path.
		s.counter.Reset(ip)
	}

	if err := s.attempts.Append(ctx, record); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to append attempt record")
	}
	return nil
}

// escalate creates or tightens the IP's block entry. Each violation doubles
// the temporary duration; crossing the permanent threshold makes the block
// permanent (ExpiresAt nil).
func (s *Service) escalate(ctx context.Context, ip string, kind models.AttemptKind, now time.Time) error {
	violations := 1
	existing, err := s.blocks.Get(ctx, ip)
	switch {
	case err == nil:
		if existing.IsPermanent() {
			return nil
		}
		violations = existing.ViolationCount + 1
	case errors.Is(err, ipblock.ErrNotFound):
		// first violation
	default:
		return dErrors.Wrap(err, dErrors.CodeStoreUnavailable, "block store unavailable")
	}

	entry := &models.IpBlockEntry{
		IP:             ip,
		Reason:         string(kind),
		BlockedAt:      now,
		ViolationCount: violations,
	}
	if violations >= s.cfg.PermanentThreshold {
		entry.Kind = models.BlockPermanent
	} else {
		entry.Kind = models.BlockTemporary
		shift := violations - 1
		if shift > maxTempBlockShift {
			shift = maxTempBlockShift
		}
		expiry := now.Add(s.cfg.TempBlockBase << shift)
		entry.ExpiresAt = &expiry
	}

	if err := s.blocks.Upsert(ctx, entry); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to store block entry")
	}
	if s.metrics != nil {
		s.metrics.IncrementBlocksCreated(string(entry.Kind))
	}
	s.logAudit(ctx, audit.EventIPBlocked, ip, string(kind),
		"block_kind", string(entry.Kind),
		"violations", violations,
	)
	return nil
}

// Unblock removes the IP's entry and resets its window. Admin surface; the
// escalation history goes with the entry.
func (s *Service) Unblock(ctx context.Context, ip string) error {
	if ip == "" {
		return dErrors.New(dErrors.CodeValidation, "ip is required")
	}
	if err := s.blocks.Delete(ctx, ip); err != nil {
		if errors.Is(err, ipblock.ErrNotFound) {
			return err
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete block entry")
	}
	s.counter.Reset(ip)
	if s.metrics != nil {
		s.metrics.IncrementManualUnblocks()
		s.metrics.DecrementActiveBlocks(1)
	}
	s.logAudit(ctx, audit.EventIPUnblocked, ip, "admin_unblock")
	return nil
}

// ListBlocks returns all current block entries. Admin surface.
func (s *Service) ListBlocks(ctx context.Context) ([]*models.IpBlockEntry, error) {
	entries, err := s.blocks.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list block entries")
	}
	return entries, nil
}

// RecentAttempts returns the IP's ledger rows inside the configured window.
func (s *Service) RecentAttempts(ctx context.Context, ip string) ([]*models.AttackAttemptRecord, error) {
	since := requesttime.Now(ctx).Add(-s.cfg.Window)
	records, err := s.attempts.ListByIP(ctx, ip, since)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list attempts")
	}
	return records, nil
}

func (s *Service) logAudit(ctx context.Context, event audit.AuditEvent, ip, reason string, attrs ...any) {
	args := append([]any{"event", string(event), "ip", ip, "reason", reason, "log_type", "audit"}, attrs...)
	if requestID := middleware.GetRequestID(ctx); requestID != "" {
		args = append(args, "request_id", requestID)
	}
	s.logger.InfoContext(ctx, string(event), args...)

	if s.auditPublisher == nil {
		return
	}
	_ = s.auditPublisher.Emit(ctx, audit.Event{
		Timestamp: requesttime.Now(ctx),
		IP:        ip,
		Action:    string(event),
		Reason:    reason,
		RequestID: middleware.GetRequestID(ctx),
	})
}

func isLoopback(ip string) bool {
	parsed := net.ParseIP(ip)
	return parsed != nil && parsed.IsLoopback()
}
