package cleanup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"aegis/internal/session/metrics"
)

// AccessTokenStore exposes cleanup for expired access token records.
type AccessTokenStore interface {
	DeleteExpired(ctx context.Context, now time.Time) (int, error)
}

// RefreshTokenStore exposes cleanup for refresh tokens and rotation artifacts.
type RefreshTokenStore interface {
	DeleteExpired(ctx context.Context, now time.Time) (int, error)
	DeleteConsumed(ctx context.Context, olderThan time.Time) (int, error)
}

// BlockStore exposes cleanup for lapsed temporary IP blocks. Permanent blocks
// are never pruned.
type BlockStore interface {
	DeleteExpired(ctx context.Context, now time.Time) (int, error)
}

// WindowCounter exposes bulk eviction of idle sliding-window buckets.
type WindowCounter interface {
	Evict(now time.Time) int
}

// Result summarizes the deletions performed by a cleanup run.
type Result struct {
	DeletedAccessTokens    int
	DeletedRefreshTokens   int
	DeletedConsumedRefresh int
	DeletedExpiredBlocks   int
	EvictedWindowBuckets   int
}

// Service periodically removes expired security artifacts.
type Service struct {
	accessTokens      AccessTokenStore
	refreshTokens     RefreshTokenStore
	blocks            BlockStore
	windows           WindowCounter
	interval          time.Duration
	consumedRetention time.Duration
	logger            *slog.Logger
	metrics           *metrics.Metrics
}

type Option func(*Service)

// WithInterval overrides the cleanup interval when greater than zero.
func WithInterval(interval time.Duration) Option {
	return func(s *Service) {
		if interval > 0 {
			s.interval = interval
		}
	}
}

// WithConsumedRetention overrides how long consumed refresh records are kept
// for replay attribution.
func WithConsumedRetention(retention time.Duration) Option {
	return func(s *Service) {
		if retention > 0 {
			s.consumedRetention = retention
		}
	}
}

// WithLogger overrides the logger used for cleanup errors.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetrics enables per-kind deletion counters.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// New constructs a cleanup Service. The block store and window counter are
// optional; the token stores are required.
func New(
	accessTokens AccessTokenStore,
	refreshTokens RefreshTokenStore,
	blocks BlockStore,
	windows WindowCounter,
	opts ...Option,
) (*Service, error) {
	if accessTokens == nil || refreshTokens == nil {
		return nil, fmt.Errorf("accessTokens and refreshTokens stores are required")
	}
	svc := &Service{
		accessTokens:      accessTokens,
		refreshTokens:     refreshTokens,
		blocks:            blocks,
		windows:           windows,
		interval:          5 * time.Minute,
		consumedRetention: 24 * time.Hour,
		logger:            slog.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(svc)
		}
	}
	return svc, nil
}

// Start runs cleanup periodically until ctx is cancelled.
func (s *Service) Start(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if _, err := s.RunOnce(ctx); err != nil {
				s.logger.ErrorContext(ctx, "security cleanup failed", "error", err)
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// RunOnce performs a single cleanup pass: expired access records, expired and
// old consumed refresh records, lapsed temporary IP blocks, and idle window
// buckets. Errors are aggregated; a failing store does not stop the others.
func (s *Service) RunOnce(ctx context.Context) (Result, error) {
	now := time.Now()
	var res Result
	var errs []error

	deletedAccess, err := s.accessTokens.DeleteExpired(ctx, now)
	if err != nil {
		errs = append(errs, fmt.Errorf("delete expired access tokens: %w", err))
	} else {
		res.DeletedAccessTokens = deletedAccess
		s.count("access_token", deletedAccess)
	}

	deletedRefresh, err := s.refreshTokens.DeleteExpired(ctx, now)
	if err != nil {
		errs = append(errs, fmt.Errorf("delete expired refresh tokens: %w", err))
	} else {
		res.DeletedRefreshTokens = deletedRefresh
		s.count("refresh_token", deletedRefresh)
	}

	deletedConsumed, err := s.refreshTokens.DeleteConsumed(ctx, now.Add(-s.consumedRetention))
	if err != nil {
		errs = append(errs, fmt.Errorf("delete consumed refresh tokens: %w", err))
	} else {
		res.DeletedConsumedRefresh = deletedConsumed
		s.count("consumed_refresh_token", deletedConsumed)
	}

	if s.blocks != nil {
		deletedBlocks, err := s.blocks.DeleteExpired(ctx, now)
		if err != nil {
			errs = append(errs, fmt.Errorf("delete expired ip blocks: %w", err))
		} else {
			res.DeletedExpiredBlocks = deletedBlocks
			s.count("ip_block", deletedBlocks)
		}
	}

	if s.windows != nil {
		res.EvictedWindowBuckets = s.windows.Evict(now)
	}

	if len(errs) > 0 {
		return res, errors.Join(errs...)
	}
	return res, nil
}

func (s *Service) count(kind string, n int) {
	if s.metrics == nil || n == 0 {
		return
	}
	s.metrics.AddCleanupRecordsDeleted(kind, n)
	if kind == "access_token" {
		s.metrics.AddActiveAccessTokens(-n)
	}
}
