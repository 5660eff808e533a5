package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus collectors for session operations.
type Metrics struct {
	TokensIssued            prometheus.Counter
	TokensRefreshed         prometheus.Counter
	ValidationFailures      *prometheus.CounterVec
	RefreshReuseDetections  prometheus.Counter
	SecurityVersionBumps    prometheus.Counter
	AuthFailures            prometheus.Counter
	ActiveAccessTokens      prometheus.Gauge
	LoginDurationMs         prometheus.Histogram
	RefreshDurationMs       prometheus.Histogram
	CleanupRecordsDeleted   *prometheus.CounterVec
	StoreUnavailableRejects prometheus.Counter
}

// New registers and returns session metrics collectors.
func New() *Metrics {
	return &Metrics{
		TokensIssued: promauto.NewCounter(prometheus.CounterOpts{
			Name: "aegis_tokens_issued_total",
			Help: "Total number of access/refresh token pairs issued",
		}),
		TokensRefreshed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "aegis_tokens_refreshed_total",
			Help: "Total number of successful refresh rotations",
		}),
		ValidationFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "aegis_token_validation_failures_total",
			Help: "Total number of access token validation rejections, by reason",
		}, []string{"reason"}),
		RefreshReuseDetections: promauto.NewCounter(prometheus.CounterOpts{
			Name: "aegis_refresh_reuse_detections_total",
			Help: "Total number of refresh token reuse (replay) detections",
		}),
		SecurityVersionBumps: promauto.NewCounter(prometheus.CounterOpts{
			Name: "aegis_security_version_bumps_total",
			Help: "Total number of account security version bumps",
		}),
		AuthFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "aegis_auth_failures_total",
			Help: "Total number of login authentication failures",
		}),
		ActiveAccessTokens: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "aegis_active_access_tokens",
			Help: "Current number of access token records held server-side",
		}),
		LoginDurationMs: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "aegis_login_duration_ms",
			Help:    "Duration of login operations in milliseconds",
			Buckets: []float64{5, 10, 25, 50, 100, 250, 500, 1000},
		}),
		RefreshDurationMs: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "aegis_refresh_duration_ms",
			Help:    "Duration of refresh rotations in milliseconds",
			Buckets: []float64{5, 10, 25, 50, 100, 250, 500, 1000},
		}),
		CleanupRecordsDeleted: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "aegis_cleanup_records_deleted_total",
			Help: "Total number of records deleted by the cleanup worker, by kind",
		}, []string{"kind"}),
		StoreUnavailableRejects: promauto.NewCounter(prometheus.CounterOpts{
			Name: "aegis_store_unavailable_rejects_total",
			Help: "Total number of requests rejected because a backing store was unreachable",
		}),
	}
}

func (m *Metrics) IncrementTokensIssued() {
	m.TokensIssued.Inc()
}

func (m *Metrics) IncrementTokensRefreshed() {
	m.TokensRefreshed.Inc()
}

func (m *Metrics) IncrementValidationFailures(reason string) {
	m.ValidationFailures.WithLabelValues(reason).Inc()
}

func (m *Metrics) IncrementRefreshReuseDetections() {
	m.RefreshReuseDetections.Inc()
}

func (m *Metrics) IncrementSecurityVersionBumps() {
	m.SecurityVersionBumps.Inc()
}

func (m *Metrics) IncrementAuthFailures() {
	m.AuthFailures.Inc()
}

func (m *Metrics) AddActiveAccessTokens(count int) {
	m.ActiveAccessTokens.Add(float64(count))
}

func (m *Metrics) ObserveLoginDuration(durationMs float64) {
	m.LoginDurationMs.Observe(durationMs)
}

func (m *Metrics) ObserveRefreshDuration(durationMs float64) {
	m.RefreshDurationMs.Observe(durationMs)
}

func (m *Metrics) AddCleanupRecordsDeleted(kind string, count int) {
	m.CleanupRecordsDeleted.WithLabelValues(kind).Add(float64(count))
}

func (m *Metrics) IncrementStoreUnavailableRejects() {
	m.StoreUnavailableRejects.Inc()
}
