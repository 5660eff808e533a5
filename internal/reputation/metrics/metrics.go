package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus collectors for the IP reputation layer.
type Metrics struct {
	AttemptsRecorded *prometheus.CounterVec
	BlocksCreated    *prometheus.CounterVec
	ChecksRejected   prometheus.Counter
	ActiveBlocks     prometheus.Gauge
	ManualUnblocks   prometheus.Counter
}

// New registers and returns reputation metrics collectors.
func New() *Metrics {
	return &Metrics{
		AttemptsRecorded: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "aegis_reputation_attempts_total",
			Help: "Total number of hostile attempts recorded, by kind",
		}, []string{"kind"}),
		BlocksCreated: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "aegis_reputation_blocks_created_total",
			Help: "Total number of IP blocks created, by kind",
		}, []string{"kind"}),
		ChecksRejected: promauto.NewCounter(prometheus.CounterOpts{
			Name: "aegis_reputation_checks_rejected_total",
			Help: "Total number of requests rejected by an active IP block",
		}),
		ActiveBlocks: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "aegis_reputation_active_blocks",
			Help: "Current number of active IP block entries",
		}),
		ManualUnblocks: promauto.NewCounter(prometheus.CounterOpts{
			Name: "aegis_reputation_manual_unblocks_total",
			Help: "Total number of admin-initiated IP unblocks",
		}),
	}
}

func (m *Metrics) IncrementAttemptsRecorded(kind string) {
	m.AttemptsRecorded.WithLabelValues(kind).Inc()
}

func (m *Metrics) IncrementBlocksCreated(kind string) {
	m.BlocksCreated.WithLabelValues(kind).Inc()
	m.ActiveBlocks.Inc()
}

func (m *Metrics) IncrementChecksRejected() {
	m.ChecksRejected.Inc()
}

func (m *Metrics) DecrementActiveBlocks(count int) {
	m.ActiveBlocks.Sub(float64(count))
}

func (m *Metrics) IncrementManualUnblocks() {
	m.ManualUnblocks.Inc()
}
