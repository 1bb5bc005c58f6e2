package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	toolCalls     *prometheus.CounterVec
	toolLatency   *prometheus.HistogramVec
	panelSettles  *prometheus.CounterVec
	staleDiscards *prometheus.CounterVec
	panelFaults   *prometheus.CounterVec
	broadcasts    prometheus.Counter
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		toolCalls: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "spacwatch_tool_calls_total",
				Help: "Total gateway tool invocations by result",
			},
			[]string{"tool", "result"},
		),
		toolLatency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "spacwatch_tool_call_duration_seconds",
				Help:    "Duration of gateway tool invocations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"tool"},
		),
		panelSettles: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "spacwatch_panel_settles_total",
				Help: "Total panel slots settled",
			},
			[]string{"kind"},
		),
		staleDiscards: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "spacwatch_stale_discards_total",
				Help: "Responses discarded because their selection generation passed",
			},
			[]string{"kind"},
		),
		panelFaults: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "spacwatch_panel_faults_total",
				Help: "Panel render faults contained by the supervisor",
			},
			[]string{"panel"},
		),
		broadcasts: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "spacwatch_panel_broadcasts_total",
				Help: "Panel updates fanned out to subscribers",
			},
		),
	}
}

// RecordToolCall records one gateway invocation and its latency.
func (r *Recorder) RecordToolCall(tool string, ok bool, seconds float64) {
	result := "ok"
	if !ok {
		result = "absent"
	}
	r.toolCalls.WithLabelValues(tool, result).Inc()
	r.toolLatency.WithLabelValues(tool).Observe(seconds)
}

// RecordPanelSettle records a panel slot settling.
func (r *Recorder) RecordPanelSettle(kind string) {
	r.panelSettles.WithLabelValues(kind).Inc()
}

// RecordStaleDiscard records a dropped stale response.
func (r *Recorder) RecordStaleDiscard(kind string) {
	r.staleDiscards.WithLabelValues(kind).Inc()
}

// RecordPanelFault records a contained panel fault.
func (r *Recorder) RecordPanelFault(panel string) {
	r.panelFaults.WithLabelValues(panel).Inc()
}

// RecordBroadcast records one fan-out of a panel update.
func (r *Recorder) RecordBroadcast() {
	r.broadcasts.Inc()
}
