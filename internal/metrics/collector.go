package radmetrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// -------------------------------------------------------------------------
// Prometheus Metric Constants
// -------------------------------------------------------------------------

const (
	namespace = "goradius"
	subsystem = "encode"
)

// Label names for encoding metrics.
const (
	labelKind   = "kind"   // raddict.Kind.String() of the attribute's root.
	labelResult = "result" // "ok", "truncated", "no_room", "error".
)

// -------------------------------------------------------------------------
// Collector — Prometheus Encoding Metrics
// -------------------------------------------------------------------------

// Collector holds all goradius encoding Prometheus metrics.
//
// Metrics are designed for production RADIUS gateway monitoring:
//   - Attributes tracks each call into EncodePair, labeled by outcome.
//   - Fragments counts sibling attributes emitted by the RFC 6929 /
//     WiMAX continuation encoders.
//   - Truncations counts values shortened to fit an Extended attribute.
//   - NoRoom counts calls that made no progress because outlen was too
//     small, surfaced separately from hard encode errors.
//   - BatchDuration observes end-to-end EncodeBatch wall time.
type Collector struct {
	// Attributes counts encode attempts per attribute kind and outcome.
	Attributes *prometheus.CounterVec

	// Fragments counts sibling attributes emitted for continuation-bit
	// encodings (RFC 6929 Long-Extended, WiMAX).
	Fragments *prometheus.CounterVec

	// Truncations counts leaf values shortened to fit a single
	// non-long Extended attribute.
	Truncations prometheus.Counter

	// NoRoom counts EncodePair calls that returned zero progress
	// because the output buffer was too small.
	NoRoom prometheus.Counter

	// BatchDuration observes the wall-clock time of EncodeBatch calls.
	BatchDuration prometheus.Histogram
}

// NewCollector creates a Collector with all encoding metrics registered
// against the provided prometheus.Registerer. If reg is nil,
// prometheus.DefaultRegisterer is used.
//
// All metrics are created with the "goradius_encode_" prefix
// (namespace_subsystem) to avoid collisions with other exporters.
func NewCollector(reg prometheus.Registerer) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	c := newMetrics()

	reg.MustRegister(
		c.Attributes,
		c.Fragments,
		c.Truncations,
		c.NoRoom,
		c.BatchDuration,
	)

	return c
}

// newMetrics creates all Prometheus metric vectors without registering them.
func newMetrics() *Collector {
	outcomeLabels := []string{labelKind, labelResult}

	return &Collector{
		Attributes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "attributes_total",
			Help:      "Total EncodePair calls by attribute kind and outcome.",
		}, outcomeLabels),

		Fragments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "fragments_total",
			Help:      "Total sibling fragments emitted by continuation-bit encoders.",
		}, []string{labelKind}),

		Truncations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "truncations_total",
			Help:      "Total leaf values shortened to fit a single Extended attribute.",
		}),

		NoRoom: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "no_room_total",
			Help:      "Total EncodePair calls that made no progress due to insufficient buffer space.",
		}),

		BatchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "batch_duration_seconds",
			Help:      "EncodeBatch wall-clock duration.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}

// -------------------------------------------------------------------------
// Attribute Outcomes
// -------------------------------------------------------------------------

// Outcome labels recorded against the Attributes counter.
const (
	ResultOK        = "ok"
	ResultTruncated = "truncated"
	ResultNoRoom    = "no_room"
	ResultError     = "error"
)

// RecordAttribute increments the attribute counter for the given kind and
// outcome. Called once per EncodePair invocation by the dispatcher's caller.
func (c *Collector) RecordAttribute(kind, result string) {
	c.Attributes.WithLabelValues(kind, result).Inc()
}

// -------------------------------------------------------------------------
// Fragmentation and Truncation
// -------------------------------------------------------------------------

// IncFragments increments the fragment counter for the given attribute kind.
// Called once per sibling attribute emitted beyond the first.
func (c *Collector) IncFragments(kind string) {
	c.Fragments.WithLabelValues(kind).Inc()
}

// IncTruncations increments the truncation counter. Called when a non-long
// Extended attribute's value is shortened to fit the 255-octet ceiling.
func (c *Collector) IncTruncations() {
	c.Truncations.Inc()
}

// -------------------------------------------------------------------------
// No-Room Events
// -------------------------------------------------------------------------

// IncNoRoom increments the no-room counter. Called when EncodePair returns
// zero progress with a nil error because the output buffer was too small.
func (c *Collector) IncNoRoom() {
	c.NoRoom.Inc()
}

// -------------------------------------------------------------------------
// Batch Timing
// -------------------------------------------------------------------------

// ObserveBatchDuration records the wall-clock duration, in seconds, of one
// EncodeBatch call.
func (c *Collector) ObserveBatchDuration(seconds float64) {
	c.BatchDuration.Observe(seconds)
}
