package verifier

import (
	"github.com/prometheus/client_golang/prometheus"

	proto "freshprint/internal/protocol/fingerprint"
)

const (
	namespace            = "freshprint"
	reasonInvalidPubKey  = "invalid_public_key"
	reasonBadRequestBody = "bad_request"
)

// Metrics holds the verifier collectors.
type Metrics struct {
	Verifications *prometheus.CounterVec
	RateLimited   prometheus.Counter
	Duration      prometheus.Histogram
}

// NewMetrics registers the verifier collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Verifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "verifications_total",
			Help:      "Fingerprint verification requests by result.",
		}, []string{"result"}),
		RateLimited: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limited_total",
			Help:      "Requests rejected by the per-client rate limiter.",
		}),
		Duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "verify_duration_seconds",
			Help:      "Time spent handling /verify.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
	}
	reg.MustRegister(m.Verifications, m.RateLimited, m.Duration)

	// Pre-create every label so dashboards see zeros.
	for _, r := range append(proto.Reasons(), reasonInvalidPubKey, reasonBadRequestBody) {
		m.Verifications.WithLabelValues(r)
	}
	return m
}
