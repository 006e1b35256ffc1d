package receipt

import "github.com/prometheus/client_golang/prometheus"

// Submission and lookup outcomes recorded by Metrics
const (
	outcomeAccepted = "accepted"
	outcomeRejected = "rejected"
	outcomeFailed   = "failed"
	outcomeFound    = "found"
	outcomeNotFound = "not_found"
)

// Metrics holds the Prometheus collectors for receipt processing
type Metrics struct {
	submissions *prometheus.CounterVec
	lookups     *prometheus.CounterVec
	points      prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg leaves the collectors unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "receipt_processor",
			Name:      "submissions_total",
			Help:      "Receipt submissions by outcome.",
		}, []string{"outcome"}),
		lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "receipt_processor",
			Name:      "lookups_total",
			Help:      "Receipt lookups by outcome.",
		}, []string{"outcome"}),
		points: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "receipt_processor",
			Name:      "awarded_points",
			Help:      "Points awarded per accepted receipt.",
			Buckets:   []float64{10, 25, 50, 75, 100, 150, 250, 500},
		}),
	}
	if reg != nil {
		reg.MustRegister(m.submissions, m.lookups, m.points)
	}
	return m
}

func (m *Metrics) submitted(outcome string) {
	m.submissions.WithLabelValues(outcome).Inc()
}

func (m *Metrics) awarded(points int) {
	m.points.Observe(float64(points))
}

func (m *Metrics) lookedUp(outcome string) {
	m.lookups.WithLabelValues(outcome).Inc()
}
