package signup

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics are the signup collectors. A nil *Metrics records nothing.
type Metrics struct {
	Submissions *prometheus.CounterVec
	Rejections  *prometheus.CounterVec
	Duration    prometheus.Histogram
	Sessions    prometheus.Gauge
}

// NewMetrics registers the signup collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Submissions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "resqx_signup_submissions_total",
			Help: "Signup attempts by outcome (none means success)",
		}, []string{"kind"}),
		Rejections: f.NewCounterVec(prometheus.CounterOpts{
			Name: "resqx_signup_rejections_total",
			Help: "Submissions refused without running the workflow",
		}, []string{"reason"}),
		Duration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "resqx_signup_duration_seconds",
			Help:    "Time spent registering the contact and delivering the guide",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10},
		}),
		Sessions: f.NewGauge(prometheus.GaugeOpts{
			Name: "resqx_signup_sessions",
			Help: "Visitor workflow states held in memory",
		}),
	}
}

func (m *Metrics) observe(kind Kind, d time.Duration) {
	if m == nil {
		return
	}
	m.Submissions.WithLabelValues(kind.String()).Inc()
	m.Duration.Observe(d.Seconds())
}

func (m *Metrics) reject(reason string) {
	if m == nil {
		return
	}
	m.Rejections.WithLabelValues(reason).Inc()
}

func (m *Metrics) sessions(n int) {
	if m == nil {
		return
	}
	m.Sessions.Set(float64(n))
}
