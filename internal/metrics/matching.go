package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Matching groups the collectors of the donor matching pipeline.
// A nil *Matching records nothing.
type Matching struct {
	runs          *prometheus.CounterVec
	duration      prometheus.Histogram
	candidates    *prometheus.HistogramVec
	notifications *prometheus.CounterVec
}

// NewMatching creates the matching collectors. Register them with Collectors.
func NewMatching() *Matching {
	return &Matching{
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "match_runs_total",
			Help: "Total number of matching runs by outcome status and reason",
		}, []string{"status", "reason"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "match_run_duration_seconds",
			Help:    "Duration of matching runs",
			Buckets: prometheus.DefBuckets,
		}),
		candidates: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "match_candidates",
			Help:    "Number of donors remaining after each matching stage",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250, 500, 1000},
		}, []string{"stage"}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "match_notifications_total",
			Help: "Total number of push notifications by delivery result",
		}, []string{"result"}),
	}
}

// Collectors returns every collector for registration.
func (m *Matching) Collectors() []prometheus.Collector {
	if m == nil {
		return nil
	}
	return []prometheus.Collector{m.runs, m.duration, m.candidates, m.notifications}
}

// ObserveRun records one finished run.
func (m *Matching) ObserveRun(status, reason string, d time.Duration) {
	if m == nil {
		return
	}
	m.runs.WithLabelValues(status, reason).Inc()
	m.duration.Observe(d.Seconds())
}

// ObserveCandidates records how many donors a stage produced.
func (m *Matching) ObserveCandidates(stage string, n int) {
	if m == nil {
		return
	}
	m.candidates.WithLabelValues(stage).Observe(float64(n))
}

// AddNotifications records provider delivery counts.
func (m *Matching) AddNotifications(sent, failed int) {
	if m == nil {
		return
	}
	m.notifications.WithLabelValues("sent").Add(float64(sent))
	m.notifications.WithLabelValues("failed").Add(float64(failed))
}
