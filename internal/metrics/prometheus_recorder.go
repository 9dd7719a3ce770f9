package metrics

import (
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	once          sync.Once
	cycleDuration prom.Histogram
	cycleOutcomes *prom.CounterVec
	changes       *prom.CounterVec
	trackedFiles  prom.Gauge
	watchedDirs   prom.Gauge
}

// NewPrometheusRecorder constructs and registers Prometheus metrics (idempotent).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{}
	pr.once.Do(func() {
		pr.cycleDuration = prom.NewHistogram(prom.HistogramOpts{
			Namespace: "pollwatch",
			Name:      "cycle_duration_seconds",
			Help:      "Wall-clock duration of completed poll cycles",
			Buckets:   prom.DefBuckets,
		})
		pr.cycleOutcomes = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "pollwatch",
			Name:      "cycle_outcomes_total",
			Help:      "Poll cycle outcomes by final status",
		}, []string{"outcome"})
		pr.changes = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "pollwatch",
			Name:      "changes_total",
			Help:      "Detected filesystem changes by type",
		}, []string{"type"})
		pr.trackedFiles = prom.NewGauge(prom.GaugeOpts{
			Namespace: "pollwatch",
			Name:      "tracked_files",
			Help:      "Number of files currently recorded in the state store",
		})
		pr.watchedDirs = prom.NewGauge(prom.GaugeOpts{
			Namespace: "pollwatch",
			Name:      "watched_directories",
			Help:      "Size of the fixed watched-directory set",
		})
		reg.MustRegister(pr.cycleDuration, pr.cycleOutcomes, pr.changes, pr.trackedFiles, pr.watchedDirs)
	})
	return pr
}

func (p *PrometheusRecorder) ObserveCycleDuration(d time.Duration) {
	if p == nil || p.cycleDuration == nil {
		return
	}
	p.cycleDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncCycleOutcome(outcome OutcomeLabel) {
	if p == nil || p.cycleOutcomes == nil {
		return
	}
	p.cycleOutcomes.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) AddChanges(added, changed, removed int) {
	if p == nil || p.changes == nil {
		return
	}
	if added > 0 {
		p.changes.WithLabelValues("added").Add(float64(added))
	}
	if changed > 0 {
		p.changes.WithLabelValues("changed").Add(float64(changed))
	}
	if removed > 0 {
		p.changes.WithLabelValues("removed").Add(float64(removed))
	}
}

func (p *PrometheusRecorder) SetTrackedFiles(n int) {
	if p == nil || p.trackedFiles == nil {
		return
	}
	p.trackedFiles.Set(float64(n))
}

func (p *PrometheusRecorder) SetWatchedDirs(n int) {
	if p == nil || p.watchedDirs == nil {
		return
	}
	p.watchedDirs.Set(float64(n))
}
