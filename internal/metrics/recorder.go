package metrics

import "time"

// OutcomeLabel enumerates cycle result categories for counters.
type OutcomeLabel string

const (
	OutcomeSuccess OutcomeLabel = "success"
	OutcomeFailed  OutcomeLabel = "failed"
)

// Recorder defines observability hooks for poll cycles. Implementations may
// forward to Prometheus, OpenTelemetry, etc. All methods must be safe on the
// NoopRecorder so injection stays optional.
type Recorder interface {
	ObserveCycleDuration(d time.Duration)
	IncCycleOutcome(outcome OutcomeLabel)
	AddChanges(added, changed, removed int)
	SetTrackedFiles(n int)
	SetWatchedDirs(n int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveCycleDuration(time.Duration) {}
func (NoopRecorder) IncCycleOutcome(OutcomeLabel)       {}
func (NoopRecorder) AddChanges(int, int, int)           {}
func (NoopRecorder) SetTrackedFiles(int)                {}
func (NoopRecorder) SetWatchedDirs(int)                 {}
