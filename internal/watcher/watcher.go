// Package watcher implements reliable change detection for a directory tree
// by periodically re-scanning it and diffing against recorded state. Polling
// is deliberate: OS change-notification APIs can silently drop events, and
// this design trades latency for correctness.
package watcher

import (
	"context"
	"log/slog"
	"os"
	"sync/atomic"
	"time"

	pwerrors "git.home.luguber.info/inful/pollwatch/internal/errors"
	"git.home.luguber.info/inful/pollwatch/internal/logfields"
	"git.home.luguber.info/inful/pollwatch/internal/metrics"
)

// DefaultInterval is used when no poll interval is configured.
const DefaultInterval = time.Second

// emptyChanges backs LastChanges after a quiet cycle, so publishing the
// result of such a cycle does not allocate.
var emptyChanges ChangeList

// Config configures a Watcher.
type Config struct {
	RootDirectory         string
	IncludeSubdirectories bool
	PollInterval          time.Duration

	// Lister overrides directory enumeration, mainly for tests. Defaults to OSLister.
	Lister DirLister
	// Recorder receives cycle metrics. Defaults to metrics.NoopRecorder.
	Recorder metrics.Recorder
}

// Watcher ties the scan engine to its observable surface: a single change
// callback slot, an error sink, and the last-cycle duration and result.
// Cycle execution itself is single-goroutine (the scheduler never overlaps
// cycles); the callback slot and the duration/result cells are atomic so
// external goroutines can register and read safely.
type Watcher struct {
	engine   *ScanEngine
	interval time.Duration
	recorder metrics.Recorder

	callback atomic.Pointer[func(ChangeList)]
	onError  atomic.Pointer[func(error)]

	lastDuration atomic.Int64 // nanoseconds of last completed cycle
	lastChanges  atomic.Pointer[ChangeList]
}

// New creates a Watcher. The root directory must exist; when
// IncludeSubdirectories is set the watched set is expanded once, at
// construction, by a recursive walk.
func New(cfg Config) (*Watcher, error) {
	if cfg.RootDirectory == "" {
		return nil, pwerrors.ConfigRequired("root directory")
	}
	info, err := os.Stat(cfg.RootDirectory)
	if err != nil {
		return nil, pwerrors.Wrap(err, pwerrors.CategoryConfig, pwerrors.SeverityFatal, "root directory not accessible")
	}
	if !info.IsDir() {
		return nil, pwerrors.ValidationFailed("root directory", "not a directory")
	}

	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultInterval
	}
	if cfg.Lister == nil {
		cfg.Lister = OSLister{}
	}
	if cfg.Recorder == nil {
		cfg.Recorder = metrics.NoopRecorder{}
	}

	dirs, err := discoverWatchDirs(cfg.RootDirectory, cfg.IncludeSubdirectories)
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		engine:   NewScanEngine(dirs, cfg.Lister),
		interval: cfg.PollInterval,
		recorder: cfg.Recorder,
	}
	w.recorder.SetWatchedDirs(len(dirs))
	return w, nil
}

// OnChange registers the change callback. There is exactly one slot: the
// last registration wins, nil clears it. The callback runs synchronously on
// the cycle's goroutine, once per cycle, only when changes were detected.
// Consumers needing fan-out should subscribe via the NATS publisher instead.
func (w *Watcher) OnChange(fn func(ChangeList)) {
	if fn == nil {
		w.callback.Store(nil)
		return
	}
	w.callback.Store(&fn)
}

// OnError registers the sink for fatal cycle errors. Same single-slot
// semantics as OnChange.
func (w *Watcher) OnError(fn func(error)) {
	if fn == nil {
		w.onError.Store(nil)
		return
	}
	w.onError.Store(&fn)
}

// RunCycle executes one poll cycle and returns its change list. The
// scheduler drives this on its cadence; one-shot scans and tests may call it
// directly. Never call concurrently with itself.
func (w *Watcher) RunCycle(ctx context.Context) (ChangeList, error) {
	start := time.Now()
	changes, err := w.engine.RunCycle(ctx)
	elapsed := time.Since(start)

	w.lastDuration.Store(int64(elapsed))
	if changes.Empty() {
		w.lastChanges.Store(&emptyChanges)
	} else {
		cl := changes
		w.lastChanges.Store(&cl)
	}
	w.recorder.ObserveCycleDuration(elapsed)
	w.recorder.SetTrackedFiles(w.engine.TrackedFiles())

	if err != nil {
		w.recorder.IncCycleOutcome(metrics.OutcomeFailed)
		slog.Warn("Poll cycle aborted",
			logfields.Generation(w.engine.Generation()),
			logfields.Error(err))
		if fn := w.onError.Load(); fn != nil {
			(*fn)(err)
		}
	} else {
		w.recorder.IncCycleOutcome(metrics.OutcomeSuccess)
	}

	// Changes gathered before a mid-cycle failure are still delivered;
	// state updates were not rolled back, so this is their only chance.
	if !changes.Empty() {
		added, changed, removed := changes.Counts()
		w.recorder.AddChanges(added, changed, removed)
		slog.Debug("Changes detected",
			logfields.Generation(w.engine.Generation()),
			logfields.Added(added),
			logfields.Changed(changed),
			logfields.Removed(removed))
		if fn := w.callback.Load(); fn != nil {
			(*fn)(changes)
		}
	}

	return changes, err
}

// Interval returns the configured poll interval.
func (w *Watcher) Interval() time.Duration {
	return w.interval
}

// WatchedDirs returns the fixed watched-directory set in scan order.
func (w *Watcher) WatchedDirs() []string {
	return w.engine.WatchedDirs()
}

// TrackedFiles returns the number of files currently recorded.
func (w *Watcher) TrackedFiles() int {
	return w.engine.TrackedFiles()
}

// LastCycleDuration returns the wall-clock duration of the most recently
// completed cycle, zero before the first cycle finishes.
func (w *Watcher) LastCycleDuration() time.Duration {
	return time.Duration(w.lastDuration.Load())
}

// LastChanges returns the change list of the most recently completed cycle,
// nil before the first cycle or when that cycle saw no changes.
func (w *Watcher) LastChanges() ChangeList {
	if cl := w.lastChanges.Load(); cl != nil {
		return *cl
	}
	return nil
}
