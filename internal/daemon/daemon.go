// Package daemon wires the watcher to its runtime services: the re-arming
// scheduler, the Prometheus endpoint, the SQLite change journal, the NATS
// publisher, and configuration hot-reload.
package daemon

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/pollwatch/internal/config"
	"git.home.luguber.info/inful/pollwatch/internal/journal"
	"git.home.luguber.info/inful/pollwatch/internal/logfields"
	"git.home.luguber.info/inful/pollwatch/internal/metrics"
	"git.home.luguber.info/inful/pollwatch/internal/notify"
	"git.home.luguber.info/inful/pollwatch/internal/watcher"
)

// Daemon runs the watcher continuously.
type Daemon struct {
	mu         sync.RWMutex
	cfg        *config.Config
	configPath string

	watcher   *watcher.Watcher
	scheduler *Scheduler
	recorder  metrics.Recorder

	journal   journal.Store
	publisher *notify.Publisher

	metricsServer *http.Server
	configWatcher *ConfigWatcher

	// logLevel, when set, lets config reloads adjust verbosity at runtime.
	logLevel *slog.LevelVar

	runCtx context.Context
}

// Options tweak daemon construction beyond the config file.
type Options struct {
	// LogLevel is the level var backing the process logger; config reloads
	// update it when set.
	LogLevel *slog.LevelVar
}

// New creates a daemon from configuration. Pass configPath to enable
// hot-reload of the config file; empty disables it.
func New(cfg *config.Config, configPath string, opts Options) (*Daemon, error) {
	d := &Daemon{
		cfg:        cfg,
		configPath: configPath,
		logLevel:   opts.LogLevel,
	}

	var recorder metrics.Recorder = metrics.NoopRecorder{}
	if cfg.Metrics.Enabled {
		registry := prom.NewRegistry()
		recorder = metrics.NewPrometheusRecorder(registry)
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.HTTPHandler(registry))
		mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
		})
		d.metricsServer = &http.Server{
			Addr:              cfg.Metrics.Listen,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
	}
	d.recorder = recorder

	w, err := watcher.New(watcher.Config{
		RootDirectory:         cfg.Watch.RootDirectory,
		IncludeSubdirectories: cfg.Watch.IncludeSubdirectories,
		PollInterval:          cfg.Watch.PollInterval(),
		Recorder:              recorder,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	d.watcher = w

	scheduler, err := NewScheduler()
	if err != nil {
		return nil, err
	}
	d.scheduler = scheduler

	if cfg.Journal.Enabled {
		store, err := journal.NewSQLiteStore(cfg.Journal.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to open change journal: %w", err)
		}
		d.journal = store
	}

	if cfg.Notify.NATS.Enabled {
		publisher, err := notify.NewPublisher(cfg.Notify.NATS)
		if err != nil {
			return nil, fmt.Errorf("failed to create notifier: %w", err)
		}
		d.publisher = publisher
	}

	if configPath != "" {
		cw, err := NewConfigWatcher(configPath, d)
		if err != nil {
			return nil, err
		}
		d.configWatcher = cw
	}

	return d, nil
}

// Watcher exposes the underlying watcher, e.g. for callback registration.
func (d *Daemon) Watcher() *watcher.Watcher {
	return d.watcher
}

// Start arms the poll schedule and launches auxiliary services. It returns
// immediately; cycles run on the scheduler's goroutine.
func (d *Daemon) Start(ctx context.Context) error {
	d.runCtx = ctx

	slog.Info("Starting watcher daemon",
		logfields.Directory(d.cfg.Watch.RootDirectory),
		logfields.Interval(d.cfg.Watch.PollInterval().String()),
		slog.Int("watched_dirs", len(d.watcher.WatchedDirs())))

	if err := d.scheduler.ScheduleRearming("poll-cycle", d.cfg.Watch.PollInterval(), d.runCycle); err != nil {
		return err
	}
	d.scheduler.Start(ctx)

	if d.metricsServer != nil {
		go func() {
			slog.Info("Serving metrics", slog.String("listen", d.metricsServer.Addr))
			if err := d.metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				slog.Error("Metrics server failed", logfields.Error(err))
			}
		}()
	}

	if d.configWatcher != nil {
		if err := d.configWatcher.Start(ctx); err != nil {
			return err
		}
	}

	return nil
}

// runCycle executes one poll cycle and fans its result out to the journal
// and the publisher. A fatal cycle error is logged and surfaced through the
// watcher's error sink, but never stops scheduling: the next cycle is still
// armed, retrying the scan.
func (d *Daemon) runCycle() {
	cycleID := uuid.NewString()
	at := time.Now()

	changes, err := d.watcher.RunCycle(d.runCtx)
	if err != nil {
		slog.Error("Poll cycle failed, retrying next cycle",
			logfields.CycleID(cycleID),
			logfields.Error(err))
	}
	if changes.Empty() {
		return
	}

	added, changed, removed := changes.Counts()
	slog.Info("Cycle detected changes",
		logfields.CycleID(cycleID),
		logfields.Added(added),
		logfields.Changed(changed),
		logfields.Removed(removed),
		logfields.DurationMS(float64(d.watcher.LastCycleDuration().Nanoseconds())/1e6))

	if d.journal != nil {
		if err := d.journal.AppendCycle(d.runCtx, cycleID, at, changes); err != nil {
			slog.Error("Failed to journal cycle", logfields.CycleID(cycleID), logfields.Error(err))
		}
	}
	if d.publisher != nil {
		if err := d.publisher.PublishCycle(cycleID, at, changes); err != nil {
			slog.Error("Failed to publish cycle", logfields.CycleID(cycleID), logfields.Error(err))
		}
	}
}

// Stop shuts everything down. Future cycles are no longer scheduled; an
// in-flight cycle completes first.
func (d *Daemon) Stop(ctx context.Context) error {
	slog.Info("Stopping watcher daemon")

	if d.configWatcher != nil {
		if err := d.configWatcher.Stop(ctx); err != nil {
			slog.Error("Error stopping config watcher", logfields.Error(err))
		}
	}

	if err := d.scheduler.Stop(ctx); err != nil {
		return err
	}

	if d.metricsServer != nil {
		if err := d.metricsServer.Shutdown(ctx); err != nil {
			slog.Error("Error shutting down metrics server", logfields.Error(err))
		}
	}
	if d.publisher != nil {
		d.publisher.Close()
	}
	if d.journal != nil {
		if err := d.journal.Close(); err != nil {
			slog.Error("Error closing change journal", logfields.Error(err))
		}
	}

	slog.Info("Watcher daemon stopped")
	return nil
}

// GetConfig returns the currently active configuration.
func (d *Daemon) GetConfig() *config.Config {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.cfg
}

// ReloadConfig applies a hot-reloaded configuration. Only the poll interval
// and log level can change at runtime; the watched topology is fixed at
// construction, so root or recursion changes require a restart.
func (d *Daemon) ReloadConfig(ctx context.Context, newCfg *config.Config) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if newCfg.Watch.RootDirectory != d.cfg.Watch.RootDirectory ||
		newCfg.Watch.IncludeSubdirectories != d.cfg.Watch.IncludeSubdirectories {
		return fmt.Errorf("watch topology changes require a daemon restart")
	}

	if newCfg.Watch.PollIntervalMS != d.cfg.Watch.PollIntervalMS {
		if err := d.scheduler.SetInterval(newCfg.Watch.PollInterval()); err != nil {
			return err
		}
		slog.Info("Poll interval updated", logfields.Interval(newCfg.Watch.PollInterval().String()))
	}

	if d.logLevel != nil && newCfg.Logging.Level != d.cfg.Logging.Level {
		d.logLevel.Set(parseLevel(newCfg.Logging.Level))
		slog.Info("Log level updated", slog.String("level", newCfg.Logging.Level))
	}

	d.cfg = newCfg
	return nil
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
