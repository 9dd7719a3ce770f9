package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyCycleID    = "cycle_id"
	KeyGeneration = "generation"
	KeyDirectory  = "directory"
	KeyFile       = "file"
	KeyChanges    = "changes"
	KeyAdded      = "added"
	KeyChanged    = "changed"
	KeyRemoved    = "removed"
	KeyDurationMS = "duration_ms"
	KeyInterval   = "interval"
	KeySubject    = "subject"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func CycleID(id string) slog.Attr     { return slog.String(KeyCycleID, id) }
func Generation(g uint64) slog.Attr   { return slog.Uint64(KeyGeneration, g) }
func Directory(d string) slog.Attr    { return slog.String(KeyDirectory, d) }
func File(f string) slog.Attr         { return slog.String(KeyFile, f) }
func Changes(n int) slog.Attr         { return slog.Int(KeyChanges, n) }
func Added(n int) slog.Attr           { return slog.Int(KeyAdded, n) }
func Changed(n int) slog.Attr         { return slog.Int(KeyChanged, n) }
func Removed(n int) slog.Attr         { return slog.Int(KeyRemoved, n) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Interval(s string) slog.Attr     { return slog.String(KeyInterval, s) }
func Subject(s string) slog.Attr      { return slog.String(KeySubject, s) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
