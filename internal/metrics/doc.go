// Package metrics defines the Recorder abstraction for poll-cycle
// observability plus a Prometheus-backed implementation. The watcher takes a
// Recorder so library users without Prometheus pay nothing (NoopRecorder).
package metrics
