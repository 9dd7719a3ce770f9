package config

import (
	"fmt"
	"os"

	pwerrors "git.home.luguber.info/inful/pollwatch/internal/errors"
)

// Validate checks the configuration for completeness and consistency.
// The watch root must exist at load time; the watcher never creates it.
func (c *Config) Validate() error {
	if c.Watch.RootDirectory == "" {
		return pwerrors.ConfigRequired("watch.root_directory")
	}

	info, err := os.Stat(c.Watch.RootDirectory)
	if err != nil {
		return pwerrors.ValidationFailed("watch.root_directory", fmt.Sprintf("not accessible: %v", err))
	}
	if !info.IsDir() {
		return pwerrors.ValidationFailed("watch.root_directory", "not a directory")
	}

	if c.Watch.PollIntervalMS <= 0 {
		return pwerrors.ValidationFailed("watch.poll_interval_ms", "must be a positive integer")
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return pwerrors.ValidationFailed("logging.level", "must be one of debug, info, warn, error")
	}

	switch c.Logging.Format {
	case "text", "json":
	default:
		return pwerrors.ValidationFailed("logging.format", "must be text or json")
	}

	if c.Notify.NATS.Enabled && c.Notify.NATS.URL == "" {
		return pwerrors.ConfigRequired("notify.nats.url")
	}

	return nil
}
