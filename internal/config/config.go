// Package config loads and validates the pollwatch YAML configuration.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Watch   WatchConfig   `yaml:"watch"`
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
	Notify  NotifyConfig  `yaml:"notify"`
	Journal JournalConfig `yaml:"journal"`
}

// WatchConfig configures the polling watcher itself.
type WatchConfig struct {
	RootDirectory         string `yaml:"root_directory"`
	IncludeSubdirectories bool   `yaml:"include_subdirectories"`
	PollIntervalMS        int    `yaml:"poll_interval_ms"`
}

// PollInterval returns the poll interval as a duration.
func (w WatchConfig) PollInterval() time.Duration {
	return time.Duration(w.PollIntervalMS) * time.Millisecond
}

// LoggingConfig controls slog output.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// MetricsConfig controls the Prometheus endpoint in daemon mode.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Listen  string `yaml:"listen"` // host:port for /metrics
}

// NotifyConfig controls the NATS change publisher.
type NotifyConfig struct {
	NATS NATSConfig `yaml:"nats"`
}

// NATSConfig holds NATS connection settings.
type NATSConfig struct {
	Enabled bool   `yaml:"enabled"`
	URL     string `yaml:"url"`
	Subject string `yaml:"subject"`
}

// JournalConfig controls the SQLite change journal.
type JournalConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"` // ":memory:" or file path
}

// DefaultPollIntervalMS is applied when poll_interval_ms is unset.
const DefaultPollIntervalMS = 1000

// Load loads configuration from the specified file.
func Load(configPath string) (*Config, error) {
	// Overlay .env/.env.local without overriding existing process env.
	for _, envPath := range []string{".env", ".env.local"} {
		if _, err := os.Stat(envPath); err == nil {
			_ = godotenv.Load(envPath)
			break
		}
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("configuration file not found: %s", configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Expand environment variables in the YAML content
	expandedData := os.ExpandEnv(string(data))

	var config Config
	if err := yaml.Unmarshal([]byte(expandedData), &config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.Watch.PollIntervalMS == 0 {
		c.Watch.PollIntervalMS = DefaultPollIntervalMS
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
	if c.Metrics.Enabled && c.Metrics.Listen == "" {
		c.Metrics.Listen = ":9301"
	}
	if c.Notify.NATS.Enabled && c.Notify.NATS.Subject == "" {
		c.Notify.NATS.Subject = "pollwatch.changes"
	}
	if c.Journal.Enabled && c.Journal.Path == "" {
		c.Journal.Path = "pollwatch.db"
	}
}

// Init creates a new configuration file with example content
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}

	example := `# pollwatch configuration
watch:
  root_directory: /var/data/incoming
  include_subdirectories: true
  poll_interval_ms: 1000

logging:
  level: info
  format: text

metrics:
  enabled: false
  listen: ":9301"

notify:
  nats:
    enabled: false
    url: nats://localhost:4222
    subject: pollwatch.changes

journal:
  enabled: false
  path: pollwatch.db
`

	if err := os.WriteFile(configPath, []byte(example), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
