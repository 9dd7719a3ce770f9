package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	pwerrors "git.home.luguber.info/inful/pollwatch/internal/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	root := t.TempDir()
	path := writeConfig(t, "watch:\n  root_directory: "+root+"\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, root, cfg.Watch.RootDirectory)
	require.False(t, cfg.Watch.IncludeSubdirectories)
	require.Equal(t, DefaultPollIntervalMS, cfg.Watch.PollIntervalMS)
	require.Equal(t, time.Second, cfg.Watch.PollInterval())
	require.Equal(t, "info", cfg.Logging.Level)
	require.Equal(t, "text", cfg.Logging.Format)
}

func TestLoad_EnvExpansion(t *testing.T) {
	root := t.TempDir()
	t.Setenv("POLLWATCH_TEST_ROOT", root)
	path := writeConfig(t, "watch:\n  root_directory: ${POLLWATCH_TEST_ROOT}\n  poll_interval_ms: 250\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, root, cfg.Watch.RootDirectory)
	require.Equal(t, 250*time.Millisecond, cfg.Watch.PollInterval())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	root := t.TempDir()

	valid := func() *Config {
		return &Config{
			Watch:   WatchConfig{RootDirectory: root, PollIntervalMS: 1000},
			Logging: LoggingConfig{Level: "info", Format: "text"},
		}
	}

	t.Run("valid config passes", func(t *testing.T) {
		require.NoError(t, valid().Validate())
	})

	t.Run("missing root rejected", func(t *testing.T) {
		cfg := valid()
		cfg.Watch.RootDirectory = ""
		err := cfg.Validate()
		require.Error(t, err)
		require.True(t, pwerrors.IsCategory(err, pwerrors.CategoryConfig))
	})

	t.Run("nonexistent root rejected", func(t *testing.T) {
		cfg := valid()
		cfg.Watch.RootDirectory = filepath.Join(root, "does-not-exist")
		require.Error(t, cfg.Validate())
	})

	t.Run("root must be a directory", func(t *testing.T) {
		file := filepath.Join(root, "plain.txt")
		require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))
		cfg := valid()
		cfg.Watch.RootDirectory = file
		require.Error(t, cfg.Validate())
	})

	t.Run("non-positive interval rejected", func(t *testing.T) {
		cfg := valid()
		cfg.Watch.PollIntervalMS = 0
		require.Error(t, cfg.Validate())
	})

	t.Run("nats enabled requires url", func(t *testing.T) {
		cfg := valid()
		cfg.Notify.NATS.Enabled = true
		require.Error(t, cfg.Validate())
	})
}

func TestInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	require.NoError(t, Init(path, false))
	require.FileExists(t, path)

	// Second init without force must refuse to overwrite.
	require.Error(t, Init(path, false))
	require.NoError(t, Init(path, true))
}
