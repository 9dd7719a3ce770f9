package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInitCmd(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "pollwatch.yaml")
	root := &CLI{Config: configPath}

	cmd := &InitCmd{}
	require.NoError(t, cmd.Run(&Global{}, root))
	require.FileExists(t, configPath)

	// Refuses to overwrite without --force.
	require.Error(t, cmd.Run(&Global{}, root))

	cmd.Force = true
	require.NoError(t, cmd.Run(&Global{}, root))
}

func TestScanCmd(t *testing.T) {
	dir := t.TempDir()
	watchRoot := filepath.Join(dir, "root")
	require.NoError(t, os.MkdirAll(watchRoot, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(watchRoot, "a.txt"), []byte("x"), 0o644))

	configPath := filepath.Join(dir, "pollwatch.yaml")
	cfg := "watch:\n  root_directory: " + watchRoot + "\n  poll_interval_ms: 10\n"
	require.NoError(t, os.WriteFile(configPath, []byte(cfg), 0o644))

	root := &CLI{Config: configPath}

	t.Run("rejects zero cycles", func(t *testing.T) {
		cmd := &ScanCmd{Cycles: 0}
		require.Error(t, cmd.Run(&Global{}, root))
	})

	t.Run("baseline plus one cycle", func(t *testing.T) {
		cmd := &ScanCmd{Cycles: 2}
		require.NoError(t, cmd.Run(&Global{}, root))
	})

	t.Run("missing config", func(t *testing.T) {
		cmd := &ScanCmd{Cycles: 1}
		require.Error(t, cmd.Run(&Global{}, &CLI{Config: filepath.Join(dir, "nope.yaml")}))
	})
}
