package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, log.InfoLevel, cfg.Level())
	assert.Equal(t, filepath.Join("output", "solution-path.txt"), cfg.OutputPath(cfg.PathFile))
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	file := filepath.Join(t.TempDir(), "planner.yaml")
	yml := `
output_dir: /tmp/plans
log_level: debug
record_runs: false
server:
  address: "127.0.0.1:9090"
  read_timeout: 3s
`
	require.NoError(t, os.WriteFile(file, []byte(yml), 0o644))

	cfg, err := Load(file)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/plans", cfg.OutputDir)
	assert.Equal(t, log.DebugLevel, cfg.Level())
	assert.False(t, cfg.RecordRuns)
	assert.Equal(t, "127.0.0.1:9090", cfg.Server.Address)
	assert.Equal(t, 3*time.Second, cfg.Server.ReadTimeout)
	// untouched fields keep their defaults
	assert.Equal(t, "config-space.txt", cfg.ConfigSpaceFile)
	assert.Equal(t, 4_000_000, cfg.Server.MaxCells)
}

func TestLoadRejectsInvalid(t *testing.T) {
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("log_level: loud\nsimplify_epsilon: -1\n"), 0o644))
	_, err := Load(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log_level")
	assert.Contains(t, err.Error(), "simplify_epsilon")

	garbled := filepath.Join(dir, "garbled.yaml")
	require.NoError(t, os.WriteFile(garbled, []byte("server: [\n"), 0o644))
	_, err = Load(garbled)
	assert.Error(t, err)
}

func TestExpandHome(t *testing.T) {
	got, err := ExpandHome("/abs/runs.db")
	require.NoError(t, err)
	assert.Equal(t, "/abs/runs.db", got)

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	got, err = ExpandHome("~/.grid-planner/runs.db")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".grid-planner", "runs.db"), got)
}
