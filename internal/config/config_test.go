package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	require.NoError(t, err)

	assert.Equal(t, ":3000", cfg.Server.Addr)
	assert.Equal(t, "data", cfg.Data.Dir)
	assert.Equal(t, 60, cfg.Sweep.IntervalSeconds)
	assert.Equal(t, 90, cfg.Challenge.GridSize)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_ParsesYAMLAndFillsGaps(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	doc := `
server:
  addr: ":8080"
data:
  dir: /var/lib/scheduler
sweep:
  interval_seconds: 15
  run_on_load: true
cors:
  allowed_origins:
    - http://localhost:4200
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "/var/lib/scheduler", cfg.Data.Dir)
	assert.Equal(t, 15, cfg.Sweep.IntervalSeconds)
	assert.True(t, cfg.Sweep.RunOnLoad)
	assert.Equal(t, []string{"http://localhost:4200"}, cfg.CORS.AllowedOrigins)
	// unspecified sections still get defaults
	assert.Equal(t, 90, cfg.Challenge.GridSize)
	assert.Equal(t, "09:00", cfg.Schedule.DefaultSlotStart)
}

func TestLoad_RejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("server: [unclosed"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	cfg := &Config{}
	cfg.ApplyDefaults()

	t.Setenv("SCHEDULER_ADDR", ":9999")
	t.Setenv("SCHEDULER_DATA_DIR", "/tmp/sched")
	t.Setenv("SCHEDULER_SWEEP_INTERVAL_SECONDS", "5")
	cfg.ApplyEnv()

	assert.Equal(t, ":9999", cfg.Server.Addr)
	assert.Equal(t, "/tmp/sched", cfg.Data.Dir)
	assert.Equal(t, 5, cfg.Sweep.IntervalSeconds)

	// PORT wins over SCHEDULER_ADDR, matching the original deployment
	t.Setenv("PORT", "3001")
	cfg.ApplyEnv()
	assert.Equal(t, ":3001", cfg.Server.Addr)

	// non-numeric PORT is ignored
	t.Setenv("PORT", "abc")
	t.Setenv("SCHEDULER_ADDR", ":7777")
	cfg.ApplyEnv()
	assert.Equal(t, ":7777", cfg.Server.Addr)
}
