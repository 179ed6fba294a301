package config

import (
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/madocalc/internal/buff"
	"github.com/udisondev/madocalc/internal/testutil"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_ShippedConfig(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", DefaultPath))
	require.NoError(t, err)

	modes, err := cfg.BuffModes()
	require.NoError(t, err)
	assert.Equal(t, buff.DefaultModes().Strings(), modes.Strings())

	r, ok := cfg.Range("baseAttack_dmgCalc")
	require.True(t, ok)
	assert.Equal(t, Range{Min: 0, Max: 8000}, r)
}

func TestLoad_OverridesOnTopOfDefaults(t *testing.T) {
	path := testutil.WriteFile(t, "madocalc.yaml", `
log_level: debug
store_path: /tmp/store.yaml
modes:
  attackBuffs: total
ranges:
  baseAttack_dmgCalc:
    min: 100
    max: 9000
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "/tmp/store.yaml", cfg.StorePath)

	modes, err := cfg.BuffModes()
	require.NoError(t, err)
	assert.Equal(t, buff.ModeTotal, modes.Of(buff.AttackBuffs))
	assert.Equal(t, buff.ModeTotal, modes.Of(buff.CritDamage), "untouched keys keep their default")
	assert.Equal(t, buff.ModeSplit, modes.Of(buff.DamageTaken))

	r, ok := cfg.Range("baseAttack_dmgCalc")
	require.True(t, ok)
	assert.Equal(t, Range{Min: 100, Max: 9000}, r)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bad yaml", "log_level: [oops"},
		{"unknown mode key", "modes:\n  luck: total\n"},
		{"bad mode value", "modes:\n  critDamage: both\n"},
		{"inverted range", "ranges:\n  x:\n    min: 5\n    max: 1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(testutil.WriteFile(t, "c.yaml", tt.body))
			assert.Error(t, err)
		})
	}
}

func TestApplyEnv(t *testing.T) {
	cfg := Default()
	env := map[string]string{EnvLogLevel: "warn", EnvStore: "other.yaml"}
	cfg.applyEnv(func(k string) string { return env[k] })

	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "other.yaml", cfg.StorePath)
}

func TestLoadFromEnv(t *testing.T) {
	path := testutil.WriteFile(t, "m.yaml", "log_level: error\n")
	t.Setenv(EnvConfig, path)
	t.Setenv(EnvStore, "env-store.yaml")

	cfg, err := LoadFromEnv(DefaultPath)
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.LogLevel)
	assert.Equal(t, "env-store.yaml", cfg.StorePath)
}

func TestRange_Defaults(t *testing.T) {
	cfg := Default()

	r, ok := cfg.Range("characterSpeed_avCalc")
	require.True(t, ok)
	assert.Equal(t, Range{Min: 1, Max: 2000}, r)

	_, ok = cfg.Range("unknown")
	assert.False(t, ok)
}

func TestCheckInput(t *testing.T) {
	cfg := Default()

	assert.True(t, cfg.CheckInput("baseAttack_dmgCalc", "5000"))
	assert.False(t, cfg.CheckInput("baseAttack_dmgCalc", "7000"))
	assert.True(t, cfg.CheckInput("baseAttack_dmgCalc", "garbage"), "unparsable input is left to the engine")
	assert.True(t, cfg.CheckInput("unknown", "1e9"))
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLogLevel(tt.in), tt.in)
	}
}
