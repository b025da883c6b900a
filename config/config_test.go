package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
simulation:
  tick_interval_ms: 500
  acceleration: 60
  initial_soc: 0.8
  mode: off_grid
system:
  panel_count: 3
  panel_wattage_w: 300
web:
  enabled: true
  addr: ":9000"
mqtt:
  enabled: true
  broker: tcp://broker:1883
`

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadYAML(t *testing.T) {
	cfg, err := Load(writeConfig(t, "config.yaml", sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, 500, cfg.Simulation.TickIntervalMS)
	assert.Equal(t, 60.0, cfg.Simulation.Acceleration)
	assert.Equal(t, 0.8, cfg.Simulation.InitialSoC)
	assert.Equal(t, "off_grid", cfg.Simulation.Mode)
	assert.Equal(t, 3, cfg.System.PanelCount)
	assert.Equal(t, 300.0, cfg.System.PanelWattage)
	assert.Equal(t, ":9000", cfg.Web.Addr)
	assert.Equal(t, "tcp://broker:1883", cfg.MQTT.Broker)
	// Fields absent from the file fall back to defaults.
	assert.Equal(t, 24.0, cfg.System.BatteryVoltage)
	assert.Equal(t, "solarsim", cfg.MQTT.TopicPrefix)
}

func TestLoadJSON(t *testing.T) {
	cfg, err := Load(writeConfig(t, "config.json", `{"simulation":{"mode":"on_grid"}}`))
	require.NoError(t, err)
	assert.Equal(t, "on_grid", cfg.Simulation.Mode)
	assert.Equal(t, 1000, cfg.Simulation.TickIntervalMS)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("SOLARSIM_WEB__ADDR", ":7070")
	t.Setenv("SOLARSIM_SIMULATION__MODE", "hybrid")

	cfg, err := Load(writeConfig(t, "config.yaml", sampleYAML))
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.Web.Addr)
	assert.Equal(t, "hybrid", cfg.Simulation.Mode)
}

func TestLoadUnsupportedFormat(t *testing.T) {
	_, err := Load(writeConfig(t, "config.toml", "x = 1"))
	assert.ErrorContains(t, err, "unsupported config format")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"bad mode", "simulation:\n  mode: island\n"},
		{"soc above one", "simulation:\n  initial_soc: 1.5\n"},
		{"negative panels", "system:\n  panel_count: -1\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, "config.yaml", tc.yaml))
			assert.Error(t, err)
		})
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Simulation.Validate())
	require.NoError(t, cfg.System.Validate())
	assert.Equal(t, "hybrid", cfg.Simulation.Mode)
	assert.Equal(t, 10.0, cfg.Simulation.Acceleration)
	assert.Equal(t, ":8080", cfg.Web.Addr)
}
