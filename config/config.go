package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	coremetrics "github.com/12dit152/solarsim/core/metrics"
	"github.com/12dit152/solarsim/core/model"
	"github.com/12dit152/solarsim/infra/mqtt"
	"github.com/12dit152/solarsim/infra/web"
)

// Config is the service configuration.
type Config struct {
	Simulation SimulationConfig   `json:"simulation"`
	System     model.SystemConfig `json:"system"`
	Web        web.Config         `json:"web"`
	Metrics    coremetrics.Config `json:"metrics"`
	MQTT       mqtt.Config        `json:"mqtt"`
}

// Default returns a runnable configuration without a file.
func Default() *Config {
	cfg := &Config{System: model.DefaultSystemConfig()}
	cfg.Simulation.SetDefaults()
	cfg.Web.SetDefaults()
	cfg.Metrics.SetDefaults()
	cfg.MQTT.SetDefaults()
	return cfg
}

// Load reads the configuration from a YAML or JSON file with optional
// SOLARSIM_ environment overrides (SOLARSIM_WEB__ADDR=... maps to
// web.addr).
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	if err := k.Load(env.Provider("SOLARSIM_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "solarsim_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	cfg := &Config{System: model.DefaultSystemConfig()}
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.Simulation.SetDefaults()
	cfg.Web.SetDefaults()
	cfg.Metrics.SetDefaults()
	cfg.MQTT.SetDefaults()
	if err := cfg.Simulation.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.System.Validate(); err != nil {
		return nil, err
	}
	if _, err := model.ParseMode(cfg.Simulation.Mode); err != nil {
		return nil, err
	}
	return cfg, nil
}
