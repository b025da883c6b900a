// Package scenario replays a scripted day through the power-flow engine
// and summarizes the outcome. Scenarios are YAML files pairing a system
// configuration with keyframed conditions.
package scenario

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/12dit152/solarsim/core/model"
)

// Keyframe fixes the conditions from a given hour until the next keyframe.
type Keyframe struct {
	Hour         float64 `yaml:"hour"`
	SunIntensity float64 `yaml:"sun_intensity"`
	ACLoadW      float64 `yaml:"ac_load_w"`
}

// Scenario is a scripted day.
type Scenario struct {
	Name        string             `yaml:"name"`
	Description string             `yaml:"description,omitempty"`
	Config      model.SystemConfig `yaml:"config"`
	Mode        string             `yaml:"mode"`
	InitialSoC  float64            `yaml:"initial_soc"`
	StepMinutes int                `yaml:"step_minutes"`
	Keyframes   []Keyframe         `yaml:"keyframes"`
}

// Load reads a scenario from a YAML file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	sc.setDefaults()
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

func (s *Scenario) setDefaults() {
	if s.StepMinutes == 0 {
		s.StepMinutes = 15
	}
	if s.Mode == "" {
		s.Mode = "hybrid"
	}
	if s.Config == (model.SystemConfig{}) {
		s.Config = model.DefaultSystemConfig()
	}
	sort.SliceStable(s.Keyframes, func(i, j int) bool {
		return s.Keyframes[i].Hour < s.Keyframes[j].Hour
	})
}

// Validate checks the scenario is runnable.
func (s *Scenario) Validate() error {
	if err := s.Config.Validate(); err != nil {
		return fmt.Errorf("scenario %q: %w", s.Name, err)
	}
	if _, err := model.ParseMode(s.Mode); err != nil {
		return fmt.Errorf("scenario %q: %w", s.Name, err)
	}
	if s.StepMinutes <= 0 {
		return fmt.Errorf("scenario %q: step_minutes must be positive", s.Name)
	}
	if s.InitialSoC < 0 || s.InitialSoC > 1 {
		return fmt.Errorf("scenario %q: initial_soc must be in [0,1]", s.Name)
	}
	if len(s.Keyframes) == 0 {
		return fmt.Errorf("scenario %q: at least one keyframe required", s.Name)
	}
	for _, k := range s.Keyframes {
		if k.Hour < 0 || k.Hour >= 24 {
			return fmt.Errorf("scenario %q: keyframe hour %v out of range", s.Name, k.Hour)
		}
	}
	return nil
}

// at returns the conditions active at the given hour: the last keyframe at
// or before it, or the first keyframe before the script starts.
func (s *Scenario) at(hour float64) Keyframe {
	active := s.Keyframes[0]
	for _, k := range s.Keyframes {
		if k.Hour > hour {
			break
		}
		active = k
	}
	return active
}
