// Package app wires the engine, the battery integrator and the external
// surfaces (web, metrics, MQTT telemetry) into a running service.
package app

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/12dit152/solarsim/config"
	"github.com/12dit152/solarsim/core/battery"
	coremetrics "github.com/12dit152/solarsim/core/metrics"
	"github.com/12dit152/solarsim/core/model"
	"github.com/12dit152/solarsim/core/sun"
	"github.com/12dit152/solarsim/infra/logger"
	"github.com/12dit152/solarsim/infra/metrics"
	"github.com/12dit152/solarsim/infra/mqtt"
	"github.com/12dit152/solarsim/infra/web"
	"github.com/12dit152/solarsim/internal/eventbus"
)

// Service owns the mutable simulation state. The tick loop is its single
// writer; the web API and readers get consistent copies under the mutex.
type Service struct {
	cfg  *config.Config
	log  logger.Logger
	bank *battery.Bank
	bus  *eventbus.Bus[coremetrics.SnapshotEvent]
	sink coremetrics.SnapshotSink

	web       *web.Server
	publisher *mqtt.Publisher
	sessionID string

	mu       sync.RWMutex
	system   model.SystemConfig
	controls model.Controls
	snapshot model.Snapshot
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")

	mode, err := model.ParseMode(cfg.Simulation.Mode)
	if err != nil {
		return nil, fmt.Errorf("simulation mode: %w", err)
	}
	pos := sun.FromAngle(cfg.Simulation.SunAngle)

	s := &Service{
		cfg:       cfg,
		log:       logg,
		bank:      battery.NewBank(cfg.System, cfg.Simulation.InitialSoC, cfg.Simulation.Acceleration),
		bus:       eventbus.New[coremetrics.SnapshotEvent](),
		sessionID: uuid.NewString(),
		system:    cfg.System,
		controls: model.Controls{
			SunIntensity: pos.Intensity,
			TimeOfDay:    pos.TimeOfDay,
			ACLoadW:      cfg.Simulation.ACLoadW,
			Mode:         mode,
		},
	}

	var sinks []coremetrics.SnapshotSink
	if cfg.Metrics.PrometheusEnabled {
		sink, err := metrics.NewPromSink(cfg.Metrics)
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
	}
	if cfg.Metrics.InfluxEnabled {
		sinks = append(sinks, metrics.NewInfluxSinkWithFallback(
			cfg.Metrics.InfluxURL, cfg.Metrics.InfluxToken,
			cfg.Metrics.InfluxOrg, cfg.Metrics.InfluxBucket))
	}
	if cfg.MQTT.Enabled {
		pub, err := mqtt.NewPublisher(cfg.MQTT)
		if err != nil {
			return nil, fmt.Errorf("mqtt publisher: %w", err)
		}
		s.publisher = pub
		sinks = append(sinks, pub)
	}
	switch len(sinks) {
	case 0:
		s.sink = coremetrics.NopSink{}
	case 1:
		s.sink = sinks[0]
	default:
		s.sink = metrics.NewMultiSink(sinks...)
	}

	if cfg.Web.Enabled {
		s.web = web.NewServer(cfg.Web, s)
	}
	return s, nil
}

// Run starts the service and blocks until the context is canceled.
func (s *Service) Run(ctx context.Context) error {
	if s.cfg.Metrics.PrometheusEnabled {
		go func() {
			addr := ":" + s.cfg.Metrics.PrometheusPort
			if err := metrics.StartPromServer(ctx, addr); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}
	metrics.StartCollector(ctx, s.bus, s.sink, s.log)
	if s.web != nil {
		s.startBroadcast(ctx)
		go func() {
			if err := s.web.Run(ctx); err != nil {
				s.log.Errorf("web server: %v", err)
			}
		}()
	}
	s.log.Infof("session %s started in %s mode", s.sessionID, s.controls.Mode)
	s.runLoop(ctx)
	return nil
}

// Close releases external connections.
func (s *Service) Close() error {
	s.bus.Close()
	if s.publisher != nil {
		s.publisher.Close()
	}
	return nil
}

// SessionID identifies this simulation run.
func (s *Service) SessionID() string { return s.sessionID }

// Snapshot returns the most recent engine output.
func (s *Service) Snapshot() model.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// Config returns the current system configuration.
func (s *Service) Config() model.SystemConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.system
}

// SetConfig replaces the system configuration after validation. The stored
// battery energy is re-clamped so a smaller capacity cannot report more
// than 100%.
func (s *Service) SetConfig(cfg model.SystemConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	s.system = cfg
	s.mu.Unlock()
	s.bank.SetConfig(cfg)
	return nil
}

// Controls returns the current user controls.
func (s *Service) Controls() model.Controls {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.controls
}

// SetControls replaces the user controls. They take effect on the next
// tick.
func (s *Service) SetControls(c model.Controls) {
	s.mu.Lock()
	s.controls = c
	s.mu.Unlock()
}

// SetControlAngle applies the slider angle through the sun mapping.
func (s *Service) SetControlAngle(angleDeg float64) {
	pos := sun.FromAngle(angleDeg)
	s.mu.Lock()
	s.controls.SunIntensity = pos.Intensity
	s.controls.TimeOfDay = pos.TimeOfDay
	s.mu.Unlock()
}
