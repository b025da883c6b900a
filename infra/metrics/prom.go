package metrics

import (
	coremetrics "github.com/12dit152/solarsim/core/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

// PromSink exposes the latest system snapshot as Prometheus gauges.
type PromSink struct {
	ticks          *prometheus.CounterVec
	generation     prometheus.Gauge
	batteryPercent prometheus.Gauge
	netFlow        prometheus.Gauge
	gridImport     prometheus.Gauge
	gridExport     prometheus.Gauge
	wasted         prometheus.Gauge
	wireLoss       *prometheus.GaugeVec
	wireUnsafe     *prometheus.GaugeVec
}

// NewPromSink registers simulation metrics on the default Prometheus
// registerer. The Prometheus server should be started separately using
// cfg.PrometheusPort.
func NewPromSink(cfg coremetrics.Config) (*PromSink, error) {
	return NewPromSinkWithRegistry(cfg, prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(cfg coremetrics.Config, reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	s := &PromSink{
		ticks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "solarsim_ticks_total",
			Help: "Total number of simulation ticks evaluated",
		}, []string{"mode"}),
		generation: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "solarsim_generation_watts",
			Help: "Instantaneous solar array output",
		}),
		batteryPercent: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "solarsim_battery_percent",
			Help: "Battery state of charge",
		}),
		netFlow: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "solarsim_net_battery_flow_watts",
			Help: "Signed power into the battery (positive = charging)",
		}),
		gridImport: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "solarsim_grid_import_watts",
			Help: "Power imported from the utility grid",
		}),
		gridExport: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "solarsim_grid_export_watts",
			Help: "Power exported to the utility grid",
		}),
		wasted: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "solarsim_wasted_power_watts",
			Help: "Generated power with nowhere to go",
		}),
		wireLoss: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "solarsim_wire_loss_watts",
			Help: "Resistive loss per wire segment",
		}, []string{"segment"}),
		wireUnsafe: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "solarsim_wire_unsafe",
			Help: "1 when the segment current exceeds its rated ampacity",
		}, []string{"segment"}),
	}

	collectors := map[string]prometheus.Collector{
		"ticks":           s.ticks,
		"generation":      s.generation,
		"battery_percent": s.batteryPercent,
		"net_flow":        s.netFlow,
		"grid_import":     s.gridImport,
		"grid_export":     s.gridExport,
		"wasted":          s.wasted,
		"wire_loss":       s.wireLoss,
		"wire_unsafe":     s.wireUnsafe,
	}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				return nil, err
			}
		}
	}
	return s, nil
}

// RecordSnapshot publishes the snapshot's headline quantities.
func (s *PromSink) RecordSnapshot(ev coremetrics.SnapshotEvent) error {
	snap := ev.Snapshot
	s.ticks.WithLabelValues(ev.Mode.String()).Inc()
	s.generation.Set(snap.GenerationW)
	s.batteryPercent.Set(snap.BatteryPercent)
	s.netFlow.Set(snap.NetBatteryFlowW)
	s.gridImport.Set(snap.GridImportW)
	s.gridExport.Set(snap.GridExportW)
	s.wasted.Set(snap.WastedPowerW)

	segments := map[string]struct {
		loss float64
		safe bool
	}{
		"solar":    {snap.SolarWire.PowerLossW, snap.SolarWire.IsSafe},
		"battery":  {snap.BatteryWire.PowerLossW, snap.BatteryWire.IsSafe},
		"inverter": {snap.InverterWire.PowerLossW, snap.InverterWire.IsSafe},
		"load":     {snap.LoadWire.PowerLossW, snap.LoadWire.IsSafe},
	}
	for name, seg := range segments {
		s.wireLoss.WithLabelValues(name).Set(seg.loss)
		unsafe := 0.0
		if !seg.safe {
			unsafe = 1
		}
		s.wireUnsafe.WithLabelValues(name).Set(unsafe)
	}
	return nil
}
