package metrics

import (
	"context"
	"math"
	"net/http"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/12dit152/solarsim/core/metrics"
	"github.com/12dit152/solarsim/infra/logger"
)

// InfluxSink writes system snapshots to an InfluxDB instance using the
// official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a new sink configured for the given InfluxDB
// endpoint.
func NewInfluxSink(url, token, org, bucket string) *InfluxSink {
	base := strings.TrimSuffix(url, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(org, bucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback pings the InfluxDB instance and returns a
// NopSink if the health check fails.
func NewInfluxSinkWithFallback(url, token, org, bucket string) coremetrics.SnapshotSink {
	sink := NewInfluxSink(url, token, org, bucket)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// RecordSnapshot writes the snapshot as a line-protocol point.
func (s *InfluxSink) RecordSnapshot(ev coremetrics.SnapshotEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	snap := ev.Snapshot
	p := write.NewPointWithMeasurement("system_snapshot").
		AddTag("session_id", ev.SessionID).
		AddTag("mode", ev.Mode.String()).
		AddField("generation_w", round3(snap.GenerationW)).
		AddField("power_at_controller_w", round3(snap.PowerAtControllerW)).
		AddField("power_to_battery_w", round3(snap.PowerToBatteryW)).
		AddField("battery_percent", round3(snap.BatteryPercent)).
		AddField("battery_energy_wh", round3(snap.BatteryEnergyWh)).
		AddField("net_battery_flow_w", round3(snap.NetBatteryFlowW)).
		AddField("grid_import_w", round3(snap.GridImportW)).
		AddField("grid_export_w", round3(snap.GridExportW)).
		AddField("wasted_power_w", round3(snap.WastedPowerW)).
		AddField("ac_load_w", round3(snap.ACLoadW)).
		AddField("grid_active", snap.GridActive).
		SetTime(ev.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// Close releases the underlying client.
func (s *InfluxSink) Close() { s.client.Close() }

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
