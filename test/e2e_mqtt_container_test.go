package test

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	coremetrics "github.com/12dit152/solarsim/core/metrics"
	"github.com/12dit152/solarsim/core/model"
	"github.com/12dit152/solarsim/core/sim"
	"github.com/12dit152/solarsim/infra/mqtt"
)

func waitForMQTTReady(broker string, timeout time.Duration) error {
	opts := paho.NewClientOptions().AddBroker(broker).SetClientID("probe")
	deadline := time.Now().Add(timeout)
	var lastErr error
	for time.Now().Before(deadline) {
		cli := paho.NewClient(opts)
		token := cli.Connect()
		token.Wait()
		if token.Error() == nil {
			cli.Disconnect(100)
			return nil
		}
		lastErr = token.Error()
		time.Sleep(100 * time.Millisecond)
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("timeout waiting for broker")
	}
	return lastErr
}

func startMosquitto(ctx context.Context, t *testing.T) (tc.Container, string) {
	t.Helper()
	conf := `listener 1883
allow_anonymous true
persistence false
log_dest stdout
`
	dir := t.TempDir()
	path := filepath.Join(dir, "mosquitto.conf")
	if err := os.WriteFile(path, []byte(conf), 0644); err != nil {
		t.Fatalf("write conf: %v", err)
	}

	req := tc.ContainerRequest{
		Image:        "eclipse-mosquitto:2.0",
		ExposedPorts: []string{"1883/tcp"},
		WaitingFor:   wait.ForListeningPort("1883/tcp"),
		Files: []tc.ContainerFile{
			{
				HostFilePath:      path,
				ContainerFilePath: "/mosquitto/config/mosquitto.conf",
				FileMode:          0644,
			},
		},
	}
	cont, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	if err != nil {
		t.Fatalf("container start: %v", err)
	}
	host, err := cont.Host(ctx)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	port, err := cont.MappedPort(ctx, "1883")
	if err != nil {
		t.Fatalf("port: %v", err)
	}
	broker := fmt.Sprintf("tcp://%s:%s", host, port.Port())
	if err := waitForMQTTReady(broker, 5*time.Second); err != nil {
		t.Logf("mosquitto not ready at %s: %v", broker, err)
		t.Skip("Mosquitto not ready after retries")
	}
	return cont, broker
}

func TestTelemetryPublishWithMQTTContainer(t *testing.T) {
	if _, err := exec.LookPath("docker"); err != nil {
		t.Skip("docker not installed")
	}
	ctx := context.Background()

	cont, broker := startMosquitto(ctx, t)
	defer func() { _ = cont.Terminate(ctx) }()

	received := make(chan []byte, 1)
	subOpts := paho.NewClientOptions().AddBroker(broker).SetClientID("renderer")
	subCli := paho.NewClient(subOpts)
	if token := subCli.Connect(); token.Wait() && token.Error() != nil {
		t.Fatalf("subscriber connect: %v", token.Error())
	}
	defer subCli.Disconnect(100)
	if token := subCli.Subscribe("solarsim/telemetry/snapshot", 1, func(_ paho.Client, m paho.Message) {
		select {
		case received <- m.Payload():
		default:
		}
	}); token.Wait() && token.Error() != nil {
		t.Fatalf("subscribe: %v", token.Error())
	}

	pub, err := mqtt.NewPublisher(mqtt.Config{Broker: broker, ClientID: "sim-e2e", QoS: 1})
	if err != nil {
		t.Fatalf("publisher: %v", err)
	}
	defer pub.Close()

	cfg := model.DefaultSystemConfig()
	snap := sim.Evaluate(model.Inputs{
		SunIntensity:    1,
		TimeOfDay:       12,
		ACLoadW:         500,
		Mode:            model.ModeHybrid,
		BatteryEnergyWh: cfg.MaxBatteryWh() / 2,
	}, cfg)

	if err := pub.RecordSnapshot(coremetrics.SnapshotEvent{
		SessionID: "e2e",
		Mode:      model.ModeHybrid,
		Time:      time.Now(),
		Snapshot:  snap,
	}); err != nil {
		t.Fatalf("record snapshot: %v", err)
	}

	select {
	case payload := <-received:
		var msg struct {
			SessionID string         `json:"session_id"`
			Mode      string         `json:"mode"`
			Snapshot  model.Snapshot `json:"snapshot"`
		}
		if err := json.Unmarshal(payload, &msg); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if msg.SessionID != "e2e" {
			t.Errorf("session_id: got %q", msg.SessionID)
		}
		if msg.Mode != "hybrid" {
			t.Errorf("mode: got %q", msg.Mode)
		}
		if msg.Snapshot.GenerationW != snap.GenerationW {
			t.Errorf("generation: got %v want %v", msg.Snapshot.GenerationW, snap.GenerationW)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no telemetry message received")
	}
}
