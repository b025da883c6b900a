package mqtt

import (
	"encoding/json"
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	coremetrics "github.com/12dit152/solarsim/core/metrics"
	"github.com/12dit152/solarsim/core/model"
	"github.com/12dit152/solarsim/infra/logger"
)

// snapshotMessage is the JSON payload published per tick.
type snapshotMessage struct {
	SessionID string         `json:"session_id"`
	Mode      string         `json:"mode"`
	Time      time.Time      `json:"time"`
	Snapshot  model.Snapshot `json:"snapshot"`
}

// Publisher sends system snapshots to the broker. It implements the core
// SnapshotSink interface so it can sit behind the same fan-out as the
// metrics sinks.
type Publisher struct {
	cli    pahoClient
	prefix string
	qos    byte
	retain bool
	log    logger.Logger
}

var _ coremetrics.SnapshotSink = (*Publisher)(nil)

// NewPublisher connects to the MQTT broker.
func NewPublisher(cfg Config) (*Publisher, error) {
	cfg.SetDefaults()
	log := logger.New("mqtt-publisher")
	opts := NewClientOptions(cfg)
	opts.OnConnect = func(paho.Client) {
		log.Infof("MQTT connected")
	}
	opts.OnConnectionLost = func(_ paho.Client, err error) {
		log.Errorf("connection lost: %v", err)
	}
	c := newMQTTClient(opts)
	if token := c.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("mqtt connect: %w", token.Error())
	}
	return &Publisher{
		cli:    c,
		prefix: cfg.TopicPrefix,
		qos:    cfg.QoS,
		retain: cfg.Retain,
		log:    log,
	}, nil
}

// RecordSnapshot publishes the snapshot on <prefix>/telemetry/snapshot.
func (p *Publisher) RecordSnapshot(ev coremetrics.SnapshotEvent) error {
	payload, err := json.Marshal(snapshotMessage{
		SessionID: ev.SessionID,
		Mode:      ev.Mode.String(),
		Time:      ev.Time,
		Snapshot:  ev.Snapshot,
	})
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	topic := p.prefix + "/telemetry/snapshot"
	if token := p.cli.Publish(topic, p.qos, p.retain, payload); token.Wait() && token.Error() != nil {
		return fmt.Errorf("publish %s: %w", topic, token.Error())
	}
	return nil
}

// Close disconnects from the broker.
func (p *Publisher) Close() {
	if p.cli != nil && p.cli.IsConnected() {
		p.cli.Disconnect(250)
	}
}
