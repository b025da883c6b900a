package mqtt

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coremetrics "github.com/12dit152/solarsim/core/metrics"
	"github.com/12dit152/solarsim/core/model"
)

type fakeToken struct {
	err error
}

func (t *fakeToken) Wait() bool                     { return true }
func (t *fakeToken) WaitTimeout(time.Duration) bool { return true }
func (t *fakeToken) Done() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}
func (t *fakeToken) Error() error { return t.err }

type fakeClient struct {
	connected    bool
	connectErr   error
	publishErr   error
	disconnected bool
	topics       []string
	payloads     [][]byte
	qos          []byte
	retained     []bool
}

func (f *fakeClient) IsConnected() bool { return f.connected }

func (f *fakeClient) Connect() paho.Token {
	if f.connectErr == nil {
		f.connected = true
	}
	return &fakeToken{err: f.connectErr}
}

func (f *fakeClient) Disconnect(uint) {
	f.connected = false
	f.disconnected = true
}

func (f *fakeClient) Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token {
	f.topics = append(f.topics, topic)
	f.payloads = append(f.payloads, payload.([]byte))
	f.qos = append(f.qos, qos)
	f.retained = append(f.retained, retained)
	return &fakeToken{err: f.publishErr}
}

func withFakeClient(t *testing.T, f *fakeClient) {
	t.Helper()
	orig := newMQTTClient
	newMQTTClient = func(*paho.ClientOptions) pahoClient { return f }
	t.Cleanup(func() { newMQTTClient = orig })
}

func TestPublisherRecordSnapshot(t *testing.T) {
	fake := &fakeClient{}
	withFakeClient(t, fake)

	pub, err := NewPublisher(Config{Broker: "tcp://localhost:1883", QoS: 1, Retain: true})
	require.NoError(t, err)

	ev := coremetrics.SnapshotEvent{
		SessionID: "s1",
		Mode:      model.ModeOffGrid,
		Time:      time.Unix(100, 0).UTC(),
		Snapshot:  model.Snapshot{GenerationW: 480, BatteryPercent: 42},
	}
	require.NoError(t, pub.RecordSnapshot(ev))

	require.Len(t, fake.topics, 1)
	assert.Equal(t, "solarsim/telemetry/snapshot", fake.topics[0])
	assert.Equal(t, byte(1), fake.qos[0])
	assert.True(t, fake.retained[0])

	var msg snapshotMessage
	require.NoError(t, json.Unmarshal(fake.payloads[0], &msg))
	assert.Equal(t, "s1", msg.SessionID)
	assert.Equal(t, "off_grid", msg.Mode)
	assert.Equal(t, 480.0, msg.Snapshot.GenerationW)
}

func TestPublisherTopicPrefix(t *testing.T) {
	fake := &fakeClient{}
	withFakeClient(t, fake)

	pub, err := NewPublisher(Config{Broker: "tcp://localhost:1883", TopicPrefix: "plant-7"})
	require.NoError(t, err)
	require.NoError(t, pub.RecordSnapshot(coremetrics.SnapshotEvent{}))
	assert.Equal(t, "plant-7/telemetry/snapshot", fake.topics[0])
}

func TestPublisherConnectError(t *testing.T) {
	fake := &fakeClient{connectErr: errors.New("refused")}
	withFakeClient(t, fake)

	_, err := NewPublisher(Config{Broker: "tcp://localhost:1883"})
	assert.ErrorContains(t, err, "mqtt connect")
}

func TestPublisherPublishError(t *testing.T) {
	fake := &fakeClient{publishErr: errors.New("timeout")}
	withFakeClient(t, fake)

	pub, err := NewPublisher(Config{Broker: "tcp://localhost:1883"})
	require.NoError(t, err)
	assert.Error(t, pub.RecordSnapshot(coremetrics.SnapshotEvent{}))
}

func TestPublisherClose(t *testing.T) {
	fake := &fakeClient{}
	withFakeClient(t, fake)

	pub, err := NewPublisher(Config{Broker: "tcp://localhost:1883"})
	require.NoError(t, err)
	pub.Close()
	assert.True(t, fake.disconnected)
}

func TestConfigSetDefaults(t *testing.T) {
	cfg := Config{}
	cfg.SetDefaults()
	assert.Equal(t, "solarsim", cfg.TopicPrefix)
	assert.NotEmpty(t, cfg.ClientID)
	assert.Len(t, cfg.ClientID, len("solarsim-")+8)
}
