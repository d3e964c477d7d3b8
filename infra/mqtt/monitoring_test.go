package mqtt

import (
	"fmt"
	"testing"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	coremon "github.com/kilianp07/fleetcompute/core/monitoring"
)

type recordMonitor struct {
	err  error
	tags map[string]string
}

func (r *recordMonitor) CaptureException(err error, tags map[string]string) {
	r.err = err
	r.tags = tags
}
func (r *recordMonitor) Recover()            {}
func (r *recordMonitor) Flush(time.Duration) {}

func TestPublishErrorCaptured(t *testing.T) {
	mc := &mockClient{publishErrs: []error{fmt.Errorf("net fail"), fmt.Errorf("net fail")}}
	newMQTTClient = func(o *paho.ClientOptions) pahoClient { mc.opts = o; return mc }
	defer func() { newMQTTClient = func(opts *paho.ClientOptions) pahoClient { return paho.NewClient(opts) } }()
	mon := &recordMonitor{}
	coremon.Init(mon)
	defer coremon.Init(coremon.NopMonitor{})
	cfg := Config{Broker: "tcp://localhost:1883", ClientID: "id", MaxRetries: 1, BackoffMS: 1}
	cli, err := NewPahoClient(cfg)
	if err != nil {
		t.Fatalf("client: %v", err)
	}
	if err := cli.Publish("fleetcompute/jobs/created", 1); err == nil {
		t.Fatalf("expected error")
	}
	if mon.err == nil {
		t.Fatalf("error not captured")
	}
	if mon.tags["topic"] != "fleetcompute/jobs/created" || mon.tags["module"] != "mqtt" {
		t.Fatalf("tags not set")
	}
}

func TestMockPublisher(t *testing.T) {
	m := NewMockPublisher()
	m.FailTopic["bad"] = true
	if err := m.Publish("bad", 1); err == nil {
		t.Fatalf("expected failure")
	}
	if err := m.Publish("good", map[string]int{"a": 1}); err != nil {
		t.Fatalf("publish: %v", err)
	}
	got := m.Topic("good")
	if len(got) != 1 || string(got[0]) != `{"a":1}` {
		t.Fatalf("unexpected payloads %q", got)
	}
	if len(m.Messages()) != 1 {
		t.Fatalf("expected one message")
	}
}
