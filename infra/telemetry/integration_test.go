//go:build integration

package telemetry

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/fleetcompute/config"
	"github.com/kilianp07/fleetcompute/core/model"
	infmqtt "github.com/kilianp07/fleetcompute/infra/mqtt"
	"github.com/kilianp07/fleetcompute/internal/testutil"
)

func TestPublisherAgainstMosquitto(t *testing.T) {
	if !testutil.DockerAvailable() {
		t.Skip("docker not available")
	}
	ctx := context.Background()
	broker, cleanup, err := testutil.StartMosquitto(ctx)
	require.NoError(t, err)
	defer cleanup()

	got := make(chan []byte, 1)
	sub := paho.NewClient(paho.NewClientOptions().AddBroker(broker).SetClientID("sub"))
	tok := sub.Connect()
	tok.Wait()
	require.NoError(t, tok.Error())
	defer sub.Disconnect(100)
	tok = sub.Subscribe("it/ercot/current", 1, func(_ paho.Client, m paho.Message) {
		select {
		case got <- m.Payload():
		default:
		}
	})
	tok.Wait()
	require.NoError(t, tok.Error())

	cli, err := infmqtt.NewPahoClient(infmqtt.Config{Broker: broker, ClientID: "pub", QoS: map[string]byte{"snapshot": 1}})
	require.NoError(t, err)
	defer cli.Disconnect()

	p, err := NewPublisher(config.PublisherConfig{Enabled: true, IntervalSeconds: 1, TopicPrefix: "it"}, cli, nil, prometheus.NewRegistry())
	require.NoError(t, err)
	require.NoError(t, p.PublishOnce(time.Now().UTC()))

	select {
	case payload := <-got:
		var r model.PriceReading
		require.NoError(t, json.Unmarshal(payload, &r))
		require.NotEmpty(t, r.Trend)
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for price snapshot")
	}
}
