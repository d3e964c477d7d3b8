package mqtt

import (
	"encoding/json"
	"fmt"
	"sync"

	coremqtt "github.com/kilianp07/fleetcompute/core/mqtt"
)

// Publisher mirrors the core mqtt.Publisher interface.
type Publisher = coremqtt.Publisher

// Message is a payload recorded by MockPublisher.
type Message struct {
	Topic   string
	Payload []byte
}

// MockPublisher records published messages in memory. It is used in tests
// and when no broker is configured.
type MockPublisher struct {
	mu        sync.Mutex
	messages  []Message
	FailTopic map[string]bool
}

// NewMockPublisher creates a new MockPublisher.
func NewMockPublisher() *MockPublisher {
	return &MockPublisher{FailTopic: make(map[string]bool)}
}

// Publish records the encoded payload or returns an error if configured to fail.
func (m *MockPublisher) Publish(topic string, payload any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailTopic[topic] {
		return fmt.Errorf("publish failed")
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	m.messages = append(m.messages, Message{Topic: topic, Payload: data})
	return nil
}

func (m *MockPublisher) Disconnect() {}

// Messages returns a copy of the recorded messages.
func (m *MockPublisher) Messages() []Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Message(nil), m.messages...)
}

// Topic returns the payloads recorded for topic.
func (m *MockPublisher) Topic(topic string) [][]byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out [][]byte
	for _, msg := range m.messages {
		if msg.Topic == topic {
			out = append(out, msg.Payload)
		}
	}
	return out
}
