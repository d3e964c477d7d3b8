package mqtt

// Publisher sends JSON encoded payloads to MQTT topics.
type Publisher interface {
	// Publish encodes payload as JSON and sends it to topic.
	Publish(topic string, payload any) error
	// Disconnect closes the underlying connection.
	Disconnect()
}
