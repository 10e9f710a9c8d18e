package events

import (
	"encoding/json"

	"go.uber.org/zap"

	"ontwatch/internal/domain/ont"
	"ontwatch/internal/logger"
	pkgmqtt "ontwatch/pkg/mqtt"
)

// StatusChange is the event emitted when a terminal crosses a liveness
// tier. Delivery is best effort; the ledger remains the durable record.
type StatusChange struct {
	DeviceID   int        `json:"device_id"`
	DeviceName string     `json:"device_name"`
	OldStatus  ont.Status `json:"old_status"`
	NewStatus  ont.Status `json:"new_status"`
	Timestamp  string     `json:"timestamp"`
}

type Publisher interface {
	PublishStatusChange(event StatusChange)
}

// Noop is used when MQTT is disabled.
type Noop struct{}

func (Noop) PublishStatusChange(StatusChange) {}

// MQTTPublisher relays status changes to a broker topic. A failed
// publish is logged and dropped.
type MQTTPublisher struct {
	client *pkgmqtt.Client
	topic  string
}

func NewMQTTPublisher(client *pkgmqtt.Client, topic string) *MQTTPublisher {
	return &MQTTPublisher{client: client, topic: topic}
}

func (p *MQTTPublisher) PublishStatusChange(event StatusChange) {
	payload, err := json.Marshal(event)
	if err != nil {
		logger.Warn("Failed to encode status event", zap.Error(err))
		return
	}

	if err := p.client.Publish(p.topic, 0, false, payload); err != nil {
		logger.Warn("Failed to publish status event",
			zap.String("topic", p.topic),
			zap.Int("device_id", event.DeviceID),
			zap.Error(err),
		)
	}
}
