// Package kafka publishes order notifications to a Kafka topic so downstream
// channels (push, e-mail, in-app inbox) can deliver them.
package kafka

import (
	"context"
	"encoding/json"
	"time"

	"fulfillment/internal/core/ports"

	"github.com/segmentio/kafka-go"
)

// notificationMessage is the wire format of one published notification.
type notificationMessage struct {
	OrderID     string    `json:"order_id"`
	RecipientID *string   `json:"recipient_id,omitempty"`
	Event       string    `json:"event"`
	Message     string    `json:"message"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// NotificationPublisher implements ports.NotificationPublisher on a Kafka
// topic. Messages are keyed by order ID so all notifications of one order
// land on the same partition in commit order.
type NotificationPublisher struct {
	writer *kafka.Writer
	topic  string
}

// NewNotificationPublisher creates a publisher writing to the given topic.
func NewNotificationPublisher(brokers []string, topic string) *NotificationPublisher {
	return &NotificationPublisher{
		topic: topic,
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.LeastBytes{},
			AllowAutoTopicCreation: true,
			BatchTimeout:           100 * time.Millisecond,
		},
	}
}

// Publish writes one notification to the topic.
func (p *NotificationPublisher) Publish(ctx context.Context, notification ports.Notification) error {
	msg := notificationMessage{
		OrderID:    notification.OrderID.String(),
		Event:      notification.Event,
		Message:    notification.Message,
		OccurredAt: notification.OccurredAt,
	}
	if notification.RecipientID != nil {
		recipient := notification.RecipientID.String()
		msg.RecipientID = &recipient
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(msg.OrderID),
		Value: data,
	})
}

// Close flushes and closes the underlying writer.
func (p *NotificationPublisher) Close() error {
	return p.writer.Close()
}
