package queue

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"time"

	"github.com/meinhoongagan/healthy-alternative/metrics"
	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl/plain"
	"go.uber.org/zap"
)

const (
	EventAppointmentCreated  = "appointment.created"
	EventReviewCreated       = "review.created"
	EventApplicationReceived = "provider_application.submitted"
	EventUserRegistered      = "user.registered"
)

// Event is the envelope written to the topic.
type Event struct {
	Type       string      `json:"type"`
	OccurredAt time.Time   `json:"occurredAt"`
	Payload    interface{} `json:"payload"`
}

type Producer struct {
	writer *kafka.Writer
	log    *zap.Logger
}

// NewProducer returns nil when no broker is configured. SASL/TLS is enabled
// only when a username is given.
func NewProducer(broker, topic, username, password string, log *zap.Logger) *Producer {
	if broker == "" {
		return nil
	}

	w := &kafka.Writer{
		Addr:         kafka.TCP(broker),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireAll,
		Async:        false,
		WriteTimeout: 10 * time.Second,
	}
	if username != "" {
		w.Transport = &kafka.Transport{
			SASL: plain.Mechanism{Username: username, Password: password},
			TLS:  &tls.Config{},
		}
	}
	return &Producer{writer: w, log: log}
}

// Publish writes one event keyed by key. A nil producer skips silently so
// callers never fail because kafka is absent.
func (p *Producer) Publish(ctx context.Context, eventType, key string, payload interface{}) error {
	if p == nil || p.writer == nil {
		return nil
	}

	value, err := json.Marshal(Event{Type: eventType, OccurredAt: time.Now().UTC(), Payload: payload})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: value,
		Time:  time.Now(),
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(eventType)},
		},
	})
	if err != nil {
		metrics.EventPublishErrors.Inc()
		return err
	}
	p.log.Debug("event published", zap.String("event", eventType), zap.String("key", key))
	return nil
}

func (p *Producer) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
