package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"courier-track/internal/notify"

	"github.com/IBM/sarama"
)

// Producer publishes courier status events to Kafka. It implements
// notify.Notifier, so the HTTP service can hand delivery off to the worker.
type Producer struct {
	producer sarama.SyncProducer
	topic    string
}

// NewProducer creates a Kafka producer. Returns nil when brokers or topic
// are not configured; a nil *Producer publishes nothing.
func NewProducer(brokers []string, topic string) (*Producer, error) {
	if len(brokers) == 0 || strings.TrimSpace(topic) == "" {
		return nil, nil
	}

	cfg := sarama.NewConfig()
	cfg.Producer.Return.Successes = true
	cfg.Producer.RequiredAcks = sarama.WaitForAll

	p, err := sarama.NewSyncProducer(brokers, cfg)
	if err != nil {
		return nil, err
	}
	return &Producer{producer: p, topic: topic}, nil
}

// StatusChanged publishes the event keyed by courier id, so all events for
// one courier land on the same partition in order.
func (p *Producer) StatusChanged(_ context.Context, ev notify.StatusEvent) error {
	if p == nil {
		return nil
	}

	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal status event %s: %w", ev.EventID, err)
	}

	_, _, err = p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(fmt.Sprintf("%d", ev.CourierID)),
		Value: sarama.ByteEncoder(payload),
	})
	if err != nil {
		return fmt.Errorf("publish status event %s: %w", ev.EventID, err)
	}
	return nil
}

// Close shuts the underlying producer down.
func (p *Producer) Close() error {
	if p == nil {
		return nil
	}
	return p.producer.Close()
}
