package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

const (
	TopicUserEvents    = "user_events"
	TopicCartEvents    = "cart_events"
	TopicOrderEvents   = "order_events"
	TopicProductEvents = "product_events"
)

type Producer struct {
	writer *kafka.Writer
}

func NewProducer(brokers []string) *Producer {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
		BatchTimeout:           10 * time.Millisecond,
	}
	return &Producer{writer: w}
}

// PublishEvent serializes the event and writes it to the topic. A nil
// producer is a no-op so the services can run without a broker (tests,
// local dev).
func (p *Producer) PublishEvent(ctx context.Context, topic, key string, event map[string]any) error {
	if p == nil || p.writer == nil {
		return nil
	}

	event["event_id"] = uuid.NewString()
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("kafka: json.Marshal failed: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := p.writer.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: data,
	}); err != nil {
		return fmt.Errorf("kafka: write failed: %w", err)
	}
	return nil
}

func (p *Producer) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
