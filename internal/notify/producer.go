// server/internal/notify/producer.go
package notify

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"
)

// Writer là phần của kafka.Writer mà producer cần; test thay bằng fake.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// EventProducer đẩy sự kiện nghiệp vụ (ví dụ dispatch.completed) lên Kafka.
type EventProducer struct {
	writer Writer
}

func NewEventProducer(broker, topic string) *EventProducer {
	w := &kafka.Writer{
		Addr:     kafka.TCP(broker),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}
	return &EventProducer{writer: w}
}

// NewEventProducerWithWriter dùng cho test.
func NewEventProducerWithWriter(w Writer) *EventProducer {
	return &EventProducer{writer: w}
}

func (p *EventProducer) Publish(ctx context.Context, key string, value interface{}) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: payload,
	})
}

func (p *EventProducer) Close() error {
	return p.writer.Close()
}
