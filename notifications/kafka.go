package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/Dosada05/tournament-bracket/models"
)

// MessageWriter is the part of *kafka.Writer the notifier uses.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaNotifier publishes one message per notification, keyed by recipient
// so a recipient's notifications stay ordered within a partition.
type KafkaNotifier struct {
	writer MessageWriter
	topic  string
	logger *slog.Logger
}

func NewKafkaNotifier(brokers, topic string, logger *slog.Logger) *KafkaNotifier {
	w := &kafka.Writer{
		Addr:         kafka.TCP(strings.Split(brokers, ",")...),
		Balancer:     &kafka.Hash{},
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
	}
	logger.Info("kafka notifier initialized", slog.String("brokers", brokers), slog.String("topic", topic))
	return NewKafkaNotifierWithWriter(w, topic, logger)
}

func NewKafkaNotifierWithWriter(w MessageWriter, topic string, logger *slog.Logger) *KafkaNotifier {
	return &KafkaNotifier{writer: w, topic: topic, logger: logger}
}

func (n *KafkaNotifier) Enqueue(ctx context.Context, batch []models.Notification) error {
	if len(batch) == 0 {
		return nil
	}
	msgs := make([]kafka.Message, 0, len(batch))
	for _, note := range batch {
		value, err := json.Marshal(note)
		if err != nil {
			return fmt.Errorf("failed to encode notification %s: %w", note.ID, err)
		}
		msgs = append(msgs, kafka.Message{
			Topic: n.topic,
			Key:   []byte(note.RecipientID),
			Value: value,
		})
	}
	if err := n.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("failed to publish %d notifications: %w", len(msgs), err)
	}
	return nil
}

func (n *KafkaNotifier) Close() error {
	if n.writer != nil {
		return n.writer.Close()
	}
	return nil
}
