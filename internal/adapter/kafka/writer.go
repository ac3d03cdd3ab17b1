package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/temperature-heatmap/internal/config"
	"github.com/couchcryptid/temperature-heatmap/internal/domain"
)

// Writer publishes month buckets to a Kafka topic.
// It implements pipeline.BucketPublisher.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured bucket topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:                   kafkago.TCP(cfg.KafkaBrokers...),
		Topic:                  cfg.KafkaTopic,
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireAll,
		AllowAutoTopicCreation: true,
	}
	return &Writer{writer: w, logger: logger}
}

// PublishBuckets writes one message per bucket in a single WriteMessages
// call. Messages are keyed by YYYY-MM so a month always lands on the same
// partition.
func (w *Writer) PublishBuckets(ctx context.Context, buckets []domain.MonthBucket, generatedAt time.Time) error {
	if len(buckets) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(buckets))
	for i := range buckets {
		msg, err := serializeToMessage(buckets[i], generatedAt)
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("publish %d buckets to %s: %w", len(msgs), w.writer.Topic, err)
	}
	w.logger.Debug("buckets published", "count", len(msgs), "topic", w.writer.Topic)
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a MonthBucket into a Kafka message.
func serializeToMessage(b domain.MonthBucket, generatedAt time.Time) (kafkago.Message, error) {
	data, err := json.Marshal(b)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize bucket %s: %w", b.Key(), err)
	}
	return kafkago.Message{
		Key:   []byte(b.Key()),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "year", Value: []byte(strconv.Itoa(b.Year))},
			{Key: "month", Value: []byte(strconv.Itoa(b.Month + 1))},
			{Key: "generated_at", Value: []byte(generatedAt.UTC().Format(time.RFC3339))},
		},
	}, nil
}
