package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/catchment-param-service/internal/config"
	"github.com/couchcryptid/catchment-param-service/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// Writer produces computed subcatchments to a Kafka topic.
// It implements pipeline.BatchLoader.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured sink topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaSinkTopic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// LoadBatch serializes and publishes a batch of subcatchments in a single
// WriteMessages call. Messages are keyed by subcatchment ID so replays land
// on the same partition.
func (w *Writer) LoadBatch(ctx context.Context, results []domain.Subcatchment) error {
	if len(results) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(results))
	for i := range results {
		msg, err := serializeToMessage(results[i])
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("write %d subcatchments: %w", len(msgs), err)
	}
	w.logger.Debug("subcatchments published", "count", len(msgs), "topic", w.writer.Topic)
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a Subcatchment into a Kafka message.
func serializeToMessage(sc domain.Subcatchment) (kafkago.Message, error) {
	data, err := json.Marshal(sc)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize subcatchment: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(sc.ID),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "catchment_type", Value: []byte(sc.CatchmentType)},
			{Key: "processed_at", Value: []byte(sc.ProcessedAt.Format(time.RFC3339))},
		},
	}, nil
}
