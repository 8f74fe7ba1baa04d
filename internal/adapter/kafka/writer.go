package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/couchcryptid/storm-data-cyclone-service/internal/config"
	"github.com/couchcryptid/storm-data-cyclone-service/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// Writer produces cyclone records to a Kafka topic.
// It implements tracker.Publisher.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaTopic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// Publish serializes and writes all records in a single WriteMessages call.
// Records are keyed by cyclone code so every snapshot of a cyclone lands on
// the same partition.
func (w *Writer) Publish(ctx context.Context, records []domain.CycloneRecord) error {
	if len(records) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(records))
	for i := range records {
		msg, err := serializeToMessage(records[i])
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("write %d records: %w", len(msgs), err)
	}
	w.logger.Debug("published cyclone records", "records", len(msgs), "topic", w.writer.Topic)
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a CycloneRecord into a Kafka message.
func serializeToMessage(rec domain.CycloneRecord) (kafkago.Message, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize cyclone record: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(rec.Code),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "warning_number", Value: []byte(strconv.Itoa(rec.WarningNumber))},
			{Key: "polled_at", Value: []byte(rec.PolledAt.Format(time.RFC3339))},
		},
	}, nil
}
