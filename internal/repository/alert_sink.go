package repository

import (
	"context"

	"SpacWatch/internal/domain/models"
	"SpacWatch/internal/domain/repository"
	pkgkafka "SpacWatch/pkg/kafka"
)

// KafkaAlertSink implements AlertSink for Kafka.
type KafkaAlertSink struct {
	producer *pkgkafka.Producer
	topic    string
}

// NewKafkaAlertSink creates Kafka alert sink.
func NewKafkaAlertSink(producer *pkgkafka.Producer, topic string) repository.AlertSink {
	return &KafkaAlertSink{producer: producer, topic: topic}
}

func (s *KafkaAlertSink) PublishAlerts(ctx context.Context, records []models.AlertRecord) error {
	if len(records) == 0 {
		return nil
	}
	msgs := make([]pkgkafka.Message, len(records))
	for i, r := range records {
		msgs[i] = pkgkafka.Message{
			Key: []byte(r.Ticker),
			Value: map[string]interface{}{
				"ticker":     r.Ticker,
				"trade_date": r.TradeDate,
				"details":    r.Details,
			},
		}
	}
	return s.producer.PublishBatch(ctx, s.topic, msgs)
}

func (s *KafkaAlertSink) Close() error {
	if s.producer != nil {
		return s.producer.Close()
	}
	return nil
}
