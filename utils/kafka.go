package utils

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/sreeram023/event-approval-backend/config"
)

var kafkaWriter *kafka.Writer

// InitializeKafka sets up the shared writer for the notification topic.
// Kafka is optional: when no brokers are configured the writer stays nil and
// publishers fall back to direct delivery.
func InitializeKafka(cfg *config.Config) {
	if cfg.KafkaBrokers == "" {
		fmt.Println("⚠️ KAFKA_BROKERS not set, notification queue disabled")
		return
	}

	kafkaWriter = &kafka.Writer{
		Addr:         kafka.TCP(strings.Split(cfg.KafkaBrokers, ",")...),
		Topic:        cfg.KafkaTopic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
		WriteTimeout: 10 * time.Second,
	}
	fmt.Println("✅ Kafka writer initialized for topic", cfg.KafkaTopic)
}

// KafkaEnabled reports whether the notification queue is available.
func KafkaEnabled() bool {
	return kafkaWriter != nil
}

// PublishMessage writes one message to the notification topic.
func PublishMessage(ctx context.Context, key string, value []byte) error {
	if kafkaWriter == nil {
		return fmt.Errorf("kafka not initialized")
	}
	return kafkaWriter.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: value,
	})
}

// NewKafkaReader builds a consumer for the notification topic.
func NewKafkaReader(cfg *config.Config) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:  strings.Split(cfg.KafkaBrokers, ","),
		Topic:    cfg.KafkaTopic,
		GroupID:  "approval-notifier",
		MinBytes: 1,
		MaxBytes: 10e6,
	})
}

// CloseKafka flushes and closes the writer.
func CloseKafka() error {
	if kafkaWriter == nil {
		return nil
	}
	return kafkaWriter.Close()
}
