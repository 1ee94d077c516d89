package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/khoahotran/portfolio-api/internal/application/service"
	"github.com/khoahotran/portfolio-api/internal/config"
	"github.com/khoahotran/portfolio-api/pkg/logger"
)

type KafkaProducerClient struct {
	MediaEventsWriter   *kafka.Writer
	MessageEventsWriter *kafka.Writer
	logger              logger.Logger
}

var _ service.EventPublisher = (*KafkaProducerClient)(nil)

func NewKafkaProducerClient(cfg config.Config, log logger.Logger) (*KafkaProducerClient, error) {
	brokers := cfg.Kafka.Brokers
	if len(brokers) == 0 {
		return nil, fmt.Errorf("config Kafka brokers not found")
	}

	mediaWriter := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  cfg.Kafka.MediaTopic,
		Balancer:               &kafka.LeastBytes{},
		BatchTimeout:           50 * time.Millisecond,
		AllowAutoTopicCreation: true,
	}

	messageWriter := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  cfg.Kafka.MessageTopic,
		Balancer:               &kafka.LeastBytes{},
		BatchTimeout:           50 * time.Millisecond,
		AllowAutoTopicCreation: true,
	}

	log.Info("Initialize Kafka Producers successfully.")

	return &KafkaProducerClient{
		MediaEventsWriter:   mediaWriter,
		MessageEventsWriter: messageWriter,
		logger:              log,
	}, nil
}

func (c *KafkaProducerClient) PublishMediaOrphaned(ctx context.Context, e service.MediaOrphanedEvent) error {
	return publish(ctx, c.MediaEventsWriter, e.Handle, e)
}

func (c *KafkaProducerClient) PublishMessageReceived(ctx context.Context, e service.MessageReceivedEvent) error {
	return publish(ctx, c.MessageEventsWriter, e.MessageID.String(), e)
}

func publish(ctx context.Context, w *kafka.Writer, key string, payload any) error {
	value, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	if err := w.WriteMessages(ctx, kafka.Message{Key: []byte(key), Value: value}); err != nil {
		return fmt.Errorf("write to %s: %w", w.Topic, err)
	}
	return nil
}

func (c *KafkaProducerClient) Close() {
	if c.MediaEventsWriter != nil {
		_ = c.MediaEventsWriter.Close()
	}
	if c.MessageEventsWriter != nil {
		_ = c.MessageEventsWriter.Close()
	}
	c.logger.Info("Closed Kafka Producers")
}
