package event

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"

	"github.com/theafricanengineer/mozillians/internal/application/service"
	"github.com/theafricanengineer/mozillians/internal/config"
)

// TopicDeletionEvents carries basket-removal tasks scheduled during account
// deletion. The worker (cmd/worker) consumes it.
const TopicDeletionEvents = "directory.deletions"

type KafkaProducerClient struct {
	DeletionEventsWriter *kafka.Writer
}

func NewKafkaProducerClient(cfg config.Config) (*KafkaProducerClient, error) {
	brokers := cfg.Kafka.Brokers
	if len(brokers) == 0 {
		return nil, fmt.Errorf("config Kafka brokers not found")
	}

	deletionWriter := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    TopicDeletionEvents,
		Balancer: &kafka.LeastBytes{},
	}

	return &KafkaProducerClient{DeletionEventsWriter: deletionWriter}, nil
}

// EnqueueDeletion publishes a basket-removal task keyed by profile id.
func (c *KafkaProducerClient) EnqueueDeletion(ctx context.Context, task service.DeletionTask) error {
	payload, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("failed to encode deletion task: %w", err)
	}

	err = c.DeletionEventsWriter.WriteMessages(ctx, kafka.Message{
		Key:   []byte(task.ProfileID.String()),
		Value: payload,
	})
	if err != nil {
		return fmt.Errorf("failed to publish deletion task: %w", err)
	}
	return nil
}

func (c *KafkaProducerClient) Close() {
	if c.DeletionEventsWriter != nil {
		c.DeletionEventsWriter.Close()
	}
}
