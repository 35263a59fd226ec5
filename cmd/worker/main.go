package main

import (
	"context"
	"encoding/json"
	"log"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/theafricanengineer/mozillians/adapters/basket"
	"github.com/theafricanengineer/mozillians/adapters/event"
	"github.com/theafricanengineer/mozillians/internal/application/service"
	"github.com/theafricanengineer/mozillians/internal/config"
	"github.com/theafricanengineer/mozillians/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	basketClient := basket.NewClient(cfg)

	consumer := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Kafka.Brokers,
		Topic:    event.TopicDeletionEvents,
		GroupID:  "deletion-processor-group",
		MinBytes: 10e3,
		MaxBytes: 10e6,
	})
	defer consumer.Close()

	appLogger.Info("worker listening", zap.String("topic", event.TopicDeletionEvents))

	ctx := context.Background()
	for {
		// FetchMessage leaves the offset alone until we commit, so a
		// crash or a downstream failure redelivers the task.
		msg, err := consumer.FetchMessage(ctx)
		if err != nil {
			appLogger.Error("failed to read message from Kafka", err)
			continue
		}

		var task service.DeletionTask
		if err := json.Unmarshal(msg.Value, &task); err != nil {
			appLogger.Error("failed to unmarshal deletion task, skipping", err,
				zap.String("key", string(msg.Key)))
			commitMessage(consumer, msg, appLogger)
			continue
		}

		appLogger.Info("processing deletion task", zap.String("profile_id", task.ProfileID.String()))

		// The profile is anonymized by now; the email in the payload is
		// the only copy left. Failures stay uncommitted so the message
		// is retried.
		if err := basketClient.Unsubscribe(ctx, task.Email); err != nil {
			appLogger.Error("failed to unsubscribe from basket", err,
				zap.String("profile_id", task.ProfileID.String()))
			continue
		}

		commitMessage(consumer, msg, appLogger)
	}
}

func commitMessage(consumer *kafka.Reader, msg kafka.Message, log logger.Logger) {
	if err := consumer.CommitMessages(context.Background(), msg); err != nil {
		log.Error("failed to commit message", err)
	}
}
