package kafka

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/IBM/sarama"
	"moveit/internal/pkg/config"
	"moveit/pkg/logger"
	retrierconfig "moveit/pkg/retrier"
	"moveit/pkg/retrier/backoff_adapter"
)

const (
	initialInterval = 1 * time.Second
	maxInterval     = 30 * time.Second
	maxElapsedTime  = 2 * time.Minute
	randomization   = 0.5
	multiplier      = 2
)

var ErrTopicNotFound = errors.New("kafka topic not found")

type Consumer struct {
	log     logger.Logger
	client  sarama.ConsumerGroup
	topics  []string
	handler sarama.ConsumerGroupHandler
}

func NewSaramaConfig(
	versionStr string,
	autoCommit bool,
	initialOffset int64,
	rebalanceStrategy sarama.BalanceStrategy,
) (*sarama.Config, error) {
	cfg := sarama.NewConfig()

	version, err := sarama.ParseKafkaVersion(versionStr)
	if err != nil {
		return nil, fmt.Errorf("parse kafka version %q: %w", versionStr, err)
	}
	cfg.Version = version

	cfg.Consumer.Offsets.Initial = initialOffset
	cfg.Consumer.Offsets.AutoCommit.Enable = autoCommit
	cfg.Consumer.Group.Rebalance.Strategy = rebalanceStrategy

	return cfg, nil
}

// Brokers разбирает KAFKA_BROKERS ("host1:9092, host2:9092").
func Brokers(raw string) []string {
	brokers := make([]string, 0, 4)
	for _, broker := range strings.Split(raw, ",") {
		broker = strings.TrimSpace(broker)
		if broker != "" {
			brokers = append(brokers, broker)
		}
	}
	return brokers
}

// NewConsumer подключается к группе cfg.ConsumerGroup на топик cfg.Topic и
// ждет доступности брокеров с экспоненциальным backoff.
func NewConsumer(ctx context.Context, log logger.Logger, cfg *config.Kafka, handler sarama.ConsumerGroupHandler) (*Consumer, error) {
	brokers := Brokers(cfg.Brokers)
	if len(brokers) == 0 {
		return nil, errors.New("kafka brokers are not configured")
	}
	groupID := cfg.ConsumerGroup
	topics := []string{cfg.Topic}

	saramaConfig, err := NewSaramaConfig(
		cfg.Sarama.Version,
		cfg.Sarama.ConsumerOffsetsAutocommit,
		sarama.OffsetOldest,
		sarama.NewBalanceStrategyRoundRobin(),
	)
	if err != nil {
		return nil, fmt.Errorf("build saramaConfig: %w", err)
	}

	client, err := sarama.NewConsumerGroup(brokers, groupID, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer group: %w", err)
	}

	kafkaLog := log.With(
		logger.NewField("brokers", brokers),
		logger.NewField("group", groupID),
		logger.NewField("topics", topics),
	)

	err = waitForTopic(ctx, kafkaLog, brokers, cfg.Topic, saramaConfig)
	if err != nil {
		clientCloseErr := client.Close()
		if clientCloseErr != nil {
			return nil, fmt.Errorf("kafka client connection: %w (failed to close: %w)", err, clientCloseErr)
		}
		return nil, fmt.Errorf("kafka connection: %w", err)
	}

	return &Consumer{
		log:     kafkaLog,
		client:  client,
		topics:  topics,
		handler: handler,
	}, nil
}

// Start запускает consumer (блокирующий вызов)
func (c *Consumer) Start(ctx context.Context) error {
	c.log.Info("Kafka consumer starting")

	for {
		err := c.client.Consume(ctx, c.topics, c.handler)
		if errors.Is(err, sarama.ErrClosedConsumerGroup) {
			c.log.Warn("Consumer group closed, stopping consumer")
			return nil
		}
		if err != nil {
			c.log.With(
				logger.NewField("error", err),
			).Error("Error from consumer")
			return fmt.Errorf("consumer error: %w", err)
		}

		if ctx.Err() != nil {
			c.log.Warn("Context cancelled, stopping consumer")
			return ctx.Err()
		}
	}
}

func (c *Consumer) Close() error {
	return c.client.Close()
}

// waitForTopic ждет, пока брокеры ответят и в кластере появится topic.
// Топик может создаваться позже воркера, поэтому его отсутствие тоже ретраится.
func waitForTopic(ctx context.Context, log logger.Logger, brokers []string, topic string, cfg *sarama.Config) error {
	retrier := backoff_adapter.New(retrierconfig.Config{
		InitialInterval: initialInterval,
		MaxInterval:     maxInterval,
		MaxElapsedTime:  maxElapsedTime,
		Randomization:   randomization,
		Multiplier:      multiplier,
		Notify: func(err error, next time.Duration) {
			log.Warn("kafka is not ready, retrying",
				logger.NewField("error", err),
				logger.NewField("retry_in", next),
			)
		},
	})

	err := retrier.ExecuteWithContext(ctx, func(context.Context) error {
		client, err := sarama.NewClient(brokers, cfg)
		if err != nil {
			return err
		}
		defer func() {
			if err := client.Close(); err != nil {
				log.Error("failed to close Kafka connection", logger.NewField("error", err))
			}
		}()

		topics, err := client.Topics()
		if err != nil {
			return err
		}
		if !slices.Contains(topics, topic) {
			return fmt.Errorf("%w: %s", ErrTopicNotFound, topic)
		}
		return nil
	})
	if err != nil {
		log.Error("Kafka connection failed after retries", logger.NewField("error", err))
		return fmt.Errorf("failed to connect to Kafka: %w", err)
	}

	log.Info("Kafka connection established")
	return nil
}
