package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cenkalti/backoff"
	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"
	"go.uber.org/fx"

	"logcollector/config"
	"logcollector/internal/model"
)

// LogForwarder mirrors lines that reached disk to an external sink.
type LogForwarder interface {
	Forward(ctx context.Context, entry model.LogEntry) error
	Close() error
}

type noopForwarder struct{}

func (noopForwarder) Forward(context.Context, model.LogEntry) error { return nil }
func (noopForwarder) Close() error                                  { return nil }

// NewNoopForwarder returns a forwarder that discards everything.
func NewNoopForwarder() LogForwarder {
	return noopForwarder{}
}

type kafkaLogForwarder struct {
	writer *kafka.Writer
	topic  string
}

// NewKafkaLogForwarder returns a Kafka-backed forwarder, or a no-op one when
// no brokers are configured.
func NewKafkaLogForwarder(lc fx.Lifecycle, cfg *config.Config) (LogForwarder, error) {
	if len(cfg.Kafka.Brokers) == 0 {
		log.Info().Msg("Kafka brokers not configured, log forwarding disabled")
		return NewNoopForwarder(), nil
	}
	if cfg.Kafka.Topic == "" {
		return nil, fmt.Errorf("kafka forwarding enabled but KAFKA_TOPIC is empty")
	}

	if err := waitForBroker(cfg.Kafka.Brokers); err != nil {
		return nil, err
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Kafka.Brokers...),
		Topic:        cfg.Kafka.Topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: cfg.Kafka.BatchTimeout,
		Async:        true,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				log.Error().Err(err).Int("message_count", len(messages)).Msg("Failed to forward log lines to Kafka")
			}
		},
	}
	f := &kafkaLogForwarder{
		writer: writer,
		topic:  cfg.Kafka.Topic,
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Closing Kafka forwarder")
			return f.Close()
		},
	})
	log.Info().Strs("brokers", cfg.Kafka.Brokers).Str("topic", cfg.Kafka.Topic).Msg("Kafka forwarder initialized")
	return f, nil
}

func (f *kafkaLogForwarder) Forward(ctx context.Context, entry model.LogEntry) error {
	msg, err := toMessage(entry)
	if err != nil {
		return err
	}
	if err := f.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka write to %s: %w", f.topic, err)
	}
	return nil
}

func (f *kafkaLogForwarder) Close() error {
	return f.writer.Close()
}

func toMessage(entry model.LogEntry) (kafka.Message, error) {
	value, err := json.Marshal(entry)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("failed to marshal log entry for Kafka: %w", err)
	}
	return kafka.Message{
		Key:   []byte(entry.Source),
		Value: value,
		Time:  entry.Timestamp,
	}, nil
}

// waitForBroker dials the first broker until it answers or the retry budget
// is spent.
func waitForBroker(brokers []string) error {
	operation := func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		conn, err := kafka.DialContext(ctx, "tcp", brokers[0])
		if err != nil {
			log.Warn().Err(err).Str("broker", brokers[0]).Msg("Attempt failed: Kafka broker not reachable")
			return err
		}
		return conn.Close()
	}

	connectBackoff := backoff.NewExponentialBackOff()
	connectBackoff.InitialInterval = 1 * time.Second
	connectBackoff.MaxInterval = 5 * time.Second
	connectBackoff.MaxElapsedTime = 20 * time.Second

	log.Info().Str("broker", brokers[0]).Msg("Checking Kafka broker with retries...")
	if err := backoff.Retry(operation, connectBackoff); err != nil {
		return fmt.Errorf("kafka broker %s unreachable: %w", brokers[0], err)
	}
	return nil
}
