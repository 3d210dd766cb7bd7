package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"logcollector/internal/queue"
)

type Config struct {
	Server  ServerConfig
	Storage StorageConfig
	Queue   QueueConfig
	Tail    TailConfig
	Stats   StatsConfig
	Kafka   KafkaConfig
	Logging LoggingConfig
}

type ServerConfig struct {
	Port            string
	ShutdownTimeout time.Duration
}

type StorageConfig struct {
	LogDirectory string
}

type QueueConfig struct {
	Capacity       int // 0 means unbounded
	OverflowPolicy queue.OverflowPolicy
}

type TailConfig struct {
	DefaultLines int
	ChunkSize    int
}

type StatsConfig struct {
	Schedule string // empty disables the periodic report
}

type KafkaConfig struct {
	Brokers      []string // empty disables forwarding
	Topic        string
	BatchTimeout time.Duration
}

type LoggingConfig struct {
	Level  string
	Pretty bool
}

func NewConfig() (*Config, error) {
	v := viper.New()
	// Configure Viper to read .env file
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")

	// Enable automatic environment variable loading
	v.AutomaticEnv()

	v.SetDefault("SERVER_PORT", "8000")
	v.SetDefault("SHUTDOWN_TIMEOUT", "30s")
	v.SetDefault("LOG_DIR", "./logs")
	v.SetDefault("QUEUE_CAPACITY", 10000)
	v.SetDefault("QUEUE_OVERFLOW_POLICY", string(queue.PolicyReject))
	v.SetDefault("TAIL_DEFAULT_LINES", 50)
	v.SetDefault("TAIL_CHUNK_SIZE", 1024)
	v.SetDefault("STATS_SCHEDULE", "@every 1m")
	v.SetDefault("KAFKA_BROKERS", "")
	v.SetDefault("KAFKA_TOPIC", "collected_logs")
	v.SetDefault("KAFKA_BATCH_TIMEOUT", "1s")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_PRETTY", false)

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		log.Debug().Err(err).Msg("No .env config file loaded, using environment and defaults")
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	var config Config
	config.Server.Port = v.GetString("SERVER_PORT")
	config.Server.ShutdownTimeout = v.GetDuration("SHUTDOWN_TIMEOUT")

	config.Storage.LogDirectory = v.GetString("LOG_DIR")
	if strings.TrimSpace(config.Storage.LogDirectory) == "" {
		return nil, fmt.Errorf("LOG_DIR must not be empty")
	}

	// --- Queue ---
	config.Queue.Capacity = v.GetInt("QUEUE_CAPACITY")
	if config.Queue.Capacity < 0 {
		return nil, fmt.Errorf("QUEUE_CAPACITY must be >= 0, got %d", config.Queue.Capacity)
	}
	policy, err := queue.ParseOverflowPolicy(v.GetString("QUEUE_OVERFLOW_POLICY"))
	if err != nil {
		return nil, fmt.Errorf("invalid QUEUE_OVERFLOW_POLICY: %w", err)
	}
	config.Queue.OverflowPolicy = policy

	// --- Tail ---
	config.Tail.DefaultLines = v.GetInt("TAIL_DEFAULT_LINES")
	config.Tail.ChunkSize = v.GetInt("TAIL_CHUNK_SIZE")
	if config.Tail.DefaultLines <= 0 || config.Tail.ChunkSize <= 0 {
		return nil, fmt.Errorf("TAIL_DEFAULT_LINES and TAIL_CHUNK_SIZE must be positive")
	}

	config.Stats.Schedule = strings.TrimSpace(v.GetString("STATS_SCHEDULE"))

	// --- Kafka ---
	for _, b := range strings.Split(v.GetString("KAFKA_BROKERS"), ",") {
		if b = strings.TrimSpace(b); b != "" {
			config.Kafka.Brokers = append(config.Kafka.Brokers, b)
		}
	}
	config.Kafka.Topic = v.GetString("KAFKA_TOPIC")
	config.Kafka.BatchTimeout = v.GetDuration("KAFKA_BATCH_TIMEOUT")

	config.Logging.Level = v.GetString("LOG_LEVEL")
	config.Logging.Pretty = v.GetBool("LOG_PRETTY")

	log.Info().Interface("config", config).Msg("Config loaded")
	return &config, nil
}
