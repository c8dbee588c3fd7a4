package cmd

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	BrokerNone     = "none"
	BrokerKafka    = "kafka"
	BrokerRabbitMQ = "rabbitmq"
)

type Config struct {
	HTTPPort   string `envconfig:"HTTP_PORT" default:"8080"`
	DBHost     string `envconfig:"DB_HOST" default:"localhost"`
	DBPort     string `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" default:"postgres"`
	DBPassword string `envconfig:"DB_PASSWORD"`
	DBName     string `envconfig:"DB_NAME" default:"orders"`
	DBSslMode  string `envconfig:"DB_SSLMODE" default:"disable"`

	EventsBroker           string `envconfig:"EVENTS_BROKER" default:"none"`
	KafkaHost              string `envconfig:"KAFKA_HOST"`
	KafkaOrderChangedTopic string `envconfig:"KAFKA_ORDER_CHANGED_TOPIC" default:"order.changed"`
	RabbitMQURL            string `envconfig:"RABBITMQ_URL"`
	RabbitMQExchange       string `envconfig:"RABBITMQ_EXCHANGE" default:"orders"`

	StateGaugeSchedule string `envconfig:"STATE_GAUGE_SCHEDULE" default:"*/15 * * * * *"`
}

// LoadConfig reads envFile into the environment, if it exists, and decodes
// the environment into Config. Variables already set win over the file.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.EventsBroker {
	case BrokerNone, "":
		return nil
	case BrokerKafka:
		if c.KafkaHost == "" {
			return errors.New("KAFKA_HOST is required when EVENTS_BROKER is kafka")
		}
		return nil
	case BrokerRabbitMQ:
		if c.RabbitMQURL == "" {
			return errors.New("RABBITMQ_URL is required when EVENTS_BROKER is rabbitmq")
		}
		return nil
	default:
		return fmt.Errorf("unknown EVENTS_BROKER %q", c.EventsBroker)
	}
}

// DSN is the PostgreSQL connection string for gorm.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}
