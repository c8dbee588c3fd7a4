package cmd_test

import (
	"os"
	"path/filepath"
	"testing"

	"orderservice/cmd"
	"orderservice/internal/adapters/out/kafka"
	"orderservice/internal/adapters/out/noop"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsetEnv clears keys for the duration of the test. envconfig only applies a
// default when the variable is absent, not when it is empty.
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	unsetEnv(t, "HTTP_PORT", "EVENTS_BROKER", "STATE_GAUGE_SCHEDULE", "DB_HOST")

	cfg, err := cmd.LoadConfig(filepath.Join(t.TempDir(), "missing.env"))

	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, cmd.BrokerNone, cfg.EventsBroker)
	assert.Equal(t, "*/15 * * * * *", cfg.StateGaugeSchedule)
	assert.Equal(t, "localhost", cfg.DBHost)
}

func TestLoadConfig_EnvFileAndEnvironment(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte(
		"HTTP_PORT=9090\nDB_NAME=from_file\nEVENTS_BROKER=kafka\nKAFKA_HOST=kafka:9092\n"), 0o600))
	unsetEnv(t, "HTTP_PORT", "EVENTS_BROKER", "KAFKA_HOST")
	t.Setenv("DB_NAME", "from_env")

	cfg, err := cmd.LoadConfig(envFile)

	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.HTTPPort)
	assert.Equal(t, "from_env", cfg.DBName)
	assert.Equal(t, cmd.BrokerKafka, cfg.EventsBroker)
	assert.Equal(t, "kafka:9092", cfg.KafkaHost)
}

func TestConfig_Validate(t *testing.T) {
	testCases := map[string]struct {
		cfg     cmd.Config
		wantErr string
	}{
		"none":                 {cmd.Config{EventsBroker: cmd.BrokerNone}, ""},
		"kafka":                {cmd.Config{EventsBroker: cmd.BrokerKafka, KafkaHost: "kafka:9092"}, ""},
		"kafka without host":   {cmd.Config{EventsBroker: cmd.BrokerKafka}, "KAFKA_HOST"},
		"rabbitmq without url": {cmd.Config{EventsBroker: cmd.BrokerRabbitMQ}, "RABBITMQ_URL"},
		"unknown broker":       {cmd.Config{EventsBroker: "nats"}, "unknown EVENTS_BROKER"},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestConfig_DSN(t *testing.T) {
	cfg := cmd.Config{
		DBHost: "db", DBPort: "5432", DBUser: "u", DBPassword: "p", DBName: "orders", DBSslMode: "disable",
	}

	assert.Equal(t, "host=db port=5432 user=u password=p dbname=orders sslmode=disable", cfg.DSN())
}

func TestNewEventPublisher(t *testing.T) {
	none, err := cmd.NewEventPublisher(cmd.Config{EventsBroker: cmd.BrokerNone})
	require.NoError(t, err)
	assert.IsType(t, noop.OrderEventPublisher{}, none)

	k, err := cmd.NewEventPublisher(cmd.Config{
		EventsBroker: cmd.BrokerKafka, KafkaHost: "localhost:9092", KafkaOrderChangedTopic: "order.changed",
	})
	require.NoError(t, err)
	assert.IsType(t, &kafka.OrderEventPublisher{}, k)
	require.NoError(t, k.Close())

	_, err = cmd.NewEventPublisher(cmd.Config{EventsBroker: "nats"})
	require.Error(t, err)
}
