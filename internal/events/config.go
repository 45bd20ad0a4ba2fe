package events

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrSinkConfig is wrapped by LoadConfig when an enabled sink lacks its target.
var ErrSinkConfig = errors.New("events: invalid sink config")

// LoadConfig reads the dispatcher settings from a YAML file. Values may
// reference environment variables as ${NAME} so secrets stay out of the file.
// An empty path yields a config with every sink disabled.
func LoadConfig(path string) (Config, error) {
	var c Config
	if path == "" {
		return c, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return c, err
	}
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &c); err != nil {
		return c, fmt.Errorf("parse %s: %w", path, err)
	}
	return c, c.validate()
}

func (c Config) validate() error {
	switch {
	case c.Sinks.Webhook.Enabled && c.Sinks.Webhook.Endpoint == "":
		return fmt.Errorf("%w: webhook endpoint is required", ErrSinkConfig)
	case c.Sinks.Redis.Enabled && c.Sinks.Redis.DSN == "":
		return fmt.Errorf("%w: redis dsn is required", ErrSinkConfig)
	case c.Sinks.Kafka.Enabled && len(c.Sinks.Kafka.Brokers) == 0:
		return fmt.Errorf("%w: kafka brokers are required", ErrSinkConfig)
	case c.Retry.MaxAttempts < 0:
		return fmt.Errorf("%w: retry max_attempts must not be negative", ErrSinkConfig)
	}
	return nil
}
