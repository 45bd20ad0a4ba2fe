package server

import "github.com/faciam-dev/customfields/internal/config"

// DBConfig holds database configuration for the API server.
type DBConfig struct {
	Driver      string
	DSN         string
	TablePrefix string
}

// FieldConfig returns cfg with the table prefix of the database settings
// applied, the flag taking precedence over the file.
func (c DBConfig) FieldConfig(cfg config.Config) config.Config {
	if c.TablePrefix != "" {
		cfg.TablePrefix = c.TablePrefix
	}
	return cfg
}
