package config

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	ormdriver "github.com/faciam-dev/goquent/orm/driver"
	"github.com/faciam-dev/goquent/orm/query"
	"gopkg.in/yaml.v3"
)

// SelectionKey is the logical type-mapping key for selection fields.
const SelectionKey = "selection"

// DefaultSelectionType is stored in custom_fields.selectable_type for
// selection fields unless the configuration overrides it.
const DefaultSelectionType = "selection_type"

// Config holds global configuration values.
type Config struct {
	TablePrefix  string            `yaml:"table_prefix" env:"TABLE_PREFIX"`
	TypeMappings map[string]string `yaml:"type_mappings"`
}

// Default returns the configuration used when no file is supplied.
func Default() Config {
	return Config{TypeMappings: map[string]string{SelectionKey: DefaultSelectionType}}
}

// Load reads a YAML configuration file. An empty path yields Default().
// Mappings missing from the file keep their default values.
func Load(path string) (Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return c, err
	}
	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return c, fmt.Errorf("parse %s: %w", path, err)
	}
	if fileCfg.TablePrefix != "" {
		c.TablePrefix = fileCfg.TablePrefix
	}
	for k, v := range fileCfg.TypeMappings {
		if v != "" {
			c.TypeMappings[k] = v
		}
	}
	return c, nil
}

// T prefixes the given table name with the configured prefix.
func (c *Config) T(name string) string {
	return c.TablePrefix + name
}

// Mapping returns the stored selectable_type for a logical key.
func (c *Config) Mapping(key string) (string, error) {
	v, ok := c.TypeMappings[key]
	if !ok || v == "" {
		return "", fmt.Errorf("type mapping %q is not configured", key)
	}
	return v, nil
}

// CheckPrefix verifies that the plain type catalog exists under the
// configured prefix. It returns an error when migrations have not run.
func CheckPrefix(ctx context.Context, db *sql.DB, dialect ormdriver.Dialect, prefix string) error {
	q := query.New(db, "information_schema.tables", dialect).
		SelectRaw("COUNT(*) AS cnt").
		Where("table_name", prefix+"plain_types").
		WithContext(ctx)

	var res struct {
		Cnt int `db:"cnt"`
	}
	if err := q.First(&res); err != nil {
		return err
	}
	if res.Cnt == 0 {
		return fmt.Errorf("table %q not found; run migrations or set TABLE_PREFIX correctly", prefix+"plain_types")
	}
	return nil
}
