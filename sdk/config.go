package sdk

import (
	"database/sql"

	"go.uber.org/zap"

	"github.com/faciam-dev/customfields/internal/config"
	"github.com/faciam-dev/customfields/internal/customfield/audit"
)

// DBConfig specifies database connection parameters.
type DBConfig struct {
	Driver      string // mysql|postgres
	DSN         string
	TablePrefix string
}

// ServiceConfig holds optional configuration for Service.
//
// DB and Driver name the connection used by the field operations. Fields
// carries the type mappings and table prefix; the zero value means
// config.Default().
type ServiceConfig struct {
	Logger   *zap.SugaredLogger
	Recorder *audit.Recorder
	// Actor is written to the audit log for fields created through the
	// service. Defaults to "sdk".
	Actor string

	DB     *sql.DB
	Driver string
	Fields config.Config
}
