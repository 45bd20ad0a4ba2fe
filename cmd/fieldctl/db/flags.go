package dbcmd

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	// database drivers
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"

	"github.com/faciam-dev/customfields/pkg/util"
)

// DBFlags defines common database flags.
type DBFlags struct {
	Driver      string
	DSN         string
	TablePrefix string
}

// AddFlags attaches the DB flags to the command.
func (f *DBFlags) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.DSN, "db", util.GetEnv("DATABASE_URL", ""), "database DSN")
	cmd.Flags().StringVar(&f.Driver, "driver", "", "database driver (detected from the DSN when empty)")
	cmd.Flags().StringVar(&f.TablePrefix, "table-prefix", util.GetEnv("TABLE_PREFIX", ""), "table name prefix")
}

// Resolve fills in the driver from the DSN scheme when it was not given.
func (f *DBFlags) Resolve() error {
	if f.DSN == "" {
		return fmt.Errorf("--db is required")
	}
	if f.Driver != "" {
		return nil
	}
	d, err := util.DetectDriver(f.DSN)
	if err != nil {
		return fmt.Errorf("detect driver: %w", err)
	}
	f.Driver = d
	return nil
}

// Open resolves the flags and opens the database.
func (f *DBFlags) Open() (*sql.DB, error) {
	if err := f.Resolve(); err != nil {
		return nil, err
	}
	dsn := f.DSN
	if f.Driver == "mysql" {
		dsn = util.MySQLDSN(dsn)
	}
	return sql.Open(f.Driver, dsn)
}
