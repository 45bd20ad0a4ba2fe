package sdk

import (
	"context"
	"database/sql"
	"errors"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"

	"github.com/faciam-dev/customfields/pkg/migrator"
	"github.com/faciam-dev/customfields/pkg/util"
)

func openDB(cfg DBConfig) (*sql.DB, string, error) {
	drv := cfg.Driver
	if drv == "" {
		var err error
		drv, err = util.DetectDriver(cfg.DSN)
		if err != nil {
			return nil, "", err
		}
	}
	dsn := cfg.DSN
	if drv == "mysql" {
		dsn = util.MySQLDSN(dsn)
	}
	db, err := sql.Open(drv, dsn)
	if err != nil {
		return nil, "", err
	}
	return db, drv, nil
}

// MigrateRegistry upgrades or downgrades the schema to the target version.
// A target of 0 migrates to the latest version.
func (s *service) MigrateRegistry(ctx context.Context, cfg DBConfig, target int) error {
	db, drv, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	m := migrator.NewWithDriverAndPrefix(drv, cfg.TablePrefix)
	cur, err := m.Current(ctx, db)
	if err != nil && !errors.Is(err, migrator.ErrNoVersionTable) {
		return err
	}
	if target == 0 {
		target = m.Latest()
	}
	if target > cur {
		s.logger.Infow("migrating schema up", "from", m.SemVer(cur), "to", m.SemVer(target))
		return m.Up(ctx, db, target)
	}
	if target < cur {
		s.logger.Infow("migrating schema down", "from", m.SemVer(cur), "to", m.SemVer(target))
		return m.Down(ctx, db, target)
	}
	s.logger.Infow("schema up-to-date", "version", m.SemVer(cur))
	return nil
}

// RegistryVersion returns the current schema version.
func (s *service) RegistryVersion(ctx context.Context, cfg DBConfig) (int, error) {
	db, drv, err := openDB(cfg)
	if err != nil {
		return 0, err
	}
	defer func() { _ = db.Close() }()
	m := migrator.NewWithDriverAndPrefix(drv, cfg.TablePrefix)
	return m.Current(ctx, db)
}
