// Package store persists custom fields and their type-specific targets.
//
// Reads go through the goquent query builder. Writes run inside an explicit
// *sql.Tx with driver specific SQL so that a selection type, its values and
// the owning custom field are created atomically.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/faciam-dev/customfields/internal/config"
	"github.com/faciam-dev/customfields/pkg/plaintype"
	pkgutil "github.com/faciam-dev/customfields/pkg/util"
	ormdriver "github.com/faciam-dev/goquent/orm/driver"
	"github.com/faciam-dev/goquent/orm/query"
)

// loader resolves the targets with the given ids for one selectable_type.
type loader func(ctx context.Context, ids []int64) (map[int64]Target, error)

// Store manages custom field rows.
type Store struct {
	DB          *sql.DB
	Driver      string
	Dialect     ormdriver.Dialect
	TablePrefix string

	// SelectionType is the selectable_type value stored for selection fields.
	SelectionType string

	loaders map[string]loader
}

// New returns a Store for db using the type mappings of cfg.
func New(db *sql.DB, driver string, cfg config.Config) (*Store, error) {
	sel, err := cfg.Mapping(config.SelectionKey)
	if err != nil {
		return nil, err
	}
	s := &Store{
		DB:            db,
		Driver:        driver,
		Dialect:       pkgutil.DialectFromDriver(driver),
		TablePrefix:   cfg.TablePrefix,
		SelectionType: sel,
	}
	s.loaders = map[string]loader{sel: s.loadSelections}
	for _, k := range plaintype.All() {
		stored := string(k)
		if v, err := cfg.Mapping(string(k)); err == nil {
			stored = v
		}
		if stored == sel {
			return nil, fmt.Errorf("type mapping %q collides with selection mapping", k)
		}
		s.loaders[stored] = s.loadPlainTypes
	}
	return s, nil
}

func (s *Store) t(name string) string { return s.TablePrefix + name }

func (s *Store) newQuery(table string) *query.Query {
	return query.New(s.DB, s.t(table), s.Dialect)
}

// insertID inserts one row and returns its generated id.
func (s *Store) insertID(ctx context.Context, tx *sql.Tx, table string, cols []string, args ...any) (int64, error) {
	stmt := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", s.t(table), strings.Join(cols, ", "), pkgutil.Placeholders(s.Driver, len(cols)))
	if s.Driver == "postgres" {
		var id int64
		if err := tx.QueryRowContext(ctx, stmt+" RETURNING id", args...).Scan(&id); err != nil {
			return 0, classify(err)
		}
		return id, nil
	}
	res, err := tx.ExecContext(ctx, stmt, args...)
	if err != nil {
		return 0, classify(err)
	}
	return res.LastInsertId()
}
