// Package migrator applies the embedded schema migrations of the custom
// field tables and seeds the plain type catalog.
package migrator

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	pkgutil "github.com/faciam-dev/customfields/pkg/util"
	"github.com/lib/pq"
)

// prefixToken is replaced by the table prefix in every embedded file.
const prefixToken = "{{prefix}}"

// Migration holds migration data for one version.
type Migration struct {
	Version int
	SemVer  string
	UpSQL   string
	DownSQL string
}

// SchemaMigrator applies migrations for the custom field schema.
type SchemaMigrator interface {
	Current(ctx context.Context, db *sql.DB) (int, error)
	Up(ctx context.Context, db *sql.DB, target int) error   // 0=latest
	Down(ctx context.Context, db *sql.DB, target int) error // target<current
}

// Migrator implements SchemaMigrator using embedded SQL.
type Migrator struct {
	migrations  []Migration
	TablePrefix string
	Driver      string
}

var _ SchemaMigrator = (*Migrator)(nil)

// ErrNoVersionTable indicates the schema version table is missing.
var ErrNoVersionTable = errors.New("registry_schema_version table not found")

// NewWithDriver returns a Migrator for the specified driver.
func NewWithDriver(driver string) *Migrator {
	return NewWithDriverAndPrefix(driver, "")
}

// NewWithDriverAndPrefix returns a Migrator for the driver with table prefix.
func NewWithDriverAndPrefix(driver, prefix string) *Migrator {
	migs := mysqlMigrations
	if driver == "postgres" {
		migs = postgresMigrations
	}
	return &Migrator{migrations: withPrefix(migs, prefix), TablePrefix: prefix, Driver: driver}
}

func withPrefix(migs []Migration, prefix string) []Migration {
	res := make([]Migration, len(migs))
	for i, m := range migs {
		m.UpSQL = strings.ReplaceAll(m.UpSQL, prefixToken, prefix)
		m.DownSQL = strings.ReplaceAll(m.DownSQL, prefixToken, prefix)
		res[i] = m
	}
	return res
}

// Latest returns the highest known version.
func (m *Migrator) Latest() int { return len(m.migrations) }

// SemVer returns the semantic version of schema version v.
func (m *Migrator) SemVer(v int) string {
	if v <= 0 || v > len(m.migrations) {
		return "0.0.0"
	}
	return m.migrations[v-1].SemVer
}

// SemVerToInt converts a semver string to its integer version.
func (m *Migrator) SemVerToInt(v string) (int, bool) {
	v = strings.TrimPrefix(v, "v")
	for _, mig := range m.migrations {
		if mig.SemVer == v {
			return mig.Version, true
		}
	}
	return 0, false
}

func (m *Migrator) versionTable() string {
	if m.Driver == "postgres" {
		return pq.QuoteIdentifier(m.TablePrefix + "registry_schema_version")
	}
	return "`" + m.TablePrefix + "registry_schema_version`"
}

func (m *Migrator) ensureVersionTable(ctx context.Context, db *sql.DB) error {
	ts := "TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP"
	if m.Driver == "postgres" {
		ts = "TIMESTAMPTZ NOT NULL DEFAULT NOW()"
	}
	stmt := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (version INT PRIMARY KEY, semver VARCHAR(32) NOT NULL, applied_at %s)", m.versionTable(), ts)
	if _, err := db.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("create version table: %w", err)
	}
	return nil
}

// Current returns current version (integer). If the version table can not be
// read ErrNoVersionTable is returned.
func (m *Migrator) Current(ctx context.Context, db *sql.DB) (int, error) {
	if err := m.ensureVersionTable(ctx, db); err != nil {
		return 0, err
	}
	row := db.QueryRowContext(ctx, fmt.Sprintf("SELECT MAX(version) FROM %s", m.versionTable())) // #nosec G201 -- table name derived from trusted prefix
	var v sql.NullInt64
	if err := row.Scan(&v); err != nil {
		if isTableMissing(err) {
			return 0, ErrNoVersionTable
		}
		return 0, err
	}
	if !v.Valid {
		return 0, nil
	}
	return int(v.Int64), nil
}

// Up migrates the schema up to target. target=0 means latest.
func (m *Migrator) Up(ctx context.Context, db *sql.DB, target int) error {
	if target == 0 || target > len(m.migrations) {
		target = len(m.migrations)
	}
	cur, err := m.Current(ctx, db)
	if err != nil {
		return err
	}
	if cur >= target {
		return nil
	}
	insert := fmt.Sprintf("INSERT INTO %s (version, semver) VALUES (%s)", m.versionTable(), pkgutil.Placeholders(m.Driver, 2))
	return m.inTx(ctx, db, func(tx *sql.Tx) error {
		for i := cur; i < target; i++ {
			mig := m.migrations[i]
			if err := execAll(ctx, tx, mig.UpSQL); err != nil {
				return fmt.Errorf("migration %d up: %w", mig.Version, err)
			}
			if _, err := tx.ExecContext(ctx, insert, mig.Version, mig.SemVer); err != nil {
				return fmt.Errorf("record version %d: %w", mig.Version, err)
			}
		}
		return nil
	})
}

// Down migrates schema down to target version.
func (m *Migrator) Down(ctx context.Context, db *sql.DB, target int) error {
	if target < 0 {
		target = 0
	}
	cur, err := m.Current(ctx, db)
	if err != nil {
		return err
	}
	if target >= cur {
		return nil
	}
	del := fmt.Sprintf("DELETE FROM %s WHERE version = %s", m.versionTable(), pkgutil.Placeholders(m.Driver, 1))
	return m.inTx(ctx, db, func(tx *sql.Tx) error {
		for i := cur - 1; i >= target; i-- {
			mig := m.migrations[i]
			if err := execAll(ctx, tx, mig.DownSQL); err != nil {
				return fmt.Errorf("migration %d down: %w", mig.Version, err)
			}
			if _, err := tx.ExecContext(ctx, del, mig.Version); err != nil {
				return fmt.Errorf("remove version %d: %w", mig.Version, err)
			}
		}
		return nil
	})
}

func (m *Migrator) inTx(ctx context.Context, db *sql.DB, fn func(*sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback: %v: %w", rbErr, err)
		}
		return err
	}
	return tx.Commit()
}

// SQLForRange returns SQL statements needed to migrate from->to.
func (m *Migrator) SQLForRange(from, to int) []string {
	var res []string
	if to > from {
		for i := from; i < to; i++ {
			res = append(res, splitSQL(m.migrations[i].UpSQL)...)
		}
	} else if to < from {
		for i := from - 1; i >= to; i-- {
			res = append(res, splitSQL(m.migrations[i].DownSQL)...)
		}
	}
	return res
}

func execAll(ctx context.Context, tx *sql.Tx, src string) error {
	for _, stmt := range splitSQL(src) {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt, err)
		}
	}
	return nil
}

// splitSQL splits src on semicolons outside quotes and dollar quoted bodies.
func splitSQL(src string) []string {
	var (
		res       []string
		buf       strings.Builder
		inSingle  bool
		inDouble  bool
		dollarTag string
	)
	flush := func() {
		if s := strings.TrimSpace(buf.String()); s != "" {
			res = append(res, s)
		}
		buf.Reset()
	}
	for i := 0; i < len(src); i++ {
		c := src[i]
		if dollarTag != "" {
			if strings.HasPrefix(src[i:], dollarTag) {
				buf.WriteString(dollarTag)
				i += len(dollarTag) - 1
				dollarTag = ""
				continue
			}
			buf.WriteByte(c)
			continue
		}
		switch {
		case c == '\'' && !inDouble:
			inSingle = !inSingle
		case c == '"' && !inSingle:
			inDouble = !inDouble
		case c == '$' && !inSingle && !inDouble:
			j := i + 1
			for j < len(src) && isTagByte(src[j]) {
				j++
			}
			if j < len(src) && src[j] == '$' {
				dollarTag = src[i : j+1]
				buf.WriteString(dollarTag)
				i = j
				continue
			}
		case c == ';' && !inSingle && !inDouble:
			flush()
			continue
		}
		buf.WriteByte(c)
	}
	flush()
	return res
}

func isTagByte(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9') || b == '_'
}

func isTableMissing(err error) bool {
	if err == nil {
		return false
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "42P01" {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "doesn't exist") || strings.Contains(msg, "does not exist") || strings.Contains(msg, "no such table")
}
