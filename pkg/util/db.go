package util

import (
	"fmt"
	"strings"

	ormdriver "github.com/faciam-dev/goquent/orm/driver"
)

// UnsupportedDialect is returned when a driver has no corresponding goquent dialect.
type UnsupportedDialect struct{ Driver string }

func (UnsupportedDialect) Placeholder(int) string { return "?" }

func (UnsupportedDialect) QuoteIdent(ident string) string { return ident }

// DetectDriver returns the driver name based on the DSN scheme.
// Supported schemes: mysql and postgres/postgresql. The remainder is not
// parsed since go-sql-driver DSNs like tcp(host:3306) are not valid URLs.
func DetectDriver(dsn string) (string, error) {
	scheme, _, ok := strings.Cut(dsn, "://")
	if !ok {
		return "", fmt.Errorf("missing scheme in dsn")
	}
	switch strings.ToLower(scheme) {
	case "postgres", "postgresql":
		return "postgres", nil
	case "mysql":
		return "mysql", nil
	default:
		return "", fmt.Errorf("unknown scheme: %s", scheme)
	}
}

// DialectFromDriver returns the goquent dialect corresponding to a driver.
func DialectFromDriver(d string) ormdriver.Dialect {
	switch d {
	case "postgres":
		return ormdriver.PostgresDialect{}
	case "mysql":
		return ormdriver.MySQLDialect{}
	default:
		return UnsupportedDialect{Driver: d}
	}
}

// Placeholders returns n comma separated bind markers for the driver,
// e.g. "$1, $2" for postgres and "?, ?" otherwise.
func Placeholders(driver string, n int) string {
	parts := make([]string, n)
	for i := range parts {
		if driver == "postgres" {
			parts[i] = fmt.Sprintf("$%d", i+1)
		} else {
			parts[i] = "?"
		}
	}
	return strings.Join(parts, ", ")
}

// MySQLDSN strips the mysql:// scheme go-sql-driver/mysql does not accept.
func MySQLDSN(dsn string) string {
	return strings.TrimPrefix(dsn, "mysql://")
}
