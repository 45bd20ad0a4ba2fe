package store

import (
	"database/sql/driver"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/faciam-dev/customfields/internal/config"
	"github.com/faciam-dev/goquent/orm/query"
)

func newMockStore(t *testing.T, driverName string) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	s, err := New(db, driverName, config.Default())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s, mock
}

// expectBuilt expects the SQL the query builder produces for q.
func expectBuilt(t *testing.T, mock sqlmock.Sqlmock, q *query.Query) *sqlmock.ExpectedQuery {
	t.Helper()
	sqlStr, args, err := q.Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	e := mock.ExpectQuery(regexp.QuoteMeta(sqlStr))
	if len(args) > 0 {
		vals := make([]driver.Value, len(args))
		for i, a := range args {
			vals[i] = a
		}
		e = e.WithArgs(vals...)
	}
	return e
}

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }
