package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
)

func TestClassify(t *testing.T) {
	plain := errors.New("connection reset")
	tests := []struct {
		name       string
		err        error
		constraint bool
		unique     bool
	}{
		{"pq unique", &pq.Error{Code: "23505"}, true, true},
		{"pq not null", &pq.Error{Code: "23502"}, true, false},
		{"pq foreign key wrapped", fmt.Errorf("exec: %w", &pq.Error{Code: "23503"}), true, false},
		{"pq syntax", &pq.Error{Code: "42601"}, false, false},
		{"mysql duplicate", &mysql.MySQLError{Number: 1062}, true, true},
		{"mysql bad null", &mysql.MySQLError{Number: 1048}, true, false},
		{"mysql fk", &mysql.MySQLError{Number: 1452}, true, false},
		{"mysql lock wait", &mysql.MySQLError{Number: 1205}, false, false},
		{"other", plain, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classify(tt.err)
			var ce *ConstraintError
			if errors.As(got, &ce) != tt.constraint {
				t.Fatalf("constraint = %v, want %v (%v)", !tt.constraint, tt.constraint, got)
			}
			if tt.constraint && ce.Unique != tt.unique {
				t.Fatalf("unique = %v, want %v", ce.Unique, tt.unique)
			}
			if !errors.Is(got, tt.err) {
				t.Fatalf("classified error does not wrap the original")
			}
		})
	}
	if classify(nil) != nil {
		t.Fatalf("classify(nil) should be nil")
	}
}
