package store

import (
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
)

var (
	// ErrValidation marks a request rejected before any database access.
	ErrValidation = errors.New("validation failed")
	// ErrPlainTypeNotFound is returned when no plain type has the requested name.
	ErrPlainTypeNotFound = errors.New("plain type not found")
	// ErrSelectionRequired is the validation error for a missing selection payload.
	ErrSelectionRequired = fmt.Errorf("%w: Selection data needs to be provided", ErrValidation)
)

// ConstraintError wraps a database constraint violation.
type ConstraintError struct {
	Constraint string
	Unique     bool
	Err        error
}

func (e *ConstraintError) Error() string {
	if e.Constraint != "" {
		return fmt.Sprintf("constraint %s violated: %v", e.Constraint, e.Err)
	}
	return fmt.Sprintf("constraint violated: %v", e.Err)
}

func (e *ConstraintError) Unwrap() error { return e.Err }

// mysql error numbers for integrity violations.
const (
	myBadNull          = 1048
	myDupEntry         = 1062
	myNoReferencedRow  = 1216
	myRowIsReferenced  = 1217
	myNoDefaultForCol  = 1364
	myRowIsReferenced2 = 1451
	myNoReferencedRow2 = 1452
	myCheckViolated    = 3819
)

// classify converts driver integrity errors into *ConstraintError.
// Other errors are returned unchanged.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Class() == "23" {
		return &ConstraintError{Constraint: pqErr.Constraint, Unique: pqErr.Code == "23505", Err: err}
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case myDupEntry:
			return &ConstraintError{Unique: true, Err: err}
		case myBadNull, myNoReferencedRow, myRowIsReferenced, myNoDefaultForCol, myRowIsReferenced2, myNoReferencedRow2, myCheckViolated:
			return &ConstraintError{Err: err}
		}
	}
	return err
}
