// Package plaintype describes the primitive value kinds a custom field can hold.
package plaintype

import (
	"errors"
	"fmt"
	"strings"
)

// Kind is one of the known plain types.
type Kind string

const (
	String  Kind = "string"
	Text    Kind = "text"
	Integer Kind = "integer"
	Float   Kind = "float"
	Date    Kind = "date"
	Boolean Kind = "boolean"
)

// ErrUnknownKind is returned by ParseKind for names outside the catalog.
var ErrUnknownKind = errors.New("unknown plain type")

// Mappable is implemented by plain types that store their scalar in a
// dedicated column of a value table.
type Mappable interface {
	ValueColumn() string
}

var catalog = []Kind{String, Text, Integer, Float, Date, Boolean}

// All returns every known kind in catalog order.
func All() []Kind {
	out := make([]Kind, len(catalog))
	copy(out, catalog)
	return out
}

// ParseKind maps a type name such as "integer" to its Kind.
func ParseKind(name string) (Kind, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for _, k := range catalog {
		if string(k) == n {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

// ValueColumn returns the value-table column holding values of this kind.
func (k Kind) ValueColumn() string {
	switch k {
	case String:
		return "string"
	case Text:
		return "text"
	case Integer:
		return "integer"
	case Float:
		return "float"
	case Date:
		return "date"
	case Boolean:
		return "boolean"
	default:
		return ""
	}
}

func (k Kind) String() string { return string(k) }

var _ Mappable = Integer
