package plaintype

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseKind(t *testing.T) {
	cases := map[string]Kind{
		"integer":  Integer,
		"INTEGER":  Integer,
		" string ": String,
		"text":     Text,
		"float":    Float,
		"date":     Date,
		"boolean":  Boolean,
	}
	for in, want := range cases {
		got, err := ParseKind(in)
		if err != nil {
			t.Fatalf("ParseKind(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseKind(%q)=%q want %q", in, got, want)
		}
	}
	if _, err := ParseKind("decimal"); !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("expected ErrUnknownKind, got %v", err)
	}
}

func TestValueColumn(t *testing.T) {
	var m Mappable = Integer
	if m.ValueColumn() != "integer" {
		t.Fatalf("integer column: %q", m.ValueColumn())
	}
	for _, k := range All() {
		if k.ValueColumn() == "" {
			t.Fatalf("kind %q has no value column", k)
		}
	}
	if Kind("nope").ValueColumn() != "" {
		t.Fatalf("unknown kind should have no column")
	}
}

func TestAllIsACopy(t *testing.T) {
	a := All()
	a[0] = "mutated"
	want := []Kind{String, Text, Integer, Float, Date, Boolean}
	if diff := cmp.Diff(want, All()); diff != "" {
		t.Fatalf("catalog mutated (-want +got):\n%s", diff)
	}
}
