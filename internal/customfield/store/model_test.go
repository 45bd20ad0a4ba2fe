package store

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCustomFieldUnmarshalTargets(t *testing.T) {
	want := CustomField{
		ID:             1,
		Name:           "color",
		SelectableType: "selection_type",
		SelectableID:   2,
		Selectable: &SelectionTarget{SelectionType{
			ID:          2,
			PlainTypeID: 1,
			Values:      []SelectionValue{{ID: 5, SelectionTypeID: 2, Label: "Red", Value: strPtr("r")}},
		}},
	}
	b, err := json.Marshal(want)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got CustomField
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}

	var plain CustomField
	if err := json.Unmarshal([]byte(`{"id":3,"selectable_type":"integer","selectable":{"id":3,"name":"integer"}}`), &plain); err != nil {
		t.Fatalf("unmarshal plain: %v", err)
	}
	pt, ok := plain.Selectable.(*PlainTarget)
	if !ok || pt.Name != "integer" || TargetKind(plain.Selectable) != "plain" {
		t.Fatalf("unexpected plain target: %#v", plain.Selectable)
	}

	var none CustomField
	if err := json.Unmarshal([]byte(`{"id":4,"selectable":null}`), &none); err != nil {
		t.Fatalf("unmarshal null: %v", err)
	}
	if none.Selectable != nil {
		t.Fatalf("expected nil target, got %#v", none.Selectable)
	}
}
