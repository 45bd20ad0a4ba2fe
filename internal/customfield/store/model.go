package store

import (
	"encoding/json"

	"github.com/faciam-dev/customfields/pkg/plaintype"
)

// PlainType is a row of the shared plain type catalog.
type PlainType struct {
	ID   int64          `json:"id"`
	Name plaintype.Kind `json:"name"`
}

// ValueColumn returns the column holding values of this plain type.
func (p PlainType) ValueColumn() string { return p.Name.ValueColumn() }

// SelectionValue is one selectable option of a SelectionType.
type SelectionValue struct {
	ID              int64   `json:"id"`
	SelectionTypeID int64   `json:"selection_type_id"`
	Label           string  `json:"label"`
	Value           *string `json:"value,omitempty"`
	Preselect       bool    `json:"preselect"`
}

// SelectionType backs a selection custom field: a dropdown over values of
// one plain type, single or multiple choice.
type SelectionType struct {
	ID          int64            `json:"id"`
	PlainTypeID int64            `json:"plain_type_id"`
	PlainType   *PlainType       `json:"plain_type,omitempty"`
	Multiselect bool             `json:"multiselect"`
	Values      []SelectionValue `json:"values"`
}

// Target is the type-specific configuration a custom field points at
// through selectable_type and selectable_id.
type Target interface {
	targetKind() string
}

// SelectionTarget is the Target of selection fields.
type SelectionTarget struct {
	SelectionType
}

func (*SelectionTarget) targetKind() string { return "selection" }

// PlainTarget is the Target of fields holding a single plain value.
type PlainTarget struct {
	PlainType
}

func (*PlainTarget) targetKind() string { return "plain" }

// TargetKind reports "selection" or "plain" for a resolved target.
func TargetKind(t Target) string {
	if t == nil {
		return ""
	}
	return t.targetKind()
}

// CustomField is a field definition attached to a domain model.
type CustomField struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	Label          string  `json:"label"`
	Placeholder    *string `json:"placeholder,omitempty"`
	Model          string  `json:"model"`
	Required       bool    `json:"required"`
	SelectableType string  `json:"selectable_type"`
	SelectableID   int64   `json:"selectable_id"`
	Selectable     Target  `json:"selectable,omitempty"`
}

// UnmarshalJSON decodes a field including its inline target. A target
// object carrying "values" or "multiselect" decodes as a SelectionTarget,
// any other object as a PlainTarget.
func (cf *CustomField) UnmarshalJSON(b []byte) error {
	type plain CustomField
	var aux struct {
		plain
		Selectable json.RawMessage `json:"selectable,omitempty"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	*cf = CustomField(aux.plain)
	cf.Selectable = nil
	if len(aux.Selectable) == 0 || string(aux.Selectable) == "null" {
		return nil
	}
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(aux.Selectable, &keys); err != nil {
		return err
	}
	_, hasValues := keys["values"]
	_, hasMulti := keys["multiselect"]
	if hasValues || hasMulti {
		var st SelectionTarget
		if err := json.Unmarshal(aux.Selectable, &st); err != nil {
			return err
		}
		cf.Selectable = &st
		return nil
	}
	var pt PlainTarget
	if err := json.Unmarshal(aux.Selectable, &pt); err != nil {
		return err
	}
	cf.Selectable = &pt
	return nil
}

// SelectionValueInput describes one option to create.
type SelectionValueInput struct {
	Label     *string `json:"label,omitempty"`
	Value     *string `json:"value,omitempty"`
	Preselect bool    `json:"preselect,omitempty"`
}

// SelectionInput is the selection part of a create request.
type SelectionInput struct {
	Multiselect *bool                 `json:"multiselect,omitempty"`
	Values      []SelectionValueInput `json:"values"`
}

// SelectionFieldInput carries the attributes of a selection field to create.
// Selection must be present.
type SelectionFieldInput struct {
	Name        string          `json:"name"`
	Label       string          `json:"label,omitempty"`
	Placeholder *string         `json:"placeholder,omitempty"`
	Model       string          `json:"model,omitempty"`
	Required    bool            `json:"required,omitempty"`
	Selection   *SelectionInput `json:"selection,omitempty"`
}
