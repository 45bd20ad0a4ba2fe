// Package schema defines the request and response bodies of the HTTP API.
package schema

import (
	"github.com/faciam-dev/customfields/internal/customfield/store"
	"github.com/faciam-dev/customfields/pkg/plaintype"
)

// SelectionValueBody is one option in a create request.
type SelectionValueBody struct {
	Label     *string `json:"label,omitempty" maxLength:"255" doc:"Display label; required by the database"`
	Value     *string `json:"value,omitempty"`
	Preselect bool    `json:"preselect,omitempty"`

	// SelectionTypeID is accepted for compatibility and ignored; the server
	// assigns the id of the selection type it creates.
	SelectionTypeID *int64 `json:"selection_type_id,omitempty"`
}

// SelectionBody is the selection part of a create request.
type SelectionBody struct {
	Multiselect *bool                `json:"multiselect,omitempty" doc:"Defaults to false"`
	Values      []SelectionValueBody `json:"values,omitempty"`
}

// SelectionFieldBody is the body of POST /selection/{type}. Unknown attributes
// are accepted and dropped.
type SelectionFieldBody struct {
	_ struct{} `json:"-" additionalProperties:"true"`

	Name        string         `json:"name" minLength:"1" maxLength:"255"`
	Label       string         `json:"label,omitempty" maxLength:"255"`
	Placeholder *string        `json:"placeholder,omitempty" maxLength:"255"`
	Model       string         `json:"model,omitempty" maxLength:"255"`
	Required    bool           `json:"required,omitempty"`
	Selection   *SelectionBody `json:"selection,omitempty" doc:"Required; omitting it yields 422"`
}

// Input converts the body into the store input.
func (f SelectionFieldBody) Input() store.SelectionFieldInput {
	in := store.SelectionFieldInput{
		Name:        f.Name,
		Label:       f.Label,
		Placeholder: f.Placeholder,
		Model:       f.Model,
		Required:    f.Required,
	}
	if f.Selection != nil {
		in.Selection = &store.SelectionInput{Multiselect: f.Selection.Multiselect}
		for _, v := range f.Selection.Values {
			in.Selection.Values = append(in.Selection.Values, store.SelectionValueInput{
				Label:     v.Label,
				Value:     v.Value,
				Preselect: v.Preselect,
			})
		}
	}
	return in
}

// PlainTypeEntry is a catalog entry with its value column.
type PlainTypeEntry struct {
	ID          int64          `json:"id"`
	Name        plaintype.Kind `json:"name"`
	ValueColumn string         `json:"value_column"`
}

// PlainTypesFrom converts store rows into response entries.
func PlainTypesFrom(pts []store.PlainType) []PlainTypeEntry {
	out := make([]PlainTypeEntry, 0, len(pts))
	for _, p := range pts {
		out = append(out, PlainTypeEntry{ID: p.ID, Name: p.Name, ValueColumn: p.ValueColumn()})
	}
	return out
}
