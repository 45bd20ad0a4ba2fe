package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/faciam-dev/customfields/pkg/plaintype"
)

var customFieldColumns = []string{"name", "label", "placeholder", "model", "required", "selectable_type", "selectable_id"}

// CreateSelectionField creates a selection type over the plain type named
// typeName, its values and the custom field pointing at it, all in one
// transaction. Values are inserted in input order.
func (s *Store) CreateSelectionField(ctx context.Context, typeName string, in SelectionFieldInput) (CustomField, error) {
	if in.Selection == nil {
		return CustomField{}, ErrSelectionRequired
	}
	if strings.TrimSpace(in.Name) == "" {
		return CustomField{}, fmt.Errorf("%w: name is required", ErrValidation)
	}
	var cf CustomField
	err := WithTx(ctx, s.DB, func(tx *sql.Tx) error {
		ptID, err := s.plainTypeIDTx(ctx, tx, typeName)
		if err != nil {
			return err
		}
		multiselect := false
		if in.Selection.Multiselect != nil {
			multiselect = *in.Selection.Multiselect
		}
		stID, err := s.insertID(ctx, tx, "selection_types", []string{"plain_type_id", "multiselect"}, ptID, multiselect)
		if err != nil {
			return fmt.Errorf("insert selection type: %w", err)
		}
		st := SelectionType{
			ID:          stID,
			PlainTypeID: ptID,
			PlainType:   &PlainType{ID: ptID, Name: plaintype.Kind(typeName)},
			Multiselect: multiselect,
			Values:      make([]SelectionValue, 0, len(in.Selection.Values)),
		}
		for i, v := range in.Selection.Values {
			// selection_type_id always comes from the row created above.
			id, err := s.insertID(ctx, tx, "selection_values", []string{"selection_type_id", "label", "value", "preselect"}, stID, v.Label, v.Value, v.Preselect)
			if err != nil {
				return fmt.Errorf("insert selection value %d: %w", i, err)
			}
			sv := SelectionValue{ID: id, SelectionTypeID: stID, Value: v.Value, Preselect: v.Preselect}
			if v.Label != nil {
				sv.Label = *v.Label
			}
			st.Values = append(st.Values, sv)
		}
		cf = CustomField{
			Name:           in.Name,
			Label:          in.Label,
			Placeholder:    in.Placeholder,
			Model:          in.Model,
			Required:       in.Required,
			SelectableType: s.SelectionType,
			SelectableID:   stID,
		}
		cfID, err := s.insertID(ctx, tx, "custom_fields", customFieldColumns,
			cf.Name, cf.Label, cf.Placeholder, cf.Model, cf.Required, cf.SelectableType, cf.SelectableID)
		if err != nil {
			return fmt.Errorf("insert custom field: %w", err)
		}
		cf.ID = cfID
		cf.Selectable = &SelectionTarget{SelectionType: st}
		return nil
	})
	if err != nil {
		return CustomField{}, err
	}
	return cf, nil
}
