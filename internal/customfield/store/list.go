package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/faciam-dev/customfields/pkg/plaintype"
	"github.com/faciam-dev/goquent/orm/query"
)

type customFieldRow struct {
	ID             int64          `db:"id"`
	Name           string         `db:"name"`
	Label          sql.NullString `db:"label"`
	Placeholder    sql.NullString `db:"placeholder"`
	Model          sql.NullString `db:"model"`
	Required       bool           `db:"required"`
	SelectableType string         `db:"selectable_type"`
	SelectableID   int64          `db:"selectable_id"`
}

func (r customFieldRow) model() CustomField {
	cf := CustomField{
		ID:             r.ID,
		Name:           r.Name,
		Label:          r.Label.String,
		Model:          r.Model.String,
		Required:       r.Required,
		SelectableType: r.SelectableType,
		SelectableID:   r.SelectableID,
	}
	if r.Placeholder.Valid {
		v := r.Placeholder.String
		cf.Placeholder = &v
	}
	return cf
}

type selectionTypeRow struct {
	ID          int64 `db:"id"`
	PlainTypeID int64 `db:"plain_type_id"`
	Multiselect bool  `db:"multiselect"`
}

type selectionValueRow struct {
	ID              int64          `db:"id"`
	SelectionTypeID int64          `db:"selection_type_id"`
	Label           string         `db:"label"`
	Value           sql.NullString `db:"value"`
	Preselect       bool           `db:"preselect"`
}

func (s *Store) selectionFieldsQuery(selectableIDs []int64) *query.Query {
	q := s.newQuery("custom_fields").
		Select("id", "name", "label", "placeholder", "model", "required", "selectable_type", "selectable_id").
		Where("selectable_type", s.SelectionType)
	if selectableIDs != nil {
		q.WhereIn("selectable_id", selectableIDs)
	}
	return q.OrderBy("id", "asc")
}

func (s *Store) selectionIDsByPlainTypeQuery(plainTypeID int64) *query.Query {
	return s.newQuery("selection_types").
		Select("id").
		Where("plain_type_id", plainTypeID).
		OrderBy("id", "asc")
}

func (s *Store) selectionTypesQuery(ids []int64) *query.Query {
	return s.newQuery("selection_types").
		Select("id", "plain_type_id", "multiselect").
		WhereIn("id", ids).
		OrderBy("id", "asc")
}

func (s *Store) selectionValuesQuery(selectionTypeIDs []int64) *query.Query {
	return s.newQuery("selection_values").
		Select("id", "selection_type_id", "label", "value", "preselect").
		WhereIn("selection_type_id", selectionTypeIDs).
		OrderBy("id", "asc")
}

// ListSelectionFields returns selection custom fields with their selection
// type and values loaded. A non-empty typeName restricts the result to
// selections over that plain type; unknown names yield an empty list.
func (s *Store) ListSelectionFields(ctx context.Context, typeName string) ([]CustomField, error) {
	var ids []int64
	if typeName != "" {
		pts, err := s.PlainTypesOfKind(ctx, plaintype.Kind(typeName))
		if err != nil {
			return nil, err
		}
		if len(pts) == 0 {
			return []CustomField{}, nil
		}
		var rows []struct {
			ID int64 `db:"id"`
		}
		if err := s.selectionIDsByPlainTypeQuery(pts[0].ID).WithContext(ctx).Get(&rows); err != nil {
			return nil, fmt.Errorf("query selection types: %w", err)
		}
		if len(rows) == 0 {
			return []CustomField{}, nil
		}
		ids = make([]int64, 0, len(rows))
		for _, r := range rows {
			ids = append(ids, r.ID)
		}
	}

	var rows []customFieldRow
	if err := s.selectionFieldsQuery(ids).WithContext(ctx).Get(&rows); err != nil {
		return nil, fmt.Errorf("query custom fields: %w", err)
	}
	fields := make([]CustomField, 0, len(rows))
	for _, r := range rows {
		fields = append(fields, r.model())
	}
	if err := s.attachTargets(ctx, fields); err != nil {
		return nil, err
	}
	return fields, nil
}

// attachTargets resolves Selectable for every field through the loader
// registered for its selectable_type.
func (s *Store) attachTargets(ctx context.Context, fields []CustomField) error {
	byType := map[string][]int64{}
	var order []string
	for _, f := range fields {
		if _, ok := byType[f.SelectableType]; !ok {
			order = append(order, f.SelectableType)
		}
		byType[f.SelectableType] = append(byType[f.SelectableType], f.SelectableID)
	}
	resolved := map[string]map[int64]Target{}
	for _, typ := range order {
		load, ok := s.loaders[typ]
		if !ok {
			return fmt.Errorf("no loader for selectable_type %q", typ)
		}
		targets, err := load(ctx, byType[typ])
		if err != nil {
			return err
		}
		resolved[typ] = targets
	}
	for i := range fields {
		if t, ok := resolved[fields[i].SelectableType][fields[i].SelectableID]; ok {
			fields[i].Selectable = t
		}
	}
	return nil
}

// loadSelections is the loader for selection targets.
func (s *Store) loadSelections(ctx context.Context, ids []int64) (map[int64]Target, error) {
	if len(ids) == 0 {
		return map[int64]Target{}, nil
	}
	var sts []selectionTypeRow
	if err := s.selectionTypesQuery(ids).WithContext(ctx).Get(&sts); err != nil {
		return nil, fmt.Errorf("query selection types: %w", err)
	}
	if len(sts) == 0 {
		return map[int64]Target{}, nil
	}
	stIDs := make([]int64, 0, len(sts))
	for _, st := range sts {
		stIDs = append(stIDs, st.ID)
	}
	var vals []selectionValueRow
	if err := s.selectionValuesQuery(stIDs).WithContext(ctx).Get(&vals); err != nil {
		return nil, fmt.Errorf("query selection values: %w", err)
	}
	plain, err := s.ListPlainTypes(ctx)
	if err != nil {
		return nil, err
	}
	plainByID := make(map[int64]PlainType, len(plain))
	for _, p := range plain {
		plainByID[p.ID] = p
	}

	out := make(map[int64]Target, len(sts))
	targets := make(map[int64]*SelectionTarget, len(sts))
	for _, r := range sts {
		t := &SelectionTarget{SelectionType: SelectionType{
			ID:          r.ID,
			PlainTypeID: r.PlainTypeID,
			Multiselect: r.Multiselect,
			Values:      []SelectionValue{},
		}}
		if p, ok := plainByID[r.PlainTypeID]; ok {
			pt := p
			t.PlainType = &pt
		}
		targets[r.ID] = t
		out[r.ID] = t
	}
	for _, v := range vals {
		t, ok := targets[v.SelectionTypeID]
		if !ok {
			continue
		}
		sv := SelectionValue{ID: v.ID, SelectionTypeID: v.SelectionTypeID, Label: v.Label, Preselect: v.Preselect}
		if v.Value.Valid {
			val := v.Value.String
			sv.Value = &val
		}
		t.Values = append(t.Values, sv)
	}
	return out, nil
}

// CountFieldsByType returns the number of custom fields per selectable_type.
func (s *Store) CountFieldsByType(ctx context.Context) (map[string]int, error) {
	q := fmt.Sprintf("SELECT selectable_type, COUNT(*) FROM %s GROUP BY selectable_type", s.t("custom_fields"))
	rows, err := s.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("count fields: %w", err)
	}
	defer rows.Close()
	res := map[string]int{}
	for rows.Next() {
		var (
			typ string
			n   int
		)
		if err := rows.Scan(&typ, &n); err != nil {
			return nil, err
		}
		res[typ] = n
	}
	return res, rows.Err()
}
