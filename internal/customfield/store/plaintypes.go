package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/faciam-dev/customfields/pkg/plaintype"
	"github.com/faciam-dev/goquent/orm/query"
)

type plainTypeRow struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
}

func (r plainTypeRow) model() PlainType {
	return PlainType{ID: r.ID, Name: plaintype.Kind(r.Name)}
}

func (s *Store) plainTypesQuery() *query.Query {
	return s.newQuery("plain_types").
		Select("id", "name").
		OrderBy("id", "asc")
}

func (s *Store) plainTypesOfKindQuery(kind plaintype.Kind) *query.Query {
	return s.newQuery("plain_types").
		Select("id", "name").
		Where("name", string(kind)).
		OrderBy("id", "asc")
}

// ListPlainTypes returns the whole plain type catalog.
func (s *Store) ListPlainTypes(ctx context.Context) ([]PlainType, error) {
	var rows []plainTypeRow
	if err := s.plainTypesQuery().WithContext(ctx).Get(&rows); err != nil {
		return nil, fmt.Errorf("list plain types: %w", err)
	}
	out := make([]PlainType, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.model())
	}
	return out, nil
}

// PlainTypesOfKind returns the catalog rows whose name is exactly kind.
// Rows matched only through a case or accent insensitive collation are
// dropped.
func (s *Store) PlainTypesOfKind(ctx context.Context, kind plaintype.Kind) ([]PlainType, error) {
	var rows []plainTypeRow
	if err := s.plainTypesOfKindQuery(kind).WithContext(ctx).Get(&rows); err != nil {
		return nil, fmt.Errorf("query plain type %q: %w", kind, err)
	}
	var out []PlainType
	for _, r := range rows {
		if r.Name == string(kind) {
			out = append(out, r.model())
		}
	}
	return out, nil
}

// FindPlainTypeByName returns the plain type named name or
// ErrPlainTypeNotFound.
func (s *Store) FindPlainTypeByName(ctx context.Context, name string) (PlainType, error) {
	pts, err := s.PlainTypesOfKind(ctx, plaintype.Kind(name))
	if err != nil {
		return PlainType{}, err
	}
	if len(pts) == 0 {
		return PlainType{}, fmt.Errorf("%w: %q", ErrPlainTypeNotFound, name)
	}
	return pts[0], nil
}

// plainTypeIDTx resolves a plain type inside tx.
func (s *Store) plainTypeIDTx(ctx context.Context, tx *sql.Tx, name string) (int64, error) {
	q := fmt.Sprintf("SELECT id, name FROM %s WHERE name = %s", s.t("plain_types"), s.bind(1))
	var (
		id     int64
		stored string
	)
	err := tx.QueryRowContext(ctx, q, name).Scan(&id, &stored)
	if errors.Is(err, sql.ErrNoRows) || (err == nil && stored != name) {
		return 0, fmt.Errorf("%w: %q", ErrPlainTypeNotFound, name)
	}
	if err != nil {
		return 0, fmt.Errorf("resolve plain type: %w", err)
	}
	return id, nil
}

func (s *Store) bind(n int) string {
	if s.Driver == "postgres" {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}

// loadPlainTypes is the loader for fields whose target is a plain type row.
func (s *Store) loadPlainTypes(ctx context.Context, ids []int64) (map[int64]Target, error) {
	all, err := s.ListPlainTypes(ctx)
	if err != nil {
		return nil, err
	}
	want := make(map[int64]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	out := make(map[int64]Target, len(ids))
	for _, pt := range all {
		if want[pt.ID] {
			out[pt.ID] = &PlainTarget{PlainType: pt}
		}
	}
	return out, nil
}
