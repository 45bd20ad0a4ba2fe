// Package auditlog reads the audit trail written by the audit recorder.
package auditlog

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// Page size bounds for List.
const (
	DefaultLimit = 50
	MaxLimit     = 200
)

// Record represents a single audit log entry in the database.
type Record struct {
	ID            int64          `json:"id"`
	Actor         string         `json:"actor"`
	Action        string         `json:"action"`
	CustomFieldID sql.NullInt64  `json:"-"`
	BeforeJSON    sql.NullString `json:"-"`
	AfterJSON     sql.NullString `json:"-"`
	AppliedAt     string         `json:"applied_at"`
}

// Filter narrows List results. Zero values match everything.
type Filter struct {
	CustomFieldID int64
	Action        string
	Actor         string
	Limit         int
}

// Repo provides access to audit log records.
type Repo struct {
	DB          *sql.DB
	Driver      string
	TablePrefix string
}

const recordColumns = "id, actor, action, custom_field_id, before_json, after_json, applied_at"

func (r *Repo) bind(n int) string {
	if r.Driver == "postgres" {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}

// List returns the newest records matching f, newest first.
func (r *Repo) List(ctx context.Context, f Filter) ([]Record, error) {
	if r == nil || r.DB == nil {
		return nil, sql.ErrConnDone
	}
	var (
		conds []string
		args  []any
	)
	if f.CustomFieldID > 0 {
		args = append(args, f.CustomFieldID)
		conds = append(conds, "custom_field_id = "+r.bind(len(args)))
	}
	if f.Action != "" {
		args = append(args, f.Action)
		conds = append(conds, "action = "+r.bind(len(args)))
	}
	if f.Actor != "" {
		args = append(args, f.Actor)
		conds = append(conds, "actor = "+r.bind(len(args)))
	}
	q := fmt.Sprintf("SELECT %s FROM %saudit_logs", recordColumns, r.TablePrefix)
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += fmt.Sprintf(" ORDER BY id DESC LIMIT %d", pageSize(f.Limit))

	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}
	defer rows.Close()
	out := []Record{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// FindByID returns a record by its ID. sql.ErrNoRows is returned when the
// record does not exist.
func (r *Repo) FindByID(ctx context.Context, id int64) (Record, error) {
	if r == nil || r.DB == nil {
		return Record{}, sql.ErrConnDone
	}
	q := fmt.Sprintf("SELECT %s FROM %saudit_logs WHERE id = %s", recordColumns, r.TablePrefix, r.bind(1))
	return scanRecord(r.DB.QueryRowContext(ctx, q, id))
}

func pageSize(limit int) int {
	switch {
	case limit <= 0:
		return DefaultLimit
	case limit > MaxLimit:
		return MaxLimit
	}
	return limit
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(s scanner) (Record, error) {
	var (
		rec       Record
		appliedAt any
	)
	if err := s.Scan(&rec.ID, &rec.Actor, &rec.Action, &rec.CustomFieldID, &rec.BeforeJSON, &rec.AfterJSON, &appliedAt); err != nil {
		return Record{}, err
	}
	rec.AppliedAt = formatTime(appliedAt)
	return rec, nil
}

// formatTime renders applied_at the same way for both drivers; mysql without
// parseTime hands back raw bytes.
func formatTime(v any) string {
	switch t := v.(type) {
	case time.Time:
		return t.UTC().Format(time.RFC3339)
	case []byte:
		return string(t)
	case string:
		return t
	case nil:
		return ""
	default:
		return fmt.Sprint(t)
	}
}
