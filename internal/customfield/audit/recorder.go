// Package audit records custom field changes in the audit_logs table.
package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/faciam-dev/customfields/internal/customfield/store"
	pkgutil "github.com/faciam-dev/customfields/pkg/util"
)

// Recorder writes audit logs to the database.
type Recorder struct {
	DB          *sql.DB
	Driver      string // mysql or postgres
	TablePrefix string
}

// Action derives the audit action from the before and after states.
func Action(old, new *store.CustomField) string {
	switch {
	case old == nil && new != nil:
		return "add"
	case old != nil && new == nil:
		return "delete"
	default:
		return "update"
	}
}

// Write records a single field change.
func (r *Recorder) Write(ctx context.Context, actor string, old, new *store.CustomField) error {
	if r == nil || r.DB == nil {
		return nil
	}
	if old == nil && new == nil {
		return nil
	}
	before, err := jsonArg(old)
	if err != nil {
		return err
	}
	after, err := jsonArg(new)
	if err != nil {
		return err
	}
	subject := new
	if subject == nil {
		subject = old
	}
	q := fmt.Sprintf("INSERT INTO %saudit_logs(actor, action, custom_field_id, before_json, after_json) VALUES (%s)", r.TablePrefix, pkgutil.Placeholders(r.Driver, 5))
	_, err = r.DB.ExecContext(ctx, q, actor, Action(old, new), subject.ID, before, after)
	return err
}

func jsonArg(cf *store.CustomField) (any, error) {
	if cf == nil {
		return nil, nil
	}
	b, err := json.Marshal(cf)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}
