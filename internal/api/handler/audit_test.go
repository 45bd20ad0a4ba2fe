package handler

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/faciam-dev/customfields/internal/api/schema"
	"github.com/faciam-dev/customfields/internal/auditlog"
	"github.com/go-chi/chi/v5"
)

var auditCols = []string{"id", "actor", "action", "custom_field_id", "before_json", "after_json", "applied_at"}

func newAuditAPI(t *testing.T) (humatest.TestAPI, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	api := humatest.Wrap(t, humachi.New(chi.NewRouter(), huma.DefaultConfig("test", "1.0.0")))
	RegisterAudit(api, &AuditHandler{Repo: &auditlog.Repo{DB: db, Driver: "postgres"}})
	return api, mock
}

func TestListAuditLogs(t *testing.T) {
	api, mock := newAuditAPI(t)
	mock.ExpectQuery(`FROM audit_logs WHERE custom_field_id = \$1 ORDER BY id DESC LIMIT 10`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(auditCols).
			AddRow(int64(2), "alice", "add", int64(7), nil, `{"id":7}`, "2026-01-01T00:00:00Z"))

	resp := api.Get("/audit-logs?custom_field_id=7&limit=10")
	if resp.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", resp.Code, resp.Body.String())
	}
	var got []schema.AuditLogEntry
	if err := json.Unmarshal(resp.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 1 || got[0].CustomFieldID == nil || *got[0].CustomFieldID != 7 || got[0].Actor != "alice" {
		t.Fatalf("unexpected entries: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet: %v", err)
	}
}

func TestAuditDiff(t *testing.T) {
	api, mock := newAuditAPI(t)
	mock.ExpectQuery(`FROM audit_logs WHERE id = \$1`).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows(auditCols).
			AddRow(int64(3), "alice", "add", int64(7), nil, `{"name":"color"}`, nil))
	mock.ExpectQuery(`FROM audit_logs WHERE id = \$1`).
		WithArgs(int64(4)).
		WillReturnError(sql.ErrNoRows)

	resp := api.Get("/audit-logs/3/diff")
	if resp.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", resp.Code, resp.Body.String())
	}
	var d auditlog.Diff
	if err := json.Unmarshal(resp.Body.Bytes(), &d); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if d.Added != 1 || !strings.Contains(d.Unified, `"name": "color"`) {
		t.Fatalf("unexpected diff: %+v", d)
	}
	if resp := api.Get("/audit-logs/4/diff"); resp.Code != http.StatusNotFound {
		t.Fatalf("missing record status=%d", resp.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet: %v", err)
	}
}
