package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/faciam-dev/customfields/internal/auth"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("FIELDCTL_API_URL", "")
	t.Setenv("FIELDCTL_TOKEN", "")
	buf := new(bytes.Buffer)
	root := newRootCmd()
	root.SetOut(buf)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func TestPlainTypesTable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":1,"name":"string","value_column":"string"},{"id":3,"name":"integer","value_column":"integer"}]`))
	}))
	defer srv.Close()

	out, err := run(t, "plain-types", "--api-url", srv.URL)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out, "integer") || !strings.Contains(out, "VALUE COLUMN") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestSelectionListJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/selection/date" {
			t.Errorf("path=%s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer abc" {
			t.Errorf("missing token")
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":4,"name":"due","selectable_type":"selection_type","selectable_id":1,"selectable":{"id":1,"plain_type_id":5,"multiselect":false,"values":[]}}]`))
	}))
	defer srv.Close()

	out, err := run(t, "selection", "list", "--type", "date", "--api-url", srv.URL, "--token", "abc", "--output", "json")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	var got []map[string]any
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if len(got) != 1 || got[0]["name"] != "due" {
		t.Fatalf("unexpected: %v", got)
	}
}

func TestSelectionCreateFromFile(t *testing.T) {
	var posted map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/selection/string" {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		_ = json.NewDecoder(r.Body).Decode(&posted)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":8,"name":"color","model":"product","selectable_type":"selection_type","selectable_id":2,"selectable":{"id":2,"plain_type_id":1,"multiselect":true,"values":[{"id":1,"selection_type_id":2,"label":"Red","preselect":false}]}}`))
	}))
	defer srv.Close()

	f := filepath.Join(t.TempDir(), "body.json")
	body := `{"name":"color","model":"product","selection":{"multiselect":true,"values":[{"label":"Red"}]}}`
	if err := os.WriteFile(f, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	out, err := run(t, "selection", "create", "--type", "string", "--file", f, "--api-url", srv.URL)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if posted["name"] != "color" || posted["selection"] == nil {
		t.Fatalf("unexpected body: %v", posted)
	}
	if !strings.Contains(out, "Red") || !strings.Contains(out, "color") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestSelectionCreateBadJSON(t *testing.T) {
	f := filepath.Join(t.TempDir(), "body.json")
	if err := os.WriteFile(f, []byte("{"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := run(t, "selection", "create", "--type", "string", "--file", f, "--api-url", "http://127.0.0.1:0"); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestDBVersion(t *testing.T) {
	db, mock, err := sqlmock.NewWithDSN("sqlmock_fieldctl_version")
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS `registry_schema_version`")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT MAX(version) FROM `registry_schema_version`")).
		WillReturnRows(sqlmock.NewRows([]string{"max"}).AddRow(int64(2)))

	out, err := run(t, "db", "version", "--db", "sqlmock_fieldctl_version", "--driver", "sqlmock", "--table-prefix", "")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if out != "2 (0.2), latest 2\n" {
		t.Fatalf("unexpected output: %q", out)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet: %v", err)
	}
}

func TestTokenCmd(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	out, err := run(t, "token", "--sub", "carol")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	claims, err := auth.NewJWT("s3cret", 0).Validate(strings.TrimSpace(out))
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.Subject != "carol" {
		t.Fatalf("subject=%s", claims.Subject)
	}
}

func TestTokenCmdNoSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	if _, err := run(t, "token"); err == nil {
		t.Fatal("expected error without secret")
	}
}

func TestProfileResolvesAPIURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer ptok" {
			t.Errorf("authorization=%q", r.Header.Get("Authorization"))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	home := t.TempDir()
	buf := new(bytes.Buffer)
	for _, args := range [][]string{
		{"profile", "set", "--name", "dev", "--url", srv.URL, "--bearer", "ptok", "--use"},
		{"plain-types", "--output", "json"},
		{"profile", "list"},
	} {
		t.Setenv("HOME", home)
		t.Setenv("FIELDCTL_API_URL", "")
		t.Setenv("FIELDCTL_TOKEN", "")
		buf.Reset()
		root := newRootCmd()
		root.SetOut(buf)
		root.SetErr(io.Discard)
		root.SetArgs(args)
		if err := root.Execute(); err != nil {
			t.Fatalf("%v: %v", args, err)
		}
	}
	if !strings.Contains(buf.String(), "dev") || !strings.Contains(buf.String(), "set") {
		t.Fatalf("unexpected profile list:\n%s", buf.String())
	}
}

func TestAuditList(t *testing.T) {
	db, mock, err := sqlmock.NewWithDSN("sqlmock_fieldctl_audit")
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	mock.ExpectQuery(regexp.QuoteMeta("FROM audit_logs WHERE custom_field_id = ? ORDER BY id DESC LIMIT 5")).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "actor", "action", "custom_field_id", "before_json", "after_json", "applied_at"}).
			AddRow(int64(1), "fieldctl", "add", int64(7), nil, `{"id":7}`, "2026-01-01 00:00:00"))

	out, err := run(t, "audit", "list", "--db", "sqlmock_fieldctl_audit", "--driver", "sqlmock", "--table-prefix", "", "--field-id", "7", "--limit", "5")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out, "fieldctl") || !strings.Contains(out, "2026-01-01 00:00:00") {
		t.Fatalf("unexpected output:\n%s", out)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet: %v", err)
	}
}
