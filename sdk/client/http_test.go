package client_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	sdk "github.com/faciam-dev/customfields/sdk"
	"github.com/faciam-dev/customfields/sdk/client"
)

func strPtr(s string) *string { return &s }

func TestHTTPListSelection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/selection/integer" {
			t.Errorf("path=%s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("authorization=%q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":1,"name":"qty","selectable_type":"selection_type","selectable_id":2,"selectable":{"id":2,"plain_type_id":3,"multiselect":false,"values":[{"id":9,"selection_type_id":2,"label":"One","preselect":false}]}}]`))
	}))
	defer srv.Close()

	c := client.NewHTTP(srv.URL+"/", client.WithToken("tok"))
	if c.Mode() != "http" {
		t.Fatalf("mode=%s", c.Mode())
	}
	fields, err := c.ListSelection(context.Background(), "integer")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(fields) != 1 {
		t.Fatalf("fields=%d", len(fields))
	}
	sel, ok := fields[0].Selectable.(*sdk.SelectionTarget)
	if !ok || len(sel.Values) != 1 || sel.Values[0].Label != "One" {
		t.Fatalf("unexpected target: %#v", fields[0].Selectable)
	}
}

func TestHTTPCreateSelection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/selection/string" {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode: %v", err)
		}
		sel, _ := body["selection"].(map[string]any)
		if vals, _ := sel["values"].([]any); len(vals) != 1 {
			t.Errorf("values=%v", sel["values"])
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":5,"name":"size","selectable_type":"selection_type","selectable_id":6,"selectable":{"id":6,"plain_type_id":1,"multiselect":true,"values":[]}}`))
	}))
	defer srv.Close()

	in := sdk.SelectionFieldInput{
		Name:      "size",
		Selection: &sdk.SelectionInput{Values: []sdk.SelectionValueInput{{Label: strPtr("S")}}},
	}
	cf, err := client.NewHTTP(srv.URL).CreateSelection(context.Background(), "string", in)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if cf.ID != 5 || cf.SelectableID != 6 {
		t.Fatalf("unexpected field: %#v", cf)
	}
}

func TestHTTPErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/problem+json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"title":"Unprocessable Entity","detail":"Selection data needs to be provided"}`))
	}))
	defer srv.Close()

	_, err := client.NewHTTP(srv.URL).CreateSelection(context.Background(), "string", sdk.SelectionFieldInput{Name: "x"})
	var se *client.StatusError
	if !errors.As(err, &se) || se.Code != http.StatusUnprocessableEntity {
		t.Fatalf("err=%v", err)
	}
}

func TestHTTPCreateRequiresType(t *testing.T) {
	if _, err := client.NewHTTP("http://127.0.0.1:0").CreateSelection(context.Background(), "", sdk.SelectionFieldInput{}); err == nil {
		t.Fatal("expected error")
	}
}

func TestHTTPPlainTypes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/plain-types" {
			t.Errorf("path=%s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":1,"name":"string","value_column":"string"}]`))
	}))
	defer srv.Close()

	pts, err := client.NewHTTP(srv.URL).PlainTypes(context.Background())
	if err != nil {
		t.Fatalf("plain types: %v", err)
	}
	if len(pts) != 1 || pts[0].ValueColumn != "string" {
		t.Fatalf("unexpected: %#v", pts)
	}
}
