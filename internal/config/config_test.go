package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	c, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	got, err := c.Mapping(SelectionKey)
	if err != nil || got != DefaultSelectionType {
		t.Fatalf("selection mapping = %q, %v", got, err)
	}
	if c.T("plain_types") != "plain_types" {
		t.Fatalf("unexpected table name %q", c.T("plain_types"))
	}
}

func TestLoadFileOverrides(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "cf.yaml")
	body := "table_prefix: cf_\ntype_mappings:\n  selection: custom_selection\n  integer: integer_type\n"
	if err := os.WriteFile(p, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	c, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.T("custom_fields") != "cf_custom_fields" {
		t.Fatalf("prefix not applied: %q", c.T("custom_fields"))
	}
	if v, _ := c.Mapping(SelectionKey); v != "custom_selection" {
		t.Fatalf("selection mapping = %q", v)
	}
	if v, _ := c.Mapping("integer"); v != "integer_type" {
		t.Fatalf("integer mapping = %q", v)
	}
}

func TestMappingMissing(t *testing.T) {
	c := Config{}
	if _, err := c.Mapping(SelectionKey); err == nil {
		t.Fatalf("expected error for missing mapping")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
