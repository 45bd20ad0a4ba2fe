package config

import (
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"
)

func TestLoadSave(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	empty, err := Load()
	if err != nil {
		t.Fatalf("load empty: %v", err)
	}
	if empty.Active != DefaultProfile || len(empty.Profiles) != 0 {
		t.Fatalf("unexpected empty store: %+v", empty)
	}

	cfg := &File{Active: "prod", Profiles: map[string]Profile{"prod": {APIURL: "http://api", Token: "tok"}}}
	if err := Save(cfg); err != nil {
		t.Fatalf("save: %v", err)
	}
	p, err := Path()
	if err != nil {
		t.Fatalf("path: %v", err)
	}
	info, err := os.Stat(p)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("perm = %v", info.Mode().Perm())
	}
	loaded, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(cfg, loaded); diff != "" {
		t.Fatalf("cfg diff (-want +got)\n%s", diff)
	}
	if err := loaded.Use("missing"); err == nil {
		t.Fatal("expected error for unknown profile")
	}
}

func newRoot() *cobra.Command {
	cmd := &cobra.Command{Use: "root"}
	cmd.Flags().String("api-url", "", "")
	cmd.Flags().String("token", "", "")
	cmd.Flags().String("profile", "", "")
	return cmd
}

func TestResolvePrecedence(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("FIELDCTL_API_URL", "")
	t.Setenv("FIELDCTL_TOKEN", "")
	cfg := &File{Active: DefaultProfile, Profiles: map[string]Profile{
		DefaultProfile: {APIURL: "cfg", Token: "cfgtok"},
		"other":        {APIURL: "other"},
	}}
	if err := Save(cfg); err != nil {
		t.Fatalf("save: %v", err)
	}

	t.Run("profile", func(t *testing.T) {
		r, err := Resolve(newRoot())
		if err != nil {
			t.Fatalf("resolve: %v", err)
		}
		if r.APIURL != "cfg" || r.Token != "cfgtok" {
			t.Fatalf("unexpected %+v", r)
		}
	})

	t.Run("env", func(t *testing.T) {
		t.Setenv("FIELDCTL_API_URL", "env")
		r, err := Resolve(newRoot())
		if err != nil {
			t.Fatalf("resolve: %v", err)
		}
		if r.APIURL != "env" || r.Token != "cfgtok" {
			t.Fatalf("unexpected %+v", r)
		}
	})

	t.Run("flags", func(t *testing.T) {
		t.Setenv("FIELDCTL_API_URL", "env")
		root := newRoot()
		_ = root.Flags().Set("api-url", "flag")
		_ = root.Flags().Set("token", "flagtok")
		r, err := Resolve(root)
		if err != nil {
			t.Fatalf("resolve: %v", err)
		}
		if r.APIURL != "flag" || r.Token != "flagtok" {
			t.Fatalf("unexpected %+v", r)
		}
	})

	t.Run("selected profile", func(t *testing.T) {
		root := newRoot()
		_ = root.Flags().Set("profile", "other")
		r, err := Resolve(root)
		if err != nil {
			t.Fatalf("resolve: %v", err)
		}
		if r.APIURL != "other" || r.Token != "" || r.Profile != "other" {
			t.Fatalf("unexpected %+v", r)
		}
	})
}
