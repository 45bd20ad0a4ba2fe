package dbcmd

import "testing"

func TestResolve(t *testing.T) {
	f := DBFlags{}
	if err := f.Resolve(); err == nil {
		t.Fatal("expected error for empty DSN")
	}
	f = DBFlags{DSN: "postgres://u:p@localhost/db"}
	if err := f.Resolve(); err != nil || f.Driver != "postgres" {
		t.Fatalf("driver=%q err=%v", f.Driver, err)
	}
	f = DBFlags{DSN: "whatever", Driver: "mysql"}
	if err := f.Resolve(); err != nil || f.Driver != "mysql" {
		t.Fatalf("explicit driver lost: %q %v", f.Driver, err)
	}
	f = DBFlags{DSN: "sqlite://x"}
	if err := f.Resolve(); err == nil {
		t.Fatal("expected detection error")
	}
}

func TestOpenMySQLDSN(t *testing.T) {
	f := DBFlags{DSN: "mysql://root:pw@tcp(db:3306)/cf?parseTime=true"}
	db, err := f.Open()
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()
	if f.Driver != "mysql" {
		t.Fatalf("driver=%q", f.Driver)
	}
}
