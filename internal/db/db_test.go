package db

import (
	"os"
	"testing"

	"github.com/nlpkit/nespan/internal/config"
)

func TestInitDBCreatesFileAndSchema(t *testing.T) {
	tmp := t.TempDir()
	// Ensure user home resolves to tmp for DBPath
	_ = os.Setenv("HOME", tmp)
	_ = os.Setenv("USERPROFILE", tmp)
	_ = os.Unsetenv(config.EnvNespanHome)
	_ = os.Unsetenv(config.EnvNespanDB)

	dbPath, err := config.DBPath()
	if err != nil {
		t.Fatalf("DBPath(): %v", err)
	}
	_ = os.Remove(dbPath)

	db, err := InitDB()
	if err != nil {
		t.Fatalf("InitDB() error: %v", err)
	}
	defer func() { _ = db.Close() }()

	if _, err := os.Stat(dbPath); err != nil {
		t.Fatalf("db file not created: %v", err)
	}

	for _, table := range []string{"documents", "spans", "tags", "annotation_versions"} {
		var count int
		r := db.QueryRow("SELECT count(*) FROM sqlite_master WHERE type='table' AND name=?", table)
		if err := r.Scan(&count); err != nil {
			t.Fatalf("query schema: %v", err)
		}
		if count != 1 {
			t.Fatalf("expected table %q to exist", table)
		}
	}

	if _, err := db.Exec("INSERT INTO documents (name, text, created_at) VALUES (?, ?, datetime('now'))", "testdoc", "hello"); err != nil {
		t.Fatalf("insert document failed: %v", err)
	}
}
