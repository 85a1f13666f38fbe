package importer

import (
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nlpkit/nespan/internal/config"
	"github.com/nlpkit/nespan/internal/db"
	"github.com/nlpkit/nespan/internal/exporter"
	"github.com/nlpkit/nespan/internal/registry"
	"github.com/nlpkit/nespan/internal/span"
)

// exportFixture creates a document in a scratch home and exports it to a
// standalone file, returning the export path.
func exportFixture(t *testing.T) string {
	t.Helper()
	srcHome := t.TempDir()
	_ = os.Setenv(config.EnvNespanHome, srcHome)

	dbConn, err := db.InitDB()
	if err != nil {
		t.Fatalf("InitDB (src): %v", err)
	}
	r := registry.NewRepository(dbConn)
	id, err := r.CreateDocument("shared", nil, nil, nil, nil, "imported text", []span.Record{{Range: [2]int{0, 8}, Label: "title"}})
	if err != nil {
		t.Fatalf("CreateDocument: %v", err)
	}
	if err := r.AddTagToDocument(id, "imported"); err != nil {
		t.Fatalf("AddTagToDocument: %v", err)
	}
	out := filepath.Join(srcHome, "shared.db")
	if err := exporter.ExportDocument(dbConn, "shared", out); err != nil {
		t.Fatalf("ExportDocument: %v", err)
	}
	_ = dbConn.Close()
	return out
}

func TestImportDocuments(t *testing.T) {
	exported := exportFixture(t)

	dstHome := t.TempDir()
	_ = os.Setenv(config.EnvNespanHome, dstHome)
	defer func() { _ = os.Unsetenv(config.EnvNespanHome) }()

	dbConn, err := db.InitDB()
	if err != nil {
		t.Fatalf("InitDB (dst): %v", err)
	}
	defer func() { _ = dbConn.Close() }()

	if err := ImportDocuments(exported); err != nil {
		t.Fatalf("ImportDocuments: %v", err)
	}

	r := registry.NewRepository(dbConn)
	d, err := r.GetDocumentByName("shared")
	if err != nil || d == nil {
		t.Fatalf("imported document missing: %v", err)
	}
	if d.Text != "imported text" || len(d.Spans) != 1 {
		t.Fatalf("unexpected imported document: %+v", d)
	}
	if len(d.Tags) != 1 || d.Tags[0] != "imported" {
		t.Fatalf("tags not imported: %v", d.Tags)
	}
}

func TestImportDocumentsCollisionRename(t *testing.T) {
	exported := exportFixture(t)

	dstHome := t.TempDir()
	_ = os.Setenv(config.EnvNespanHome, dstHome)
	defer func() { _ = os.Unsetenv(config.EnvNespanHome) }()

	dbConn, err := db.InitDB()
	if err != nil {
		t.Fatalf("InitDB (dst): %v", err)
	}
	defer func() { _ = dbConn.Close() }()

	r := registry.NewRepository(dbConn)
	if _, err := r.CreateDocument("shared", nil, nil, nil, nil, "already here", nil); err != nil {
		t.Fatalf("CreateDocument: %v", err)
	}

	if err := ImportDocuments(exported); err != nil {
		t.Fatalf("ImportDocuments: %v", err)
	}
	d, err := r.GetDocumentByName("shared-import-1")
	if err != nil || d == nil {
		t.Fatalf("renamed import missing: %v", err)
	}
	if d.Text != "imported text" {
		t.Fatalf("unexpected renamed document text: %q", d.Text)
	}
}

func TestImportDocumentsTrimEqualCollisionRename(t *testing.T) {
	exported := exportFixture(t)

	// pad the exported name; the destination schema treats names that
	// differ only in surrounding whitespace as the same document
	srcConn, err := sql.Open("sqlite", exported)
	if err != nil {
		t.Fatalf("open exported db: %v", err)
	}
	if _, err := srcConn.Exec("UPDATE documents SET name = ' shared ' WHERE name = 'shared'"); err != nil {
		t.Fatalf("rename exported document: %v", err)
	}
	_ = srcConn.Close()

	dstHome := t.TempDir()
	_ = os.Setenv(config.EnvNespanHome, dstHome)
	defer func() { _ = os.Unsetenv(config.EnvNespanHome) }()

	dbConn, err := db.InitDB()
	if err != nil {
		t.Fatalf("InitDB (dst): %v", err)
	}
	defer func() { _ = dbConn.Close() }()

	r := registry.NewRepository(dbConn)
	if _, err := r.CreateDocument("shared", nil, nil, nil, nil, "already here", nil); err != nil {
		t.Fatalf("CreateDocument: %v", err)
	}

	if err := ImportDocuments(exported); err != nil {
		t.Fatalf("ImportDocuments: %v", err)
	}
	docs, err := r.ListDocuments()
	if err != nil {
		t.Fatalf("ListDocuments: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected existing plus renamed import, got %d documents", len(docs))
	}
	var renamed string
	for _, d := range docs {
		if d.Name != "shared" {
			renamed = d.Name
		}
	}
	if !strings.Contains(renamed, "-import-1") {
		t.Fatalf("expected import suffix on renamed document, got %q", renamed)
	}
}

func TestImportDatabaseRefusesOverwrite(t *testing.T) {
	exported := exportFixture(t)

	dstHome := t.TempDir()
	_ = os.Setenv(config.EnvNespanHome, dstHome)
	defer func() { _ = os.Unsetenv(config.EnvNespanHome) }()

	dbConn, err := db.InitDB()
	if err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	_ = dbConn.Close()

	if err := ImportDatabase(exported, false); err == nil {
		t.Fatalf("expected refusal without overwrite")
	}
	if err := ImportDatabase(exported, true); err != nil {
		t.Fatalf("ImportDatabase with overwrite: %v", err)
	}
}
