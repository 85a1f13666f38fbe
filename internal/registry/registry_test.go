package registry

import (
	"os"
	"testing"

	"github.com/nlpkit/nespan/internal/config"
	"github.com/nlpkit/nespan/internal/db"
	"github.com/nlpkit/nespan/internal/span"
)

func setupRepo(t *testing.T) *Repository {
	t.Helper()
	tmp := t.TempDir()
	_ = os.Setenv(config.EnvNespanHome, tmp)
	t.Cleanup(func() { _ = os.Unsetenv(config.EnvNespanHome) })

	dbConn, err := db.InitDB()
	if err != nil {
		t.Fatalf("InitDB(): %v", err)
	}
	t.Cleanup(func() { _ = dbConn.Close() })
	return NewRepository(dbConn)
}

func setupDemoDoc(t *testing.T) (*Repository, int64) {
	t.Helper()
	r := setupRepo(t)
	desc := "demo"
	lang := "en"
	id, err := r.CreateDocument("demo", &desc, &lang, nil, nil, "the quick brown fox", []span.Record{
		{Range: [2]int{0, 3}, Label: "title"},
		{Range: [2]int{4, 9}, Label: "number"},
	})
	if err != nil {
		t.Fatalf("CreateDocument: %v", err)
	}
	if id == 0 {
		t.Fatalf("expected non-zero id")
	}
	return r, id
}

func TestRepository_CreateAndRetrieve(t *testing.T) {
	r, _ := setupDemoDoc(t)
	d, err := r.GetDocumentByName("demo")
	if err != nil {
		t.Fatalf("GetDocumentByName: %v", err)
	}
	if d == nil {
		t.Fatalf("expected document")
	}
	if len(d.Spans) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(d.Spans))
	}
	if d.Spans[0].Start != 0 || d.Spans[0].End != 3 || d.Spans[0].Label.String != "title" {
		t.Fatalf("unexpected first span: %+v", d.Spans[0])
	}
	if !d.UID.Valid || d.UID.String == "" {
		t.Fatalf("expected a generated uid")
	}
}

func TestRepository_DuplicateNameRejected(t *testing.T) {
	r, _ := setupDemoDoc(t)
	if _, err := r.CreateDocument(" demo ", nil, nil, nil, nil, "other", nil); err == nil {
		t.Fatalf("expected duplicate trimmed name to be rejected")
	}
}

func TestRepository_SpanValidation(t *testing.T) {
	r := setupRepo(t)
	// out-of-range span must be rejected at create time
	if _, err := r.CreateDocument("bad", nil, nil, nil, nil, "short", []span.Record{{Range: [2]int{0, 99}}}); err == nil {
		t.Fatalf("expected out-of-range span to be rejected")
	}
	// rune-length boundary: Hebrew text has fewer runes than bytes
	id, err := r.CreateDocument("heb", nil, nil, nil, nil, "שלום עולם", []span.Record{{Range: [2]int{5, 9}, Label: "מקור"}})
	if err != nil {
		t.Fatalf("CreateDocument: %v", err)
	}
	if _, err := r.AddSpan(id, span.Record{Range: [2]int{0, 10}}); err == nil {
		t.Fatalf("expected span past rune length to be rejected")
	}
}

func TestRepository_AddAndRemoveSpan(t *testing.T) {
	r, id := setupDemoDoc(t)
	if _, err := r.AddSpan(id, span.Record{Range: [2]int{10, 15}, Label: "ibid"}); err != nil {
		t.Fatalf("AddSpan: %v", err)
	}
	d, err := r.GetDocumentByName("demo")
	if err != nil {
		t.Fatalf("GetDocumentByName: %v", err)
	}
	if len(d.Spans) != 3 {
		t.Fatalf("expected 3 spans, got %d", len(d.Spans))
	}
	if d.Spans[2].Position != 3 {
		t.Fatalf("expected appended span at position 3, got %d", d.Spans[2].Position)
	}
	if err := r.RemoveSpan(id, 2); err != nil {
		t.Fatalf("RemoveSpan: %v", err)
	}
	d, _ = r.GetDocumentByName("demo")
	if len(d.Spans) != 2 {
		t.Fatalf("expected 2 spans after removal, got %d", len(d.Spans))
	}
}

func TestRepository_List(t *testing.T) {
	r, _ := setupDemoDoc(t)
	docs, err := r.ListDocuments()
	if err != nil {
		t.Fatalf("ListDocuments: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("expected one document, got %d", len(docs))
	}
}

func TestRepository_Delete(t *testing.T) {
	r, _ := setupDemoDoc(t)
	if err := r.DeleteDocument("demo"); err != nil {
		t.Fatalf("DeleteDocument: %v", err)
	}
	d, err := r.GetDocumentByName("demo")
	if err != nil {
		t.Fatalf("GetDocumentByName: %v", err)
	}
	if d != nil {
		t.Fatalf("expected document to be gone")
	}
	// deleting a missing document is not an error
	if err := r.DeleteDocument("demo"); err != nil {
		t.Fatalf("DeleteDocument (missing): %v", err)
	}
}

func TestRepository_UpdateMetadataAndTags(t *testing.T) {
	r, id := setupDemoDoc(t)
	desc := "renamed"
	if err := r.UpdateDocument(id, "demo2", &desc, nil, nil, nil, []string{"talmud", "test"}); err != nil {
		t.Fatalf("UpdateDocument: %v", err)
	}
	d, err := r.GetDocumentByName("demo2")
	if err != nil || d == nil {
		t.Fatalf("GetDocumentByName after rename: %v", err)
	}
	if len(d.Tags) != 2 {
		t.Fatalf("expected 2 tags, got %v", d.Tags)
	}
	byTag, err := r.ListDocumentsByTag("talmud")
	if err != nil {
		t.Fatalf("ListDocumentsByTag: %v", err)
	}
	if len(byTag) != 1 || byTag[0].Name != "demo2" {
		t.Fatalf("unexpected tag lookup result: %+v", byTag)
	}
}

func TestRepository_UpdateAndReplaceSpans(t *testing.T) {
	r, id := setupDemoDoc(t)
	recs := []span.Record{{Range: [2]int{16, 19}, Label: "Citation"}}
	if err := r.UpdateDocumentAndReplaceSpans(id, "demo", nil, nil, nil, nil, nil, recs); err != nil {
		t.Fatalf("UpdateDocumentAndReplaceSpans: %v", err)
	}
	d, _ := r.GetDocumentByName("demo")
	if len(d.Spans) != 1 || d.Spans[0].Start != 16 {
		t.Fatalf("unexpected spans after replace: %+v", d.Spans)
	}
	// exactly one update version on top of the create version
	vs, err := r.ListVersions(id)
	if err != nil {
		t.Fatalf("ListVersions: %v", err)
	}
	if len(vs) != 2 || vs[0].Operation != "update" {
		t.Fatalf("unexpected versions: %+v", vs)
	}
}

func TestRepository_ReplaceTextDropsStaleSpans(t *testing.T) {
	r, id := setupDemoDoc(t)
	if err := r.ReplaceText(id, "tiny"); err != nil {
		t.Fatalf("ReplaceText: %v", err)
	}
	d, _ := r.GetDocumentByName("demo")
	if d.Text != "tiny" {
		t.Fatalf("text not replaced: %q", d.Text)
	}
	if len(d.Spans) != 1 {
		// only [0,3) still fits inside "tiny"
		t.Fatalf("expected 1 surviving span, got %d", len(d.Spans))
	}
}

func TestRepository_Search(t *testing.T) {
	r, _ := setupDemoDoc(t)
	hits, err := r.SearchDocuments("quick")
	if err != nil {
		t.Fatalf("SearchDocuments: %v", err)
	}
	if len(hits) != 1 {
		t.Fatalf("expected text match, got %d", len(hits))
	}
	hits, err = r.SearchDocuments("number")
	if err != nil {
		t.Fatalf("SearchDocuments: %v", err)
	}
	if len(hits) != 1 {
		t.Fatalf("expected label match, got %d", len(hits))
	}
	hits, err = r.SearchDocuments("nomatch")
	if err != nil {
		t.Fatalf("SearchDocuments: %v", err)
	}
	if len(hits) != 0 {
		t.Fatalf("expected no matches, got %d", len(hits))
	}
}
