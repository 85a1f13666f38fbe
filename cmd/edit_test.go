package cmd

import (
	"testing"

	"github.com/nlpkit/nespan/internal/db"
	"github.com/nlpkit/nespan/internal/registry"
	"github.com/nlpkit/nespan/internal/span"
)

func TestEditFromFileDropsOutOfRangeSpans(t *testing.T) {
	tmp := setupTempDB(t)

	dbConn, err := db.InitDB()
	if err != nil {
		t.Fatalf("InitDB(): %v", err)
	}
	defer func() { _ = dbConn.Close() }()
	r := registry.NewRepository(dbConn)
	recs := []span.Record{
		{Range: [2]int{0, 4}, Label: "Person"},
		{Range: [2]int{13, 18}, Label: "Citation"},
	}
	if _, err := r.CreateDocument("edit-doc", nil, nil, nil, nil, "Rina visited Haifa", recs); err != nil {
		t.Fatalf("CreateDocument: %v", err)
	}

	// shorter replacement text keeps only the first span
	newText := writeTempText(t, tmp, "new.txt", "Rina left\n")
	rootCmd.SetArgs([]string{"edit", "edit-doc", "-f", newText})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("edit failed: %v", err)
	}

	d, err := r.GetDocumentByName("edit-doc")
	if err != nil {
		t.Fatalf("GetDocumentByName: %v", err)
	}
	if d.Text != "Rina left" {
		t.Fatalf("unexpected text after edit: %q", d.Text)
	}
	if len(d.Spans) != 1 || d.Spans[0].End != 4 {
		t.Fatalf("expected only the in-range span to survive, got: %+v", d.Spans)
	}
}
