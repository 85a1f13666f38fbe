package cmd

import (
	"strings"
	"testing"

	"github.com/nlpkit/nespan/internal/db"
	"github.com/nlpkit/nespan/internal/registry"
)

func TestSpanAddListRemove(t *testing.T) {
	_ = setupTempDB(t)

	dbConn, err := db.InitDB()
	if err != nil {
		t.Fatalf("InitDB(): %v", err)
	}
	defer func() { _ = dbConn.Close() }()
	r := registry.NewRepository(dbConn)
	if _, err := r.CreateDocument("span-doc", nil, nil, nil, nil, "Rina visited Haifa", nil); err != nil {
		t.Fatalf("CreateDocument: %v", err)
	}

	rootCmd.SetArgs([]string{"span", "add", "span-doc", "0", "4", "Person"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("span add failed: %v", err)
	}

	// word indexes 2..3 cover "Haifa"
	rootCmd.SetArgs([]string{"span", "add", "span-doc", "2", "3", "--words"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("span add --words failed: %v", err)
	}

	out := captureStdout(t, func() {
		rootCmd.SetArgs([]string{"span", "list", "span-doc", "--json=false"})
		if err := rootCmd.Execute(); err != nil {
			t.Fatalf("span list failed: %v", err)
		}
	})
	if !strings.Contains(out, `Span(text="Rina", label="Person", range=[0, 4))`) {
		t.Fatalf("expected first span in listing, got: %s", out)
	}
	if !strings.Contains(out, `"Haifa"`) {
		t.Fatalf("expected word span text in listing, got: %s", out)
	}

	out = captureStdout(t, func() {
		rootCmd.SetArgs([]string{"span", "list", "span-doc", "--json"})
		if err := rootCmd.Execute(); err != nil {
			t.Fatalf("span list --json failed: %v", err)
		}
	})
	if !strings.Contains(out, `"range":[0,4]`) {
		t.Fatalf("expected JSON record in listing, got: %s", out)
	}

	rootCmd.SetArgs([]string{"span", "remove", "span-doc", "1"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("span remove failed: %v", err)
	}
	d, err := r.GetDocumentByName("span-doc")
	if err != nil {
		t.Fatalf("GetDocumentByName: %v", err)
	}
	if len(d.Spans) != 1 {
		t.Fatalf("expected 1 span after remove, got %d", len(d.Spans))
	}
}

func TestSpanAddRejectsUnknownLabel(t *testing.T) {
	_ = setupTempDB(t)

	dbConn, err := db.InitDB()
	if err != nil {
		t.Fatalf("InitDB(): %v", err)
	}
	defer func() { _ = dbConn.Close() }()
	r := registry.NewRepository(dbConn)
	if _, err := r.CreateDocument("label-doc", nil, nil, nil, nil, "some text", nil); err != nil {
		t.Fatalf("CreateDocument: %v", err)
	}

	rootCmd.SetArgs([]string{"span", "add", "label-doc", "0", "4", "bogus", "--words=false", "--any-label=false"})
	if err := rootCmd.Execute(); err == nil {
		t.Fatalf("expected unknown label to be rejected")
	}
	rootCmd.SetArgs([]string{"span", "add", "label-doc", "0", "4", "bogus", "--any-label"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("span add --any-label failed: %v", err)
	}
}

func TestTokensCommand(t *testing.T) {
	_ = setupTempDB(t)

	dbConn, err := db.InitDB()
	if err != nil {
		t.Fatalf("InitDB(): %v", err)
	}
	defer func() { _ = dbConn.Close() }()
	r := registry.NewRepository(dbConn)
	if _, err := r.CreateDocument("tok-doc", nil, nil, nil, nil, "שלום, Rina!", nil); err != nil {
		t.Fatalf("CreateDocument: %v", err)
	}

	out := captureStdout(t, func() {
		rootCmd.SetArgs([]string{"tokens", "tok-doc", "--count"})
		if err := rootCmd.Execute(); err != nil {
			t.Fatalf("tokens --count failed: %v", err)
		}
	})
	if strings.TrimSpace(out) != "2" {
		t.Fatalf("expected word count 2, got: %q", out)
	}

	out = captureStdout(t, func() {
		rootCmd.SetArgs([]string{"tokens", "tok-doc", "--count=false"})
		if err := rootCmd.Execute(); err != nil {
			t.Fatalf("tokens failed: %v", err)
		}
	})
	// offsets count runes, so the Hebrew word plus comma is [0,5)
	if !strings.Contains(out, "[0,5)\tשלום,") {
		t.Fatalf("expected rune-offset token line, got: %s", out)
	}
}
