package cmd

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/nlpkit/nespan/internal/db"
	"github.com/nlpkit/nespan/internal/registry"
)

// captureStdout runs fn while redirecting os.Stdout and returns what was printed.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	oldOut := os.Stdout
	rOut, wOut, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	os.Stdout = wOut
	fn()
	_ = wOut.Close()
	var buf bytes.Buffer
	_, _ = io.Copy(&buf, rOut)
	os.Stdout = oldOut
	return buf.String()
}

func TestListFilterAndFuzzy(t *testing.T) {
	_ = setupTempDB(t)

	dbConn, err := db.InitDB()
	if err != nil {
		t.Fatalf("InitDB(): %v", err)
	}
	defer func() { _ = dbConn.Close() }()
	r := registry.NewRepository(dbConn)
	desc := "talmud page"
	if _, err := r.CreateDocument("berakhot-2a", &desc, nil, nil, nil, "first page text", nil); err != nil {
		t.Fatalf("CreateDocument: %v", err)
	}
	if _, err := r.CreateDocument("shabbat-31a", nil, nil, nil, nil, "other page text", nil); err != nil {
		t.Fatalf("CreateDocument: %v", err)
	}

	out := captureStdout(t, func() {
		rootCmd.SetArgs([]string{"list", "--filter", "berakhot", "--tag=", "--fuzzy=false"})
		if err := rootCmd.Execute(); err != nil {
			t.Fatalf("list --filter failed: %v", err)
		}
	})
	if !strings.Contains(out, "berakhot-2a") || strings.Contains(out, "shabbat-31a") {
		t.Fatalf("expected filter to match berakhot only, got: %s", out)
	}
	if !strings.Contains(out, "3 words") {
		t.Fatalf("expected word count in listing, got: %s", out)
	}

	// typo matches only with --fuzzy
	out = captureStdout(t, func() {
		rootCmd.SetArgs([]string{"list", "--filter", "brkht", "--fuzzy"})
		if err := rootCmd.Execute(); err != nil {
			t.Fatalf("list --fuzzy failed: %v", err)
		}
	})
	if !strings.Contains(out, "berakhot-2a") {
		t.Fatalf("expected fuzzy match for berakhot, got: %s", out)
	}
}
