package cmd

import (
	"strings"
	"testing"
)

func TestVersionPrintsCurrent(t *testing.T) {
	out := captureStdout(t, func() {
		rootCmd.SetArgs([]string{"version", "--check="})
		if err := rootCmd.Execute(); err != nil {
			t.Fatalf("version failed: %v", err)
		}
	})
	if !strings.Contains(out, "nespan v") {
		t.Fatalf("expected version line, got: %s", out)
	}
}

func TestVersionCheckAgainstManifest(t *testing.T) {
	tmp := t.TempDir()
	manifest := writeTempText(t, tmp, "nespan.toml", "name = \"nespan\"\nversion = \"v0.3.0\"\n")

	out := captureStdout(t, func() {
		rootCmd.SetArgs([]string{"version", "--check", "v0.3.0", "--manifest", manifest})
		if err := rootCmd.Execute(); err != nil {
			t.Fatalf("version --check failed: %v", err)
		}
	})
	if !strings.Contains(out, "tag v0.3.0 matches manifest") {
		t.Fatalf("expected match line, got: %s", out)
	}
	if !strings.Contains(out, "install URL: git+https://github.com/nlpkit/nespan.git@v0.3.0") {
		t.Fatalf("expected install URL, got: %s", out)
	}

	// tag drift is an error
	rootCmd.SetArgs([]string{"version", "--check", "v0.4.0", "--manifest", manifest})
	if err := rootCmd.Execute(); err == nil {
		t.Fatalf("expected mismatched tag to fail")
	}
}
