package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nlpkit/nespan/internal/install"
)

func TestInstallDryRunCLI(t *testing.T) {
	tmp := t.TempDir()
	src := filepath.Join(tmp, "srcfile")
	_ = os.WriteFile(src, []byte("exe"), 0o644)

	t.Setenv("HOME", tmp)
	t.Setenv("USERPROFILE", tmp)

	out := captureStdout(t, func() {
		rootCmd.SetArgs([]string{"install", "--dry-run", "--from", src})
		if err := rootCmd.Execute(); err != nil {
			t.Fatalf("install command failed: %v", err)
		}
	})
	if !strings.Contains(out, "Planned actions for install") {
		t.Fatalf("expected planned actions, got: %s", out)
	}
}

func TestUninstallDryRunCLI(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	out := captureStdout(t, func() {
		rootCmd.SetArgs([]string{"uninstall", "--dry-run"})
		if err := rootCmd.Execute(); err != nil {
			t.Fatalf("uninstall command failed: %v", err)
		}
	})
	if !strings.Contains(out, "Planned actions for uninstall") {
		t.Fatalf("expected planned actions, got: %s", out)
	}
}

func TestPlanInstallUserDir(t *testing.T) {
	p := install.DefaultUserBin()
	if p == "" {
		t.Fatalf("expected default user bin")
	}
}
