package utils

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func writeFakeEditor(t *testing.T, dir, body string) string {
	t.Helper()
	var scriptPath string
	if runtime.GOOS == "windows" {
		scriptPath = filepath.Join(dir, "fake-editor.bat")
	} else {
		scriptPath = filepath.Join(dir, "fake-editor.sh")
	}
	if err := os.WriteFile(scriptPath, []byte(body), 0o755); err != nil {
		t.Fatalf("write script: %v", err)
	}
	if err := os.Chmod(scriptPath, 0o755); err != nil {
		t.Fatalf("chmod script: %v", err)
	}
	return scriptPath
}

func TestOpenEditor_Success(t *testing.T) {
	d := t.TempDir()
	marker := filepath.Join(d, "marker.txt")
	var body string
	if runtime.GOOS == "windows" {
		body = "@echo off\r\necho ok > \"" + marker + "\"\r\nexit /b 0\r\n"
	} else {
		body = "#!/bin/sh\nprintf 'ok' > \"" + marker + "\"\nexit 0\n"
	}
	_ = os.Setenv("EDITOR", writeFakeEditor(t, d, body))
	defer func() { _ = os.Unsetenv("EDITOR") }()

	if err := OpenEditor(filepath.Join(d, "dummy.txt")); err != nil {
		t.Fatalf("OpenEditor failed: %v", err)
	}
	b, err := os.ReadFile(marker)
	if err != nil {
		t.Fatalf("marker not written: %v", err)
	}
	if strings.TrimSpace(string(b)) != "ok" {
		t.Fatalf("unexpected marker content: %q", string(b))
	}
}

func TestOpenEditor_EditorWithArgs(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("argument passing tested on unix shells")
	}
	d := t.TempDir()
	marker := filepath.Join(d, "marker.txt")
	// the fake editor records its arguments; EDITOR carries a flag that must
	// be split off before exec
	body := "#!/bin/sh\nprintf '%s' \"$*\" > \"" + marker + "\"\nexit 0\n"
	script := writeFakeEditor(t, d, body)
	_ = os.Setenv("EDITOR", script+" --wait")
	defer func() { _ = os.Unsetenv("EDITOR") }()

	target := filepath.Join(d, "dummy.txt")
	if err := OpenEditor(target); err != nil {
		t.Fatalf("OpenEditor failed: %v", err)
	}
	b, _ := os.ReadFile(marker)
	if string(b) != "--wait "+target {
		t.Fatalf("unexpected args: %q", string(b))
	}
}

func TestOpenEditor_Failure(t *testing.T) {
	d := t.TempDir()
	var body string
	if runtime.GOOS == "windows" {
		body = "@echo off\r\nexit /b 1\r\n"
	} else {
		body = "#!/bin/sh\nexit 1\n"
	}
	_ = os.Setenv("EDITOR", writeFakeEditor(t, d, body))
	defer func() { _ = os.Unsetenv("EDITOR") }()

	if err := OpenEditor(filepath.Join(d, "dummy.txt")); err == nil {
		t.Fatalf("expected error from failing editor, got nil")
	}
}
