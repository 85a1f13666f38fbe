package utils

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"

	shellquote "github.com/kballard/go-shellquote"
)

// OpenEditor opens the given file in the user's preferred editor.
// It respects the $EDITOR environment variable, which may carry arguments
// (e.g. "code --wait"). On Windows if $EDITOR is not set, it falls back to
// notepad; on Unix it falls back to vi.
func OpenEditor(path string) error {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		if runtime.GOOS == "windows" {
			editor = "notepad"
		} else {
			editor = "vi"
		}
	}
	parts, err := shellquote.Split(editor)
	if err != nil {
		return fmt.Errorf("parse EDITOR %q: %w", editor, err)
	}
	if len(parts) == 0 {
		return fmt.Errorf("EDITOR is empty")
	}
	args := append(parts[1:], path)
	cmd := exec.Command(parts[0], args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("open editor: %w", err)
	}
	return nil
}
