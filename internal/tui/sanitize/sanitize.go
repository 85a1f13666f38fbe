// Package sanitize cleans document text before it is rendered inside the
// TUI viewport. Stored texts sometimes arrive from copy/paste with terminal
// escape sequences or stray control bytes embedded; left alone these can
// corrupt the surrounding layout or the global terminal state (alternate
// screen, cursor movement, OSC title changes). SGR ("m") color sequences are
// preserved so intentionally colored previews still render.
package sanitize

import (
	"regexp"
	"strconv"
	"strings"
)

// Precompiled regexps used by ViewText.
var (
	oscRe = regexp.MustCompile(`\x1b\][^\x07]*\x07`)
	csiRe = regexp.MustCompile(`\x1b\[[0-9;?]*[A-Za-z]`)
)

// ViewText removes non-SGR control sequences that can affect the terminal
// global state while preserving SGR color sequences. Cursor-positioning
// sequences (CUF "C" and CHA "G") are replaced with spaces so text laid out
// with them stays readable. CR/LF sequences are normalized to LF.
func ViewText(in string) string {
	out := strings.ReplaceAll(in, "\r\n", "\n")
	out = strings.ReplaceAll(out, "\r", "\n")

	// OSC sequences (Operating System Command), e.g., ESC ] ... BEL
	out = oscRe.ReplaceAllString(out, "")

	// CSI sequences: keep SGR (colors), convert cursor-positioning to
	// spaces, drop everything else.
	out = csiRe.ReplaceAllStringFunc(out, replaceCsi)

	return out
}

func replaceCsi(s string) string {
	suffix := s[len(s)-1]
	switch suffix {
	case 'm':
		return s // SGR color codes
	case 'C':
		// Cursor Forward: \x1b[<n>C becomes n spaces (default 1)
		return strings.Repeat(" ", csiParam(s, 1))
	case 'G':
		// Cursor Horizontal Absolute. A streaming sanitizer cannot track
		// the current column, so emit a fixed separator instead.
		return "  "
	default:
		return ""
	}
}

// csiParam extracts the first numeric parameter from a CSI sequence like
// \x1b[<n><letter>. Returns def if the parameter is absent or invalid.
func csiParam(s string, def int) int {
	body := s[2 : len(s)-1]
	body = strings.TrimLeft(body, "?")
	if body == "" {
		return def
	}
	if idx := strings.IndexByte(body, ';'); idx >= 0 {
		body = body[:idx]
	}
	if n, err := strconv.Atoi(body); err == nil && n > 0 {
		return n
	}
	return def
}
