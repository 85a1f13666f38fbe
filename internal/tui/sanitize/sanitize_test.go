package sanitize

import "testing"

func TestViewTextStripsOSCAndKeepsSGR(t *testing.T) {
	in := "\x1b]0;title\x07plain \x1b[31mred\x1b[0m text"
	got := ViewText(in)
	want := "plain \x1b[31mred\x1b[0m text"
	if got != want {
		t.Fatalf("ViewText = %q, want %q", got, want)
	}
}

func TestViewTextCursorSequences(t *testing.T) {
	if got := ViewText("a\x1b[3Cb"); got != "a   b" {
		t.Fatalf("cursor forward: got %q", got)
	}
	if got := ViewText("a\x1b[10Gb"); got != "a  b" {
		t.Fatalf("cursor absolute: got %q", got)
	}
	if got := ViewText("a\x1b[2Jb"); got != "ab" {
		t.Fatalf("clear screen should be dropped: got %q", got)
	}
}

func TestViewTextNormalizesLineEndings(t *testing.T) {
	if got := ViewText("a\r\nb\rc"); got != "a\nb\nc" {
		t.Fatalf("got %q", got)
	}
}
