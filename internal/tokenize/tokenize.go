// Package tokenize provides language-agnostic word segmentation.
//
// Words are runs of non-whitespace runes. All offsets are rune indices,
// not byte offsets, so positions are stable across scripts (Hebrew,
// Latin, CJK) and combining sequences.
package tokenize

import "unicode"

// WordSpan is a half-open [Start, End) rune range covering one word.
type WordSpan struct {
	Start int
	End   int
}

// WordSpans segments text into words and returns their rune ranges in
// order of appearance.
func WordSpans(text string) []WordSpan {
	var out []WordSpan
	start := -1
	i := 0
	for _, r := range text {
		if unicode.IsSpace(r) {
			if start >= 0 {
				out = append(out, WordSpan{Start: start, End: i})
				start = -1
			}
		} else if start < 0 {
			start = i
		}
		i++
	}
	if start >= 0 {
		out = append(out, WordSpan{Start: start, End: i})
	}
	return out
}

// Words returns the word substrings of text in order of appearance.
func Words(text string) []string {
	runes := []rune(text)
	spans := WordSpans(text)
	out := make([]string, 0, len(spans))
	for _, s := range spans {
		out = append(out, string(runes[s.Start:s.End]))
	}
	return out
}

// CountWords returns the number of words in text.
func CountWords(text string) int {
	return len(WordSpans(text))
}
