// Package span implements the named-entity span model: root documents and
// nested, labeled subspans addressed by rune or word offsets.
package span

import (
	"fmt"
	"sync"
	"unicode/utf8"

	"github.com/nlpkit/nespan/internal/tokenize"
)

// End marks "to the end of the text" when passed as an end offset.
const End = -1

// Source is any text carrier that can be sliced into subspans: a root Doc
// or a Span nested inside one.
type Source interface {
	// Text returns the text covered by this source.
	Text() string
	// Root returns the root document this source ultimately belongs to.
	Root() *Doc
}

// words caches the word segmentation of a source's text.
type words struct {
	once  sync.Once
	spans []tokenize.WordSpan
}

func (w *words) get(text string) []tokenize.WordSpan {
	w.once.Do(func() { w.spans = tokenize.WordSpans(text) })
	return w.spans
}

// Doc is a root text document.
type Doc struct {
	text  string
	words words
}

// NewDoc creates a document from text.
func NewDoc(text string) *Doc {
	return &Doc{text: text}
}

// Text returns the full document text.
func (d *Doc) Text() string { return d.text }

// Root returns the document itself.
func (d *Doc) Root() *Doc { return d }

// WordCount returns the number of words in the document. Words are runs of
// non-whitespace runes.
func (d *Doc) WordCount() int { return len(d.words.get(d.text)) }

// Subspan slices the document into a labeled span over the rune range
// [start, end). Pass End to cover through the end of the text.
func (d *Doc) Subspan(start, end int, label string) (*Span, error) {
	return newSpan(d, start, end, label)
}

// SubspanByWords returns a span covering words [startWord, endWord).
func (d *Doc) SubspanByWords(startWord, endWord int) (*Span, error) {
	return subspanByWords(d, d.words.get(d.text), startWord, endWord)
}

// Span is a half-open rune range over a parent source, optionally labeled.
type Span struct {
	parent Source
	start  int
	end    int
	label  string
	words  words
}

func newSpan(parent Source, start, end int, label string) (*Span, error) {
	n := utf8.RuneCountInString(parent.Text())
	if start < 0 {
		start = 0
	}
	if end == End {
		end = n
	}
	if end < start || end > n {
		return nil, fmt.Errorf("span [%d, %d) out of range for text of %d runes", start, end, n)
	}
	return &Span{parent: parent, start: start, end: end, label: label}, nil
}

// subspanByWords maps a word range onto rune offsets and slices src there.
// An empty word range yields a zero-length span; a start index beyond the
// word count is an error.
func subspanByWords(src Source, ws []tokenize.WordSpan, startWord, endWord int) (*Span, error) {
	if startWord < 0 {
		startWord = 0
	}
	if endWord == End || endWord > len(ws) {
		endWord = len(ws)
	}
	if startWord >= endWord {
		if startWord > len(ws) {
			return nil, fmt.Errorf("word indices [%d, %d) out of range: text has %d words", startWord, endWord, len(ws))
		}
		return newSpan(src, 0, 0, "")
	}
	return newSpan(src, ws[startWord].Start, ws[endWord-1].End, "")
}

// Text returns the text covered by the span.
func (s *Span) Text() string {
	runes := []rune(s.parent.Text())
	return string(runes[s.start:s.end])
}

// Label returns the span label, if any.
func (s *Span) Label() string { return s.label }

// Parent returns the source this span was sliced from.
func (s *Span) Parent() Source { return s.parent }

// Root returns the root document.
func (s *Span) Root() *Doc { return s.parent.Root() }

// Range returns the span's [start, end) rune offsets relative to its parent.
func (s *Span) Range() (int, int) { return s.start, s.end }

// RangeInRoot resolves the span's offsets relative to the root document by
// accumulating the start offsets of all enclosing spans.
func (s *Span) RangeInRoot() (int, int) {
	start, end := s.start, s.end
	for p := s.parent; ; {
		ps, ok := p.(*Span)
		if !ok {
			return start, end
		}
		start += ps.start
		end += ps.start
		p = ps.parent
	}
}

// WordCount returns the number of words covered by the span.
func (s *Span) WordCount() int { return len(s.words.get(s.Text())) }

// Subspan slices the span into a nested labeled span. Offsets are relative
// to this span, not the root document.
func (s *Span) Subspan(start, end int, label string) (*Span, error) {
	return newSpan(s, start, end, label)
}

// SubspanByWords returns a nested span covering words [startWord, endWord)
// of this span's text.
func (s *Span) SubspanByWords(startWord, endWord int) (*Span, error) {
	return subspanByWords(s, s.words.get(s.Text()), startWord, endWord)
}

func (s *Span) String() string {
	start, end := s.Range()
	return fmt.Sprintf("Span(text=%q, label=%q, range=[%d, %d))", s.Text(), s.label, start, end)
}

// Record is the serialized form of a span.
type Record struct {
	Range [2]int `json:"range"`
	Label string `json:"label,omitempty"`
	Text  string `json:"text,omitempty"`
}

// Serialize returns the span as a Record. When withText is true the covered
// text is included.
func (s *Span) Serialize(withText bool) Record {
	rec := Record{Range: [2]int{s.start, s.end}, Label: s.label}
	if withText {
		rec.Text = s.Text()
	}
	return rec
}
