package annotate

import (
	"context"
	"sort"
	"strings"
	"unicode/utf8"

	logging "github.com/ipfs/go-log/v2"

	"github.com/nlpkit/nespan/internal/span"
)

var log = logging.Logger("annotate")

// Annotator finds labeled spans in text. It allows tests and the TUI to
// inject fake implementations without compiling real rule sets.
type Annotator interface {
	Annotate(ctx context.Context, text string, rules *RuleSet) ([]span.Record, error)
}

// Engine is the rule-driven Annotator implementation.
type Engine struct {
	Verbose bool
}

// New returns an Annotator backed by the real Engine implementation.
func New(verbose bool) Annotator {
	return &Engine{Verbose: verbose}
}

// NormalizeText converts typographic quote variants and NBSP to their ASCII
// equivalents and strips zero-width and bidi control runes that copy/paste
// tends to smuggle into source texts. Run it before storing document text so
// stored rune offsets stay meaningful.
func NormalizeText(s string) string {
	r := strings.NewReplacer(
		"‘", "'", // left single quote
		"’", "'", // right single quote
		"“", "\"", // left double quote
		"”", "\"", // right double quote
		" ", " ", // NO-BREAK SPACE
		"​", "", // zero width space
		"‎", "", // left-to-right mark
		"‏", "", // right-to-left mark
	)
	rp := r.Replace(s)
	return strings.Map(func(r rune) rune {
		if r == 0 {
			return -1
		}
		return r
	}, rp)
}

// Annotate applies every rule to text and returns the matches as span
// records with rune offsets, ordered by start offset. Identical
// (range, label) pairs produced by multiple rules are deduplicated.
func (e *Engine) Annotate(ctx context.Context, text string, rules *RuleSet) ([]span.Record, error) {
	var out []span.Record
	seen := map[span.Record]bool{}
	for _, rule := range rules.Rules {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for _, idx := range rule.re.FindAllStringIndex(text, -1) {
			// regexp reports byte offsets; the span model is rune-addressed
			start := utf8.RuneCountInString(text[:idx[0]])
			end := start + utf8.RuneCountInString(text[idx[0]:idx[1]])
			rec := span.Record{Range: [2]int{start, end}, Label: rule.Label}
			if seen[rec] {
				continue
			}
			seen[rec] = true
			out = append(out, rec)
			if e.Verbose {
				log.Debugw("rule matched", "label", rule.Label, "start", start, "end", end)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Range[0] != out[j].Range[0] {
			return out[i].Range[0] < out[j].Range[0]
		}
		return out[i].Range[1] < out[j].Range[1]
	})
	return out, nil
}

// Event is one streamed annotation result.
type Event struct {
	Record span.Record
	Err    error
}

// Handle manages a streaming annotation run.
type Handle interface {
	// Events returns a receive-only channel of matches; it is closed when
	// the run finishes.
	Events() <-chan Event
	// Cancel requests termination of the run.
	Cancel()
}

type streamHandle struct {
	events chan Event
	cancel context.CancelFunc
}

func (h *streamHandle) Events() <-chan Event { return h.events }
func (h *streamHandle) Cancel()              { h.cancel() }

// Stream runs Annotate in a goroutine and emits matches one by one, so a UI
// can render them as they are found.
func Stream(ctx context.Context, a Annotator, text string, rules *RuleSet) Handle {
	ctx, cancel := context.WithCancel(ctx)
	h := &streamHandle{events: make(chan Event), cancel: cancel}
	go func() {
		defer close(h.events)
		recs, err := a.Annotate(ctx, text, rules)
		if err != nil {
			select {
			case h.events <- Event{Err: err}:
			case <-ctx.Done():
			}
			return
		}
		for _, rec := range recs {
			select {
			case h.events <- Event{Record: rec}:
			case <-ctx.Done():
				return
			}
		}
	}()
	return h
}
