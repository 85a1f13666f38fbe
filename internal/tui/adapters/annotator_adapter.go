package adapters

import (
	"context"

	"github.com/nlpkit/nespan/internal/annotate"
)

// AnnotatorAdapterImpl adapts internal/annotate to the UI AnnotatorAdapter
// interface. The rule set is fixed at construction time.
type AnnotatorAdapterImpl struct {
	engine annotate.Annotator
	rules  *annotate.RuleSet
}

// NewAnnotatorAdapter returns an adapter that streams matches from the given
// engine and rule set.
func NewAnnotatorAdapter(engine annotate.Annotator, rules *annotate.RuleSet) *AnnotatorAdapterImpl {
	return &AnnotatorAdapterImpl{engine: engine, rules: rules}
}

// Annotate starts a streaming annotation run over text.
func (a *AnnotatorAdapterImpl) Annotate(ctx context.Context, text string) (AnnotateHandle, error) {
	h := annotate.Stream(ctx, a.engine, text, a.rules)
	return &annotateHandle{inner: h}, nil
}

// annotateHandle converts annotate.Event values to AnnotateEvent as they
// arrive.
type annotateHandle struct {
	inner annotate.Handle
	out   chan AnnotateEvent
}

func (h *annotateHandle) Events() <-chan AnnotateEvent {
	if h.out == nil {
		h.out = make(chan AnnotateEvent)
		go func() {
			defer close(h.out)
			for ev := range h.inner.Events() {
				h.out <- AnnotateEvent{
					Span: SpanInfo{Start: ev.Record.Range[0], End: ev.Record.Range[1], Label: ev.Record.Label},
					Err:  ev.Err,
				}
			}
		}()
	}
	return h.out
}

func (h *annotateHandle) Cancel() { h.inner.Cancel() }
