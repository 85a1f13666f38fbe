package ui

import (
	"context"

	"github.com/nlpkit/nespan/internal/tui/adapters"
)

// Model defines the small subset of methods from the framework-agnostic
// internal UI model that the TUI depends on. This decouples presentation
// code from the concrete implementation and makes unit testing easier.
//
// Named `Model` (instead of `UIModel`) to avoid redundant package/type
// stuttering when referenced as `ui.Model`.
type Model interface {
	RefreshList(ctx context.Context) error
	ListCached() []adapters.DocumentSummary
	GetDocument(ctx context.Context, name string) (adapters.DocumentSummary, error)
	ListVersions(ctx context.Context, name string) ([]adapters.Version, error)
	ApplyVersion(ctx context.Context, name string, version int) error
	Delete(ctx context.Context, name string) error
	ReplaceSpans(ctx context.Context, name string, spans []adapters.SpanInfo) error
	Annotate(ctx context.Context, name string) (adapters.AnnotateHandle, error)
}
