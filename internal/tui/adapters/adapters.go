// Package adapters provides adapter interfaces and lightweight types used by
// the TUI to decouple it from the internal domain packages.
package adapters

import (
	"context"
	"errors"

	"github.com/nlpkit/nespan/internal/install"
)

// ErrNotFound is used when a requested item cannot be found in the repository.
var ErrNotFound = errors.New("not found")

// SpanInfo is a single span as the UI renders it. Start and End are rune
// offsets into the document text.
type SpanInfo struct {
	Start int
	End   int
	Label string
	Text  string
}

// DocumentSummary represents a lightweight view of a document used by the TUI.
type DocumentSummary struct {
	Name          string
	Description   string
	Language      string
	AuthorName    string
	AuthorEmail   string
	Tags          []string
	CreatedAt     string
	LastAnnotated string
	Text          string
	Spans         []SpanInfo
}

// Version mirrors registry.Version and is used by the TUI to render history entries.
type Version struct {
	Version     int
	CreatedAt   string
	AuthorName  string
	AuthorEmail string
	Description string
	Spans       []SpanInfo
	Operation   string
}

// AnnotateEvent represents one streamed match from a running annotation.
type AnnotateEvent struct {
	Span SpanInfo
	Err  error
}

// AnnotateHandle is returned by AnnotatorAdapter.Annotate to manage streaming
// matches and cancellation.
type AnnotateHandle interface {
	// Events returns a receive-only channel for streaming matches.
	Events() <-chan AnnotateEvent
	// Cancel requests termination of the annotation run.
	Cancel()
}

// RegistryAdapter describes the minimal subset of registry operations used by the UI.
// Keep methods small and easy to mock for tests.
type RegistryAdapter interface {
	ListDocuments(ctx context.Context) ([]DocumentSummary, error)
	GetDocument(ctx context.Context, name string) (DocumentSummary, error)
	SaveDocument(ctx context.Context, d DocumentSummary) error
	DeleteDocument(ctx context.Context, name string) error
	// ReplaceSpans replaces the stored spans for an existing document.
	ReplaceSpans(ctx context.Context, name string, spans []SpanInfo) error
	// UpdateDocument updates metadata and tags for an existing document.
	UpdateDocument(ctx context.Context, oldName string, d DocumentSummary) error
	// ListVersionsByName returns the versions for a document (newest first)
	ListVersionsByName(ctx context.Context, name string) ([]Version, error)
	// ApplyVersionByName applies the specified historic version to the named document (rollback)
	ApplyVersionByName(ctx context.Context, name string, versionNum int) error
}

// AnnotatorAdapter describes running and streaming rule-based annotation of a
// document's text.
type AnnotatorAdapter interface {
	Annotate(ctx context.Context, text string) (AnnotateHandle, error)
}

// ImportExportAdapter describes import/export operations.
type ImportExportAdapter interface {
	Export(ctx context.Context, name string, dest string) error
	ImportDocs(ctx context.Context, src string) error
	ImportDB(ctx context.Context, src string, overwrite bool) error
}

// InstallerAdapter minimal interface for install/uninstall
type InstallerAdapter interface {
	Install(ctx context.Context, opts install.Options) ([]string, error)
	Uninstall(ctx context.Context) ([]string, error)
}
