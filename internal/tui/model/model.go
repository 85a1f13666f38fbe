// Package model provides a framework-agnostic UI model built on top of
// adapter interfaces so the TUI code can remain presentation-focused.
package model

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/nlpkit/nespan/internal/db"
	"github.com/nlpkit/nespan/internal/install"
	"github.com/nlpkit/nespan/internal/nameutil"
	"github.com/nlpkit/nespan/internal/registry"
	"github.com/nlpkit/nespan/internal/tui/adapters"
)

// ErrNotFound is returned when a requested document cannot be found.
var ErrNotFound = errors.New("not found")

// UIModel is a framework-agnostic model for screens and actions.
// It depends only on adapter interfaces.
type UIModel struct {
	registry  adapters.RegistryAdapter
	annotator adapters.AnnotatorAdapter
	impExp    adapters.ImportExportAdapter
	installer adapters.InstallerAdapter

	cache []adapters.DocumentSummary
	// serialize Save/Update operations so concurrent saves cannot race on
	// name uniqueness checks
	saveMu sync.Mutex
}

// New constructs a UIModel backed by the provided adapters.
func New(reg adapters.RegistryAdapter, an adapters.AnnotatorAdapter, ie adapters.ImportExportAdapter, inst adapters.InstallerAdapter) *UIModel {
	return &UIModel{registry: reg, annotator: an, impExp: ie, installer: inst}
}

// RefreshList fetches the document list and caches it.
func (m *UIModel) RefreshList(ctx context.Context) error {
	list, err := m.registry.ListDocuments(ctx)
	if err != nil {
		return err
	}
	m.cache = list
	return nil
}

// ListCached returns the cached document summaries.
func (m *UIModel) ListCached() []adapters.DocumentSummary { return m.cache }

// FindByName searches the cache for a document by name.
func (m *UIModel) FindByName(name string) (adapters.DocumentSummary, error) {
	for _, d := range m.cache {
		if d.Name == name {
			return d, nil
		}
	}
	return adapters.DocumentSummary{}, ErrNotFound
}

// GetDocument fetches the full document, including its text and spans, from
// the underlying registry adapter. The UI uses this to display full previews
// when a document is selected.
func (m *UIModel) GetDocument(ctx context.Context, name string) (adapters.DocumentSummary, error) {
	return m.registry.GetDocument(ctx, name)
}

// Annotate starts a streaming annotation run over the named document's text
// and returns a handle for streaming matches.
func (m *UIModel) Annotate(ctx context.Context, name string) (adapters.AnnotateHandle, error) {
	if m.annotator == nil {
		return nil, fmt.Errorf("annotator adapter not configured")
	}
	d, err := m.registry.GetDocument(ctx, name)
	if err != nil {
		return nil, err
	}
	return m.annotator.Annotate(ctx, d.Text)
}

// ReplaceSpans replaces the spans for an existing document by name.
func (m *UIModel) ReplaceSpans(ctx context.Context, name string, spans []adapters.SpanInfo) error {
	return m.registry.ReplaceSpans(ctx, name, spans)
}

// UpdateDocument updates metadata (name, description, language, author, tags)
// for an existing document.
func (m *UIModel) UpdateDocument(ctx context.Context, oldName string, d adapters.DocumentSummary) error {
	// serialize updates that can change names to avoid races with concurrent saves
	m.saveMu.Lock()
	defer m.saveMu.Unlock()
	return m.registry.UpdateDocument(ctx, oldName, d)
}

// ListVersions fetches historical versions for a document by name (newest first)
func (m *UIModel) ListVersions(ctx context.Context, name string) ([]adapters.Version, error) {
	return m.registry.ListVersionsByName(ctx, name)
}

// ApplyVersion applies a historic version to the current document (rollback)
func (m *UIModel) ApplyVersion(ctx context.Context, name string, versionNum int) error {
	return m.registry.ApplyVersionByName(ctx, name, versionNum)
}

// Delete removes a named document from the registry
func (m *UIModel) Delete(ctx context.Context, name string) error {
	return m.registry.DeleteDocument(ctx, name)
}

// Export an existing document to dest path. When name is empty the whole
// database is exported.
func (m *UIModel) Export(ctx context.Context, name string, dest string) error {
	if m.impExp == nil {
		return fmt.Errorf("import/export adapter not configured")
	}
	if name != "" {
		if _, err := m.registry.GetDocument(ctx, name); err != nil {
			return err
		}
	}
	return m.impExp.Export(ctx, name, dest)
}

// ImportDocs imports an exported document file.
func (m *UIModel) ImportDocs(ctx context.Context, src string) error {
	if m.impExp == nil {
		return fmt.Errorf("import/export adapter not configured")
	}
	return m.impExp.ImportDocs(ctx, src)
}

// ImportDB imports a database file into the active DB. If overwrite is true
// it replaces the active DB file.
func (m *UIModel) ImportDB(ctx context.Context, src string, overwrite bool) error {
	if m.impExp == nil {
		return fmt.Errorf("import/export adapter not configured")
	}
	return m.impExp.ImportDB(ctx, src, overwrite)
}

// ReopenDB re-initializes the registry adapter using a fresh DB connection.
// This is useful after a full DB overwrite which replaces the on-disk file;
// existing SQL connections may continue to reference the old file contents.
func (m *UIModel) ReopenDB(ctx context.Context) error {
	if m.registry == nil {
		return fmt.Errorf("registry adapter not configured")
	}
	// Test fakes stay in place; only the concrete adapter re-opens a real
	// DB connection.
	if _, ok := m.registry.(*adapters.RegistryAdapterImpl); !ok {
		return m.RefreshList(ctx)
	}
	if c, ok := m.registry.(interface{ Close() error }); ok {
		_ = c.Close()
	}
	dbConn, err := db.InitDB()
	if err != nil {
		return err
	}
	repo := registry.NewRepository(dbConn)
	m.registry = adapters.NewRegistryAdapter(repo)
	return m.RefreshList(ctx)
}

// Close cleans up any resources held by the UIModel (e.g., DB connections).
func (m *UIModel) Close() error {
	if m.registry == nil {
		return nil
	}
	if c, ok := m.registry.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}

// Install performs an installation of the nespan binary using the provided options.
func (m *UIModel) Install(ctx context.Context, opts install.Options) ([]string, error) {
	if m.installer == nil {
		return nil, fmt.Errorf("installer adapter not configured")
	}
	return m.installer.Install(ctx, opts)
}

// Uninstall removes an installed nespan from the host and returns actions performed.
func (m *UIModel) Uninstall(ctx context.Context) ([]string, error) {
	if m.installer == nil {
		return nil, fmt.Errorf("installer adapter not configured")
	}
	return m.installer.Uninstall(ctx)
}

// Save creates a new document from provided metadata, text, and spans
func (m *UIModel) Save(ctx context.Context, d adapters.DocumentSummary) error {
	m.saveMu.Lock()
	defer m.saveMu.Unlock()

	// sanitize names coming from adapters/UI
	if s, changed := nameutil.SanitizeName(d.Name); changed {
		d.Name = s
	}
	name := strings.TrimSpace(d.Name)
	if name == "" {
		return fmt.Errorf("invalid name: name cannot be empty")
	}
	if err := nameutil.ValidateName(name); err != nil {
		return err
	}
	d.Name = name
	// Do not allow creating duplicate names; check under lock to avoid TOCTOU races
	if _, err := m.registry.GetDocument(ctx, d.Name); err == nil {
		return fmt.Errorf("invalid name: name already exists")
	} else if err != nil && err != adapters.ErrNotFound {
		return err
	}
	return m.registry.SaveDocument(ctx, d)
}

// FakeAnnotateHandle simulates a streaming AnnotateHandle for tests.
func FakeAnnotateHandle(spans []adapters.SpanInfo, delay time.Duration) adapters.AnnotateHandle {
	events := make(chan adapters.AnnotateEvent)
	go func() {
		defer close(events)
		for _, s := range spans {
			events <- adapters.AnnotateEvent{Span: s}
			if delay > 0 {
				time.Sleep(delay)
			}
		}
	}()
	return &fakeAnnotateHandle{ch: events}
}

type fakeAnnotateHandle struct{ ch <-chan adapters.AnnotateEvent }

func (f *fakeAnnotateHandle) Events() <-chan adapters.AnnotateEvent { return f.ch }
func (f *fakeAnnotateHandle) Cancel()                               {}
