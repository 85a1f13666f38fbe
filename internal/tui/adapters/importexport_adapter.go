package adapters

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/nlpkit/nespan/internal/exporter"
	"github.com/nlpkit/nespan/internal/importer"
)

// ImportExportAdapterImpl adapts exporter/importer package functions to the UI adapter.
type ImportExportAdapterImpl struct{ db *sql.DB }

// NewImportExportAdapter constructs a new ImportExportAdapter backed by db.
func NewImportExportAdapter(db *sql.DB) *ImportExportAdapterImpl {
	return &ImportExportAdapterImpl{db: db}
}

// Export exports either a single document (when name is non-empty) or the
// entire database to dest.
func (i *ImportExportAdapterImpl) Export(_ context.Context, name string, dest string) error {
	if name == "" {
		return exporter.ExportDatabase(dest)
	}
	if i.db == nil {
		return fmt.Errorf("no database connection for exporting document")
	}
	return exporter.ExportDocument(i.db, name, dest)
}

// ImportDocs imports an exported document file from src.
func (i *ImportExportAdapterImpl) ImportDocs(_ context.Context, src string) error {
	return importer.ImportDocuments(src)
}

// ImportDB imports a database file into the active DB, overwriting if requested.
func (i *ImportExportAdapterImpl) ImportDB(_ context.Context, src string, overwrite bool) error {
	return importer.ImportDatabase(src, overwrite)
}
