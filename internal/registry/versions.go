package registry

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/nlpkit/nespan/internal/span"
)

// Version represents a saved snapshot of a document's annotations.
type Version struct {
	ID          int64
	DocumentID  int64
	Version     int
	CreatedAt   string
	AuthorName  sql.NullString
	AuthorEmail sql.NullString
	Description sql.NullString
	Spans       []span.Record
	Operation   string
}

// recordVersionTx writes a version record using the provided transaction. This helper
// is useful when an outer transaction is already in progress to avoid nested writes.
func (r *Repository) recordVersionTx(trx *sql.Tx, docID int64, authorName *string, authorEmail *string, description *string, recs []span.Record, operation string) error {
	if recs == nil {
		recs = []span.Record{}
	}
	spanJSON, err := json.Marshal(recs)
	if err != nil {
		return fmt.Errorf("marshal spans: %w", err)
	}
	var maxVersion sql.NullInt64
	row := trx.QueryRow("SELECT COALESCE(MAX(version), 0) FROM annotation_versions WHERE document_id = ?", docID)
	if err := row.Scan(&maxVersion); err != nil {
		return err
	}
	newVersion := int(maxVersion.Int64) + 1
	_, err = trx.Exec(`INSERT INTO annotation_versions
		(document_id, version, created_at, author_name, author_email, description, spans, operation)
		VALUES (?, ?, datetime('now'), ?, ?, ?, ?, ?)`, docID, newVersion, authorName, authorEmail, description, string(spanJSON), operation)
	if err != nil {
		return fmt.Errorf("insert version: %w", err)
	}
	return nil
}

// RecordVersion stores a snapshot of spans for the given document.
func (r *Repository) RecordVersion(docID int64, authorName *string, authorEmail *string, description *string, recs []span.Record, operation string) error {
	trx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = trx.Rollback() }()
	if err := r.recordVersionTx(trx, docID, authorName, authorEmail, description, recs, operation); err != nil {
		return err
	}
	return trx.Commit()
}

// ListVersions returns all versions for a given document id in descending order (newest first).
func (r *Repository) ListVersions(docID int64) ([]Version, error) {
	rows, err := r.db.Query(`SELECT id, document_id, version, created_at, author_name, author_email, description, spans, operation
		FROM annotation_versions WHERE document_id = ? ORDER BY version DESC`, docID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var out []Version
	for rows.Next() {
		var v Version
		var spanJSON string
		if err := rows.Scan(&v.ID, &v.DocumentID, &v.Version, &v.CreatedAt, &v.AuthorName, &v.AuthorEmail, &v.Description, &spanJSON, &v.Operation); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(spanJSON), &v.Spans); err != nil {
			return nil, fmt.Errorf("unmarshal spans: %w", err)
		}
		out = append(out, v)
	}
	return out, nil
}

// ListVersionsByName finds the document by name and returns its versions.
func (r *Repository) ListVersionsByName(name string) ([]Version, error) {
	row := r.db.QueryRow("SELECT id FROM documents WHERE name = ?", name)
	var id int64
	if err := row.Scan(&id); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return r.ListVersions(id)
}

// GetVersion returns a specific version entry for a document id and version number.
func (r *Repository) GetVersion(docID int64, versionNum int) (*Version, error) {
	row := r.db.QueryRow(`SELECT id, document_id, version, created_at, author_name, author_email, description, spans, operation
		FROM annotation_versions WHERE document_id = ? AND version = ?`, docID, versionNum)
	var v Version
	var spanJSON string
	if err := row.Scan(&v.ID, &v.DocumentID, &v.Version, &v.CreatedAt, &v.AuthorName, &v.AuthorEmail, &v.Description, &spanJSON, &v.Operation); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	if err := json.Unmarshal([]byte(spanJSON), &v.Spans); err != nil {
		return nil, fmt.Errorf("unmarshal spans: %w", err)
	}
	return &v, nil
}

// ApplyVersionByName replaces the current spans for the named document with the
// specified version's spans and records a new 'rollback' version.
func (r *Repository) ApplyVersionByName(name string, versionNum int) error {
	d, err := r.GetDocumentByName(name)
	if err != nil {
		return err
	}
	if d == nil {
		return fmt.Errorf("document not found: %s", name)
	}
	v, err := r.GetVersion(d.ID, versionNum)
	if err != nil {
		return err
	}
	if v == nil {
		return fmt.Errorf("version %d not found for %s", versionNum, name)
	}
	return r.ReplaceSpans(d.ID, v.Spans, "rollback")
}
