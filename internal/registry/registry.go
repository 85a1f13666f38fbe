package registry

import (
	"database/sql"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	logging "github.com/ipfs/go-log/v2"

	"github.com/nlpkit/nespan/internal/nameutil"
	"github.com/nlpkit/nespan/internal/span"
)

var log = logging.Logger("registry")

// Repository provides CRUD operations for documents and their spans.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new Repository using db.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// CreateDocument inserts a new document and returns its ID.
// initialSpans, if provided, are validated against the text and recorded as
// the initial version snapshot.
func (r *Repository) CreateDocument(name string, description *string, language *string, authorName *string, authorEmail *string, text string, initialSpans []span.Record) (int64, error) {
	if err := r.validateCreateName(&name); err != nil {
		return 0, err
	}
	if err := validateSpans(text, initialSpans); err != nil {
		return 0, err
	}
	return r.createDocumentTx(name, description, language, authorName, authorEmail, text, initialSpans)
}

func (r *Repository) validateCreateName(name *string) error {
	*name = strings.TrimSpace(*name)
	if *name == "" {
		return fmt.Errorf("invalid name: name cannot be empty")
	}
	return nameutil.ValidateName(*name)
}

// validateSpans rejects spans that do not fit inside text. Offsets are rune
// offsets, matching the span model.
func validateSpans(text string, recs []span.Record) error {
	n := utf8.RuneCountInString(text)
	for _, rec := range recs {
		start, end := rec.Range[0], rec.Range[1]
		if start < 0 || end < start || end > n {
			return fmt.Errorf("span [%d, %d) out of range for text of %d runes", start, end, n)
		}
	}
	return nil
}

func (r *Repository) createDocumentTx(name string, description *string, language *string, authorName *string, authorEmail *string, text string, initialSpans []span.Record) (int64, error) {
	// Uniqueness is checked inside the DB engine to avoid TOCTOU races
	// across processes.
	trx, err := r.db.Begin()
	if err != nil {
		return 0, err
	}
	defer func() { _ = trx.Rollback() }()

	uid := uuid.NewString()
	res, err := trx.Exec(`INSERT INTO documents (uid, name, description, language, author_name, author_email, text, created_at)
			SELECT ?, ?, ?, ?, ?, ?, ?, datetime('now')
			WHERE NOT EXISTS(SELECT 1 FROM documents WHERE TRIM(name) = ?)`, uid, name, description, language, authorName, authorEmail, text, name)
	if err != nil {
		return 0, fmt.Errorf("insert document: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if rows == 0 {
		// Another row with the same trimmed name already exists
		return 0, fmt.Errorf("name %q already in use", name)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	// Sanity check against the row inside this transaction to ensure the inserted
	// name matches the trimmed input. If it doesn't, remove the bad row and reject.
	if err := r.validateInsertedNameTx(trx, id, name); err != nil {
		_, _ = trx.Exec("DELETE FROM documents WHERE id = ?", id)
		return 0, err
	}
	if err := insertSpansTx(trx, id, initialSpans); err != nil {
		return 0, err
	}
	// record an initial version (may include provided spans) inside the same transaction
	if err := r.recordVersionTx(trx, id, authorName, authorEmail, description, initialSpans, "create"); err != nil {
		return 0, err
	}
	if err := trx.Commit(); err != nil {
		return 0, err
	}
	log.Debugw("document created", "name", name, "uid", uid, "spans", len(initialSpans))
	return id, nil
}

func (r *Repository) validateInsertedNameTx(trx *sql.Tx, id int64, name string) error {
	var storedName string
	row := trx.QueryRow("SELECT TRIM(name) FROM documents WHERE id = ?", id)
	if err := row.Scan(&storedName); err != nil {
		return fmt.Errorf("sanity check failed: %w", err)
	}
	if storedName == "" || storedName != name {
		return fmt.Errorf("sanity check failed: inserted name mismatch")
	}
	return nil
}

func insertSpansTx(trx *sql.Tx, docID int64, recs []span.Record) error {
	for i, rec := range recs {
		var label *string
		if rec.Label != "" {
			l := rec.Label
			label = &l
		}
		if _, err := trx.Exec("INSERT INTO spans (document_id, position, start_char, end_char, label) VALUES (?, ?, ?, ?, ?)",
			docID, i+1, rec.Range[0], rec.Range[1], label); err != nil {
			return fmt.Errorf("insert span: %w", err)
		}
	}
	return nil
}

// AddSpan appends a span annotation to a document at the next position.
func (r *Repository) AddSpan(docID int64, rec span.Record) (int64, error) {
	var text string
	if err := r.db.QueryRow("SELECT text FROM documents WHERE id = ?", docID).Scan(&text); err != nil {
		return 0, fmt.Errorf("load document: %w", err)
	}
	if err := validateSpans(text, []span.Record{rec}); err != nil {
		return 0, err
	}
	var maxPos sql.NullInt64
	if err := r.db.QueryRow("SELECT COALESCE(MAX(position), 0) FROM spans WHERE document_id = ?", docID).Scan(&maxPos); err != nil {
		return 0, err
	}
	var label *string
	if rec.Label != "" {
		l := rec.Label
		label = &l
	}
	res, err := r.db.Exec("INSERT INTO spans (document_id, position, start_char, end_char, label) VALUES (?, ?, ?, ?, ?)",
		docID, maxPos.Int64+1, rec.Range[0], rec.Range[1], label)
	if err != nil {
		return 0, fmt.Errorf("insert span: %w", err)
	}
	return res.LastInsertId()
}

// RemoveSpan deletes a span annotation by position within a document.
func (r *Repository) RemoveSpan(docID int64, position int) error {
	_, err := r.db.Exec("DELETE FROM spans WHERE document_id = ? AND position = ?", docID, position)
	return err
}

// GetDocumentByName retrieves a document and its spans by name.
func (r *Repository) GetDocumentByName(name string) (*Document, error) {
	row := r.db.QueryRow("SELECT id, uid, name, description, language, author_name, author_email, text, created_at, last_annotated FROM documents WHERE name = ?", name)
	var d Document
	if err := row.Scan(&d.ID, &d.UID, &d.Name, &d.Description, &d.Language, &d.AuthorName, &d.AuthorEmail, &d.Text, &d.CreatedAt, &d.LastAnnotated); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	rows, err := r.db.Query("SELECT id, document_id, position, start_char, end_char, label FROM spans WHERE document_id = ? ORDER BY position ASC", d.ID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	for rows.Next() {
		var s SpanRow
		if err := rows.Scan(&s.ID, &s.DocumentID, &s.Position, &s.Start, &s.End, &s.Label); err != nil {
			return nil, err
		}
		d.Spans = append(d.Spans, s)
	}

	if err := r.attachTags(&d); err != nil {
		return nil, err
	}

	return &d, nil
}

// ListDocuments returns all documents (without their spans).
func (r *Repository) ListDocuments() ([]Document, error) {
	rows, err := r.db.Query("SELECT id, uid, name, description, language, author_name, author_email, text, created_at, last_annotated FROM documents ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []Document
	for rows.Next() {
		var d Document
		if err := rows.Scan(&d.ID, &d.UID, &d.Name, &d.Description, &d.Language, &d.AuthorName, &d.AuthorEmail, &d.Text, &d.CreatedAt, &d.LastAnnotated); err != nil {
			return nil, err
		}
		if err := r.attachTags(&d); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// UpdateDocument updates a document's metadata (name, description, language,
// author fields and tags). It records an update version snapshot of the
// current spans.
func (r *Repository) UpdateDocument(docID int64, newName string, description *string, language *string, authorName *string, authorEmail *string, tags []string) error {
	trx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = trx.Rollback() }()

	// ensure newName does not collide with another document
	if err := r.ensureNameNotTakenTx(trx, newName, docID); err != nil {
		return err
	}

	if _, err := trx.Exec("UPDATE documents SET name = ?, description = ?, language = ?, author_name = ?, author_email = ? WHERE id = ?", newName, description, language, authorName, authorEmail, docID); err != nil {
		return err
	}

	// replace tags: remove existing associations and add provided ones
	if err := r.replaceTagsTx(trx, docID, tags); err != nil {
		return err
	}

	// snapshot current spans for version history
	recs, err := readSpansTx(trx, docID)
	if err != nil {
		return err
	}

	if err := r.recordVersionTx(trx, docID, authorName, authorEmail, description, recs, "update"); err != nil {
		return err
	}

	return trx.Commit()
}

// UpdateDocumentAndReplaceSpans performs an atomic metadata+spans update and
// records exactly one 'update' version representing the final state.
func (r *Repository) UpdateDocumentAndReplaceSpans(docID int64, newName string, description *string, language *string, authorName *string, authorEmail *string, tags []string, recs []span.Record) error {
	trx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = trx.Rollback() }()

	if err := r.ensureNameNotTakenTx(trx, newName, docID); err != nil {
		return err
	}

	var text string
	if err := trx.QueryRow("SELECT text FROM documents WHERE id = ?", docID).Scan(&text); err != nil {
		return fmt.Errorf("load document: %w", err)
	}
	if err := validateSpans(text, recs); err != nil {
		return err
	}

	if _, err := trx.Exec("UPDATE documents SET name = ?, description = ?, language = ?, author_name = ?, author_email = ? WHERE id = ?", newName, description, language, authorName, authorEmail, docID); err != nil {
		return err
	}
	if err := r.replaceTagsTx(trx, docID, tags); err != nil {
		return err
	}
	if err := replaceSpansTx(trx, docID, recs); err != nil {
		return err
	}
	if err := r.recordVersionTx(trx, docID, authorName, authorEmail, description, recs, "update"); err != nil {
		return err
	}
	return trx.Commit()
}

func (r *Repository) ensureNameNotTakenTx(trx *sql.Tx, newName string, docID int64) error {
	var existingID int64
	row := trx.QueryRow("SELECT id FROM documents WHERE name = ?", newName)
	if err := row.Scan(&existingID); err == nil {
		if existingID != docID {
			return fmt.Errorf("name %q already in use", newName)
		}
	} else if err != sql.ErrNoRows {
		return err
	}
	return nil
}

func (r *Repository) replaceTagsTx(trx *sql.Tx, docID int64, tags []string) error {
	if _, err := trx.Exec("DELETE FROM document_tags WHERE document_id = ?", docID); err != nil {
		return err
	}
	for _, tag := range tags {
		if _, err := trx.Exec("INSERT OR IGNORE INTO tags (name) VALUES (?)", tag); err != nil {
			return err
		}
		var tagID int64
		rrow := trx.QueryRow("SELECT id FROM tags WHERE name = ?", tag)
		if err := rrow.Scan(&tagID); err != nil {
			return err
		}
		if _, err := trx.Exec("INSERT OR IGNORE INTO document_tags (document_id, tag_id) VALUES (?, ?)", docID, tagID); err != nil {
			return err
		}
	}
	return nil
}

func readSpansTx(trx *sql.Tx, docID int64) ([]span.Record, error) {
	rows, err := trx.Query("SELECT start_char, end_char, label FROM spans WHERE document_id = ? ORDER BY position ASC", docID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var recs []span.Record
	for rows.Next() {
		var start, end int
		var label sql.NullString
		if err := rows.Scan(&start, &end, &label); err != nil {
			return nil, err
		}
		recs = append(recs, span.Record{Range: [2]int{start, end}, Label: label.String})
	}
	return recs, nil
}

func replaceSpansTx(trx *sql.Tx, docID int64, recs []span.Record) error {
	if _, err := trx.Exec("DELETE FROM spans WHERE document_id = ?", docID); err != nil {
		return err
	}
	return insertSpansTx(trx, docID, recs)
}

// ReplaceSpans replaces all spans for a document and records the result as a
// new version with the given operation (update, annotate, rollback).
func (r *Repository) ReplaceSpans(docID int64, recs []span.Record, operation string) error {
	trx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = trx.Rollback() }()

	var text string
	if err := trx.QueryRow("SELECT text FROM documents WHERE id = ?", docID).Scan(&text); err != nil {
		return fmt.Errorf("load document: %w", err)
	}
	if err := validateSpans(text, recs); err != nil {
		return err
	}
	if err := replaceSpansTx(trx, docID, recs); err != nil {
		return err
	}
	if operation == "annotate" {
		if _, err := trx.Exec("UPDATE documents SET last_annotated = datetime('now') WHERE id = ?", docID); err != nil {
			return err
		}
	}
	if err := r.recordVersionTx(trx, docID, nil, nil, nil, recs, operation); err != nil {
		return err
	}
	return trx.Commit()
}

// ReplaceText replaces the document text. Spans that no longer fit inside
// the new text are dropped; the result is recorded as an 'update' version.
func (r *Repository) ReplaceText(docID int64, text string) error {
	trx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = trx.Rollback() }()

	if _, err := trx.Exec("UPDATE documents SET text = ? WHERE id = ?", text, docID); err != nil {
		return err
	}
	recs, err := readSpansTx(trx, docID)
	if err != nil {
		return err
	}
	n := utf8.RuneCountInString(text)
	kept := make([]span.Record, 0, len(recs))
	for _, rec := range recs {
		if rec.Range[0] >= 0 && rec.Range[1] >= rec.Range[0] && rec.Range[1] <= n {
			kept = append(kept, rec)
		}
	}
	if err := replaceSpansTx(trx, docID, kept); err != nil {
		return err
	}
	if err := r.recordVersionTx(trx, docID, nil, nil, nil, kept, "update"); err != nil {
		return err
	}
	return trx.Commit()
}

// DeleteDocument removes a document and its spans by name.
func (r *Repository) DeleteDocument(name string) error {
	trx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = trx.Rollback() }()

	var id int64
	row := trx.QueryRow("SELECT id FROM documents WHERE name = ?", name)
	if err := row.Scan(&id); err != nil {
		if err == sql.ErrNoRows {
			return nil
		}
		return err
	}

	// snapshot spans before deletion
	recs, err := readSpansTx(trx, id)
	if err != nil {
		return err
	}
	if err := r.recordVersionTx(trx, id, nil, nil, nil, recs, "delete"); err != nil {
		return err
	}

	if _, err := trx.Exec("DELETE FROM spans WHERE document_id = ?", id); err != nil {
		return err
	}
	if _, err := trx.Exec("DELETE FROM document_tags WHERE document_id = ?", id); err != nil {
		return err
	}
	if _, err := trx.Exec("DELETE FROM documents WHERE id = ?", id); err != nil {
		return err
	}
	return trx.Commit()
}

// attachTags loads tags for a document into the provided Document.
func (r *Repository) attachTags(d *Document) error {
	rows, err := r.db.Query("SELECT t.name FROM tags t JOIN document_tags dt ON t.id = dt.tag_id WHERE dt.document_id = ?", d.ID)
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return err
		}
		d.Tags = append(d.Tags, name)
	}
	return nil
}

// AddTagToDocument adds a tag (creating it if necessary) and associates it with the document.
func (r *Repository) AddTagToDocument(docID int64, tag string) error {
	trx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = trx.Rollback() }()

	if _, err := trx.Exec("INSERT OR IGNORE INTO tags (name) VALUES (?)", tag); err != nil {
		return err
	}
	var tagID int64
	row := trx.QueryRow("SELECT id FROM tags WHERE name = ?", tag)
	if err := row.Scan(&tagID); err != nil {
		return err
	}
	if _, err := trx.Exec("INSERT OR IGNORE INTO document_tags (document_id, tag_id) VALUES (?, ?)", docID, tagID); err != nil {
		return err
	}
	return trx.Commit()
}

// RemoveTagFromDocument removes an association between a tag and a document.
func (r *Repository) RemoveTagFromDocument(docID int64, tag string) error {
	row := r.db.QueryRow("SELECT id FROM tags WHERE name = ?", tag)
	var tagID int64
	if err := row.Scan(&tagID); err != nil {
		if err == sql.ErrNoRows {
			return nil
		}
		return err
	}
	if _, err := r.db.Exec("DELETE FROM document_tags WHERE document_id = ? AND tag_id = ?", docID, tagID); err != nil {
		return err
	}
	return nil
}

// ListTagsForDocument returns all tag names associated with a document.
func (r *Repository) ListTagsForDocument(docID int64) ([]string, error) {
	rows, err := r.db.Query("SELECT t.name FROM tags t JOIN document_tags dt ON t.id = dt.tag_id WHERE dt.document_id = ?", docID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var out []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		out = append(out, name)
	}
	return out, nil
}

// ListDocumentsByTag returns all documents that have the given tag.
func (r *Repository) ListDocumentsByTag(tag string) ([]Document, error) {
	rows, err := r.db.Query(`
		SELECT d.id, d.uid, d.name, d.description, d.language, d.author_name, d.author_email, d.text, d.created_at, d.last_annotated
		FROM documents d
		JOIN document_tags dt ON d.id = dt.document_id
		JOIN tags t ON t.id = dt.tag_id
		WHERE t.name = ?
		ORDER BY d.created_at DESC
	`, tag)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var out []Document
	for rows.Next() {
		var d Document
		if err := rows.Scan(&d.ID, &d.UID, &d.Name, &d.Description, &d.Language, &d.AuthorName, &d.AuthorEmail, &d.Text, &d.CreatedAt, &d.LastAnnotated); err != nil {
			return nil, err
		}
		if err := r.attachTags(&d); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// SearchDocuments searches for documents by name, description, text, or span label.
func (r *Repository) SearchDocuments(query string) ([]Document, error) {
	pattern := "%" + query + "%"
	rows, err := r.db.Query(`
		SELECT DISTINCT d.id, d.uid, d.name, d.description, d.language, d.author_name, d.author_email, d.text, d.created_at, d.last_annotated
		FROM documents d
		LEFT JOIN spans s ON s.document_id = d.id
		WHERE d.name LIKE ? OR d.description LIKE ? OR d.text LIKE ? OR s.label LIKE ?
		ORDER BY d.created_at DESC
	`, pattern, pattern, pattern, pattern)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var out []Document
	for rows.Next() {
		var d Document
		if err := rows.Scan(&d.ID, &d.UID, &d.Name, &d.Description, &d.Language, &d.AuthorName, &d.AuthorEmail, &d.Text, &d.CreatedAt, &d.LastAnnotated); err != nil {
			return nil, err
		}
		if err := r.attachTags(&d); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}
