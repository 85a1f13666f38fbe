// Package exporter writes documents from the database to standalone SQLite files.
package exporter

import (
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"

	// _ import for sqlite driver registration
	_ "modernc.org/sqlite"

	"github.com/nlpkit/nespan/internal/config"
	dbpkg "github.com/nlpkit/nespan/internal/db"
)

// ExportDatabase copies the active nespan database to dstPath.
func ExportDatabase(dstPath string) error {
	src, err := config.DBPath()
	if err != nil {
		return err
	}
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open source db: %w", err)
	}
	defer func() { _ = in.Close() }()
	if err := os.MkdirAll(filepath.Dir(dstPath), 0o755); err != nil {
		return fmt.Errorf("create dst dir: %w", err)
	}
	out, err := os.Create(dstPath)
	if err != nil {
		return fmt.Errorf("create dst db: %w", err)
	}
	defer func() { _ = out.Close() }()
	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("copy db: %w", err)
	}
	return nil
}

// ExportDocument exports a single named document, with its spans and tags,
// into a standalone SQLite DB at dstPath. If the named document does not
// exist an error is returned.
func ExportDocument(srcDB *sql.DB, name string, dstPath string) error {
	row := srcDB.QueryRow("SELECT id, uid, name, description, language, author_name, author_email, text, created_at, last_annotated FROM documents WHERE name = ?", name)
	var id int64
	var uid, description, language, authorName, authorEmail, lastAnnotated sql.NullString
	var docName, text, createdAt string
	if err := row.Scan(&id, &uid, &docName, &description, &language, &authorName, &authorEmail, &text, &createdAt, &lastAnnotated); err != nil {
		return fmt.Errorf("select document: %w", err)
	}

	type spanRow struct {
		pos        int
		start, end int
		label      sql.NullString
	}
	rows, err := srcDB.Query("SELECT position, start_char, end_char, label FROM spans WHERE document_id = ? ORDER BY position ASC", id)
	if err != nil {
		return fmt.Errorf("select spans: %w", err)
	}
	var spans []spanRow
	for rows.Next() {
		var s spanRow
		if err := rows.Scan(&s.pos, &s.start, &s.end, &s.label); err != nil {
			_ = rows.Close()
			return err
		}
		spans = append(spans, s)
	}
	_ = rows.Close()

	trows, err := srcDB.Query("SELECT t.name FROM tags t JOIN document_tags dt ON t.id = dt.tag_id WHERE dt.document_id = ?", id)
	if err != nil {
		return fmt.Errorf("select tags: %w", err)
	}
	var tags []string
	for trows.Next() {
		var tag string
		if err := trows.Scan(&tag); err != nil {
			_ = trows.Close()
			return err
		}
		tags = append(tags, tag)
	}
	_ = trows.Close()

	// Create destination DB and apply schema
	if err := os.MkdirAll(filepath.Dir(dstPath), 0o755); err != nil {
		return fmt.Errorf("create dst dir: %w", err)
	}
	dstDB, err := sql.Open("sqlite", dstPath)
	if err != nil {
		return fmt.Errorf("open dst db: %w", err)
	}
	defer func() { _ = dstDB.Close() }()

	if err := dbpkg.ApplyMigrations(dstDB); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}

	res, err := dstDB.Exec("INSERT INTO documents (uid, name, description, language, author_name, author_email, text, created_at, last_annotated) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
		uid, docName, description, language, authorName, authorEmail, text, createdAt, lastAnnotated)
	if err != nil {
		return fmt.Errorf("insert document: %w", err)
	}
	newID, err := res.LastInsertId()
	if err != nil {
		return err
	}
	for _, s := range spans {
		if _, err := dstDB.Exec("INSERT INTO spans (document_id, position, start_char, end_char, label) VALUES (?, ?, ?, ?, ?)", newID, s.pos, s.start, s.end, s.label); err != nil {
			return fmt.Errorf("insert span: %w", err)
		}
	}
	for _, tag := range tags {
		if _, err := dstDB.Exec("INSERT OR IGNORE INTO tags (name) VALUES (?)", tag); err != nil {
			return err
		}
		if _, err := dstDB.Exec("INSERT INTO document_tags (document_id, tag_id) SELECT ?, id FROM tags WHERE name = ?", newID, tag); err != nil {
			return err
		}
	}
	return nil
}
