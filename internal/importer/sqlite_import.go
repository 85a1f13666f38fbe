// Package importer merges documents from standalone SQLite files into the active database.
package importer

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	// _ import for sqlite driver registration
	_ "modernc.org/sqlite"

	"github.com/nlpkit/nespan/internal/config"
)

// ImportDatabase copies srcPath into the default database location. If overwrite
// is false and the destination exists, an error is returned.
func ImportDatabase(srcPath string, overwrite bool) error {
	dst, err := config.DBPath()
	if err != nil {
		return err
	}
	if _, err := os.Stat(dst); err == nil && !overwrite {
		return errors.New("destination database exists; use overwrite=true to replace")
	}
	in, err := os.Open(srcPath)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer func() { _ = in.Close() }()
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("create dst dir: %w", err)
	}
	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create dst: %w", err)
	}
	defer func() { _ = out.Close() }()
	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("copy db: %w", err)
	}
	return nil
}

// ensureUniqueName returns a name not yet present in dst. Comparison is on
// trimmed names to match the documents_name_unique_trimmed trigger, which
// also rejects collisions that differ only in surrounding whitespace.
func ensureUniqueName(dst *sql.DB, orig string) (string, error) {
	name := orig
	si := 1
	for {
		var cnt int
		r := dst.QueryRow("SELECT count(*) FROM documents WHERE TRIM(name) = TRIM(?)", name)
		if err := r.Scan(&cnt); err != nil {
			return "", err
		}
		if cnt == 0 {
			return name, nil
		}
		name = fmt.Sprintf("%s-import-%d", orig, si)
		si++
	}
}

// ImportDocuments imports all documents from srcPath into the active DB. If
// name collisions occur, the function appends a suffix to the imported name.
func ImportDocuments(srcPath string) error {
	src, err := sql.Open("sqlite", srcPath)
	if err != nil {
		return fmt.Errorf("open src: %w", err)
	}
	defer func() { _ = src.Close() }()

	dstPath, err := config.DBPath()
	if err != nil {
		return err
	}
	dst, err := sql.Open("sqlite", dstPath)
	if err != nil {
		return fmt.Errorf("open dst: %w", err)
	}
	defer func() { _ = dst.Close() }()

	rows, err := src.Query("SELECT id, uid, name, description, language, author_name, author_email, text, created_at, last_annotated FROM documents")
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()
	for rows.Next() {
		var id int64
		var uid, desc, language, authorName, authorEmail, lastAnnotated sql.NullString
		var name, text, created string
		if err := rows.Scan(&id, &uid, &name, &desc, &language, &authorName, &authorEmail, &text, &created, &lastAnnotated); err != nil {
			return err
		}
		uName, err := ensureUniqueName(dst, name)
		if err != nil {
			return err
		}
		res, err := dst.Exec("INSERT INTO documents (uid, name, description, language, author_name, author_email, text, created_at, last_annotated) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
			uid, uName, desc, language, authorName, authorEmail, text, created, lastAnnotated)
		if err != nil {
			return fmt.Errorf("insert document: %w", err)
		}
		newID, err := res.LastInsertId()
		if err != nil {
			return err
		}
		if err := copySpans(src, id, dst, newID); err != nil {
			return err
		}
		if err := copyTags(src, id, dst, newID); err != nil {
			return err
		}
	}
	return nil
}
