package importer

import "database/sql"

// copySpans copies spans for a given source document id into dst using the new document id
func copySpans(src *sql.DB, srcDocID int64, dst *sql.DB, newID int64) error {
	srows, err := src.Query("SELECT position, start_char, end_char, label FROM spans WHERE document_id = ? ORDER BY position ASC", srcDocID)
	if err != nil {
		return err
	}
	defer func() { _ = srows.Close() }()
	for srows.Next() {
		var pos, start, end int
		var label sql.NullString
		if err := srows.Scan(&pos, &start, &end, &label); err != nil {
			return err
		}
		if _, err := dst.Exec("INSERT INTO spans (document_id, position, start_char, end_char, label) VALUES (?, ?, ?, ?, ?)", newID, pos, start, end, label); err != nil {
			return err
		}
	}
	return nil
}

// copyTags copies tag associations, creating missing tags in dst.
func copyTags(src *sql.DB, srcDocID int64, dst *sql.DB, newID int64) error {
	trows, err := src.Query("SELECT t.name FROM tags t JOIN document_tags dt ON t.id = dt.tag_id WHERE dt.document_id = ?", srcDocID)
	if err != nil {
		return err
	}
	defer func() { _ = trows.Close() }()
	for trows.Next() {
		var tag string
		if err := trows.Scan(&tag); err != nil {
			return err
		}
		if _, err := dst.Exec("INSERT OR IGNORE INTO tags (name) VALUES (?)", tag); err != nil {
			return err
		}
		if _, err := dst.Exec("INSERT OR IGNORE INTO document_tags (document_id, tag_id) SELECT ?, id FROM tags WHERE name = ?", newID, tag); err != nil {
			return err
		}
	}
	return nil
}
