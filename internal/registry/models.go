// Package registry stores annotated documents and their spans.
package registry

import "database/sql"

// Document is a named text with its span annotations.
type Document struct {
	ID            int64
	UID           sql.NullString
	Name          string
	Description   sql.NullString
	Language      sql.NullString
	AuthorName    sql.NullString
	AuthorEmail   sql.NullString
	Text          string
	CreatedAt     string
	LastAnnotated sql.NullString
	Spans         []SpanRow
	Tags          []string
}

// SpanRow is a single stored span annotation within a Document. Start and
// End are rune offsets into the document text.
type SpanRow struct {
	ID         int64
	DocumentID int64
	Position   int
	Start      int
	End        int
	Label      sql.NullString
}
