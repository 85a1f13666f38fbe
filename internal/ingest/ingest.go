// Package ingest reads document text and span listings from files or stdin.
package ingest

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nlpkit/nespan/internal/annotate"
	"github.com/nlpkit/nespan/internal/registry"
	"github.com/nlpkit/nespan/internal/span"
)

// ReadText reads all of r as document text, normalizing typographic quote
// variants and stripping invisible control runes so stored rune offsets stay
// meaningful.
func ReadText(r io.Reader) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read text: %w", err)
	}
	return annotate.NormalizeText(string(b)), nil
}

// ReadSpanLines reads span annotations from r, one per line, in the form
//
//	<start> <end> [label]
//
// Offsets are rune offsets. Blank lines and lines starting with '#' are
// ignored.
func ReadSpanLines(r io.Reader) ([]span.Record, error) {
	s := bufio.NewScanner(r)
	var out []span.Record
	lineNo := 0
	for s.Scan() {
		lineNo++
		line := strings.TrimSpace(s.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil, fmt.Errorf("line %d: expected '<start> <end> [label]', got %q", lineNo, line)
		}
		start, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, fmt.Errorf("line %d: bad start offset %q", lineNo, fields[0])
		}
		end, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, fmt.Errorf("line %d: bad end offset %q", lineNo, fields[1])
		}
		rec := span.Record{Range: [2]int{start, end}}
		if len(fields) > 2 {
			rec.Label = strings.Join(fields[2:], " ")
		}
		out = append(out, rec)
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("read spans: %w", err)
	}
	return out, nil
}

// SaveIngested creates a document with the given metadata, text, and spans
// using the repository. Returns the created document ID.
func SaveIngested(r *registry.Repository, name string, description *string, language *string, authorName *string, authorEmail *string, text string, recs []span.Record) (int64, error) {
	return r.CreateDocument(name, description, language, authorName, authorEmail, text, recs)
}
