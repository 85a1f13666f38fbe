package registry

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

// FuzzyMatch returns true if query fuzzy-matches target.
// Matching is case-insensitive and succeeds on substring match or if
// the query characters appear as a subsequence in the target.
func FuzzyMatch(target, query string) bool {
	if query == "" {
		return true
	}
	t := strings.ToLower(target)
	q := strings.ToLower(query)
	if strings.Contains(t, q) {
		return true
	}
	// subsequence match (rune-aware)
	qr := []rune(q)
	i := 0
	for _, ch := range t {
		if i < len(qr) && qr[i] == ch {
			i++
			if i >= len(qr) {
				return true
			}
		}
	}
	return false
}

// searchTarget flattens the searchable fields of a document into one string.
func searchTarget(d *Document) string {
	parts := []string{d.Name}
	if d.Description.Valid {
		parts = append(parts, d.Description.String)
	}
	parts = append(parts, d.Tags...)
	for _, s := range d.Spans {
		if s.Label.Valid {
			parts = append(parts, s.Label.String)
		}
	}
	return strings.Join(parts, " ")
}

// FuzzySearchDocuments searches documents by fuzzy-matching name, description,
// tags, and span labels, ranked best match first.
func (r *Repository) FuzzySearchDocuments(query string) ([]Document, error) {
	summaries, err := r.ListDocuments()
	if err != nil {
		return nil, err
	}
	docs := make([]*Document, 0, len(summaries))
	targets := make([]string, 0, len(summaries))
	for _, s := range summaries {
		d, err := r.GetDocumentByName(s.Name)
		if err != nil {
			return nil, err
		}
		if d == nil {
			continue
		}
		docs = append(docs, d)
		targets = append(targets, searchTarget(d))
	}
	matches := fuzzy.Find(query, targets)
	out := make([]Document, 0, len(matches))
	for _, m := range matches {
		out = append(out, *docs[m.Index])
	}
	return out, nil
}
