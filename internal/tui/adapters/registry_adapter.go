package adapters

import (
	"context"
	"fmt"

	"github.com/nlpkit/nespan/internal/registry"
	"github.com/nlpkit/nespan/internal/span"
)

// RegistryAdapterImpl adapts internal/registry.Repository to the UI adapters.RegistryAdapter interface.
type RegistryAdapterImpl struct{ repo *registry.Repository }

// NewRegistryAdapter returns an adapter that wraps an internal registry.Repository.
func NewRegistryAdapter(repo *registry.Repository) *RegistryAdapterImpl {
	return &RegistryAdapterImpl{repo: repo}
}

// ListDocuments returns a list of document summaries.
func (r *RegistryAdapterImpl) ListDocuments(_ context.Context) ([]DocumentSummary, error) {
	docs, err := r.repo.ListDocuments()
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	out := make([]DocumentSummary, 0, len(docs))
	for _, d := range docs {
		out = append(out, DocumentSummary{Name: d.Name, Description: d.Description.String})
	}
	return out, nil
}

// GetDocument retrieves a full DocumentSummary by name, including its spans
// with their covered text.
func (r *RegistryAdapterImpl) GetDocument(_ context.Context, name string) (DocumentSummary, error) {
	d, err := r.repo.GetDocumentByName(name)
	if err != nil {
		return DocumentSummary{}, fmt.Errorf("get: %w", err)
	}
	if d == nil {
		return DocumentSummary{}, ErrNotFound
	}
	doc := span.NewDoc(d.Text)
	spans := make([]SpanInfo, 0, len(d.Spans))
	for _, s := range d.Spans {
		label := ""
		if s.Label.Valid {
			label = s.Label.String
		}
		info := SpanInfo{Start: s.Start, End: s.End, Label: label}
		if sub, err := doc.Subspan(s.Start, s.End, label); err == nil {
			info.Text = sub.Text()
		}
		spans = append(spans, info)
	}
	return DocumentSummary{
		Name:          d.Name,
		Description:   d.Description.String,
		Language:      d.Language.String,
		AuthorName:    d.AuthorName.String,
		AuthorEmail:   d.AuthorEmail.String,
		Tags:          d.Tags,
		CreatedAt:     d.CreatedAt,
		LastAnnotated: d.LastAnnotated.String,
		Text:          d.Text,
		Spans:         spans,
	}, nil
}

// SaveDocument creates a new document in the underlying repository.
func (r *RegistryAdapterImpl) SaveDocument(_ context.Context, d DocumentSummary) error {
	var desc *string
	if d.Description != "" {
		desc = &d.Description
	}
	var lang *string
	if d.Language != "" {
		lang = &d.Language
	}
	var an *string
	if d.AuthorName != "" {
		an = &d.AuthorName
	}
	var ae *string
	if d.AuthorEmail != "" {
		ae = &d.AuthorEmail
	}
	_, err := r.repo.CreateDocument(d.Name, desc, lang, an, ae, d.Text, spanRecords(d.Spans))
	return err
}

// DeleteDocument deletes a document by name.
func (r *RegistryAdapterImpl) DeleteDocument(_ context.Context, name string) error {
	return r.repo.DeleteDocument(name)
}

// ReplaceSpans replaces the spans for the named document.
func (r *RegistryAdapterImpl) ReplaceSpans(_ context.Context, name string, spans []SpanInfo) error {
	d, err := r.repo.GetDocumentByName(name)
	if err != nil {
		return err
	}
	if d == nil {
		return ErrNotFound
	}
	return r.repo.ReplaceSpans(d.ID, spanRecords(spans), "annotate")
}

// UpdateDocument updates metadata and tags for an existing document.
func (r *RegistryAdapterImpl) UpdateDocument(_ context.Context, oldName string, d DocumentSummary) error {
	cur, err := r.repo.GetDocumentByName(oldName)
	if err != nil {
		return err
	}
	if cur == nil {
		return ErrNotFound
	}
	var desc *string
	if d.Description != "" {
		desc = &d.Description
	}
	var lang *string
	if d.Language != "" {
		lang = &d.Language
	}
	var an *string
	if d.AuthorName != "" {
		an = &d.AuthorName
	}
	var ae *string
	if d.AuthorEmail != "" {
		ae = &d.AuthorEmail
	}
	return r.repo.UpdateDocument(cur.ID, d.Name, desc, lang, an, ae, d.Tags)
}

// ListVersionsByName lists historical versions for the named document.
func (r *RegistryAdapterImpl) ListVersionsByName(_ context.Context, name string) ([]Version, error) {
	vers, err := r.repo.ListVersionsByName(name)
	if err != nil {
		return nil, err
	}
	out := make([]Version, 0, len(vers))
	for _, v := range vers {
		out = append(out, Version{
			Version:     v.Version,
			CreatedAt:   v.CreatedAt,
			AuthorName:  v.AuthorName.String,
			AuthorEmail: v.AuthorEmail.String,
			Description: v.Description.String,
			Spans:       spanInfos(v.Spans),
			Operation:   v.Operation,
		})
	}
	return out, nil
}

// ApplyVersionByName applies a historical version to the named document (rollback).
func (r *RegistryAdapterImpl) ApplyVersionByName(_ context.Context, name string, versionNum int) error {
	return r.repo.ApplyVersionByName(name, versionNum)
}

// spanRecords converts UI span infos to storage records.
func spanRecords(infos []SpanInfo) []span.Record {
	out := make([]span.Record, 0, len(infos))
	for _, s := range infos {
		out = append(out, span.Record{Range: [2]int{s.Start, s.End}, Label: s.Label})
	}
	return out
}

// spanInfos converts storage records to UI span infos.
func spanInfos(recs []span.Record) []SpanInfo {
	out := make([]SpanInfo, 0, len(recs))
	for _, rec := range recs {
		out = append(out, SpanInfo{Start: rec.Range[0], End: rec.Range[1], Label: rec.Label, Text: rec.Text})
	}
	return out
}
