package adapters

import (
	"context"
	"testing"
)

type fakeRegistry struct{ items []DocumentSummary }

func (f *fakeRegistry) ListDocuments(_ context.Context) ([]DocumentSummary, error) {
	return f.items, nil
}
func (f *fakeRegistry) GetDocument(_ context.Context, name string) (DocumentSummary, error) {
	for _, it := range f.items {
		if it.Name == name {
			return it, nil
		}
	}
	return DocumentSummary{}, ErrNotFound
}
func (f *fakeRegistry) SaveDocument(_ context.Context, _ DocumentSummary) error { return nil }
func (f *fakeRegistry) DeleteDocument(_ context.Context, _ string) error        { return nil }
func (f *fakeRegistry) ReplaceSpans(_ context.Context, _ string, _ []SpanInfo) error {
	return nil
}
func (f *fakeRegistry) UpdateDocument(_ context.Context, _ string, _ DocumentSummary) error {
	return nil
}
func (f *fakeRegistry) ListVersionsByName(_ context.Context, _ string) ([]Version, error) {
	return nil, nil
}
func (f *fakeRegistry) ApplyVersionByName(_ context.Context, _ string, _ int) error { return nil }

func TestFakeAdapters_List(t *testing.T) {
	reg := &fakeRegistry{items: []DocumentSummary{{Name: "a", Description: "A"}, {Name: "b", Description: "B"}}}
	items, err := reg.ListDocuments(context.Background())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items got %d", len(items))
	}
}

func TestSpanRecordRoundTrip(t *testing.T) {
	infos := []SpanInfo{{Start: 0, End: 5, Label: "title"}, {Start: 6, End: 9}}
	recs := spanRecords(infos)
	if len(recs) != 2 || recs[0].Range != [2]int{0, 5} || recs[0].Label != "title" {
		t.Fatalf("unexpected records: %+v", recs)
	}
	back := spanInfos(recs)
	if len(back) != 2 || back[1].Start != 6 || back[1].End != 9 {
		t.Fatalf("unexpected infos: %+v", back)
	}
}
