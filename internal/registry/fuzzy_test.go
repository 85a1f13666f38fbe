package registry

import "testing"

func TestFuzzyMatch(t *testing.T) {
	cases := []struct {
		target, query string
		want          bool
	}{
		{"berakhot-2a", "", true},
		{"berakhot-2a", "berakhot", true},
		{"berakhot-2a", "BER", true},
		{"berakhot-2a", "bkt2", true}, // subsequence
		{"berakhot-2a", "xyz", false},
	}
	for _, c := range cases {
		if got := FuzzyMatch(c.target, c.query); got != c.want {
			t.Fatalf("FuzzyMatch(%q, %q) = %v, want %v", c.target, c.query, got, c.want)
		}
	}
}

func TestFuzzySearchDocuments(t *testing.T) {
	r, id := setupDemoDoc(t)
	if err := r.AddTagToDocument(id, "talmud"); err != nil {
		t.Fatalf("AddTagToDocument: %v", err)
	}

	hits, err := r.FuzzySearchDocuments("tlmd")
	if err != nil {
		t.Fatalf("FuzzySearchDocuments: %v", err)
	}
	if len(hits) != 1 || hits[0].Name != "demo" {
		t.Fatalf("expected fuzzy tag hit, got %+v", hits)
	}

	hits, err = r.FuzzySearchDocuments("zzzz")
	if err != nil {
		t.Fatalf("FuzzySearchDocuments: %v", err)
	}
	if len(hits) != 0 {
		t.Fatalf("expected no hits, got %d", len(hits))
	}
}
