package annotate

import (
	"context"
	"strings"
	"testing"
)

const demoRules = `
[[rule]]
pattern = 'Rabbi \p{L}+'
label = "Person"

[[rule]]
pattern = 'Berakhot \d+[ab]'
label = "Citation"
`

func TestParseRules(t *testing.T) {
	rs, err := ParseRules(strings.NewReader(demoRules))
	if err != nil {
		t.Fatalf("ParseRules: %v", err)
	}
	if len(rs.Rules) != 2 {
		t.Fatalf("expected 2 rules, got %d", len(rs.Rules))
	}
}

func TestParseRulesRejectsUnknownLabel(t *testing.T) {
	bad := "[[rule]]\npattern = 'x'\nlabel = \"Widget\"\n"
	if _, err := ParseRules(strings.NewReader(bad)); err == nil {
		t.Fatalf("expected unknown label to be rejected")
	}
}

func TestParseRulesRejectsBadPattern(t *testing.T) {
	bad := "[[rule]]\npattern = '['\nlabel = \"Person\"\n"
	if _, err := ParseRules(strings.NewReader(bad)); err == nil {
		t.Fatalf("expected invalid pattern to be rejected")
	}
}

func TestParseRulesRejectsEmptyStringMatch(t *testing.T) {
	bad := "[[rule]]\npattern = 'x*'\nlabel = \"Person\"\n"
	if _, err := ParseRules(strings.NewReader(bad)); err == nil {
		t.Fatalf("expected empty-string-matching pattern to be rejected")
	}
}

func TestParseRulesRejectsEmpty(t *testing.T) {
	if _, err := ParseRules(strings.NewReader("")); err == nil {
		t.Fatalf("expected empty rule set to be rejected")
	}
}

func TestAnnotateFindsMatches(t *testing.T) {
	rs, err := ParseRules(strings.NewReader(demoRules))
	if err != nil {
		t.Fatalf("ParseRules: %v", err)
	}
	e := &Engine{}
	text := "As Rabbi Akiva taught in Berakhot 2a, ..."
	recs, err := e.Annotate(context.Background(), text, rs)
	if err != nil {
		t.Fatalf("Annotate: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 matches, got %d: %+v", len(recs), recs)
	}
	// ordered by start offset
	if recs[0].Label != "Person" || recs[0].Range != [2]int{3, 14} {
		t.Fatalf("unexpected first match: %+v", recs[0])
	}
	if recs[1].Label != "Citation" || recs[1].Range != [2]int{25, 36} {
		t.Fatalf("unexpected second match: %+v", recs[1])
	}
}

func TestAnnotateRuneOffsets(t *testing.T) {
	rules := "[[rule]]\npattern = 'רבי \\p{L}+'\nlabel = \"בן-אדם\"\n"
	rs, err := ParseRules(strings.NewReader(rules))
	if err != nil {
		t.Fatalf("ParseRules: %v", err)
	}
	e := &Engine{}
	text := "אמר רבי עקיבא"
	recs, err := e.Annotate(context.Background(), text, rs)
	if err != nil {
		t.Fatalf("Annotate: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("expected 1 match, got %d", len(recs))
	}
	// offsets must count runes, not bytes
	if recs[0].Range != [2]int{4, 13} {
		t.Fatalf("unexpected range: %+v", recs[0].Range)
	}
}

func TestAnnotateCancelled(t *testing.T) {
	rs, err := ParseRules(strings.NewReader(demoRules))
	if err != nil {
		t.Fatalf("ParseRules: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	e := &Engine{}
	if _, err := e.Annotate(ctx, "Rabbi Akiva", rs); err == nil {
		t.Fatalf("expected context error")
	}
}

func TestNormalizeText(t *testing.T) {
	in := "\u201Chello\u201D\u00A0world\u200B\u200F"
	want := "\"hello\" world"
	if got := NormalizeText(in); got != want {
		t.Fatalf("NormalizeText = %q, want %q", got, want)
	}
}

func TestStream(t *testing.T) {
	rs, err := ParseRules(strings.NewReader(demoRules))
	if err != nil {
		t.Fatalf("ParseRules: %v", err)
	}
	h := Stream(context.Background(), &Engine{}, "Rabbi Akiva cites Berakhot 2a", rs)
	var n int
	for ev := range h.Events() {
		if ev.Err != nil {
			t.Fatalf("event error: %v", ev.Err)
		}
		n++
	}
	if n != 2 {
		t.Fatalf("expected 2 events, got %d", n)
	}
}
