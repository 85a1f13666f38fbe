// Package annotate applies labeling rules to document text, producing span
// annotations.
package annotate

import (
	"fmt"
	"io"
	"os"
	"regexp"

	"github.com/BurntSushi/toml"
	homedir "github.com/mitchellh/go-homedir"

	"github.com/nlpkit/nespan/internal/span"
)

// Rule maps a regular expression to a named-entity label.
type Rule struct {
	Pattern string `toml:"pattern"`
	Label   string `toml:"label"`

	re *regexp.Regexp
}

// RuleSet is a list of rules, typically loaded from a TOML file:
//
//	[[rule]]
//	pattern = '\bBerakhot \d+[ab]\b'
//	label = "Citation"
type RuleSet struct {
	Rules []Rule `toml:"rule"`
}

// ParseRules decodes and compiles a rule set from r. Rules with labels
// outside the known vocabularies are rejected.
func ParseRules(r io.Reader) (*RuleSet, error) {
	var rs RuleSet
	if _, err := toml.NewDecoder(r).Decode(&rs); err != nil {
		return nil, fmt.Errorf("decode rules: %w", err)
	}
	if len(rs.Rules) == 0 {
		return nil, fmt.Errorf("rule set is empty")
	}
	for i := range rs.Rules {
		rule := &rs.Rules[i]
		if !span.KnownLabel(rule.Label) {
			return nil, fmt.Errorf("rule %d: unknown label %q", i+1, rule.Label)
		}
		re, err := regexp.Compile(rule.Pattern)
		if err != nil {
			return nil, fmt.Errorf("rule %d: compile %q: %w", i+1, rule.Pattern, err)
		}
		// A pattern that matches the empty string would produce a
		// zero-width span at every offset of every document.
		if re.MatchString("") {
			return nil, fmt.Errorf("rule %d: pattern %q matches the empty string", i+1, rule.Pattern)
		}
		rule.re = re
	}
	return &rs, nil
}

// LoadRules reads a rule file, expanding a leading ~ in path.
func LoadRules(path string) (*RuleSet, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(expanded)
	if err != nil {
		return nil, fmt.Errorf("open rules: %w", err)
	}
	defer func() { _ = f.Close() }()
	return ParseRules(f)
}
