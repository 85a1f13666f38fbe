package exporter

import (
	"fmt"
	"regexp"
	"strings"
)

var placeholderRe = regexp.MustCompile(`{{\s*([a-zA-Z0-9_.-]+)\s*}}`)

// FindPlaceholders returns a unique list of placeholder names referenced in
// a destination template, in order of appearance.
func FindPlaceholders(s string) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, m := range placeholderRe.FindAllStringSubmatch(s, -1) {
		name := m[1]
		if !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	return out
}

// ExpandDest replaces {{name}}-style placeholders in a destination path
// template using values. If a placeholder has no value, an error is returned
// listing the missing keys.
func ExpandDest(tmpl string, values map[string]string) (string, error) {
	missing := []string{}
	result := placeholderRe.ReplaceAllStringFunc(tmpl, func(match string) string {
		sub := placeholderRe.FindStringSubmatch(match)
		if len(sub) < 2 {
			return match
		}
		name := sub[1]
		if v, ok := values[name]; ok {
			return v
		}
		missing = append(missing, name)
		return match
	})
	if len(missing) > 0 {
		uniq := map[string]bool{}
		keys := []string{}
		for _, m := range missing {
			if !uniq[m] {
				uniq[m] = true
				keys = append(keys, m)
			}
		}
		return result, fmt.Errorf("missing placeholders: %s", strings.Join(keys, ", "))
	}
	return result, nil
}
