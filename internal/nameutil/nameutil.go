// Package nameutil validates and sanitizes document and tag names.
package nameutil

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ValidateName checks whether the provided name is acceptable for a document.
// It trims and checks for empty names and non-UTF8 bytes. It does NOT mutate
// the input; use SanitizeName to remove undesirable characters first when
// desired.
func ValidateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("invalid name: name cannot be empty")
	}
	if !utf8.ValidString(name) {
		return fmt.Errorf("invalid name: contains invalid encoding")
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return fmt.Errorf("invalid name: contains control character U+%04X (%q)", r, r)
		}
	}
	return nil
}

// ValidateTag checks whether a tag name is acceptable. Tags follow the same
// rules as document names and additionally may not contain whitespace, since
// they are rendered space-separated in list output.
func ValidateTag(tag string) error {
	if err := ValidateName(tag); err != nil {
		return err
	}
	for _, r := range tag {
		if unicode.IsSpace(r) {
			return fmt.Errorf("invalid tag: contains whitespace")
		}
	}
	return nil
}

// SanitizeName removes common invisible/control characters and returns the
// sanitized string and a boolean indicating whether any change was made.
// It removes control characters, NULs, and zero-width characters commonly
// introduced by copy/paste (e.g., U+200B). Trimming of leading/trailing
// whitespace is also performed.
func SanitizeName(name string) (string, bool) {
	if name == "" {
		return name, false
	}
	runes := []rune(name)
	out := make([]rune, 0, len(runes))
	changed := false
	for _, r := range runes {
		// keep printable chars and spaces/tabs but remove control chars
		if unicode.IsControl(r) {
			changed = true
			continue
		}
		// remove zero-width and other invisible separators
		switch r {
		case '\u200b', '\u200c', '\u200d', '\ufeff':
			changed = true
			continue
		}
		out = append(out, r)
	}
	res := strings.TrimSpace(string(out))
	if res != name {
		changed = true
	}
	return res, changed
}
