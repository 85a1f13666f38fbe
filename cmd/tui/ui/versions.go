package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nlpkit/nespan/internal/tui/adapters"
)

// setVersionsPreviewIndex sets the versions preview to the given index and
// updates internal state; returns a tea.Cmd if needed (nil for now).
func (m *TuiModel) setVersionsPreviewIndex(idx int) tea.Cmd {
	if idx < 0 || idx >= len(m.versions) {
		return nil
	}
	// If no change to the selection and we already have a preview set, no work needed
	if idx == m.versionsSelected && m.versionsPreviewContent != "" {
		return nil
	}
	oldIdx := m.versionsSelected
	oldContent := m.versionsPreviewContent
	content := formatVersionDetails(m.detailName, m.versions[idx], m.vp.Width)
	changed := content != oldContent || idx != oldIdx

	m.versionsSelected = idx
	m.versionsPreviewContent = content
	// reset scroll and set new content if it actually changed
	if changed {
		m.vp.YOffset = 0
		m.vp.SetContent(content)
	}
	return nil
}

// formatVersionDetails renders a full metadata view for a historic version so
// users can inspect the author, operation, created date and recorded spans
// before rolling back.
func formatVersionDetails(name string, v adapters.Version, _ int) string {
	var b strings.Builder
	title := fmt.Sprintf("nespan — %s v%d Details", name, v.Version)
	b.WriteString(title + "\n")
	b.WriteString(strings.Repeat("=", 30) + "\n\n")

	if v.Description != "" {
		b.WriteString("Description:\n")
		b.WriteString(v.Description + "\n\n")
	}

	if len(v.Spans) > 0 {
		b.WriteString("Spans:\n")
		for i, sp := range v.Spans {
			b.WriteString(fmt.Sprintf("%d) [%d,%d) %s\n", i+1, sp.Start, sp.End, sp.Label))
		}
		b.WriteString("\n")
	}

	if v.Operation != "" {
		b.WriteString(fmt.Sprintf("Operation: %s\n", v.Operation))
	}
	if v.AuthorName != "" {
		b.WriteString(fmt.Sprintf("Author: %s\n", v.AuthorName))
	}
	if v.CreatedAt != "" {
		b.WriteString(fmt.Sprintf("Created: %s\n", v.CreatedAt))
	}
	return b.String()
}
