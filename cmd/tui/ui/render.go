package ui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/nlpkit/nespan/internal/tui/adapters"
	"github.com/nlpkit/nespan/internal/tui/sanitize"
)

// simple word-wrap to produce lines no longer than width (approximate by rune count)
func wrapText(s string, width int) []string {
	if width <= 0 {
		return []string{s}
	}
	out := []string{}
	for _, para := range strings.Split(s, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}
		cur := words[0]
		for _, w := range words[1:] {
			if utf8.RuneCountInString(cur)+1+utf8.RuneCountInString(w) > width {
				out = append(out, cur)
				cur = w
			} else {
				cur = cur + " " + w
			}
		}
		out = append(out, cur)
	}
	return out
}

// renderTwoCol renders a prefix in a fixed-width left column and wraps the
// text into the right column. Returns the joined lines.
func renderTwoCol(prefix, text string, prefixW, textW int) string {
	if prefixW < 0 {
		prefixW = 0
	}
	if textW < 0 {
		textW = 0
	}
	lines := wrapText(text, textW)
	var b strings.Builder
	for i, ln := range lines {
		var left string
		if i == 0 {
			// right-align prefix within prefixW
			padded := prefix
			if utf8.RuneCountInString(padded) < prefixW {
				padded = strings.Repeat(" ", prefixW-utf8.RuneCountInString(padded)) + padded
			}
			left = padded
		} else {
			left = strings.Repeat(" ", prefixW)
		}
		b.WriteString(left + " " + ln + "\n")
	}
	return b.String()
}

// renderTableInline renders a label on the left and the value on the same line
// when possible. Values are wrapped to valueW and continuation lines are
// aligned under the value column.
func renderTableInline(label, value string, labelW, valueW int) string {
	if labelW < 0 {
		labelW = 0
	}
	if valueW < 0 {
		valueW = 0
	}
	lines := wrapText(value, valueW)
	var b strings.Builder
	for i, ln := range lines {
		if i == 0 {
			padded := label
			if utf8.RuneCountInString(padded) < labelW {
				padded = padded + strings.Repeat(" ", labelW-utf8.RuneCountInString(padded))
			}
			b.WriteString(padded + " " + ln + "\n")
		} else {
			b.WriteString(strings.Repeat(" ", labelW) + " " + ln + "\n")
		}
	}
	// if value is empty, still render the label alone
	if len(lines) == 0 {
		padded := label
		if utf8.RuneCountInString(padded) < labelW {
			padded = padded + strings.Repeat(" ", labelW-utf8.RuneCountInString(padded))
		}
		b.WriteString(padded + "\n")
	}
	return b.String()
}

// renderTableBlockHeader renders the label as a header line and places the
// (already wrapped) block lines underneath it, aligned to the value column.
func renderTableBlockHeader(label, block string, labelW int) string {
	if labelW < 0 {
		labelW = 0
	}
	lines := strings.Split(strings.TrimSuffix(block, "\n"), "\n")
	var b strings.Builder
	padded := label
	if utf8.RuneCountInString(padded) < labelW {
		padded = padded + strings.Repeat(" ", labelW-utf8.RuneCountInString(padded))
	}
	b.WriteString(padded + "\n")
	for _, ln := range lines {
		b.WriteString(strings.Repeat(" ", labelW) + " " + ln + "\n")
	}
	return b.String()
}

func formatDocFullScreen(d adapters.DocumentSummary, width int, _ int) string {
	// Colored headings to match the main UI's visual style
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#0ea5a4")).Background(lipgloss.Color("#0b1226"))
	h := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#0ea5a4"))
	k := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#94a3b8"))

	var b strings.Builder
	contentW := width - 6
	if contentW < 10 {
		contentW = 10
	}

	// Title header inside the container
	titleText := fmt.Sprintf("nespan — %s Details", d.Name)
	b.WriteString(titleStyle.Render(titleText) + "\n")
	sepLen := contentW
	if sepLen > len(titleText)+4 {
		sepLen = len(titleText) + 4
	}
	b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("#0ea5a4")).Render(strings.Repeat("─", sepLen)) + "\n\n")

	labelW, valueW := detailColumns(contentW)

	// Name inline
	b.WriteString(h.Render("Name:") + " " + d.Name + "\n")

	appendDescription(&b, d.Description, valueW, labelW, h)
	appendTextPreview(&b, d.Text, valueW, labelW, h)
	appendSpans(&b, d.Spans, valueW, labelW, h)
	appendMetadata(&b, d, h, k)
	return b.String()
}

func formatDocDetails(d adapters.DocumentSummary, width int) string {
	// invisible table layout, kept predictable for tests
	var b strings.Builder
	contentW := width - 4
	if contentW < 10 {
		contentW = 10
	}
	labelW, valueW := detailColumns(contentW)

	b.WriteString(renderTableInline("Name:", d.Name, labelW, valueW))

	h := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#0ea5a4"))
	k := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#94a3b8"))
	if d.Description != "" {
		appendDescription(&b, d.Description, valueW, labelW, h)
	}
	appendTextPreview(&b, d.Text, valueW, labelW, h)
	appendSpans(&b, d.Spans, valueW, labelW, h)
	appendMetadata(&b, d, h, k)
	return b.String()
}

// detailColumns computes the label/value column widths for the detail tables.
func detailColumns(contentW int) (labelW, valueW int) {
	labels := []string{"Name:", "Description:", "Text:", "Spans:", "Metadata:"}
	for _, l := range labels {
		if utf8.RuneCountInString(l) > labelW {
			labelW = utf8.RuneCountInString(l)
		}
	}
	valueW = contentW - labelW - 1
	if valueW < 10 {
		valueW = 10
	}
	return labelW, valueW
}

func appendDescription(b *strings.Builder, desc string, valueW, labelW int, h lipgloss.Style) {
	if desc == "" {
		return
	}
	lines := wrapText(desc, valueW)
	b.WriteString("\n")
	b.WriteString(h.Render("Description:") + "\n")
	b.WriteString(renderTableBlockHeader("", strings.Join(lines, "\n"), labelW))
}

// appendTextPreview renders the annotated text, sanitized for terminal
// display and truncated to a handful of lines so the detail view stays
// readable for long documents.
func appendTextPreview(b *strings.Builder, text string, valueW, labelW int, h lipgloss.Style) {
	if text == "" {
		return
	}
	const maxPreviewLines = 8
	clean := sanitize.ViewText(text)
	lines := wrapText(clean, valueW)
	if len(lines) > maxPreviewLines {
		lines = append(lines[:maxPreviewLines], "…")
	}
	b.WriteString("\n")
	b.WriteString(h.Render("Text:") + "\n")
	b.WriteString(renderTableBlockHeader("", strings.Join(lines, "\n"), labelW))
}

func appendSpans(b *strings.Builder, spans []adapters.SpanInfo, valueW, labelW int, h lipgloss.Style) {
	if len(spans) == 0 {
		return
	}
	b.WriteString("\n")
	b.WriteString(h.Render("Spans:") + "\n")
	maxPrefix := 0
	for i := range spans {
		p := fmt.Sprintf("%d) ", i+1)
		if l := utf8.RuneCountInString(p); l > maxPrefix {
			maxPrefix = l
		}
	}
	innerTextW := valueW - maxPrefix - 1
	if innerTextW < 10 {
		innerTextW = 10
	}
	var sb strings.Builder
	for i, sp := range spans {
		p := fmt.Sprintf("%d) ", i+1)
		body := fmt.Sprintf("[%d,%d) %s", sp.Start, sp.End, sp.Label)
		if sp.Text != "" {
			body += fmt.Sprintf("  %q", sanitize.ViewText(sp.Text))
		}
		sb.WriteString(renderTwoCol(p, body, maxPrefix, innerTextW))
	}
	b.WriteString(renderTableBlockHeader("", strings.TrimSuffix(sb.String(), "\n"), labelW))
}

func appendMetadata(b *strings.Builder, d adapters.DocumentSummary, h, k lipgloss.Style) {
	meta := []string{}
	if d.Language != "" {
		meta = append(meta, "Language: "+d.Language)
	}
	if d.AuthorName != "" {
		meta = append(meta, "Author: "+d.AuthorName)
	}
	if d.AuthorEmail != "" {
		meta = append(meta, "Email: "+d.AuthorEmail)
	}
	if d.CreatedAt != "" {
		meta = append(meta, "Created: "+d.CreatedAt)
	}
	if d.LastAnnotated != "" {
		meta = append(meta, "Last annotated: "+d.LastAnnotated)
	}
	if len(d.Tags) > 0 {
		meta = append(meta, "Tags: "+strings.Join(d.Tags, ", "))
	}
	if len(meta) > 0 {
		b.WriteString("\n")
		b.WriteString(h.Render("Metadata:") + "\n")
		for _, m := range meta {
			b.WriteString(k.Render("  "+m) + "\n")
		}
	}
}
