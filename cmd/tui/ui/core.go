package ui

import (
	"context"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nlpkit/nespan/internal/registry"
	"github.com/nlpkit/nespan/internal/tui/adapters"
)

// docFilter ranks list items the way the CLI matches document names: case
// insensitive, substring or subsequence. Unlike the default fuzzy ranking it
// never drops a name the registry search would keep.
func docFilter(term string, targets []string) []list.Rank {
	ranks := make([]list.Rank, 0, len(targets))
	for i, t := range targets {
		if registry.FuzzyMatch(t, term) {
			ranks = append(ranks, list.Rank{Index: i})
		}
	}
	return ranks
}

// NewModel constructs the Bubble Tea TUI model used by cmd/tui. It accepts
// any implementation of Model (usually the framework-agnostic internal
// model) so tests can provide fakes.
func NewModel(ui Model) *TuiModel {
	l := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	l.Title = "nespan — documents"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.Filter = docFilter

	vp := viewport.New(0, 0)

	return &TuiModel{uiModel: ui, list: l, vp: vp}
}

// NewProgram constructs the tea.Program for the TUI.
func NewProgram(ui Model) *tea.Program {
	m := NewModel(ui)
	p := tea.NewProgram(m, tea.WithAltScreen())
	return p
}

// Init initializes the model by refreshing the list and populating the preview.
func (m *TuiModel) Init() tea.Cmd {
	return func() tea.Msg {
		_ = m.uiModel.RefreshList(context.Background())
		items := make([]list.Item, 0, len(m.uiModel.ListCached()))
		for _, s := range m.uiModel.ListCached() {
			items = append(items, docItem{doc: s})
		}

		// Reasonable defaults so the UI shows content on first render
		// (before a WindowSizeMsg arrives).
		if m.list.Height() == 0 {
			m.list.SetSize(30, 10)
		}
		if m.vp.Width == 0 || m.vp.Height == 0 {
			m.vp = viewport.New(40, 12)
		}

		m.list.SetItems(items)

		if len(items) > 0 {
			m.list.Select(0)
			if it, ok := items[0].(docItem); ok {
				m.lastSelectedName = it.doc.Name
				if d, err := m.uiModel.GetDocument(context.Background(), it.doc.Name); err == nil {
					m.vp.SetContent(formatDocDetails(d, m.vp.Width))
				} else {
					m.vp.SetContent(formatDocDetails(it.doc, m.vp.Width))
				}
			}
		}
		return nil
	}
}

// readLoop returns a command that reads one event from the channel and
// returns it as a tea.Msg. The caller should return the readLoop command
// again from Update to continue the stream.
func readLoop(ch <-chan adapters.AnnotateEvent) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return annDoneMsg{}
		}
		return annEventMsg(ev)
	}
}
