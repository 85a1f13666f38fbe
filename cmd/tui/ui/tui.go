package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nlpkit/nespan/internal/tui/adapters"
)

// TuiModel is the Bubble Tea model used by cmd/tui.
type TuiModel struct {
	uiModel Model
	list    list.Model
	vp      viewport.Model

	width  int
	height int

	showDetail string // "", "doc", "versions", "help"
	detail     string
	detailName string

	annotateInProgress bool
	annotateCancelled  bool
	pendingSpans       []adapters.SpanInfo
	logs               []string
	cancelAnnotate     func()
	annCh              chan adapters.AnnotateEvent

	versions               []adapters.Version
	versionsSelected       int
	versionsPreviewContent string

	// accessibility / theme
	themeHighContrast bool
	// track last selected name so we can detect changes and update preview
	lastSelectedName string
	// focus: false = left pane (list), true = right pane (viewport)
	focusRight bool
}

// Messages
type annEventMsg adapters.AnnotateEvent
type annDoneMsg struct{}

func (m *TuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			// let the list process filter input first; only Enter falls through
			if msg.String() != "enter" {
				m.list, cmd = m.list.Update(msg)
				return m, cmd
			}
		}
		return m.handleKey(msg)

	case annEventMsg:
		ev := adapters.AnnotateEvent(msg)
		if ev.Err != nil {
			m.logs = append(m.logs, "err: "+ev.Err.Error())
			m.annotateInProgress = false
			m.annCh = nil
			return m, nil
		}
		m.pendingSpans = append(m.pendingSpans, ev.Span)
		m.logs = append(m.logs, fmt.Sprintf("[%d,%d) %s", ev.Span.Start, ev.Span.End, ev.Span.Label))
		// keep viewport scrolled to bottom
		m.vp.SetContent(strings.Join(m.logs, "\n"))
		m.vp.GotoBottom()
		if m.annCh != nil {
			return m, readLoop(m.annCh)
		}
		return m, nil

	case annDoneMsg:
		m.annotateInProgress = false
		m.annCh = nil
		// a cancelled run may still drain buffered events before the
		// channel closes; never store its partial matches
		if m.annotateCancelled {
			m.annotateCancelled = false
			m.pendingSpans = nil
			m.logs = append(m.logs, "annotation cancelled")
			return m, nil
		}
		// store the run's matches on the document and refresh the detail view
		if m.detailName != "" {
			if err := m.uiModel.ReplaceSpans(context.Background(), m.detailName, m.pendingSpans); err != nil {
				m.logs = append(m.logs, "store spans: "+err.Error())
			} else if d, err := m.uiModel.GetDocument(context.Background(), m.detailName); err == nil {
				m.detail = formatDocFullScreen(d, m.width, m.height)
				m.vp.SetContent(m.detail)
			}
		}
		m.pendingSpans = nil
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
	}

	return m, cmd
}

func (m *TuiModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	s := msg.String()
	// global keybindings handled BEFORE passing to the list so they are
	// not swallowed when filtering is enabled.
	switch s {
	case "q", "esc":
		if m.annotateInProgress && m.cancelAnnotate != nil {
			m.annotateCancelled = true
			m.cancelAnnotate()
		}
		if m.showDetail != "" {
			m.showDetail = ""
			m.focusRight = false
			m.restorePreview()
			return m, nil
		}
		return m, tea.Quit
	case "?":
		m.showDetail = "help"
		m.detail = "Help:\n\n? show help\nq or Esc to quit / go back\nEnter to view document details\n/ to filter\na annotate the viewed document\nv version history\nR rollback to selected version\nD delete selected document\nT toggle theme\n← → or Tab to switch pane focus\n↑ ↓ to scroll focused pane"
		m.vp.SetContent(m.detail)
		return m, nil
	case "enter":
		if i, ok := m.list.SelectedItem().(docItem); ok {
			m.showDetail = "doc"
			m.detailName = i.doc.Name
			if d, err := m.uiModel.GetDocument(context.Background(), i.doc.Name); err == nil {
				m.detail = formatDocFullScreen(d, m.width, m.height)
			} else {
				m.detail = formatDocDetails(i.doc, m.width/2)
			}
			m.vp.SetContent(m.detail)
		}
		return m, nil
	case "b":
		m.showDetail = ""
		m.focusRight = false
		m.restorePreview()
		return m, nil
	case "a":
		return m.startAnnotate()
	case "v":
		if m.detailName == "" {
			if i, ok := m.list.SelectedItem().(docItem); ok {
				m.detailName = i.doc.Name
			}
		}
		if m.detailName == "" {
			return m, nil
		}
		vers, err := m.uiModel.ListVersions(context.Background(), m.detailName)
		if err != nil {
			m.logs = append(m.logs, "versions: "+err.Error())
			return m, nil
		}
		m.versions = vers
		m.versionsSelected = -1
		m.versionsPreviewContent = ""
		m.showDetail = "versions"
		m.setVersionsPreviewIndex(0)
		return m, nil
	case "R":
		if m.showDetail == "versions" && m.versionsSelected >= 0 && m.versionsSelected < len(m.versions) {
			v := m.versions[m.versionsSelected]
			if err := m.uiModel.ApplyVersion(context.Background(), m.detailName, v.Version); err != nil {
				m.logs = append(m.logs, "rollback: "+err.Error())
			} else {
				m.logs = append(m.logs, fmt.Sprintf("rolled back %s to v%d", m.detailName, v.Version))
			}
		}
		return m, nil
	case "D":
		if i, ok := m.list.SelectedItem().(docItem); ok {
			if err := m.uiModel.Delete(context.Background(), i.doc.Name); err != nil {
				m.logs = append(m.logs, "delete: "+err.Error())
				return m, nil
			}
			m.refreshItems()
		}
		return m, nil
	case "T":
		m.themeHighContrast = !m.themeHighContrast
		return m, nil
	case "left":
		m.focusRight = false
		return m, nil
	case "right":
		m.focusRight = true
		return m, nil
	case "tab":
		m.focusRight = !m.focusRight
		return m, nil
	}
	// non-printable bindings
	if msg.Type == tea.KeyCtrlT {
		m.themeHighContrast = !m.themeHighContrast
		return m, nil
	}

	// versions view owns up/down for selecting a version
	if m.showDetail == "versions" {
		switch s {
		case "up", "k":
			m.setVersionsPreviewIndex(m.versionsSelected - 1)
			return m, nil
		case "down", "j":
			m.setVersionsPreviewIndex(m.versionsSelected + 1)
			return m, nil
		}
	}

	// Handle scrolling based on which pane has focus
	if m.focusRight || m.showDetail != "" {
		switch s {
		case "up", "k":
			m.vp.LineUp(1)
			return m, nil
		case "down", "j":
			m.vp.LineDown(1)
			return m, nil
		case "pgup":
			m.vp.HalfViewUp()
			return m, nil
		case "pgdown":
			m.vp.HalfViewDown()
			return m, nil
		case "home":
			m.vp.GotoTop()
			return m, nil
		case "end":
			m.vp.GotoBottom()
			return m, nil
		}
	}

	// Left pane focused or other keys - pass to list
	m.list, cmd = m.list.Update(msg)

	// If the selection changed, update the preview pane by fetching the
	// full document from the model and rendering it.
	if si := m.list.SelectedItem(); si != nil {
		if it, ok := si.(docItem); ok {
			if it.doc.Name != m.lastSelectedName {
				if d, err := m.uiModel.GetDocument(context.Background(), it.doc.Name); err == nil {
					m.vp.SetContent(formatDocDetails(d, m.vp.Width))
				}
				m.lastSelectedName = it.doc.Name
			}
		}
	}
	return m, cmd
}

// startAnnotate begins a streaming annotation run over the viewed document.
func (m *TuiModel) startAnnotate() (tea.Model, tea.Cmd) {
	if m.annotateInProgress {
		return m, nil
	}
	name := m.detailName
	if name == "" {
		if i, ok := m.list.SelectedItem().(docItem); ok {
			name = i.doc.Name
		}
	}
	if name == "" {
		return m, nil
	}
	m.detailName = name
	m.logs = nil
	m.pendingSpans = nil
	m.annotateInProgress = true
	m.annotateCancelled = false
	m.focusRight = true

	ctx, cancel := context.WithCancel(context.Background())
	m.cancelAnnotate = cancel
	h, err := m.uiModel.Annotate(ctx, name)
	if err != nil {
		m.logs = append(m.logs, "annotate error: "+err.Error())
		m.annotateInProgress = false
		return m, nil
	}
	ch := make(chan adapters.AnnotateEvent)
	m.annCh = ch
	go func() {
		for ev := range h.Events() {
			ch <- ev
		}
		close(ch)
	}()
	return m, readLoop(m.annCh)
}

// refreshItems reloads the cached list into the list widget.
func (m *TuiModel) refreshItems() {
	_ = m.uiModel.RefreshList(context.Background())
	items := make([]list.Item, 0, len(m.uiModel.ListCached()))
	for _, s := range m.uiModel.ListCached() {
		items = append(items, docItem{doc: s})
	}
	m.list.SetItems(items)
}

// restorePreview re-renders the preview of the selected list item into the
// viewport.
func (m *TuiModel) restorePreview() {
	if si := m.list.SelectedItem(); si != nil {
		if it, ok := si.(docItem); ok {
			if d, err := m.uiModel.GetDocument(context.Background(), it.doc.Name); err == nil {
				m.vp.SetContent(formatDocDetails(d, m.vp.Width))
			} else {
				m.vp.SetContent(formatDocDetails(it.doc, m.vp.Width))
			}
		}
	}
}

// layout resizes the list and viewport for the current window size.
func (m *TuiModel) layout() {
	headH := 1
	footerH := 1
	bodyH := m.height - headH - footerH - 2
	if bodyH < 3 {
		bodyH = 3
	}

	sideW := int(float64(m.width) * 0.35)
	if sideW > 36 {
		sideW = 36
	}
	if sideW < 20 {
		sideW = 20
	}
	innerSideW := sideW - 2
	if innerSideW < 10 {
		innerSideW = 10
	}

	rightW := m.width - sideW - 4
	if rightW < 12 {
		rightW = 12
	}
	innerRightW := rightW - 2
	if innerRightW < 10 {
		innerRightW = 10
	}

	innerBodyH := bodyH - 2
	if innerBodyH < 1 {
		innerBodyH = 1
	}

	m.list.SetSize(innerSideW, innerBodyH)
	m.ensureViewportSize(innerRightW, innerBodyH)

	if si := m.list.SelectedItem(); si != nil {
		if it, ok := si.(docItem); ok {
			m.vp.SetContent(formatDocDetails(it.doc, m.vp.Width))
		}
	}
}

func (m *TuiModel) View() string {
	if m.showDetail != "" {
		return m.viewDetail()
	}

	headH := 1
	footerH := 1
	bodyH := m.height - headH - footerH - 2
	if bodyH < 3 {
		bodyH = 3
	}

	// colors adjust for high-contrast theme
	var sideBorder, rightBorder, bottomBg, bottomFg string
	sideBorderStyle := lipgloss.NormalBorder()
	rightBorderStyle := lipgloss.NormalBorder()

	if m.themeHighContrast {
		bottomBg, bottomFg = "#000000", "#ffffff"
		if m.focusRight {
			sideBorder = "#444444"
			rightBorder = "#ffffff"
			rightBorderStyle = lipgloss.ThickBorder()
		} else {
			sideBorder = "#ffffff"
			sideBorderStyle = lipgloss.ThickBorder()
			rightBorder = "#444444"
		}
	} else {
		bottomBg, bottomFg = "#0b1226", "#cbd5e1"
		if m.focusRight {
			sideBorder = "#334155"
			rightBorder = "#c084fc"
			rightBorderStyle = lipgloss.ThickBorder()
		} else {
			sideBorder = "#7dd3fc"
			sideBorderStyle = lipgloss.ThickBorder()
			rightBorder = "#334155"
		}
	}

	titleBox := m.renderTitleBox(fmt.Sprintf(" nespan — Documents (%d) ", len(m.list.Items())))

	sidebarStyle := lipgloss.NewStyle().BorderStyle(sideBorderStyle).BorderForeground(lipgloss.Color(sideBorder)).Padding(0).Width(m.list.Width()).Height(bodyH)
	sidebar := sidebarStyle.Render(m.list.View())

	rightW := m.width - m.list.Width() - 4
	if rightW < 12 {
		rightW = 12
	}
	rightStyle := lipgloss.NewStyle().BorderStyle(rightBorderStyle).BorderForeground(lipgloss.Color(rightBorder)).Padding(1).Width(rightW).Height(bodyH)
	right := rightStyle.Render(m.vp.View())

	var body string
	if m.width < 80 {
		body = lipgloss.JoinVertical(lipgloss.Left, sidebar, right)
	} else {
		body = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, right)
	}

	status := fmt.Sprintf("Items: %d", len(m.list.Items()))
	if m.focusRight {
		status += " • FOCUS: PREVIEW"
	} else {
		status += " • FOCUS: DOCUMENT LIST"
	}
	if m.list.FilterState() == list.Filtering {
		status += " • FILTER MODE"
	}
	if m.annotateInProgress {
		status += " • ANNOTATING"
	}
	bottom := lipgloss.NewStyle().Background(lipgloss.Color(bottomBg)).Foreground(lipgloss.Color(bottomFg)).Padding(0, 1).Width(m.width).Render(" " + status + " ")

	footerText := "← / → / Tab switch focus • ↑ / ↓ scroll focused pane • Enter details • a annotate • v history • T theme • q quit • ? help"
	footer := lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("#94a3b8")).Render(footerText)

	return lipgloss.JoinVertical(lipgloss.Left, titleBox, body, footer, bottom)
}

// viewDetail renders the full-screen detail, versions, or help view.
func (m *TuiModel) viewDetail() string {
	var rightBorder, bottomBg, bottomFg string
	if m.themeHighContrast {
		rightBorder = "#ffffff"
		bottomBg, bottomFg = "#000000", "#ffffff"
	} else {
		rightBorder = "#c084fc"
		bottomBg, bottomFg = "#0b1226", "#cbd5e1"
	}

	footerH := 1
	bottomH := 1
	bodyH := m.height - footerH - bottomH - 2
	if bodyH < 3 {
		bodyH = 3
	}

	content := m.detail
	if m.showDetail == "versions" {
		content = m.versionsPreviewContent
	}
	if m.annotateInProgress || len(m.logs) > 0 {
		content = m.vp.View()
	}

	contentStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(rightBorder)).
		Padding(1).
		Width(m.width - 2).
		Height(bodyH)
	body := contentStyle.Render(content)

	status := fmt.Sprintf("Viewing: %s", m.detailName)
	if m.showDetail == "versions" {
		status = fmt.Sprintf("History: %s (%d versions)", m.detailName, len(m.versions))
	}
	if m.annotateInProgress {
		status += " • ANNOTATING"
	}
	bottom := lipgloss.NewStyle().
		Background(lipgloss.Color(bottomBg)).
		Foreground(lipgloss.Color(bottomFg)).
		Padding(0, 1).
		Width(m.width).
		Render(" " + status + " ")

	footerText := "(a) Annotate • (v) History • (T) Toggle Theme • (b) Back • (q) Quit"
	if m.showDetail == "versions" {
		footerText = "↑ / ↓ select version • (R) Rollback • (b) Back • (q) Quit"
	}
	footer := lipgloss.NewStyle().
		Italic(true).
		Foreground(lipgloss.Color("#94a3b8")).
		Render(footerText)
	return lipgloss.JoinVertical(lipgloss.Left, body, footer, bottom)
}

// docItem adapts adapters.DocumentSummary for the list component
type docItem struct{ doc adapters.DocumentSummary }

func (d docItem) Title() string       { return d.doc.Name }
func (d docItem) Description() string { return d.doc.Description }
func (d docItem) FilterValue() string { return d.doc.Name + " " + d.doc.Description }

// renderTitleBox produces a consistent title bar (with border) matching the
// main page. Use this to keep title styling identical across views.
func (m *TuiModel) renderTitleBox(text string) string {
	var titleFg, titleBg, titleBorder string
	if m.themeHighContrast {
		titleFg, titleBg = "#000000", "#ffff00"
		titleBorder = "#ffff00"
	} else {
		titleFg, titleBg = "#ffffff", "#0f766e"
		titleBorder = "#0ea5a4"
	}
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(titleFg)).Background(lipgloss.Color(titleBg)).Padding(0, 1)
	title := titleStyle.Render(text)
	titleInner := lipgloss.Place(m.width-2, 1, lipgloss.Center, lipgloss.Center, title)
	return lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color(titleBorder)).Width(m.width).Render(titleInner)
}
