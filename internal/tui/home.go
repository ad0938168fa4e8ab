package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/kanaflow/internal/catalog"
)

func (m *Model) updateHome(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rows := catalog.Rows()
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "left", "h", "shift+tab":
		m.rowCursor = (m.rowCursor + len(rows) - 1) % len(rows)
	case "right", "l", "tab":
		m.rowCursor = (m.rowCursor + 1) % len(rows)
	case " ", "x":
		m.sess.ToggleRow(rows[m.rowCursor])
	case "a":
		m.sess.SelectAllRows()
	case "c":
		m.sess.ClearRows()
	case "m":
		m.sess.SetMode(nextMode(m.sess.Mode()))
	case "enter":
		return m, m.start(false)
	}
	return m, nil
}

func nextMode(current catalog.Mode) catalog.Mode {
	modes := catalog.Modes()
	for i, mode := range modes {
		if mode == current {
			return modes[(i+1)%len(modes)]
		}
	}
	return modes[0]
}

func (m *Model) viewHome() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("kanaflow"))
	b.WriteString("\n\n")

	modeChips := make([]styledChip, 0, len(catalog.Modes()))
	for _, mode := range catalog.Modes() {
		style := pendingStyle
		if mode == m.sess.Mode() {
			style = accentStyle.Bold(true)
		}
		modeChips = append(modeChips, newChip(string(mode), style))
	}
	b.WriteString("Mode  ")
	b.WriteString(renderChips(modeChips))
	b.WriteString("\n\n")

	selected := m.sess.Rows()
	rowChips := make([]styledChip, 0, len(catalog.Rows()))
	for i, row := range catalog.Rows() {
		label := "○ " + string(row)
		style := pendingStyle
		if selected.Contains(row) {
			label = "● " + string(row)
			style = correctStyle
		}
		if i == m.rowCursor {
			style = style.Underline(true)
		}
		rowChips = append(rowChips, newChip(label, style))
	}
	b.WriteString(wrapChips(rowChips, m.contentWidth()))
	b.WriteString("\n")
	if len(selected) == 0 {
		b.WriteString(footerStyle.Render("no rows selected: every row is drilled"))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	if m.notice != "" {
		b.WriteString(incorrectStyle.Render(m.notice))
		b.WriteString("\n\n")
	}
	b.WriteString(footerStyle.Render("←/→ move · space toggle · a all · c clear · m mode · enter start · q quit"))
	return b.String()
}

func (m *Model) contentWidth() int {
	if m.width == 0 {
		return 0
	}
	return max(1, int(float64(m.width)*0.70))
}
