package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/verte-zerg/kanaflow/internal/stats"
)

func (m *Model) openReview() {
	m.report = stats.BuildReport(m.sess.Summary(), m.sess.History())
	rows := stats.HistoryRows(m.report.History)
	tableRows := make([]table.Row, len(rows))
	for i, r := range rows {
		tableRows[i] = table.Row(r)
	}
	m.table.SetRows(tableRows)
	m.table.GotoTop()
	m.table.Focus()
	m.resizeTable()
	m.log.WithFields(logrus.Fields{
		"session": m.report.Summary.ID,
		"missed":  len(m.report.Missed),
	}).Debug("review opened")
}

func (m *Model) updateReview(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "r":
		return m, m.start(false)
	case "m":
		return m, m.start(true)
	case "esc", "backspace":
		m.sess.Reset()
		m.last = nil
		m.notice = ""
		return m, nil
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *Model) viewReview() string {
	sum := m.report.Summary
	var b strings.Builder
	title := "Deck complete"
	if sum.Review {
		title = "Mistake review complete"
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")
	score := fmt.Sprintf("%d/%d correct · %.0f%%", sum.Correct, sum.Attempts, sum.Accuracy()*100)
	if sum.Perfect() {
		b.WriteString(correctStyle.Render(score + " · perfect"))
	} else {
		b.WriteString(accentStyle.Render(score))
	}
	b.WriteString("\n")
	if m.report.Curve != "" {
		b.WriteString(pendingStyle.Render("Curve [" + m.report.Curve + "]"))
		b.WriteString("\n")
	}
	if len(m.report.Missed) > 0 {
		parts := make([]string, 0, len(m.report.Missed))
		for _, miss := range m.report.Missed {
			parts = append(parts, fmt.Sprintf("%s %s ×%d", miss.Display, miss.Romaji, miss.Count))
		}
		b.WriteString(incorrectStyle.Render("Missed: " + strings.Join(parts, "  ")))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.table.View())
	b.WriteString("\n\n")
	if m.notice != "" {
		b.WriteString(incorrectStyle.Render(m.notice))
		b.WriteString("\n")
	}
	help := "r new deck · esc home · q quit"
	if n := len(m.sess.Mistakes()); n > 0 {
		help = fmt.Sprintf("r new deck · m review %d mistakes · esc home · q quit", n)
	}
	b.WriteString(footerStyle.Render(help))
	return b.String()
}

func buildHistoryTable(rows []table.Row, width, height int) table.Model {
	columns := []table.Column{
		{Title: "#", Width: 3},
		{Title: "Card", Width: 10},
		{Title: "Romaji", Width: 10},
		{Title: "Your answer", Width: 12},
		{Title: "Result", Width: 16},
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(max(1, height-1)),
	)
	if width > 0 {
		t.SetWidth(width)
	}
	t.SetStyles(historyTableStyles())
	return t
}

func historyTableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}

func (m *Model) resizeTable() {
	if m.height == 0 {
		return
	}
	m.table.SetHeight(max(3, m.height-14))
	m.table.SetWidth(min(max(m.width-4, 20), 60))
}
