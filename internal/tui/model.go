// Package tui provides the Bubble Tea drill interface.
package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/verte-zerg/kanaflow/internal/deck"
	"github.com/verte-zerg/kanaflow/internal/logging"
	"github.com/verte-zerg/kanaflow/internal/prefs"
	"github.com/verte-zerg/kanaflow/internal/session"
	"github.com/verte-zerg/kanaflow/internal/stats"
)

var (
	correctStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#73D13D"))
	incorrectStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	pendingStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	accentStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	titleStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	footerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	glyphStyle     = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(1, 4).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	choiceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#B0B0B0")).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
)

// Options configures a Model.
type Options struct {
	Session *session.Session
	Prefs   *prefs.Service // optional; footer totals
	Logger  logrus.FieldLogger
	Audio   bool // pronounce listening cards automatically
}

// Model implements the Bubble Tea drill UI. It owns no drill state of its
// own; every change goes through the session.
type Model struct {
	sess  *session.Session
	prefs *prefs.Service
	log   logrus.FieldLogger
	audio bool

	width  int
	height int

	rowCursor int
	notice    string

	input    textinput.Model
	last     *session.AnswerRecord
	lastCard deck.Entry

	report stats.Report
	table  table.Model
}

// NewModel constructs a drill TUI model.
func NewModel(opts Options) *Model {
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	input := textinput.New()
	input.Prompt = "romaji › "
	input.Placeholder = "type the reading"
	input.CharLimit = 32
	return &Model{
		sess:  opts.Session,
		prefs: opts.Prefs,
		log:   opts.Logger,
		audio: opts.Audio,
		input: input,
		table: buildHistoryTable(nil, 0, 1),
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeTable()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		switch m.sess.Phase() {
		case session.PhaseActive:
			return m.updateCard(msg)
		case session.PhaseReview:
			return m.updateReview(msg)
		default:
			return m.updateHome(msg)
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	var body string
	switch m.sess.Phase() {
	case session.PhaseActive:
		body = m.viewCard()
	case session.PhaseReview:
		body = m.viewReview()
	default:
		body = m.viewHome()
	}
	footer := m.renderFooter()
	if m.width == 0 || m.height == 0 {
		return body + "\n\n" + footer
	}
	if m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
	}
	content := lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, body)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return content + "\n" + footerLine
}

// start begins a deck and prepares the first card.
func (m *Model) start(review bool) tea.Cmd {
	var ok bool
	if review {
		ok = m.sess.StartMistakeReview()
	} else {
		ok = m.sess.Start()
	}
	if !ok {
		if review {
			m.notice = "No mistakes to review."
		} else {
			m.notice = "No kana match the selected rows."
		}
		return nil
	}
	m.notice = ""
	m.last = nil
	return m.enterCard()
}

// enterCard resets the answer input for the current card, speaking it when
// the card is a listening card.
func (m *Model) enterCard() tea.Cmd {
	m.input.Reset()
	e, ok := m.sess.Current()
	if !ok {
		m.input.Blur()
		return nil
	}
	if m.audio && e.Quiz == deck.QuizListening {
		m.sess.Pronounce()
	}
	if e.Quiz.MultipleChoice() {
		m.input.Blur()
		return nil
	}
	return m.input.Focus()
}

func (m *Model) submit(answer string) tea.Cmd {
	card, _ := m.sess.Current()
	rec, ok := m.sess.Submit(answer)
	if !ok {
		return nil
	}
	m.last = &rec
	m.lastCard = card
	if m.sess.Phase() == session.PhaseReview {
		m.input.Blur()
		m.openReview()
		return nil
	}
	return m.enterCard()
}

func (m *Model) renderFooter() string {
	var segments []string
	switch m.sess.Phase() {
	case session.PhaseActive:
		idx, total := m.sess.Progress()
		correct, attempts := m.sess.Score()
		segments = append(segments, progressLabel(idx, total), scoreLabel(correct, attempts))
	default:
		segments = append(segments, "Mode "+string(m.sess.Mode()))
	}
	if m.prefs != nil {
		p := m.prefs.Preferences()
		segments = append(segments,
			"Best "+itoa(p.BestStreak),
			"Perfect "+itoa(p.TotalMastered))
	}
	return footerStyle.Render(strings.Join(segments, "  "))
}
