package tui

import (
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/kanaflow/internal/deck"
)

var quizPrompts = map[deck.QuizKind]string{
	deck.QuizTypeRomaji:   "Type the romaji",
	deck.QuizChooseRomaji: "Pick the romaji",
	deck.QuizChooseKana:   "Pick the kana",
	deck.QuizListening:    "Listen and pick the romaji",
	deck.QuizVocabulary:   "Pick the reading",
}

func (m *Model) updateCard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	e, ok := m.sess.Current()
	if !ok {
		return m, nil
	}
	switch msg.String() {
	case "esc":
		m.sess.Reset()
		m.last = nil
		m.input.Blur()
		return m, nil
	case "tab":
		m.sess.ToggleReveal()
		return m, nil
	case "ctrl+p":
		m.sess.Pronounce()
		return m, nil
	}

	if e.Quiz.MultipleChoice() {
		key := msg.String()
		if key == "p" || key == " " {
			m.sess.Pronounce()
			return m, nil
		}
		if n, err := strconv.Atoi(key); err == nil && n >= 1 && n <= len(e.Choices) {
			return m, m.submit(e.Choices[n-1])
		}
		return m, nil
	}

	if msg.Type == tea.KeyEnter {
		return m, m.submit(m.input.Value())
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.sess.SetInput(m.input.Value())
	return m, cmd
}

func (m *Model) viewCard() string {
	e, ok := m.sess.Current()
	if !ok {
		return ""
	}
	var b strings.Builder
	if fb := m.renderFeedback(); fb != "" {
		b.WriteString(fb)
		b.WriteString("\n\n")
	}
	b.WriteString(accentStyle.Render(quizPrompts[e.Quiz]))
	b.WriteString("\n\n")
	b.WriteString(glyphStyle.Render(cardFace(e, m.sess.Revealed())))
	b.WriteString("\n")
	if m.sess.Revealed() {
		b.WriteString(pendingStyle.Render(revealText(e)))
	}
	b.WriteString("\n\n")

	if e.Quiz.MultipleChoice() {
		b.WriteString(renderChoices(e.Choices))
		b.WriteString("\n\n")
		b.WriteString(footerStyle.Render("1-" + strconv.Itoa(len(e.Choices)) + " answer · p speak · tab flip · esc quit deck"))
	} else {
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
		b.WriteString(footerStyle.Render("enter answer · ctrl+p speak · tab flip · esc quit deck"))
	}
	return b.String()
}

// cardFace returns what the card shows before it is answered.
func cardFace(e deck.Entry, revealed bool) string {
	switch e.Quiz {
	case deck.QuizChooseKana:
		return e.Romaji()
	case deck.QuizListening:
		if revealed {
			return e.Display()
		}
		return "♪"
	default:
		return e.Display()
	}
}

func revealText(e deck.Entry) string {
	text := e.Display() + " · " + e.Romaji()
	if e.Kind == deck.EntryVocabulary && e.Vocabulary.Meaning != "" {
		text += " · " + e.Vocabulary.Meaning
	}
	return text
}

func renderChoices(choices []string) string {
	boxes := make([]string, 0, len(choices))
	for i, c := range choices {
		boxes = append(boxes, choiceStyle.Render(strconv.Itoa(i+1)+"  "+c))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, boxes...)
}

func (m *Model) renderFeedback() string {
	if m.last == nil {
		return ""
	}
	if m.last.Correct {
		return correctStyle.Render("✓ " + m.last.Display + " · " + m.last.DisplayRomaji)
	}
	text := "✗ " + m.last.Display + " is " + m.last.CorrectAnswer
	if m.last.UserAnswer != "" {
		text += ", not " + m.last.UserAnswer
	}
	return incorrectStyle.Render(text)
}

func progressLabel(index, total int) string {
	return "Card " + strconv.Itoa(min(index+1, total)) + "/" + strconv.Itoa(total)
}

func scoreLabel(correct, attempts int) string {
	return "Score " + strconv.Itoa(correct) + "/" + strconv.Itoa(attempts)
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
