// Package session runs a drill session over a deck.
package session

import (
	"strings"

	"github.com/verte-zerg/kanaflow/internal/deck"
)

// Phase is the lifecycle stage of a session.
type Phase int

const (
	PhaseIdle   Phase = iota // No deck; choosing mode and rows
	PhaseActive              // Serving cards
	PhaseReview              // Deck finished; showing the report
)

func (p Phase) String() string {
	switch p {
	case PhaseActive:
		return "active"
	case PhaseReview:
		return "review"
	default:
		return "idle"
	}
}

// ReinsertOffset is how many cards ahead a missed kana comes back.
const ReinsertOffset = 4

// AnswerRecord is one submitted answer. Records are never modified.
type AnswerRecord struct {
	Display       string
	DisplayRomaji string
	CorrectAnswer string
	UserAnswer    string
	Correct       bool
}

// Pronouncer plays text aloud. Calls must not block; failures are the
// implementation's concern.
type Pronouncer interface {
	Pronounce(text string)
}

// Summary describes a finished (or running) session.
type Summary struct {
	ID       string
	Correct  int
	Attempts int
	Review   bool // built from a mistake list
}

// Accuracy returns the share of correct answers, 0 without attempts.
func (s Summary) Accuracy() float64 {
	if s.Attempts == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Attempts)
}

// Perfect reports a session with at least one attempt and no misses.
func (s Summary) Perfect() bool {
	return s.Attempts > 0 && s.Correct == s.Attempts
}

// CheckAnswer reports whether input answers the entry. Kana answers must match
// exactly; romaji is compared case-insensitively with whitespace removed.
func CheckAnswer(e deck.Entry, input string) bool {
	if e.Quiz == deck.QuizChooseKana {
		return strings.TrimSpace(input) == e.Expected()
	}
	return NormalizeRomaji(input) == NormalizeRomaji(e.Expected())
}

// NormalizeRomaji lower-cases s and strips all whitespace.
func NormalizeRomaji(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), ""))
}
