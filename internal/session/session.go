package session

import (
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/verte-zerg/kanaflow/internal/catalog"
	"github.com/verte-zerg/kanaflow/internal/deck"
	"github.com/verte-zerg/kanaflow/internal/logging"
)

// Options configures a Session.
type Options struct {
	Builder    *deck.Builder
	Pronouncer Pronouncer
	Logger     logrus.FieldLogger

	Mode       catalog.Mode
	Rows       catalog.Selection
	SmartFocus bool // reinsert missed kana ReinsertOffset cards ahead on Submit

	// OnFinish runs once each time a deck is finished.
	OnFinish func(Summary)
	// OnModeChange runs on every explicit mode change.
	OnModeChange func(catalog.Mode)
}

// Session is the single-writer state of one learner's drill. Every method is
// a transition; calls that make no sense in the current state do nothing.
type Session struct {
	opts Options
	log  logrus.FieldLogger

	mode catalog.Mode
	rows catalog.Selection

	id       string
	review   bool
	deck     deck.Deck
	index    int
	correct  int
	attempts int
	mistakes []catalog.Kana
	history  []AnswerRecord
	phase    Phase
	revealed bool
	input    string
}

// New returns an idle session.
func New(opts Options) *Session {
	if opts.Builder == nil {
		opts.Builder = deck.New(catalog.BuiltinVocabulary())
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	if opts.Mode == "" {
		opts.Mode = catalog.ModeHiragana
	}
	rows := opts.Rows
	if rows == nil {
		rows = catalog.AllRows()
	}
	return &Session{
		opts: opts,
		log:  opts.Logger,
		mode: opts.Mode,
		rows: append(catalog.Selection(nil), rows...),
	}
}

// Start builds a fresh deck for the current mode and rows. It returns false
// and changes nothing when the deck comes out empty.
func (s *Session) Start() bool {
	d := s.opts.Builder.Build(s.mode, s.rows)
	if d.Len() == 0 {
		s.log.WithFields(logrus.Fields{"mode": s.mode, "rows": s.rows.String()}).Debug("empty deck, session not started")
		return false
	}
	s.begin(d, false)
	return true
}

// StartMistakeReview builds a deck from the mistakes collected so far. It
// returns false when there are none.
func (s *Session) StartMistakeReview() bool {
	if len(s.mistakes) == 0 {
		return false
	}
	s.begin(s.opts.Builder.BuildReview(s.mistakes), true)
	return true
}

func (s *Session) begin(d deck.Deck, review bool) {
	s.id = uuid.NewString()
	s.review = review
	s.deck = d
	s.index = 0
	s.correct = 0
	s.attempts = 0
	s.mistakes = nil
	s.history = nil
	s.revealed = false
	s.input = ""
	s.phase = PhaseActive
	s.log.WithFields(logrus.Fields{
		"session": s.id,
		"mode":    s.mode,
		"cards":   d.Len(),
		"review":  review,
	}).Info("session started")
}

// RecordAnswer logs an answer to the current card. An empty correctAnswer
// means the card's romaji. Missed kana join the mistake list, duplicates
// included.
func (s *Session) RecordAnswer(correct bool, userAnswer, correctAnswer string) {
	e, ok := s.Current()
	if !ok {
		return
	}
	if correctAnswer == "" {
		correctAnswer = e.Romaji()
	}
	s.history = append(s.history, AnswerRecord{
		Display:       e.Display(),
		DisplayRomaji: e.Romaji(),
		CorrectAnswer: correctAnswer,
		UserAnswer:    strings.TrimSpace(userAnswer),
		Correct:       correct,
	})
	s.attempts++
	if correct {
		s.correct++
	} else if e.Kind == deck.EntryKana {
		s.mistakes = append(s.mistakes, e.Kana)
	}
	s.input = ""
}

// Advance moves to the next card, or to the review phase after the last one.
func (s *Session) Advance() {
	if s.phase != PhaseActive {
		return
	}
	s.revealed = false
	if s.index >= s.deck.Len()-1 {
		s.phase = PhaseReview
		sum := s.Summary()
		s.log.WithFields(logrus.Fields{
			"session":  sum.ID,
			"correct":  sum.Correct,
			"attempts": sum.Attempts,
		}).Info("session finished")
		if s.opts.OnFinish != nil {
			s.opts.OnFinish(sum)
		}
		return
	}
	s.index++
}

// ReinsertMistake schedules k again ReinsertOffset cards after the current
// one, or at the end of a shorter deck.
func (s *Session) ReinsertMistake(k catalog.Kana) {
	if s.phase != PhaseActive {
		return
	}
	s.deck = s.opts.Builder.Reinsert(s.deck, s.index+ReinsertOffset, k)
}

// Submit checks input against the current card, records it and advances.
// Blank input is ignored and reported with ok false.
func (s *Session) Submit(input string) (rec AnswerRecord, ok bool) {
	e, ok := s.Current()
	if !ok || strings.TrimSpace(input) == "" {
		return AnswerRecord{}, false
	}
	correct := CheckAnswer(e, input)
	s.RecordAnswer(correct, input, e.Expected())
	rec = s.history[len(s.history)-1]
	if !correct && s.opts.SmartFocus && e.Kind == deck.EntryKana {
		s.ReinsertMistake(e.Kana)
	}
	s.Advance()
	return rec, true
}

// Reset drops the deck and all progress and returns to idle.
func (s *Session) Reset() {
	if s.phase == PhaseActive {
		s.log.WithField("session", s.id).Info("session abandoned")
	}
	s.id = ""
	s.review = false
	s.deck = deck.Deck{}
	s.index = 0
	s.correct = 0
	s.attempts = 0
	s.mistakes = nil
	s.history = nil
	s.revealed = false
	s.input = ""
	s.phase = PhaseIdle
}

// Pronounce asks the pronouncer to say the current card's glyph.
func (s *Session) Pronounce() {
	e, ok := s.Current()
	if !ok || s.opts.Pronouncer == nil {
		return
	}
	s.opts.Pronouncer.Pronounce(e.Display())
}

// SetMode switches practice mode and resets the row selection to every row.
func (s *Session) SetMode(mode catalog.Mode) {
	s.mode = mode
	s.rows = catalog.AllRows()
	if s.opts.OnModeChange != nil {
		s.opts.OnModeChange(mode)
	}
}

// ToggleRow adds or removes a row from the selection.
func (s *Session) ToggleRow(r catalog.Row) {
	s.rows = s.rows.Toggle(r)
}

// SelectAllRows selects every row.
func (s *Session) SelectAllRows() {
	s.rows = catalog.AllRows()
}

// ClearRows empties the selection, which Start treats as every row.
func (s *Session) ClearRows() {
	s.rows = nil
}

// SetInput stores the learner's in-progress typed answer.
func (s *Session) SetInput(v string) {
	s.input = v
}

// ToggleReveal flips the card.
func (s *Session) ToggleReveal() {
	if s.phase == PhaseActive {
		s.revealed = !s.revealed
	}
}

// Current returns the card being asked, if any.
func (s *Session) Current() (deck.Entry, bool) {
	if s.phase != PhaseActive {
		return deck.Entry{}, false
	}
	return s.deck.At(s.index)
}

// Phase returns the lifecycle stage.
func (s *Session) Phase() Phase { return s.phase }

// Mode returns the practice mode.
func (s *Session) Mode() catalog.Mode { return s.mode }

// Rows returns a copy of the row selection.
func (s *Session) Rows() catalog.Selection {
	return append(catalog.Selection(nil), s.rows...)
}

// Progress returns the current index and the deck length.
func (s *Session) Progress() (index, total int) { return s.index, s.deck.Len() }

// Score returns correct answers and attempts.
func (s *Session) Score() (correct, attempts int) { return s.correct, s.attempts }

// Deck returns the current deck.
func (s *Session) Deck() deck.Deck { return s.deck }

// Revealed reports whether the card is flipped.
func (s *Session) Revealed() bool { return s.revealed }

// Input returns the typed answer buffer.
func (s *Session) Input() string { return s.input }

// History returns a copy of the answer log.
func (s *Session) History() []AnswerRecord {
	return append([]AnswerRecord(nil), s.history...)
}

// Mistakes returns a copy of the missed kana.
func (s *Session) Mistakes() []catalog.Kana {
	return append([]catalog.Kana(nil), s.mistakes...)
}

// Summary returns the running totals.
func (s *Session) Summary() Summary {
	return Summary{ID: s.id, Correct: s.correct, Attempts: s.attempts, Review: s.review}
}
