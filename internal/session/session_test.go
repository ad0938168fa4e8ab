package session

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/kanaflow/internal/catalog"
	"github.com/verte-zerg/kanaflow/internal/deck"
)

type recordingPronouncer struct {
	said []string
}

func (p *recordingPronouncer) Pronounce(text string) {
	p.said = append(p.said, text)
}

func kanaByRomaji(t *testing.T, romaji string) catalog.Kana {
	t.Helper()
	for _, k := range catalog.Hiragana() {
		if k.Romaji == romaji {
			return k
		}
	}
	t.Fatalf("no hiragana with romaji %q", romaji)
	return catalog.Kana{}
}

func newTestSession(opts Options) *Session {
	if opts.Builder == nil {
		opts.Builder = deck.NewWithSource(rand.NewSource(7), catalog.BuiltinVocabulary())
	}
	return New(opts)
}

// withDeck puts s into the active phase over the given kana, all asked as
// type-romaji cards.
func withDeck(s *Session, kana ...catalog.Kana) {
	var d deck.Deck
	for _, k := range kana {
		d.Entries = append(d.Entries, deck.Entry{Kind: deck.EntryKana, Kana: k, Quiz: deck.QuizTypeRomaji})
	}
	s.begin(d, false)
}

func TestNewSessionIsIdle(t *testing.T) {
	s := newTestSession(Options{})
	assert.Equal(t, PhaseIdle, s.Phase())
	assert.Equal(t, catalog.ModeHiragana, s.Mode())
	assert.Equal(t, catalog.AllRows(), s.Rows())
	_, ok := s.Current()
	assert.False(t, ok)
}

func TestStartBuildsDeck(t *testing.T) {
	s := newTestSession(Options{})
	require.True(t, s.Start())

	assert.Equal(t, PhaseActive, s.Phase())
	idx, total := s.Progress()
	assert.Equal(t, 0, idx)
	assert.Equal(t, deck.TargetSize, total)
	assert.NotEmpty(t, s.Summary().ID)
}

func TestStartWithEmptySelectionUsesFullPool(t *testing.T) {
	s := newTestSession(Options{Builder: deck.NewWithSource(rand.NewSource(3), nil)})
	s.ClearRows()
	require.True(t, s.Start())

	_, total := s.Progress()
	assert.Equal(t, deck.TargetSize, total)
	rows := map[catalog.Row]bool{}
	for _, e := range s.Deck().Entries {
		require.Equal(t, catalog.ScriptHiragana, e.Kana.Script)
		rows[e.Kana.Row] = true
	}
	assert.Len(t, rows, len(catalog.Rows()))
}

func TestStartWithEmptyDeckStaysIdle(t *testing.T) {
	s := newTestSession(Options{Rows: catalog.Selection{"Q"}})
	assert.False(t, s.Start())
	assert.Equal(t, PhaseIdle, s.Phase())
}

func TestRecordAnswerMiss(t *testing.T) {
	s := newTestSession(Options{})
	shi := kanaByRomaji(t, "shi")
	withDeck(s, shi)

	s.RecordAnswer(false, "xx", "shi")

	require.Len(t, s.History(), 1)
	rec := s.History()[0]
	assert.Equal(t, "shi", rec.CorrectAnswer)
	assert.Equal(t, "xx", rec.UserAnswer)
	assert.False(t, rec.Correct)
	assert.Equal(t, shi.Char, rec.Display)
	correct, attempts := s.Score()
	assert.Equal(t, 0, correct)
	assert.Equal(t, 1, attempts)
	assert.Equal(t, []catalog.Kana{shi}, s.Mistakes())
}

func TestRecordAnswerDefaultsAndTrims(t *testing.T) {
	s := newTestSession(Options{})
	withDeck(s, kanaByRomaji(t, "ka"))
	s.SetInput("ka")

	s.RecordAnswer(true, "  ka ", "")

	rec := s.History()[0]
	assert.Equal(t, "ka", rec.CorrectAnswer)
	assert.Equal(t, "ka", rec.UserAnswer)
	assert.Empty(t, s.Input())
	assert.Empty(t, s.Mistakes())
	correct, attempts := s.Score()
	assert.Equal(t, 1, correct)
	assert.Equal(t, 1, attempts)
}

func TestRecordAnswerIgnoredOutsideActive(t *testing.T) {
	s := newTestSession(Options{})
	s.RecordAnswer(false, "x", "a")
	assert.Empty(t, s.History())
	_, attempts := s.Score()
	assert.Zero(t, attempts)
}

func TestAdvanceToReview(t *testing.T) {
	var finished []Summary
	s := newTestSession(Options{OnFinish: func(sum Summary) { finished = append(finished, sum) }})
	withDeck(s, kanaByRomaji(t, "a"), kanaByRomaji(t, "i"))

	s.RecordAnswer(true, "a", "")
	s.Advance()
	idx, _ := s.Progress()
	assert.Equal(t, 1, idx)
	assert.Equal(t, PhaseActive, s.Phase())

	s.RecordAnswer(false, "e", "")
	s.Advance()
	idx, _ = s.Progress()
	assert.Equal(t, 1, idx)
	assert.Equal(t, PhaseReview, s.Phase())
	require.Len(t, finished, 1)
	assert.Equal(t, 1, finished[0].Correct)
	assert.Equal(t, 2, finished[0].Attempts)

	s.Advance()
	assert.Equal(t, PhaseReview, s.Phase())
	assert.Len(t, finished, 1)
}

func TestAdvanceClearsReveal(t *testing.T) {
	s := newTestSession(Options{})
	withDeck(s, kanaByRomaji(t, "a"), kanaByRomaji(t, "i"))
	s.ToggleReveal()
	assert.True(t, s.Revealed())
	s.Advance()
	assert.False(t, s.Revealed())
}

func TestSubmit(t *testing.T) {
	s := newTestSession(Options{})
	withDeck(s, kanaByRomaji(t, "tsu"), kanaByRomaji(t, "chi"))

	_, ok := s.Submit("   ")
	assert.False(t, ok)
	assert.Empty(t, s.History())

	rec, ok := s.Submit(" TSU ")
	require.True(t, ok)
	assert.True(t, rec.Correct)
	idx, _ := s.Progress()
	assert.Equal(t, 1, idx)

	rec, ok = s.Submit("ti")
	require.True(t, ok)
	assert.False(t, rec.Correct)
	assert.Equal(t, PhaseReview, s.Phase())
	assert.Len(t, s.Mistakes(), 1)
}

func TestSubmitSmartFocusReinserts(t *testing.T) {
	s := newTestSession(Options{SmartFocus: true})
	a := kanaByRomaji(t, "a")
	withDeck(s, a, kanaByRomaji(t, "i"), kanaByRomaji(t, "u"))

	_, ok := s.Submit("wrong")
	require.True(t, ok)

	_, total := s.Progress()
	assert.Equal(t, 4, total)
	last, ok := s.Deck().At(3)
	require.True(t, ok)
	assert.Equal(t, a.ID, last.ID())
	assert.Len(t, last.Choices, deck.ChoiceCount)
}

func TestReinsertMistakeOffset(t *testing.T) {
	s := newTestSession(Options{})
	var kana []catalog.Kana
	for _, r := range []string{"a", "i", "u", "e", "o", "ka", "ki"} {
		kana = append(kana, kanaByRomaji(t, r))
	}
	withDeck(s, kana...)
	s.Advance()

	ku := kanaByRomaji(t, "ku")
	s.ReinsertMistake(ku)

	e, ok := s.Deck().At(1 + ReinsertOffset)
	require.True(t, ok)
	assert.Equal(t, ku.ID, e.ID())
	assert.Len(t, s.Deck().QuizKinds(), 8)
	assert.Len(t, s.Deck().ChoiceSets(), 8)
}

func TestMistakeReview(t *testing.T) {
	s := newTestSession(Options{})
	assert.False(t, s.StartMistakeReview())

	shi := kanaByRomaji(t, "shi")
	withDeck(s, shi, shi)
	s.Submit("si")
	s.Submit("xx")
	require.Equal(t, PhaseReview, s.Phase())
	require.Len(t, s.Mistakes(), 2)

	require.True(t, s.StartMistakeReview())
	assert.Equal(t, PhaseActive, s.Phase())
	assert.Empty(t, s.Mistakes())
	assert.Empty(t, s.History())
	assert.True(t, s.Summary().Review)
	_, total := s.Progress()
	assert.Equal(t, 2, total)
	for _, e := range s.Deck().Entries {
		assert.Equal(t, shi.ID, e.ID())
	}
}

func TestReset(t *testing.T) {
	s := newTestSession(Options{})
	require.True(t, s.Start())
	s.Submit("zzz")

	s.Reset()
	assert.Equal(t, PhaseIdle, s.Phase())
	assert.Empty(t, s.History())
	assert.Empty(t, s.Mistakes())
	assert.Zero(t, s.Deck().Len())
	correct, attempts := s.Score()
	assert.Zero(t, correct)
	assert.Zero(t, attempts)
}

func TestSetModeResetsRows(t *testing.T) {
	var changed []catalog.Mode
	s := newTestSession(Options{OnModeChange: func(m catalog.Mode) { changed = append(changed, m) }})
	s.ToggleRow(catalog.RowK)
	assert.False(t, s.Rows().Contains(catalog.RowK))

	s.SetMode(catalog.ModeKatakana)
	assert.Equal(t, catalog.ModeKatakana, s.Mode())
	assert.Equal(t, catalog.AllRows(), s.Rows())
	assert.Equal(t, []catalog.Mode{catalog.ModeKatakana}, changed)

	s.ClearRows()
	assert.Empty(t, s.Rows())
	s.SelectAllRows()
	assert.Equal(t, catalog.AllRows(), s.Rows())
}

func TestPronounce(t *testing.T) {
	p := &recordingPronouncer{}
	s := newTestSession(Options{Pronouncer: p})
	s.Pronounce()
	assert.Empty(t, p.said)

	a := kanaByRomaji(t, "a")
	withDeck(s, a)
	s.Pronounce()
	assert.Equal(t, []string{a.Char}, p.said)
}

func TestSessionArithmetic(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		s := newTestSession(Options{
			Builder:    deck.NewWithSource(rand.NewSource(seed), catalog.BuiltinVocabulary()),
			Mode:       catalog.ModeMixed,
			SmartFocus: seed%2 == 0,
		})
		require.True(t, s.Start())
		rnd := rand.New(rand.NewSource(seed))
		for s.Phase() == PhaseActive {
			e, _ := s.Current()
			answer := e.Expected()
			if rnd.Intn(3) == 0 {
				answer = "nope"
			}
			_, ok := s.Submit(answer)
			require.True(t, ok)

			correct, attempts := s.Score()
			idx, total := s.Progress()
			require.LessOrEqual(t, correct, attempts)
			require.Len(t, s.History(), attempts)
			hits := 0
			for _, rec := range s.History() {
				if rec.Correct {
					hits++
				}
			}
			require.Equal(t, hits, correct)
			require.LessOrEqual(t, len(s.Mistakes()), attempts-correct)
			require.Less(t, idx, total)
		}
		assert.Equal(t, PhaseReview, s.Phase())
		for _, rec := range s.History() {
			if rec.Correct {
				assert.NotEqual(t, "nope", strings.ToLower(rec.UserAnswer))
			}
		}
	}
}

func TestCheckAnswer(t *testing.T) {
	k := kanaByRomaji(t, "shi")
	typed := deck.Entry{Kind: deck.EntryKana, Kana: k, Quiz: deck.QuizTypeRomaji}
	assert.True(t, CheckAnswer(typed, "SHI"))
	assert.True(t, CheckAnswer(typed, " s hi "))
	assert.False(t, CheckAnswer(typed, "si"))

	glyph := deck.Entry{Kind: deck.EntryKana, Kana: k, Quiz: deck.QuizChooseKana}
	assert.True(t, CheckAnswer(glyph, k.Char))
	assert.False(t, CheckAnswer(glyph, "shi"))
}

func TestSummary(t *testing.T) {
	assert.Zero(t, Summary{}.Accuracy())
	assert.False(t, Summary{}.Perfect())
	assert.True(t, Summary{Correct: 3, Attempts: 3}.Perfect())
	assert.InDelta(t, 0.5, Summary{Correct: 1, Attempts: 2}.Accuracy(), 1e-9)
}
