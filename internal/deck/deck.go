// Package deck builds drill decks from the kana catalog.
package deck

import "github.com/verte-zerg/kanaflow/internal/catalog"

// Deck sizing.
const (
	TargetSize    = 20
	ChoiceCount   = 4
	MinVocabulary = 4
	MinVocabSlots = 5
	MaxVocabSlots = 7
)

// QuizKind is the interaction used to quiz one entry.
type QuizKind string

// Quiz kinds. The first four apply to kana, the last to vocabulary.
const (
	QuizTypeRomaji   QuizKind = "type-romaji"
	QuizChooseRomaji QuizKind = "choose-romaji"
	QuizChooseKana   QuizKind = "choose-kana"
	QuizListening    QuizKind = "listening"
	QuizVocabulary   QuizKind = "vocabulary"
)

// KanaQuizKinds lists the kana quiz kinds in declaration order.
var KanaQuizKinds = []QuizKind{QuizTypeRomaji, QuizChooseRomaji, QuizChooseKana, QuizListening}

// MultipleChoice reports whether the kind is answered from a choice set.
func (q QuizKind) MultipleChoice() bool {
	return q != QuizTypeRomaji
}

// EntryKind tags what an Entry holds.
type EntryKind int

// Entry kinds.
const (
	EntryKana EntryKind = iota
	EntryVocabulary
)

// Entry is one card of a deck. It owns its quiz kind and choice set so the
// three can never drift apart when the deck is edited.
type Entry struct {
	Kind       EntryKind
	Kana       catalog.Kana
	Vocabulary catalog.Vocabulary
	Quiz       QuizKind
	Choices    []string
}

// ID returns the catalog id of the underlying item.
func (e Entry) ID() string {
	if e.Kind == EntryVocabulary {
		return e.Vocabulary.ID
	}
	return e.Kana.ID
}

// Display returns the glyph shown on the card.
func (e Entry) Display() string {
	if e.Kind == EntryVocabulary {
		return e.Vocabulary.Word
	}
	return e.Kana.Char
}

// Romaji returns the transliteration of the entry.
func (e Entry) Romaji() string {
	if e.Kind == EntryVocabulary {
		return e.Vocabulary.Romaji
	}
	return e.Kana.Romaji
}

// Expected returns the answer the entry's quiz kind asks for.
func (e Entry) Expected() string {
	if e.Quiz == QuizChooseKana {
		return e.Display()
	}
	return e.Romaji()
}

// Deck is an ordered list of entries plus the distractor pools it was built
// from, kept so entries inserted later get choices from the same pools.
type Deck struct {
	Entries []Entry

	romajiPool []string
	charPool   []string
}

// Len returns the number of entries.
func (d Deck) Len() int {
	return len(d.Entries)
}

// At returns the entry at i.
func (d Deck) At(i int) (Entry, bool) {
	if i < 0 || i >= len(d.Entries) {
		return Entry{}, false
	}
	return d.Entries[i], true
}

// QuizKinds returns the quiz kind of every entry, parallel to Entries.
func (d Deck) QuizKinds() []QuizKind {
	out := make([]QuizKind, len(d.Entries))
	for i, e := range d.Entries {
		out[i] = e.Quiz
	}
	return out
}

// ChoiceSets returns the choice set of every entry, parallel to Entries.
func (d Deck) ChoiceSets() [][]string {
	out := make([][]string, len(d.Entries))
	for i, e := range d.Entries {
		out[i] = e.Choices
	}
	return out
}
