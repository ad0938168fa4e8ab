package deck

import (
	"math/rand"
	"time"

	"github.com/verte-zerg/kanaflow/internal/catalog"
)

// Builder produces randomized decks.
type Builder struct {
	rnd   *rand.Rand
	vocab []catalog.Vocabulary
}

// New returns a Builder seeded with the current time.
func New(vocab []catalog.Vocabulary) *Builder {
	return NewWithSource(rand.NewSource(time.Now().UnixNano()), vocab)
}

// NewWithSource returns a Builder drawing from src, for reproducible decks.
func NewWithSource(src rand.Source, vocab []catalog.Vocabulary) *Builder {
	return &Builder{rnd: rand.New(src), vocab: vocab}
}

// Build draws a balanced deck of at most TargetSize entries from the selected
// rows of the mode's kana, topped up with eligible vocabulary. An empty
// selection means every row. No eligible kana yields an empty deck.
func (b *Builder) Build(mode catalog.Mode, sel catalog.Selection) Deck {
	pool := filterKana(catalog.KanaForMode(mode), sel)
	if len(pool) == 0 {
		return Deck{}
	}

	rows := selectedRows(sel, pool)
	eligible := catalog.FilterVocabulary(b.vocab, sel)

	vocabSlots := 0
	if len(eligible) >= MinVocabulary {
		vocabSlots = min(MaxVocabSlots, max(MinVocabSlots, len(eligible)/8))
	}
	kanaSlots := TargetSize - vocabSlots

	byRow := map[catalog.Row][]catalog.Kana{}
	for _, k := range pool {
		byRow[k.Row] = append(byRow[k.Row], k)
	}

	entries := make([]Entry, 0, TargetSize)
	for i, quota := range evenSplit(kanaSlots, len(rows)) {
		available := shuffle(b.rnd, byRow[rows[i]])
		for _, k := range available[:min(quota, len(available))] {
			entries = append(entries, Entry{Kind: EntryKana, Kana: k})
		}
	}

	if vocabSlots > 0 {
		words := shuffle(b.rnd, eligible)
		for _, w := range words[:min(vocabSlots, len(words))] {
			entries = append(entries, Entry{Kind: EntryVocabulary, Vocabulary: w})
		}
	}

	entries = shuffle(b.rnd, entries)

	d := Deck{
		Entries:    entries,
		romajiPool: uniqueKana(pool, func(k catalog.Kana) string { return k.Romaji }),
		charPool:   uniqueKana(pool, func(k catalog.Kana) string { return k.Char }),
	}
	vocabPool := d.romajiPool
	if len(eligible) > 0 {
		words := make([]string, 0, len(d.romajiPool)+len(eligible))
		words = append(words, d.romajiPool...)
		for _, w := range eligible {
			words = append(words, w.Romaji)
		}
		vocabPool = unique(words)
	}
	b.assignQuizzes(d.Entries, d.romajiPool, d.charPool, vocabPool)
	return d
}

// BuildReview turns a mistake list into a deck. Duplicated mistakes stay
// duplicated. Each entry gets an independent random kana quiz kind, with
// distractors drawn from both scripts.
func (b *Builder) BuildReview(mistakes []catalog.Kana) Deck {
	if len(mistakes) == 0 {
		return Deck{}
	}
	all := catalog.AllKana()
	d := Deck{
		romajiPool: uniqueKana(all, func(k catalog.Kana) string { return k.Romaji }),
		charPool:   uniqueKana(all, func(k catalog.Kana) string { return k.Char }),
	}
	for _, k := range shuffle(b.rnd, mistakes) {
		d.Entries = append(d.Entries, b.kanaEntry(k, d.romajiPool, d.charPool))
	}
	return d
}

// Reinsert returns a copy of d with a fresh entry for k inserted at index at,
// clamped to the deck bounds. The entry gets its own random kana quiz kind and
// a choice set from the deck's pools.
func (b *Builder) Reinsert(d Deck, at int, k catalog.Kana) Deck {
	at = max(0, min(at, len(d.Entries)))
	romaji, chars := d.romajiPool, d.charPool
	if len(romaji) == 0 || len(chars) == 0 {
		all := catalog.AllKana()
		romaji = uniqueKana(all, func(k catalog.Kana) string { return k.Romaji })
		chars = uniqueKana(all, func(k catalog.Kana) string { return k.Char })
	}
	entries := make([]Entry, 0, len(d.Entries)+1)
	entries = append(entries, d.Entries[:at]...)
	entries = append(entries, b.kanaEntry(k, romaji, chars))
	entries = append(entries, d.Entries[at:]...)
	return Deck{Entries: entries, romajiPool: romaji, charPool: chars}
}

func (b *Builder) kanaEntry(k catalog.Kana, romajiPool, charPool []string) Entry {
	e := Entry{Kind: EntryKana, Kana: k, Quiz: KanaQuizKinds[b.rnd.Intn(len(KanaQuizKinds))]}
	e.Choices = b.choicesFor(e, romajiPool, charPool, nil)
	return e
}

// assignQuizzes spreads the kana quiz kinds evenly over the kana entries in a
// random order; vocabulary always gets QuizVocabulary.
func (b *Builder) assignQuizzes(entries []Entry, romajiPool, charPool, vocabPool []string) {
	kanaCount := 0
	for _, e := range entries {
		if e.Kind == EntryKana {
			kanaCount++
		}
	}
	kinds := make([]QuizKind, 0, kanaCount)
	for i, n := range evenSplit(kanaCount, len(KanaQuizKinds)) {
		for j := 0; j < n; j++ {
			kinds = append(kinds, KanaQuizKinds[i])
		}
	}
	kinds = shuffle(b.rnd, kinds)

	next := 0
	for i := range entries {
		e := &entries[i]
		if e.Kind == EntryVocabulary {
			e.Quiz = QuizVocabulary
		} else {
			e.Quiz = kinds[next]
			next++
		}
		e.Choices = b.choicesFor(*e, romajiPool, charPool, vocabPool)
	}
}

func (b *Builder) choicesFor(e Entry, romajiPool, charPool, vocabPool []string) []string {
	switch e.Quiz {
	case QuizTypeRomaji:
		return nil
	case QuizChooseKana:
		return b.choices(e.Expected(), withoutRomaji(charPool, e.Kana.Romaji))
	case QuizVocabulary:
		return b.choices(e.Expected(), vocabPool)
	default:
		return b.choices(e.Expected(), romajiPool)
	}
}

// choices returns correct plus up to ChoiceCount-1 distinct distractors from
// pool, in random order.
func (b *Builder) choices(correct string, pool []string) []string {
	wrong := make([]string, 0, len(pool))
	for _, s := range unique(pool) {
		if s != correct {
			wrong = append(wrong, s)
		}
	}
	wrong = shuffle(b.rnd, wrong)
	if len(wrong) > ChoiceCount-1 {
		wrong = wrong[:ChoiceCount-1]
	}
	return shuffle(b.rnd, append([]string{correct}, wrong...))
}

// withoutRomaji drops every glyph of pool read as romaji.
func withoutRomaji(pool []string, romaji string) []string {
	out := make([]string, 0, len(pool))
	for _, s := range pool {
		if r, ok := catalog.RomajiFor(s); ok && r == romaji {
			continue
		}
		out = append(out, s)
	}
	return out
}

func filterKana(source []catalog.Kana, sel catalog.Selection) []catalog.Kana {
	if len(sel) == 0 {
		return source
	}
	out := make([]catalog.Kana, 0, len(source))
	for _, k := range source {
		if sel.Contains(k.Row) {
			out = append(out, k)
		}
	}
	return out
}

// selectedRows returns the rows to spread kana over, in selection order, or
// in pool order when nothing is selected.
func selectedRows(sel catalog.Selection, pool []catalog.Kana) []catalog.Row {
	var rows []catalog.Row
	seen := map[catalog.Row]bool{}
	add := func(r catalog.Row) {
		if !seen[r] {
			seen[r] = true
			rows = append(rows, r)
		}
	}
	if len(sel) > 0 {
		for _, r := range sel {
			add(r)
		}
		return rows
	}
	for _, k := range pool {
		add(k.Row)
	}
	return rows
}

func uniqueKana(kana []catalog.Kana, field func(catalog.Kana) string) []string {
	values := make([]string, len(kana))
	for i, k := range kana {
		values[i] = field(k)
	}
	return unique(values)
}
