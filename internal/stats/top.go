package stats

import (
	"sort"

	"github.com/verte-zerg/kanaflow/internal/session"
)

// Miss counts how often one card was answered wrong.
type Miss struct {
	Display string
	Romaji  string
	Count   int
}

// TopMissed returns the n most missed cards, most missed first.
func TopMissed(history []session.AnswerRecord, n int) []Miss {
	if n <= 0 || len(history) == 0 {
		return nil
	}
	counts := map[string]*Miss{}
	for _, rec := range history {
		if rec.Correct {
			continue
		}
		m, ok := counts[rec.Display]
		if !ok {
			m = &Miss{Display: rec.Display, Romaji: rec.DisplayRomaji}
			counts[rec.Display] = m
		}
		m.Count++
	}
	items := make([]Miss, 0, len(counts))
	for _, m := range counts {
		items = append(items, *m)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Count == items[j].Count {
			return items[i].Romaji < items[j].Romaji
		}
		return items[i].Count > items[j].Count
	})
	if n > len(items) {
		n = len(items)
	}
	return items[:n]
}
