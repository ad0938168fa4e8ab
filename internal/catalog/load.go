package catalog

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

type vocabularyFile struct {
	Words []vocabularyEntry `toml:"word"`
}

type vocabularyEntry struct {
	ID      string   `toml:"id"`
	Word    string   `toml:"word"`
	Romaji  string   `toml:"romaji"`
	Meaning string   `toml:"meaning"`
	Rows    []string `toml:"rows"`
}

// LoadVocabulary reads extra words from a TOML file with [[word]] tables.
// A missing file yields no words and no error.
func LoadVocabulary(path string) ([]Vocabulary, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to stat vocabulary file: %w", err)
	}
	var file vocabularyFile
	if _, err := toml.DecodeFile(path, &file); err != nil {
		return nil, fmt.Errorf("failed to decode vocabulary file: %w", err)
	}
	out := make([]Vocabulary, 0, len(file.Words))
	for i, entry := range file.Words {
		item, err := entry.toVocabulary()
		if err != nil {
			return nil, fmt.Errorf("word %d: %w", i+1, err)
		}
		out = append(out, item)
	}
	return out, nil
}

func (e vocabularyEntry) toVocabulary() (Vocabulary, error) {
	word := strings.TrimSpace(e.Word)
	romaji := strings.ToLower(strings.TrimSpace(e.Romaji))
	if word == "" || romaji == "" {
		return Vocabulary{}, fmt.Errorf("word and romaji are required")
	}
	if len(e.Rows) == 0 {
		return Vocabulary{}, fmt.Errorf("%s: at least one row is required", word)
	}
	item := Vocabulary{
		ID:      strings.TrimSpace(e.ID),
		Word:    word,
		Romaji:  romaji,
		Meaning: strings.TrimSpace(e.Meaning),
	}
	if item.ID == "" {
		item.ID = "user-" + romaji
	}
	for _, name := range e.Rows {
		r, err := ParseRow(name)
		if err != nil {
			return Vocabulary{}, fmt.Errorf("%s: %w", word, err)
		}
		item.Rows = append(item.Rows, r)
	}
	return item, nil
}

// MergeVocabulary appends extra words to base, skipping ids already present.
func MergeVocabulary(base, extra []Vocabulary) []Vocabulary {
	seen := make(map[string]struct{}, len(base)+len(extra))
	out := make([]Vocabulary, 0, len(base)+len(extra))
	for _, group := range [][]Vocabulary{base, extra} {
		for _, w := range group {
			if _, ok := seen[w.ID]; ok {
				continue
			}
			seen[w.ID] = struct{}{}
			out = append(out, w)
		}
	}
	return out
}
