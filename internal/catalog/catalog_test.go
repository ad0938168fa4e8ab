package catalog

import (
	"os"
	"path/filepath"
	"testing"
)

func TestKanaCounts(t *testing.T) {
	if got := len(Hiragana()); got != 46 {
		t.Fatalf("expected 46 hiragana, got %d", got)
	}
	if got := len(Katakana()); got != 46 {
		t.Fatalf("expected 46 katakana, got %d", got)
	}
	if got := len(KanaForMode(ModeMixed)); got != 92 {
		t.Fatalf("expected 92 kana in mixed mode, got %d", got)
	}
	seen := map[string]bool{}
	for _, k := range AllKana() {
		if seen[k.ID] {
			t.Fatalf("duplicate kana id %q", k.ID)
		}
		seen[k.ID] = true
	}
	if !seen["h-n-final"] || !seen["k-shi"] {
		t.Fatalf("expected ids h-n-final and k-shi")
	}
}

func TestRowsPartitionEachScript(t *testing.T) {
	for _, script := range [][]Kana{Hiragana(), Katakana()} {
		byRow := map[Row]int{}
		for _, k := range script {
			byRow[k.Row]++
		}
		if len(byRow) != len(Rows()) {
			t.Fatalf("expected %d rows, got %d", len(Rows()), len(byRow))
		}
		if byRow[RowVowels] != 5 || byRow[RowY] != 3 || byRow[RowW] != 2 || byRow[RowNFinal] != 1 {
			t.Fatalf("unexpected row sizes: %v", byRow)
		}
	}
}

func TestFilterVocabularySubset(t *testing.T) {
	sel := Selection{RowVowels}
	words := FilterVocabulary(BuiltinVocabulary(), sel)
	if len(words) != 5 {
		t.Fatalf("expected 5 vowel-only words, got %d", len(words))
	}
	sel = Selection{RowK, RowVowels}
	for _, w := range FilterVocabulary(BuiltinVocabulary(), sel) {
		if !sel.Covers(w.Rows) {
			t.Fatalf("word %s uses rows %v outside %v", w.ID, w.Rows, sel)
		}
	}
	if got := len(FilterVocabulary(BuiltinVocabulary(), nil)); got != len(BuiltinVocabulary()) {
		t.Fatalf("empty selection should keep all words, got %d", got)
	}
}

func TestSelectionToggleKeepsOrder(t *testing.T) {
	sel := Selection{RowK, RowS}
	sel = sel.Toggle(RowVowels)
	if sel.String() != "K,S,Vowels" {
		t.Fatalf("unexpected selection: %s", sel)
	}
	sel = sel.Toggle(RowS)
	if sel.String() != "K,Vowels" {
		t.Fatalf("unexpected selection after removal: %s", sel)
	}
}

func TestParseSelection(t *testing.T) {
	sel, err := ParseSelection("k, vowels,K,n-final")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if sel.String() != "K,Vowels,N-final" {
		t.Fatalf("unexpected selection: %s", sel)
	}
	if _, err := ParseSelection("Q"); err == nil {
		t.Fatalf("expected error for unknown row")
	}
}

func TestLoadVocabulary(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vocabulary.toml")
	content := `
[[word]]
word = "すし"
romaji = "Sushi"
meaning = "sushi"
rows = ["Vowels", "s"]
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	words, err := LoadVocabulary(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(words) != 1 {
		t.Fatalf("expected 1 word, got %d", len(words))
	}
	w := words[0]
	if w.ID != "user-sushi" || w.Romaji != "sushi" || len(w.Rows) != 2 || w.Rows[1] != RowS {
		t.Fatalf("unexpected word: %+v", w)
	}

	missing, err := LoadVocabulary(filepath.Join(dir, "missing.toml"))
	if err != nil || missing != nil {
		t.Fatalf("expected nil, nil for missing file, got %v, %v", missing, err)
	}

	merged := MergeVocabulary(BuiltinVocabulary(), append(words, BuiltinVocabulary()[0]))
	if len(merged) != len(BuiltinVocabulary())+1 {
		t.Fatalf("expected duplicates to be skipped, got %d", len(merged))
	}
}

func TestRomajiFor(t *testing.T) {
	if r, ok := RomajiFor("シ"); !ok || r != "shi" {
		t.Fatalf("expected shi, got %q %v", r, ok)
	}
	if _, ok := RomajiFor("ねこ"); ok {
		t.Fatalf("expected words to miss")
	}
}
