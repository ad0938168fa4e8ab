package catalog

import (
	"fmt"
	"strings"
)

// Row is a phonological row of the kana chart.
type Row string

// Kana chart rows in chart order.
const (
	RowVowels Row = "Vowels"
	RowK      Row = "K"
	RowS      Row = "S"
	RowT      Row = "T"
	RowN      Row = "N"
	RowH      Row = "H"
	RowM      Row = "M"
	RowY      Row = "Y"
	RowR      Row = "R"
	RowW      Row = "W"
	RowNFinal Row = "N-final"
)

var rows = []Row{RowVowels, RowK, RowS, RowT, RowN, RowH, RowM, RowY, RowR, RowW, RowNFinal}

// Rows returns every row in chart order.
func Rows() []Row {
	return append([]Row(nil), rows...)
}

// ParseRow resolves a row name case-insensitively.
func ParseRow(s string) (Row, error) {
	s = strings.TrimSpace(s)
	for _, r := range rows {
		if strings.EqualFold(string(r), s) {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown row %q", s)
}

// Mode selects which scripts a session practices.
type Mode string

// Practice modes.
const (
	ModeHiragana Mode = "hiragana"
	ModeKatakana Mode = "katakana"
	ModeMixed    Mode = "mixed"
)

// Modes returns the practice modes in menu order.
func Modes() []Mode {
	return []Mode{ModeHiragana, ModeKatakana, ModeMixed}
}

// ParseMode resolves a mode name.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeHiragana:
		return ModeHiragana, nil
	case ModeKatakana:
		return ModeKatakana, nil
	case ModeMixed:
		return ModeMixed, nil
	}
	return "", fmt.Errorf("unknown mode %q (want hiragana, katakana or mixed)", s)
}

// Selection is an ordered set of rows. Order matters: remainder slots go to
// the rows selected first. An empty selection means every row.
type Selection []Row

// AllRows returns a selection of every row in chart order.
func AllRows() Selection {
	return Selection(Rows())
}

// ParseSelection parses a comma separated row list.
func ParseSelection(s string) (Selection, error) {
	var sel Selection
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		r, err := ParseRow(part)
		if err != nil {
			return nil, err
		}
		if !sel.Contains(r) {
			sel = append(sel, r)
		}
	}
	return sel, nil
}

// Contains reports whether r is selected.
func (s Selection) Contains(r Row) bool {
	for _, x := range s {
		if x == r {
			return true
		}
	}
	return false
}

// Toggle adds r at the end or removes it, returning the new selection.
func (s Selection) Toggle(r Row) Selection {
	out := make(Selection, 0, len(s)+1)
	found := false
	for _, x := range s {
		if x == r {
			found = true
			continue
		}
		out = append(out, x)
	}
	if !found {
		out = append(out, r)
	}
	return out
}

// Covers reports whether every row in want is selected. An empty selection
// covers everything.
func (s Selection) Covers(want []Row) bool {
	if len(s) == 0 {
		return true
	}
	for _, r := range want {
		if !s.Contains(r) {
			return false
		}
	}
	return true
}

// String joins the rows with commas.
func (s Selection) String() string {
	parts := make([]string, len(s))
	for i, r := range s {
		parts[i] = string(r)
	}
	return strings.Join(parts, ",")
}
