// Package catalog holds the static kana and vocabulary reference data.
package catalog

// Script identifies one of the two kana syllabaries.
type Script string

// Supported scripts.
const (
	ScriptHiragana Script = "hiragana"
	ScriptKatakana Script = "katakana"
)

// Kana is a single drillable character.
type Kana struct {
	ID     string
	Char   string
	Romaji string
	Row    Row
	Script Script
}

func kanaRow(script Script, prefix string, row Row, pairs ...string) []Kana {
	out := make([]Kana, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		romaji := pairs[i+1]
		id := prefix + "-" + romaji
		if row == RowNFinal {
			id = prefix + "-n-final"
		}
		out = append(out, Kana{ID: id, Char: pairs[i], Romaji: romaji, Row: row, Script: script})
	}
	return out
}

var hiragana = concat(
	kanaRow(ScriptHiragana, "h", RowVowels, "あ", "a", "い", "i", "う", "u", "え", "e", "お", "o"),
	kanaRow(ScriptHiragana, "h", RowK, "か", "ka", "き", "ki", "く", "ku", "け", "ke", "こ", "ko"),
	kanaRow(ScriptHiragana, "h", RowS, "さ", "sa", "し", "shi", "す", "su", "せ", "se", "そ", "so"),
	kanaRow(ScriptHiragana, "h", RowT, "た", "ta", "ち", "chi", "つ", "tsu", "て", "te", "と", "to"),
	kanaRow(ScriptHiragana, "h", RowN, "な", "na", "に", "ni", "ぬ", "nu", "ね", "ne", "の", "no"),
	kanaRow(ScriptHiragana, "h", RowH, "は", "ha", "ひ", "hi", "ふ", "fu", "へ", "he", "ほ", "ho"),
	kanaRow(ScriptHiragana, "h", RowM, "ま", "ma", "み", "mi", "む", "mu", "め", "me", "も", "mo"),
	kanaRow(ScriptHiragana, "h", RowY, "や", "ya", "ゆ", "yu", "よ", "yo"),
	kanaRow(ScriptHiragana, "h", RowR, "ら", "ra", "り", "ri", "る", "ru", "れ", "re", "ろ", "ro"),
	kanaRow(ScriptHiragana, "h", RowW, "わ", "wa", "を", "wo"),
	kanaRow(ScriptHiragana, "h", RowNFinal, "ん", "n"),
)

var katakana = concat(
	kanaRow(ScriptKatakana, "k", RowVowels, "ア", "a", "イ", "i", "ウ", "u", "エ", "e", "オ", "o"),
	kanaRow(ScriptKatakana, "k", RowK, "カ", "ka", "キ", "ki", "ク", "ku", "ケ", "ke", "コ", "ko"),
	kanaRow(ScriptKatakana, "k", RowS, "サ", "sa", "シ", "shi", "ス", "su", "セ", "se", "ソ", "so"),
	kanaRow(ScriptKatakana, "k", RowT, "タ", "ta", "チ", "chi", "ツ", "tsu", "テ", "te", "ト", "to"),
	kanaRow(ScriptKatakana, "k", RowN, "ナ", "na", "ニ", "ni", "ヌ", "nu", "ネ", "ne", "ノ", "no"),
	kanaRow(ScriptKatakana, "k", RowH, "ハ", "ha", "ヒ", "hi", "フ", "fu", "ヘ", "he", "ホ", "ho"),
	kanaRow(ScriptKatakana, "k", RowM, "マ", "ma", "ミ", "mi", "ム", "mu", "メ", "me", "モ", "mo"),
	kanaRow(ScriptKatakana, "k", RowY, "ヤ", "ya", "ユ", "yu", "ヨ", "yo"),
	kanaRow(ScriptKatakana, "k", RowR, "ラ", "ra", "リ", "ri", "ル", "ru", "レ", "re", "ロ", "ro"),
	kanaRow(ScriptKatakana, "k", RowW, "ワ", "wa", "ヲ", "wo"),
	kanaRow(ScriptKatakana, "k", RowNFinal, "ン", "n"),
)

func concat(groups ...[]Kana) []Kana {
	var out []Kana
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

// Hiragana returns a copy of the 46 hiragana.
func Hiragana() []Kana {
	return append([]Kana(nil), hiragana...)
}

// Katakana returns a copy of the 46 katakana.
func Katakana() []Kana {
	return append([]Kana(nil), katakana...)
}

// AllKana returns hiragana followed by katakana.
func AllKana() []Kana {
	return concat(hiragana, katakana)
}

// KanaForMode returns the kana a practice mode draws from.
func KanaForMode(mode Mode) []Kana {
	switch mode {
	case ModeKatakana:
		return Katakana()
	case ModeMixed:
		return AllKana()
	default:
		return Hiragana()
	}
}

// RomajiFor looks up the romaji of a single kana character in either script.
func RomajiFor(char string) (string, bool) {
	for _, k := range hiragana {
		if k.Char == char {
			return k.Romaji, true
		}
	}
	for _, k := range katakana {
		if k.Char == char {
			return k.Romaji, true
		}
	}
	return "", false
}
