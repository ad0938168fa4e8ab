package catalog

// Vocabulary is a short word made only of kana from its rows.
type Vocabulary struct {
	ID      string
	Word    string
	Romaji  string
	Meaning string
	Rows    []Row
}

func v(id, word, romaji, meaning string, rows ...Row) Vocabulary {
	return Vocabulary{ID: id, Word: word, Romaji: romaji, Meaning: meaning, Rows: rows}
}

const (
	vo = RowVowels
	rk = RowK
	rs = RowS
	rt = RowT
	rn = RowN
	rh = RowH
	rm = RowM
	ry = RowY
	rr = RowR
	rw = RowW
)

var vocabulary = []Vocabulary{
	v("v-ie", "いえ", "ie", "house", vo),
	v("v-ue", "うえ", "ue", "above", vo),
	v("v-ao", "あお", "ao", "blue", vo),
	v("v-oi", "おい", "oi", "hey", vo),
	v("v-ei", "えい", "ei", "ray (fish)", vo),
	v("vk-aka", "あか", "aka", "red", vo, rk),
	v("vk-kao", "かお", "kao", "face", vo, rk),
	v("vk-ki", "き", "ki", "tree", vo, rk),
	v("vk-koe", "こえ", "koe", "voice", vo, rk),
	v("vk-kiku", "きく", "kiku", "to listen", vo, rk),
	v("vks-okashi", "おかし", "okashi", "sweets", vo, rk, rs),
	v("vks-sake", "さけ", "sake", "rice wine", vo, rk, rs),
	v("vks-kasa", "かさ", "kasa", "umbrella", vo, rk, rs),
	v("vks-suki", "すき", "suki", "to like", vo, rk, rs),
	v("vks-sakura", "さくら", "sakura", "cherry blossom", vo, rk, rs, rr),
	v("vkt-kutsu", "くつ", "kutsu", "shoes", vo, rk, rt),
	v("vkt-kite", "きて", "kite", "come here", vo, rk, rt),
	v("vkt-takai", "たかい", "takai", "tall, expensive", vo, rk, rt),
	v("vkt-toki", "とき", "toki", "time", vo, rk, rt),
	v("vkt-kato", "かと", "kato", "Kato (surname)", vo, rk, rt),
	v("vn-nani", "なに", "nani", "what", vo, rn),
	v("vn-niku", "にく", "niku", "meat", vo, rn, rk),
	v("vn-neko", "ねこ", "neko", "cat", vo, rn, rk),
	v("vn-noru", "のる", "noru", "to ride", vo, rn, rr),
	v("vh-hai", "はい", "hai", "yes", vo, rh),
	v("vh-hi", "ひ", "hi", "sun", vo, rh),
	v("vh-hana", "はな", "hana", "flower", vo, rh, rn),
	v("vh-hoshi", "ほし", "hoshi", "star", vo, rh, rs),
	v("vh-hito", "ひと", "hito", "person", vo, rh, rt),
	v("vm-mizu", "みず", "mizu", "water", vo, rm),
	v("vm-michi", "みち", "michi", "road", vo, rm, rt),
	v("vm-mori", "もり", "mori", "forest", vo, rm, rr),
	v("vm-me", "め", "me", "eye", vo, rm),
	v("vm-mono", "もの", "mono", "thing", vo, rm, rn),
	v("vy-yama", "やま", "yama", "mountain", vo, ry, rm),
	v("vy-yuki", "ゆき", "yuki", "snow", vo, ry, rk),
	v("vy-yoru", "よる", "yoru", "night", vo, ry, rr),
	v("vy-yasai", "やさい", "yasai", "vegetable", vo, ry, rs),
	v("vy-yubi", "ゆび", "yubi", "finger", vo, ry),
	v("vr-ringo", "りんご", "ringo", "apple", vo, rr, rn, rk),
	v("vr-rikishi", "りきし", "rikishi", "sumo wrestler", vo, rr, rk, rs),
	v("vr-aru", "ある", "aru", "to exist (things)", vo, rr),
	v("vr-iru", "いる", "iru", "to exist (living)", vo, rr),
	v("vr-uru", "うる", "uru", "to sell", vo, rr),
	v("vw-watashi", "わたし", "watashi", "I, me", vo, rw, rt, rs),
	v("vw-warui", "わるい", "warui", "bad", vo, rw, rr),
	v("vk-aki", "あき", "aki", "autumn", vo, rk),
	v("vk-iku", "いく", "iku", "to go", vo, rk),
	v("vk-ueki", "うえき", "ueki", "potted plant", vo, rk),
	v("vk-oka", "おか", "oka", "hill", vo, rk),
	v("vk-eki", "えき", "eki", "station", vo, rk),
	v("vks-kisu", "きす", "kisu", "kiss", vo, rk, rs),
	v("vks-kuso", "くそ", "kuso", "damn", vo, rk, rs),
	v("vks-soko", "そこ", "soko", "there", vo, rk, rs),
	v("vks-ashi", "あし", "ashi", "foot", vo, rs),
	v("vks-uso", "うそ", "uso", "lie", vo, rs),
	v("vkt-chi", "ち", "chi", "blood", vo, rt),
	v("vkt-te", "て", "te", "hand", vo, rt),
	v("vkt-ato", "あと", "ato", "after", vo, rt),
	v("vkt-ita", "いた", "ita", "board", vo, rt),
	v("vkt-tsuki", "つき", "tsuki", "moon", vo, rt),
	v("vn-name", "なめ", "name", "lick", vo, rn, rm),
	v("vn-nemu", "ねむ", "nemu", "sleepy", vo, rn, rm),
	v("vn-inochi", "いのち", "inochi", "life", vo, rn, rk, rt),
	v("vh-heya", "へや", "heya", "room", vo, rh, ry),
	v("vh-haru", "はる", "haru", "spring", vo, rh, rr),
	v("vh-fuyu", "ふゆ", "fuyu", "winter", vo, rh, ry),
	v("vh-hikari", "ひかり", "hikari", "light", vo, rh, rk, rr),
	v("vm-matsu", "まつ", "matsu", "to wait", vo, rm, rt),
	v("vm-mise", "みせ", "mise", "shop", vo, rm, rs),
	v("vm-mushi", "むし", "mushi", "insect", vo, rm, rs),
	v("vm-momiji", "もみじ", "momiji", "autumn leaves", vo, rm),
	v("vy-yume", "ゆめ", "yume", "dream", vo, ry, rm),
	v("vr-riku", "りく", "riku", "land", vo, rr, rk),
	v("vr-ren", "れん", "ren", "love", vo, rr, rn),
	v("vr-roku", "ろく", "roku", "six", vo, rr, rk),
	v("vkt-kita", "きた", "kita", "north", vo, rk, rt),
	v("vkt-koto", "こと", "koto", "matter", vo, rk, rt),
	v("vhn-hashi", "はし", "hashi", "bridge, chopsticks", vo, rh, rs),
	v("vmn-machi", "まち", "machi", "town", vo, rm, rt),
	v("vm-mado", "まど", "mado", "window", vo, rm),
}

// BuiltinVocabulary returns a copy of the built-in word list.
func BuiltinVocabulary() []Vocabulary {
	out := make([]Vocabulary, len(vocabulary))
	for i, item := range vocabulary {
		item.Rows = append([]Row(nil), item.Rows...)
		out[i] = item
	}
	return out
}

// FilterVocabulary keeps the words whose rows are all selected. An empty
// selection keeps every word.
func FilterVocabulary(words []Vocabulary, sel Selection) []Vocabulary {
	out := make([]Vocabulary, 0, len(words))
	for _, w := range words {
		if sel.Covers(w.Rows) {
			out = append(out, w)
		}
	}
	return out
}
