// Package alphabet holds the Cyrillic letter table and transliteration helpers.
package alphabet

// LetterPair describes one Cyrillic letter and its teaching material.
type LetterPair struct {
	Cyrillic             string
	Turkish              string
	Pronunciation        string
	Association          string
	ExampleWord          string
	ExampleTranslation   string
	ExamplePronunciation string
}

// ID returns the identity key used by progress records.
func (l LetterPair) ID() string {
	return l.Cyrillic
}

var letters = []LetterPair{
	{Cyrillic: "А", Turkish: "A", Pronunciation: "A", Association: "Aynen A gibi", ExampleWord: "ананас", ExampleTranslation: "ananas", ExamplePronunciation: "ananas"},
	{Cyrillic: "Б", Turkish: "B", Pronunciation: "Be", Association: "Boru", ExampleWord: "баба", ExampleTranslation: "baba", ExamplePronunciation: "baba"},
	{Cyrillic: "В", Turkish: "V", Pronunciation: "Ve", Association: "Vazo", ExampleWord: "вода", ExampleTranslation: "su", ExamplePronunciation: "voda"},
	{Cyrillic: "Г", Turkish: "G", Pronunciation: "Ge", Association: "Ters L = G", ExampleWord: "город", ExampleTranslation: "şehir", ExamplePronunciation: "gorod"},
	{Cyrillic: "Д", Turkish: "D", Pronunciation: "De", Association: "Ev/Dam", ExampleWord: "дом", ExampleTranslation: "ev", ExamplePronunciation: "dom"},
	{Cyrillic: "Е", Turkish: "YE", Pronunciation: "Ye", Association: "Başta Ye sesi", ExampleWord: "еда", ExampleTranslation: "yemek", ExamplePronunciation: "yeda"},
	{Cyrillic: "Ё", Turkish: "YO", Pronunciation: "Yo", Association: "İki noktalı Yo", ExampleWord: "ёлка", ExampleTranslation: "çam ağacı", ExamplePronunciation: "yolka"},
	{Cyrillic: "Ж", Turkish: "J", Pronunciation: "Je", Association: "Kelebek", ExampleWord: "жук", ExampleTranslation: "böcek", ExamplePronunciation: "juk"},
	{Cyrillic: "З", Turkish: "Z", Pronunciation: "Ze", Association: "Ters 3", ExampleWord: "зима", ExampleTranslation: "kış", ExamplePronunciation: "zima"},
	{Cyrillic: "И", Turkish: "İ", Pronunciation: "İ", Association: "Ters N", ExampleWord: "имя", ExampleTranslation: "isim", ExamplePronunciation: "imya"},
	{Cyrillic: "Й", Turkish: "Y", Pronunciation: "Kısa İ", Association: "Şapkalı İ", ExampleWord: "йогурт", ExampleTranslation: "yoğurt", ExamplePronunciation: "yogurt"},
	{Cyrillic: "К", Turkish: "K", Pronunciation: "Ka", Association: "Aynen K gibi", ExampleWord: "кот", ExampleTranslation: "kedi", ExamplePronunciation: "kot"},
	{Cyrillic: "Л", Turkish: "L", Pronunciation: "El", Association: "Çadır", ExampleWord: "лампа", ExampleTranslation: "lamba", ExamplePronunciation: "lampa"},
	{Cyrillic: "М", Turkish: "M", Pronunciation: "Em", Association: "Aynen M gibi", ExampleWord: "мама", ExampleTranslation: "anne", ExamplePronunciation: "mama"},
	{Cyrillic: "Н", Turkish: "N", Pronunciation: "En", Association: "H gibi ama N", ExampleWord: "нос", ExampleTranslation: "burun", ExamplePronunciation: "nos"},
	{Cyrillic: "О", Turkish: "O", Pronunciation: "O", Association: "Aynen O gibi", ExampleWord: "окно", ExampleTranslation: "pencere", ExamplePronunciation: "okno"},
	{Cyrillic: "П", Turkish: "P", Pronunciation: "Pe", Association: "Kapı", ExampleWord: "папа", ExampleTranslation: "baba", ExamplePronunciation: "papa"},
	{Cyrillic: "Р", Turkish: "R", Pronunciation: "Er", Association: "P gibi ama R", ExampleWord: "рука", ExampleTranslation: "el", ExamplePronunciation: "ruka"},
	{Cyrillic: "С", Turkish: "S", Pronunciation: "Es", Association: "C şekli", ExampleWord: "сок", ExampleTranslation: "meyve suyu", ExamplePronunciation: "sok"},
	{Cyrillic: "Т", Turkish: "T", Pronunciation: "Te", Association: "Aynen T gibi", ExampleWord: "там", ExampleTranslation: "orada", ExamplePronunciation: "tam"},
	{Cyrillic: "У", Turkish: "U", Pronunciation: "U", Association: "Y gibi", ExampleWord: "утро", ExampleTranslation: "sabah", ExamplePronunciation: "utro"},
	{Cyrillic: "Ф", Turkish: "F", Pronunciation: "Ef", Association: "Göz/Baykuş", ExampleWord: "фото", ExampleTranslation: "fotoğraf", ExamplePronunciation: "foto"},
	{Cyrillic: "Х", Turkish: "H", Pronunciation: "Ha", Association: "X şekli", ExampleWord: "хлеб", ExampleTranslation: "ekmek", ExamplePronunciation: "hleb"},
	{Cyrillic: "Ц", Turkish: "TS", Pronunciation: "Tse", Association: "Kuyruklu T", ExampleWord: "цена", ExampleTranslation: "fiyat", ExamplePronunciation: "tsena"},
	{Cyrillic: "Ч", Turkish: "Ç", Pronunciation: "Çe", Association: "Sandalye", ExampleWord: "чай", ExampleTranslation: "çay", ExamplePronunciation: "çay"},
	{Cyrillic: "Ш", Turkish: "Ş", Pronunciation: "Şa", Association: "Tarak", ExampleWord: "школа", ExampleTranslation: "okul", ExamplePronunciation: "şkola"},
	{Cyrillic: "Ы", Turkish: "I", Pronunciation: "Yı", Association: "b + I", ExampleWord: "рыба", ExampleTranslation: "balık", ExamplePronunciation: "rıba"},
	{Cyrillic: "Э", Turkish: "E", Pronunciation: "E", Association: "Ters E", ExampleWord: "это", ExampleTranslation: "bu", ExamplePronunciation: "eto"},
	{Cyrillic: "Ю", Turkish: "YU", Pronunciation: "Yu", Association: "I + O", ExampleWord: "юг", ExampleTranslation: "güney", ExamplePronunciation: "yug"},
}

// Letters returns the letter table in canonical order. The slice is a copy.
func Letters() []LetterPair {
	out := make([]LetterPair, len(letters))
	copy(out, letters)
	return out
}

// Lookup finds a letter by its Cyrillic glyph.
func Lookup(id string) (LetterPair, bool) {
	for _, l := range letters {
		if l.Cyrillic == id {
			return l, true
		}
	}
	return LetterPair{}, false
}

// LetterIDs returns the ids of all letters in canonical order.
func LetterIDs() []string {
	ids := make([]string, len(letters))
	for i, l := range letters {
		ids[i] = l.Cyrillic
	}
	return ids
}
