package alphabet

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type mapping struct {
	turkish  string
	cyrillic string
}

// Lowercase source sequences in Turkish alphabet order.
var table = []mapping{
	{"a", "а"}, {"b", "б"}, {"c", "ц"}, {"ç", "ч"}, {"d", "д"},
	{"e", "е"}, {"f", "ф"}, {"g", "г"}, {"h", "х"}, {"ı", "ы"},
	{"i", "и"}, {"j", "ж"}, {"k", "к"}, {"l", "л"}, {"m", "м"},
	{"n", "н"}, {"o", "о"}, {"p", "п"}, {"r", "р"}, {"s", "с"},
	{"ş", "ш"}, {"t", "т"}, {"u", "у"}, {"v", "в"}, {"y", "й"},
	{"z", "з"},
}

var (
	lookup    map[string]string
	maxSeqLen int
)

func init() {
	lookup = make(map[string]string, len(table))
	for _, m := range table {
		lookup[m.turkish] = m.cyrillic
		if n := utf8.RuneCountInString(m.turkish); n > maxSeqLen {
			maxSeqLen = n
		}
	}
}

// MappingPair is one transliteration table entry with both cases, e.g. "Çç" → "Чч".
type MappingPair struct {
	Turkish  string
	Cyrillic string
}

// Glyph returns the uppercase Cyrillic letter.
func (p MappingPair) Glyph() string {
	r, _ := utf8.DecodeRuneInString(p.Cyrillic)
	return string(r)
}

// Answer returns the lowercase Turkish letter expected for the glyph.
func (p MappingPair) Answer() string {
	runes := []rune(p.Turkish)
	if len(runes) == 0 {
		return ""
	}
	return string(runes[len(runes)-1])
}

// LetterMapping returns the transliteration table as upper+lower pairs.
func LetterMapping() []MappingPair {
	out := make([]MappingPair, 0, len(table))
	for _, m := range table {
		out = append(out, MappingPair{
			Turkish:  Upper(m.turkish) + m.turkish,
			Cyrillic: Upper(m.cyrillic) + m.cyrillic,
		})
	}
	return out
}

// MappingFor filters the table down to pairs whose glyph is in available.
// An empty filter yields the whole table.
func MappingFor(available []string) []MappingPair {
	all := LetterMapping()
	if len(available) == 0 {
		return all
	}
	keep := make(map[string]struct{}, len(available))
	for _, a := range available {
		keep[a] = struct{}{}
	}
	out := make([]MappingPair, 0, len(available))
	for _, p := range all {
		if _, ok := keep[p.Glyph()]; ok {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return all
	}
	return out
}

// Transliterate converts Turkish text to Cyrillic. Longer source sequences
// win over shorter ones; unmapped characters pass through unchanged.
func Transliterate(text string) string {
	runes := []rune(text)
	var b strings.Builder
	b.Grow(len(text))
	for i := 0; i < len(runes); {
		matched := false
		for n := maxSeqLen; n >= 1; n-- {
			if i+n > len(runes) {
				continue
			}
			src := string(runes[i : i+n])
			target, ok := lookup[Lower(src)]
			if !ok {
				continue
			}
			b.WriteString(matchCase(runes[i:i+n], target))
			i += n
			matched = true
			break
		}
		if !matched {
			b.WriteRune(runes[i])
			i++
		}
	}
	return b.String()
}

func matchCase(src []rune, target string) string {
	if !unicode.IsUpper(src[0]) {
		return target
	}
	allUpper := true
	for _, r := range src {
		if unicode.IsLetter(r) && !unicode.IsUpper(r) {
			allUpper = false
			break
		}
	}
	if allUpper {
		return Upper(target)
	}
	first, size := utf8.DecodeRuneInString(target)
	return Upper(string(first)) + target[size:]
}

// Upper upper-cases with Turkish rules (i → İ, ı → I).
func Upper(s string) string {
	return cases.Upper(language.Turkish).String(s)
}

// Lower lower-cases with Turkish rules (I → ı, İ → i).
func Lower(s string) string {
	return cases.Lower(language.Turkish).String(s)
}

// Fold normalizes a typed answer for comparison.
func Fold(s string) string {
	return Upper(strings.TrimSpace(s))
}

// EqualFold reports whether two answers match ignoring surrounding space and case.
func EqualFold(a, b string) bool {
	return Fold(a) == Fold(b)
}

// Word is a practice word with a difficulty level.
type Word struct {
	Turkish string
	Level   int
}

var words = []Word{
	{"merhaba", 1}, {"günaydın", 1}, {"teşekkürler", 2}, {"nasılsın", 1},
	{"evet", 1}, {"hayır", 1}, {"lütfen", 1}, {"hoşçakal", 1},
	{"bugün", 1}, {"yarın", 1}, {"dün", 1}, {"güzel", 1},
	{"hava", 1}, {"su", 1}, {"ekmek", 1}, {"çay", 1},
	{"kahve", 1}, {"kitap", 1}, {"okul", 1}, {"ev", 1},
	{"araba", 1}, {"telefon", 2}, {"bilgisayar", 3}, {"öğretmen", 2},
	{"öğrenci", 2}, {"arkadaş", 2}, {"aile", 1}, {"anne", 1},
	{"baba", 1}, {"kardeş", 1}, {"şehir", 1}, {"istanbul", 2},
	{"ankara", 2}, {"türkiye", 2}, {"dünya", 1}, {"gece", 1},
	{"gündüz", 1}, {"yıldız", 2}, {"güneş", 1}, {"ay", 1},
}

// Words returns the practice word list.
func Words() []Word {
	out := make([]Word, len(words))
	copy(out, words)
	return out
}

// WordsUpTo returns words whose level does not exceed maxLevel, sorted by level.
func WordsUpTo(maxLevel int) []Word {
	return FilterLevel(words, maxLevel)
}

// FilterLevel returns the words of list at or below maxLevel, sorted by level.
func FilterLevel(list []Word, maxLevel int) []Word {
	out := make([]Word, 0, len(list))
	for _, w := range list {
		if w.Level <= maxLevel {
			out = append(out, w)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Level < out[j].Level })
	return out
}

// CheckAnswer reports whether answer is the Cyrillic rendering of word.
func CheckAnswer(answer, word string) bool {
	return Lower(strings.TrimSpace(answer)) == Lower(Transliterate(word))
}
