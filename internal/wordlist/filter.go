package wordlist

import "strings"

const turkishLetters = "abcçdefgğhıijklmnoöprsştuüvyz"

// FilterFunc returns true when a word should be kept.
type FilterFunc func(string) bool

// FilterForLang returns a language-specific filter for word lists.
func FilterForLang(lang string) FilterFunc {
	switch strings.ToLower(lang) {
	case "tr":
		return filterTurkish
	default:
		return func(string) bool { return true }
	}
}

// filterTurkish expects a word already lower-cased with Turkish rules.
func filterTurkish(word string) bool {
	if word == "" {
		return false
	}
	for _, r := range word {
		if !strings.ContainsRune(turkishLetters, r) {
			return false
		}
	}
	return true
}
