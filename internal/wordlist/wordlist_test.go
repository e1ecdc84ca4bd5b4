package wordlist

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/verte-zerg/kiril/internal/alphabet"
)

func TestFilterTurkish(t *testing.T) {
	filter := FilterForLang("tr")
	for _, word := range []string{"merhaba", "ığdır", "şöför"} {
		if !filter(word) {
			t.Fatalf("expected %q to pass turkish filter", word)
		}
	}
	for _, word := range []string{"", "wifi", "qatar", "co-op", "x5"} {
		if filter(word) {
			t.Fatalf("expected %q to be rejected", word)
		}
	}
}

func writeList(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "words.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestLoadWords(t *testing.T) {
	path := writeList(t, "# custom\nKedi\nköpek 2\n\nwifi\nIşık 3\n")
	words, err := LoadWords(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := []alphabet.Word{{Turkish: "kedi", Level: 1}, {Turkish: "köpek", Level: 2}, {Turkish: "ışık", Level: 3}}
	if len(words) != len(want) {
		t.Fatalf("expected %d words, got %v", len(want), words)
	}
	for i := range want {
		if words[i] != want[i] {
			t.Fatalf("word %d: got %+v want %+v", i, words[i], want[i])
		}
	}
}

func TestLoadWordsErrors(t *testing.T) {
	if _, err := LoadWords(writeList(t, "kedi zero\n")); err == nil {
		t.Fatalf("expected error for bad level")
	}
	if _, err := LoadWords(writeList(t, "wifi\n")); err == nil {
		t.Fatalf("expected error for a list with no usable words")
	}
	if _, err := LoadWords(filepath.Join(t.TempDir(), "missing.txt")); !os.IsNotExist(err) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestMergeSkipsDuplicates(t *testing.T) {
	base := []alphabet.Word{{Turkish: "ev", Level: 1}}
	extra := []alphabet.Word{{Turkish: "ev", Level: 3}, {Turkish: "kedi", Level: 1}}
	got := Merge(base, extra)
	if len(got) != 2 || got[0].Level != 1 || got[1].Turkish != "kedi" {
		t.Fatalf("unexpected merge %+v", got)
	}
}
