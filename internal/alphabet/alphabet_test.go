package alphabet

import "testing"

func TestTransliteratePreservesCase(t *testing.T) {
	cases := map[string]string{
		"merhaba":  "мерхаба",
		"Merhaba":  "Мерхаба",
		"ÇAY":      "ЧАЙ",
		"ılık":     "ылык",
		"Istanbul": "Ыстанбул",
		"İzmir":    "Измир",
		"göz 123!": "гöз 123!",
	}
	for in, want := range cases {
		if got := Transliterate(in); got != want {
			t.Fatalf("Transliterate(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestLetterMappingPairs(t *testing.T) {
	pairs := LetterMapping()
	if len(pairs) != len(table) {
		t.Fatalf("expected %d pairs, got %d", len(table), len(pairs))
	}
	first := pairs[0]
	if first.Turkish != "Aa" || first.Cyrillic != "Аа" {
		t.Fatalf("unexpected first pair: %+v", first)
	}
	for _, p := range pairs {
		if p.Turkish == "Iı" {
			if p.Glyph() != "Ы" || p.Answer() != "ı" {
				t.Fatalf("unexpected dotless i pair: glyph=%q answer=%q", p.Glyph(), p.Answer())
			}
		}
	}
}

func TestMappingForFallsBackToAll(t *testing.T) {
	if got := MappingFor(nil); len(got) != len(table) {
		t.Fatalf("expected full table for empty filter, got %d", len(got))
	}
	got := MappingFor([]string{"Б", "Ж"})
	if len(got) != 2 {
		t.Fatalf("expected 2 pairs, got %d", len(got))
	}
	if got[0].Answer() != "b" || got[1].Answer() != "j" {
		t.Fatalf("unexpected pairs: %+v", got)
	}
	if got := MappingFor([]string{"Ё"}); len(got) != len(table) {
		t.Fatalf("expected fallback to full table, got %d", len(got))
	}
}

func TestEqualFoldTurkish(t *testing.T) {
	if !EqualFold(" i ", "İ") {
		t.Fatalf("expected dotted i to match İ")
	}
	if !EqualFold("ye", "YE") {
		t.Fatalf("expected case-insensitive match")
	}
	if EqualFold("i", "I") {
		t.Fatalf("dotted and dotless i must differ")
	}
}

func TestLettersTable(t *testing.T) {
	all := Letters()
	if len(all) != 29 {
		t.Fatalf("expected 29 letters, got %d", len(all))
	}
	seen := map[string]bool{}
	for _, l := range all {
		if seen[l.ID()] {
			t.Fatalf("duplicate letter id %q", l.ID())
		}
		seen[l.ID()] = true
	}
	if l, ok := Lookup("Ц"); !ok || l.Turkish != "TS" {
		t.Fatalf("unexpected lookup result: %+v %v", l, ok)
	}
}

func TestCheckAnswer(t *testing.T) {
	if !CheckAnswer("Мерхаба ", "merhaba") {
		t.Fatalf("expected answer to match")
	}
	if CheckAnswer("мерхаб", "merhaba") {
		t.Fatalf("expected mismatch")
	}
	for _, w := range WordsUpTo(1) {
		if w.Level > 1 {
			t.Fatalf("unexpected level %d", w.Level)
		}
	}
}
