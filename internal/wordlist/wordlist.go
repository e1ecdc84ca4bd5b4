// Package wordlist loads custom practice words from files.
package wordlist

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/verte-zerg/kiril/internal/alphabet"
)

// DefaultLevel is assigned to lines without an explicit level.
const DefaultLevel = 1

// LoadWords reads one word per line from the provided file path. A line may
// carry a level after the word ("kelime 2"). Blank lines and lines starting
// with # are skipped; words outside the Turkish alphabet are dropped.
func LoadWords(path string) ([]alphabet.Word, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only word list.
			_ = cerr
		}
	}()

	var words []alphabet.Word
	keep := FilterForLang("tr")
	scanner := bufio.NewScanner(file)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		w, err := parseLine(line)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, lineNo, err)
		}
		if !keep(w.Turkish) {
			continue
		}
		words = append(words, w)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("word list is empty")
	}
	return words, nil
}

func parseLine(line string) (alphabet.Word, error) {
	fields := strings.Fields(line)
	w := alphabet.Word{Turkish: alphabet.Lower(fields[0]), Level: DefaultLevel}
	switch len(fields) {
	case 1:
	case 2:
		level, err := strconv.Atoi(fields[1])
		if err != nil || level < 1 {
			return alphabet.Word{}, fmt.Errorf("invalid level %q", fields[1])
		}
		w.Level = level
	default:
		return alphabet.Word{}, fmt.Errorf("expected a word and an optional level")
	}
	return w, nil
}

// Merge appends extra to base, skipping words base already has.
func Merge(base, extra []alphabet.Word) []alphabet.Word {
	seen := make(map[string]struct{}, len(base)+len(extra))
	out := make([]alphabet.Word, 0, len(base)+len(extra))
	for _, list := range [][]alphabet.Word{base, extra} {
		for _, w := range list {
			if _, ok := seen[w.Turkish]; ok {
				continue
			}
			seen[w.Turkish] = struct{}{}
			out = append(out, w)
		}
	}
	return out
}
