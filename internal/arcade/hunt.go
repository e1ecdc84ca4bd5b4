package arcade

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/verte-zerg/kiril/internal/alphabet"
	"github.com/verte-zerg/kiril/internal/clock"
	"github.com/verte-zerg/kiril/internal/generator"
	"github.com/verte-zerg/kiril/internal/model"
)

const (
	HuntGridSize       = 12
	HuntMinWord        = 3
	HuntBaseWords      = 8
	HuntHints          = 3
	DefaultHuntSeconds = 180
	// HuntHintTime is how long a hinted word stays highlighted.
	HuntHintTime = 3 * time.Second
	// HuntLevelDelay separates the last find of a grid from the next grid.
	HuntLevelDelay = time.Second

	huntLetterScore = 10
	huntLevelBonus  = 100
	huntLevelTime   = 30
	huntAttempts    = 100
	huntFiller      = "абвгдежзийклмнопрстуфхцчшщыэюя"
)

// Cell is a grid position; X grows to the right and Y downwards.
type Cell struct {
	X, Y int
}

func (c Cell) in() bool {
	return c.X >= 0 && c.X < HuntGridSize && c.Y >= 0 && c.Y < HuntGridSize
}

// Words run right, down, down-right or up-right.
var huntDirections = []Cell{{1, 0}, {0, 1}, {1, 1}, {1, -1}}

// HuntWord is one hidden word.
type HuntWord struct {
	Turkish  string
	Cyrillic string
	Cells    []Cell
	Found    bool
}

// Pick is the outcome of releasing a selection.
type Pick struct {
	// Word is the Turkish spelling of the word found, empty on a miss.
	Word  string
	Found bool
	// Cleared is set when the pick found the last word of the grid; the host
	// hands Advance back to NextLevel after HuntLevelDelay.
	Cleared bool
	Advance clock.Token
}

// HuntConfig configures a word hunt.
type HuntConfig struct {
	Words      []alphabet.Word
	Seconds    int
	Rand       *generator.Generator
	OnPractice func(isCorrect bool)
}

// Hunt is the word search: Cyrillic words hidden in a letter grid are
// found by selecting them in a straight line, in either reading order.
type Hunt struct {
	pool       []string
	seconds    int
	rnd        *generator.Generator
	onPractice func(bool)

	status    Status
	grid      [HuntGridSize][HuntGridSize]rune
	words     []HuntWord
	selecting bool
	selection []Cell
	hint      int
	score     int
	level     int
	hints     int
	timeLeft  int
	found     int
	misses    int
	started   time.Time
	ended     time.Time

	countdown clock.Guard
	hintTimer clock.Guard
	advance   clock.Guard
}

// NewHunt creates a hunt in the ready state. Words whose Cyrillic form has
// letters outside the Russian alphabet (ğ, ö, ü) or does not fit the grid
// are left out.
func NewHunt(cfg HuntConfig) *Hunt {
	h := &Hunt{
		seconds:    cfg.Seconds,
		rnd:        cfg.Rand,
		onPractice: cfg.OnPractice,
		hint:       -1,
		level:      1,
	}
	list := cfg.Words
	if len(list) == 0 {
		list = alphabet.Words()
	}
	seen := map[string]bool{}
	for _, w := range list {
		tr := alphabet.Lower(w.Turkish)
		if seen[tr] || !huntable(HuntForm(tr)) {
			continue
		}
		seen[tr] = true
		h.pool = append(h.pool, tr)
	}
	if h.seconds <= 0 {
		h.seconds = DefaultHuntSeconds
	}
	if h.rnd == nil {
		h.rnd = generator.New()
	}
	if h.onPractice == nil {
		h.onPractice = func(bool) {}
	}
	h.timeLeft = h.seconds
	h.hints = HuntHints
	return h
}

// HuntForm is the lowercase Cyrillic spelling placed in the grid.
func HuntForm(turkish string) string {
	return alphabet.Lower(alphabet.Transliterate(alphabet.Lower(turkish)))
}

func huntable(cyrillic string) bool {
	n := utf8.RuneCountInString(cyrillic)
	if n < HuntMinWord || n > HuntGridSize {
		return false
	}
	for _, r := range cyrillic {
		if !strings.ContainsRune(huntFiller, r) {
			return false
		}
	}
	return true
}

// Start deals the first grid and returns the countdown token. The host
// delivers one Second call per elapsed second with that token.
func (h *Hunt) Start(now time.Time) clock.Token {
	h.hintTimer.Cancel()
	h.advance.Cancel()
	h.status = StatusPlaying
	h.score = 0
	h.level = 1
	h.hints = HuntHints
	h.hint = -1
	h.timeLeft = h.seconds
	h.found = 0
	h.misses = 0
	h.selecting = false
	h.selection = nil
	h.started = now
	h.ended = time.Time{}
	h.deal(HuntBaseWords)
	return h.countdown.Arm()
}

// deal hides up to count words in a fresh grid and fills the rest with
// random letters.
func (h *Hunt) deal(count int) {
	h.grid = [HuntGridSize][HuntGridSize]rune{}
	h.words = h.words[:0]
	for _, tr := range generator.Shuffle(h.rnd, h.pool) {
		if len(h.words) >= count {
			break
		}
		form := []rune(HuntForm(tr))
		cells, ok := h.place(form)
		if !ok {
			continue
		}
		h.words = append(h.words, HuntWord{Turkish: tr, Cyrillic: string(form), Cells: cells})
	}
	filler := []rune(huntFiller)
	for y := range h.grid {
		for x := range h.grid[y] {
			if h.grid[y][x] == 0 {
				h.grid[y][x] = filler[h.rnd.Intn(len(filler))]
			}
		}
	}
}

// place writes word along a random direction. Crossing words may share
// cells holding the same letter.
func (h *Hunt) place(word []rune) ([]Cell, bool) {
	n := len(word)
	for attempt := 0; attempt < huntAttempts; attempt++ {
		d := huntDirections[h.rnd.Intn(len(huntDirections))]
		start := Cell{
			X: h.rnd.Intn(HuntGridSize - (n-1)*abs(d.X)),
			Y: h.rnd.Intn(HuntGridSize - (n-1)*abs(d.Y)),
		}
		if d.Y < 0 {
			start.Y += n - 1
		}
		cells := make([]Cell, n)
		fits := true
		for i, r := range word {
			c := Cell{X: start.X + i*d.X, Y: start.Y + i*d.Y}
			if cur := h.grid[c.Y][c.X]; cur != 0 && cur != r {
				fits = false
				break
			}
			cells[i] = c
		}
		if !fits {
			continue
		}
		for i, c := range cells {
			h.grid[c.Y][c.X] = word[i]
		}
		return cells, true
	}
	return nil, false
}

// Second consumes one countdown tick and reports whether the countdown
// continues. Stale tokens are ignored.
func (h *Hunt) Second(tok clock.Token, now time.Time) bool {
	if !h.countdown.Valid(tok) || h.status != StatusPlaying {
		return false
	}
	h.timeLeft--
	if h.timeLeft <= 0 {
		h.timeLeft = 0
		h.finish(now)
		return false
	}
	return true
}

// Begin starts a selection at c.
func (h *Hunt) Begin(c Cell) bool {
	if h.status != StatusPlaying || !c.in() {
		return false
	}
	h.selecting = true
	h.selection = []Cell{c}
	return true
}

// SelectTo replaces the selection with the straight line from its first
// cell to c. A c off the eight directions leaves the selection unchanged.
func (h *Hunt) SelectTo(c Cell) bool {
	if !h.selecting || h.status != StatusPlaying || !c.in() {
		return false
	}
	from := h.selection[0]
	dx, dy := c.X-from.X, c.Y-from.Y
	if dx != 0 && dy != 0 && abs(dx) != abs(dy) {
		return false
	}
	step := Cell{X: sign(dx), Y: sign(dy)}
	n := max(abs(dx), abs(dy))
	line := make([]Cell, 0, n+1)
	for i := 0; i <= n; i++ {
		line = append(line, Cell{X: from.X + i*step.X, Y: from.Y + i*step.Y})
	}
	h.selection = line
	return true
}

// Release ends the selection and checks it against the hidden words.
func (h *Hunt) Release() Pick {
	if !h.selecting {
		return Pick{}
	}
	sel := h.selection
	h.selecting = false
	h.selection = nil
	if h.status != StatusPlaying || len(sel) < HuntMinWord {
		return Pick{}
	}
	text := h.read(sel)
	back := reverseString(text)
	for i := range h.words {
		w := &h.words[i]
		if w.Found || (w.Cyrillic != text && w.Cyrillic != back) {
			continue
		}
		w.Found = true
		h.found++
		h.score += utf8.RuneCountInString(w.Cyrillic) * huntLetterScore
		if h.hint == i {
			h.hint = -1
			h.hintTimer.Cancel()
		}
		h.onPractice(true)
		p := Pick{Word: w.Turkish, Found: true}
		if h.cleared() {
			p.Cleared = true
			p.Advance = h.advance.Arm()
		}
		return p
	}
	h.misses++
	return Pick{}
}

// CancelSelection drops the selection without checking it.
func (h *Hunt) CancelSelection() {
	h.selecting = false
	h.selection = nil
}

func (h *Hunt) cleared() bool {
	if len(h.words) == 0 {
		return false
	}
	for _, w := range h.words {
		if !w.Found {
			return false
		}
	}
	return true
}

// NextLevel deals a bigger grid once a cleared grid's delay has elapsed.
// The new level adds a word, a level bonus and thirty seconds per level
// already played to the base time.
func (h *Hunt) NextLevel(tok clock.Token) bool {
	if !h.advance.Valid(tok) || h.status != StatusPlaying {
		return false
	}
	h.advance.Cancel()
	h.hintTimer.Cancel()
	h.hint = -1
	h.CancelSelection()
	prev := h.level
	h.level++
	h.score += huntLevelBonus
	h.timeLeft = h.seconds + prev*huntLevelTime
	h.deal(HuntBaseWords + prev)
	return true
}

// Hint highlights a random word still hidden and returns the token to
// hand back to HideHint after HuntHintTime.
func (h *Hunt) Hint() (clock.Token, bool) {
	if h.status != StatusPlaying || h.hints <= 0 {
		return 0, false
	}
	var open []int
	for i, w := range h.words {
		if !w.Found {
			open = append(open, i)
		}
	}
	if len(open) == 0 {
		return 0, false
	}
	h.hint = open[h.rnd.Intn(len(open))]
	h.hints--
	return h.hintTimer.Arm(), true
}

// HideHint clears the highlight armed with tok.
func (h *Hunt) HideHint(tok clock.Token) {
	if !h.hintTimer.Valid(tok) {
		return
	}
	h.hintTimer.Cancel()
	h.hint = -1
}

// Stop abandons the session and cancels its timers.
func (h *Hunt) Stop(now time.Time) {
	if h.status == StatusPlaying {
		h.finish(now)
	}
	h.countdown.Cancel()
	h.hintTimer.Cancel()
	h.advance.Cancel()
}

func (h *Hunt) finish(now time.Time) {
	h.status = StatusOver
	h.ended = now
	h.selecting = false
	h.selection = nil
	h.hint = -1
	h.countdown.Cancel()
	h.hintTimer.Cancel()
	h.advance.Cancel()
}

func (h *Hunt) read(cells []Cell) string {
	var b strings.Builder
	for _, c := range cells {
		b.WriteRune(h.grid[c.Y][c.X])
	}
	return b.String()
}

// At returns the letter at c.
func (h *Hunt) At(c Cell) rune {
	if !c.in() {
		return 0
	}
	return h.grid[c.Y][c.X]
}

// Words returns the hidden words of the current grid.
func (h *Hunt) Words() []HuntWord {
	return append([]HuntWord(nil), h.words...)
}

// Selection returns the selected cells in order.
func (h *Hunt) Selection() []Cell {
	return append([]Cell(nil), h.selection...)
}

func (h *Hunt) Selecting() bool {
	return h.selecting
}

// Selected reports whether c is part of the selection.
func (h *Hunt) Selected(c Cell) bool {
	for _, s := range h.selection {
		if s == c {
			return true
		}
	}
	return false
}

// FoundAt reports whether c belongs to a found word.
func (h *Hunt) FoundAt(c Cell) bool {
	for _, w := range h.words {
		if w.Found && containsCell(w.Cells, c) {
			return true
		}
	}
	return false
}

// Hinted returns the index of the highlighted word, or -1.
func (h *Hunt) Hinted() int {
	return h.hint
}

// HintedAt reports whether c belongs to the highlighted word.
func (h *Hunt) HintedAt(c Cell) bool {
	return h.hint >= 0 && containsCell(h.words[h.hint].Cells, c)
}

func (h *Hunt) Status() Status {
	return h.status
}

func (h *Hunt) Score() int {
	return h.score
}

func (h *Hunt) Level() int {
	return h.level
}

func (h *Hunt) Hints() int {
	return h.hints
}

func (h *Hunt) TimeLeft() int {
	return h.timeLeft
}

// FoundTotal counts the words found over every level of the session.
func (h *Hunt) FoundTotal() int {
	return h.found
}

// Result summarizes the session for storage.
func (h *Hunt) Result() model.GameResult {
	return model.GameResult{
		Game:      model.GameHunt,
		Score:     h.score,
		Level:     h.level,
		Hits:      h.found,
		Misses:    h.misses,
		StartedAt: h.started,
		EndedAt:   h.ended,
	}
}

func containsCell(cells []Cell, c Cell) bool {
	for _, x := range cells {
		if x == c {
			return true
		}
	}
	return false
}

func reverseString(s string) string {
	r := []rune(s)
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
	return string(r)
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
