// Package matching implements the rope matching puzzle: Cyrillic cards on
// the left are tied to their Turkish letters on the right.
package matching

import (
	"errors"
	"sort"

	"github.com/verte-zerg/kiril/internal/alphabet"
	"github.com/verte-zerg/kiril/internal/generator"
)

// DefaultPairs is the number of cards per column.
const DefaultPairs = 5

// MaxPairs bounds the cards per column so each card keeps a single digit.
const MaxPairs = 9

var (
	ErrNotStarted = errors.New("matching: puzzle not started")
	ErrReadOnly   = errors.New("matching: puzzle already verified")
	ErrNotReady   = errors.New("matching: every card must be connected")
	ErrNoCard     = errors.New("matching: card index out of range")
	ErrNoDrag     = errors.New("matching: no drag in progress")
)

// State is the puzzle lifecycle.
type State int

const (
	NotStarted State = iota
	InProgress
	Verified
)

func (s State) String() string {
	switch s {
	case NotStarted:
		return "not started"
	case InProgress:
		return "in progress"
	case Verified:
		return "verified"
	default:
		return "unknown"
	}
}

// LeftCard shows a Cyrillic letter.
type LeftCard struct {
	Cyrillic string
	Turkish  string
}

// RightCard shows a Turkish letter. Origin is the left index it belongs to.
type RightCard struct {
	Turkish string
	Origin  int
}

// Drag is a rope being pulled from a left card.
type Drag struct {
	Left int
	At   Point
}

// Result tallies a verification.
type Result struct {
	Correct     int
	Incorrect   int
	Unconnected int
	Total       int
}

// Options configures a puzzle; zero fields take defaults.
type Options struct {
	Pool  []alphabet.MappingPair
	Pairs int
	Rand  *generator.Generator
}

// Puzzle holds one matching round.
type Puzzle struct {
	pool  []alphabet.MappingPair
	pairs int
	rnd   *generator.Generator

	state  State
	left   []LeftCard
	right  []RightCard
	links  map[int]int
	drag   *Drag
	result Result
}

// New creates a puzzle in the NotStarted state.
func New(opts Options) *Puzzle {
	p := &Puzzle{pool: opts.Pool, pairs: opts.Pairs, rnd: opts.Rand}
	if len(p.pool) == 0 {
		p.pool = alphabet.LetterMapping()
	}
	if p.pairs <= 0 {
		p.pairs = DefaultPairs
	}
	p.pairs = min(p.pairs, MaxPairs)
	if p.rnd == nil {
		p.rnd = generator.New()
	}
	p.links = map[int]int{}
	return p
}

// Start deals a new round.
func (p *Puzzle) Start() {
	picked := generator.Sample(p.rnd, p.pool, p.pairs)
	p.left = make([]LeftCard, len(picked))
	right := make([]RightCard, len(picked))
	for i, pair := range picked {
		p.left[i] = LeftCard{Cyrillic: pair.Cyrillic, Turkish: pair.Turkish}
		right[i] = RightCard{Turkish: pair.Turkish, Origin: i}
	}
	p.right = generator.Shuffle(p.rnd, right)
	p.links = map[int]int{}
	p.drag = nil
	p.result = Result{}
	p.state = InProgress
}

// Restart deals a new round after verification.
func (p *Puzzle) Restart() {
	p.Start()
}

// Finish leaves the puzzle and returns to NotStarted.
func (p *Puzzle) Finish() {
	p.state = NotStarted
	p.left = nil
	p.right = nil
	p.links = map[int]int{}
	p.drag = nil
	p.result = Result{}
}

func (p *Puzzle) editable() error {
	switch p.state {
	case NotStarted:
		return ErrNotStarted
	case Verified:
		return ErrReadOnly
	}
	return nil
}

// BeginDrag picks up the rope of a left card, releasing its current link.
func (p *Puzzle) BeginDrag(left int, at Point) error {
	if err := p.editable(); err != nil {
		return err
	}
	if left < 0 || left >= len(p.left) {
		return ErrNoCard
	}
	delete(p.links, left)
	p.drag = &Drag{Left: left, At: at}
	return nil
}

// MoveDrag follows the pointer.
func (p *Puzzle) MoveDrag(at Point) bool {
	if p.drag == nil {
		return false
	}
	p.drag.At = at
	return true
}

// EndDrag drops the rope at at. When at falls inside one of rightBoxes the
// rope is tied to that card and its index is returned.
func (p *Puzzle) EndDrag(at Point, rightBoxes []Rect) (int, error) {
	if p.drag == nil {
		return -1, ErrNoDrag
	}
	left := p.drag.Left
	p.drag = nil
	if err := p.editable(); err != nil {
		return -1, err
	}
	for i, box := range rightBoxes {
		if i >= len(p.right) {
			break
		}
		if box.Contains(at) {
			p.tie(left, i)
			return i, nil
		}
	}
	return -1, nil
}

// CancelDrag drops the rope without tying it.
func (p *Puzzle) CancelDrag() {
	p.drag = nil
}

// Connect ties left to right directly.
func (p *Puzzle) Connect(left, right int) error {
	if err := p.editable(); err != nil {
		return err
	}
	if left < 0 || left >= len(p.left) || right < 0 || right >= len(p.right) {
		return ErrNoCard
	}
	p.tie(left, right)
	return nil
}

// Disconnect releases the link of a left card.
func (p *Puzzle) Disconnect(left int) error {
	if err := p.editable(); err != nil {
		return err
	}
	delete(p.links, left)
	return nil
}

// tie links left to right; a right card holds at most one rope.
func (p *Puzzle) tie(left, right int) {
	for l, r := range p.links {
		if r == right {
			delete(p.links, l)
		}
	}
	p.links[left] = right
}

// Complete reports whether every left card is linked.
func (p *Puzzle) Complete() bool {
	return p.state == InProgress && len(p.left) > 0 && len(p.links) == len(p.left)
}

// Verify grades the round and reports one outcome per linked card.
func (p *Puzzle) Verify(record func(isCorrect bool)) (Result, error) {
	if p.state == Verified {
		return p.result, ErrReadOnly
	}
	if p.state != InProgress {
		return Result{}, ErrNotStarted
	}
	if !p.Complete() {
		return Result{}, ErrNotReady
	}
	res := Result{Total: len(p.left)}
	for i := range p.left {
		r, ok := p.links[i]
		switch {
		case !ok:
			res.Unconnected++
		case p.right[r].Origin == i:
			res.Correct++
		default:
			res.Incorrect++
		}
	}
	if record != nil {
		for i := 0; i < res.Correct; i++ {
			record(true)
		}
		for i := 0; i < res.Incorrect; i++ {
			record(false)
		}
	}
	p.drag = nil
	p.result = res
	p.state = Verified
	return res, nil
}

func (p *Puzzle) State() State {
	return p.state
}

// Left returns the left column.
func (p *Puzzle) Left() []LeftCard {
	return append([]LeftCard(nil), p.left...)
}

// Right returns the right column.
func (p *Puzzle) Right() []RightCard {
	return append([]RightCard(nil), p.right...)
}

// Link returns the right card tied to left.
func (p *Puzzle) Link(left int) (int, bool) {
	r, ok := p.links[left]
	return r, ok
}

// Links returns a copy of the left to right mapping.
func (p *Puzzle) Links() map[int]int {
	out := make(map[int]int, len(p.links))
	for l, r := range p.links {
		out[l] = r
	}
	return out
}

// Dragging returns the active drag.
func (p *Puzzle) Dragging() (Drag, bool) {
	if p.drag == nil {
		return Drag{}, false
	}
	return *p.drag, true
}

// Result returns the last verification.
func (p *Puzzle) Result() Result {
	return p.result
}

// IsCorrect reports whether left is tied to its own letter.
func (p *Puzzle) IsCorrect(left int) bool {
	r, ok := p.links[left]
	return ok && p.right[r].Origin == left
}

// RopeKind tells how a rope is drawn.
type RopeKind int

const (
	RopeDangling RopeKind = iota
	RopeLinked
	RopeDragging
)

// Rope is one drawable rope.
type Rope struct {
	Left  int
	Kind  RopeKind
	Curve Curve
}

// Ropes lays out every rope given the anchor points of both columns.
func (p *Puzzle) Ropes(leftAnchors, rightAnchors []Point) []Rope {
	ropes := make([]Rope, 0, len(p.left))
	for i := range p.left {
		if i >= len(leftAnchors) {
			break
		}
		start := leftAnchors[i]
		switch r, linked := p.links[i]; {
		case p.drag != nil && p.drag.Left == i:
			ropes = append(ropes, Rope{Left: i, Kind: RopeDragging, Curve: RopeCurve(start, p.drag.At, SagDragging)})
		case linked && r < len(rightAnchors):
			ropes = append(ropes, Rope{Left: i, Kind: RopeLinked, Curve: RopeCurve(start, rightAnchors[r], SagConnected)})
		default:
			ropes = append(ropes, Rope{Left: i, Kind: RopeDangling, Curve: DanglingCurve(start, DanglingLength)})
		}
	}
	sort.SliceStable(ropes, func(a, b int) bool { return ropes[a].Kind < ropes[b].Kind })
	return ropes
}
