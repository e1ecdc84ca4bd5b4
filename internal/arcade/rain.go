package arcade

import (
	"sort"
	"time"

	"github.com/verte-zerg/kiril/internal/alphabet"
	"github.com/verte-zerg/kiril/internal/clock"
	"github.com/verte-zerg/kiril/internal/generator"
	"github.com/verte-zerg/kiril/internal/model"
)

const (
	DefaultLives = 3
	FieldWidth   = 800
	FieldHeight  = 600

	hitScore       = 10
	levelStep      = 100
	spawnMargin    = 50
	spawnY         = -40
	bottomSlack    = 20
	burstSize      = 8
	particleDecay  = 0.05
	initialSpawnMS = 2000
)

// HitColor is the color of particles spawned by a hit.
const HitColor = "#4eff4e"

// SpawnInterval returns the delay between spawns at level.
func SpawnInterval(level int) time.Duration {
	ms := 2000 - level*150
	if ms < 600 {
		ms = 600
	}
	return time.Duration(ms) * time.Millisecond
}

// FallSpeed returns the vertical speed at level in units per 16 ms frame.
func FallSpeed(level int) float64 {
	return 1.5 + float64(level)*0.3
}

// Status is the lifecycle of a game session.
type Status int

const (
	StatusReady Status = iota
	StatusPlaying
	StatusOver
)

// Item is a falling letter.
type Item struct {
	ID     int
	Glyph  string
	Answer string
	X, Y   float64
	Speed  float64
}

// Particle is a short-lived hit effect.
type Particle struct {
	X, Y   float64
	VX, VY float64
	Life   float64
	Color  string
}

// RainConfig configures a Rain session.
type RainConfig struct {
	Pool  []alphabet.MappingPair
	Lives int
	Rand  *generator.Generator
}

// Rain is the falling-letters game. It is driven either by Frame, which
// measures the time between frames, or directly by Tick in tests.
type Rain struct {
	pool  []alphabet.MappingPair
	lives int
	rnd   *generator.Generator
	loop  Loop

	status     Status
	score      int
	remaining  int
	level      int
	hits       int
	misses     int
	items      []Item
	particles  []Particle
	spawnTimer float64
	nextID     int
	width      float64
	height     float64
	startedAt  time.Time
	elapsed    time.Duration
}

// NewRain creates a session in the ready state.
func NewRain(cfg RainConfig) *Rain {
	r := &Rain{
		pool:   cfg.Pool,
		lives:  cfg.Lives,
		rnd:    cfg.Rand,
		width:  FieldWidth,
		height: FieldHeight,
		level:  1,
	}
	if len(r.pool) == 0 {
		r.pool = alphabet.LetterMapping()
	}
	if r.lives <= 0 {
		r.lives = DefaultLives
	}
	if r.rnd == nil {
		r.rnd = generator.New()
	}
	r.remaining = r.lives
	return r
}

// Start resets the session and begins a new run.
func (r *Rain) Start(now time.Time) clock.Token {
	r.status = StatusPlaying
	r.score = 0
	r.remaining = r.lives
	r.level = 1
	r.hits = 0
	r.misses = 0
	r.items = nil
	r.particles = nil
	r.spawnTimer = initialSpawnMS
	r.startedAt = now
	r.elapsed = 0
	return r.loop.Start(now)
}

// Stop ends the run. No further frames are accepted.
func (r *Rain) Stop() {
	r.loop.Stop()
	if r.status == StatusPlaying {
		r.status = StatusOver
	}
}

// Token returns the live frame token.
func (r *Rain) Token() clock.Token {
	return r.loop.Token()
}

// Frame advances the simulation to now and reports whether another frame
// should be scheduled.
func (r *Rain) Frame(tok clock.Token, now time.Time) bool {
	dt, ok := r.loop.Step(tok, now)
	if !ok {
		return false
	}
	r.Tick(dt)
	return r.loop.Running()
}

// Tick advances the simulation by dt.
func (r *Rain) Tick(dt time.Duration) {
	if r.status != StatusPlaying {
		return
	}
	r.elapsed += dt
	f := frames(dt)

	r.spawnTimer += float64(dt) / float64(time.Millisecond)
	if r.spawnTimer > float64(SpawnInterval(r.level)/time.Millisecond) {
		r.spawn()
		r.spawnTimer = 0
	}

	kept := r.items[:0]
	for _, it := range r.items {
		it.Y += it.Speed * f
		if it.Y > r.height+bottomSlack {
			r.remaining--
			r.misses++
			if r.remaining <= 0 {
				r.remaining = 0
				r.items = kept
				r.end()
				return
			}
			continue
		}
		kept = append(kept, it)
	}
	r.items = kept

	alive := r.particles[:0]
	for _, p := range r.particles {
		p.X += p.VX * f
		p.Y += p.VY * f
		p.Life -= particleDecay * f
		if p.Life > 0 {
			alive = append(alive, p)
		}
	}
	r.particles = alive
}

func (r *Rain) end() {
	r.status = StatusOver
	r.loop.Stop()
}

func (r *Rain) spawn() {
	if len(r.pool) == 0 || r.width <= 0 {
		return
	}
	pair := r.pool[r.rnd.Intn(len(r.pool))]
	span := r.width - spawnMargin*2
	if span < 0 {
		span = 0
	}
	r.nextID++
	r.items = append(r.items, Item{
		ID:     r.nextID,
		Glyph:  pair.Glyph(),
		Answer: pair.Answer(),
		X:      r.rnd.Float64()*span + spawnMargin,
		Y:      spawnY,
		Speed:  FallSpeed(r.level),
	})
}

// Press handles one typed character. The lowest matching item is hit.
func (r *Rain) Press(ch rune) bool {
	if r.status != StatusPlaying {
		return false
	}
	key := alphabet.Lower(string(ch))

	order := make([]int, len(r.items))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return r.items[order[a]].Y > r.items[order[b]].Y })

	for _, idx := range order {
		it := r.items[idx]
		if it.Answer != key {
			continue
		}
		prev := r.score
		r.score += hitScore
		if r.score/levelStep > prev/levelStep {
			r.level++
		}
		r.hits++
		r.burst(it.X, it.Y, HitColor)
		r.items = append(r.items[:idx], r.items[idx+1:]...)
		return true
	}
	return false
}

func (r *Rain) burst(x, y float64, color string) {
	for i := 0; i < burstSize; i++ {
		r.particles = append(r.particles, Particle{
			X:     x,
			Y:     y,
			VX:    (r.rnd.Float64() - 0.5) * 4,
			VY:    (r.rnd.Float64() - 0.5) * 4,
			Life:  1,
			Color: color,
		})
	}
}

// Resize sets the playing field size in virtual units.
func (r *Rain) Resize(width, height float64) {
	r.width = width
	r.height = height
}

// Status returns the session lifecycle state.
func (r *Rain) Status() Status {
	return r.status
}

func (r *Rain) Score() int {
	return r.score
}

// Lives returns the lives left.
func (r *Rain) Lives() int {
	return r.remaining
}

func (r *Rain) MaxLives() int {
	return r.lives
}

func (r *Rain) Level() int {
	return r.level
}

// Size returns the field size in virtual units.
func (r *Rain) Size() (float64, float64) {
	return r.width, r.height
}

// Items returns a copy of the falling items.
func (r *Rain) Items() []Item {
	return append([]Item(nil), r.items...)
}

// Particles returns a copy of the live particles.
func (r *Rain) Particles() []Particle {
	return append([]Particle(nil), r.particles...)
}

// Result summarizes the session for storage.
func (r *Rain) Result() model.GameResult {
	return model.GameResult{
		Game:      model.GameRain,
		Score:     r.score,
		Level:     r.level,
		Hits:      r.hits,
		Misses:    r.misses,
		StartedAt: r.startedAt,
		EndedAt:   r.startedAt.Add(r.elapsed),
	}
}
