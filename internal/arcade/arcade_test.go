package arcade

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/kiril/internal/alphabet"
	"github.com/verte-zerg/kiril/internal/generator"
	"github.com/verte-zerg/kiril/internal/model"
)

var epoch = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

func newTestRain(t *testing.T) *Rain {
	t.Helper()
	r := NewRain(RainConfig{Rand: generator.NewSeeded(7)})
	r.Start(epoch)
	r.spawnTimer = 0
	return r
}

func TestSpawnInterval(t *testing.T) {
	require.Equal(t, 1850*time.Millisecond, SpawnInterval(1))
	require.Equal(t, 1700*time.Millisecond, SpawnInterval(2))
	require.Equal(t, 650*time.Millisecond, SpawnInterval(9))
	require.Equal(t, 600*time.Millisecond, SpawnInterval(10))
	require.Equal(t, 600*time.Millisecond, SpawnInterval(40))
	require.InDelta(t, 1.8, FallSpeed(1), 1e-9)
}

func TestRainFrameRateIndependence(t *testing.T) {
	fine := newTestRain(t)
	coarse := newTestRain(t)
	for _, r := range []*Rain{fine, coarse} {
		r.items = []Item{{ID: 1, Glyph: "А", Answer: "a", X: 100, Y: 0, Speed: FallSpeed(1)}}
	}

	step := time.Second / 60
	for i := 0; i < 60; i++ {
		fine.Tick(step)
	}
	for i := 0; i < 10; i++ {
		coarse.Tick(100 * time.Millisecond)
	}

	require.Len(t, fine.Items(), 1)
	require.Len(t, coarse.Items(), 1)
	require.InDelta(t, coarse.Items()[0].Y, fine.Items()[0].Y, 1e-3)
	require.InDelta(t, FallSpeed(1)*1000/16, coarse.Items()[0].Y, 1e-6)
}

func TestRainSpawnsAfterInterval(t *testing.T) {
	r := newTestRain(t)
	r.Tick(1850 * time.Millisecond)
	require.Empty(t, r.Items(), "interval must be exceeded, not reached")
	r.Tick(time.Millisecond)
	items := r.Items()
	require.Len(t, items, 1)
	require.GreaterOrEqual(t, items[0].X, float64(spawnMargin))
	require.LessOrEqual(t, items[0].X, float64(FieldWidth-spawnMargin))
	require.InDelta(t, FallSpeed(1), items[0].Speed, 1e-9)
}

func TestRainFirstFrameSpawnsImmediately(t *testing.T) {
	r := NewRain(RainConfig{Rand: generator.NewSeeded(3)})
	tok := r.Start(epoch)
	require.True(t, r.Frame(tok, epoch.Add(FrameInterval)))
	require.Len(t, r.Items(), 1)
}

func TestRainLevelUpEveryHundred(t *testing.T) {
	r := newTestRain(t)
	for i := 0; i < 10; i++ {
		r.items = append(r.items, Item{ID: i + 1, Glyph: "А", Answer: "a", Y: float64(i)})
	}
	for i := 0; i < 9; i++ {
		require.True(t, r.Press('a'))
		require.Equal(t, 1, r.Level())
	}
	require.True(t, r.Press('A'))
	require.Equal(t, 100, r.Score())
	require.Equal(t, 2, r.Level())
	require.Equal(t, 1700*time.Millisecond, SpawnInterval(r.Level()))
	require.Len(t, r.Particles(), 10*burstSize)

	r.Tick(1700 * time.Millisecond)
	require.Empty(t, r.Items())
	r.Tick(time.Millisecond)
	require.Len(t, r.Items(), 1)
	require.InDelta(t, FallSpeed(2), r.Items()[0].Speed, 1e-9)
}

func TestRainPressHitsLowestItem(t *testing.T) {
	r := newTestRain(t)
	r.items = []Item{
		{ID: 1, Answer: "a", Y: 50},
		{ID: 2, Answer: "a", Y: 300},
		{ID: 3, Answer: "b", Y: 500},
	}
	require.True(t, r.Press('a'))
	ids := []int{}
	for _, it := range r.Items() {
		ids = append(ids, it.ID)
	}
	require.Equal(t, []int{1, 3}, ids)
	require.False(t, r.Press('x'))
	require.Equal(t, 10, r.Score())
}

func TestRainTurkishKeys(t *testing.T) {
	r := newTestRain(t)
	pool := alphabet.MappingFor([]string{"И", "Ы"})
	require.Len(t, pool, 2)
	for i, p := range pool {
		r.items = append(r.items, Item{ID: i + 1, Glyph: p.Glyph(), Answer: p.Answer()})
	}
	require.True(t, r.Press('İ'))
	require.Len(t, r.Items(), 1)
	require.Equal(t, "Ы", r.Items()[0].Glyph)
	require.True(t, r.Press('I'))
	require.Empty(t, r.Items())
}

func TestRainParticlesDecay(t *testing.T) {
	r := newTestRain(t)
	r.burst(10, 10, HitColor)
	require.Len(t, r.Particles(), burstSize)
	r.Tick(19 * FrameInterval)
	require.Len(t, r.Particles(), burstSize)
	r.Tick(2 * FrameInterval)
	require.Empty(t, r.Particles())
}

func TestRainGameOverStopsLoop(t *testing.T) {
	r := NewRain(RainConfig{Rand: generator.NewSeeded(1)})
	tok := r.Start(epoch)
	r.spawnTimer = 0
	r.items = []Item{
		{ID: 1, Answer: "a", Y: FieldHeight + 19, Speed: 2},
		{ID: 2, Answer: "b", Y: FieldHeight + 19, Speed: 2},
		{ID: 3, Answer: "c", Y: FieldHeight + 19, Speed: 2},
		{ID: 4, Answer: "d", Y: 0, Speed: 2},
	}

	require.False(t, r.Frame(tok, epoch.Add(FrameInterval)))
	require.Equal(t, StatusOver, r.Status())
	require.Equal(t, 0, r.Lives())

	before := r.Items()
	require.False(t, r.Frame(tok, epoch.Add(2*FrameInterval)), "no frame may run after game over")
	require.Equal(t, before, r.Items())
	require.False(t, r.Press('d'))

	res := r.Result()
	require.Equal(t, model.GameRain, res.Game)
	require.Equal(t, 3, res.Misses)
	require.Equal(t, epoch.Add(FrameInterval), res.EndedAt)
}

func TestRainStaleTokenRejected(t *testing.T) {
	r := NewRain(RainConfig{Rand: generator.NewSeeded(1)})
	old := r.Start(epoch)
	r.Stop()
	require.False(t, r.Frame(old, epoch.Add(FrameInterval)))
	require.Equal(t, StatusOver, r.Status())

	fresh := r.Start(epoch.Add(time.Second))
	require.NotEqual(t, old, fresh)
	require.False(t, r.Frame(old, epoch.Add(time.Second+FrameInterval)))
	require.True(t, r.Frame(fresh, epoch.Add(time.Second+FrameInterval)))
	require.Equal(t, 3, r.Lives())
}

func TestLoopStep(t *testing.T) {
	var l Loop
	tok := l.Start(epoch)
	dt, ok := l.Step(tok, epoch.Add(40*time.Millisecond))
	require.True(t, ok)
	require.Equal(t, 40*time.Millisecond, dt)
	dt, ok = l.Step(tok, epoch.Add(30*time.Millisecond))
	require.True(t, ok)
	require.Zero(t, dt)
	l.Stop()
	l.Stop()
	_, ok = l.Step(tok, epoch.Add(time.Second))
	require.False(t, ok)
	require.False(t, l.Running())
}

func newTestBlitz(t *testing.T, pool []alphabet.MappingPair, outcomes *[]bool) *Blitz {
	t.Helper()
	return NewBlitz(BlitzConfig{
		Pool: pool,
		Rand: generator.NewSeeded(11),
		OnPractice: func(ok bool) {
			*outcomes = append(*outcomes, ok)
		},
	})
}

func TestBlitzDeckFromShortPoolHoldsTwoCopies(t *testing.T) {
	var outcomes []bool
	b := newTestBlitz(t, alphabet.MappingFor([]string{"А", "Б", "В"}), &outcomes)
	b.Start(epoch)
	deck := b.Deck()
	require.Len(t, deck, 6)
	counts := map[string]int{}
	for _, c := range deck {
		counts[c.Glyph]++
	}
	require.Len(t, counts, 3)
	for glyph, n := range counts {
		require.Equal(t, 2, n, glyph)
	}
	require.Equal(t, DefaultBlitzSeconds, b.TimeLeft())
}

func TestBlitzScoringAndFeedbackLock(t *testing.T) {
	var outcomes []bool
	b := newTestBlitz(t, nil, &outcomes)
	b.Start(epoch)

	answer := func() rune {
		c, ok := b.Card()
		require.True(t, ok)
		return []rune(c.Answer)[0]
	}

	for i := 0; i < 3; i++ {
		tok, ok := b.Press(answer())
		require.True(t, ok)
		_, again := b.Press(answer())
		require.False(t, again, "input is locked while feedback shows")
		b.Next(tok, epoch)
	}
	require.Equal(t, 10+12+14, b.Score())
	require.Equal(t, 3, b.Combo())

	tok, ok := b.Press('0')
	require.True(t, ok)
	b.Next(tok, epoch)
	require.Zero(t, b.Combo())
	require.Len(t, b.Mistakes(), 1)
	require.Equal(t, "0", b.Mistakes()[0].Actual)
	require.Equal(t, 4, b.Position())

	b.Next(tok, epoch)
	require.Equal(t, 4, b.Position(), "a consumed feedback token must not advance twice")

	require.Equal(t, []bool{true, true, true, false}, outcomes)
	require.Equal(t, 75, b.Accuracy())
}

func TestBlitzFinishBonusWithinRange(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		var outcomes []bool
		b := NewBlitz(BlitzConfig{
			DeckSize:   2,
			Rand:       generator.NewSeeded(seed),
			OnPractice: func(ok bool) { outcomes = append(outcomes, ok) },
		})
		b.Start(epoch)
		for b.Status() == StatusPlaying {
			c, _ := b.Card()
			tok, ok := b.Press([]rune(c.Answer)[0])
			require.True(t, ok)
			b.Next(tok, epoch.Add(time.Second))
		}
		base := 10 + 12
		require.GreaterOrEqual(t, b.Score(), base)
		require.LessOrEqual(t, b.Score(), base+maxBonus)
		require.Equal(t, b.Score()-base, b.Bonus())
		require.Equal(t, epoch.Add(time.Second), b.Result().EndedAt)
	}
}

func TestBlitzNoBonusWithoutCorrectAnswers(t *testing.T) {
	var outcomes []bool
	b := NewBlitz(BlitzConfig{DeckSize: 1, Rand: generator.NewSeeded(5), OnPractice: func(ok bool) { outcomes = append(outcomes, ok) }})
	b.Start(epoch)
	tok, ok := b.Press('0')
	require.True(t, ok)
	b.Next(tok, epoch)
	require.Equal(t, StatusOver, b.Status())
	require.Zero(t, b.Score())
	require.Zero(t, b.Bonus())
}

func TestBlitzCountdown(t *testing.T) {
	var outcomes []bool
	b := NewBlitz(BlitzConfig{Seconds: 3, Rand: generator.NewSeeded(2), OnPractice: func(ok bool) { outcomes = append(outcomes, ok) }})
	tok := b.Start(epoch)
	require.True(t, b.Second(tok, epoch.Add(time.Second)))
	require.True(t, b.Second(tok, epoch.Add(2*time.Second)))
	require.False(t, b.Second(tok, epoch.Add(3*time.Second)))
	require.Equal(t, StatusOver, b.Status())
	require.Zero(t, b.TimeLeft())
	require.False(t, b.Second(tok, epoch.Add(4*time.Second)))
	_, ok := b.Press('a')
	require.False(t, ok)
}

func TestBlitzStopCancelsTimers(t *testing.T) {
	var outcomes []bool
	b := newTestBlitz(t, nil, &outcomes)
	countdown := b.Start(epoch)
	c, _ := b.Card()
	fb, ok := b.Press([]rune(c.Answer)[0])
	require.True(t, ok)

	b.Stop(epoch.Add(time.Second))
	b.Stop(epoch.Add(2 * time.Second))
	require.Equal(t, StatusOver, b.Status())
	require.False(t, b.Second(countdown, epoch.Add(time.Second)))
	b.Next(fb, epoch)
	require.Zero(t, b.Position())
	require.Equal(t, epoch.Add(time.Second), b.Result().EndedAt)

	restarted := b.Start(epoch.Add(time.Minute))
	require.NotEqual(t, countdown, restarted)
	require.False(t, b.Second(countdown, epoch.Add(time.Minute+time.Second)))
	require.True(t, b.Second(restarted, epoch.Add(time.Minute+time.Second)))
}
