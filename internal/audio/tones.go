package audio

import (
	"encoding/binary"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// SampleRate of generated tones.
const SampleRate = beep.SampleRate(44100)

// Tone is a feedback sound.
type Tone int

const (
	ToneCorrect Tone = iota
	ToneWrong
	ToneLocked
	ToneGameOver
)

// sine is a fixed-length sine oscillator.
type sine struct {
	freq  float64
	phase float64
	left  int
}

func newSine(freq float64, d time.Duration) beep.Streamer {
	return &sine{freq: freq, left: SampleRate.N(d)}
}

func (s *sine) Stream(samples [][2]float64) (int, bool) {
	if s.left <= 0 {
		return 0, false
	}
	n := len(samples)
	if n > s.left {
		n = s.left
	}
	for i := 0; i < n; i++ {
		v := math.Sin(2 * math.Pi * s.phase)
		samples[i][0], samples[i][1] = v, v
		s.phase += s.freq / float64(SampleRate)
		s.phase -= math.Floor(s.phase)
	}
	s.left -= n
	return n, true
}

func (s *sine) Err() error { return nil }

// fade applies a linear release over the last part of a stream.
type fade struct {
	s        beep.Streamer
	pos      int
	total    int
	released int
}

func newFade(s beep.Streamer, d, release time.Duration) beep.Streamer {
	return &fade{s: s, total: SampleRate.N(d), released: SampleRate.N(release)}
}

func (f *fade) Stream(samples [][2]float64) (int, bool) {
	n, ok := f.s.Stream(samples)
	start := f.total - f.released
	for i := 0; i < n; i++ {
		if f.pos >= start && f.released > 0 {
			g := float64(f.total-f.pos) / float64(f.released)
			if g < 0 {
				g = 0
			}
			samples[i][0] *= g
			samples[i][1] *= g
		}
		f.pos++
	}
	return n, ok
}

func (f *fade) Err() error { return f.s.Err() }

type note struct {
	freq float64
	dur  time.Duration
}

func shaped(n note) beep.Streamer {
	return newFade(newSine(n.freq, n.dur), n.dur, n.dur/2)
}

var tones = map[Tone][]note{
	ToneCorrect:  {{freq: 880, dur: 70 * time.Millisecond}, {freq: 1318.51, dur: 90 * time.Millisecond}},
	ToneWrong:    {{freq: 196, dur: 160 * time.Millisecond}},
	ToneLocked:   {{freq: 659.25, dur: 80 * time.Millisecond}, {freq: 783.99, dur: 80 * time.Millisecond}, {freq: 1046.5, dur: 140 * time.Millisecond}},
	ToneGameOver: {{freq: 392, dur: 150 * time.Millisecond}, {freq: 293.66, dur: 250 * time.Millisecond}},
}

// Streamer builds the tone at the given volume in [0, 1].
func Streamer(t Tone, volume float64) beep.Streamer {
	notes, ok := tones[t]
	if !ok {
		return nil
	}
	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		parts = append(parts, shaped(n))
	}
	seq := beep.Seq(parts...)
	if volume <= 0 {
		return &effects.Volume{Streamer: seq, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: seq, Base: 2, Volume: math.Log2(volume)}
}

// Duration returns the length of a tone.
func Duration(t Tone) time.Duration {
	var d time.Duration
	for _, n := range tones[t] {
		d += n.dur
	}
	return d
}

// PCM renders a streamer to signed 16-bit little-endian stereo frames.
func PCM(s beep.Streamer) []byte {
	var out []byte
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			for c := 0; c < 2; c++ {
				v := buf[i][c]
				if v > 1 {
					v = 1
				} else if v < -1 {
					v = -1
				}
				out = binary.LittleEndian.AppendUint16(out, uint16(int16(v*math.MaxInt16)))
			}
		}
		if !ok {
			return out
		}
	}
}
