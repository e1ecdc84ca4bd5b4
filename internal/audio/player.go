package audio

import (
	"bytes"
	"context"
	"os/exec"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Backend is a command that plays raw s16le stereo PCM from stdin.
type Backend struct {
	Name string
	Path string
	Args []string
}

// DetectBackend finds the first available PCM player.
func DetectBackend() (Backend, bool) {
	candidates := []Backend{
		{Name: "pacat", Args: []string{"--raw", "--format=s16le", "--rate=44100", "--channels=2", "--playback"}},
		{Name: "pw-cat", Args: []string{"--playback", "--format=s16", "--rate=44100", "--channels=2", "-"}},
		{Name: "aplay", Args: []string{"-t", "raw", "-f", "S16_LE", "-r", "44100", "-c", "2", "-q"}},
	}
	for _, c := range candidates {
		if path, err := exec.LookPath(c.Name); err == nil {
			c.Path = path
			return c, true
		}
	}
	return Backend{}, false
}

// Pipe feeds PCM to a backend. It is replaced in tests.
type Pipe func(ctx context.Context, b Backend, pcm []byte) error

func execPipe(ctx context.Context, b Backend, pcm []byte) error {
	cmd := exec.CommandContext(ctx, b.Path, b.Args...)
	cmd.Stdin = bytes.NewReader(pcm)
	return cmd.Run()
}

// Player plays feedback tones. Without a backend, or when disabled, it is
// silent.
type Player struct {
	backend Backend
	enabled bool
	volume  float64
	pipe    Pipe
	limiter *rate.Limiter
	log     *zap.Logger

	mu    sync.Mutex
	cache map[Tone][]byte
}

// NewPlayer creates a player on the detected backend.
func NewPlayer(enabled bool, volume float64, log *zap.Logger) *Player {
	b, ok := DetectBackend()
	if log == nil {
		log = zap.NewNop()
	}
	if !ok && enabled {
		log.Info("no audio backend found, tones disabled")
	}
	return newPlayer(b, enabled && ok, volume, execPipe, log)
}

func newPlayer(b Backend, enabled bool, volume float64, pipe Pipe, log *zap.Logger) *Player {
	return &Player{
		backend: b,
		enabled: enabled,
		volume:  volume,
		pipe:    pipe,
		limiter: rate.NewLimiter(rate.Every(50*time.Millisecond), 4),
		log:     log,
		cache:   map[Tone][]byte{},
	}
}

// Enabled reports whether tones are audible.
func (p *Player) Enabled() bool {
	return p != nil && p.enabled
}

// Play starts t in the background and reports whether it was started.
func (p *Player) Play(t Tone) bool {
	if !p.Enabled() || !p.limiter.Allow() {
		return false
	}
	pcm := p.render(t)
	if len(pcm) == 0 {
		return false
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), Duration(t)+2*time.Second)
		defer cancel()
		if err := p.pipe(ctx, p.backend, pcm); err != nil {
			p.log.Debug("tone playback failed", zap.String("backend", p.backend.Name), zap.Error(err))
		}
	}()
	return true
}

func (p *Player) render(t Tone) []byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	if pcm, ok := p.cache[t]; ok {
		return pcm
	}
	s := Streamer(t, p.volume)
	if s == nil {
		return nil
	}
	pcm := PCM(s)
	p.cache[t] = pcm
	return pcm
}
