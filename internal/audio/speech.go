// Package audio provides letter pronunciation through an external speech
// command and short feedback tones.
package audio

import (
	"context"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Speaker pronounces text. Calls return immediately; failures are silent.
type Speaker interface {
	Speak(text, locale string)
}

// Nop is a Speaker that does nothing.
type Nop struct{}

// Speak does nothing.
func (Nop) Speak(string, string) {}

const speechTimeout = 5 * time.Second

// Runner executes a command. It is replaced in tests.
type Runner func(ctx context.Context, name string, args ...string) error

func execRunner(ctx context.Context, name string, args ...string) error {
	return exec.CommandContext(ctx, name, args...).Run()
}

// ExecSpeaker runs a speech command such as "espeak-ng -v {locale} {text}".
// Requests beyond the rate limit are dropped.
type ExecSpeaker struct {
	template []string
	limiter  *rate.Limiter
	run      Runner
	log      *zap.Logger
}

// NewExecSpeaker parses command and allows one utterance per interval with
// a small burst. An empty command yields a Nop speaker.
func NewExecSpeaker(command string, interval time.Duration, log *zap.Logger) Speaker {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return Nop{}
	}
	if interval <= 0 {
		interval = 300 * time.Millisecond
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &ExecSpeaker{
		template: fields,
		limiter:  rate.NewLimiter(rate.Every(interval), 2),
		run:      execRunner,
		log:      log,
	}
}

// WithRunner replaces the command runner.
func (s *ExecSpeaker) WithRunner(run Runner) *ExecSpeaker {
	s.run = run
	return s
}

// Command expands the template for text and locale.
func (s *ExecSpeaker) Command(text, locale string) (string, []string) {
	args := make([]string, 0, len(s.template)-1)
	for _, f := range s.template[1:] {
		f = strings.ReplaceAll(f, "{locale}", locale)
		f = strings.ReplaceAll(f, "{text}", text)
		args = append(args, f)
	}
	return s.template[0], args
}

// Speak starts the speech command in the background.
func (s *ExecSpeaker) Speak(text, locale string) {
	if strings.TrimSpace(text) == "" || !s.limiter.Allow() {
		return
	}
	name, args := s.Command(text, locale)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), speechTimeout)
		defer cancel()
		if err := s.run(ctx, name, args...); err != nil {
			s.log.Debug("speech command failed", zap.String("cmd", name), zap.Error(err))
		}
	}()
}
