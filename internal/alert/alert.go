// Package alert sounds the completion alarm.
//
// Alerting is best-effort. The configured sound file is tried first, a
// synthesized tone second, and if both fail the alert stays silent.
// Nothing in here ever panics into the caller.
package alert

import (
	"errors"
	"fmt"
	"io"
	"log"
	"sync"
	"time"
)

var (
	// ErrPlayback means the primary sound could not be played
	ErrPlayback = errors.New("alert playback failed")
	// ErrSynthesis means the fallback tone could not be played
	ErrSynthesis = errors.New("alert tone synthesis failed")
)

// Tone describes the fallback beep
type Tone struct {
	Frequency float64       // Hz
	Gain      float64       // linear, 0..1
	Duration  time.Duration
}

// DefaultTone is a short, quiet 880 Hz sine
var DefaultTone = Tone{
	Frequency: 880,
	Gain:      0.18,
	Duration:  500 * time.Millisecond,
}

// Player is an audio backend
type Player interface {
	PlayFile(path string) error
	PlayTone(tone Tone) error
}

// Outcome reports which stage of the fallback chain produced sound
type Outcome int

const (
	OutcomeSilent Outcome = iota
	OutcomePrimary
	OutcomeTone
)

func (o Outcome) String() string {
	switch o {
	case OutcomePrimary:
		return "primary"
	case OutcomeTone:
		return "tone"
	default:
		return "silent"
	}
}

// Trigger fires alerts through a Player
type Trigger struct {
	player    Player
	soundFile string
	tone      Tone
	logger    *log.Logger
	wg        sync.WaitGroup
}

// NewTrigger creates a trigger. An empty soundFile skips straight to the tone.
// A nil player makes every alert silent.
func NewTrigger(player Player, soundFile string, tone Tone, logger *log.Logger) *Trigger {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Trigger{
		player:    player,
		soundFile: soundFile,
		tone:      tone,
		logger:    logger,
	}
}

// Fire starts the alert without blocking
func (t *Trigger) Fire() {
	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		t.Play()
	}()
}

// Wait blocks until every fired alert has finished its attempts
func (t *Trigger) Wait() {
	t.wg.Wait()
}

// Play runs the fallback chain synchronously
func (t *Trigger) Play() Outcome {
	if t.player == nil {
		return OutcomeSilent
	}

	err := guard(ErrPlayback, func() error {
		if t.soundFile == "" {
			return fmt.Errorf("%w: no sound file configured", ErrPlayback)
		}
		return t.player.PlayFile(t.soundFile)
	})
	if err == nil {
		return OutcomePrimary
	}
	t.logger.Printf("alert: %v, falling back to tone", err)

	err = guard(ErrSynthesis, func() error {
		return t.player.PlayTone(t.tone)
	})
	if err == nil {
		return OutcomeTone
	}
	t.logger.Printf("alert: %v, alert is visual only", err)

	return OutcomeSilent
}

// guard converts a panic in fn into an error wrapping kind
func guard(kind error, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: panic: %v", kind, r)
		}
	}()
	if err = fn(); err != nil && !errors.Is(err, kind) {
		err = fmt.Errorf("%w: %v", kind, err)
	}
	return err
}
