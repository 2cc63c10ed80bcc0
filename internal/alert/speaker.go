package alert

import (
	"fmt"
	"math"
	"os"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
)

// Speaker plays through the system audio device.
// The device is opened lazily on the first alert.
type Speaker struct {
	sampleRate beep.SampleRate
	once       sync.Once
	initErr    error
}

// NewSpeaker creates a speaker backend at the given sample rate
func NewSpeaker(sampleRate int) *Speaker {
	if sampleRate <= 0 {
		sampleRate = 44100
	}
	return &Speaker{sampleRate: beep.SampleRate(sampleRate)}
}

func (s *Speaker) init() error {
	s.once.Do(func() {
		s.initErr = speaker.Init(s.sampleRate, s.sampleRate.N(time.Second/10))
	})
	return s.initErr
}

// PlayFile decodes a WAV file and queues it on the speaker
func (s *Speaker) PlayFile(path string) error {
	if err := s.init(); err != nil {
		return fmt.Errorf("%w: audio device: %v", ErrPlayback, err)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPlayback, err)
	}
	defer f.Close()

	streamer, format, err := wav.Decode(f)
	if err != nil {
		return fmt.Errorf("%w: decode %s: %v", ErrPlayback, path, err)
	}
	defer streamer.Close()

	// Buffer the whole asset so the file can be closed right away
	buffer := beep.NewBuffer(format)
	buffer.Append(streamer)
	if buffer.Len() == 0 {
		return fmt.Errorf("%w: %s is empty", ErrPlayback, path)
	}

	var out beep.Streamer = buffer.Streamer(0, buffer.Len())
	if format.SampleRate != s.sampleRate {
		out = beep.Resample(4, format.SampleRate, s.sampleRate, out)
	}

	speaker.Play(out)
	return nil
}

// PlayTone synthesizes and queues a sine tone
func (s *Speaker) PlayTone(tone Tone) error {
	if err := s.init(); err != nil {
		return fmt.Errorf("%w: audio device: %v", ErrSynthesis, err)
	}
	speaker.Play(toneStreamer(s.sampleRate, tone))
	return nil
}

// toneStreamer returns a finite, gain-scaled sine wave
func toneStreamer(sr beep.SampleRate, tone Tone) beep.Streamer {
	return &effects.Gain{
		Streamer: beep.Take(sr.N(tone.Duration), sine(sr, tone.Frequency)),
		Gain:     tone.Gain - 1, // effects.Gain scales by 1+Gain
	}
}

func sine(sr beep.SampleRate, freq float64) beep.Streamer {
	step := 2 * math.Pi * freq / float64(sr)
	var pos int
	return beep.StreamerFunc(func(samples [][2]float64) (n int, ok bool) {
		for i := range samples {
			v := math.Sin(step * float64(pos))
			samples[i][0] = v
			samples[i][1] = v
			pos++
		}
		return len(samples), true
	})
}
