// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"io"
	"math"
)

// Source generates interleaved float32 audio tick by tick. It satisfies
// audio.Source without importing it.
type Source struct {
	rate     int
	channels int
	ticks    int // total per channel
	pos      int
	wave     func(tick, channel int) float32

	Closed int // number of Close calls
}

// NewSource returns a Source of ticks samples per channel shaped by wave.
func NewSource(sampleRate, channels, ticks int, wave func(tick, channel int) float32) *Source {
	return &Source{rate: sampleRate, channels: channels, ticks: ticks, wave: wave}
}

func Silence(sampleRate, channels, ticks int) *Source {
	return Constant(sampleRate, channels, ticks, 0)
}

func Constant(sampleRate, channels, ticks int, v float32) *Source {
	return NewSource(sampleRate, channels, ticks, func(int, int) float32 { return v })
}

// Sine is a full scale tone of hz on every channel.
func Sine(sampleRate, channels, ticks int, hz float64) *Source {
	return NewSource(sampleRate, channels, ticks, func(tick, _ int) float32 {
		return float32(math.Sin(2 * math.Pi * hz * float64(tick) / float64(sampleRate)))
	})
}

func (s *Source) SampleRate() int { return s.rate }
func (s *Source) Channels() int   { return s.channels }
func (s *Source) BufSize() int    { return 4096 }

func (s *Source) Close() error {
	s.Closed++
	return nil
}

// ReadSamples writes whole ticks only. Like several real decoders it hands
// back the last samples together with io.EOF.
func (s *Source) ReadSamples(dst []float32) (int, error) {
	if s.pos >= s.ticks {
		return 0, io.EOF
	}

	ticks := min(len(dst)/s.channels, s.ticks-s.pos)
	for t := range ticks {
		for c := range s.channels {
			dst[t*s.channels+c] = s.wave(s.pos+t, c)
		}
	}
	s.pos += ticks

	if s.pos >= s.ticks {
		return ticks * s.channels, io.EOF
	}
	return ticks * s.channels, nil
}
