// SPDX-License-Identifier: EPL-2.0

package flac

import (
	"fmt"
	"io"

	"github.com/mewkiz/flac"
	"github.com/mewkiz/flac/frame"

	"github.com/ik5/mp3bridge/audio"
)

// frameParser is the part of flac.Stream the source uses.
type frameParser interface {
	ParseNext() (*frame.Frame, error)
}

type source struct {
	stream     frameParser
	closer     io.Closer
	sampleRate int
	channels   int
	bitDepth   int // from STREAMINFO, used when a frame does not carry one

	buf     []float32
	pending []float32 // unread tail of buf
	eof     bool
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) BufSize() int    { return 4096 * s.channels }

// Close ends the stream, which also closes the reader when it is an
// io.Closer.
func (s *source) Close() error {
	if s.closer == nil {
		return nil
	}
	if err := s.closer.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

func (s *source) ReadSamples(dst []float32) (int, error) {
	want := len(dst) - len(dst)%s.channels

	n := 0
	for n < want {
		if len(s.pending) == 0 {
			if s.eof {
				break
			}
			if err := s.next(); err != nil {
				if n > 0 {
					return n, nil
				}
				return 0, err
			}
			continue
		}

		c := copy(dst[n:want], s.pending)
		s.pending = s.pending[c:]
		n += c
	}

	if n == 0 && want > 0 && s.eof {
		return 0, io.EOF
	}
	return n, nil
}

// next interleaves the following frame into pending.
func (s *source) next() error {
	f, err := s.stream.ParseNext()
	if err == io.EOF {
		s.eof = true
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCorruptFrame, err)
	}

	if len(f.Subframes) != s.channels {
		return fmt.Errorf("%w: %d channels in a %d channel stream", ErrCorruptFrame, len(f.Subframes), s.channels)
	}

	bits := int(f.BitsPerSample)
	if bits == 0 {
		bits = s.bitDepth
	}
	scale := 1 / float32(int64(1)<<(bits-1))

	ticks := len(f.Subframes[0].Samples)
	if cap(s.buf) < ticks*s.channels {
		s.buf = make([]float32, ticks*s.channels)
	}
	buf := s.buf[:ticks*s.channels]

	for c, sub := range f.Subframes {
		if len(sub.Samples) < ticks {
			return fmt.Errorf("%w: short subframe %d", ErrCorruptFrame, c)
		}
		for t, v := range sub.Samples[:ticks] {
			buf[t*s.channels+c] = float32(v) * scale
		}
	}

	s.pending = buf
	return nil
}

// Decoder reads FLAC streams sequentially; the reader does not need to
// seek.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	stream, err := flac.New(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotFlac, err)
	}

	info := stream.Info
	if info.NChannels == 0 || info.SampleRate == 0 {
		_ = stream.Close()
		return nil, fmt.Errorf("%w: %d channels at %d Hz", ErrNotFlac, info.NChannels, info.SampleRate)
	}

	src := &source{
		stream:     stream,
		closer:     stream,
		sampleRate: int(info.SampleRate),
		channels:   int(info.NChannels),
		bitDepth:   int(info.BitsPerSample),
	}
	return src, nil
}
