// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"context"
	"fmt"
	"io"

	"github.com/ik5/mp3bridge/audio"
	"github.com/ik5/mp3bridge/stream"
	"github.com/ik5/mp3bridge/utils"
)

type source struct {
	dec     *Decoder
	in      stream.Stream
	closer  io.Closer
	format  Format
	pending []int16
	err     error
}

func (s *source) SampleRate() int { return s.format.SampleRate }
func (s *source) Channels() int   { return s.format.Channels }
func (s *source) BufSize() int    { return maxFrameBytes / SampleSize }

// Close ends the decoder and closes the reader when it is an io.Closer.
func (s *source) Close() error {
	_ = s.dec.Close()
	if s.closer == nil {
		return nil
	}
	if err := s.closer.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

func (s *source) ReadSamples(dst []float32) (int, error) {
	n := 0
	for n < len(dst) {
		if len(s.pending) == 0 {
			if s.err != nil || !s.next() {
				break
			}
		}

		c := min(len(dst)-n, len(s.pending))
		for i := range c {
			dst[n+i] = utils.Int16ToFloat32(s.pending[i])
		}
		s.pending = s.pending[c:]
		n += c
	}

	if n == 0 && s.err != nil {
		return 0, s.err
	}
	return n, nil
}

// next queues the samples of the following frame in the layout of the
// first one.
func (s *source) next() bool {
	frame, err := s.dec.NextFrame(context.Background(), s.in)
	if err != nil {
		s.err = err
		return false
	}

	s.pending = utils.Remix(frame.Samples, frame.Channels, s.format.Channels)
	return true
}

// SourceDecoder decodes MP3 into an audio.Source.
type SourceDecoder struct {
	// EmptyReadsBeforeEOF defaults to stream.DefaultEmptyReadsBeforeEOF.
	EmptyReadsBeforeEOF int
}

func (d SourceDecoder) Decode(r io.Reader) (audio.Source, error) {
	emptyReads := d.EmptyReadsBeforeEOF
	if emptyReads <= 0 {
		emptyReads = stream.DefaultEmptyReadsBeforeEOF
	}

	src, err := newSource(NewDecoder(emptyReads), stream.FromReader(r))
	if err != nil {
		return nil, err
	}
	if c, ok := r.(io.Closer); ok {
		src.closer = c
	}
	return src, nil
}

func newSource(dec *Decoder, in stream.Stream) (*source, error) {
	frame, err := dec.NextFrame(context.Background(), in)
	if err == io.EOF {
		return nil, fmt.Errorf("%w: no audio frames", ErrDecode)
	}
	if err != nil {
		return nil, err
	}

	format, _ := dec.Format()

	return &source{
		dec:     dec,
		in:      in,
		format:  format,
		pending: frame.Samples,
	}, nil
}
