// SPDX-License-Identifier: EPL-2.0

package mp3bridge

import (
	"context"
	"io"

	"github.com/ik5/mp3bridge/formats/mp3"
	"github.com/ik5/mp3bridge/internal/audiotest"
)

const ticksPerFrame = 1152

// frameEncoder stands in for LAME: it turns every 1152 ticks into one
// silent MPEG-1 Layer III frame, so its output decodes for real.
type frameEncoder struct {
	channels   int
	sampleRate int
	mode       mp3.Mode

	pending int
	encodes int
	closes  int

	panicOnEncode bool
	failInit      bool
}

func (f *frameEncoder) SetNumChannels(n int) int {
	if n != 1 && n != 2 {
		return -1
	}
	f.channels = n
	return 0
}

func (f *frameEncoder) SetInSampleRate(hz int) int {
	switch hz {
	case 32000, 44100, 48000:
		f.sampleRate = hz
		return 0
	}
	return -1
}

func (f *frameEncoder) SetBitRate(int) int     { return 0 }
func (f *frameEncoder) SetMode(m mp3.Mode) int { f.mode = m; return 0 }
func (f *frameEncoder) SetQuality(int) int     { return 0 }

func (f *frameEncoder) InitParams() int {
	if f.failInit {
		return -1
	}
	return 0
}

func (f *frameEncoder) EncodeBuffer(_, _ []int16, n int, out []byte) int {
	return f.encode(n, out)
}

func (f *frameEncoder) EncodeBufferInterleaved(_ []int16, ticks int, out []byte) int {
	return f.encode(ticks, out)
}

func (f *frameEncoder) encode(ticks int, out []byte) int {
	f.encodes++
	if f.panicOnEncode {
		panic("encoder state corrupted")
	}

	f.pending += ticks
	return f.emit(out, ticksPerFrame)
}

func (f *frameEncoder) emit(out []byte, threshold int) int {
	frame := audiotest.SilentMP3Frame(f.sampleRate, f.channels == 1)

	n := 0
	for f.pending >= threshold && n+len(frame) <= len(out) {
		n += copy(out[n:], frame)
		f.pending = max(f.pending-ticksPerFrame, 0)
	}
	return n
}

func (f *frameEncoder) Flush(out []byte) int {
	return f.emit(out, 1)
}

func (f *frameEncoder) Close() int {
	f.closes++
	return 0
}

// newTestBridge returns a Bridge whose encoders are frameEncoders. The
// returned slice collects every encoder the Bridge created.
func newTestBridge(opts ...Option) (*Bridge, *[]*frameEncoder) {
	created := &[]*frameEncoder{}
	factory := func() (mp3.NativeEncoder, error) {
		f := &frameEncoder{}
		*created = append(*created, f)
		return f, nil
	}

	return New(append([]Option{WithNativeEncoder(factory)}, opts...)...), created
}

// closeRecorder is an io.ReadWriteCloser that remembers being closed.
type closeRecorder struct {
	io.ReadWriter
	closed int
}

func (c *closeRecorder) Close() error {
	c.closed++
	return nil
}

// emptyStream never has anything to give.
type emptyStream struct{ pulls int }

func (s *emptyStream) Pull(context.Context, []byte) (int, error) {
	s.pulls++
	return 0, nil
}

// trickleStream holds data that arrives a slice at a time. Pull never
// returns bytes that have not arrived yet.
type trickleStream struct {
	data    []byte
	arrived int
	read    int
}

func (s *trickleStream) Pull(_ context.Context, p []byte) (int, error) {
	n := copy(p, s.data[s.read:s.arrived])
	s.read += n
	return n, nil
}

func (s *trickleStream) arrive(n int) { s.arrived = min(s.arrived+n, len(s.data)) }
func (s *trickleStream) complete() bool { return s.arrived == len(s.data) }
