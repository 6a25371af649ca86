// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"context"
	"errors"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"
	"github.com/ik5/mp3bridge/stream"
)

// pcmReader is an interface for gomp3.Decoder to allow testing
type pcmReader interface {
	Read([]byte) (int, error)
	SampleRate() int
}

type openFunc func(io.Reader) (pcmReader, error)

// errIncomplete means the stream ran dry before the next frame was
// buffered in full; the codec was not called.
var errIncomplete = errors.New("mp3: frame incomplete")

func openGoMP3(r io.Reader) (pcmReader, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, err // io.EOF must stay recognizable
	}
	return dec, nil
}

// go-mp3 renders every frame as stereo 16-bit PCM; an MPEG-1 frame holds
// 1152 ticks, MPEG-2 frames half that.
const maxFrameBytes = 1152 * 2 * SampleSize

// State is where a Decoder is in its lifetime.
type State int

const (
	StateUnparsed    State = iota // no frame decoded yet
	StateHeaderKnown              // at least one frame decoded
	StateExhausted                // the last call ran out of input
	StateFailed                   // the codec rejected the stream
)

func (s State) String() string {
	switch s {
	case StateUnparsed:
		return "unparsed"
	case StateHeaderKnown:
		return "header-known"
	case StateExhausted:
		return "exhausted"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Decoder decodes an MPEG audio stream one frame per call. The stream is
// not owned by the Decoder; every call lends it again together with the
// calling context.
//
// The format reported by Channels, SampleRate and BitRate is taken from
// the first decoded frame and stays fixed for the life of the Decoder,
// even when later frames carry a different format. Each Frame still
// reports its own format.
//
// A Decoder is not safe for concurrent use.
type Decoder struct {
	adapter *stream.Adapter
	tracker *headerTracker
	open    openFunc
	dec     pcmReader
	pcm     []byte

	format  Format
	last    Format // of the most recent frame
	known   bool
	state   State
	failure error
	closed  bool
}

// NewDecoder returns a Decoder that reports end of stream after
// emptyReadsBeforeEOF consecutive empty pulls within one call.
func NewDecoder(emptyReadsBeforeEOF int) *Decoder {
	a := stream.NewAdapter(emptyReadsBeforeEOF)
	return &Decoder{
		adapter: a,
		tracker: newHeaderTracker(a),
		open:    openGoMP3,
		pcm:     make([]byte, maxFrameBytes),
	}
}

// NextFrame decodes the next frame, pulling from s as often as needed.
// It returns io.EOF once s has nothing more to give, keeping the bytes of
// a frame that has only partly arrived for the next call. Codec failures wrap
// ErrDecode and leave the Decoder failed; stream failures wrap
// stream.ErrStreamIO and leave it as it was.
func (d *Decoder) NextFrame(ctx context.Context, s stream.Stream) (*Frame, error) {
	if d.closed {
		return nil, ErrDecoderClosed
	}
	if d.state == StateFailed {
		return nil, d.failure
	}

	var frame *Frame
	err := d.adapter.With(ctx, s, func() error {
		var err error
		frame, err = d.decodeFrame()
		return err
	})

	return d.settle(frame, err)
}

func (d *Decoder) decodeFrame() (*Frame, error) {
	if err := d.tracker.fill(d.dec == nil); err != nil {
		if err == io.EOF {
			return nil, errIncomplete
		}
		return nil, err
	}

	if d.dec == nil {
		dec, err := d.open(d.tracker)
		if err != nil {
			return nil, err
		}
		d.dec = dec
	}

	n, err := d.dec.Read(d.pcm)
	if n == 0 {
		if err == nil {
			err = io.ErrNoProgress
		}
		return nil, err
	}

	format, ok := d.frameFormat()
	if !ok {
		format = Format{Channels: 2, SampleRate: d.dec.SampleRate(), BitRate: -1}
	}

	return &Frame{
		Samples: pcmToSamples(d.pcm[:n], format.Channels),
		Format:  format,
	}, nil
}

func (d *Decoder) frameFormat() (Format, bool) {
	h, ok := d.tracker.pop()
	if !ok {
		return Format{}, false
	}
	return h.Format(), true
}

func (d *Decoder) settle(frame *Frame, err error) (*Frame, error) {
	switch {
	case err == nil:
		d.last = frame.Format
		if !d.known {
			d.format = frame.Format
			d.known = true
		}
		d.state = StateHeaderKnown
		return frame, nil

	case d.adapter.Err() != nil:
		// the codec may have rewrapped or flattened it
		d.tracker.resync(d.dec == nil)
		return nil, d.adapter.Err()

	case errors.Is(err, stream.ErrStreamIO):
		return nil, err

	case errors.Is(err, errIncomplete):
		// the partial frame stays buffered for the next call
		d.state = StateExhausted
		return nil, io.EOF

	case errors.Is(err, io.EOF) || d.adapter.Exhausted():
		d.tracker.resync(d.dec == nil)
		d.state = StateExhausted
		return nil, io.EOF

	default:
		d.failure = fmt.Errorf("%w: %w", ErrDecode, err)
		d.state = StateFailed
		return nil, d.failure
	}
}

// pcmToSamples converts go-mp3's stereo little-endian output. Mono frames
// are duplicated into both channels by go-mp3, so only the left one is kept.
func pcmToSamples(b []byte, channels int) []int16 {
	if channels == 1 {
		samples := make([]int16, len(b)/4)
		for i := range samples {
			samples[i] = int16(uint16(b[4*i]) | uint16(b[4*i+1])<<8)
		}
		return samples
	}

	samples := make([]int16, len(b)/2)
	for i := range samples {
		samples[i] = int16(uint16(b[2*i]) | uint16(b[2*i+1])<<8)
	}
	return samples
}

// HeadersKnown reports whether a frame has been decoded yet.
func (d *Decoder) HeadersKnown() bool { return d.known }

// Format returns the session format and whether it is known yet.
func (d *Decoder) Format() (Format, bool) { return d.format, d.known }

// LastFrameFormat returns the format of the most recently decoded frame.
// It differs from Format once the stream has changed format midway.
func (d *Decoder) LastFrameFormat() (Format, bool) { return d.last, d.known }

// Channels returns the channel count of the session, or -1 before the
// first frame.
func (d *Decoder) Channels() int {
	if !d.known {
		return -1
	}
	return d.format.Channels
}

// SampleRate returns the sample rate of the session, or -1 before the
// first frame.
func (d *Decoder) SampleRate() int {
	if !d.known {
		return -1
	}
	return d.format.SampleRate
}

// BitRate returns the bit rate in kbps of the session, or -1 before the
// first frame.
func (d *Decoder) BitRate() int {
	if !d.known {
		return -1
	}
	return d.format.BitRate
}

func (d *Decoder) State() State { return d.state }

// Close releases the codec. It is safe to call more than once.
func (d *Decoder) Close() error {
	d.closed = true
	d.dec = nil
	return nil
}
