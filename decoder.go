// SPDX-License-Identifier: EPL-2.0

package mp3bridge

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/ik5/mp3bridge/formats/mp3"
	"github.com/ik5/mp3bridge/stream"
	"github.com/ik5/mp3bridge/utils"
)

// Decoder reads MP3 frames from an io.Reader through a Bridge session.
type Decoder struct {
	bridge *Bridge
	h      Handle
	r      io.Reader
	in     stream.Stream

	mtx *sync.Mutex
}

// NewDecoder opens a decode session over r. Close releases the session
// and closes r when it is an io.Closer.
func NewDecoder(b *Bridge, r io.Reader) *Decoder {
	return &Decoder{
		bridge: b,
		h:      b.CreateDecoder(),
		r:      r,
		in:     stream.FromReader(r),
		mtx:    &sync.Mutex{},
	}
}

// NextFrame returns the interleaved samples of the next frame, parsing
// the stream header first if needed. It returns io.EOF at end of stream.
func (d *Decoder) NextFrame(ctx context.Context) ([]int16, error) {
	d.mtx.Lock()
	defer d.mtx.Unlock()

	samples, err := d.bridge.DecodeNextFrame(ctx, d.h, d.in)
	if err != nil {
		return nil, err
	}
	if samples == nil {
		return nil, io.EOF
	}
	return samples, nil
}

func (d *Decoder) HeaderParsed() (bool, error) { return d.bridge.HeaderParsed(d.lockedHandle()) }
func (d *Decoder) Channels() (int, error)      { return d.bridge.ChannelCount(d.lockedHandle()) }
func (d *Decoder) SampleRate() (int, error)    { return d.bridge.SampleRate(d.lockedHandle()) }
func (d *Decoder) BitRate() (int, error)       { return d.bridge.BitRate(d.lockedHandle()) }

func (d *Decoder) lockedHandle() Handle {
	d.mtx.Lock()
	defer d.mtx.Unlock()
	return d.h
}

// Format returns the stream format, and false before the first frame.
func (d *Decoder) Format() (mp3.Format, bool) {
	parsed, err := d.HeaderParsed()
	if err != nil || !parsed {
		return mp3.Format{}, false
	}

	var f mp3.Format
	f.Channels, _ = d.Channels()
	f.SampleRate, _ = d.SampleRate()
	f.BitRate, _ = d.BitRate()

	return f, true
}

// FrameFormat returns the format of the frame NextFrame returned last, and
// false before the first one.
func (d *Decoder) FrameFormat() (mp3.Format, bool) {
	f, ok, err := d.bridge.FrameFormat(d.lockedHandle())
	return f, ok && err == nil
}

// Close releases the session and closes the underlying reader if it is an
// io.Closer. It is safe to call more than once.
func (d *Decoder) Close() error {
	d.mtx.Lock()
	defer d.mtx.Unlock()

	if d.h.IsZero() {
		return nil
	}
	d.bridge.DestroyDecoder(&d.h)

	if c, ok := d.r.(io.Closer); ok {
		if err := c.Close(); err != nil {
			return fmt.Errorf("%w", err)
		}
	}
	return nil
}

func (d *Decoder) IsClosed() bool {
	return d.lockedHandle().IsZero()
}

// DecodedAudio is a whole decoded stream.
type DecodedAudio struct {
	Channels   int
	SampleRate int // Hz
	BitRate    int // kbps
	Samples    []int16
}

// SampleSize returns the size of one sample in bytes.
func (a *DecodedAudio) SampleSize() int { return mp3.SampleSize }

// Ticks returns the number of samples per channel.
func (a *DecodedAudio) Ticks() int {
	if a.Channels <= 0 {
		return 0
	}
	return len(a.Samples) / a.Channels
}

// Duration returns the play time of the samples.
func (a *DecodedAudio) Duration() time.Duration {
	if a.SampleRate <= 0 {
		return 0
	}
	return time.Duration(a.Ticks()) * time.Second / time.Duration(a.SampleRate)
}

// DecodeAll decodes r to the end and closes it if it is an io.Closer. The
// samples are laid out in the session format throughout.
func DecodeAll(ctx context.Context, b *Bridge, r io.Reader) (*DecodedAudio, error) {
	dec := NewDecoder(b, r)
	defer dec.Close()

	samples := make([]int16, 0, 2048)
	for {
		frame, err := dec.NextFrame(ctx)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		// frames after a format change are laid out like the first one
		f, _ := dec.FrameFormat()
		channels, _ := dec.Channels()
		samples = append(samples, utils.Remix(frame, f.Channels, channels)...)
	}

	audio := &DecodedAudio{Samples: samples}
	audio.Channels, _ = dec.Channels()
	audio.SampleRate, _ = dec.SampleRate()
	audio.BitRate, _ = dec.BitRate()

	if err := dec.Close(); err != nil {
		return nil, err
	}
	return audio, nil
}
