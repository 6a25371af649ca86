// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"fmt"
	"math"
)

// NativeEncoder is the subset of the LAME API an Encoder drives. Every
// method reports failure the way LAME does, with a negative return value.
// Encode methods return the number of bytes written to out.
type NativeEncoder interface {
	SetNumChannels(n int) int
	SetInSampleRate(hz int) int
	SetBitRate(kbps int) int
	SetMode(m Mode) int
	SetQuality(q int) int
	InitParams() int

	// EncodeBuffer encodes n ticks from planar buffers. right is nil for
	// mono input.
	EncodeBuffer(left, right []int16, n int, out []byte) int
	// EncodeBufferInterleaved encodes ticks from interleaved stereo input.
	EncodeBufferInterleaved(pcm []int16, ticks int, out []byte) int
	Flush(out []byte) int
	Close() int
}

// Mode is the LAME channel mode, numbered like MPEG_mode.
type Mode int

const (
	ModeStereo      Mode = 0
	ModeJointStereo Mode = 1
	ModeDualChannel Mode = 2
	ModeMono        Mode = 3
)

func (m Mode) String() string {
	switch m {
	case ModeStereo:
		return "stereo"
	case ModeJointStereo:
		return "joint-stereo"
	case ModeDualChannel:
		return "dual-channel"
	case ModeMono:
		return "mono"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ModeFor returns the channel mode used for the given channel count.
func ModeFor(channels int) Mode {
	if channels == 1 {
		return ModeMono
	}
	return ModeJointStereo
}

// FlushBufferSize is the size of the scratch buffer handed to Flush. LAME
// never emits more than this from its internal buffers.
const FlushBufferSize = 7200

// BufferSize returns the scratch size LAME asks for when encoding n
// interleaved samples: 1.25 bytes per sample plus 7200, per channel.
func BufferSize(n, channels int) int {
	return int(math.Ceil(1.25*float64(n)+7200)) * channels
}

// Params are the fixed settings of an Encoder.
type Params struct {
	Channels   int
	SampleRate int // Hz
	BitRate    int // kbps
	Quality    int // 0 best to 9 fastest
}

// Encoder encodes interleaved 16-bit PCM to MP3. It is not safe for
// concurrent use.
type Encoder struct {
	native NativeEncoder
	params Params
	mode   Mode
	closed bool
}

// NewEncoder configures native with p. On any failure native is closed
// and an error wrapping ErrInit is returned.
func NewEncoder(p Params, native NativeEncoder) (*Encoder, error) {
	mode := ModeFor(p.Channels)

	steps := []struct {
		name string
		set  func() int
	}{
		{"channels", func() int { return native.SetNumChannels(p.Channels) }},
		{"sample rate", func() int { return native.SetInSampleRate(p.SampleRate) }},
		{"bit rate", func() int { return native.SetBitRate(p.BitRate) }},
		{"mode", func() int { return native.SetMode(mode) }},
		{"quality", func() int { return native.SetQuality(p.Quality) }},
		{"params", native.InitParams},
	}

	for _, step := range steps {
		if rc := step.set(); rc < 0 {
			native.Close()
			return nil, fmt.Errorf("%w: %s rejected (code %d)", ErrInit, step.name, rc)
		}
	}

	return &Encoder{native: native, params: p, mode: mode}, nil
}

func (e *Encoder) Params() Params { return e.params }
func (e *Encoder) Mode() Mode     { return e.mode }

// Write encodes interleaved samples and returns the MP3 bytes produced,
// which may be none while LAME fills its frame buffer.
func (e *Encoder) Write(samples []int16) ([]byte, error) {
	if e.closed {
		return nil, ErrEncoderClosed
	}

	ch := e.params.Channels
	if ch <= 0 || len(samples)%ch != 0 {
		return nil, fmt.Errorf("%w: %d samples for %d channels", ErrInvalidSampleCount, len(samples), ch)
	}

	out := make([]byte, BufferSize(len(samples), ch))
	ticks := len(samples) / ch

	var n int
	if ch == 1 {
		n = e.native.EncodeBuffer(samples, nil, ticks, out)
	} else {
		n = e.native.EncodeBufferInterleaved(samples, ticks, out)
	}

	return result(n, out, ErrEncode)
}

// Flush drains the samples LAME still holds and returns the final frames.
func (e *Encoder) Flush() ([]byte, error) {
	if e.closed {
		return nil, ErrEncoderClosed
	}

	out := make([]byte, FlushBufferSize)
	return result(e.native.Flush(out), out, ErrEncode)
}

// Close releases the native state. It is safe to call more than once.
func (e *Encoder) Close() error {
	if e.closed {
		return nil
	}
	e.closed = true

	if rc := e.native.Close(); rc < 0 {
		return fmt.Errorf("%w: close returned %d", ErrEncode, rc)
	}
	return nil
}

func result(n int, out []byte, failure error) ([]byte, error) {
	switch {
	case n < 0:
		return nil, fmt.Errorf("%w: code %d", failure, n)
	case n > len(out):
		return nil, fmt.Errorf("%w: %d > %d", ErrOutputOverflow, n, len(out))
	}

	b := make([]byte, n)
	copy(b, out)
	return b, nil
}
