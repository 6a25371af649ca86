// SPDX-License-Identifier: EPL-2.0

package mp3bridge

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/ik5/mp3bridge/formats/mp3"
	"github.com/ik5/mp3bridge/handle"
	"github.com/ik5/mp3bridge/stream"
)

// Handle refers to one decoder or encoder session. The zero Handle means
// "none".
type Handle = handle.Handle

// Bridge hands out decoder and encoder sessions behind opaque handles.
//
// The Bridge itself is safe for concurrent use. Calls on the same handle
// must not overlap; calls on different handles are independent.
type Bridge struct {
	decoders *handle.Table[*mp3.Decoder]
	encoders *handle.Table[*mp3.Encoder]

	cfg Config
	log *zap.Logger
}

// New returns a Bridge configured by opts on top of DefaultConfig.
func New(opts ...Option) *Bridge {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Bridge{
		decoders: handle.NewTable[*mp3.Decoder](),
		encoders: handle.NewTable[*mp3.Encoder](),
		cfg:      cfg,
		log:      cfg.Logger,
	}
}

// guard converts a panic inside op into an array marshalling error, so no
// panic crosses the boundary.
func (b *Bridge) guard(op string, h Handle, err *error) {
	r := recover()
	if r == nil {
		return
	}

	b.log.Warn("recovered panic",
		zap.String("op", op),
		zap.Stringer("handle", h),
		zap.Any("panic", r))

	*err = &Error{Op: op, Kind: KindArrayMarshalling, Handle: h, Err: fmt.Errorf("panic: %v", r)}
}

// CreateDecoder starts a decode session. The codec is set up lazily by
// the first DecodeNextFrame, so this never fails.
func (b *Bridge) CreateDecoder() Handle {
	h := b.decoders.Allocate(mp3.NewDecoder(b.cfg.EmptyReadsBeforeEOF))
	b.log.Debug("decoder created", zap.Stringer("handle", h))
	return h
}

func (b *Bridge) decoder(op string, h Handle) (*mp3.Decoder, error) {
	dec, err := b.decoders.Resolve(h)
	if err != nil {
		return nil, &Error{Op: op, Kind: KindClosedHandle, Handle: h, Err: err}
	}
	return dec, nil
}

// DecodeNextFrame decodes one frame pulled from s and returns its
// interleaved samples. At end of stream it returns nil, nil.
func (b *Bridge) DecodeNextFrame(ctx context.Context, h Handle, s stream.Stream) (samples []int16, err error) {
	const op = "DecodeNextFrame"
	defer b.guard(op, h, &err)

	dec, err := b.decoder(op, h)
	if err != nil {
		return nil, err
	}

	frame, err := dec.NextFrame(ctx, s)
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, wrap(op, h, err, KindNativeDecode)
	}

	return frame.Samples, nil
}

// HeaderParsed reports whether the session has decoded a frame yet.
func (b *Bridge) HeaderParsed(h Handle) (bool, error) {
	dec, err := b.decoder("HeaderParsed", h)
	if err != nil {
		return false, err
	}
	return dec.HeadersKnown(), nil
}

// ChannelCount returns the channel count of the session, -1 before the
// first frame.
func (b *Bridge) ChannelCount(h Handle) (int, error) {
	dec, err := b.decoder("ChannelCount", h)
	if err != nil {
		return -1, err
	}
	return dec.Channels(), nil
}

// BitRate returns the bit rate of the session in kbps, -1 before the first
// frame.
func (b *Bridge) BitRate(h Handle) (int, error) {
	dec, err := b.decoder("BitRate", h)
	if err != nil {
		return -1, err
	}
	return dec.BitRate(), nil
}

// SampleRate returns the sample rate of the session in Hz, -1 before the
// first frame.
func (b *Bridge) SampleRate(h Handle) (int, error) {
	dec, err := b.decoder("SampleRate", h)
	if err != nil {
		return -1, err
	}
	return dec.SampleRate(), nil
}

// FrameFormat returns the format of the most recently decoded frame, and
// false before the first one. Samples returned by DecodeNextFrame are laid
// out in this format rather than the session's.
func (b *Bridge) FrameFormat(h Handle) (mp3.Format, bool, error) {
	dec, err := b.decoder("FrameFormat", h)
	if err != nil {
		return mp3.Format{}, false, err
	}
	f, ok := dec.LastFrameFormat()
	return f, ok, nil
}

// DestroyDecoder ends the session *h refers to and zeroes *h. Destroying a
// zero or stale handle does nothing.
func (b *Bridge) DestroyDecoder(h *Handle) {
	if h == nil {
		return
	}

	if dec, ok := b.decoders.Release(*h); ok {
		_ = dec.Close()
		b.log.Debug("decoder destroyed", zap.Stringer("handle", *h))
	}
	*h = 0
}

// CreateEncoder starts an encode session. bitRate is in kbps and quality
// runs from 0 (best) to 9 (fastest). On failure the returned handle is
// zero.
func (b *Bridge) CreateEncoder(channels, sampleRate, bitRate, quality int) (h Handle, err error) {
	const op = "CreateEncoder"
	defer b.guard(op, 0, &err)

	native, err := b.cfg.NativeEncoder()
	if err != nil {
		return 0, &Error{Op: op, Kind: KindInitialization, Err: err}
	}

	params := mp3.Params{Channels: channels, SampleRate: sampleRate, BitRate: bitRate, Quality: quality}
	enc, err := mp3.NewEncoder(params, native)
	if err != nil {
		return 0, &Error{Op: op, Kind: KindInitialization, Err: err}
	}

	h = b.encoders.Allocate(enc)
	b.log.Debug("encoder created",
		zap.Stringer("handle", h),
		zap.Int("channels", channels),
		zap.Int("sample_rate", sampleRate),
		zap.Int("bit_rate", bitRate),
		zap.Int("quality", quality),
		zap.Stringer("mode", enc.Mode()))

	return h, nil
}

func (b *Bridge) encoder(op string, h Handle) (*mp3.Encoder, error) {
	enc, err := b.encoders.Resolve(h)
	if err != nil {
		return nil, &Error{Op: op, Kind: KindClosedHandle, Handle: h, Err: err}
	}
	return enc, nil
}

// Write encodes interleaved samples and returns the MP3 bytes produced.
// The result may be empty while the encoder buffers a frame.
func (b *Bridge) Write(h Handle, samples []int16) (out []byte, err error) {
	const op = "Write"
	defer b.guard(op, h, &err)

	enc, err := b.encoder(op, h)
	if err != nil {
		return nil, err
	}

	out, err = enc.Write(samples)
	if err != nil {
		return nil, wrap(op, h, err, KindNativeEncode)
	}
	return out, nil
}

// Flush returns the frames the encoder still buffers, at most
// mp3.FlushBufferSize bytes.
func (b *Bridge) Flush(h Handle) (out []byte, err error) {
	const op = "Flush"
	defer b.guard(op, h, &err)

	enc, err := b.encoder(op, h)
	if err != nil {
		return nil, err
	}

	out, err = enc.Flush()
	if err != nil {
		return nil, wrap(op, h, err, KindNativeEncode)
	}
	return out, nil
}

// DestroyEncoder ends the session *h refers to and zeroes *h. Destroying a
// zero or stale handle does nothing.
func (b *Bridge) DestroyEncoder(h *Handle) {
	if h == nil {
		return
	}

	if enc, ok := b.encoders.Release(*h); ok {
		if err := enc.Close(); err != nil {
			b.log.Warn("encoder close failed", zap.Stringer("handle", *h), zap.Error(err))
		}
		b.log.Debug("encoder destroyed", zap.Stringer("handle", *h))
	}
	*h = 0
}

// Sessions returns the number of live decoder and encoder sessions.
func (b *Bridge) Sessions() (decoders, encoders int) {
	return b.decoders.Len(), b.encoders.Len()
}

// Close destroys every live session. Handles issued before stay invalid.
func (b *Bridge) Close() error {
	var errs []error

	for _, dec := range b.decoders.Drain() {
		errs = append(errs, dec.Close())
	}
	for _, enc := range b.encoders.Drain() {
		errs = append(errs, enc.Close())
	}

	return errors.Join(errs...)
}
