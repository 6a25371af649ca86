// SPDX-License-Identifier: EPL-2.0

// Package mp3bridge exposes MP3 decoding and encoding to callers that hold
// nothing but opaque handles.
//
// A Bridge owns every session. Callers create a session, get a Handle back
// and pass that Handle to every later call until they destroy it:
//
//	b := mp3bridge.New(mp3bridge.WithLogger(logger))
//	defer b.Close()
//
//	h := b.CreateDecoder()
//	defer b.DestroyDecoder(&h)
//
//	for {
//	    samples, err := b.DecodeNextFrame(ctx, h, stream.FromReader(file))
//	    if err != nil {
//	        return err
//	    }
//	    if samples == nil {
//	        break // end of stream
//	    }
//	    ...
//	}
//
// # Handles
//
// A Handle is never reused. Destroying a session zeroes the caller's copy,
// and every other copy of it becomes stale: using it fails with
// ErrClosedHandle instead of reaching another session. Destroying a zero
// or stale handle does nothing.
//
// # Streams
//
// Decoding pulls its input from a stream.Stream that is lent to each
// DecodeNextFrame call, never stored. A stream that returns no bytes for
// EmptyReadsBeforeEOF consecutive pulls ends the call with (nil, nil); the
// session can resume later if the stream produces data again.
//
// # Errors
//
// Every failure is an *Error carrying a Kind:
//
//	KindClosedHandle      zero, destroyed or stale handle
//	KindInitialization    the encoder rejected its parameters
//	KindNativeDecode      the codec rejected the stream
//	KindNativeEncode      the encoder failed
//	KindStreamIO          the stream or its context failed
//	KindArrayMarshalling  a result did not fit its buffer, or a panic was recovered
//	KindArgument          the PCM length is not a multiple of the channel count
//
// Test for a kind with errors.Is(err, mp3bridge.ErrStreamIO) and friends,
// or group kinds with ClassOf.
//
// # Encoding
//
// Encoding uses libmp3lame through cgo. Without cgo, or with the nolame
// build tag, CreateEncoder fails with KindInitialization unless another
// encoder is supplied with WithNativeEncoder.
//
// # High-level API
//
// Decoder, Encoder and DecodeAll wrap the handle API for ordinary Go
// readers and writers:
//
//	audio, err := mp3bridge.DecodeAll(ctx, b, file)
//
//	enc, err := mp3bridge.NewEncoder(b, out, 2, 44100, 128, 5)
//	err = enc.Write(pcm)
//	err = enc.Close()
package mp3bridge
