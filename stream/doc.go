// SPDX-License-Identifier: EPL-2.0

// Package stream lets a codec pull bytes from a caller-owned stream.
//
// The caller owns a Stream and lends it to one decode call at a time. A
// codec that wants an io.Reader for its whole lifetime gets an Adapter
// instead; the Adapter forwards each Read to whichever Stream is bound to
// the current call, and refuses to read when nothing is bound.
//
// # Empty pulls
//
// A Stream may return zero bytes to say "nothing right now". The Adapter
// passes that on as a short read. Only when a call sees several empty
// pulls in a row does the Adapter report io.EOF, which is what codecs
// treat as the end of the stream.
//
// # Errors
//
// Every failure (no binding, no usable context, a failing or panicking
// Stream) wraps ErrStreamIO.
package stream
