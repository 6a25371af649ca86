// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis streams with github.com/jfreymuth/oggvorbis.
//
// The decoder already yields interleaved float32 in [-1, 1], so samples
// pass through unchanged. Decoding is purely sequential; the reader does
// not need to seek.
package vorbis
