// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes uncompressed AIFF files with github.com/go-audio/aiff.
//
// Samples of 8, 16, 24 or 32 bits are scaled to float32 in [-1, 1) by
// their bit depth. AIFF-C compressed variants are not supported.
//
//	src, err := aiff.Decoder{}.Decode(file)
//	if errors.Is(err, aiff.ErrNotAiffFile) {
//	    ...
//	}
//
// The go-audio decoder seeks while it walks the chunks, so a reader that
// cannot seek is buffered in memory first.
package aiff
