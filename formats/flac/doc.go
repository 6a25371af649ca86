// SPDX-License-Identifier: EPL-2.0

// Package flac decodes FLAC streams with github.com/mewkiz/flac.
//
// Frames are parsed one at a time and their subframes interleaved into
// float32 in [-1, 1), scaled by the bit depth of each frame. Closing the
// Source closes the reader when it is an io.Closer.
package flac
