// SPDX-License-Identifier: EPL-2.0

// Package lame binds the LAME MP3 encoder through cgo.
//
// It needs libmp3lame and its headers at build time. Building without cgo,
// or with the nolame tag, swaps in a stub whose New fails with
// ErrUnavailable.
package lame
