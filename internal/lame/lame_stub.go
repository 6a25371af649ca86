// SPDX-License-Identifier: EPL-2.0

//go:build !cgo || nolame

package lame

import "github.com/ik5/mp3bridge/formats/mp3"

// Available reports whether the package was built against libmp3lame.
const Available = false

// Encoder is never returned by New in this build.
type Encoder struct{}

// New always fails with ErrUnavailable.
func New() (*Encoder, error) {
	return nil, ErrUnavailable
}

func Version() string { return "" }

func (*Encoder) SetNumChannels(int) int                           { return -1 }
func (*Encoder) SetInSampleRate(int) int                          { return -1 }
func (*Encoder) SetBitRate(int) int                               { return -1 }
func (*Encoder) SetMode(mp3.Mode) int                             { return -1 }
func (*Encoder) SetQuality(int) int                               { return -1 }
func (*Encoder) InitParams() int                                  { return -1 }
func (*Encoder) EncodeBuffer(_, _ []int16, _ int, _ []byte) int   { return -1 }
func (*Encoder) EncodeBufferInterleaved([]int16, int, []byte) int { return -1 }
func (*Encoder) Flush([]byte) int                                 { return -1 }
func (*Encoder) Close() int                                       { return 0 }
