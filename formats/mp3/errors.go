// SPDX-License-Identifier: EPL-2.0

package mp3

import "errors"

var (
	ErrInvalidHeader = errors.New("invalid MPEG audio frame header")

	// ErrDecode wraps every codec failure other than end of stream.
	ErrDecode = errors.New("failed to decode frame")

	ErrInit               = errors.New("failed to initialize encoder")
	ErrEncode             = errors.New("failed to encode samples")
	ErrInvalidSampleCount = errors.New("input length must be a multiple of the number of channels")
	ErrOutputOverflow     = errors.New("encoder reported more bytes than its output buffer holds")
	ErrEncoderClosed      = errors.New("encoder is closed")
	ErrDecoderClosed      = errors.New("decoder is closed")
)
