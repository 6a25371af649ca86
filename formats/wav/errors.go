// SPDX-License-Identifier: EPL-2.0

package wav

import "errors"

var (
	ErrNotWavFile           = errors.New("not a WAV file")
	ErrUnsupportedWavLayout = errors.New("unsupported WAV layout")
	ErrOnlyPCMSupported     = errors.New("only integer PCM supported")
	ErrUnsupportedWavChunks = errors.New("unsupported WAV chunks")
	ErrWriterClosed         = errors.New("WAV writer closed")
)
