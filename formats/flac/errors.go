// SPDX-License-Identifier: EPL-2.0

package flac

import "errors"

var (
	ErrNotFlac      = errors.New("not a FLAC stream")
	ErrCorruptFrame = errors.New("corrupt FLAC frame")
)
