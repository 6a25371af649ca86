// SPDX-License-Identifier: EPL-2.0

package stream

import (
	"errors"
	"fmt"
)

// ErrStreamIO is wrapped by every failure the adapter reports.
var ErrStreamIO = errors.New("stream io failure")

var (
	ErrUnbound      = fmt.Errorf("%w: no stream bound to this call", ErrStreamIO)
	ErrAlreadyBound = fmt.Errorf("%w: stream already bound", ErrStreamIO)
	ErrNoContext    = fmt.Errorf("%w: calling context unavailable", ErrStreamIO)
	ErrOverread     = fmt.Errorf("%w: stream reported more bytes than requested", ErrStreamIO)
)
