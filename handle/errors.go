// SPDX-License-Identifier: EPL-2.0

package handle

import "errors"

var (
	ErrClosed = errors.New("handle is closed")
	ErrStale  = errors.New("handle does not refer to a live value")
)
