// SPDX-License-Identifier: EPL-2.0

package lame

import "errors"

var (
	ErrUnavailable = errors.New("built without libmp3lame")
	ErrInit        = errors.New("lame_init failed")
)
