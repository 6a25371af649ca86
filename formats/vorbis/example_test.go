// SPDX-License-Identifier: EPL-2.0

package vorbis_test

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ik5/mp3bridge/formats/vorbis"
)

func ExampleDecoder_Decode() {
	_, err := vorbis.Decoder{}.Decode(strings.NewReader("RIFF....WAVEfmt "))
	fmt.Println(errors.Is(err, vorbis.ErrNotVorbis))
	// Output: true
}
