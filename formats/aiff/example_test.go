// SPDX-License-Identifier: EPL-2.0

package aiff_test

import (
	"fmt"
	"io"
	"os"

	"github.com/ik5/mp3bridge/formats/aiff"
)

// ExampleDecoder_Decode counts the ticks of an AIFF file.
func ExampleDecoder_Decode() {
	f, err := os.Open("input.aiff")
	if err != nil {
		fmt.Println(err)
		return
	}

	src, err := aiff.Decoder{}.Decode(f)
	if err != nil {
		fmt.Println(err)
		return
	}
	defer src.Close()

	ticks := 0
	buf := make([]float32, src.BufSize())
	for {
		n, err := src.ReadSamples(buf)
		ticks += n / src.Channels()
		if err == io.EOF {
			break
		}
		if err != nil {
			fmt.Println(err)
			return
		}
	}

	fmt.Printf("%d ticks at %d Hz\n", ticks, src.SampleRate())
}
