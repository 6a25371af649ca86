// SPDX-License-Identifier: EPL-2.0

package mp3_test

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"

	"github.com/ik5/mp3bridge/audio"
	"github.com/ik5/mp3bridge/formats/mp3"
	"github.com/ik5/mp3bridge/internal/audiotest"
	"github.com/ik5/mp3bridge/stream"
)

// Example decodes a stream frame by frame.
func Example() {
	data := audiotest.SilentMP3(3, 44100, false)
	in := stream.FromReader(bytes.NewReader(data))

	dec := mp3.NewDecoder(stream.DefaultEmptyReadsBeforeEOF)
	defer dec.Close()

	fmt.Printf("Channels before decoding: %d\n", dec.Channels())

	frames := 0
	for {
		frame, err := dec.NextFrame(context.Background(), in)
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Fatal(err)
		}
		frames++
		_ = frame.Samples
	}

	fmt.Printf("Frames: %d\n", frames)
	fmt.Printf("Sample Rate: %d Hz\n", dec.SampleRate())
	fmt.Printf("Channels: %d\n", dec.Channels())
	fmt.Printf("Bit Rate: %d kbps\n", dec.BitRate())

	// Output:
	// Channels before decoding: -1
	// Frames: 3
	// Sample Rate: 44100 Hz
	// Channels: 2
	// Bit Rate: 128 kbps
}

// ExampleParseHeader inspects a raw frame header.
func ExampleParseHeader() {
	h, err := mp3.ParseHeader([]byte{0xFF, 0xFB, 0x94, 0xC0})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("%d Hz, %d kbps, %d channel(s), %d bytes\n",
		h.SampleRate, h.BitRate, h.Channels(), h.FrameLength())

	// Output:
	// 48000 Hz, 128 kbps, 1 channel(s), 384 bytes
}

// ExampleSourceDecoder_Decode shows MP3 feeding an audio pipeline.
func ExampleSourceDecoder_Decode() {
	data := audiotest.SilentMP3(2, 48000, false)

	src, err := mp3.SourceDecoder{}.Decode(bytes.NewReader(data))
	if err != nil {
		log.Fatal(err)
	}
	defer src.Close()

	mono := audio.NewMonoMixer(src)
	fmt.Printf("Converted %d channels to %d at %d Hz\n", src.Channels(), mono.Channels(), mono.SampleRate())

	// Output:
	// Converted 2 channels to 1 at 48000 Hz
}

// ExampleModeFor shows which channel mode an encoder uses.
func ExampleModeFor() {
	fmt.Println(mp3.ModeFor(1))
	fmt.Println(mp3.ModeFor(2))

	// Output:
	// mono
	// joint-stereo
}
