// SPDX-License-Identifier: EPL-2.0

package mp3bridge_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/ik5/mp3bridge"
	"github.com/ik5/mp3bridge/internal/audiotest"
	"github.com/ik5/mp3bridge/stream"
)

func ExampleBridge_DecodeNextFrame() {
	b := mp3bridge.New()
	defer b.Close()

	h := b.CreateDecoder()
	defer b.DestroyDecoder(&h)

	in := stream.FromReader(bytes.NewReader(audiotest.SilentMP3(3, 44100, false)))

	frames := 0
	for {
		samples, err := b.DecodeNextFrame(context.Background(), h, in)
		if err != nil {
			fmt.Println("decode failed:", err)
			return
		}
		if samples == nil {
			break
		}
		frames++
	}

	channels, _ := b.ChannelCount(h)
	rate, _ := b.SampleRate(h)
	kbps, _ := b.BitRate(h)
	fmt.Printf("%d frames, %d ch, %d Hz, %d kbps\n", frames, channels, rate, kbps)
	// Output: 3 frames, 2 ch, 44100 Hz, 128 kbps
}

func ExampleDecodeAll() {
	audio, err := mp3bridge.DecodeAll(context.Background(), mp3bridge.New(),
		bytes.NewReader(audiotest.SilentMP3(25, 32000, true)))
	if err != nil {
		fmt.Println("decode failed:", err)
		return
	}

	fmt.Println(audio.Channels, audio.Ticks(), audio.Duration())
	// Output: 1 28800 900ms
}

func ExampleKindOf() {
	b := mp3bridge.New()

	_, err := b.HeaderParsed(0)

	kind, _ := mp3bridge.KindOf(err)
	fmt.Println(kind, mp3bridge.ClassOf(err), errors.Is(err, mp3bridge.ErrClosedHandle))
	// Output: closed_handle illegal_state true
}
