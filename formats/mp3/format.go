// SPDX-License-Identifier: EPL-2.0

package mp3

// Format describes decoded PCM: 16-bit signed samples, interleaved.
type Format struct {
	Channels   int
	SampleRate int // Hz
	BitRate    int // kbps of the compressed stream
}

// SampleSize is the size of one decoded sample in bytes.
const SampleSize = 2

// BytesPerTick returns the size of one sample for every channel.
func (f Format) BytesPerTick() int { return SampleSize * f.Channels }

// Frame is one decoded MPEG audio frame.
type Frame struct {
	Samples []int16 // interleaved, one per channel per tick
	Format          // of this frame
}

// Ticks returns the number of sample ticks in the frame.
func (f *Frame) Ticks() int {
	if f.Channels == 0 {
		return 0
	}
	return len(f.Samples) / f.Channels
}
