// SPDX-License-Identifier: EPL-2.0

package utils

// Int16ToFloat32 scales a 16-bit sample into [-1, 1).
func Int16ToFloat32(s int16) float32 {
	return float32(s) / 32768.0
}

// Float32ToInt16 clamps x to [-1, 1] and scales it by 32767, so both
// extremes stay representable.
func Float32ToInt16(x float32) int16 {
	x = max(-1, min(x, 1))
	return int16(x * 32767.0)
}

// Float32ToInt16Slice converts src into dst and returns the number of
// samples written, the shorter of the two lengths.
func Float32ToInt16Slice(dst []int16, src []float32) int {
	n := min(len(dst), len(src))
	for i := range n {
		dst[i] = Float32ToInt16(src[i])
	}
	return n
}

// Remix converts interleaved samples from one channel count to another.
// Downmixing to mono averages all channels of a tick; any other layout
// change copies channels by position, repeating the last source channel
// when there are more outputs than inputs.
func Remix(samples []int16, from, to int) []int16 {
	if from <= 0 || to <= 0 || from == to {
		return samples
	}

	ticks := len(samples) / from
	out := make([]int16, ticks*to)

	for t := range ticks {
		in := samples[t*from : (t+1)*from]

		if to == 1 {
			var sum int
			for _, s := range in {
				sum += int(s)
			}
			out[t] = int16(sum / from)
			continue
		}

		for c := range to {
			out[t*to+c] = in[min(c, from-1)]
		}
	}

	return out
}
