// SPDX-License-Identifier: EPL-2.0

package audiotest

import "fmt"

// SilentFrameBitRate is the bit rate, in kbps, of the frames built by
// SilentMP3Frame.
const SilentFrameBitRate = 128

// SilentMP3Frame builds one MPEG-1 Layer III frame at 128 kbps whose side
// information and main data are all zero, so it decodes to 1152 ticks of
// silence. sampleRate must be 32000, 44100 or 48000.
func SilentMP3Frame(sampleRate int, mono bool) []byte {
	var rateIndex byte
	switch sampleRate {
	case 44100:
		rateIndex = 0
	case 48000:
		rateIndex = 1
	case 32000:
		rateIndex = 2
	default:
		panic(fmt.Sprintf("audiotest: unsupported MPEG-1 sample rate %d", sampleRate))
	}

	// 1152 ticks / 8 bits * bit rate / sample rate, no padding
	frame := make([]byte, 144*SilentFrameBitRate*1000/sampleRate)

	// sync, MPEG-1, Layer III, no CRC
	frame[0] = 0xFF
	frame[1] = 0xFB
	// bit rate index 9 is 128 kbps
	frame[2] = 0x90 | rateIndex<<2
	if mono {
		frame[3] = 0xC0
	}

	return frame
}

// SilentMP3 concatenates n frames built by SilentMP3Frame.
func SilentMP3(n, sampleRate int, mono bool) []byte {
	frame := SilentMP3Frame(sampleRate, mono)

	out := make([]byte, 0, n*len(frame))
	for range n {
		out = append(out, frame...)
	}
	return out
}
