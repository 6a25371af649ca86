// SPDX-License-Identifier: EPL-2.0

//go:build cgo && !nolame

package lame

/*
#cgo LDFLAGS: -lmp3lame
#include <lame/lame.h>
*/
import "C"

import (
	"runtime"
	"unsafe"

	"github.com/ik5/mp3bridge/formats/mp3"
)

// Available reports whether the package was built against libmp3lame.
const Available = true

// Encoder owns one lame_global_flags. Methods return LAME's own codes:
// negative on failure, otherwise a byte count or zero.
type Encoder struct {
	gfp     C.lame_t
	cleanup runtime.Cleanup
}

func closeFlags(gfp uintptr) {
	C.lame_close(C.lame_t(unsafe.Pointer(gfp)))
}

// New allocates LAME state with default parameters.
func New() (*Encoder, error) {
	gfp := C.lame_init()
	if gfp == nil {
		return nil, ErrInit
	}

	e := &Encoder{gfp: gfp}
	e.cleanup = runtime.AddCleanup(e, closeFlags, uintptr(unsafe.Pointer(gfp)))

	return e, nil
}

// Version returns the version string of the linked library.
func Version() string {
	return C.GoString(C.get_lame_version())
}

func (e *Encoder) SetNumChannels(n int) int {
	return int(C.lame_set_num_channels(e.gfp, C.int(n)))
}

func (e *Encoder) SetInSampleRate(hz int) int {
	return int(C.lame_set_in_samplerate(e.gfp, C.int(hz)))
}

func (e *Encoder) SetBitRate(kbps int) int {
	return int(C.lame_set_brate(e.gfp, C.int(kbps)))
}

func (e *Encoder) SetMode(m mp3.Mode) int {
	return int(C.lame_set_mode(e.gfp, C.MPEG_mode(m)))
}

func (e *Encoder) SetQuality(q int) int {
	return int(C.lame_set_quality(e.gfp, C.int(q)))
}

func (e *Encoder) InitParams() int {
	return int(C.lame_init_params(e.gfp))
}

// EncodeBuffer encodes n ticks of planar PCM. LAME only reads right when
// it was configured for two channels, so left stands in for a nil right.
func (e *Encoder) EncodeBuffer(left, right []int16, n int, out []byte) int {
	if n == 0 || len(out) == 0 {
		return 0
	}
	if right == nil {
		right = left
	}

	return int(C.lame_encode_buffer(e.gfp,
		(*C.short)(unsafe.Pointer(&left[0])),
		(*C.short)(unsafe.Pointer(&right[0])),
		C.int(n),
		(*C.uchar)(unsafe.Pointer(&out[0])),
		C.int(len(out))))
}

func (e *Encoder) EncodeBufferInterleaved(pcm []int16, ticks int, out []byte) int {
	if ticks == 0 || len(out) == 0 {
		return 0
	}

	return int(C.lame_encode_buffer_interleaved(e.gfp,
		(*C.short)(unsafe.Pointer(&pcm[0])),
		C.int(ticks),
		(*C.uchar)(unsafe.Pointer(&out[0])),
		C.int(len(out))))
}

func (e *Encoder) Flush(out []byte) int {
	if len(out) == 0 {
		return 0
	}

	return int(C.lame_encode_flush(e.gfp, (*C.uchar)(unsafe.Pointer(&out[0])), C.int(len(out))))
}

// Close frees the LAME state. Later calls return 0 and do nothing.
func (e *Encoder) Close() int {
	if e.gfp == nil {
		return 0
	}

	e.cleanup.Stop()
	rc := int(C.lame_close(e.gfp))
	e.gfp = nil

	return rc
}
