// SPDX-License-Identifier: EPL-2.0

package mp3

import "fmt"

// Version is the MPEG audio version of a frame.
type Version uint8

const (
	Version25 Version = iota // MPEG 2.5
	versionReserved
	Version2
	Version1
)

// Layer is the MPEG audio layer of a frame.
type Layer uint8

const (
	layerReserved Layer = iota
	Layer3
	Layer2
	Layer1
)

// ChannelMode is the channel mode field of a frame header.
type ChannelMode uint8

const (
	ChannelStereo ChannelMode = iota
	ChannelJointStereo
	ChannelDual
	ChannelMono
)

// HeaderSize is the size of an MPEG audio frame header in bytes.
const HeaderSize = 4

// bit rates in kbps, indexed by [version is MPEG1][layer][index]
var bitRates = [2][4][16]int{
	{ // MPEG 2 / 2.5
		{},
		{0, 8, 16, 24, 32, 40, 48, 56, 64, 80, 96, 112, 128, 144, 160, -1},
		{0, 8, 16, 24, 32, 40, 48, 56, 64, 80, 96, 112, 128, 144, 160, -1},
		{0, 32, 48, 56, 64, 80, 96, 112, 128, 144, 160, 176, 192, 224, 256, -1},
	},
	{ // MPEG 1
		{},
		{0, 32, 40, 48, 56, 64, 80, 96, 112, 128, 160, 192, 224, 256, 320, -1},
		{0, 32, 48, 56, 64, 80, 96, 112, 128, 160, 192, 224, 256, 320, 384, -1},
		{0, 32, 64, 96, 128, 160, 192, 224, 256, 288, 320, 352, 384, 416, 448, -1},
	},
}

var sampleRates = [4][3]int{
	Version25: {11025, 12000, 8000},
	Version2:  {22050, 24000, 16000},
	Version1:  {44100, 48000, 32000},
}

// FrameHeader is a decoded MPEG audio frame header.
type FrameHeader struct {
	Version     Version
	Layer       Layer
	Protected   bool // a 16-bit CRC follows the header
	BitRate     int  // kbps, 0 for free format
	SampleRate  int  // Hz
	Padding     bool
	ChannelMode ChannelMode
}

// ParseHeader decodes the four header bytes at the start of b. It applies
// the same validity rules as go-mp3: sync word, no reserved version,
// layer or sample rate, no "bad" bit rate index and no reserved emphasis.
func ParseHeader(b []byte) (FrameHeader, error) {
	if len(b) < HeaderSize {
		return FrameHeader{}, fmt.Errorf("%w: need %d bytes, got %d", ErrInvalidHeader, HeaderSize, len(b))
	}

	if b[0] != 0xFF || b[1]&0xE0 != 0xE0 {
		return FrameHeader{}, fmt.Errorf("%w: no sync word", ErrInvalidHeader)
	}

	version := Version((b[1] >> 3) & 0x03)
	layer := Layer((b[1] >> 1) & 0x03)
	bitRateIndex := (b[2] >> 4) & 0x0F
	sampleRateIndex := (b[2] >> 2) & 0x03
	emphasis := b[3] & 0x03

	switch {
	case version == versionReserved:
		return FrameHeader{}, fmt.Errorf("%w: reserved version", ErrInvalidHeader)
	case layer == layerReserved:
		return FrameHeader{}, fmt.Errorf("%w: reserved layer", ErrInvalidHeader)
	case bitRateIndex == 0x0F:
		return FrameHeader{}, fmt.Errorf("%w: bad bit rate index", ErrInvalidHeader)
	case sampleRateIndex == 0x03:
		return FrameHeader{}, fmt.Errorf("%w: reserved sample rate", ErrInvalidHeader)
	case emphasis == 0x02:
		return FrameHeader{}, fmt.Errorf("%w: reserved emphasis", ErrInvalidHeader)
	}

	mpeg1 := 0
	if version == Version1 {
		mpeg1 = 1
	}

	return FrameHeader{
		Version:     version,
		Layer:       layer,
		Protected:   b[1]&0x01 == 0,
		BitRate:     bitRates[mpeg1][layer][bitRateIndex],
		SampleRate:  sampleRates[version][sampleRateIndex],
		Padding:     (b[2]>>1)&0x01 == 1,
		ChannelMode: ChannelMode(b[3] >> 6),
	}, nil
}

// Channels returns 1 for mono frames and 2 otherwise.
func (h FrameHeader) Channels() int {
	if h.ChannelMode == ChannelMono {
		return 1
	}
	return 2
}

// SamplesPerFrame returns the number of PCM ticks one frame decodes to.
func (h FrameHeader) SamplesPerFrame() int {
	switch {
	case h.Layer == Layer1:
		return 384
	case h.Layer == Layer3 && h.Version != Version1:
		return 576
	default:
		return 1152
	}
}

// FrameLength returns the frame size in bytes, header included. It is 0
// for free format frames, whose size the header does not encode.
func (h FrameHeader) FrameLength() int {
	if h.BitRate == 0 || h.SampleRate == 0 {
		return 0
	}

	padding := 0
	if h.Padding {
		padding = 1
	}

	switch {
	case h.Layer == Layer1:
		return (12*h.BitRate*1000/h.SampleRate + padding) * 4
	case h.Layer == Layer3 && h.Version != Version1:
		// halved after padding, rounded the way go-mp3 does
		return (144*h.BitRate*1000/h.SampleRate + padding) >> 1
	default:
		return 144*h.BitRate*1000/h.SampleRate + padding
	}
}

// Format returns the channel count, sample rate and bit rate of the frame.
func (h FrameHeader) Format() Format {
	return Format{
		Channels:   h.Channels(),
		SampleRate: h.SampleRate,
		BitRate:    h.BitRate,
	}
}
