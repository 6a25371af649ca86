// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"

	"github.com/ik5/mp3bridge/utils"
)

// PCM16 reads a Source as interleaved signed 16-bit samples, the input the
// MP3 encoder takes.
type PCM16 struct {
	src Source
	tmp []float32
}

func NewPCM16(src Source) *PCM16 {
	return &PCM16{src: src}
}

func (p *PCM16) SampleRate() int { return p.src.SampleRate() }
func (p *PCM16) Channels() int   { return p.src.Channels() }

// Read fills dst with whole ticks, so len(dst) must be a multiple of the
// channel count. The last samples may arrive together with io.EOF.
func (p *PCM16) Read(dst []int16) (int, error) {
	if len(dst)%p.src.Channels() != 0 {
		return 0, fmt.Errorf("%w: %d for %d channels", ErrInvalidDstSize, len(dst), p.src.Channels())
	}

	if cap(p.tmp) < len(dst) {
		p.tmp = make([]float32, len(dst))
	}
	tmp := p.tmp[:len(dst)]

	n, err := p.src.ReadSamples(tmp)
	return utils.Float32ToInt16Slice(dst, tmp[:n]), err
}

func (p *PCM16) Close() error {
	if err := p.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}
