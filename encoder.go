// SPDX-License-Identifier: EPL-2.0

package mp3bridge

import (
	"errors"
	"fmt"
	"io"
	"sync"
)

// Encoder writes MP3 to an io.Writer through a Bridge session.
type Encoder struct {
	bridge *Bridge
	h      Handle
	w      io.Writer

	mtx *sync.Mutex
}

// NewEncoder opens an encode session whose output goes to w. channels must
// be 1 or 2, bitRate is in kbps and quality runs from 0 (best) to 9
// (fastest).
func NewEncoder(b *Bridge, w io.Writer, channels, sampleRate, bitRate, quality int) (*Encoder, error) {
	h, err := b.CreateEncoder(channels, sampleRate, bitRate, quality)
	if err != nil {
		return nil, err
	}

	return &Encoder{
		bridge: b,
		h:      h,
		w:      w,
		mtx:    &sync.Mutex{},
	}, nil
}

// Write encodes interleaved samples and writes whatever MP3 data is ready.
func (e *Encoder) Write(samples []int16) error {
	e.mtx.Lock()
	defer e.mtx.Unlock()

	out, err := e.bridge.Write(e.h, samples)
	if err != nil {
		return err
	}

	return e.emit(out)
}

func (e *Encoder) emit(out []byte) error {
	if len(out) == 0 {
		return nil
	}
	if _, err := e.w.Write(out); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// Close flushes the last frames, releases the session and closes the
// writer if it is an io.Closer. It is safe to call more than once.
func (e *Encoder) Close() error {
	e.mtx.Lock()
	defer e.mtx.Unlock()

	if e.h.IsZero() {
		return nil
	}

	var errs []error

	out, err := e.bridge.Flush(e.h)
	if err == nil {
		err = e.emit(out)
	}
	errs = append(errs, err)

	e.bridge.DestroyEncoder(&e.h)

	if c, ok := e.w.(io.Closer); ok {
		if err := c.Close(); err != nil {
			errs = append(errs, fmt.Errorf("%w", err))
		}
	}

	return errors.Join(errs...)
}

func (e *Encoder) IsClosed() bool {
	e.mtx.Lock()
	defer e.mtx.Unlock()

	return e.h.IsZero()
}
