// SPDX-License-Identifier: EPL-2.0

package stream

import (
	"context"
	"fmt"
	"io"
)

// DefaultEmptyReadsBeforeEOF is the number of consecutive empty pulls a
// binding tolerates before the adapter reports io.EOF.
const DefaultEmptyReadsBeforeEOF = 3

// Adapter is an io.Reader that pulls from whatever Stream is bound to the
// current call. It is meant to be handed once to a codec that keeps the
// reader for its lifetime, while the stream and the calling context change
// on every call:
//
//	err := a.With(ctx, s, func() error {
//	    _, err := codec.Read(pcm) // codec calls a.Read as often as it needs
//	    return err
//	})
//
// Outside With the adapter is unbound and every Read fails.
// An Adapter must not be used by more than one call at a time.
type Adapter struct {
	ctx   context.Context
	src   Stream
	bound bool

	emptyLimit int
	empties    int
	pulls      int
	eof        bool
	err        error

	scratch []byte
}

// NewAdapter returns an unbound adapter. emptyReadsBeforeEOF below 1 is
// treated as 1.
func NewAdapter(emptyReadsBeforeEOF int) *Adapter {
	return &Adapter{
		emptyLimit: max(emptyReadsBeforeEOF, 1),
	}
}

// With binds ctx and s for the duration of fn. The binding is removed when
// fn returns or panics, whatever the outcome.
func (a *Adapter) With(ctx context.Context, s Stream, fn func() error) error {
	if a.bound {
		return ErrAlreadyBound
	}
	if s == nil {
		return fmt.Errorf("%w: nil stream", ErrStreamIO)
	}

	a.ctx = ctx
	a.src = s
	a.bound = true
	a.empties = 0
	a.pulls = 0
	a.eof = false
	a.err = nil
	defer a.unbind()

	return fn()
}

func (a *Adapter) unbind() {
	a.ctx = nil
	a.src = nil
	a.bound = false
}

// Bound reports whether a call currently holds the adapter.
func (a *Adapter) Bound() bool { return a.bound }

// Err returns the first failure of the most recent binding, if any.
func (a *Adapter) Err() error { return a.err }

// Exhausted reports whether the most recent binding ran into io.EOF.
func (a *Adapter) Exhausted() bool { return a.eof }

// Pulls returns how many times the most recent binding asked its stream
// for bytes.
func (a *Adapter) Pulls() int { return a.pulls }

// Read issues exactly one pull for up to len(p) bytes.
func (a *Adapter) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if !a.bound {
		return 0, a.fail(ErrUnbound)
	}
	if a.ctx == nil {
		return 0, a.fail(ErrNoContext)
	}
	if err := a.ctx.Err(); err != nil {
		return 0, a.fail(fmt.Errorf("%w: %w", ErrNoContext, err))
	}

	if cap(a.scratch) < len(p) {
		a.scratch = make([]byte, len(p))
	}
	buf := a.scratch[:len(p)]

	a.pulls++
	n, err := a.pull(buf)
	if err != nil {
		return 0, a.fail(err)
	}
	if n > len(buf) {
		return 0, a.fail(fmt.Errorf("%w: got %d for a %d byte buffer", ErrOverread, n, len(buf)))
	}

	if n <= 0 {
		a.empties++
		if a.empties >= a.emptyLimit {
			a.eof = true
			return 0, io.EOF
		}
		return 0, nil
	}

	a.empties = 0
	copy(p, buf[:n])

	return n, nil
}

func (a *Adapter) pull(buf []byte) (n int, err error) {
	defer func() {
		if r := recover(); r != nil {
			n, err = 0, fmt.Errorf("%w: stream panicked: %v", ErrStreamIO, r)
		}
	}()

	n, err = a.src.Pull(a.ctx, buf)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrStreamIO, err)
	}

	return n, nil
}

func (a *Adapter) fail(err error) error {
	if a.err == nil {
		a.err = err
	}
	return err
}
