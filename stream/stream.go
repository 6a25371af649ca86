// SPDX-License-Identifier: EPL-2.0

package stream

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// Stream is the byte source a caller lends to a decode call.
//
// Pull reads up to len(p) bytes into p and returns how many it read.
// A count of zero (or less) means "nothing right now"; it is not an error
// and not end of stream by itself.
type Stream interface {
	Pull(ctx context.Context, p []byte) (int, error)
}

// Func adapts a plain function to Stream.
type Func func(ctx context.Context, p []byte) (int, error)

func (f Func) Pull(ctx context.Context, p []byte) (int, error) { return f(ctx, p) }

type readerStream struct {
	r io.Reader
}

// FromReader wraps r as a Stream. io.EOF from r is reported as "nothing
// right now"; any other error is passed through.
func FromReader(r io.Reader) Stream {
	return &readerStream{r: r}
}

func (s *readerStream) Pull(_ context.Context, p []byte) (int, error) {
	n, err := s.r.Read(p)
	if errors.Is(err, io.EOF) {
		return n, nil
	}
	if err != nil {
		return n, fmt.Errorf("%w", err)
	}

	return n, nil
}
