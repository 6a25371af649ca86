// SPDX-License-Identifier: EPL-2.0

package mp3bridge

import (
	"go.uber.org/zap"

	"github.com/ik5/mp3bridge/formats/mp3"
	"github.com/ik5/mp3bridge/internal/lame"
	"github.com/ik5/mp3bridge/stream"
)

// NativeFactory creates the encoder state behind one encoder handle.
type NativeFactory func() (mp3.NativeEncoder, error)

// Config holds the settings of a Bridge.
type Config struct {
	// Logger receives lifecycle events. Defaults to a no-op logger.
	Logger *zap.Logger

	// EmptyReadsBeforeEOF is how many consecutive empty pulls one decode
	// call accepts before it treats the stream as ended.
	EmptyReadsBeforeEOF int

	// NativeEncoder creates encoder state. Defaults to libmp3lame.
	NativeEncoder NativeFactory
}

// DefaultConfig returns the configuration New starts from.
func DefaultConfig() Config {
	return Config{
		Logger:              zap.NewNop(),
		EmptyReadsBeforeEOF: stream.DefaultEmptyReadsBeforeEOF,
		NativeEncoder:       newLAME,
	}
}

// Option changes one setting of a Config.
type Option func(*Config)

// WithLogger sets the logger. A nil logger keeps the default.
func WithLogger(l *zap.Logger) Option {
	return func(c *Config) {
		if l != nil {
			c.Logger = l
		}
	}
}

// WithEmptyReadsBeforeEOF sets how many consecutive empty pulls end a
// decode call. Values below 1 are treated as 1.
func WithEmptyReadsBeforeEOF(n int) Option {
	return func(c *Config) {
		c.EmptyReadsBeforeEOF = max(n, 1)
	}
}

// WithNativeEncoder replaces the LAME binding, mostly for tests.
func WithNativeEncoder(f NativeFactory) Option {
	return func(c *Config) {
		if f != nil {
			c.NativeEncoder = f
		}
	}
}

func newLAME() (mp3.NativeEncoder, error) {
	enc, err := lame.New()
	if err != nil {
		return nil, err // a typed nil must not escape as a non-nil interface
	}
	return enc, nil
}
