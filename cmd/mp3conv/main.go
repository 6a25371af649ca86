// SPDX-License-Identifier: EPL-2.0

// Command mp3conv converts between MP3 and PCM audio through mp3bridge.
package main

import (
	"io"
	"os"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"

	"github.com/ik5/mp3bridge"
	"github.com/ik5/mp3bridge/internal/lame"
)

// version is set via ldflags at build time
var version = "dev"

type cli struct {
	Verbose    bool             `short:"v" help:"Log session events to stderr." env:"MP3CONV_VERBOSE"`
	EmptyReads int              `name:"empty-reads" default:"3" help:"Consecutive empty reads that end an MP3 stream." env:"MP3CONV_EMPTY_READS"`
	Version    kong.VersionFlag `help:"Show version information."`

	Encode encodeCmd `cmd:"" help:"Encode WAV, AIFF, Ogg Vorbis, FLAC or MP3 to MP3."`
	Decode decodeCmd `cmd:"" help:"Decode MP3 to 16-bit WAV."`
	Info   infoCmd   `cmd:"" help:"Show the format and length of an MP3."`
}

// app is what every command runs against.
type app struct {
	bridge     *mp3bridge.Bridge
	log        *zap.Logger
	emptyReads int
	stdout     io.Writer
}

// versionString names the build and the encoder library it links.
func versionString() string {
	if v := lame.Version(); v != "" {
		return version + " (libmp3lame " + v + ")"
	}
	return version + " (without libmp3lame)"
}

func newLogger(verbose bool) *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}

	log, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return log
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	var c cli
	parser, err := kong.New(&c,
		kong.Name("mp3conv"),
		kong.Description("Encode and decode MP3 through libmp3lame and go-mp3."),
		kong.Vars{"version": versionString()},
	)
	if err != nil {
		printError(os.Stderr, err)
		return 2
	}

	ctx, err := parser.Parse(args)
	if err != nil {
		printError(os.Stderr, err)
		return 2
	}

	log := newLogger(c.Verbose)
	defer func() { _ = log.Sync() }()

	bridge := mp3bridge.New(
		mp3bridge.WithLogger(log),
		mp3bridge.WithEmptyReadsBeforeEOF(c.EmptyReads),
	)
	defer bridge.Close()

	err = ctx.Run(&app{
		bridge:     bridge,
		log:        log,
		emptyReads: c.EmptyReads,
		stdout:     os.Stdout,
	})
	if err != nil {
		log.Debug("command failed", zap.String("command", ctx.Command()), zap.Error(err))
		printError(os.Stderr, err)
		return 1
	}
	return 0
}
