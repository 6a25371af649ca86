// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/ik5/mp3bridge"
	"github.com/ik5/mp3bridge/audio"
	"github.com/ik5/mp3bridge/formats/aiff"
	"github.com/ik5/mp3bridge/formats/flac"
	"github.com/ik5/mp3bridge/formats/mp3"
	"github.com/ik5/mp3bridge/formats/vorbis"
	"github.com/ik5/mp3bridge/formats/wav"
	"github.com/ik5/mp3bridge/utils"
)

// ticks handed to the encoder per Write
const encodeChunkTicks = 4 * 1152

func newRegistry(emptyReads int) *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register(wav.Decoder{}, ".wav", ".wave")
	reg.Register(aiff.Decoder{}, ".aif", ".aiff")
	reg.Register(vorbis.Decoder{}, ".ogg", ".oga")
	reg.Register(flac.Decoder{}, ".flac")
	reg.Register(mp3.SourceDecoder{EmptyReadsBeforeEOF: emptyReads}, ".mp3")
	return reg
}

type encodeCmd struct {
	Input   string `arg:"" type:"existingfile" help:"Input audio file."`
	Output  string `arg:"" help:"Output MP3 file."`
	BitRate int    `name:"bitrate" short:"b" default:"128" help:"Bit rate in kbps." env:"MP3CONV_BITRATE"`
	Quality int    `short:"q" default:"5" help:"Encoder quality, 0 (best) to 9 (fastest)." env:"MP3CONV_QUALITY"`
	Mono    bool   `help:"Downmix to one channel." env:"MP3CONV_MONO"`
}

func (c *encodeCmd) Run(a *app) error {
	dec, err := newRegistry(a.emptyReads).ForPath(c.Input)
	if err != nil {
		return err
	}

	in, err := os.Open(c.Input)
	if err != nil {
		return fmt.Errorf("%w", err)
	}

	var src audio.Source
	src, err = dec.Decode(in)
	if err != nil {
		_ = in.Close()
		return fmt.Errorf("decoding %s: %w", c.Input, err)
	}
	defer src.Close()

	if !c.Mono && src.Channels() > 2 {
		printWarning(a.stdout, fmt.Sprintf("%d channels downmixed to mono", src.Channels()))
		c.Mono = true
	}
	if c.Mono {
		src = audio.NewMonoMixer(src)
	}
	pcm := audio.NewPCM16(src)

	out, err := os.Create(c.Output)
	if err != nil {
		return fmt.Errorf("%w", err)
	}

	enc, err := mp3bridge.NewEncoder(a.bridge, out, pcm.Channels(), pcm.SampleRate(), c.BitRate, c.Quality)
	if err != nil {
		_ = out.Close()
		return err
	}

	a.log.Debug("encoding",
		zap.String("input", c.Input),
		zap.Int("channels", pcm.Channels()),
		zap.Int("sample_rate", pcm.SampleRate()))

	ticks, err := pump(pcm, enc)
	if err != nil {
		return errors.Join(err, enc.Close())
	}
	if err := enc.Close(); err != nil {
		return err
	}

	printSuccess(a.stdout, fmt.Sprintf("%s → %s", c.Input, c.Output))
	printInfo(a.stdout, "Channels", pcm.Channels())
	printInfo(a.stdout, "Sample rate", fmt.Sprintf("%d Hz", pcm.SampleRate()))
	printInfo(a.stdout, "Bit rate", fmt.Sprintf("%d kbps", c.BitRate))
	printInfo(a.stdout, "Ticks", ticks)
	return nil
}

// pump moves all of pcm through enc and returns the ticks encoded.
func pump(pcm *audio.PCM16, enc *mp3bridge.Encoder) (int, error) {
	buf := make([]int16, encodeChunkTicks*pcm.Channels())
	ticks := 0

	for {
		n, err := pcm.Read(buf)
		if n > 0 {
			if werr := enc.Write(buf[:n]); werr != nil {
				return ticks, werr
			}
			ticks += n / pcm.Channels()
		}
		if err == io.EOF {
			return ticks, nil
		}
		if err != nil {
			return ticks, fmt.Errorf("%w", err)
		}
	}
}

type decodeCmd struct {
	Input  string `arg:"" type:"existingfile" help:"Input MP3 file."`
	Output string `arg:"" help:"Output WAV file, - for standard output."`
}

func (c *decodeCmd) Run(a *app) error {
	in, err := os.Open(c.Input)
	if err != nil {
		return fmt.Errorf("%w", err)
	}

	if c.Output == "-" {
		decoded, err := mp3bridge.DecodeAll(context.Background(), a.bridge, in)
		if err != nil {
			return err
		}
		if decoded.Channels <= 0 {
			return fmt.Errorf("%w: no audio frames in %s", mp3bridge.ErrNativeDecode, c.Input)
		}
		return wav.WriteWAV16(a.stdout, decoded.SampleRate, decoded.Channels, decoded.Samples)
	}

	dec := mp3bridge.NewDecoder(a.bridge, in)
	defer dec.Close()

	ctx := context.Background()
	first, err := dec.NextFrame(ctx)
	if err == io.EOF {
		return fmt.Errorf("%w: no audio frames in %s", mp3bridge.ErrNativeDecode, c.Input)
	}
	if err != nil {
		return err
	}
	format, _ := dec.Format()

	out, err := os.Create(c.Output)
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	defer out.Close()

	w := wav.NewWriter(out, format.SampleRate, format.Channels)
	for samples := first; ; {
		// a stream that changes format midway keeps the layout of its first frame
		frame, _ := dec.FrameFormat()
		if err := w.Write(utils.Remix(samples, frame.Channels, format.Channels)); err != nil {
			return errors.Join(err, w.Close())
		}

		samples, err = dec.NextFrame(ctx)
		if err == io.EOF {
			break
		}
		if err != nil {
			return errors.Join(err, w.Close())
		}
	}

	if err := w.Close(); err != nil {
		return err
	}

	printSuccess(a.stdout, fmt.Sprintf("%s → %s", c.Input, c.Output))
	printInfo(a.stdout, "Channels", format.Channels)
	printInfo(a.stdout, "Sample rate", fmt.Sprintf("%d Hz", format.SampleRate))
	printInfo(a.stdout, "Ticks", w.Ticks())
	return nil
}

type infoCmd struct {
	Input string `arg:"" type:"existingfile" help:"Input MP3 file."`
}

func (c *infoCmd) Run(a *app) error {
	in, err := os.Open(c.Input)
	if err != nil {
		return fmt.Errorf("%w", err)
	}

	decoded, err := mp3bridge.DecodeAll(context.Background(), a.bridge, in)
	if err != nil {
		return err
	}
	if decoded.Channels <= 0 {
		return fmt.Errorf("%w: no audio frames in %s", mp3bridge.ErrNativeDecode, c.Input)
	}

	printTitle(a.stdout, c.Input)
	printInfo(a.stdout, "Sample rate", fmt.Sprintf("%d Hz", decoded.SampleRate))
	printInfo(a.stdout, "Bit rate", fmt.Sprintf("%d kbps", decoded.BitRate))
	printInfo(a.stdout, "Channels", decoded.Channels)
	printInfo(a.stdout, "Samples", len(decoded.Samples))
	printInfo(a.stdout, "Duration", formatDuration(decoded.Duration()))
	return nil
}
