// SPDX-License-Identifier: EPL-2.0

// Package audio holds the PCM plumbing in front of the MP3 encoder.
//
// # Source Interface
//
// Every input decoder yields a Source:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// Samples are interleaved float32 values in [-1, 1]. A Source may return
// its last samples together with io.EOF, so callers consume n before they
// look at the error:
//
//	for {
//	    n, err := source.ReadSamples(buf)
//	    process(buf[:n])
//	    if err == io.EOF {
//	        break
//	    }
//	    if err != nil {
//	        return err
//	    }
//	}
//
// # Format Registry
//
// A Registry picks the decoder for a file by its extension:
//
//	registry := audio.NewRegistry()
//	registry.Register(wav.Decoder{}, ".wav", ".wave")
//	dec, err := registry.ForPath("input.wav")
//
// # Channel Mixing
//
// MonoMixer averages all channels of every tick into one.
//
// # 16-bit PCM
//
// PCM16 turns a Source into the interleaved int16 samples the encoder
// takes, reading whole ticks only.
package audio
