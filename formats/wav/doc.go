// SPDX-License-Identifier: EPL-2.0

// Package wav reads and writes PCM WAV files on top of github.com/go-audio/wav.
//
// # Decoding
//
// Decoder accepts signed integer PCM of 16, 24 or 32 bits with any
// channel count and sample rate:
//
//	src, err := wav.Decoder{}.Decode(file)
//	if err != nil {
//	    return err
//	}
//	defer src.Close()
//
// The chunk walk needs to seek; a reader that cannot is buffered in
// memory first. Closing the Source closes the reader when it is an
// io.Closer.
//
// # Writing
//
// Writer streams 16-bit PCM of any channel count and patches the header
// sizes on Close, so it needs an io.WriteSeeker such as *os.File:
//
//	w := wav.NewWriter(file, 44100, 2)
//	for frame := range frames {
//	    if err := w.Write(frame); err != nil {
//	        return err
//	    }
//	}
//	return w.Close()
//
// WriteWAV16 writes a whole file in one pass to any io.Writer, which is
// what a pipe or standard output needs.
package wav
