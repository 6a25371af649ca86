// SPDX-License-Identifier: EPL-2.0

// Package mp3 provides frame-by-frame MPEG audio decoding and MP3 encoding.
//
// Decoding uses github.com/hajimehoshi/go-mp3. Encoding drives any
// implementation of NativeEncoder, normally the LAME binding in
// internal/lame.
//
// # Decoding
//
// A Decoder never owns its input. Each call to NextFrame lends it a
// stream.Stream together with the calling context, and the Decoder pulls
// from it until one frame is complete:
//
//	dec := mp3.NewDecoder(stream.DefaultEmptyReadsBeforeEOF)
//	defer dec.Close()
//
//	for {
//	    frame, err := dec.NextFrame(ctx, stream.FromReader(file))
//	    if err == io.EOF {
//	        break
//	    }
//	    if err != nil {
//	        return err
//	    }
//	    // frame.Samples holds frame.Ticks() interleaved ticks
//	}
//
// The session format (channels, sample rate, bit rate) is fixed by the
// first decoded frame. Before that every accessor reports -1.
//
// A stream that has nothing to give for EmptyReadsBeforeEOF consecutive
// pulls is treated as ended for that call. A later call resumes once the
// stream produces data again, even when it ran dry in the middle of a
// frame: the codec is only handed frames that have arrived in full.
//
// # Output Format
//
// Samples are signed 16-bit, interleaved. Mono frames yield one sample per
// tick even though go-mp3 renders every frame as stereo.
//
// # Encoding
//
// An Encoder is configured once and then fed interleaved PCM:
//
//	enc, err := mp3.NewEncoder(mp3.Params{Channels: 2, SampleRate: 44100, BitRate: 128, Quality: 5}, native)
//	if err != nil {
//	    return err
//	}
//	defer enc.Close()
//
//	data, err := enc.Write(pcm)
//	...
//	tail, err := enc.Flush()
//
// One channel selects ModeMono and two channels ModeJointStereo.
//
// # Sources
//
// SourceDecoder adapts the decoder to audio.Source, so MP3 can feed the
// same pipelines as the other input formats:
//
//	src, err := mp3.SourceDecoder{}.Decode(file)
//	mono := audio.NewMonoMixer(src)
//
// # Limitations
//
// go-mp3 only decodes Layer III of MPEG-1 and MPEG-2. Other layers and
// MPEG-2.5 streams fail with ErrDecode.
package mp3
