// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"bytes"
	"io"
	"slices"
	"testing"
	"testing/iotest"

	"github.com/ik5/mp3bridge/internal/audiotest"
)

func id3Tag(payload []byte) []byte {
	n := len(payload)
	tag := []byte{'I', 'D', '3', 4, 0, 0,
		byte(n >> 21 & 0x7F), byte(n >> 14 & 0x7F), byte(n >> 7 & 0x7F), byte(n & 0x7F)}
	return append(tag, payload...)
}

func drainHeaders(t *testing.T, tr *headerTracker) []FrameHeader {
	t.Helper()

	if _, err := io.ReadAll(tr); err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}

	var got []FrameHeader
	for {
		h, ok := tr.pop()
		if !ok {
			return got
		}
		got = append(got, h)
	}
}

func TestHeaderTracker(t *testing.T) {
	t.Parallel()

	stereo := audiotest.SilentMP3(3, 44100, false)

	tests := []struct {
		name      string
		input     []byte
		oneByte   bool
		wantCount int
	}{
		{"plain frames", stereo, false, 3},
		{"byte at a time", stereo, true, 3},
		{"leading garbage", append([]byte("junk"), stereo...), false, 3},
		{"id3 tag with sync inside", append(id3Tag([]byte{0xFF, 0xFB, 0x90, 0x00, 1, 2, 3}), stereo...), false, 3},
		{"id3 tag byte at a time", append(id3Tag(make([]byte, 32)), stereo...), true, 3},
		{"short id3 prefix", append([]byte("ID"), stereo...), false, 3},
		{"id3v1 tag", append(append([]byte("TAG"), make([]byte, 125)...), stereo...), false, 3},
		{"empty", nil, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var r io.Reader = bytes.NewReader(tt.input)
			if tt.oneByte {
				r = iotest.OneByteReader(r)
			}

			got := drainHeaders(t, newHeaderTracker(r))
			if len(got) != tt.wantCount {
				t.Fatalf("headers = %d, want %d", len(got), tt.wantCount)
			}

			for i, h := range got {
				if h.SampleRate != 44100 || h.BitRate != 128 || h.Channels() != 2 {
					t.Errorf("header[%d] = %+v, want 44100 Hz 128 kbps stereo", i, h)
				}
			}
		})
	}
}

func TestHeaderTracker_MixedFormats(t *testing.T) {
	t.Parallel()

	input := append(audiotest.SilentMP3(2, 44100, false), audiotest.SilentMP3(2, 48000, true)...)
	got := drainHeaders(t, newHeaderTracker(bytes.NewReader(input)))

	want := []Format{
		{Channels: 2, SampleRate: 44100, BitRate: 128},
		{Channels: 2, SampleRate: 44100, BitRate: 128},
		{Channels: 1, SampleRate: 48000, BitRate: 128},
		{Channels: 1, SampleRate: 48000, BitRate: 128},
	}

	if len(got) != len(want) {
		t.Fatalf("headers = %d, want %d", len(got), len(want))
	}

	for i := range want {
		if got[i].Format() != want[i] {
			t.Errorf("header[%d].Format() = %+v, want %+v", i, got[i].Format(), want[i])
		}
	}
}

func TestHeaderTracker_Resync(t *testing.T) {
	t.Parallel()

	frame := audiotest.SilentMP3Frame(44100, false)

	tr := newHeaderTracker(bytes.NewReader(frame[:100]))
	if _, err := io.ReadAll(tr); err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}

	tr.resync(false)
	if _, ok := tr.pop(); ok {
		t.Error("pop() after resync returned a header")
	}

	tr.r = bytes.NewReader(frame)
	got := drainHeaders(t, tr)
	if len(got) != 1 {
		t.Errorf("headers after resync = %d, want 1", len(got))
	}
}

func TestNextFrameEnd(t *testing.T) {
	t.Parallel()

	frame := audiotest.SilentMP3Frame(44100, false)
	tag := id3Tag(make([]byte, 20))
	layer2 := []byte{0xFF, 0xFD, 0x90, 0x00, 0, 0}

	tests := []struct {
		name    string
		input   []byte
		atStart bool
		want    int
		wantOK  bool
	}{
		{"empty", nil, true, 0, false},
		{"whole frame", frame, false, len(frame), true},
		{"frame and more", append(slices.Clone(frame), frame[:10]...), false, len(frame), true},
		{"partial frame", frame[:len(frame)-1], false, 0, false},
		{"header only", frame[:HeaderSize], false, 0, false},
		{"garbage in front", append([]byte{1, 2, 3}, frame...), false, len(frame) + 3, true},
		{"tag in front", append(slices.Clone(tag), frame...), true, len(tag) + len(frame), true},
		{"tag not yet complete", tag[:5], true, 0, false},
		{"tag prefix", []byte("TA"), true, 0, false},
		{"tag bytes mid stream", append([]byte("ID3"), frame...), false, len(frame) + 3, true},
		{"layer II needs its header only", layer2, false, HeaderSize, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := nextFrameEnd(tt.input, tt.atStart)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("nextFrameEnd() = %d, %v, want %d, %v", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestHeaderTracker_FillKeepsPartialFrame(t *testing.T) {
	t.Parallel()

	frame := audiotest.SilentMP3Frame(44100, false)
	src := &trickleReader{data: frame[:300]}
	tr := newHeaderTracker(src)

	if err := tr.fill(true); err != io.EOF {
		t.Fatalf("fill() error = %v, want io.EOF", err)
	}
	if tr.buffered() != 300 {
		t.Errorf("buffered = %d, want 300", tr.buffered())
	}

	src.data = frame[300:]
	if err := tr.fill(true); err != nil {
		t.Fatalf("fill() error = %v", err)
	}

	got, err := io.ReadAll(io.LimitReader(tr, int64(len(frame))))
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if !bytes.Equal(got, frame) {
		t.Error("tracker did not hand out the frame as it arrived")
	}
	if _, ok := tr.pop(); !ok {
		t.Error("pop() found no header for the buffered frame")
	}
}

// trickleReader returns what it holds, then io.EOF until it is refilled.
type trickleReader struct{ data []byte }

func (r *trickleReader) Read(p []byte) (int, error) {
	if len(r.data) == 0 {
		return 0, io.EOF
	}
	n := copy(p, r.data)
	r.data = r.data[n:]
	return n, nil
}
