// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestWriteWAV16_Header(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		sampleRate int
		channels   int
		samples    []int16
	}{
		{"mono", 8000, 1, []int16{1, 2, 3}},
		{"stereo", 44100, 2, []int16{1, -1, 2, -2}},
		{"empty", 48000, 2, nil},
		{"above one chunk", 16000, 1, make([]int16, 10000)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			if err := WriteWAV16(&buf, tt.sampleRate, tt.channels, tt.samples); err != nil {
				t.Fatalf("WriteWAV16() error = %v", err)
			}

			data := buf.Bytes()
			dataSize := 2 * len(tt.samples)

			if len(data) != headerSize+dataSize {
				t.Fatalf("len = %d, want %d", len(data), headerSize+dataSize)
			}
			if string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" || string(data[36:40]) != "data" {
				t.Fatalf("bad chunk ids in %q", data[:44])
			}

			le := binary.LittleEndian
			checks := []struct {
				field string
				got   int
				want  int
			}{
				{"riff size", int(le.Uint32(data[4:8])), 36 + dataSize},
				{"format", int(le.Uint16(data[20:22])), formatPCM},
				{"channels", int(le.Uint16(data[22:24])), tt.channels},
				{"sample rate", int(le.Uint32(data[24:28])), tt.sampleRate},
				{"byte rate", int(le.Uint32(data[28:32])), tt.sampleRate * tt.channels * 2},
				{"block align", int(le.Uint16(data[32:34])), tt.channels * 2},
				{"bits", int(le.Uint16(data[34:36])), 16},
				{"data size", int(le.Uint32(data[40:44])), dataSize},
			}
			for _, c := range checks {
				if c.got != c.want {
					t.Errorf("%s = %d, want %d", c.field, c.got, c.want)
				}
			}

			for i, s := range tt.samples {
				if got := int16(le.Uint16(data[headerSize+2*i:])); got != s {
					t.Fatalf("sample[%d] = %d, want %d", i, got, s)
				}
			}
		})
	}
}

func TestWriteWAV16_PartialTick(t *testing.T) {
	t.Parallel()

	err := WriteWAV16(&bytes.Buffer{}, 8000, 2, []int16{1, 2, 3})
	if !errors.Is(err, ErrUnsupportedWavLayout) {
		t.Errorf("WriteWAV16() error = %v, want %v", err, ErrUnsupportedWavLayout)
	}
}

func TestWriteWAV16_RoundTrip(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := WriteWAV16(&buf, 22050, 2, []int16{16384, -16384, 0, 0}); err != nil {
		t.Fatalf("WriteWAV16() error = %v", err)
	}

	rate, channels, got := readAll(t, Decoder{}, &buf, 64)
	if rate != 22050 || channels != 2 || len(got) != 4 {
		t.Fatalf("decoded %d Hz %d ch %d samples", rate, channels, len(got))
	}
	if got[0] != 0.5 || got[1] != -0.5 {
		t.Errorf("samples = %v, want [0.5 -0.5 0 0]", got)
	}
}

func TestWriter(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}

	w := NewWriter(f, 32000, 2)
	for range 3 {
		if err := w.Write([]int16{8192, -8192, 1, 1}); err != nil {
			t.Fatalf("Write() error = %v", err)
		}
	}
	if err := w.Write([]int16{1}); !errors.Is(err, ErrUnsupportedWavLayout) {
		t.Errorf("Write(partial tick) error = %v, want %v", err, ErrUnsupportedWavLayout)
	}
	if w.Ticks() != 6 {
		t.Errorf("Ticks() = %d, want 6", w.Ticks())
	}

	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second Close() error = %v", err)
	}
	if err := w.Write([]int16{0, 0}); !errors.Is(err, ErrWriterClosed) {
		t.Errorf("Write() after Close error = %v, want %v", err, ErrWriterClosed)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	in, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}

	rate, channels, got := readAll(t, Decoder{}, in, 5)
	if rate != 32000 || channels != 2 {
		t.Errorf("format = %d Hz %d ch, want 32000 Hz 2 ch", rate, channels)
	}
	if len(got) != 12 {
		t.Fatalf("decoded %d samples, want 12", len(got))
	}
	if got[0] != 0.25 || got[1] != -0.25 {
		t.Errorf("first tick = %v, %v, want 0.25, -0.25", got[0], got[1])
	}
}

func BenchmarkWriteWAV16(b *testing.B) {
	samples := make([]int16, 44100)

	for b.Loop() {
		_ = WriteWAV16(&bytes.Buffer{}, 44100, 1, samples)
	}
}
