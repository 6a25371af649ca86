// SPDX-License-Identifier: EPL-2.0

package utils

import (
	"math"
	"slices"
	"testing"
)

func TestFloat32ToInt16(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input float32
		want  int16
	}{
		{"zero", 0, 0},
		{"max", 1, math.MaxInt16},
		{"min", -1, -math.MaxInt16},
		{"half", 0.5, 16383},
		{"negative half", -0.5, -16383},
		{"small", 0.001, 32},
		{"clamp over max", 1.5, math.MaxInt16},
		{"clamp under min", -100, -math.MaxInt16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Float32ToInt16(tt.input); got != tt.want {
				t.Errorf("Float32ToInt16(%v) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestFloat32ToInt16_Monotonic(t *testing.T) {
	t.Parallel()

	prev := Float32ToInt16(-1)
	for f := -0.99; f <= 1.0; f += 0.01 {
		curr := Float32ToInt16(float32(f))
		if curr < prev {
			t.Fatalf("Float32ToInt16(%v) = %d, below previous %d", f, curr, prev)
		}
		prev = curr
	}
}

func TestInt16ToFloat32(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input int16
		want  float32
	}{
		{0, 0},
		{math.MinInt16, -1},
		{16384, 0.5},
	}

	for _, tt := range tests {
		if got := Int16ToFloat32(tt.input); got != tt.want {
			t.Errorf("Int16ToFloat32(%d) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestFloat32ToInt16Slice(t *testing.T) {
	t.Parallel()

	src := []float32{0, 1, -1, 0.5}

	tests := []struct {
		name   string
		dstLen int
		want   []int16
	}{
		{"same length", 4, []int16{0, 32767, -32767, 16383}},
		{"short dst", 2, []int16{0, 32767}},
		{"long dst", 6, []int16{0, 32767, -32767, 16383, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dst := make([]int16, tt.dstLen)
			n := Float32ToInt16Slice(dst, src)

			if n != min(tt.dstLen, len(src)) {
				t.Errorf("Float32ToInt16Slice() = %d, want %d", n, min(tt.dstLen, len(src)))
			}
			if !slices.Equal(dst, tt.want) {
				t.Errorf("dst = %v, want %v", dst, tt.want)
			}
		})
	}
}

func TestRemix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		samples  []int16
		from, to int
		want     []int16
	}{
		{"same layout", []int16{1, 2}, 2, 2, []int16{1, 2}},
		{"stereo to mono", []int16{10, 20, -4, 4}, 2, 1, []int16{15, 0}},
		{"mono to stereo", []int16{7, -7}, 1, 2, []int16{7, 7, -7, -7}},
		{"stereo to quad", []int16{1, 2}, 2, 4, []int16{1, 2, 2, 2}},
		{"quad to stereo", []int16{1, 2, 3, 4}, 4, 2, []int16{1, 2}},
		{"partial tick dropped", []int16{1, 2, 3}, 2, 1, []int16{1}},
		{"invalid layout", []int16{1, 2}, 0, 2, []int16{1, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Remix(tt.samples, tt.from, tt.to); !slices.Equal(got, tt.want) {
				t.Errorf("Remix(%v, %d, %d) = %v, want %v", tt.samples, tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func BenchmarkFloat32ToInt16Slice(b *testing.B) {
	src := make([]float32, 8000)
	for i := range src {
		src[i] = float32(math.Sin(float64(i) * 0.1))
	}
	dst := make([]int16, len(src))

	b.ReportAllocs()
	for b.Loop() {
		Float32ToInt16Slice(dst, src)
	}
}
