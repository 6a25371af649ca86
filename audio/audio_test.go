// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"sync"
	"testing"

	"github.com/ik5/mp3bridge/internal/audiotest"
)

type mockDecoder struct {
	name string
}

func (d *mockDecoder) Decode(io.Reader) (Source, error) {
	return audiotest.Silence(44100, 2, 100), nil
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	wav := &mockDecoder{name: "wav"}
	aiff := &mockDecoder{name: "aiff"}

	registry.Register(wav, ".wav", ".wave")
	registry.Register(aiff, "aif", ".AIFF")

	tests := []struct {
		ext    string
		want   Decoder
		wantOK bool
	}{
		{".wav", wav, true},
		{"wav", wav, true},
		{".WAVE", wav, true},
		{".aif", aiff, true},
		{".aiff", aiff, true},
		{".mp4", nil, false},
		{"", nil, false},
	}

	for _, tt := range tests {
		got, ok := registry.Get(tt.ext)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("Get(%q) = %v, %v, want %v, %v", tt.ext, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestRegistry_ForPath(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	flac := &mockDecoder{name: "flac"}
	registry.Register(flac, ".flac")

	tests := []struct {
		path    string
		want    Decoder
		wantErr error
	}{
		{"/music/song.flac", flac, nil},
		{"SONG.FLAC", flac, nil},
		{"song.flac.txt", nil, ErrUnsupportedFormat},
		{"no_extension", nil, ErrUnsupportedFormat},
	}

	for _, tt := range tests {
		got, err := registry.ForPath(tt.path)
		if !errors.Is(err, tt.wantErr) || got != tt.want {
			t.Errorf("ForPath(%q) = %v, %v, want %v, %v", tt.path, got, err, tt.want, tt.wantErr)
		}
	}
}

func TestRegistry_Overwrite(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	first := &mockDecoder{name: "first"}
	second := &mockDecoder{name: "second"}

	registry.Register(first, ".mp3")
	registry.Register(second, ".mp3")

	if got, _ := registry.Get(".mp3"); got != second {
		t.Errorf("Get() = %v, want the later registration", got)
	}
}

func TestRegistry_Extensions(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	registry.Register(&mockDecoder{}, ".ogg", "FLAC")

	got := registry.Extensions()
	slices.Sort(got)

	if want := []string{".flac", ".ogg"}; !slices.Equal(got, want) {
		t.Errorf("Extensions() = %v, want %v", got, want)
	}
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	var wg sync.WaitGroup

	for i := range 20 {
		wg.Go(func() {
			ext := fmt.Sprintf(".f%d", i%5)
			registry.Register(&mockDecoder{}, ext)
			_, _ = registry.Get(ext)
			_, _ = registry.ForPath("x" + ext)
		})
	}
	wg.Wait()

	if n := len(registry.Extensions()); n != 5 {
		t.Errorf("len(Extensions()) = %d, want 5", n)
	}
}

func BenchmarkRegistry_ForPath(b *testing.B) {
	registry := NewRegistry()
	registry.Register(&mockDecoder{}, ".wav")

	for b.Loop() {
		_, _ = registry.ForPath("/tmp/input.wav")
	}
}
