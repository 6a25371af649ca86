// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"bytes"
	"io"
)

const (
	id3HeaderSize = 10
	id3v1TagSize  = 128
	tagIDSize     = 3

	fillChunk = 4096
)

// headerTracker sits between the codec and its byte source and records the
// header of every frame that flows through, in stream order. It resyncs
// byte by byte on garbage, the same way go-mp3 does, so the queue lines up
// with the frames the codec decodes.
//
// fill buffers the codec's next frame ahead of time. go-mp3 drops a frame
// it could only read in part, so it must never run out of bytes midway.
type headerTracker struct {
	r     io.Reader
	queue []FrameHeader

	buf   bytes.Buffer // pulled from r, not yet read by the codec
	chunk []byte

	head       []byte // first bytes of the stream, checked for a leading tag
	headerDone bool

	skip   int
	win    uint32
	filled int
}

func newHeaderTracker(r io.Reader) *headerTracker {
	return &headerTracker{
		r:    r,
		head: make([]byte, 0, id3HeaderSize),
	}
}

// Read serves buffered bytes first and reads through to r once they are
// gone.
func (t *headerTracker) Read(p []byte) (int, error) {
	if t.buf.Len() > 0 {
		n, _ := t.buf.Read(p)
		t.observe(p[:n])
		return n, nil
	}

	n, err := t.r.Read(p)
	if n > 0 {
		t.observe(p[:n])
	}
	return n, err
}

// fill pulls from r until the bytes the codec needs for its next frame are
// all buffered. atStart means the codec has yet to look for a leading tag.
// When r runs dry first fill returns io.EOF and keeps what it has.
func (t *headerTracker) fill(atStart bool) error {
	if t.chunk == nil {
		t.chunk = make([]byte, fillChunk)
	}

	for {
		if _, ok := nextFrameEnd(t.buf.Bytes(), atStart); ok {
			return nil
		}

		n, err := t.r.Read(t.chunk)
		if n > 0 {
			t.buf.Write(t.chunk[:n])
		}
		if err != nil {
			return err
		}
	}
}

// buffered returns the number of bytes pulled but not yet decoded.
func (t *headerTracker) buffered() int { return t.buf.Len() }

// nextFrameEnd returns the offset in b just past the next frame the codec
// reads, counting any tag or garbage in front of it, and false while b
// ends before that. For headers go-mp3 rejects outright (free format,
// layers I and II) the header itself is enough.
func nextFrameEnd(b []byte, atStart bool) (int, bool) {
	off := 0
	if atStart {
		n, ok := leadingTagSize(b)
		if !ok {
			return 0, false
		}
		off = n
	}

	for i := off; i+HeaderSize <= len(b); i++ {
		h, err := ParseHeader(b[i : i+HeaderSize])
		if err != nil {
			continue
		}

		end := i + HeaderSize
		if h.Layer == Layer3 && h.FrameLength() > HeaderSize {
			end = i + h.FrameLength()
		}
		if end > len(b) {
			return 0, false
		}
		return end, true
	}

	return 0, false
}

// leadingTagSize returns the size of the tag b starts with, 0 for none,
// and false while b is too short to tell.
func leadingTagSize(b []byte) (int, bool) {
	if len(b) < tagIDSize {
		if isPrefix(b, "ID3") || isPrefix(b, "TAG") {
			return 0, false
		}
		return 0, true
	}

	switch string(b[:tagIDSize]) {
	case "TAG":
		return id3v1TagSize, true
	case "ID3":
		if len(b) < id3HeaderSize {
			return 0, false
		}
		return id3HeaderSize + syncsafe(b[6:10]), true
	}
	return 0, true
}

// pop returns the header of the oldest frame not yet handed out.
func (t *headerTracker) pop() (FrameHeader, bool) {
	if len(t.queue) == 0 {
		return FrameHeader{}, false
	}

	h := t.queue[0]
	t.queue = t.queue[1:]
	return h, true
}

// resync drops queued headers and starts looking for a sync word again,
// which is what the codec does after it loses a frame midway. restart also
// forgets the start of the stream, for a codec that is opened anew.
func (t *headerTracker) resync(restart bool) {
	t.queue = nil
	t.skip = 0
	t.win = 0
	t.filled = 0

	if restart {
		t.head = t.head[:0]
		t.headerDone = false
	}
}

func (t *headerTracker) observe(p []byte) {
	if !t.headerDone {
		p = t.observeHead(p)
	}

	for len(p) > 0 {
		if t.skip > 0 {
			n := min(t.skip, len(p))
			t.skip -= n
			p = p[n:]
			continue
		}

		t.scan(p[0])
		p = p[1:]
	}
}

// observeHead collects the first bytes of the stream until it knows whether
// they start a tag, and returns whatever is left of p.
func (t *headerTracker) observeHead(p []byte) []byte {
	for len(p) > 0 && t.headPending() {
		t.head = append(t.head, p[0])
		p = p[1:]
	}
	if t.headPending() {
		return p
	}

	t.headerDone = true
	switch {
	case len(t.head) == id3HeaderSize:
		t.skip = syncsafe(t.head[6:10])
	case string(t.head) == "TAG":
		t.skip = id3v1TagSize - tagIDSize
	default:
		for _, b := range t.head {
			t.scan(b)
		}
	}
	t.head = t.head[:0]

	return p
}

// headPending reports whether more bytes are needed to tell a leading tag
// apart from audio.
func (t *headerTracker) headPending() bool {
	if len(t.head) < tagIDSize {
		return isPrefix(t.head, "ID3") || isPrefix(t.head, "TAG")
	}
	return len(t.head) < id3HeaderSize && string(t.head[:tagIDSize]) == "ID3"
}

func (t *headerTracker) scan(b byte) {
	if t.skip > 0 {
		t.skip--
		return
	}

	t.win = t.win<<8 | uint32(b)
	if t.filled < HeaderSize {
		t.filled++
	}
	if t.filled < HeaderSize {
		return
	}

	hdr := [HeaderSize]byte{byte(t.win >> 24), byte(t.win >> 16), byte(t.win >> 8), byte(t.win)}
	h, err := ParseHeader(hdr[:])
	if err != nil {
		return
	}

	t.queue = append(t.queue, h)
	t.filled = 0
	if l := h.FrameLength(); l > HeaderSize {
		t.skip = l - HeaderSize
	}
}

func isPrefix(b []byte, tag string) bool {
	for i := 0; i < len(b) && i < len(tag); i++ {
		if b[i] != tag[i] {
			return false
		}
	}
	return true
}

func syncsafe(b []byte) int {
	return int(b[0]&0x7F)<<21 | int(b[1]&0x7F)<<14 | int(b[2]&0x7F)<<7 | int(b[3]&0x7F)
}
