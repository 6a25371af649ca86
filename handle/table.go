// SPDX-License-Identifier: EPL-2.0

package handle

import (
	"fmt"
	"sync"
)

// Handle is an opaque reference to a value stored in a Table.
// The zero Handle is reserved and means "absent".
//
// The low 32 bits hold the slot index plus one, the high 32 bits hold the
// slot generation at the time the handle was issued.
type Handle uint64

const indexBits = 32

func pack(index int, gen uint32) Handle {
	return Handle(uint64(gen)<<indexBits | uint64(index+1))
}

func (h Handle) unpack() (index int, gen uint32) {
	return int(uint32(h)) - 1, uint32(h >> indexBits)
}

// IsZero reports whether h is the absent handle.
func (h Handle) IsZero() bool { return h == 0 }

func (h Handle) String() string {
	if h == 0 {
		return "handle(0)"
	}
	index, gen := h.unpack()
	return fmt.Sprintf("handle(%d#%d)", index, gen)
}

type slot[T any] struct {
	value T
	gen   uint32
	live  bool
}

// Table is a generational arena. A released slot is reused by a later
// Allocate, but with a bumped generation, so handles issued before the
// release never resolve again.
//
// Table is safe for concurrent use. The values it stores are not made safe
// by it.
type Table[T any] struct {
	slots    []slot[T]
	freeList []int
	live     int

	mtx *sync.Mutex
}

func NewTable[T any]() *Table[T] {
	return &Table[T]{
		mtx: &sync.Mutex{},
	}
}

// Allocate stores v and returns a non-zero handle for it.
func (t *Table[T]) Allocate(v T) Handle {
	t.mtx.Lock()
	defer t.mtx.Unlock()

	var index int
	if n := len(t.freeList); n > 0 {
		index = t.freeList[n-1]
		t.freeList = t.freeList[:n-1]
	} else {
		index = len(t.slots)
		// generation 0 is never handed out so a forged handle with a zero
		// high half can't match a fresh slot
		t.slots = append(t.slots, slot[T]{gen: 1})
	}

	s := &t.slots[index]
	s.value = v
	s.live = true
	t.live++

	return pack(index, s.gen)
}

// Resolve returns the value h refers to. A zero handle yields ErrClosed,
// a released or unknown handle yields ErrStale.
func (t *Table[T]) Resolve(h Handle) (T, error) {
	var zero T
	if h == 0 {
		return zero, ErrClosed
	}

	t.mtx.Lock()
	defer t.mtx.Unlock()

	s, ok := t.lookup(h)
	if !ok {
		return zero, fmt.Errorf("%w: %s", ErrStale, h)
	}

	return s.value, nil
}

// Release removes the value h refers to and hands it back to the caller,
// who now owns it. Releasing a zero or stale handle returns false and does
// nothing.
func (t *Table[T]) Release(h Handle) (T, bool) {
	var zero T
	if h == 0 {
		return zero, false
	}

	t.mtx.Lock()
	defer t.mtx.Unlock()

	s, ok := t.lookup(h)
	if !ok {
		return zero, false
	}

	index, _ := h.unpack()
	v := s.value
	t.vacate(index)

	return v, true
}

// Drain releases every live value and returns them in slot order.
func (t *Table[T]) Drain() []T {
	t.mtx.Lock()
	defer t.mtx.Unlock()

	values := make([]T, 0, t.live)
	for i := range t.slots {
		if !t.slots[i].live {
			continue
		}
		values = append(values, t.slots[i].value)
		t.vacate(i)
	}

	return values
}

// Len returns the number of live values.
func (t *Table[T]) Len() int {
	t.mtx.Lock()
	defer t.mtx.Unlock()

	return t.live
}

func (t *Table[T]) lookup(h Handle) (*slot[T], bool) {
	index, gen := h.unpack()
	if index < 0 || index >= len(t.slots) {
		return nil, false
	}

	s := &t.slots[index]
	if !s.live || s.gen != gen {
		return nil, false
	}

	return s, true
}

func (t *Table[T]) vacate(index int) {
	var zero T
	s := &t.slots[index]
	s.value = zero
	s.live = false
	s.gen++
	if s.gen == 0 {
		s.gen = 1
	}
	t.live--
	t.freeList = append(t.freeList, index)
}
