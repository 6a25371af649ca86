// SPDX-License-Identifier: EPL-2.0

// Package handle hands out opaque integer handles for Go values.
//
// Callers that can only keep an integer between calls (a foreign caller, a
// table slot, a field in another runtime) store a Handle and pass it back
// on every call. The Table resolves it to the stored value:
//
//	tbl := handle.NewTable[*Session]()
//	h := tbl.Allocate(sess)
//
//	s, err := tbl.Resolve(h) // err is ErrClosed for 0, ErrStale once released
//
//	if s, ok := tbl.Release(h); ok {
//	    s.Close()
//	}
//
// Handles carry a generation counter. Releasing a value bumps the
// generation of its slot, so a copy of an old handle never reaches the
// value that later reuses the slot.
package handle
