package buffer

import "sync/atomic"

// storage is the heap region a Buffer's slice window points into. It is
// shared by reference count across every Buffer value derived from it by
// Clone or GetSlice; the region is freed through its allocator exactly
// once, when the last referencing Buffer is Closed.
//
// The byte slice always has len(buf) == its own capacity; bytes past the
// region a particular Buffer can see are simply other Buffers' (or no
// Buffer's) business, never exposed across a slice boundary.
type storage struct {
	buf       []byte
	allocator Allocator
	refs      atomic.Int32
}

// newStorage allocates a fresh Storage of at least minCapacity bytes
// (rounded up to the next power of two) bound to allocator, with a
// single reference.
func newStorage(allocator Allocator, minCapacity uint32) *storage {
	rounded := nextPow2ClampedToMax(minCapacity)
	s := &storage{buf: allocator.allocate(rounded), allocator: allocator}
	s.refs.Store(1)
	return s
}

func (s *storage) capacity() uint32 {
	return uint32(len(s.buf))
}

// retain increments the reference count and returns s, for use at call
// sites that want to chain into a struct literal.
func (s *storage) retain() *storage {
	s.refs.Add(1)
	return s
}

// release decrements the reference count, freeing the region through the
// allocator when it reaches zero.
func (s *storage) release() {
	if s.refs.Add(-1) == 0 {
		s.allocator.free(s.buf)
		s.buf = nil
	}
}

// isUnique reports whether this Buffer is the sole owner of s. Only a
// sole owner may mutate the region in place; anyone else must copy-on-write.
func (s *storage) isUnique() bool {
	return s.refs.Load() == 1
}

// reallocateSharingSlice allocates a fresh Storage of at least
// minNewCapacity bytes (pow2-rounded) and bulk-copies the bytes of
// s.buf[lo:hi] (clipped to the new capacity) to its start. The caller
// rebases its slice and indices onto the result.
func (s *storage) reallocateSharingSlice(lo, hi, minNewCapacity uint32) *storage {
	newCap := nextPow2ClampedToMax(minNewCapacity)
	ns := &storage{buf: s.allocator.allocate(newCap), allocator: s.allocator}
	ns.refs.Store(1)
	n := hi - lo
	if n > newCap {
		n = newCap
	}
	if n > 0 {
		s.allocator.copy(ns.buf[:n], s.buf[lo:lo+n])
	}
	return ns
}

// growInPlace resizes the region to exactly newCapacity via the
// allocator's ReallocateFunc. Valid only when s is uniquely owned; the
// caller must have already performed copy-on-write.
func (s *storage) growInPlace(newCapacity uint32) {
	s.buf = s.allocator.reallocate(s.buf, newCapacity)
}
