package buffer

// WithReadableBytes yields a read-only view of the readable window to fn.
// The view must not escape the call: it aliases storage that may be
// freed, reallocated, or copy-on-write diverged by any later mutating
// call on this Buffer.
func (b *Buffer) WithReadableBytes(fn func(p []byte)) {
	fn(b.storage.buf[b.lo+b.readerIndex : b.lo+b.writerIndex])
}

// WithMutableReadableBytes performs copy-on-write if needed, then yields a
// mutable view of the readable window to fn. The view must not escape the
// call.
func (b *Buffer) WithMutableReadableBytes(fn func(p []byte)) {
	b.cowForMutation(0)
	fn(b.storage.buf[b.lo+b.readerIndex : b.lo+b.writerIndex])
}

// WithMutableWritableBytes performs copy-on-write if needed, then yields a
// mutable view of the writable region (from the writer index to
// capacity) to fn. The view must not escape the call and does not advance
// the writer index; callers that write through it should follow with
// MoveWriterIndexForwardBy, or prefer WriteWithRawWritableRegion.
func (b *Buffer) WithMutableWritableBytes(fn func(p []byte)) {
	b.cowForMutation(0)
	fn(b.storage.buf[b.lo+b.writerIndex : b.hi])
}

// WriteWithRawWritableRegion performs copy-on-write if needed, yields the
// writable region to fn, and advances the writer index by the count fn
// returns. This is the escape hatch collaborators (socket reads, codec
// encoders) use to write directly into buffer memory without an
// intermediate copy. fn's returned count must not exceed the length of
// the region it was given.
func (b *Buffer) WriteWithRawWritableRegion(fn func(p []byte) int) int {
	b.cowForMutation(0)
	p := b.storage.buf[b.lo+b.writerIndex : b.hi]
	n := fn(p)
	if n < 0 || n > len(p) {
		panic("bytebuf: write callback reported an impossible byte count")
	}
	b.writerIndex += uint32(n)
	return n
}

// StorageHandle is an opaque reference to a Buffer's Storage that can
// outlive the Buffer it was taken from. Retain and Release must balance:
// an unreleased handle leaks the Storage's region, and a handle released
// twice may free memory still in use by a live Buffer.
type StorageHandle struct {
	s *storage
}

// RetainStorage returns a StorageHandle holding an extra reference to this
// Buffer's Storage, for callers that need the underlying region to outlive
// this Buffer (for example, an in-flight asynchronous write). Call
// Release on the handle when done.
func (b *Buffer) RetainStorage() StorageHandle {
	return StorageHandle{s: b.storage.retain()}
}

// Release drops the extra reference this handle holds.
func (h StorageHandle) Release() {
	h.s.release()
}
