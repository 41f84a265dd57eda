package buffer

import "math"

// Buffer is a window of bytes with independent reader and writer cursors.
// It is a small value type — a Storage reference plus a slice window and
// two indices — that can be copied, cloned, and sliced cheaply. Storage is
// shared across copies until a mutation forces copy-on-write divergence.
//
// A Buffer must be closed with Close once it is no longer needed, so its
// Storage reference can be released; failing to do so leaks the
// underlying region exactly as failing to close a file leaks a descriptor.
type Buffer struct {
	storage *storage

	// lo, hi bound this Buffer's slice window within storage, in absolute
	// storage offsets.
	lo, hi uint32

	// readerIndex and writerIndex are relative to lo.
	readerIndex uint32
	writerIndex uint32
}

// Capacity returns the size of this Buffer's window.
func (b *Buffer) Capacity() int { return int(b.hi - b.lo) }

// ReaderIndex returns the offset of the next byte a sequential read will
// consume.
func (b *Buffer) ReaderIndex() int { return int(b.readerIndex) }

// WriterIndex returns the offset of the next byte a sequential write will
// produce.
func (b *Buffer) WriterIndex() int { return int(b.writerIndex) }

// ReadableBytes returns writerIndex - readerIndex.
func (b *Buffer) ReadableBytes() int { return int(b.writerIndex - b.readerIndex) }

// WritableBytes returns capacity - writerIndex.
func (b *Buffer) WritableBytes() int { return int(b.hi - b.lo - b.writerIndex) }

// MoveReaderIndexTo sets the reader index to an absolute offset. It panics
// if offset is negative or past the writer index.
func (b *Buffer) MoveReaderIndexTo(offset int) {
	o := u32(offset)
	if o > b.writerIndex {
		panic("bytebuf: reader index past writer index")
	}
	b.readerIndex = o
}

// MoveReaderIndexForwardBy advances the reader index by delta.
func (b *Buffer) MoveReaderIndexForwardBy(delta int) {
	b.MoveReaderIndexTo(int(checkedAdd(b.readerIndex, u32(delta))))
}

// MoveWriterIndexTo sets the writer index to an absolute offset. It
// panics if offset is negative or past the buffer's capacity.
func (b *Buffer) MoveWriterIndexTo(offset int) {
	o := u32(offset)
	if o > b.hi-b.lo {
		panic("bytebuf: writer index past capacity")
	}
	b.writerIndex = o
}

// MoveWriterIndexForwardBy advances the writer index by delta.
func (b *Buffer) MoveWriterIndexForwardBy(delta int) {
	b.MoveWriterIndexTo(int(checkedAdd(b.writerIndex, u32(delta))))
}

// cowForMutation performs copy-on-write if storage is shared, sizing the
// replacement Storage to the current capacity plus extraCapacityHint so a
// mutation that both diverges and grows only pays for one allocation.
func (b *Buffer) cowForMutation(extraCapacityHint uint32) {
	if !b.storage.isUnique() {
		b.copyOnWrite(extraCapacityHint, false)
	}
}

// copyOnWrite allocates a fresh Storage, copies this Buffer's window (or,
// if dropBeforeReader, only the bytes from readerIndex onward) into it at
// offset 0, and rebases this Buffer onto the result.
func (b *Buffer) copyOnWrite(extraCapacity uint32, dropBeforeReader bool) {
	var startOffset uint32
	if dropBeforeReader {
		startOffset = b.readerIndex
	}
	remaining := (b.hi - b.lo) - startOffset
	ns := b.storage.reallocateSharingSlice(b.lo+startOffset, b.hi, checkedAdd(remaining, extraCapacity))
	b.storage.release()
	b.storage = ns
	b.lo, b.hi = 0, ns.capacity()
	if dropBeforeReader {
		b.writerIndex -= startOffset
		b.readerIndex = 0
	}
}

// growIfNeeded grows storage in place so that at least need bytes are
// available starting at atIndex (relative to this Buffer's window). The
// caller must already hold sole ownership of storage (cowForMutation must
// run first).
func (b *Buffer) growIfNeeded(need, atIndex uint32) {
	if checkedAdd(checkedAdd(b.lo, atIndex), need) <= b.hi {
		return
	}
	cur := b.hi - b.lo
	if cur < 1 {
		cur = 1
	}
	newCap := cur
	for !(newCap >= atIndex && newCap-atIndex >= need) {
		if newCap >= math.MaxUint32 {
			break
		}
		if newCap > math.MaxUint32>>1 {
			newCap = math.MaxUint32
		} else {
			newCap *= 2
		}
	}
	if newCap < atIndex || newCap-atIndex < need {
		panic("bytebuf: required capacity exceeds uint32 range")
	}
	b.storage.growInPlace(b.lo + newCap)
	b.hi = b.lo + newCap
}

// GetBytes returns a view of length bytes starting at absolute offset at.
// It panics if at or length is negative, or if at+length exceeds
// Capacity. The view aliases this Buffer's storage and is only valid
// until the next mutating call on this Buffer; bytes outside
// [ReaderIndex, WriterIndex) are indeterminate but safe to read.
func (b *Buffer) GetBytes(at, length int) []byte {
	atU, lenU := u32(at), u32(length)
	end := checkedAdd(atU, lenU)
	if end > b.hi-b.lo {
		panic("bytebuf: get out of range")
	}
	lo := b.lo + atU
	return b.storage.buf[lo : lo+lenU]
}

// SetBytes copies source into the buffer starting at absolute offset at,
// growing the buffer first if needed. It does not move the writer index.
// It panics if at is negative.
func (b *Buffer) SetBytes(source []byte, at int) int {
	atU := u32(at)
	need := uint32(len(source))
	b.cowForMutation(need)
	b.growIfNeeded(need, atU)
	dst := b.storage.buf[b.lo+atU : b.lo+atU+need]
	return b.storage.allocator.copy(dst, source)
}

// ByteSequence is an arbitrary, possibly non-contiguous source of bytes of
// unknown exact length, with a cheap underestimate of how many bytes
// remain. SetByteSequence uses the underestimate as an initial capacity
// hint and past it checks capacity before each byte, growing (by doubling)
// whenever the next byte would not fit.
type ByteSequence interface {
	UnderestimatedLength() int
	Next() (b byte, ok bool)
}

// SetByteSequence copies seq into the buffer starting at absolute offset
// at, element by element, growing the buffer as needed. It panics if at is
// negative.
func (b *Buffer) SetByteSequence(seq ByteSequence, at int) int {
	atU := u32(at)
	hint := seq.UnderestimatedLength()
	if hint < 0 {
		hint = 0
	}
	b.cowForMutation(uint32(hint))
	b.growIfNeeded(uint32(hint), atU)

	var n uint32
	for {
		v, ok := seq.Next()
		if !ok {
			break
		}
		b.growIfNeeded(n+1, atU)
		b.storage.buf[b.lo+atU+n] = v
		n++
	}
	return int(n)
}

// WriteBytes is the sequential counterpart to SetBytes: it writes p
// starting at the writer index, growing as needed, and advances the
// writer index by the number of bytes written.
func (b *Buffer) WriteBytes(p []byte) int {
	n := b.SetBytes(p, int(b.writerIndex))
	b.writerIndex += uint32(n)
	return n
}

// ReadBytes returns a view of the next length readable bytes and advances
// the reader index past them. It panics if length is negative or exceeds
// ReadableBytes.
func (b *Buffer) ReadBytes(length int) []byte {
	lenU := u32(length)
	if checkedAdd(b.readerIndex, lenU) > b.writerIndex {
		panic("bytebuf: read exceeds readable bytes")
	}
	p := b.storage.buf[b.lo+b.readerIndex : b.lo+b.readerIndex+lenU]
	b.readerIndex += lenU
	return p
}

// ChangeCapacity resizes the buffer's window to exactly newCapacity
// (still subject to pow2 rounding), preserving all bytes up to the new
// capacity. It panics if newCapacity is negative or below the writer
// index. It is a no-op if the buffer already is the whole of a Storage of
// exactly that capacity.
func (b *Buffer) ChangeCapacity(newCapacity int) {
	nc := u32(newCapacity)
	if nc < b.writerIndex {
		panic("bytebuf: new capacity below writer index")
	}
	if b.lo == 0 && b.hi == b.storage.capacity() && nc == b.storage.capacity() {
		return
	}
	ns := b.storage.reallocateSharingSlice(b.lo, b.hi, nc)
	b.storage.release()
	b.storage = ns
	b.lo, b.hi = 0, ns.capacity()
}

// GetSlice returns a new Buffer sharing this Buffer's Storage, windowed to
// [at, at+length) of this Buffer's own window, with a fresh reader index
// of 0 and writer index of length. It returns nil if at or length is
// negative or at+length exceeds Capacity. The returned Buffer must be
// Closed independently of its parent.
func (b *Buffer) GetSlice(at, length int) *Buffer {
	if at < 0 || length < 0 {
		return nil
	}
	if at > math.MaxUint32 || length > math.MaxUint32 {
		return nil
	}
	atU, lenU := uint32(at), uint32(length)
	if uint64(atU)+uint64(lenU) > uint64(b.hi-b.lo) {
		return nil
	}
	ns := b.storage.retain()
	return &Buffer{storage: ns, lo: b.lo + atU, hi: b.lo + atU + lenU, writerIndex: lenU}
}

// Clone returns a new Buffer sharing this Buffer's Storage, window, and
// indices. The clone is independent for index motion and mutation — the
// first of either Buffer to mutate triggers copy-on-write. The returned
// Buffer must be Closed independently of the original.
func (b *Buffer) Clone() *Buffer {
	ns := b.storage.retain()
	return &Buffer{storage: ns, lo: b.lo, hi: b.hi, readerIndex: b.readerIndex, writerIndex: b.writerIndex}
}

// DiscardReadBytes shifts the readable window down to the start of the
// slice, discarding the bytes before the reader index, and reports
// whether it did anything (it is a no-op if the reader index is already
// zero).
func (b *Buffer) DiscardReadBytes() bool {
	if b.readerIndex == 0 {
		return false
	}
	if b.storage.isUnique() {
		n := b.writerIndex - b.readerIndex
		if n > 0 {
			b.storage.allocator.copy(b.storage.buf[b.lo:b.lo+n], b.storage.buf[b.lo+b.readerIndex:b.lo+b.readerIndex+n])
		}
		b.writerIndex = n
		b.readerIndex = 0
		return true
	}
	b.copyOnWrite(0, true)
	return true
}

// Clear resets both indices to zero. If Storage is shared it allocates a
// fresh Storage at the current capacity rather than copying, since no
// bytes are observable afterward; if uniquely owned, no allocation
// happens and the existing bytes simply become indeterminate.
func (b *Buffer) Clear() {
	if !b.storage.isUnique() {
		capacity := b.hi - b.lo
		ns := newStorage(b.storage.allocator, capacity)
		b.storage.release()
		b.storage = ns
		b.lo, b.hi = 0, ns.capacity()
	}
	b.readerIndex = 0
	b.writerIndex = 0
}

// Close releases this Buffer's reference to its Storage. After Close, the
// Buffer must not be used again.
func (b *Buffer) Close() error {
	if b.storage != nil {
		b.storage.release()
		b.storage = nil
	}
	return nil
}
