package buffer

import "bytes"

// Equal reports whether b and other have identical readable bytes. It
// ignores capacity and reader/writer positions other than via the
// readable window, and ignores everything before each buffer's own
// reader index.
//
// Equality compares [ReaderIndex, WriterIndex) rather than [0,
// WriterIndex); this module takes the readable-bytes interpretation as
// the spec default rather than the wider one, see DESIGN.md.
func (b *Buffer) Equal(other *Buffer) bool {
	if b == other {
		return true
	}
	if b.storage == other.storage &&
		b.lo == other.lo && b.hi == other.hi &&
		b.readerIndex == other.readerIndex && b.writerIndex == other.writerIndex {
		return true
	}
	if b.ReadableBytes() != other.ReadableBytes() {
		return false
	}
	a := b.storage.buf[b.lo+b.readerIndex : b.lo+b.writerIndex]
	o := other.storage.buf[other.lo+other.readerIndex : other.lo+other.writerIndex]
	return bytes.Equal(a, o)
}
