package buffer

import (
	"encoding/hex"
	"fmt"
)

// maxDebugHexBytes bounds how many readable bytes GoString will dump as
// hex, so printing a large buffer in a debugger doesn't print megabytes.
const maxDebugHexBytes = 1024

// String returns a short human-readable description: indices, capacity,
// slice bounds, and the Storage address.
func (b *Buffer) String() string {
	return fmt.Sprintf(
		"buffer.Buffer{reader=%d, writer=%d, capacity=%d, slice=[%d,%d), storage=%p}",
		b.readerIndex, b.writerIndex, b.hi-b.lo, b.lo, b.hi, b.storage,
	)
}

// GoString is String with up to the first 1024 readable bytes appended as
// a hex dump, for use in debuggers and %#v formatting.
func (b *Buffer) GoString() string {
	n := b.writerIndex - b.readerIndex
	if n > maxDebugHexBytes {
		n = maxDebugHexBytes
	}
	p := b.storage.buf[b.lo+b.readerIndex : b.lo+b.readerIndex+n]
	return fmt.Sprintf("%s hex=%s", b.String(), hex.EncodeToString(p))
}
