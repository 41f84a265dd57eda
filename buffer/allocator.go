package buffer

import "github.com/bytedance/gopkg/lang/mcache"

// AllocateFunc returns a region usable for arbitrary byte writes of at
// least n bytes. Its contents are indeterminate. Calling with n == 0 is
// allowed and may return a nil slice, which must survive a subsequent
// call to the matching FreeFunc.
type AllocateFunc func(n uint32) []byte

// ReallocateFunc grows or shrinks a previously allocated region to n
// bytes, preserving the first min(len(old), n) bytes. It may return old
// itself (resized in place) or a freshly allocated region.
type ReallocateFunc func(old []byte, n uint32) []byte

// FreeFunc releases a region previously returned by an AllocateFunc or
// ReallocateFunc. It is idempotent only against the nil-equivalent
// returned by a zero-length allocation.
type FreeFunc func(buf []byte)

// CopyFunc bulk-copies len(src) bytes from src into dst, which must have
// room for them. dst and src may overlap (DiscardReadBytes relies on this
// to shift a window down in place); implementations must use memmove-safe
// semantics, as Go's builtin copy does.
type CopyFunc func(dst, src []byte) int

// Allocator is an immutable bundle of the four operations a Storage needs
// to manage its region: allocate, reallocate, free, and bulk copy. It
// performs no allocation itself and is safe to copy and share across any
// number of Buffers.
type Allocator struct {
	allocate   AllocateFunc
	reallocate ReallocateFunc
	free       FreeFunc
	copy       CopyFunc
}

// New builds an Allocator from four explicit callables.
func New(allocate AllocateFunc, reallocate ReallocateFunc, free FreeFunc, copy CopyFunc) Allocator {
	return Allocator{allocate: allocate, reallocate: reallocate, free: free, copy: copy}
}

// System returns an Allocator backed directly by the Go runtime's
// allocator: make for allocate/reallocate, nothing for free (the garbage
// collector reclaims the region once the last Storage referencing it is
// dropped), and the builtin copy for bulk copy.
func System() Allocator {
	return Allocator{
		allocate: func(n uint32) []byte {
			if n == 0 {
				return nil
			}
			return make([]byte, n)
		},
		reallocate: func(old []byte, n uint32) []byte {
			if n == 0 {
				return nil
			}
			if uint32(len(old)) >= n {
				return old[:n:n]
			}
			fresh := make([]byte, n)
			copy(fresh, old)
			return fresh
		},
		free: func([]byte) {},
		copy: func(dst, src []byte) int {
			return copy(dst, src)
		},
	}
}

// Pooled returns an Allocator backed by bytedance/gopkg's mcache, a
// size-classed free-list allocator. It trades a small amount of bookkeeping
// overhead for far fewer calls into the Go allocator under sustained
// buffer churn, which is the tradeoff a networking pipeline normally wants.
// mcache has no in-place grow primitive, so ReallocateFunc always moves.
func Pooled() Allocator {
	return Allocator{
		allocate: func(n uint32) []byte {
			if n == 0 {
				return nil
			}
			return mcache.Malloc(int(n))
		},
		reallocate: func(old []byte, n uint32) []byte {
			if n == 0 {
				if old != nil {
					mcache.Free(old)
				}
				return nil
			}
			fresh := mcache.Malloc(int(n))
			copy(fresh, old)
			if old != nil {
				mcache.Free(old)
			}
			return fresh
		},
		free: func(buf []byte) {
			if buf != nil {
				mcache.Free(buf)
			}
		},
		copy: func(dst, src []byte) int {
			return copy(dst, src)
		},
	}
}

// Buffer allocates a new Buffer whose capacity is the next power of two at
// least as large as startingCapacity (a request of 0 yields a zero
// capacity buffer). The allocator is retained for any later growth.
func (a Allocator) Buffer(startingCapacity int) *Buffer {
	rounded := nextPow2ClampedToMax(u32(startingCapacity))
	st := newStorage(a, rounded)
	return &Buffer{storage: st, lo: 0, hi: st.capacity()}
}
