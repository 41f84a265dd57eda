package buffer

import "math"

// nextPow2ClampedToMax returns the smallest power of two greater than or
// equal to n, clamped to math.MaxUint32 if that power of two would
// otherwise overflow a uint32. Zero stays zero.
func nextPow2ClampedToMax(n uint32) uint32 {
	if n == 0 {
		return 0
	}
	if n > 1<<31 {
		return math.MaxUint32
	}
	p := uint32(1)
	for p < n {
		p <<= 1
	}
	return p
}

// checkedAdd adds a and b, panicking if the sum would exceed the range of
// a uint32. Every index computation that could observably overflow the
// 32-bit ceiling goes through this helper rather than wrapping silently.
func checkedAdd(a, b uint32) uint32 {
	sum := uint64(a) + uint64(b)
	if sum > math.MaxUint32 {
		panic("bytebuf: index arithmetic overflows uint32")
	}
	return uint32(sum)
}

// u32 converts a non-negative int index into a uint32, panicking if it is
// negative or exceeds the uint32 range. Used at the public API boundary,
// where indices are accepted as plain ints for idiomatic Go call sites.
func u32(n int) uint32 {
	if n < 0 {
		panic("bytebuf: negative index")
	}
	if uint64(n) > math.MaxUint32 {
		panic("bytebuf: index exceeds uint32 range")
	}
	return uint32(n)
}
