package buffer

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextPow2ClampedToMax(t *testing.T) {
	cases := []struct {
		in, want uint32
	}{
		{0, 0},
		{1, 1},
		{2, 2},
		{3, 4},
		{1000, 1024},
		{1024, 1024},
		{1025, 2048},
		{1 << 31, 1 << 31},
		{1<<31 + 1, math.MaxUint32},
		{math.MaxUint32, math.MaxUint32},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, nextPow2ClampedToMax(c.in), "n=%d", c.in)
	}
}

func TestCheckedAddOverflowPanics(t *testing.T) {
	assert.Panics(t, func() { checkedAdd(math.MaxUint32, 1) })
	assert.NotPanics(t, func() { checkedAdd(math.MaxUint32, 0) })
}

func TestU32Conversion(t *testing.T) {
	assert.Panics(t, func() { u32(-1) })
	assert.Equal(t, uint32(5), u32(5))
}
