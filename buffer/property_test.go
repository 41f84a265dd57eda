package buffer_test

import (
	"math/rand"
	"testing"

	"github.com/driftbyte/bytebuf/buffer"
	"github.com/stretchr/testify/require"
)

// checkInvariants asserts the index/derived-quantity invariants of
// SPEC_FULL.md §3/§8 hold at the current observation point.
func checkInvariants(t *testing.T, b *buffer.Buffer) {
	t.Helper()
	r, w, c := b.ReaderIndex(), b.WriterIndex(), b.Capacity()
	require.GreaterOrEqual(t, r, 0)
	require.LessOrEqual(t, r, w)
	require.LessOrEqual(t, w, c)
	require.Equal(t, w-r, b.ReadableBytes())
	require.Equal(t, c-w, b.WritableBytes())
}

// TestRandomOperationSequenceInvariants drives a freshly allocated buffer
// through a long random sequence of legal public operations and checks
// the core invariants after every single one (property 1 and 2 of
// SPEC_FULL.md §8). It is deliberately conservative about which
// operations it picks so that every generated call is valid by
// construction — it is the invariant checking, not fuzzing for panics,
// that is under test here.
func TestRandomOperationSequenceInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(20260729))

	for trial := 0; trial < 50; trial++ {
		b := buffer.System().Buffer(rng.Intn(64))
		checkInvariants(t, b)

		var open []*buffer.Buffer
		for step := 0; step < 200; step++ {
			switch rng.Intn(6) {
			case 0: // sequential write
				p := make([]byte, rng.Intn(40))
				rng.Read(p)
				b.WriteBytes(p)
			case 1: // sequential read, bounded by what's readable
				if n := b.ReadableBytes(); n > 0 {
					b.ReadBytes(rng.Intn(n + 1))
				}
			case 2:
				b.DiscardReadBytes()
			case 3:
				if rng.Intn(4) == 0 {
					b.Clear()
				}
			case 4: // slice a subrange starting inside the readable window and keep it open briefly
				if n := b.ReadableBytes(); n > 0 {
					at := b.ReaderIndex() + rng.Intn(n)
					length := rng.Intn(b.Capacity() - at + 1)
					if s := b.GetSlice(at, length); s != nil {
						checkInvariants(t, s)
						open = append(open, s)
					}
				}
			case 5: // grow capacity, never shrink below writer index
				target := b.Capacity() + rng.Intn(33)
				b.ChangeCapacity(target)
			}
			checkInvariants(t, b)
		}

		for _, s := range open {
			checkInvariants(t, s)
			require.NoError(t, s.Close())
		}
		require.NoError(t, b.Close())
	}
}

// TestCloneThenIndependentMutationInvariants checks property 5 (slice /
// clone isolation) across many random clone points.
func TestCloneThenIndependentMutationInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for trial := 0; trial < 30; trial++ {
		a := buffer.System().Buffer(8)
		seed := make([]byte, rng.Intn(50))
		rng.Read(seed)
		a.WriteBytes(seed)

		b := a.Clone()

		mutation := make([]byte, rng.Intn(20))
		rng.Read(mutation)
		at := 0
		if a.ReadableBytes() > 0 {
			at = rng.Intn(a.ReadableBytes())
		}
		b.SetBytes(mutation, at)

		require.True(t, a.Equal(a))
		require.Equal(t, seed, a.GetBytes(0, len(seed)))

		require.NoError(t, a.Close())
		require.NoError(t, b.Close())
	}
}
