package slab

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// Test_Property_RandomAllocFree performs random alloc/free and validates that
// issued handles never repeat, stay in range, and that the free list stays
// consistent.
func Test_Property_RandomAllocFree(t *testing.T) {
	for _, guard := range []bool{false, true} {
		name := "unguarded"
		if guard {
			name = "guarded"
		}
		t.Run(name, func(t *testing.T) {
			const blockCount = 64
			p := newTestPool(t, 24, blockCount, &Options{Guard: guard})

			rng := rand.New(rand.NewSource(42)) // Fixed seed for reproducibility
			live := make([]Handle, 0, blockCount)
			issued := make(map[Handle]bool, blockCount)

			for step := range 5000 {
				if rng.Intn(2) == 0 {
					h, block, ok := p.Alloc()
					if !ok {
						require.Len(t, live, blockCount, "step %d: alloc failed with free blocks left", step)
						continue
					}
					require.False(t, issued[h], "step %d: handle %d issued twice", step, h)
					require.True(t, p.Contains(h))
					require.Len(t, block, p.BlockSize())
					issued[h] = true
					live = append(live, h)
				} else if len(live) > 0 {
					i := rng.Intn(len(live))
					h := live[i]
					live[i] = live[len(live)-1]
					live = live[:len(live)-1]
					delete(issued, h)
					require.NoError(t, p.Free(h), "step %d", step)
				}

				require.Equal(t, len(live), p.InUse(), "step %d", step)
				if step%100 == 0 {
					assertInvariants(t, p)
				}
			}
			assertInvariants(t, p)
		})
	}
}

// Test_Property_ChurnKeepsCountConstant frees a random live block and
// immediately allocates a replacement; the pool must never run dry.
func Test_Property_ChurnKeepsCountConstant(t *testing.T) {
	const blockCount = 128
	p := newTestPool(t, 16, blockCount, nil)
	live := allocAll(t, p)
	require.Len(t, live, blockCount)

	rng := rand.New(rand.NewSource(7))
	for i := range 20000 {
		j := rng.Intn(len(live))
		require.NoError(t, p.Free(live[j]))
		h, _, ok := p.Alloc()
		require.True(t, ok, "iteration %d: churn allocation reported no block", i)
		require.Equal(t, live[j], h, "LIFO: the block just freed comes back")
		live[j] = h
		require.Equal(t, blockCount, p.InUse())
	}
	assertInvariants(t, p)
}
