package slab

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

// ============================================================================
// Test Helpers
// ============================================================================

var errMapFailed = errors.New("map failed")

// countingMemory wraps a Memory and counts Map and release calls.
type countingMemory struct {
	inner    Memory
	maps     int
	releases int
}

func (m *countingMemory) Map(size int) ([]byte, func() error, error) {
	m.maps++
	inner := m.inner
	if inner == nil {
		inner = HeapMemory{}
	}
	data, release, err := inner.Map(size)
	if err != nil {
		return nil, nil, err
	}
	return data, func() error {
		m.releases++
		return release()
	}, nil
}

// failingMemory always fails to map.
type failingMemory struct{}

func (failingMemory) Map(int) ([]byte, func() error, error) {
	return nil, nil, errMapFailed
}

// shortMemory hands back one byte less than requested.
type shortMemory struct {
	released bool
}

func (m *shortMemory) Map(size int) ([]byte, func() error, error) {
	return make([]byte, size-1), func() error {
		m.released = true
		return nil
	}, nil
}

// filledMemory returns a buffer with every byte set to fill.
type filledMemory struct {
	fill byte
}

func (m filledMemory) Map(size int) ([]byte, func() error, error) {
	data := make([]byte, size)
	for i := range data {
		data[i] = m.fill
	}
	return data, func() error { return nil }, nil
}

// newTestPool creates a pool and closes it when the test ends.
func newTestPool(t testing.TB, blockSize, blockCount int, opts *Options) *Pool {
	t.Helper()
	p, err := New(blockSize, blockCount, opts)
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close() })
	return p
}

// allocAll drains the pool and returns the handles in allocation order.
func allocAll(t testing.TB, p *Pool) []Handle {
	t.Helper()
	var out []Handle
	for {
		h, _, ok := p.Alloc()
		if !ok {
			return out
		}
		out = append(out, h)
	}
}

// assertInvariants runs Verify and checks the counters agree.
func assertInvariants(t testing.TB, p *Pool) {
	t.Helper()
	require.NoError(t, p.Verify())
	require.Equal(t, p.BlockCount(), p.InUse()+p.Available(), "in-use + available must equal block count")
}
