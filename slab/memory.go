package slab

import (
	"fmt"
	"strings"

	"github.com/joshuapare/slabkit/internal/mmfile"
)

// Memory is the raw memory source a pool obtains its buffer from.
// Map returns at least size bytes and a func that releases them as one unit.
type Memory interface {
	Map(size int) (data []byte, release func() error, err error)
}

// HeapMemory allocates the buffer on the Go heap. Release is a no-op; the
// garbage collector reclaims the buffer once the pool is unreachable.
type HeapMemory struct{}

// Map implements Memory.
func (HeapMemory) Map(size int) ([]byte, func() error, error) {
	if size <= 0 {
		return nil, nil, fmt.Errorf("heap: invalid size %d", size)
	}
	return make([]byte, size), func() error { return nil }, nil
}

// MmapMemory maps anonymous read/write pages outside the Go heap.
type MmapMemory struct{}

// Map implements Memory.
func (MmapMemory) Map(size int) ([]byte, func() error, error) {
	return mmfile.MapAnon(size)
}

// MemoryByName resolves "heap" or "mmap" to a Memory.
func MemoryByName(name string) (Memory, error) {
	switch strings.ToLower(name) {
	case "", "heap":
		return HeapMemory{}, nil
	case "mmap":
		return MmapMemory{}, nil
	}
	return nil, fmt.Errorf("unknown memory source %q (want heap or mmap)", name)
}
