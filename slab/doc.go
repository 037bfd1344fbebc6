// Package slab provides a fixed-size block allocator backed by one contiguous buffer.
//
// # Overview
//
// A Pool carves a single buffer into N equally sized blocks and threads the
// unused ones into an intrusive singly-linked free list. Allocation pops the
// list head and deallocation pushes the block back, so both are O(1) and no
// search is ever performed. The buffer is obtained once at construction and
// released once by Close.
//
// # Free List Layout
//
// Each free block stores the index of the next free block in its first
// PointerWidth bytes (little-endian). The all-ones word marks the end of the
// list. Links are slot indices, not addresses, so the list is rebuilt from plain
// byte reads and writes without unsafe:
//
//	slot:   0        1        2        3
//	link:  [1]  ->  [2]  ->  [3]  ->  [end]
//	head = 0
//
// Freed blocks go back on the head, so the most recently freed block is the
// next one handed out (LIFO).
//
// # Usage Example
//
//	p, err := slab.New(48, 1024, nil)
//	if err != nil {
//	    return err
//	}
//	defer p.Close()
//
//	h, block, ok := p.Alloc()
//	if !ok {
//	    // pool exhausted, not an error
//	}
//	copy(block, payload)
//
//	// Later, return the block
//	err = p.Free(h)
//
// # Block Size
//
// The effective block size is max(requested, PointerWidth) because every free
// block must hold one link. BlockSize reports the effective value.
//
// # Memory Sources
//
// The buffer comes from a Memory. HeapMemory (the default) uses the Go heap;
// MmapMemory maps anonymous pages outside the Go heap, so a use-after-Close
// faults instead of silently reading stale data.
//
// # Misuse
//
// In the default mode the pool trusts its caller: freeing a block twice or
// freeing a block that belongs to another pool is not detected and corrupts the
// free list. Set Options.Guard to track issued blocks and reject those frees
// with ErrNotIssued. A guarded pool also stamps its own tag into the high bits
// of every Handle, so a handle from another pool is rejected even when the
// same slot is issued in both. Verify walks the free list and reports
// structural damage.
//
// # Thread Safety
//
// Pools are not thread-safe. Callers must synchronize access externally.
package slab
