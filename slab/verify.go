package slab

import "fmt"

// Verify walks the free list from the head and checks that it visits each
// free block once, stays inside the buffer and ends at the sentinel, and that
// its length equals BlockCount-InUse. With Options.Guard it also checks that
// no block on the list is marked issued. O(BlockCount); meant for tests and
// debugging, not hot paths.
func (p *Pool) Verify() error {
	if p.closed {
		return ErrClosed
	}

	seen := newSlotSet(p.blockCount)
	n := 0
	for cur := p.head; cur != nilSlot; {
		if seen.has(cur) {
			return fmt.Errorf("%w: cycle at slot %d after %d links", ErrCorrupt, cur, n)
		}
		seen.set(cur)
		if p.issued != nil && p.issued.has(cur) {
			return fmt.Errorf("%w: issued slot %d is on the free list", ErrCorrupt, cur)
		}
		n++

		next := p.link(cur)
		if next == linkEnd {
			break
		}
		if next >= uint64(p.blockCount) {
			return fmt.Errorf("%w: slot %d links to %d (block count %d)", ErrCorrupt, cur, next, p.blockCount)
		}
		cur = int(next)
	}

	if want := p.blockCount - p.inUse; n != want {
		return fmt.Errorf("%w: free list has %d blocks, want %d", ErrCorrupt, n, want)
	}
	if p.issued != nil {
		if got := p.issued.count(); got != p.inUse {
			return fmt.Errorf("%w: %d blocks marked issued, in-use count is %d", ErrCorrupt, got, p.inUse)
		}
	}
	return nil
}
