package slab

import (
	"fmt"
	"os"

	"github.com/joshuapare/slabkit/internal/buf"
	"github.com/joshuapare/slabkit/internal/logger"
)

// Runtime debug flag for per-operation logging - controlled by SLABKIT_LOG_ALLOC env var.
// Per-op logs are emitted only when the logger is also at debug level.
var logAlloc = os.Getenv("SLABKIT_LOG_ALLOC") != ""

const nilSlot = -1

// linkEnd is the link value stored in the last free block.
var linkEnd = buf.MaxWord(PointerWidth)

// Pool is a fixed-size block allocator over one contiguous buffer.
//   - head is the first free slot, or nilSlot when exhausted
//   - every free slot stores the index of the next one in its first PointerWidth bytes
//   - inUse counts issued slots; the pool does not know which ones unless guarded
type Pool struct {
	buf        []byte
	release    func() error
	blockSize  int
	blockCount int

	head  int
	inUse int

	// issued is non-nil only when Options.Guard is set; tag is then nonzero
	// and stamped into every handle this pool issues.
	issued *slotSet
	tag    uint64

	closed bool
}

// New creates a pool of blockCount blocks of at least blockSize bytes each.
// The buffer is obtained from opts.Memory in a single call and every block is
// threaded onto the free list.
//
// Parameters:
//   - blockSize: requested block size; raised to PointerWidth if smaller
//   - blockCount: number of blocks, at least 1
//   - opts: memory source and guard mode (can be nil for defaults)
func New(blockSize, blockCount int, opts *Options) (*Pool, error) {
	if blockCount < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrBadBlockCount, blockCount)
	}
	if blockSize < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrBadBlockSize, blockSize)
	}

	size := EffectiveBlockSize(blockSize)
	total, ok := buf.MulSize(size, blockCount)
	if !ok {
		return nil, fmt.Errorf("%w: %d blocks of %d bytes", ErrTooLarge, blockCount, size)
	}

	if opts.guard() && blockCount > maxGuardedBlocks {
		return nil, fmt.Errorf("%w: guarded pools hold at most %d blocks", ErrTooLarge, maxGuardedBlocks)
	}

	mem := opts.memory()
	data, release, err := mem.Map(total)
	if err != nil {
		return nil, fmt.Errorf("%w (%d bytes): %w", ErrMemory, total, err)
	}
	if len(data) < total {
		if release != nil {
			_ = release()
		}
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrMemory, len(data), total)
	}

	p := &Pool{
		buf:        data[:total:total],
		release:    release,
		blockSize:  size,
		blockCount: blockCount,
		head:       0,
	}
	if opts.guard() {
		p.issued = newSlotSet(blockCount)
		p.tag = nextPoolTag()
	}

	for i := 0; i < blockCount-1; i++ {
		p.setLink(i, uint64(i+1))
	}
	p.setLink(blockCount-1, linkEnd)

	logger.Debug("slab: pool created",
		"requested_size", blockSize,
		"block_size", size,
		"block_count", blockCount,
		"bytes", total,
		"memory", fmt.Sprintf("%T", mem),
		"guard", p.issued != nil,
	)
	return p, nil
}

// Alloc pops a block off the free list.
// Returns the handle, the block's bytes (len and cap equal BlockSize), and
// ok = false when the pool is exhausted or closed. Exhaustion is not an error.
// Block contents are not zeroed and may hold a stale link.
func (p *Pool) Alloc() (Handle, []byte, bool) {
	if p.head == nilSlot {
		if logAlloc && logger.DebugEnabled() {
			logger.Debug("slab: alloc exhausted", "block_count", p.blockCount)
		}
		return Nil, nil, false
	}

	slot := p.head
	block := p.block(slot)
	next := buf.WordLE(block, PointerWidth)
	switch {
	case next == linkEnd:
		p.head = nilSlot
	case next < uint64(p.blockCount):
		p.head = int(next)
	default:
		// Only reachable after a double free or a write to a freed block.
		panic(fmt.Errorf("%w: slot %d links to %d (block count %d)", ErrCorrupt, slot, next, p.blockCount))
	}

	p.inUse++
	if p.issued != nil {
		p.issued.set(slot)
	}
	h := handleOf(slot, p.tag)
	if logAlloc && logger.DebugEnabled() {
		logger.Debug("slab: alloc", "handle", uint64(h), "in_use", p.inUse)
	}
	return h, block, true
}

// Free pushes a block back onto the free list, making it the next one Alloc returns.
// Freeing Nil is a no-op. Without Options.Guard a double free or a handle from
// another pool is not detected.
func (p *Pool) Free(h Handle) error {
	if h == Nil {
		return nil
	}
	if p.closed {
		return ErrClosed
	}
	if p.foreign(h) {
		return fmt.Errorf("%w: handle %d belongs to another pool", ErrNotIssued, uint64(h))
	}
	slot, ok := p.slotOf(h)
	if !ok {
		return fmt.Errorf("%w: %d (block count %d)", ErrBadHandle, uint64(h), p.blockCount)
	}
	if p.issued != nil {
		if !p.issued.has(slot) {
			return fmt.Errorf("%w: handle %d", ErrNotIssued, uint64(h))
		}
		p.issued.clear(slot)
	}

	link := linkEnd
	if p.head != nilSlot {
		link = uint64(p.head)
	}
	p.setLink(slot, link)
	p.head = slot
	p.inUse--

	if logAlloc && logger.DebugEnabled() {
		logger.Debug("slab: free", "handle", uint64(h), "in_use", p.inUse)
	}
	return nil
}

// BlockSize returns the effective block size.
func (p *Pool) BlockSize() int { return p.blockSize }

// BlockCount returns the number of blocks fixed at construction.
func (p *Pool) BlockCount() int { return p.blockCount }

// InUse returns the number of issued blocks.
func (p *Pool) InUse() int { return p.inUse }

// Available returns the number of blocks Alloc can still hand out.
func (p *Pool) Available() int {
	if p.closed {
		return 0
	}
	return p.blockCount - p.inUse
}

// Contains reports whether h names a block of this open pool.
func (p *Pool) Contains(h Handle) bool {
	if p.closed {
		return false
	}
	_, ok := p.slotOf(h)
	return ok
}

// Offset returns the byte offset of h's block within the pool buffer.
func (p *Pool) Offset(h Handle) (int, bool) {
	if p.closed {
		return 0, false
	}
	slot, ok := p.slotOf(h)
	if !ok {
		return 0, false
	}
	return slot * p.blockSize, true
}

// Bytes returns the block named by h, or nil if h is not a block of this open
// pool. With Options.Guard, nil is also returned for blocks that are not issued.
func (p *Pool) Bytes(h Handle) []byte {
	slot, err := p.lookup(h)
	if err != nil {
		return nil
	}
	return p.block(slot)
}

// Stats returns a summary of the pool.
func (p *Pool) Stats() Stats {
	return Stats{
		BlockSize:  p.blockSize,
		BlockCount: p.blockCount,
		InUse:      p.inUse,
		Free:       p.Available(),
		Bytes:      p.blockSize * p.blockCount,
	}
}

// Close releases the buffer as one unit. Blocks still issued are reclaimed
// with it; their slices must not be used afterwards. Close is idempotent.
func (p *Pool) Close() error {
	if p.closed {
		return nil
	}
	logger.Debug("slab: pool closed",
		"block_size", p.blockSize,
		"block_count", p.blockCount,
		"in_use", p.inUse,
	)

	release := p.release
	p.closed = true
	p.head = nilSlot
	p.buf = nil
	p.release = nil
	p.issued = nil
	if release != nil {
		return release()
	}
	return nil
}

// lookup resolves h to a slot for callers that read or write block contents.
func (p *Pool) lookup(h Handle) (int, error) {
	if p.closed {
		return 0, ErrClosed
	}
	if p.foreign(h) {
		return 0, fmt.Errorf("%w: handle %d belongs to another pool", ErrNotIssued, uint64(h))
	}
	slot, ok := p.slotOf(h)
	if !ok {
		return 0, fmt.Errorf("%w: %d", ErrBadHandle, uint64(h))
	}
	if p.issued != nil && !p.issued.has(slot) {
		return 0, fmt.Errorf("%w: handle %d", ErrNotIssued, uint64(h))
	}
	return slot, nil
}

func (p *Pool) slotOf(h Handle) (int, bool) {
	if h.tag() != p.tag {
		return 0, false
	}
	n := uint64(h) & slotMask
	if n == 0 || n > uint64(p.blockCount) {
		return 0, false
	}
	return int(n - 1), true
}

// foreign reports whether a guarded pool is handed a handle another pool issued.
func (p *Pool) foreign(h Handle) bool {
	return p.issued != nil && h != Nil && h.tag() != p.tag
}

func (p *Pool) block(slot int) []byte {
	b, ok := buf.Window(p.buf, slot*p.blockSize, p.blockSize)
	if !ok {
		panic(fmt.Errorf("%w: slot %d outside buffer", ErrCorrupt, slot))
	}
	return b
}

func (p *Pool) link(slot int) uint64 {
	return buf.WordLE(p.block(slot), PointerWidth)
}

func (p *Pool) setLink(slot int, next uint64) {
	buf.PutWordLE(p.block(slot), PointerWidth, next)
}
