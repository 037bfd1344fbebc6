package slab

import (
	"sync/atomic"
	"unsafe"
)

// PointerWidth is the size of a free-list link and the minimum block size.
const PointerWidth = int(unsafe.Sizeof(uintptr(0)))

// Handle names an issued block. The low 40 bits hold slot+1; the high 24 bits
// hold the issuing pool's tag, which is zero for unguarded pools. The zero
// value is Nil.
type Handle uint64

// Nil is the empty handle. Freeing it is a no-op.
const Nil Handle = 0

const (
	slotBits = 40
	slotMask = 1<<slotBits - 1
	tagMask  = 1<<(64-slotBits) - 1

	// maxGuardedBlocks is the largest block count a tagged handle can address.
	maxGuardedBlocks = slotMask - 1
)

// poolTags hands out guard tags. Tags wrap after 2^24-1 guarded pools, so two
// pools created that far apart may share one.
var poolTags atomic.Uint32

func nextPoolTag() uint64 {
	for {
		if t := uint64(poolTags.Add(1)) & tagMask; t != 0 {
			return t
		}
	}
}

func handleOf(slot int, tag uint64) Handle {
	return Handle(tag<<slotBits | uint64(slot+1))
}

func (h Handle) tag() uint64 { return uint64(h) >> slotBits }

// Stats is a point-in-time summary of a pool.
type Stats struct {
	BlockSize  int `json:"block_size"`
	BlockCount int `json:"block_count"`
	InUse      int `json:"in_use"`
	Free       int `json:"free"`
	Bytes      int `json:"bytes"`
}

// EffectiveBlockSize returns the block size a pool uses for a requested size.
func EffectiveBlockSize(requested int) int {
	if requested < PointerWidth {
		return PointerWidth
	}
	return requested
}
