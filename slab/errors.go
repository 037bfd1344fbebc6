package slab

import "errors"

var (
	// ErrBadBlockSize indicates a requested block size below one byte.
	ErrBadBlockSize = errors.New("slab: block size must be at least 1")

	// ErrBadBlockCount indicates a requested block count below one.
	ErrBadBlockCount = errors.New("slab: block count must be at least 1")

	// ErrTooLarge indicates that the buffer or a stored value does not fit.
	ErrTooLarge = errors.New("slab: size too large")

	// ErrMemory indicates that the memory source could not provide the buffer.
	ErrMemory = errors.New("slab: memory source failed")

	// ErrClosed indicates use of a pool after Close.
	ErrClosed = errors.New("slab: pool closed")

	// ErrBadHandle indicates a handle that does not name a block of this pool.
	ErrBadHandle = errors.New("slab: bad handle")

	// ErrNotIssued indicates a guarded free of a block that is not currently issued.
	ErrNotIssued = errors.New("slab: block not issued")

	// ErrCorrupt indicates a damaged free list.
	ErrCorrupt = errors.New("slab: free list corrupt")

	// ErrPointerType indicates a type that cannot be stored in block memory.
	ErrPointerType = errors.New("slab: type contains pointers")
)
