package churn

import (
	"fmt"

	"github.com/joshuapare/slabkit/slab"
)

// Config describes one churn run.
type Config struct {
	BlockSize  int   // requested block size in bytes
	BlockCount int   // live blocks kept during the run
	Iterations int   // free+alloc pairs
	Seed       int64 // seed for the slot picker; both runs use the same sequence

	// Memory and Guard are passed to slab.New by Run.
	Memory slab.Memory
	Guard  bool

	// Verify walks the free list after the pool run.
	Verify bool
}

// DefaultConfig returns the configuration used by `slabctl bench`.
func DefaultConfig() Config {
	return Config{
		BlockSize:  64,
		BlockCount: 10_000,
		Iterations: 1_000_000,
		Seed:       42,
	}
}

func (c Config) validate() error {
	switch {
	case c.BlockSize < 1:
		return fmt.Errorf("%w: block size %d", ErrBadConfig, c.BlockSize)
	case c.BlockCount < 1:
		return fmt.Errorf("%w: block count %d", ErrBadConfig, c.BlockCount)
	case c.Iterations < 0:
		return fmt.Errorf("%w: iterations %d", ErrBadConfig, c.Iterations)
	}
	return nil
}
