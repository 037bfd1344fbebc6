package churn

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/joshuapare/slabkit/internal/logger"
	"github.com/joshuapare/slabkit/slab"
)

// cancelCheckEvery is how many iterations run between ctx checks.
const cancelCheckEvery = 1024

// Result holds the timings of one Run.
type Result struct {
	Iterations int           `json:"iterations"`
	BlockSize  int           `json:"block_size"`
	BlockCount int           `json:"block_count"`
	Pool       time.Duration `json:"pool_ns"`
	Heap       time.Duration `json:"heap_ns"`
}

// Speedup returns Heap/Pool, or 0 when the pool time is zero.
func (r Result) Speedup() float64 {
	if r.Pool <= 0 {
		return 0
	}
	return float64(r.Heap) / float64(r.Pool)
}

// PerOp returns the average time of one free+alloc pair for d.
func (r Result) PerOp(d time.Duration) time.Duration {
	if r.Iterations == 0 {
		return 0
	}
	return d / time.Duration(r.Iterations)
}

// Run builds a pool from cfg, churns it, churns the Go heap with the same
// seed, and returns both timings. The pool is closed before Run returns.
func Run(ctx context.Context, cfg Config) (Result, error) {
	if err := cfg.validate(); err != nil {
		return Result{}, err
	}

	p, err := slab.New(cfg.BlockSize, cfg.BlockCount, &slab.Options{Memory: cfg.Memory, Guard: cfg.Guard})
	if err != nil {
		return Result{}, fmt.Errorf("create pool: %w", err)
	}
	defer p.Close()

	res := Result{
		Iterations: cfg.Iterations,
		BlockSize:  p.BlockSize(),
		BlockCount: p.BlockCount(),
	}
	logger.Info("churn: start",
		"block_size", res.BlockSize,
		"block_count", res.BlockCount,
		"iterations", res.Iterations,
		"seed", cfg.Seed,
		"guard", cfg.Guard,
	)

	res.Pool, err = RunPool(ctx, p, cfg)
	if err != nil {
		return res, fmt.Errorf("pool churn: %w", err)
	}
	res.Heap, err = RunHeap(ctx, cfg)
	if err != nil {
		return res, fmt.Errorf("heap churn: %w", err)
	}

	logger.Info("churn: done",
		"pool", res.Pool,
		"heap", res.Heap,
		"speedup", res.Speedup(),
	)
	return res, nil
}

// Pool is the part of *slab.Pool the churn loop drives.
type Pool interface {
	Alloc() (slab.Handle, []byte, bool)
	Free(h slab.Handle) error
	InUse() int
	Available() int
	Verify() error
}

// RunPool allocates every free block of p, then performs cfg.Iterations
// free+alloc pairs on randomly chosen live blocks. Only the churn loop is
// timed. The blocks stay issued when RunPool returns.
func RunPool(ctx context.Context, p Pool, cfg Config) (time.Duration, error) {
	live := make([]slab.Handle, 0, p.Available())
	for {
		h, block, ok := p.Alloc()
		if !ok {
			break
		}
		block[0] = 1
		live = append(live, h)
	}
	if len(live) == 0 {
		return 0, fmt.Errorf("%w: pool has no free blocks to churn", ErrExhausted)
	}
	want := p.InUse()

	rng := rand.New(rand.NewSource(cfg.Seed))
	start := time.Now()
	for i := 0; i < cfg.Iterations; i++ {
		if i%cancelCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return time.Since(start), err
			}
		}
		j := rng.Intn(len(live))
		if err := p.Free(live[j]); err != nil {
			return time.Since(start), fmt.Errorf("iteration %d: %w", i, err)
		}
		h, block, ok := p.Alloc()
		if !ok {
			return time.Since(start), fmt.Errorf("%w at iteration %d", ErrExhausted, i)
		}
		block[0] = byte(i)
		live[j] = h
	}
	elapsed := time.Since(start)

	if got := p.InUse(); got != want {
		return elapsed, fmt.Errorf("%w: %d issued, want %d", ErrDrift, got, want)
	}
	if cfg.Verify {
		if err := p.Verify(); err != nil {
			return elapsed, err
		}
	}
	logger.Debug("churn: pool run", "iterations", cfg.Iterations, "elapsed", elapsed)
	return elapsed, nil
}

// heapSink keeps a baseline block reachable so the loop is not elided.
var heapSink []byte

// RunHeap performs the RunPool workload with make([]byte, n) as the allocator.
// n is the effective block size the pool would use, so both runs move the
// same number of bytes.
func RunHeap(ctx context.Context, cfg Config) (time.Duration, error) {
	if err := cfg.validate(); err != nil {
		return 0, err
	}
	size := slab.EffectiveBlockSize(cfg.BlockSize)
	live := make([][]byte, cfg.BlockCount)
	for i := range live {
		live[i] = make([]byte, size)
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	start := time.Now()
	for i := 0; i < cfg.Iterations; i++ {
		if i%cancelCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return time.Since(start), err
			}
		}
		j := rng.Intn(len(live))
		live[j] = make([]byte, size)
		live[j][0] = byte(i)
	}
	elapsed := time.Since(start)
	heapSink = live[0]

	logger.Debug("churn: heap run", "iterations", cfg.Iterations, "elapsed", elapsed)
	return elapsed, nil
}
