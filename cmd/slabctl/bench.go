package main

import (
	"context"
	"fmt"

	"github.com/joshuapare/slabkit/pkg/churn"
	"github.com/joshuapare/slabkit/slab"
	"github.com/spf13/cobra"
)

var (
	benchBlockSize  int
	benchBlocks     int
	benchIterations int
	benchSeed       int64
	benchMemory     string
	benchGuard      bool
	benchVerify     bool
)

func init() {
	def := churn.DefaultConfig()
	cmd := newBenchCmd()
	cmd.Flags().IntVar(&benchBlockSize, "block-size", def.BlockSize, "Requested block size in bytes")
	cmd.Flags().IntVar(&benchBlocks, "blocks", def.BlockCount, "Number of live blocks")
	cmd.Flags().IntVar(&benchIterations, "iterations", def.Iterations, "Free+alloc pairs to run")
	cmd.Flags().Int64Var(&benchSeed, "seed", def.Seed, "Seed for the random slot picker")
	cmd.Flags().StringVar(&benchMemory, "memory", "heap", "Memory source (heap, mmap)")
	cmd.Flags().BoolVar(&benchGuard, "guard", false, "Track issued blocks while churning")
	cmd.Flags().BoolVar(&benchVerify, "verify", false, "Walk the free list after the pool run")
	rootCmd.AddCommand(cmd)
}

func newBenchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Compare a pool against the Go allocator",
		Long: `The bench command fills a pool, then repeatedly frees a random live
block and allocates a replacement. The same workload is replayed with
make([]byte, n) and both timings are reported.

Example:
  slabctl bench
  slabctl bench --block-size 128 --blocks 50000 --iterations 5000000
  slabctl bench --memory mmap --guard --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBench(cmd.Context())
		},
	}
	return cmd
}

type benchReport struct {
	churn.Result
	Memory  string  `json:"memory"`
	Guard   bool    `json:"guard"`
	Seed    int64   `json:"seed"`
	Speedup float64 `json:"speedup"`
}

func runBench(ctx context.Context) error {
	mem, err := slab.MemoryByName(benchMemory)
	if err != nil {
		return err
	}
	cfg := churn.Config{
		BlockSize:  benchBlockSize,
		BlockCount: benchBlocks,
		Iterations: benchIterations,
		Seed:       benchSeed,
		Memory:     mem,
		Guard:      benchGuard,
		Verify:     benchVerify,
	}

	printVerbose("Churning %s blocks of %d bytes for %s iterations (%s)\n",
		formatCount(cfg.BlockCount), cfg.BlockSize, formatCount(cfg.Iterations), benchMemory)

	res, err := churn.Run(ctx, cfg)
	if err != nil {
		return fmt.Errorf("benchmark failed: %w", err)
	}

	if jsonOut {
		return printJSON(benchReport{
			Result:  res,
			Memory:  benchMemory,
			Guard:   benchGuard,
			Seed:    benchSeed,
			Speedup: res.Speedup(),
		})
	}

	printInfo("\nWorkload:\n")
	printInfo("  Blocks:     %s x %d bytes (%s)\n",
		formatCount(res.BlockCount), res.BlockSize, formatBytes(res.BlockCount*res.BlockSize))
	printInfo("  Iterations: %s\n", formatCount(res.Iterations))
	printInfo("  Memory:     %s\n", benchMemory)
	if benchGuard {
		printInfo("  Guard:      on\n")
	}
	printInfo("\nTimings:\n")
	printInfo("  Pool: %-12s (%s/op)\n", formatDuration(res.Pool), formatDuration(res.PerOp(res.Pool)))
	printInfo("  Heap: %-12s (%s/op)\n", formatDuration(res.Heap), formatDuration(res.PerOp(res.Heap)))
	printInfo("\n  Speedup: %.2fx\n", res.Speedup())
	return nil
}
