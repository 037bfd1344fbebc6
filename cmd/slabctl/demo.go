package main

import (
	"errors"
	"fmt"

	"github.com/joshuapare/slabkit/slab"
	"github.com/spf13/cobra"
)

var (
	demoBlockSize int
	demoBlocks    int
	demoMemory    string
	demoGuard     bool
)

// errNotReused reports a freed block that the next allocation did not return.
var errNotReused = errors.New("freed block was not reused")

func init() {
	cmd := newDemoCmd()
	cmd.Flags().IntVar(&demoBlockSize, "block-size", 4, "Requested block size in bytes")
	cmd.Flags().IntVar(&demoBlocks, "blocks", 5, "Number of blocks in the pool")
	cmd.Flags().StringVar(&demoMemory, "memory", "heap", "Memory source (heap, mmap)")
	cmd.Flags().BoolVar(&demoGuard, "guard", false, "Reject double frees and foreign handles")
	rootCmd.AddCommand(cmd)
}

func newDemoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Fill a pool, exhaust it, free one block and reuse it",
		Long: `The demo command builds a small pool and walks it through one full cycle:
every block is allocated and stamped with a value, one more allocation
reports exhaustion, the third block is freed, and the next allocation
must return that same block.

Example:
  slabctl demo
  slabctl demo --block-size 32 --blocks 3 --memory mmap
  slabctl demo --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo()
		},
	}
	return cmd
}

type demoStep struct {
	Action string      `json:"action"`
	Index  int         `json:"index"`
	Handle slab.Handle `json:"handle"`
	Offset int         `json:"offset"`
	OK     bool        `json:"ok"`
}

type demoReport struct {
	RequestedSize int        `json:"requested_size"`
	Memory        string     `json:"memory"`
	Steps         []demoStep `json:"steps"`
	Reused        bool       `json:"reused"`
	Stats         slab.Stats `json:"stats"`
}

func runDemo() error {
	mem, err := slab.MemoryByName(demoMemory)
	if err != nil {
		return err
	}

	printVerbose("Creating pool: %d blocks of %d bytes (%s)\n", demoBlocks, demoBlockSize, demoMemory)
	p, err := slab.New(demoBlockSize, demoBlocks, &slab.Options{Memory: mem, Guard: demoGuard})
	if err != nil {
		return fmt.Errorf("failed to create pool: %w", err)
	}
	defer p.Close()

	report, err := demoCycle(p)
	report.RequestedSize = demoBlockSize
	report.Memory = demoMemory
	if err != nil {
		return err
	}

	if jsonOut {
		return printJSON(report)
	}

	printInfo("\nPool:\n")
	printInfo("  Requested size: %d bytes\n", demoBlockSize)
	printInfo("  Block size:     %d bytes\n", report.Stats.BlockSize)
	printInfo("  Blocks:         %d\n", report.Stats.BlockCount)
	printInfo("  Buffer:         %s\n", formatBytes(report.Stats.Bytes))
	printInfo("\nSteps:\n")
	for _, s := range report.Steps {
		switch {
		case !s.OK:
			printInfo("  %-6s #%d  no block available\n", s.Action, s.Index)
		default:
			printInfo("  %-6s #%d  handle %d  offset %d\n", s.Action, s.Index, s.Handle, s.Offset)
		}
	}
	printInfo("\nResult:\n")
	printInfo("  ✓ Freed block reused\n")
	printInfo("  In use: %d of %d\n", report.Stats.InUse, report.Stats.BlockCount)
	return nil
}

// demoCycle runs the fill, exhaust, free and reuse steps on an empty pool.
func demoCycle(p *slab.Pool) (demoReport, error) {
	var report demoReport
	record := func(action string, index int, h slab.Handle, ok bool) {
		off, _ := p.Offset(h)
		report.Steps = append(report.Steps, demoStep{
			Action: action,
			Index:  index,
			Handle: h,
			Offset: off,
			OK:     ok,
		})
	}

	handles := make([]slab.Handle, 0, p.BlockCount())
	for i := range p.BlockCount() {
		h, block, ok := p.Alloc()
		if !ok {
			return report, fmt.Errorf("allocation %d of %d failed", i, p.BlockCount())
		}
		block[0] = byte(i * 10)
		handles = append(handles, h)
		record("alloc", i, h, true)
	}

	h, _, ok := p.Alloc()
	record("alloc", len(handles), h, ok)
	if ok {
		return report, fmt.Errorf("allocation past capacity returned handle %d", h)
	}

	victim := min(2, len(handles)-1)
	freed := handles[victim]
	if err := p.Free(freed); err != nil {
		return report, fmt.Errorf("free #%d: %w", victim, err)
	}
	record("free", victim, freed, true)

	h, _, ok = p.Alloc()
	record("alloc", victim, h, ok)
	report.Reused = ok && h == freed
	report.Stats = p.Stats()
	if !report.Reused {
		return report, errNotReused
	}
	return report, nil
}
