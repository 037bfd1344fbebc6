// Command benchmark_parser turns `go test -bench` output from the slab
// package into a markdown report comparing the pool with the Go allocator.
//
//	go test -run '^$' -bench . -benchmem ./slab | go run ./scripts -output BENCH.md
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// BenchmarkResult represents a parsed benchmark result.
type BenchmarkResult struct {
	Name        string
	Operation   string
	Size        string
	Impl        string // "pool" or "heap"
	Iterations  int
	NsPerOp     float64
	BytesPerOp  int64
	AllocsPerOp int64
}

// ComparisonResult represents a comparison between the pool and the heap.
type ComparisonResult struct {
	Operation  string
	Size       string
	PoolNs     float64
	HeapNs     float64
	Speedup    float64
	PoolMem    int64
	HeapMem    int64
	PoolAllocs int64
	HeapAllocs int64
	PoolOnly   bool
}

var (
	inputFile = flag.String(
		"input",
		"",
		"Input file with benchmark output (stdin if not specified)",
	)
	outputFile = flag.String("output", "", "Output markdown file (stdout if not specified)")
	quiet      = flag.Bool("quiet", false, "Suppress progress output")
)

// benchmarkRegex matches one result line:
// BenchmarkChurn/pool/64B-8    10000000    12.45 ns/op    0 B/op    0 allocs/op
var benchmarkRegex = regexp.MustCompile(
	`^(Benchmark\S+)\s+(\d+)\s+([\d.]+)\s+ns/op(?:\s+([\d.]+)\s+B/op)?(?:\s+([\d.]+)\s+allocs/op)?`,
)

func main() {
	flag.Parse()

	in := io.Reader(os.Stdin)
	if *inputFile != "" {
		f, err := os.Open(*inputFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening input file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		in = f
	}

	results := parseBenchmarks(bufio.NewScanner(in))
	if !*quiet {
		fmt.Fprintf(os.Stderr, "Parsed %d benchmark results\n", len(results))
	}

	comparisons := generateComparisons(results)
	if !*quiet {
		fmt.Fprintf(os.Stderr, "Generated %d comparisons\n", len(comparisons))
	}

	report := generateMarkdownReport(comparisons, time.Now())

	if *outputFile == "" {
		fmt.Fprint(os.Stdout, report)
		return
	}
	if err := os.WriteFile(*outputFile, []byte(report), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output file: %v\n", err)
		os.Exit(1)
	}
	if !*quiet {
		fmt.Fprintf(os.Stderr, "Report written to %s\n", *outputFile)
	}
}

func parseBenchmarks(scanner *bufio.Scanner) []BenchmarkResult {
	var results []BenchmarkResult

	for scanner.Scan() {
		line := scanner.Text()

		// Unwrap `go test -json` events
		var testEvent map[string]any
		if err := json.Unmarshal([]byte(line), &testEvent); err == nil {
			if output, ok := testEvent["Output"].(string); ok {
				line = output
			}
		}

		matches := benchmarkRegex.FindStringSubmatch(strings.TrimSpace(line))
		if matches == nil {
			continue
		}

		r := BenchmarkResult{Name: matches[1]}
		r.Iterations, _ = strconv.Atoi(matches[2])
		r.NsPerOp, _ = strconv.ParseFloat(matches[3], 64)
		if matches[4] != "" {
			r.BytesPerOp = parseCount(matches[4])
		}
		if matches[5] != "" {
			r.AllocsPerOp = parseCount(matches[5])
		}
		r.Operation, r.Impl, r.Size = splitBenchmarkName(r.Name)
		if r.Operation == "" {
			continue
		}
		results = append(results, r)
	}

	return results
}

// splitBenchmarkName parses the two naming forms the slab benchmarks use:
//
//	Benchmark<Op>/<impl>/<size>-<procs>  paired pool/heap results
//	Benchmark<Op>_Pool/<size>-<procs>    pool-only results
func splitBenchmarkName(name string) (operation, impl, size string) {
	parts := strings.Split(name, "/")
	first := trimProcs(strings.TrimPrefix(parts[0], "Benchmark"))
	size = trimProcs(parts[len(parts)-1])

	if op, ok := strings.CutSuffix(first, "_Pool"); ok {
		if len(parts) == 1 {
			size = ""
		}
		return op, "pool", size
	}
	if len(parts) < 3 {
		return "", "", ""
	}
	return first, parts[1], size
}

// trimProcs removes the -GOMAXPROCS suffix go test appends.
func trimProcs(s string) string {
	if i := strings.LastIndex(s, "-"); i > 0 {
		if _, err := strconv.Atoi(s[i+1:]); err == nil {
			return s[:i]
		}
	}
	return s
}

func parseCount(s string) int64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return int64(f)
}

func generateComparisons(results []BenchmarkResult) []ComparisonResult {
	type key struct {
		operation string
		size      string
	}

	grouped := make(map[key]map[string]BenchmarkResult)
	for _, result := range results {
		k := key{result.Operation, result.Size}
		if grouped[k] == nil {
			grouped[k] = make(map[string]BenchmarkResult)
		}
		grouped[k][result.Impl] = result
	}

	var comparisons []ComparisonResult
	for k, impls := range grouped {
		pool, hasPool := impls["pool"]
		heap, hasHeap := impls["heap"]

		switch {
		case hasPool && hasHeap:
			speedup := 0.0
			if pool.NsPerOp > 0 {
				speedup = heap.NsPerOp / pool.NsPerOp
			}
			comparisons = append(comparisons, ComparisonResult{
				Operation:  k.operation,
				Size:       k.size,
				PoolNs:     pool.NsPerOp,
				HeapNs:     heap.NsPerOp,
				Speedup:    speedup,
				PoolMem:    pool.BytesPerOp,
				HeapMem:    heap.BytesPerOp,
				PoolAllocs: pool.AllocsPerOp,
				HeapAllocs: heap.AllocsPerOp,
			})
		case hasPool:
			comparisons = append(comparisons, ComparisonResult{
				Operation:  k.operation,
				Size:       k.size,
				PoolNs:     pool.NsPerOp,
				PoolMem:    pool.BytesPerOp,
				PoolAllocs: pool.AllocsPerOp,
				PoolOnly:   true,
			})
		}
	}

	sort.Slice(comparisons, func(i, j int) bool {
		if comparisons[i].Operation != comparisons[j].Operation {
			return comparisons[i].Operation < comparisons[j].Operation
		}
		return sizeLess(comparisons[i].Size, comparisons[j].Size)
	})

	return comparisons
}

// sizeLess orders "8B" before "64B" before "512B", falling back to strings.
func sizeLess(a, b string) bool {
	na, errA := strconv.Atoi(strings.TrimSuffix(a, "B"))
	nb, errB := strconv.Atoi(strings.TrimSuffix(b, "B"))
	if errA == nil && errB == nil {
		return na < nb
	}
	return a < b
}

func generateMarkdownReport(comparisons []ComparisonResult, now time.Time) string {
	var sb strings.Builder

	sb.WriteString("# Benchmark Report\n\n")
	fmt.Fprintf(&sb, "Generated: %s\n\n", now.Format("2006-01-02 15:04:05"))

	poolFaster, heapFaster, poolOnly := 0, 0, 0
	totalSpeedup := 0.0
	for _, comp := range comparisons {
		if comp.PoolOnly {
			poolOnly++
			continue
		}
		if comp.Speedup > 1.0 {
			poolFaster++
		} else if comp.Speedup < 1.0 {
			heapFaster++
		}
		totalSpeedup += comp.Speedup
	}

	comparableCount := len(comparisons) - poolOnly
	avgSpeedup := 0.0
	if comparableCount > 0 {
		avgSpeedup = totalSpeedup / float64(comparableCount)
	}

	sb.WriteString("## Summary\n\n")
	fmt.Fprintf(&sb, "- **Total benchmarks**: %d\n", len(comparisons))
	fmt.Fprintf(&sb, "- **Comparable** (pool and heap): %d\n", comparableCount)
	if comparableCount > 0 {
		fmt.Fprintf(&sb, "  - pool faster: %d (%.1f%%)\n",
			poolFaster, float64(poolFaster)/float64(comparableCount)*100)
		fmt.Fprintf(&sb, "  - heap faster: %d (%.1f%%)\n",
			heapFaster, float64(heapFaster)/float64(comparableCount)*100)
		fmt.Fprintf(&sb, "  - Average speedup: **%.2fx**\n", avgSpeedup)
	}
	fmt.Fprintf(&sb, "- **Pool-only benchmarks**: %d\n", poolOnly)
	sb.WriteString("\n")

	sb.WriteString("## Detailed Results\n\n")
	sb.WriteString("| Operation | Size | pool (ns/op) | heap (ns/op) | Speedup | Memory (B/op) | Allocs |\n")
	sb.WriteString("|-----------|------|--------------|--------------|---------|---------------|--------|\n")

	for _, comp := range comparisons {
		if comp.PoolOnly {
			fmt.Fprintf(&sb, "| %s | %s | %s | *N/A* | *pool only* | %s | %s |\n",
				comp.Operation,
				comp.Size,
				formatNumber(comp.PoolNs),
				formatBytes(comp.PoolMem),
				formatNumber(float64(comp.PoolAllocs)),
			)
			continue
		}

		indicator := "✓"
		speedupStyle := "**"
		if comp.Speedup < 1.0 {
			indicator = "✗"
			speedupStyle = ""
		}

		fmt.Fprintf(&sb, "| %s | %s | %s | %s | %s%.2fx%s %s | %s vs %s%s | %s vs %s%s |\n",
			comp.Operation,
			comp.Size,
			formatNumber(comp.PoolNs),
			formatNumber(comp.HeapNs),
			speedupStyle,
			comp.Speedup,
			speedupStyle,
			indicator,
			formatBytes(comp.PoolMem),
			formatBytes(comp.HeapMem),
			lowerIsBetter(comp.PoolMem, comp.HeapMem),
			formatNumber(float64(comp.PoolAllocs)),
			formatNumber(float64(comp.HeapAllocs)),
			lowerIsBetter(comp.PoolAllocs, comp.HeapAllocs),
		)
	}
	sb.WriteString("\n")

	sb.WriteString("## Notes\n\n")
	sb.WriteString("- **Speedup > 1.0**: the pool is faster ✓\n")
	sb.WriteString("- **Speedup < 1.0**: the Go allocator is faster ✗\n")
	sb.WriteString("- **Memory comparison**: Lower is better\n")
	sb.WriteString("- **Allocations**: Fewer is better\n")

	return sb.String()
}

func lowerIsBetter(pool, heap int64) string {
	switch {
	case pool < heap:
		return " ✓"
	case pool > heap:
		return " ✗"
	}
	return ""
}

func formatNumber(n float64) string {
	if n >= 1000000 {
		return fmt.Sprintf("%.2fM", n/1000000)
	} else if n >= 1000 {
		return fmt.Sprintf("%.1fK", n/1000)
	}
	return fmt.Sprintf("%.0f", n)
}

func formatBytes(b int64) string {
	if b >= 1024*1024 {
		return fmt.Sprintf("%.2fMB", float64(b)/(1024*1024))
	} else if b >= 1024 {
		return fmt.Sprintf("%.1fKB", float64(b)/1024)
	}
	return fmt.Sprintf("%dB", b)
}
