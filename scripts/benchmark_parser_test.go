package main

import (
	"bufio"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleOutput = `goos: linux
goarch: amd64
pkg: github.com/joshuapare/slabkit/slab
BenchmarkAllocFree/pool/64B-8         	300000000	         4.000 ns/op	       0 B/op	       0 allocs/op
BenchmarkAllocFree/heap/64B-8         	 50000000	        20.00 ns/op	      64 B/op	       1 allocs/op
BenchmarkChurn/pool/512B-8            	100000000	        10.00 ns/op	       0 B/op	       0 allocs/op
BenchmarkChurn/heap/512B-8            	 10000000	        80.00 ns/op	     512 B/op	       1 allocs/op
BenchmarkChurn/pool/8B-8              	100000000	        10.00 ns/op	       0 B/op	       0 allocs/op
BenchmarkChurn/heap/8B-8              	100000000	         5.00 ns/op	       8 B/op	       1 allocs/op
BenchmarkNew_Pool/4096-8              	   100000	     12000 ns/op	  262208 B/op	       2 allocs/op
{"Action":"output","Output":"BenchmarkNew_Pool/64-8  \t 5000000\t 250.0 ns/op\t 4160 B/op\t 2 allocs/op\n"}
PASS
ok  	github.com/joshuapare/slabkit/slab	12.3s
`

func TestParseBenchmarks(t *testing.T) {
	results := parseBenchmarks(bufio.NewScanner(strings.NewReader(sampleOutput)))
	require.Len(t, results, 8)

	first := results[0]
	assert.Equal(t, "AllocFree", first.Operation)
	assert.Equal(t, "pool", first.Impl)
	assert.Equal(t, "64B", first.Size)
	assert.Equal(t, 300000000, first.Iterations)
	assert.InDelta(t, 4.0, first.NsPerOp, 1e-9)

	last := results[7]
	assert.Equal(t, "New", last.Operation)
	assert.Equal(t, "pool", last.Impl)
	assert.Equal(t, "64", last.Size)
	assert.EqualValues(t, 4160, last.BytesPerOp)
}

func TestSplitBenchmarkName(t *testing.T) {
	tests := []struct {
		name           string
		op, impl, size string
	}{
		{"BenchmarkChurn/heap/64B-16", "Churn", "heap", "64B"},
		{"BenchmarkNew_Pool/4096-8", "New", "pool", "4096"},
		{"BenchmarkNew_Pool-8", "New", "pool", ""},
		{"BenchmarkOther/x-8", "", "", ""},
	}
	for _, tt := range tests {
		op, impl, size := splitBenchmarkName(tt.name)
		assert.Equal(t, tt.op, op, tt.name)
		assert.Equal(t, tt.impl, impl, tt.name)
		assert.Equal(t, tt.size, size, tt.name)
	}
}

func TestGenerateComparisons(t *testing.T) {
	results := parseBenchmarks(bufio.NewScanner(strings.NewReader(sampleOutput)))
	comps := generateComparisons(results)
	require.Len(t, comps, 5)

	assert.Equal(t, "AllocFree", comps[0].Operation)
	assert.InDelta(t, 5.0, comps[0].Speedup, 1e-9)

	// 8B sorts before 512B
	assert.Equal(t, "8B", comps[1].Size)
	assert.InDelta(t, 0.5, comps[1].Speedup, 1e-9)
	assert.Equal(t, "512B", comps[2].Size)

	assert.True(t, comps[3].PoolOnly)
	assert.Equal(t, "64", comps[3].Size)
	assert.Equal(t, "4096", comps[4].Size)
}

func TestGenerateMarkdownReport(t *testing.T) {
	results := parseBenchmarks(bufio.NewScanner(strings.NewReader(sampleOutput)))
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	report := generateMarkdownReport(generateComparisons(results), now)

	assert.Contains(t, report, "Generated: 2026-01-02 03:04:05")
	assert.Contains(t, report, "- **Comparable** (pool and heap): 3")
	assert.Contains(t, report, "  - pool faster: 2 (66.7%)")
	assert.Contains(t, report, "| AllocFree | 64B | 4 | 20 | **5.00x** ✓ | 0B vs 64B ✓ | 0 vs 1 ✓ |")
	assert.Contains(t, report, "| Churn | 8B | 10 | 5 | 0.50x ✗ |")
	assert.Contains(t, report, "| New | 4096 | 12.0K | *N/A* | *pool only* | 256.1KB | 2 |")
}

func TestGenerateMarkdownReport_Empty(t *testing.T) {
	report := generateMarkdownReport(nil, time.Now())
	assert.Contains(t, report, "- **Total benchmarks**: 0")
	assert.NotContains(t, report, "Average speedup")
}
