package buf

import "math"

// MulSize multiplies two non-negative sizes, returning ok = false when either
// is negative or the product would overflow int.
func MulSize(a, b int) (int, bool) {
	if a < 0 || b < 0 {
		return 0, false
	}
	if a == 0 || b == 0 {
		return 0, true
	}
	if a > math.MaxInt/b {
		return 0, false
	}
	return a * b, true
}

// AddSize adds two non-negative sizes, returning ok = false on overflow.
func AddSize(a, b int) (int, bool) {
	if a < 0 || b < 0 || a > math.MaxInt-b {
		return 0, false
	}
	return a + b, true
}

// Window returns the full-capacity-limited sub-slice b[off:off+n:off+n] if it
// fits within len(b). Appending to the result never spills into b[off+n:].
func Window(b []byte, off, n int) ([]byte, bool) {
	if off < 0 || n < 0 || off > len(b) {
		return nil, false
	}
	end, ok := AddSize(off, n)
	if !ok || end > len(b) {
		return nil, false
	}
	return b[off:end:end], true
}
