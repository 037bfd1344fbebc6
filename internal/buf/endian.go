// Package buf contains bounds-checked size math and little-endian word
// helpers used to read and write free-list links inside block memory.
package buf

import "encoding/binary"

// MaxWord returns the largest value representable in a word of width bytes.
// Width must be 4 or 8.
func MaxWord(width int) uint64 {
	if width == 4 {
		return uint64(^uint32(0))
	}
	return ^uint64(0)
}

// WordLE reads a little-endian word of width bytes (4 or 8) from b.
// Returns MaxWord(width) when b is too short, so a truncated link reads as
// "end of list" instead of slot 0.
func WordLE(b []byte, width int) uint64 {
	if len(b) < width {
		return MaxWord(width)
	}
	if width == 4 {
		return uint64(binary.LittleEndian.Uint32(b))
	}
	return binary.LittleEndian.Uint64(b)
}

// PutWordLE writes v as a little-endian word of width bytes (4 or 8) into b.
// It reports false when b is too short or v does not fit in the width.
func PutWordLE(b []byte, width int, v uint64) bool {
	if len(b) < width || v > MaxWord(width) {
		return false
	}
	if width == 4 {
		binary.LittleEndian.PutUint32(b, uint32(v))
		return true
	}
	binary.LittleEndian.PutUint64(b, v)
	return true
}
