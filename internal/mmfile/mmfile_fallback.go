//go:build !linux && !darwin && !freebsd && !windows

// Package mmfile provides platform-specific helpers for mapping anonymous
// memory regions that back a block pool.
package mmfile

import "fmt"

// MapAnon allocates from the Go heap when anonymous mappings are not available.
func MapAnon(size int) ([]byte, func() error, error) {
	if size <= 0 {
		return nil, nil, fmt.Errorf("mmfile: invalid mapping size %d", size)
	}
	return make([]byte, size), func() error { return nil }, nil
}
