//go:build linux || darwin || freebsd

package mmfile

import (
	"os"
	"testing"
)

func TestMapAnonReadWrite(t *testing.T) {
	size := os.Getpagesize() * 2
	data, release, err := MapAnon(size)
	if err != nil {
		t.Fatalf("MapAnon: %v", err)
	}
	if len(data) != size {
		t.Fatalf("len mismatch: got %d want %d", len(data), size)
	}
	for i, b := range data {
		if b != 0 {
			t.Fatalf("byte %d not zero-filled: 0x%x", i, b)
		}
	}
	data[0] = 0xde
	data[size-1] = 0xad
	if data[0] != 0xde || data[size-1] != 0xad {
		t.Fatalf("writes did not stick")
	}
	if err := release(); err != nil {
		t.Fatalf("release: %v", err)
	}
	if err := release(); err != nil {
		t.Fatalf("second release should be a no-op, got %v", err)
	}
}

func TestMapAnonRejectsZeroSize(t *testing.T) {
	if _, _, err := MapAnon(0); err == nil {
		t.Fatalf("expected error for zero-size mapping")
	}
	if _, _, err := MapAnon(-8); err == nil {
		t.Fatalf("expected error for negative mapping size")
	}
}
