package slab

import "math/bits"

// slotSet is a fixed-size bitset over slot indices.
type slotSet struct {
	words []uint64
}

func newSlotSet(n int) *slotSet {
	return &slotSet{words: make([]uint64, (n+63)/64)}
}

func (s *slotSet) set(i int)      { s.words[i>>6] |= 1 << (uint(i) & 63) }
func (s *slotSet) clear(i int)    { s.words[i>>6] &^= 1 << (uint(i) & 63) }
func (s *slotSet) has(i int) bool { return s.words[i>>6]&(1<<(uint(i)&63)) != 0 }

func (s *slotSet) count() int {
	n := 0
	for _, w := range s.words {
		n += bits.OnesCount64(w)
	}
	return n
}
