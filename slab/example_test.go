package slab_test

import (
	"fmt"

	"github.com/joshuapare/slabkit/slab"
)

func Example() {
	p, err := slab.New(16, 3, nil)
	if err != nil {
		panic(err)
	}
	defer p.Close()

	var handles []slab.Handle
	for {
		h, block, ok := p.Alloc()
		if !ok {
			break
		}
		copy(block, "hello")
		handles = append(handles, h)
	}
	fmt.Println("allocated:", len(handles))

	_ = p.Free(handles[1])
	h, _, _ := p.Alloc()
	fmt.Println("reused:", h == handles[1])
	fmt.Println("block size:", p.BlockSize())

	// Output:
	// allocated: 3
	// reused: true
	// block size: 16
}

func ExampleStore() {
	type point struct{ X, Y int32 }

	p, err := slab.NewFor[point](4, nil)
	if err != nil {
		panic(err)
	}
	defer p.Close()

	h, _, _ := p.Alloc()
	_ = slab.Store(p, h, &point{X: 3, Y: 4})
	got, _ := slab.Load[point](p, h)
	fmt.Println(got.X, got.Y)

	// Output:
	// 3 4
}
