// Package churn drives a slab.Pool and the Go allocator through the same
// random replacement workload and times both.
//
// The workload fills the pool, then repeatedly frees a randomly chosen live
// block and immediately allocates a replacement. Because exactly one block is
// freed before each allocation, the pool can never run dry and the number of
// issued blocks stays constant; RunPool reports ErrExhausted or ErrDrift if
// either property breaks.
//
//	res, err := churn.Run(ctx, churn.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("pool %v heap %v (%.1fx)\n", res.Pool, res.Heap, res.Speedup())
package churn
