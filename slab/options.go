package slab

// Options configures a Pool. A nil *Options selects the defaults.
type Options struct {
	// Memory supplies the buffer. Default: HeapMemory.
	Memory Memory

	// Guard tracks which blocks are issued and stamps a per-pool tag into
	// every handle, so that Free rejects double frees and handles from other
	// pools with ErrNotIssued. Costs one bit per block and a bit test per
	// Alloc/Free.
	Guard bool
}

func (o *Options) memory() Memory {
	if o == nil || o.Memory == nil {
		return HeapMemory{}
	}
	return o.Memory
}

func (o *Options) guard() bool {
	return o != nil && o.Guard
}
