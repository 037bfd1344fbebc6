package slab

import (
	"fmt"
	"reflect"
	"unsafe"
)

// NewFor creates a pool whose blocks hold one T each.
// T must be pointer-free (see Store).
func NewFor[T any](blockCount int, opts *Options) (*Pool, error) {
	if err := assertNoPointers[T](); err != nil {
		return nil, err
	}
	size := sizeOf[T]()
	if size < 1 {
		size = 1
	}
	return New(size, blockCount, opts)
}

// Store copies *v into the block named by h.
// T must not contain pointers, strings, slices, maps, interfaces, funcs or
// chans: block memory is invisible to the garbage collector.
func Store[T any](p *Pool, h Handle, v *T) error {
	if err := assertNoPointers[T](); err != nil {
		return err
	}
	slot, err := p.lookup(h)
	if err != nil {
		return err
	}
	src := bytesViewOf(v)
	if len(src) > p.blockSize {
		return fmt.Errorf("%w: %T is %d bytes, block is %d", ErrTooLarge, *v, len(src), p.blockSize)
	}
	copy(p.block(slot), src)
	return nil
}

// Load copies the block named by h into a new T.
func Load[T any](p *Pool, h Handle) (*T, error) {
	if err := assertNoPointers[T](); err != nil {
		return nil, err
	}
	slot, err := p.lookup(h)
	if err != nil {
		return nil, err
	}
	out := new(T)
	dst := bytesViewOf(out)
	if len(dst) > p.blockSize {
		return nil, fmt.Errorf("%w: %T is %d bytes, block is %d", ErrTooLarge, *out, len(dst), p.blockSize)
	}
	copy(dst, p.block(slot))
	return out, nil
}

func sizeOf[T any]() int {
	var zero T
	return int(unsafe.Sizeof(zero))
}

func assertNoPointers[T any]() error {
	if err := typeNoPointers(reflect.TypeFor[T]()); err != nil {
		return fmt.Errorf("%w: %w", ErrPointerType, err)
	}
	return nil
}

func typeNoPointers(t reflect.Type) error {
	switch t.Kind() {
	case reflect.Bool, reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return nil
	case reflect.Array:
		return typeNoPointers(t.Elem())
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if err := typeNoPointers(t.Field(i).Type); err != nil {
				return fmt.Errorf("field %s: %w", t.Field(i).Name, err)
			}
		}
		return nil
	case reflect.String, reflect.Slice, reflect.Map, reflect.Pointer,
		reflect.Interface, reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return fmt.Errorf("type %s contains pointer-like data", t.String())
	default:
		return fmt.Errorf("unsupported kind %s (%s)", t.Kind(), t.String())
	}
}

func bytesViewOf[T any](p *T) []byte {
	n := int(unsafe.Sizeof(*p))
	return unsafe.Slice((*byte)(unsafe.Pointer(p)), n)
}
