package memory

import (
	"errors"
	"math"
	"reflect"
)

var (
	errCapacityOverflow = errors.New("capacity overflow")
	errZeroCapacity     = errors.New("capacity must be positive")
)

// buffer is a growable run of slots. len(items) is the physical capacity;
// items[:count] is the live range. Slots are never shared with callers.
type buffer[T any] struct {
	items []T
	count int
	alloc Allocator
}

// maxBufferBytes caps a single buffer's footprint. Larger requests fail with
// errCapacityOverflow before anything is reserved or allocated.
const maxBufferBytes int64 = 1 << 32

// footprint reports the bytes n slots of T occupy, or false when that
// exceeds maxBufferBytes.
func footprint[T any](n int) (int64, bool) {
	size := int64(reflect.TypeFor[T]().Size())
	if size == 0 {
		return 0, true
	}
	if int64(n) > maxBufferBytes/size {
		return 0, false
	}
	return int64(n) * size, true
}

func newBuffer[T any](alloc Allocator, capacity int) (buffer[T], error) {
	if capacity <= 0 {
		return buffer[T]{}, errZeroCapacity
	}
	bytes, ok := footprint[T](capacity)
	if !ok {
		return buffer[T]{}, errCapacityOverflow
	}
	if err := alloc.Reserve(bytes); err != nil {
		return buffer[T]{}, err
	}
	return buffer[T]{items: make([]T, capacity), alloc: alloc}, nil
}

func (b *buffer[T]) size() int { return b.count }

func (b *buffer[T]) capacity() int { return len(b.items) }

func (b *buffer[T]) full() bool { return b.count >= len(b.items) }

// grow doubles capacity. On error the buffer is unchanged.
func (b *buffer[T]) grow() error {
	oldCap := len(b.items)
	if oldCap == 0 {
		return errZeroCapacity
	}
	if oldCap > math.MaxInt/2 {
		return errCapacityOverflow
	}
	newCap := oldCap * 2
	newBytes, ok := footprint[T](newCap)
	if !ok {
		return errCapacityOverflow
	}
	if err := b.alloc.Reserve(newBytes); err != nil {
		return err
	}
	items := make([]T, newCap)
	copy(items, b.items[:b.count])
	oldBytes, _ := footprint[T](oldCap)
	b.items = items
	b.alloc.Release(oldBytes)
	return nil
}

// push stores v in the next free slot. Callers grow first when full.
func (b *buffer[T]) push(v T) {
	b.items[b.count] = v
	b.count++
}

func (b *buffer[T]) at(i int) *T { return &b.items[i] }

func (b *buffer[T]) live() []T { return b.items[:b.count] }

// release returns the buffer's footprint to the allocator.
func (b *buffer[T]) release() {
	if b.items == nil {
		return
	}
	bytes, _ := footprint[T](len(b.items))
	b.alloc.Release(bytes)
	b.items = nil
	b.count = 0
}
