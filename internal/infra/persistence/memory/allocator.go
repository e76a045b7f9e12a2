package memory

import (
	"errors"
	"fmt"
)

// ErrBudgetExceeded is returned by BudgetAllocator when a reservation would
// push usage past the configured limit.
var ErrBudgetExceeded = errors.New("memory budget exceeded")

// Allocator admits or refuses requests for backing storage. The store
// reserves the full footprint of a buffer before allocating it and releases
// the footprint of a buffer once it has been replaced.
type Allocator interface {
	Reserve(bytes int64) error
	Release(bytes int64)
}

// UnboundedAllocator admits every reservation.
type UnboundedAllocator struct{}

// Reserve implements Allocator.
func (UnboundedAllocator) Reserve(int64) error { return nil }

// Release implements Allocator.
func (UnboundedAllocator) Release(int64) {}

// BudgetAllocator admits reservations while total usage stays within a fixed
// byte limit.
type BudgetAllocator struct {
	limit int64
	used  int64
	peak  int64
}

// NewBudgetAllocator returns an allocator capped at limit bytes.
func NewBudgetAllocator(limit int64) *BudgetAllocator {
	return &BudgetAllocator{limit: limit}
}

// Reserve implements Allocator.
func (a *BudgetAllocator) Reserve(bytes int64) error {
	if bytes < 0 {
		return fmt.Errorf("negative reservation %d", bytes)
	}
	if bytes > a.limit-a.used {
		return fmt.Errorf("%w: requested %d bytes, %d of %d in use", ErrBudgetExceeded, bytes, a.used, a.limit)
	}
	a.used += bytes
	if a.used > a.peak {
		a.peak = a.used
	}
	return nil
}

// Release implements Allocator.
func (a *BudgetAllocator) Release(bytes int64) {
	a.used -= bytes
	if a.used < 0 {
		a.used = 0
	}
}

// Used returns the number of bytes currently reserved.
func (a *BudgetAllocator) Used() int64 { return a.used }

// Peak returns the highest reservation total observed.
func (a *BudgetAllocator) Peak() int64 { return a.peak }

// Limit returns the configured budget.
func (a *BudgetAllocator) Limit() int64 { return a.limit }
