// Package memory provides explicitly owned byte regions for wire protocol
// bindings. Every buffer and cell is accounted by the Allocator that created it
// and stays alive until freed exactly once, mirroring the manual ownership
// discipline of the C client library this package talks to.
package memory

import (
	"errors"
	"fmt"
	"sync/atomic"
)

// ErrMemoryLimit returned when an allocation would exceed the allocator's byte budget
var ErrMemoryLimit = errors.New("memory limit exceeded")

// Region sizes of fixed cells handed out by the allocator
const (
	// IntCellSize size in bytes of a length cell, one 32 bit little endian integer
	IntCellSize = 4
	// FlagCellSize size in bytes of a flag cell, one byte interpreted as boolean
	FlagCellSize = 1
)

// Allocator hands out owned byte regions and accounts for every region until it
// is freed. Counters are atomic, so independent bindings may allocate and free
// from the same allocator concurrently.
type Allocator struct {
	limit        int64
	bytesInUse   int64
	regionsInUse int64
	allocations  uint64
	frees        uint64
}

// NewAllocator return allocator without a byte budget
func NewAllocator() *Allocator {
	return &Allocator{}
}

// NewLimitedAllocator return allocator that refuses allocations once more than
// limit bytes are in use. Zero-size regions are always served.
func NewLimitedAllocator(limit int64) *Allocator {
	return &Allocator{limit: limit}
}

// NewBuffer allocate an owned byte region of the exact requested size. Size 0 is
// a valid allocation and yields an empty but present region, distinct from no
// region at all.
func (a *Allocator) NewBuffer(size int) (*Buffer, error) {
	if err := a.reserve(int64(size), regionKindBuffer); err != nil {
		return nil, err
	}
	return &Buffer{allocator: a, data: make([]byte, size)}, nil
}

// NewIntCell allocate a zeroed 32 bit integer cell
func (a *Allocator) NewIntCell() (*IntCell, error) {
	if err := a.reserve(IntCellSize, regionKindIntCell); err != nil {
		return nil, err
	}
	return &IntCell{allocator: a, data: make([]byte, IntCellSize)}, nil
}

// NewFlagCell allocate a flag cell cleared to false
func (a *Allocator) NewFlagCell() (*FlagCell, error) {
	if err := a.reserve(FlagCellSize, regionKindFlagCell); err != nil {
		return nil, err
	}
	return &FlagCell{allocator: a, data: make([]byte, FlagCellSize)}, nil
}

// InUse return the number of live regions allocated through this allocator and
// not yet freed. A balanced workload ends with zero.
func (a *Allocator) InUse() int64 {
	return atomic.LoadInt64(&a.regionsInUse)
}

// BytesInUse return the total size in bytes of live regions
func (a *Allocator) BytesInUse() int64 {
	return atomic.LoadInt64(&a.bytesInUse)
}

// Allocations return the total number of regions handed out since creation
func (a *Allocator) Allocations() uint64 {
	return atomic.LoadUint64(&a.allocations)
}

// Frees return the total number of regions returned since creation
func (a *Allocator) Frees() uint64 {
	return atomic.LoadUint64(&a.frees)
}

func (a *Allocator) reserve(size int64, kind string) error {
	if a.limit > 0 {
		inUse := atomic.AddInt64(&a.bytesInUse, size)
		if inUse > a.limit {
			atomic.AddInt64(&a.bytesInUse, -size)
			AllocationFailureCounter.WithLabelValues(kind).Inc()
			return fmt.Errorf("%w: requested %d bytes, %d of %d in use", ErrMemoryLimit, size, inUse-size, a.limit)
		}
	} else {
		atomic.AddInt64(&a.bytesInUse, size)
	}
	atomic.AddInt64(&a.regionsInUse, 1)
	atomic.AddUint64(&a.allocations, 1)
	AllocationCounter.WithLabelValues(kind).Inc()
	return nil
}

func (a *Allocator) release(size int64, kind string) {
	atomic.AddInt64(&a.bytesInUse, -size)
	atomic.AddInt64(&a.regionsInUse, -1)
	atomic.AddUint64(&a.frees, 1)
	FreeCounter.WithLabelValues(kind).Inc()
}
