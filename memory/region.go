package memory

import (
	"encoding/binary"
)

// Region kind labels used in allocation metrics
const (
	regionKindBuffer   = "buffer"
	regionKindIntCell  = "int_cell"
	regionKindFlagCell = "flag_cell"
)

// Buffer is an owned byte region of fixed size. The region is valid until Free
// is called. A single Buffer is not safe for concurrent use, callers that share
// one must serialize access themselves.
type Buffer struct {
	allocator *Allocator
	data      []byte
	freed     bool
}

// Bytes return the underlying region. The protocol writes column data directly
// into the returned slice, so its address stays stable for the buffer lifetime.
func (b *Buffer) Bytes() []byte {
	return b.data
}

// Len return the allocated size of the region in bytes
func (b *Buffer) Len() int {
	return len(b.data)
}

// Free return the region to the allocator. Free is idempotent and safe to call
// on a nil buffer, only the first call releases the accounting.
func (b *Buffer) Free() {
	if b == nil || b.freed {
		return
	}
	b.freed = true
	b.allocator.release(int64(len(b.data)), regionKindBuffer)
	b.data = nil
}

// IntCell is an owned cell holding one 32 bit little endian integer. The wire
// protocol reads and writes logical lengths through the cell by address.
type IntCell struct {
	allocator *Allocator
	data      []byte
	freed     bool
}

// Set store v in the cell
func (c *IntCell) Set(v uint32) {
	binary.LittleEndian.PutUint32(c.data, v)
}

// Get return the current cell value
func (c *IntCell) Get() uint32 {
	return binary.LittleEndian.Uint32(c.data)
}

// Bytes return the raw 4 byte region backing the cell
func (c *IntCell) Bytes() []byte {
	return c.data
}

// Free return the cell to the allocator, only the first call releases the accounting
func (c *IntCell) Free() {
	if c == nil || c.freed {
		return
	}
	c.freed = true
	c.allocator.release(IntCellSize, regionKindIntCell)
	c.data = nil
}

// FlagCell is an owned one byte cell interpreted as a boolean. The protocol
// toggles null and truncation markers through cells of this shape.
type FlagCell struct {
	allocator *Allocator
	data      []byte
	freed     bool
}

// Set store v in the cell, true is encoded as 1 and false as 0
func (c *FlagCell) Set(v bool) {
	if v {
		c.data[0] = 1
	} else {
		c.data[0] = 0
	}
}

// Get return the current cell value, any non-zero byte reads as true
func (c *FlagCell) Get() bool {
	return c.data[0] != 0
}

// Bytes return the raw one byte region backing the cell
func (c *FlagCell) Bytes() []byte {
	return c.data
}

// Free return the cell to the allocator, only the first call releases the accounting
func (c *FlagCell) Free() {
	if c == nil || c.freed {
		return
	}
	c.freed = true
	c.allocator.release(FlagCellSize, regionKindFlagCell)
	c.data = nil
}
