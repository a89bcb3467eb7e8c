// Package bind builds owned, type tagged buffer descriptors for the MySQL
// binary protocol. Every binding carries its buffer and bookkeeping cells as
// regions allocated from an explicit allocator and releases them exactly once
// on Close, matching the manual ownership contract of the client library wire
// structures it mirrors.
package bind

import (
	"encoding/binary"
	"fmt"
	"math"

	log "github.com/sirupsen/logrus"

	"github.com/vireodb/mysqlbind/logging"
	"github.com/vireodb/mysqlbind/memory"
	"github.com/vireodb/mysqlbind/mysql"
)

// Bind is one parameter or output binding of a prepared statement. It owns a
// data buffer plus the length, null and error cells the protocol reads and
// writes by address. A binding stays valid until Close.
type Bind struct {
	fieldType mysql.Type
	buffer    *memory.Buffer
	length    *memory.IntCell
	isNull    *memory.FlagCell
	errorFlag *memory.FlagCell
	unsigned  bool
	closed    bool
}

// Null return a binding of the null type. It owns no regions, the type alone
// tells the server there is no data.
func Null() *Bind {
	ConstructedCounter.WithLabelValues(DirectionInput, mysql.TypeNull.String()).Inc()
	return &Bind{fieldType: mysql.TypeNull}
}

// FromBuffer return a binding of fieldType holding a private copy of data.
// It is the generic entry point every data bearing constructor funnels
// through. An empty data slice produces a present binding with a zero length
// buffer, distinct from Null.
func FromBuffer(allocator *memory.Allocator, fieldType mysql.Type, data []byte, unsigned bool) *Bind {
	buffer := mustBuffer(allocator, len(data))
	copy(buffer.Bytes(), data)
	return newBind(allocator, DirectionInput, fieldType, buffer, uint32(len(data)), unsigned)
}

// FromInt64 return a signed integer binding of the longlong type
func FromInt64(allocator *memory.Allocator, v int64) *Bind {
	var data [8]byte
	binary.LittleEndian.PutUint64(data[:], uint64(v))
	return FromBuffer(allocator, mysql.TypeLongLong, data[:], false)
}

// FromUint64 return an unsigned integer binding of the longlong type
func FromUint64(allocator *memory.Allocator, v uint64) *Bind {
	var data [8]byte
	binary.LittleEndian.PutUint64(data[:], v)
	return FromBuffer(allocator, mysql.TypeLongLong, data[:], true)
}

// FromFloat64 return a floating point binding of the double type
func FromFloat64(allocator *memory.Allocator, v float64) *Bind {
	var data [8]byte
	binary.LittleEndian.PutUint64(data[:], math.Float64bits(v))
	return FromBuffer(allocator, mysql.TypeDouble, data[:], false)
}

// FromString return a UTF-8 string binding of the string type
func FromString(allocator *memory.Allocator, v string) *Bind {
	return FromBuffer(allocator, mysql.TypeString, []byte(v), false)
}

// FromBlob return an opaque byte sequence binding of the blob type
func FromBlob(allocator *memory.Allocator, v []byte) *Bind {
	return FromBuffer(allocator, mysql.TypeBlob, v, false)
}

// FromTime return a temporal binding of the datetime type holding the encoded
// calendar record
func FromTime(allocator *memory.Allocator, v mysql.Time) *Bind {
	return FromBuffer(allocator, mysql.TypeDatetime, v.Encode(), false)
}

// ForOutput return a binding sized to receive values of the column described
// by field. Temporal columns take the fixed wire record size, other columns
// take the maximum length the server reported for the column.
func ForOutput(allocator *memory.Allocator, field mysql.Field) *Bind {
	size := int(field.MaxLength)
	if field.Type.IsTemporalType() {
		size = mysql.TimeEncodedLength
	}
	buffer := mustBuffer(allocator, size)
	return newBind(allocator, DirectionOutput, field.Type, buffer, 0, field.IsUnsigned())
}

// Type return the wire type tag of the binding
func (b *Bind) Type() mysql.Type {
	return b.fieldType
}

// Buffer return the owned data region, nil for a Null binding
func (b *Bind) Buffer() *memory.Buffer {
	return b.buffer
}

// BufferLength return the allocated size of the data region in bytes, 0 for a
// Null binding
func (b *Bind) BufferLength() int {
	if b.buffer == nil {
		return 0
	}
	return b.buffer.Len()
}

// Length return the owned length cell, nil for a Null binding
func (b *Bind) Length() *memory.IntCell {
	return b.length
}

// IsNull return the owned null marker cell, nil for a Null binding
func (b *Bind) IsNull() *memory.FlagCell {
	return b.isNull
}

// ErrorFlag return the owned truncation marker cell, nil for a Null binding
func (b *Bind) ErrorFlag() *memory.FlagCell {
	return b.errorFlag
}

// IsUnsigned true if integer data in the buffer is unsigned
func (b *Bind) IsUnsigned() bool {
	return b.unsigned
}

// Close release every region the binding owns. Close is safe to call more
// than once and on a nil binding, only the first call releases the regions.
func (b *Bind) Close() {
	if b == nil || b.closed {
		return
	}
	b.closed = true
	b.buffer.Free()
	b.length.Free()
	b.isNull.Free()
	b.errorFlag.Free()
}

// CloseAll release every binding in binds
func CloseAll(binds []*Bind) {
	for _, b := range binds {
		b.Close()
	}
}

func newBind(allocator *memory.Allocator, direction string, fieldType mysql.Type, buffer *memory.Buffer, dataLength uint32, unsigned bool) *Bind {
	length := mustIntCell(allocator)
	length.Set(dataLength)
	isNull := mustFlagCell(allocator)
	errorFlag := mustFlagCell(allocator)
	ConstructedCounter.WithLabelValues(direction, fieldType.String()).Inc()
	return &Bind{fieldType: fieldType, buffer: buffer, length: length, isNull: isNull, errorFlag: errorFlag, unsigned: unsigned}
}

// Allocation failure aborts construction, a binding is never half built
func mustBuffer(allocator *memory.Allocator, size int) *memory.Buffer {
	buffer, err := allocator.NewBuffer(size)
	if err != nil {
		panicAllocation(err)
	}
	return buffer
}

func mustIntCell(allocator *memory.Allocator) *memory.IntCell {
	cell, err := allocator.NewIntCell()
	if err != nil {
		panicAllocation(err)
	}
	return cell
}

func mustFlagCell(allocator *memory.Allocator) *memory.FlagCell {
	cell, err := allocator.NewFlagCell()
	if err != nil {
		panicAllocation(err)
	}
	return cell
}

func panicAllocation(err error) {
	log.WithField(logging.FieldKeyEventCode, logging.EventCodeErrorAllocationFailure).
		WithError(err).Errorln("Can't allocate bind region")
	panic(fmt.Sprintf("bind allocation failed: %v", err))
}
