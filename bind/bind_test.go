package bind

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vireodb/mysqlbind/memory"
	"github.com/vireodb/mysqlbind/mysql"
)

func TestNullBindOwnsNothing(t *testing.T) {
	b := Null()
	assert.Equal(t, mysql.TypeNull, b.Type())
	assert.Nil(t, b.Buffer())
	assert.Equal(t, 0, b.BufferLength())
	assert.Nil(t, b.Length())
	assert.Nil(t, b.IsNull())
	assert.Nil(t, b.ErrorFlag())
	assert.False(t, b.IsUnsigned())

	// closing a binding without regions is a no-op
	b.Close()
	b.Close()
}

func TestFromBufferCopiesData(t *testing.T) {
	allocator := memory.NewAllocator()
	data := []byte{1, 2, 3}

	b := FromBuffer(allocator, mysql.TypeVarchar, data, false)
	defer b.Close()

	// the binding holds a private copy
	data[0] = 99
	assert.Equal(t, []byte{1, 2, 3}, b.Buffer().Bytes())
	assert.Equal(t, mysql.TypeVarchar, b.Type())
	assert.Equal(t, uint32(3), b.Length().Get())
	assert.False(t, b.IsNull().Get())
	assert.False(t, b.ErrorFlag().Get())
}

func TestEmptyBufferIsDistinctFromNull(t *testing.T) {
	allocator := memory.NewAllocator()

	b := FromBuffer(allocator, mysql.TypeBlob, []byte{}, false)
	defer b.Close()

	assert.NotEqual(t, mysql.TypeNull, b.Type())
	if b.Buffer() == nil || b.Buffer().Bytes() == nil {
		t.Fatal("empty binding should own a present zero size region")
	}
	assert.Equal(t, 0, b.BufferLength())
	assert.Equal(t, uint32(0), b.Length().Get())
}

func TestScalarEncodings(t *testing.T) {
	type testcase struct {
		name         string
		construct    func(*memory.Allocator) *Bind
		expectedType mysql.Type
		expectedData []byte
		unsigned     bool
	}

	testcases := []testcase{
		{
			"negative int",
			func(a *memory.Allocator) *Bind { return FromInt64(a, -2) },
			mysql.TypeLongLong,
			[]byte{0xFE, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF},
			false,
		},
		{
			"max uint",
			func(a *memory.Allocator) *Bind { return FromUint64(a, math.MaxUint64) },
			mysql.TypeLongLong,
			[]byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF},
			true,
		},
		{
			"double",
			func(a *memory.Allocator) *Bind { return FromFloat64(a, 1.5) },
			mysql.TypeDouble,
			[]byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0xF8, 0x3F},
			false,
		},
	}

	for _, testcase := range testcases {
		t.Run(testcase.name, func(t *testing.T) {
			allocator := memory.NewAllocator()
			b := testcase.construct(allocator)
			assert.Equal(t, testcase.expectedType, b.Type())
			assert.Equal(t, testcase.expectedData, b.Buffer().Bytes())
			assert.Equal(t, uint32(8), b.Length().Get())
			assert.Equal(t, testcase.unsigned, b.IsUnsigned())
			b.Close()
			assert.Equal(t, int64(0), allocator.InUse())
		})
	}
}

func TestFromStringKeepsUTF8Bytes(t *testing.T) {
	allocator := memory.NewAllocator()
	b := FromString(allocator, "héllo")
	defer b.Close()

	assert.Equal(t, mysql.TypeString, b.Type())
	assert.Equal(t, []byte{0x68, 0xC3, 0xA9, 0x6C, 0x6C, 0x6F}, b.Buffer().Bytes())
	// length counts bytes, not runes
	assert.Equal(t, uint32(6), b.Length().Get())
}

func TestFromBlob(t *testing.T) {
	allocator := memory.NewAllocator()
	b := FromBlob(allocator, []byte{0xDE, 0xAD, 0xBE, 0xEF})
	defer b.Close()

	assert.Equal(t, mysql.TypeBlob, b.Type())
	assert.Equal(t, []byte{0xDE, 0xAD, 0xBE, 0xEF}, b.Buffer().Bytes())
	assert.Equal(t, uint32(4), b.Length().Get())
}

func TestFromTime(t *testing.T) {
	allocator := memory.NewAllocator()
	b := FromTime(allocator, mysql.Time{Year: 2024, Month: 1, Day: 2, Hour: 3, Minute: 4, Second: 5})
	defer b.Close()

	assert.Equal(t, mysql.TypeDatetime, b.Type())
	assert.Equal(t, []byte{0xE8, 0x07, 1, 2, 3, 4, 5}, b.Buffer().Bytes())
	assert.Equal(t, uint32(mysql.TimeEncodedLength), b.Length().Get())
}

func TestForOutputSizing(t *testing.T) {
	type testcase struct {
		field        mysql.Field
		expectedSize int
	}

	testcases := []testcase{
		{mysql.Field{Name: "id", Type: mysql.TypeLongLong, Flags: mysql.UnsignedFlag, MaxLength: 20}, 20},
		{mysql.Field{Name: "body", Type: mysql.TypeBlob, MaxLength: 65535}, 65535},
		{mysql.Field{Name: "note", Type: mysql.TypeVarchar, MaxLength: 0}, 0},
		// temporal columns always take the fixed record size
		{mysql.Field{Name: "created", Type: mysql.TypeDatetime, MaxLength: 19}, mysql.TimeEncodedLength},
		{mysql.Field{Name: "day", Type: mysql.TypeDate, MaxLength: 10}, mysql.TimeEncodedLength},
		{mysql.Field{Name: "elapsed", Type: mysql.TypeTime, MaxLength: 10}, mysql.TimeEncodedLength},
		{mysql.Field{Name: "at", Type: mysql.TypeTimestamp, MaxLength: 19}, mysql.TimeEncodedLength},
	}

	allocator := memory.NewAllocator()
	for _, testcase := range testcases {
		b := ForOutput(allocator, testcase.field)
		if b.BufferLength() != testcase.expectedSize {
			t.Fatalf("%s: expected %d byte buffer, took %d", testcase.field.Name, testcase.expectedSize, b.BufferLength())
		}
		assert.Equal(t, testcase.field.Type, b.Type())
		assert.Equal(t, testcase.field.IsUnsigned(), b.IsUnsigned())
		// the server fills the length cell later
		assert.Equal(t, uint32(0), b.Length().Get())
		b.Close()
	}
	assert.Equal(t, int64(0), allocator.InUse())
}

func TestCloseReleasesAllRegions(t *testing.T) {
	allocator := memory.NewAllocator()
	b := FromString(allocator, "payload")

	// buffer, length cell and two flag cells
	assert.Equal(t, int64(4), allocator.InUse())

	b.Close()
	assert.Equal(t, int64(0), allocator.InUse())
	assert.Equal(t, int64(0), allocator.BytesInUse())

	frees := allocator.Frees()
	b.Close()
	assert.Equal(t, frees, allocator.Frees())
}

func TestCloseNilBind(t *testing.T) {
	var b *Bind
	b.Close()
}

func TestCloseAll(t *testing.T) {
	allocator := memory.NewAllocator()
	binds := []*Bind{
		Null(),
		FromInt64(allocator, 1),
		nil,
		FromString(allocator, "x"),
	}
	CloseAll(binds)
	assert.Equal(t, int64(0), allocator.InUse())
}

func TestAllocationFailureAborts(t *testing.T) {
	// not even the 8 byte scalar buffer fits
	assert.Panics(t, func() { FromInt64(memory.NewLimitedAllocator(4), 1) })
	// the buffer fits but the length cell does not
	assert.Panics(t, func() { FromInt64(memory.NewLimitedAllocator(8), 1) })
	// output buffer over budget
	assert.Panics(t, func() {
		ForOutput(memory.NewLimitedAllocator(16), mysql.Field{Type: mysql.TypeBlob, MaxLength: 1024})
	})
}

func TestRepeatedConstructReleaseLeavesNothingInUse(t *testing.T) {
	allocator := memory.NewAllocator()
	for i := 0; i < 10000; i++ {
		binds := []*Bind{
			Null(),
			FromInt64(allocator, int64(i)),
			FromUint64(allocator, uint64(i)),
			FromFloat64(allocator, float64(i)),
			FromString(allocator, "loop payload"),
			FromBlob(allocator, []byte{1, 2, 3}),
			FromTime(allocator, mysql.Time{Year: 2024, Month: 6, Day: 1}),
			ForOutput(allocator, mysql.Field{Type: mysql.TypeLongLong, MaxLength: 20}),
		}
		CloseAll(binds)
	}
	assert.Equal(t, int64(0), allocator.InUse())
	assert.Equal(t, int64(0), allocator.BytesInUse())
	assert.Equal(t, allocator.Allocations(), allocator.Frees())
}
