package mysql

import (
	"encoding/binary"
	"time"
)

// TimeEncodedLength is the fixed size of the temporal wire record: little
// endian year followed by month, day, hour, minute and second bytes.
const TimeEncodedLength = 7

// Time is the calendar record temporal values take on the binary protocol.
// Components are calendar fields of a wall clock reading, not an offset from
// an epoch.
type Time struct {
	Year   uint16
	Month  uint8
	Day    uint8
	Hour   uint8
	Minute uint8
	Second uint8
}

// NewTime split t into calendar components in loc, nil loc means UTC.
// Sub-second precision is truncated. The zero time carries no components and
// yields the all-zero record.
func NewTime(t time.Time, loc *time.Location) Time {
	if t.IsZero() {
		return Time{}
	}
	if loc == nil {
		loc = time.UTC
	}
	t = t.In(loc)
	return Time{
		Year:   uint16(t.Year()),
		Month:  uint8(t.Month()),
		Day:    uint8(t.Day()),
		Hour:   uint8(t.Hour()),
		Minute: uint8(t.Minute()),
		Second: uint8(t.Second()),
	}
}

// Encode return the 7 byte wire record
func (t Time) Encode() []byte {
	record := make([]byte, TimeEncodedLength)
	binary.LittleEndian.PutUint16(record[0:2], t.Year)
	record[2] = t.Month
	record[3] = t.Day
	record[4] = t.Hour
	record[5] = t.Minute
	record[6] = t.Second
	return record
}
