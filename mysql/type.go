// Package mysql holds the binary protocol vocabulary used by bindings: field
// types, column definition flags and the temporal wire record.
package mysql

import "fmt"

// Type used for defining MySQL types
type Type byte

// Binary ColumnTypes https://dev.mysql.com/doc/dev/mysql-server/latest/namespaceclassic__protocol_1_1field__type.html
const (
	TypeDecimal Type = iota
	TypeTiny
	TypeShort
	TypeLong
	TypeFloat
	TypeDouble
	TypeNull
	TypeTimestamp
	TypeLongLong
	TypeInt24
	TypeDate
	TypeTime
	TypeDatetime
	TypeYear
	TypeNewDate
	TypeVarchar
	TypeBit
)

// MySQL types
const (
	TypeNewDecimal Type = iota + 0xf6
	TypeEnum
	TypeSet
	TypeTinyBlob
	TypeMediumBlob
	TypeLongBlob
	TypeBlob
	TypeVarString
	TypeString
	TypeGeometry
)

var typeNames = map[Type]string{
	TypeDecimal:    "decimal",
	TypeTiny:       "tiny",
	TypeShort:      "short",
	TypeLong:       "long",
	TypeFloat:      "float",
	TypeDouble:     "double",
	TypeNull:       "null",
	TypeTimestamp:  "timestamp",
	TypeLongLong:   "longlong",
	TypeInt24:      "int24",
	TypeDate:       "date",
	TypeTime:       "time",
	TypeDatetime:   "datetime",
	TypeYear:       "year",
	TypeNewDate:    "newdate",
	TypeVarchar:    "varchar",
	TypeBit:        "bit",
	TypeNewDecimal: "newdecimal",
	TypeEnum:       "enum",
	TypeSet:        "set",
	TypeTinyBlob:   "tinyblob",
	TypeMediumBlob: "mediumblob",
	TypeLongBlob:   "longblob",
	TypeBlob:       "blob",
	TypeVarString:  "varstring",
	TypeString:     "string",
	TypeGeometry:   "geometry",
}

// String return protocol name of the type for logs and metric labels
func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("unknown(0x%02x)", byte(t))
}

// IsBinaryType true if field type is binary
func (t Type) IsBinaryType() bool {
	isBlob := t >= TypeTinyBlob && t <= TypeBlob
	isString := t == TypeVarString || t == TypeString
	return isString || isBlob || t == TypeVarchar
}

// IsTemporalType true if values of the type travel as the calendar wire record
func (t Type) IsTemporalType() bool {
	return t == TypeDate || t == TypeTime || t == TypeDatetime || t == TypeTimestamp
}
