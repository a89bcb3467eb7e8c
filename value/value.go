// Package value models the closed set of host values accepted as statement
// parameters. A Value is immutable once constructed and carries exactly one
// variant, scalar variants bind directly while arrays and maps are serialized
// by an Encoder before binding.
package value

import (
	"fmt"
	"math"
	"time"
)

// Kind identifies which variant a Value holds
type Kind uint8

// The closed set of bindable variants
const (
	KindNull Kind = iota
	KindInt
	KindUint
	KindFloat
	KindText
	KindBytes
	KindBool
	KindTime
	KindArray
	KindMap
)

var kindNames = [...]string{
	KindNull:  "null",
	KindInt:   "int",
	KindUint:  "uint",
	KindFloat: "float",
	KindText:  "text",
	KindBytes: "bytes",
	KindBool:  "bool",
	KindTime:  "time",
	KindArray: "array",
	KindMap:   "map",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "invalid"
}

// Value is one host value. The zero Value is null.
type Value struct {
	kind  Kind
	num   uint64
	str   string
	bytes []byte
	time  time.Time
	array []Value
	dict  map[string]Value
}

// Null return the null value
func Null() Value {
	return Value{kind: KindNull}
}

// Int return a signed integer value
func Int(v int64) Value {
	return Value{kind: KindInt, num: uint64(v)}
}

// Uint return an unsigned integer value
func Uint(v uint64) Value {
	return Value{kind: KindUint, num: v}
}

// Float return a double precision value
func Float(v float64) Value {
	return Value{kind: KindFloat, num: math.Float64bits(v)}
}

// Text return a UTF-8 string value
func Text(v string) Value {
	return Value{kind: KindText, str: v}
}

// Bytes return an opaque byte sequence value. An empty sequence is a present
// value, distinct from null.
func Bytes(v []byte) Value {
	return Value{kind: KindBytes, bytes: v}
}

// Bool return a boolean value
func Bool(v bool) Value {
	value := Value{kind: KindBool}
	if v {
		value.num = 1
	}
	return value
}

// Time return a temporal value
func Time(v time.Time) Value {
	return Value{kind: KindTime, time: v}
}

// Array return an ordered sequence of values
func Array(items ...Value) Value {
	return Value{kind: KindArray, array: items}
}

// Map return a string keyed collection of values
func Map(entries map[string]Value) Value {
	return Value{kind: KindMap, dict: entries}
}

// Kind return the variant the value holds
func (v Value) Kind() Kind {
	return v.kind
}

// Int return the signed integer payload, panics for other variants
func (v Value) Int() int64 {
	v.mustBe(KindInt)
	return int64(v.num)
}

// Uint return the unsigned integer payload, panics for other variants
func (v Value) Uint() uint64 {
	v.mustBe(KindUint)
	return v.num
}

// Float return the floating point payload, panics for other variants
func (v Value) Float() float64 {
	v.mustBe(KindFloat)
	return math.Float64frombits(v.num)
}

// Text return the string payload, panics for other variants
func (v Value) Text() string {
	v.mustBe(KindText)
	return v.str
}

// Bytes return the byte sequence payload, panics for other variants
func (v Value) Bytes() []byte {
	v.mustBe(KindBytes)
	return v.bytes
}

// Bool return the boolean payload, panics for other variants
func (v Value) Bool() bool {
	v.mustBe(KindBool)
	return v.num != 0
}

// Time return the temporal payload, panics for other variants
func (v Value) Time() time.Time {
	v.mustBe(KindTime)
	return v.time
}

// Array return the sequence payload, panics for other variants
func (v Value) Array() []Value {
	v.mustBe(KindArray)
	return v.array
}

// Map return the collection payload, panics for other variants
func (v Value) Map() map[string]Value {
	v.mustBe(KindMap)
	return v.dict
}

func (v Value) mustBe(kind Kind) {
	if v.kind != kind {
		panic(fmt.Sprintf("%s value accessed as %s", v.kind, kind))
	}
}

// native return the payload as plain Go data for serialization
func (v Value) native() interface{} {
	switch v.kind {
	case KindNull:
		return nil
	case KindInt:
		return int64(v.num)
	case KindUint:
		return v.num
	case KindFloat:
		return math.Float64frombits(v.num)
	case KindText:
		return v.str
	case KindBytes:
		return v.bytes
	case KindBool:
		return v.num != 0
	case KindTime:
		return v.time
	case KindArray:
		items := make([]interface{}, len(v.array))
		for i, item := range v.array {
			items[i] = item.native()
		}
		return items
	case KindMap:
		entries := make(map[string]interface{}, len(v.dict))
		for key, item := range v.dict {
			entries[key] = item.native()
		}
		return entries
	default:
		panic(fmt.Sprintf("unhandled value kind %v", v.kind))
	}
}
