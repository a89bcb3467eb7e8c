package value

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestJSONEncodeScalars(t *testing.T) {
	type testcase struct {
		input    Value
		expected string
	}

	testcases := []testcase{
		{Null(), `null`},
		{Int(-42), `-42`},
		{Uint(42), `42`},
		{Float(1.5), `1.5`},
		{Text("hi"), `"hi"`},
		{Bytes([]byte("hi")), `"aGk="`},
		{Bool(true), `true`},
		{Time(time.Date(2024, time.January, 2, 3, 4, 5, 0, time.UTC)), `"2024-01-02T03:04:05Z"`},
	}

	encoder := JSONEncoder{}
	for _, testcase := range testcases {
		encoded, err := encoder.Encode(testcase.input)
		if err != nil {
			t.Fatal(err)
		}
		assert.Equal(t, testcase.expected, string(encoded))
	}
}

func TestJSONEncodeStructured(t *testing.T) {
	encoder := JSONEncoder{}

	encoded, err := encoder.Encode(Array(Int(1), Text("x"), Null()))
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, `[1,"x",null]`, string(encoded))

	encoded, err = encoder.Encode(Map(map[string]Value{
		"b": Int(2),
		"a": Array(Bool(false)),
	}))
	if err != nil {
		t.Fatal(err)
	}
	// encoding/json emits object keys sorted
	assert.Equal(t, `{"a":[false],"b":2}`, string(encoded))
}

func TestJSONEncodeRejectsNaN(t *testing.T) {
	encoder := JSONEncoder{}
	_, err := encoder.Encode(Float(math.NaN()))
	if err == nil {
		t.Fatal("expected encoding error for NaN")
	}
	_, err = encoder.Encode(Array(Int(1), Float(math.Inf(1))))
	if err == nil {
		t.Fatal("expected encoding error for +Inf inside array")
	}
}
