package dsl

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/litcol/internal/datatype"
)

func TestLiteralValueSealed(t *testing.T) {
	var _ LiteralValue = Null{}
	var _ LiteralValue = Boolean(true)
	var _ LiteralValue = Utf8("x")
	var _ LiteralValue = NewBinary([]byte{1})
	var _ LiteralValue = Int32(1)
	var _ LiteralValue = UInt32(1)
	var _ LiteralValue = Int64(1)
	var _ LiteralValue = UInt64(1)
	var _ LiteralValue = Float64(1)
}

func TestLiteralValueString(t *testing.T) {
	cases := []struct {
		name string
		v    LiteralValue
		want string
	}{
		{"null", Null{}, "Null"},
		{"true", Boolean(true), "true"},
		{"false", Boolean(false), "false"},
		{"utf8", Utf8("hi"), "hi"},
		{"utf8 verbatim", Utf8(`say "hi"`), `say "hi"`},
		{"utf8 empty", Utf8(""), ""},
		{"binary", NewBinary([]byte{0xde, 0xad, 0xbe, 0xef}), "Binary[4]"},
		{"binary empty", NewBinary(nil), "Binary[0]"},
		{"int32", Int32(-12), "-12"},
		{"uint32", UInt32(math.MaxUint32), "4294967295"},
		{"int64", Int64(7), "7"},
		{"int64 min", Int64(math.MinInt64), "-9223372036854775808"},
		{"uint64 max", UInt64(math.MaxUint64), "18446744073709551615"},
		{"float whole", Float64(1), "1"},
		{"float fraction", Float64(0.1), "0.1"},
		{"float negative", Float64(-2.5), "-2.5"},
		{"float large", Float64(1e21), "1000000000000000000000"},
		{"float nan", Float64(math.NaN()), "NaN"},
		{"float inf", Float64(math.Inf(1)), "inf"},
		{"float negative inf", Float64(math.Inf(-1)), "-inf"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.v.String())
			// Rendering is pure.
			assert.Equal(t, tc.v.String(), tc.v.String())
		})
	}
}

func TestLiteralValueDataType(t *testing.T) {
	cases := map[datatype.DataType]LiteralValue{
		datatype.Null:    Null{},
		datatype.Boolean: Boolean(false),
		datatype.Utf8:    Utf8(""),
		datatype.Binary:  NewBinary(nil),
		datatype.Int32:   Int32(0),
		datatype.UInt32:  UInt32(0),
		datatype.Int64:   Int64(0),
		datatype.UInt64:  UInt64(0),
		datatype.Float64: Float64(0),
	}
	assert.Len(t, cases, len(datatype.All()))
	for want, v := range cases {
		assert.Equal(t, want, v.DataType())
	}
}

func TestStructuralEquality(t *testing.T) {
	assert.True(t, LiteralValue(Int64(7)) == LiteralValue(Int64(7)))
	assert.False(t, LiteralValue(Int64(7)) == LiteralValue(Int32(7)))
	assert.True(t, LiteralValue(Null{}) == LiteralValue(Null{}))
	assert.True(t, LiteralValue(NewBinary([]byte("ab"))) == LiteralValue(NewBinary([]byte("ab"))))
	assert.Equal(t, Utf8("hi"), Utf8("hi"))
}

func TestBinaryOwnsItsBytes(t *testing.T) {
	in := []byte{1, 2, 3}
	b := NewBinary(in)
	in[0] = 9

	out := b.Bytes()
	assert.Equal(t, []byte{1, 2, 3}, out)

	out[1] = 9
	assert.Equal(t, []byte{1, 2, 3}, b.Bytes())
	assert.Equal(t, 3, b.Len())
}
