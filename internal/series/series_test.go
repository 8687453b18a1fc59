package series

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/litcol/internal/datatype"
)

func TestSeriesSealed(t *testing.T) {
	var _ Series = &NullArray{}
	var _ Series = &BooleanArray{}
	var _ Series = &Utf8Array{}
	var _ Series = &Int32Array{}
	var _ Series = &UInt32Array{}
	var _ Series = &Int64Array{}
	var _ Series = &UInt64Array{}
	var _ Series = &Float64Array{}
}

func TestFullNull(t *testing.T) {
	s := FullNull("lit", 3)

	assert.Equal(t, "lit", s.Name())
	assert.Equal(t, 3, s.Len())
	assert.Equal(t, datatype.Null, s.DataType())
	for i := 0; i < s.Len(); i++ {
		assert.True(t, s.IsNull(i))
	}
	assert.Equal(t, "lit (Null, len=3): [null, null, null]", s.String())
}

func TestFullNullNegativeLengthPanics(t *testing.T) {
	assert.Panics(t, func() { FullNull("lit", -1) })
}

func TestBooleanArray(t *testing.T) {
	s := NewBooleanArray("flags", []bool{true, false})

	assert.Equal(t, datatype.Boolean, s.DataType())
	assert.Equal(t, 2, s.Len())
	assert.True(t, s.Value(0))
	assert.False(t, s.Value(1))
	assert.False(t, s.IsNull(1))
	assert.Equal(t, "flags (Boolean, len=2): [true, false]", s.String())
}

func TestUtf8Array(t *testing.T) {
	s := NewUtf8Array("lit", []string{"hi", ""})

	assert.Equal(t, datatype.Utf8, s.DataType())
	assert.Equal(t, "hi", s.Value(0))
	assert.Equal(t, "", s.Value(1))
	assert.Equal(t, `lit (Utf8, len=2): ["hi", ""]`, s.String())
}

func TestDataArrayTypes(t *testing.T) {
	cases := []struct {
		s    Series
		want datatype.DataType
	}{
		{NewDataArray("a", []int32{1}), datatype.Int32},
		{NewDataArray("a", []uint32{1}), datatype.UInt32},
		{NewDataArray("a", []int64{1}), datatype.Int64},
		{NewDataArray("a", []uint64{1}), datatype.UInt64},
		{NewDataArray("a", []float64{1}), datatype.Float64},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.s.DataType())
		assert.Equal(t, 1, tc.s.Len())
	}
}

func TestDataArrayValueAndString(t *testing.T) {
	s := NewDataArray("n", []int64{7, -3})
	assert.Equal(t, int64(7), s.Value(0))
	assert.Equal(t, int64(-3), s.Value(1))
	assert.Equal(t, "n (Int64, len=2): [7, -3]", s.String())

	f := NewDataArray("f", []float64{1.5})
	assert.Equal(t, "f (Float64, len=1): [1.5]", f.String())
}

func TestFloat64ArrayCellsAvoidExponent(t *testing.T) {
	f := NewDataArray("f", []float64{1e21, 1e-7, math.Inf(1), math.Inf(-1), math.NaN()})
	assert.Equal(t,
		"f (Float64, len=5): [1000000000000000000000, 0.0000001, inf, -inf, NaN]",
		f.String())
}

func TestFormatFloat(t *testing.T) {
	cases := map[float64]string{
		1:            "1",
		0.1:          "0.1",
		-2.5:         "-2.5",
		1e21:         "1000000000000000000000",
		math.Inf(1):  "inf",
		math.Inf(-1): "-inf",
	}
	for in, want := range cases {
		assert.Equal(t, want, FormatFloat(in))
	}
}

func TestConstructorsCopyInput(t *testing.T) {
	in := []int64{1, 2}
	s := NewDataArray("n", in)
	in[0] = 99
	assert.Equal(t, int64(1), s.Value(0))

	out := s.Values()
	out[1] = 99
	assert.Equal(t, int64(2), s.Value(1))

	texts := []string{"a"}
	u := NewUtf8Array("u", texts)
	texts[0] = "b"
	assert.Equal(t, "a", u.Value(0))

	flags := []bool{true}
	b := NewBooleanArray("b", flags)
	flags[0] = false
	assert.True(t, b.Value(0))
}

func TestRename(t *testing.T) {
	original := NewUtf8Array("lit", []string{"x"})
	renamed := original.Rename("label")

	assert.Equal(t, "label", renamed.Name())
	assert.Equal(t, "lit", original.Name())

	u, ok := renamed.(*Utf8Array)
	require.True(t, ok)
	assert.Equal(t, "x", u.Value(0))

	assert.Equal(t, "other", FullNull("lit", 1).Rename("other").Name())
	assert.Equal(t, "other", NewBooleanArray("lit", []bool{true}).Rename("other").Name())
	assert.Equal(t, "other", NewDataArray("lit", []uint32{1}).Rename("other").Name())
}

func TestIsNullOutOfRangePanics(t *testing.T) {
	assert.Panics(t, func() { FullNull("lit", 1).IsNull(1) })
	assert.Panics(t, func() { NewDataArray("lit", []int32{1}).IsNull(-1) })
}
