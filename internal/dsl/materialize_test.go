package dsl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/litcol/internal/datatype"
	"github.com/roach88/litcol/internal/series"
)

func TestToSeriesRoundTrip(t *testing.T) {
	values := []LiteralValue{
		Null{},
		Boolean(true),
		Boolean(false),
		Utf8("hi"),
		Utf8(""),
		Int32(-5),
		UInt32(5),
		Int64(7),
		UInt64(1 << 63),
		Float64(3.25),
	}

	for _, v := range values {
		t.Run(v.DataType().String()+"/"+v.String(), func(t *testing.T) {
			s, err := v.ToSeries()
			require.NoError(t, err)

			assert.Equal(t, ColumnName, s.Name())
			assert.Equal(t, 1, s.Len())
			assert.Equal(t, v.DataType(), s.DataType())
			assert.Equal(t, v, ValueAt(s, 0))
		})
	}
}

func TestToSeriesColumnKinds(t *testing.T) {
	s, err := Null{}.ToSeries()
	require.NoError(t, err)
	_, ok := s.(*series.NullArray)
	assert.True(t, ok)
	assert.True(t, s.IsNull(0))

	s, err = Utf8("hi").ToSeries()
	require.NoError(t, err)
	text, ok := s.(*series.Utf8Array)
	require.True(t, ok)
	assert.Equal(t, "hi", text.Value(0))

	s, err = UInt32(9).ToSeries()
	require.NoError(t, err)
	u32, ok := s.(*series.UInt32Array)
	require.True(t, ok)
	assert.Equal(t, uint32(9), u32.Value(0))

	s, err = Float64(1.5).ToSeries()
	require.NoError(t, err)
	f64, ok := s.(*series.Float64Array)
	require.True(t, ok)
	assert.Equal(t, 1.5, f64.Value(0))
}

func TestBinaryMaterializationFails(t *testing.T) {
	s, err := NewBinary([]byte{1, 2}).ToSeries()

	require.Error(t, err)
	assert.Nil(t, s)
	assert.ErrorIs(t, err, ErrUnsupportedMaterialization)
	assert.Contains(t, err.Error(), "Binary")
}

func TestMustToSeries(t *testing.T) {
	s := MustToSeries(Int64(7))
	assert.Equal(t, datatype.Int64, s.DataType())

	assert.PanicsWithError(t, "materialization not supported: Binary literal of 1 bytes", func() {
		MustToSeries(NewBinary([]byte{0}))
	})
}

func TestValueAtNullSlot(t *testing.T) {
	assert.Equal(t, Null{}, ValueAt(series.FullNull("x", 2), 1))
}
