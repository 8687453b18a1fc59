package dsl

import (
	"errors"
	"fmt"

	"github.com/roach88/litcol/internal/datatype"
	"github.com/roach88/litcol/internal/series"
)

// ColumnName names every column produced by materializing a literal.
const ColumnName = "lit"

// ErrUnsupportedMaterialization is returned by ToSeries for variants that have
// no column representation. Binary is the only such variant.
var ErrUnsupportedMaterialization = errors.New("materialization not supported")

func (Null) ToSeries() (series.Series, error) {
	return series.FullNull(ColumnName, 1), nil
}

func (v Boolean) ToSeries() (series.Series, error) {
	return series.NewBooleanArray(ColumnName, []bool{bool(v)}), nil
}

func (v Utf8) ToSeries() (series.Series, error) {
	return series.NewUtf8Array(ColumnName, []string{string(v)}), nil
}

// ToSeries always fails: there is no binary column kind.
func (v Binary) ToSeries() (series.Series, error) {
	return nil, fmt.Errorf("%w: %s literal of %d bytes", ErrUnsupportedMaterialization, datatype.Binary, len(v.data))
}

func (v Int32) ToSeries() (series.Series, error) {
	return series.NewDataArray(ColumnName, []int32{int32(v)}), nil
}

func (v UInt32) ToSeries() (series.Series, error) {
	return series.NewDataArray(ColumnName, []uint32{uint32(v)}), nil
}

func (v Int64) ToSeries() (series.Series, error) {
	return series.NewDataArray(ColumnName, []int64{int64(v)}), nil
}

func (v UInt64) ToSeries() (series.Series, error) {
	return series.NewDataArray(ColumnName, []uint64{uint64(v)}), nil
}

func (v Float64) ToSeries() (series.Series, error) {
	return series.NewDataArray(ColumnName, []float64{float64(v)}), nil
}

// MustToSeries materializes v and panics if the variant is unsupported.
func MustToSeries(v LiteralValue) series.Series {
	s, err := v.ToSeries()
	if err != nil {
		panic(err)
	}
	return s
}

// ValueAt reads element i of a column produced by ToSeries back into a
// LiteralValue. A null slot reads as Null.
func ValueAt(s series.Series, i int) LiteralValue {
	if s.IsNull(i) {
		return Null{}
	}
	switch col := s.(type) {
	case *series.NullArray:
		return Null{}
	case *series.BooleanArray:
		return Boolean(col.Value(i))
	case *series.Utf8Array:
		return Utf8(col.Value(i))
	case *series.Int32Array:
		return Int32(col.Value(i))
	case *series.UInt32Array:
		return UInt32(col.Value(i))
	case *series.Int64Array:
		return Int64(col.Value(i))
	case *series.UInt64Array:
		return UInt64(col.Value(i))
	case *series.Float64Array:
		return Float64(col.Value(i))
	default:
		panic(fmt.Sprintf("dsl: unreachable series kind %T", s))
	}
}
