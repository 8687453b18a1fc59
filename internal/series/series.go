// Package series provides the immutable, single-type columns produced when
// literal values are materialized.
//
// Series is a sealed interface. The concrete arrays are NullArray,
// BooleanArray, Utf8Array and DataArray[T] for the numeric kinds, so a type
// switch over Series can be written exhaustively.
//
// Every constructor copies its input. Nothing in this package mutates an
// array after construction, so a Series may be shared across goroutines.
package series

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/roach88/litcol/internal/datatype"
)

// Series is a named, fixed-length column of a single logical type.
type Series interface {
	fmt.Stringer

	Name() string
	Len() int
	DataType() datatype.DataType
	IsNull(i int) bool

	// Rename returns a copy of the series carrying a different name.
	Rename(name string) Series

	series() // Sealed - only arrays in this package implement it
}

// Numeric lists the element types backed by DataArray.
type Numeric interface {
	int32 | uint32 | int64 | uint64 | float64
}

// Int32Array and friends name the DataArray instantiations.
type (
	Int32Array   = DataArray[int32]
	UInt32Array  = DataArray[uint32]
	Int64Array   = DataArray[int64]
	UInt64Array  = DataArray[uint64]
	Float64Array = DataArray[float64]
)

// NullArray is a column of the Null type; every slot is null.
type NullArray struct {
	name string
	n    int
}

// FullNull returns a NullArray of length n.
func FullNull(name string, n int) *NullArray {
	if n < 0 {
		panic(fmt.Sprintf("series: negative length %d", n))
	}
	return &NullArray{name: name, n: n}
}

func (a *NullArray) series()                     {}
func (a *NullArray) Name() string                { return a.name }
func (a *NullArray) Len() int                    { return a.n }
func (a *NullArray) DataType() datatype.DataType { return datatype.Null }

func (a *NullArray) IsNull(i int) bool {
	checkIndex(i, a.n)
	return true
}

func (a *NullArray) Rename(name string) Series {
	return &NullArray{name: name, n: a.n}
}

func (a *NullArray) String() string {
	cells := make([]string, a.n)
	for i := range cells {
		cells[i] = "null"
	}
	return format(a, cells)
}

// BooleanArray holds bool values.
type BooleanArray struct {
	name   string
	values []bool
}

// NewBooleanArray copies values into a new BooleanArray.
func NewBooleanArray(name string, values []bool) *BooleanArray {
	return &BooleanArray{name: name, values: append([]bool(nil), values...)}
}

func (a *BooleanArray) series()                     {}
func (a *BooleanArray) Name() string                { return a.name }
func (a *BooleanArray) Len() int                    { return len(a.values) }
func (a *BooleanArray) DataType() datatype.DataType { return datatype.Boolean }

func (a *BooleanArray) IsNull(i int) bool {
	checkIndex(i, len(a.values))
	return false
}

// Value returns the element at i.
func (a *BooleanArray) Value(i int) bool {
	return a.values[i]
}

// Values returns a copy of the backing values.
func (a *BooleanArray) Values() []bool {
	return append([]bool(nil), a.values...)
}

func (a *BooleanArray) Rename(name string) Series {
	return &BooleanArray{name: name, values: a.values}
}

func (a *BooleanArray) String() string {
	cells := make([]string, len(a.values))
	for i, v := range a.values {
		cells[i] = strconv.FormatBool(v)
	}
	return format(a, cells)
}

// Utf8Array holds UTF-8 text values.
type Utf8Array struct {
	name   string
	values []string
}

// NewUtf8Array copies values into a new Utf8Array.
func NewUtf8Array(name string, values []string) *Utf8Array {
	return &Utf8Array{name: name, values: append([]string(nil), values...)}
}

func (a *Utf8Array) series()                     {}
func (a *Utf8Array) Name() string                { return a.name }
func (a *Utf8Array) Len() int                    { return len(a.values) }
func (a *Utf8Array) DataType() datatype.DataType { return datatype.Utf8 }

func (a *Utf8Array) IsNull(i int) bool {
	checkIndex(i, len(a.values))
	return false
}

// Value returns the element at i.
func (a *Utf8Array) Value(i int) string {
	return a.values[i]
}

// Values returns a copy of the backing values.
func (a *Utf8Array) Values() []string {
	return append([]string(nil), a.values...)
}

func (a *Utf8Array) Rename(name string) Series {
	return &Utf8Array{name: name, values: a.values}
}

func (a *Utf8Array) String() string {
	cells := make([]string, len(a.values))
	for i, v := range a.values {
		cells[i] = strconv.Quote(v)
	}
	return format(a, cells)
}

// DataArray holds fixed-width numeric values.
type DataArray[T Numeric] struct {
	name   string
	values []T
}

// NewDataArray copies values into a new DataArray.
func NewDataArray[T Numeric](name string, values []T) *DataArray[T] {
	return &DataArray[T]{name: name, values: append([]T(nil), values...)}
}

func (a *DataArray[T]) series()      {}
func (a *DataArray[T]) Name() string { return a.name }
func (a *DataArray[T]) Len() int     { return len(a.values) }

func (a *DataArray[T]) DataType() datatype.DataType {
	return numericType[T]()
}

func (a *DataArray[T]) IsNull(i int) bool {
	checkIndex(i, len(a.values))
	return false
}

// Value returns the element at i.
func (a *DataArray[T]) Value(i int) T {
	return a.values[i]
}

// Values returns a copy of the backing values.
func (a *DataArray[T]) Values() []T {
	return append([]T(nil), a.values...)
}

func (a *DataArray[T]) Rename(name string) Series {
	return &DataArray[T]{name: name, values: a.values}
}

func (a *DataArray[T]) String() string {
	cells := make([]string, len(a.values))
	for i, v := range a.values {
		if f, ok := any(v).(float64); ok {
			cells[i] = FormatFloat(f)
			continue
		}
		cells[i] = fmt.Sprint(v)
	}
	return format(a, cells)
}

// FormatFloat renders f in the shortest decimal form that round-trips,
// never with an exponent. Infinities render as "inf" and "-inf".
func FormatFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func numericType[T Numeric]() datatype.DataType {
	var zero T
	switch any(zero).(type) {
	case int32:
		return datatype.Int32
	case uint32:
		return datatype.UInt32
	case int64:
		return datatype.Int64
	case uint64:
		return datatype.UInt64
	case float64:
		return datatype.Float64
	}
	panic(fmt.Sprintf("series: unreachable numeric type %T", zero))
}

// format renders a series as `name (Type, len=N): [a, b]`.
func format(s Series, cells []string) string {
	return fmt.Sprintf("%s (%s, len=%d): [%s]", s.Name(), s.DataType(), s.Len(), strings.Join(cells, ", "))
}

func checkIndex(i, n int) {
	if i < 0 || i >= n {
		panic(fmt.Sprintf("series: index %d out of range [0:%d]", i, n))
	}
}
