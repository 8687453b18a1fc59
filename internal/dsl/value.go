package dsl

import (
	"fmt"
	"strconv"

	"github.com/roach88/litcol/internal/datatype"
	"github.com/roach88/litcol/internal/series"
)

// LiteralValue is one scalar from the closed set of supported logical types.
// Only the variants in this package implement it.
type LiteralValue interface {
	// String renders the value as text: "Null", "true"/"false", the raw
	// string for Utf8, "Binary[<len>]" for Binary and decimal text for
	// numbers.
	fmt.Stringer

	// DataType returns the logical type of the value.
	DataType() datatype.DataType

	// ToSeries materializes the value as a one-row column named ColumnName.
	ToSeries() (series.Series, error)

	Literalizer

	literalValue() // Sealed
}

// Null is the absence of a value. It is not zero and not empty.
type Null struct{}

// Boolean is a true or false value.
type Boolean bool

// Utf8 is UTF-8 encoded text.
type Utf8 string

// Binary is an arbitrary byte sequence. The zero value is empty.
type Binary struct {
	data string
}

// Int32 is a 32-bit signed integer.
type Int32 int32

// UInt32 is a 32-bit unsigned integer.
type UInt32 uint32

// Int64 is a 64-bit signed integer.
type Int64 int64

// UInt64 is a 64-bit unsigned integer.
type UInt64 uint64

// Float64 is a 64-bit floating point number. NaN and infinities are allowed.
type Float64 float64

// NewBinary copies b into a Binary value.
func NewBinary(b []byte) Binary {
	return Binary{data: string(b)}
}

// Bytes returns a copy of the value's bytes.
func (v Binary) Bytes() []byte {
	return []byte(v.data)
}

// Len returns the number of bytes held.
func (v Binary) Len() int {
	return len(v.data)
}

func (Null) literalValue()    {}
func (Boolean) literalValue() {}
func (Utf8) literalValue()    {}
func (Binary) literalValue()  {}
func (Int32) literalValue()   {}
func (UInt32) literalValue()  {}
func (Int64) literalValue()   {}
func (UInt64) literalValue()  {}
func (Float64) literalValue() {}

func (Null) String() string      { return "Null" }
func (v Boolean) String() string { return strconv.FormatBool(bool(v)) }
func (v Utf8) String() string    { return string(v) }
func (v Binary) String() string  { return fmt.Sprintf("Binary[%d]", len(v.data)) }
func (v Int32) String() string   { return strconv.FormatInt(int64(v), 10) }
func (v UInt32) String() string  { return strconv.FormatUint(uint64(v), 10) }
func (v Int64) String() string   { return strconv.FormatInt(int64(v), 10) }
func (v UInt64) String() string  { return strconv.FormatUint(uint64(v), 10) }

// String uses the shortest decimal form that round-trips, without an
// exponent: 1 renders as "1", 0.1 as "0.1". Infinities render as "inf" and
// "-inf", NaN as "NaN".
func (v Float64) String() string { return series.FormatFloat(float64(v)) }

func (Null) DataType() datatype.DataType    { return datatype.Null }
func (Boolean) DataType() datatype.DataType { return datatype.Boolean }
func (Utf8) DataType() datatype.DataType    { return datatype.Utf8 }
func (Binary) DataType() datatype.DataType  { return datatype.Binary }
func (Int32) DataType() datatype.DataType   { return datatype.Int32 }
func (UInt32) DataType() datatype.DataType  { return datatype.UInt32 }
func (Int64) DataType() datatype.DataType   { return datatype.Int64 }
func (UInt64) DataType() datatype.DataType  { return datatype.UInt64 }
func (Float64) DataType() datatype.DataType { return datatype.Float64 }

// unreachable reports a LiteralValue that is none of the known variants.
// Only a nil interface can get here.
func unreachable(v LiteralValue) string {
	return fmt.Sprintf("dsl: unreachable literal variant %T", v)
}
