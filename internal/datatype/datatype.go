// Package datatype defines the logical type tags shared by literal values
// and columns.
//
// The set is closed. Every consumer switches over it exhaustively, so adding
// a type means visiting each switch that mentions DataType.
package datatype

import (
	"errors"
	"fmt"
	"strings"
)

// DataType is the engine-wide logical type tag.
type DataType uint8

const (
	// Unknown is the zero value and never describes a real value or column.
	Unknown DataType = iota
	Null
	Boolean
	Utf8
	Binary
	Int32
	UInt32
	Int64
	UInt64
	Float64
)

// ErrUnknownType is returned when a type name does not match any DataType.
var ErrUnknownType = errors.New("unknown data type")

var names = [...]string{
	Unknown: "Unknown",
	Null:    "Null",
	Boolean: "Boolean",
	Utf8:    "Utf8",
	Binary:  "Binary",
	Int32:   "Int32",
	UInt32:  "UInt32",
	Int64:   "Int64",
	UInt64:  "UInt64",
	Float64: "Float64",
}

// aliases maps lower-cased spellings accepted by Parse.
var aliases = map[string]DataType{
	"null":    Null,
	"boolean": Boolean,
	"bool":    Boolean,
	"utf8":    Utf8,
	"string":  Utf8,
	"str":     Utf8,
	"text":    Utf8,
	"binary":  Binary,
	"bytes":   Binary,
	"int32":   Int32,
	"i32":     Int32,
	"uint32":  UInt32,
	"u32":     UInt32,
	"int64":   Int64,
	"i64":     Int64,
	"uint64":  UInt64,
	"u64":     UInt64,
	"float64": Float64,
	"f64":     Float64,
	"float":   Float64,
	"double":  Float64,
}

// All returns every valid DataType in declaration order.
func All() []DataType {
	return []DataType{Null, Boolean, Utf8, Binary, Int32, UInt32, Int64, UInt64, Float64}
}

func (t DataType) String() string {
	if int(t) < len(names) {
		return names[t]
	}
	return fmt.Sprintf("DataType(%d)", uint8(t))
}

// Valid reports whether t is one of the declared types other than Unknown.
func (t DataType) Valid() bool {
	return t > Unknown && t <= Float64
}

// IsInteger reports whether t is a fixed-width integer type.
func (t DataType) IsInteger() bool {
	switch t {
	case Int32, UInt32, Int64, UInt64:
		return true
	}
	return false
}

// IsNumeric reports whether t is an integer or floating point type.
func (t DataType) IsNumeric() bool {
	return t.IsInteger() || t == Float64
}

// Parse resolves a type name. Matching is case-insensitive and accepts the
// short aliases used on the command line ("i64", "bool", "string", ...).
func Parse(name string) (DataType, error) {
	if t, ok := aliases[strings.ToLower(strings.TrimSpace(name))]; ok {
		return t, nil
	}
	return Unknown, fmt.Errorf("%w: %q", ErrUnknownType, name)
}

// MarshalText implements encoding.TextMarshaler.
func (t DataType) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownType, uint8(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *DataType) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
