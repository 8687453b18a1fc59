package dsl

import (
	"encoding/hex"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/roach88/litcol/internal/datatype"
)

var (
	// ErrUnsupportedHostType is returned for host values outside the scalar set.
	ErrUnsupportedHostType = errors.New("unsupported host type")

	// ErrTypeMismatch is returned when a host value cannot represent the
	// requested logical type.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrOutOfRange is returned when a number does not fit the requested type.
	ErrOutOfRange = errors.New("value out of range")

	// ErrInvalidLiteral is returned when text does not parse as the requested type.
	ErrInvalidLiteral = errors.New("invalid literal")
)

// FromAny converts an untyped host value into the narrowest matching variant.
//
//   - nil becomes Null
//   - int8, int16, int32 become Int32; int, int64 become Int64
//   - uint8, uint16, uint32 become UInt32; uint, uint64 become UInt64
//   - float32, float64 become Float64
//   - []byte becomes Binary
//
// A LiteralValue is returned unchanged. Other kinds fail with
// ErrUnsupportedHostType.
func FromAny(v any) (LiteralValue, error) {
	switch x := v.(type) {
	case nil:
		return Null{}, nil
	case LiteralValue:
		return x, nil
	case bool:
		return Boolean(x), nil
	case string:
		return Utf8(x), nil
	case []byte:
		return NewBinary(x), nil
	case int8:
		return Int32(x), nil
	case int16:
		return Int32(x), nil
	case int32:
		return Int32(x), nil
	case int:
		return Int64(x), nil
	case int64:
		return Int64(x), nil
	case uint8:
		return UInt32(x), nil
	case uint16:
		return UInt32(x), nil
	case uint32:
		return UInt32(x), nil
	case uint:
		return UInt64(x), nil
	case uint64:
		return UInt64(x), nil
	case float32:
		return Float64(x), nil
	case float64:
		return Float64(x), nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedHostType, v)
	}
}

// Coerce converts a host value into the variant for dt. nil always yields
// Null. Numbers convert between numeric types when the value fits exactly;
// text converts to Binary. Anything else fails with ErrTypeMismatch.
func Coerce(dt datatype.DataType, v any) (LiteralValue, error) {
	src, err := FromAny(v)
	if err != nil {
		return nil, err
	}
	if _, ok := src.(Null); ok {
		return Null{}, nil
	}

	mismatch := fmt.Errorf("%w: cannot use %s value %q as %s", ErrTypeMismatch, src.DataType(), src.String(), dt)
	switch dt {
	case datatype.Null:
		return nil, mismatch
	case datatype.Boolean:
		if b, ok := src.(Boolean); ok {
			return b, nil
		}
		return nil, mismatch
	case datatype.Utf8:
		if s, ok := src.(Utf8); ok {
			return s, nil
		}
		return nil, mismatch
	case datatype.Binary:
		switch x := src.(type) {
		case Binary:
			return x, nil
		case Utf8:
			return NewBinary([]byte(x)), nil
		}
		return nil, mismatch
	case datatype.Int32, datatype.UInt32, datatype.Int64, datatype.UInt64:
		return coerceInteger(dt, src, mismatch)
	case datatype.Float64:
		switch x := src.(type) {
		case Int32:
			return Float64(x), nil
		case UInt32:
			return Float64(x), nil
		case Int64:
			return Float64(x), nil
		case UInt64:
			return Float64(x), nil
		case Float64:
			return x, nil
		}
		return nil, mismatch
	default:
		return nil, fmt.Errorf("%w: %s", datatype.ErrUnknownType, dt)
	}
}

// coerceInteger narrows or widens an integral number into dt. Floats are
// accepted only when they hold a whole number.
func coerceInteger(dt datatype.DataType, src LiteralValue, mismatch error) (LiteralValue, error) {
	// A value is carried either as a negative int64 or as a non-negative uint64.
	var (
		neg   int64
		pos   uint64
		isNeg bool
	)
	setSigned := func(i int64) {
		if i < 0 {
			neg, isNeg = i, true
			return
		}
		pos = uint64(i)
	}

	switch x := src.(type) {
	case Int32:
		setSigned(int64(x))
	case Int64:
		setSigned(int64(x))
	case UInt32:
		pos = uint64(x)
	case UInt64:
		pos = uint64(x)
	case Float64:
		f := float64(x)
		if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
			return nil, fmt.Errorf("%w: %s is not a whole number", ErrTypeMismatch, x)
		}
		if f < math.MinInt64 || f >= 1<<64 {
			return nil, fmt.Errorf("%w: %s does not fit %s", ErrOutOfRange, x, dt)
		}
		if f < 0 {
			setSigned(int64(f))
		} else {
			pos = uint64(f)
		}
	default:
		return nil, mismatch
	}

	outOfRange := func() error {
		if isNeg {
			return fmt.Errorf("%w: %d does not fit %s", ErrOutOfRange, neg, dt)
		}
		return fmt.Errorf("%w: %d does not fit %s", ErrOutOfRange, pos, dt)
	}

	switch dt {
	case datatype.Int32:
		if isNeg {
			if neg < math.MinInt32 {
				return nil, outOfRange()
			}
			return Int32(neg), nil
		}
		if pos > math.MaxInt32 {
			return nil, outOfRange()
		}
		return Int32(pos), nil
	case datatype.Int64:
		if isNeg {
			return Int64(neg), nil
		}
		if pos > math.MaxInt64 {
			return nil, outOfRange()
		}
		return Int64(pos), nil
	case datatype.UInt32:
		if isNeg || pos > math.MaxUint32 {
			return nil, outOfRange()
		}
		return UInt32(pos), nil
	case datatype.UInt64:
		if isNeg {
			return nil, outOfRange()
		}
		return UInt64(pos), nil
	}
	panic(fmt.Sprintf("dsl: coerceInteger called with %s", dt))
}

// Parse reads text as a value of type dt. Null accepts "" or "null"; Binary
// expects hex digits with an optional 0x prefix.
func Parse(dt datatype.DataType, text string) (LiteralValue, error) {
	invalid := func(err error) error {
		if errors.Is(err, strconv.ErrRange) {
			return fmt.Errorf("%w: %q as %s", ErrOutOfRange, text, dt)
		}
		return fmt.Errorf("%w: %q as %s: %v", ErrInvalidLiteral, text, dt, err)
	}

	switch dt {
	case datatype.Null:
		if text == "" || strings.EqualFold(text, "null") {
			return Null{}, nil
		}
		return nil, invalid(errors.New("expected null"))
	case datatype.Boolean:
		b, err := strconv.ParseBool(text)
		if err != nil {
			return nil, invalid(err)
		}
		return Boolean(b), nil
	case datatype.Utf8:
		return Utf8(text), nil
	case datatype.Binary:
		b, err := hex.DecodeString(strings.TrimPrefix(strings.TrimPrefix(text, "0x"), "0X"))
		if err != nil {
			return nil, invalid(err)
		}
		return NewBinary(b), nil
	case datatype.Int32:
		n, err := strconv.ParseInt(text, 10, 32)
		if err != nil {
			return nil, invalid(err)
		}
		return Int32(n), nil
	case datatype.UInt32:
		n, err := strconv.ParseUint(text, 10, 32)
		if err != nil {
			return nil, invalid(err)
		}
		return UInt32(n), nil
	case datatype.Int64:
		n, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return nil, invalid(err)
		}
		return Int64(n), nil
	case datatype.UInt64:
		n, err := strconv.ParseUint(text, 10, 64)
		if err != nil {
			return nil, invalid(err)
		}
		return UInt64(n), nil
	case datatype.Float64:
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, invalid(err)
		}
		return Float64(f), nil
	default:
		return nil, fmt.Errorf("%w: %s", datatype.ErrUnknownType, dt)
	}
}

// Infer picks a variant for untyped text: "null" is Null, "true" and
// "false" are Boolean, integers are Int64 (UInt64 above the Int64 range),
// finite decimals are Float64 and everything else is Utf8.
func Infer(text string) LiteralValue {
	switch text {
	case "null":
		return Null{}
	case "true":
		return Boolean(true)
	case "false":
		return Boolean(false)
	}
	if n, err := strconv.ParseInt(text, 10, 64); err == nil {
		return Int64(n)
	}
	if n, err := strconv.ParseUint(text, 10, 64); err == nil {
		return UInt64(n)
	}
	if f, err := strconv.ParseFloat(text, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
		return Float64(f)
	}
	return Utf8(text)
}
