package dsl

import (
	"bytes"
	"encoding/json"
	"fmt"
	"unicode/utf8"

	"github.com/roach88/litcol/internal/datatype"
)

// literalJSON is the wire shape of a literal: {"type":"Int64","value":7}.
// Null carries no value. Binary values are base64 strings.
type literalJSON struct {
	Type  datatype.DataType `json:"type"`
	Value json.RawMessage   `json:"value,omitempty"`
}

// MarshalLiteral encodes v as tagged JSON. NaN and infinite floats cannot be
// represented and return an error. Utf8 text that is not valid UTF-8 is
// rejected with ErrInvalidLiteral rather than rewritten.
func MarshalLiteral(v LiteralValue) ([]byte, error) {
	if v == nil {
		return nil, fmt.Errorf("marshal literal: nil value")
	}

	var payload any
	switch x := v.(type) {
	case Null:
		payload = nil
	case Boolean:
		payload = bool(x)
	case Utf8:
		if !utf8.ValidString(string(x)) {
			return nil, fmt.Errorf("%w: Utf8 text %q is not valid UTF-8", ErrInvalidLiteral, string(x))
		}
		payload = string(x)
	case Binary:
		payload = x.Bytes()
	case Int32:
		payload = int32(x)
	case UInt32:
		payload = uint32(x)
	case Int64:
		payload = int64(x)
	case UInt64:
		payload = uint64(x)
	case Float64:
		payload = float64(x)
	default:
		panic(unreachable(v))
	}

	out := literalJSON{Type: v.DataType()}
	if payload != nil {
		raw, err := marshalNoEscape(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal %s literal: %w", v.DataType(), err)
		}
		out.Value = raw
	}
	return marshalNoEscape(out)
}

// UnmarshalLiteral decodes JSON produced by MarshalLiteral. Numbers must fit
// the tagged type exactly.
func UnmarshalLiteral(data []byte) (LiteralValue, error) {
	var in literalJSON
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&in); err != nil {
		return nil, fmt.Errorf("unmarshal literal: %w", err)
	}

	hasValue := len(in.Value) > 0 && !bytes.Equal(in.Value, []byte("null"))
	if in.Type == datatype.Null {
		if hasValue {
			return nil, fmt.Errorf("unmarshal literal: Null literal carries a value")
		}
		return Null{}, nil
	}
	if !hasValue {
		return nil, fmt.Errorf("unmarshal literal: %s literal has no value", in.Type)
	}

	v, err := decodePayload(in.Type, in.Value)
	if err != nil {
		return nil, fmt.Errorf("unmarshal %s literal: %w", in.Type, err)
	}
	return v, nil
}

func decodePayload(dt datatype.DataType, raw json.RawMessage) (LiteralValue, error) {
	switch dt {
	case datatype.Boolean:
		var b bool
		err := json.Unmarshal(raw, &b)
		return Boolean(b), err
	case datatype.Utf8:
		var s string
		err := json.Unmarshal(raw, &s)
		return Utf8(s), err
	case datatype.Binary:
		var b []byte
		err := json.Unmarshal(raw, &b)
		return NewBinary(b), err
	case datatype.Int32:
		var n int32
		err := json.Unmarshal(raw, &n)
		return Int32(n), err
	case datatype.UInt32:
		var n uint32
		err := json.Unmarshal(raw, &n)
		return UInt32(n), err
	case datatype.Int64:
		var n int64
		err := json.Unmarshal(raw, &n)
		return Int64(n), err
	case datatype.UInt64:
		var n uint64
		err := json.Unmarshal(raw, &n)
		return UInt64(n), err
	case datatype.Float64:
		var f float64
		err := json.Unmarshal(raw, &f)
		return Float64(f), err
	default:
		return nil, fmt.Errorf("%w: %s", datatype.ErrUnknownType, dt)
	}
}

// MarshalJSON encodes the literal's value with MarshalLiteral.
func (l *Literal) MarshalJSON() ([]byte, error) {
	return MarshalLiteral(l.Value)
}

// UnmarshalJSON decodes a value written by MarshalJSON.
func (l *Literal) UnmarshalJSON(data []byte) error {
	v, err := UnmarshalLiteral(data)
	if err != nil {
		return err
	}
	l.Value = v
	return nil
}

// marshalNoEscape encodes v without HTML escaping and without the trailing
// newline json.Encoder appends.
func marshalNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
