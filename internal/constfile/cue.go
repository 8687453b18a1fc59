package constfile

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/token"
)

func parseCUE(path string, data []byte) ([]entry, error) {
	ctx := cuecontext.New()
	root := ctx.CompileBytes(data, cue.Filename(path))
	if err := root.Err(); err != nil {
		return nil, &LoadError{
			Code:    ErrCodeParse,
			Message: fmt.Sprintf("building CUE value: %v", err),
			Path:    path,
			Err:     err,
		}
	}

	consts := root.LookupPath(cue.ParsePath("constants"))
	if !consts.Exists() {
		return nil, &LoadError{Code: ErrCodeInvalid, Message: "missing top-level constants struct", Path: path}
	}
	if consts.Kind() != cue.StructKind {
		return nil, cueFail(path, consts.Pos(), ErrCodeInvalid, "constants must be a struct", nil)
	}

	iter, err := consts.Fields()
	if err != nil {
		return nil, cueFail(path, consts.Pos(), ErrCodeInvalid, fmt.Sprintf("iterating constants: %v", err), err)
	}

	var entries []entry
	for iter.Next() {
		name := iter.Label()
		field := iter.Value()
		pos := field.Pos()

		e := entry{name: name}
		if pos.IsValid() {
			e.line, e.column = pos.Line(), pos.Column()
		}

		valueField := field
		if field.Kind() == cue.StructKind {
			typeVal := field.LookupPath(cue.ParsePath("type"))
			if typeVal.Exists() {
				typeName, err := typeVal.String()
				if err != nil {
					return nil, e.fail(path, ErrCodeInvalid, fmt.Sprintf("constant %q: type must be a string", name), err)
				}
				e.typeName = typeName
			}
			valueField = field.LookupPath(cue.ParsePath("value"))
			if !valueField.Exists() {
				return nil, e.fail(path, ErrCodeInvalid, fmt.Sprintf("constant %q has no value", name), nil)
			}
		}

		v, err := cueScalar(valueField)
		if err != nil {
			return nil, e.fail(path, ErrCodeUnsupported, fmt.Sprintf("constant %q: %v", name, err), err)
		}
		e.value = v
		entries = append(entries, e)
	}
	return entries, nil
}

// cueScalar extracts a concrete scalar as a host value.
func cueScalar(v cue.Value) (any, error) {
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return nil, fmt.Errorf("value must be concrete: %w", err)
	}

	switch kind := v.Kind(); kind {
	case cue.NullKind:
		return nil, nil
	case cue.BoolKind:
		return v.Bool()
	case cue.IntKind:
		if n, err := v.Int64(); err == nil {
			return n, nil
		}
		u, err := v.Uint64()
		if err != nil {
			return nil, fmt.Errorf("integer out of range: %w", err)
		}
		return u, nil
	case cue.FloatKind, cue.NumberKind:
		return v.Float64()
	case cue.StringKind:
		return v.String()
	case cue.BytesKind:
		return v.Bytes()
	default:
		return nil, fmt.Errorf("value must be a scalar, got %s", kind)
	}
}

func cueFail(path string, pos token.Pos, code, message string, err error) *LoadError {
	le := &LoadError{Code: code, Message: message, Path: path, Err: err}
	if pos.IsValid() {
		le.Line, le.Column = pos.Line(), pos.Column()
	}
	return le
}
