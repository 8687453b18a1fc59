// Package constfile loads named constants from YAML or CUE files and turns
// each one into a literal expression.
//
// Both formats declare a top-level "constants" collection. In YAML it is a
// list, which keeps the author's order:
//
//	constants:
//	  - name: limit
//	    type: uint32   # optional
//	    value: 10
//
// In CUE it is a struct; a field is either a concrete scalar or a
// {type, value} pair:
//
//	constants: {
//		limit: {type: "uint32", value: 10}
//		label: "daily"
//	}
//
// Without an explicit type the value's own kind decides the variant
// (integers become Int64, decimals Float64, text Utf8, bytes Binary).
// Lists and maps are rejected: literals are single scalars.
package constfile

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/roach88/litcol/internal/datatype"
	"github.com/roach88/litcol/internal/dsl"
)

// Error codes reported in LoadError.Code.
const (
	ErrCodeNotFound    = "E101" // File missing or unreadable
	ErrCodeParse       = "E102" // YAML/CUE syntax error
	ErrCodeInvalid     = "E103" // Structurally valid but semantically wrong
	ErrCodeUnsupported = "E104" // Value kind outside the scalar set
	ErrCodeFormat      = "E105" // Unknown file extension
)

// Format names a constant file syntax.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatCUE  Format = "cue"
)

// Options controls how values are converted.
type Options struct {
	// NormalizeNFC rewrites Utf8 values to Unicode normalization form C.
	NormalizeNFC bool
}

// Binding is one named constant.
type Binding struct {
	Name string
	Expr dsl.Expr
}

// Value returns the literal value held by the binding.
func (b Binding) Value() dsl.LiteralValue {
	v, _ := dsl.AsLiteral(b.Expr)
	return v
}

// File is the result of loading a constant file.
type File struct {
	Path     string
	Format   Format
	Bindings []Binding
}

// Lookup returns the expression bound to name.
func (f *File) Lookup(name string) (dsl.Expr, bool) {
	for _, b := range f.Bindings {
		if b.Name == name {
			return b.Expr, true
		}
	}
	return nil, false
}

// LoadError describes why a constant file could not be loaded.
type LoadError struct {
	Code    string
	Message string
	Path    string
	Line    int // 1-based; 0 when unknown
	Column  int
	Err     error // Underlying error, if any
}

func (e *LoadError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Path, e.Line, e.Column, e.Code, e.Message)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %s", e.Path, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// DetectFormat picks the syntax from the file extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".cue":
		return FormatCUE, nil
	}
	return "", &LoadError{
		Code:    ErrCodeFormat,
		Message: fmt.Sprintf("unsupported file extension %q (want .yaml, .yml or .cue)", filepath.Ext(path)),
		Path:    path,
	}
}

// Load reads path and converts every constant it declares.
func Load(path string, opts Options) (*File, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{
			Code:    ErrCodeNotFound,
			Message: fmt.Sprintf("reading constant file: %v", err),
			Path:    path,
			Err:     err,
		}
	}

	return Parse(path, format, data, opts)
}

// Parse converts data in the given format. path is used for error messages
// and CUE positions only.
func Parse(path string, format Format, data []byte, opts Options) (*File, error) {
	var (
		entries []entry
		err     error
	)
	switch format {
	case FormatYAML:
		entries, err = parseYAML(path, data)
	case FormatCUE:
		entries, err = parseCUE(path, data)
	default:
		return nil, &LoadError{Code: ErrCodeFormat, Message: fmt.Sprintf("unknown format %q", format), Path: path}
	}
	if err != nil {
		return nil, err
	}

	file := &File{Path: path, Format: format}
	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		if e.name == "" {
			return nil, e.fail(path, ErrCodeInvalid, "constant name is required", nil)
		}
		if seen[e.name] {
			return nil, e.fail(path, ErrCodeInvalid, fmt.Sprintf("duplicate constant %q", e.name), nil)
		}
		seen[e.name] = true

		v, err := e.literal(opts)
		if err != nil {
			return nil, e.fail(path, ErrCodeInvalid, fmt.Sprintf("constant %q: %v", e.name, err), err)
		}
		file.Bindings = append(file.Bindings, Binding{Name: e.name, Expr: v.Lit()})
	}

	slog.Debug("constants loaded", "path", path, "format", string(format), "count", len(file.Bindings))
	return file, nil
}

// entry is one constant as read from either syntax, before conversion.
type entry struct {
	name     string
	typeName string // empty when the type is inferred
	value    any    // host value: nil, bool, string, []byte, int64, uint64 or float64
	line     int
	column   int
}

func (e entry) literal(opts Options) (dsl.LiteralValue, error) {
	var (
		v   dsl.LiteralValue
		err error
	)
	if e.typeName == "" {
		v, err = dsl.FromAny(e.value)
	} else {
		var dt datatype.DataType
		dt, err = datatype.Parse(e.typeName)
		if err != nil {
			return nil, err
		}
		v, err = dsl.Coerce(dt, e.value)
	}
	if err != nil {
		return nil, err
	}

	if s, ok := v.(dsl.Utf8); ok && opts.NormalizeNFC {
		v = dsl.Utf8(norm.NFC.String(string(s)))
	}
	return v, nil
}

func (e entry) fail(path, code, message string, err error) *LoadError {
	return &LoadError{Code: code, Message: message, Path: path, Line: e.line, Column: e.column, Err: err}
}
