package dsl

// Literalizer is implemented by values that can wrap themselves as a literal
// expression. Every LiteralValue variant implements it.
type Literalizer interface {
	Lit() Expr
}

// HostScalar lists the Go types Lit accepts. Strings cover text passed by
// value and by reference alike; []byte becomes Binary.
type HostScalar interface {
	string | []byte | bool | int32 | uint32 | int64 | uint64 | float64
}

func (v Null) Lit() Expr    { return &Literal{Value: v} }
func (v Boolean) Lit() Expr { return &Literal{Value: v} }
func (v Utf8) Lit() Expr    { return &Literal{Value: v} }
func (v Binary) Lit() Expr  { return &Literal{Value: v} }
func (v Int32) Lit() Expr   { return &Literal{Value: v} }
func (v UInt32) Lit() Expr  { return &Literal{Value: v} }
func (v Int64) Lit() Expr   { return &Literal{Value: v} }
func (v UInt64) Lit() Expr  { return &Literal{Value: v} }
func (v Float64) Lit() Expr { return &Literal{Value: v} }

// Lit wraps a host scalar as a literal expression.
func Lit[T HostScalar](v T) Expr {
	switch x := any(v).(type) {
	case string:
		return Utf8(x).Lit()
	case []byte:
		return NewBinary(x).Lit()
	case bool:
		return Boolean(x).Lit()
	case int32:
		return Int32(x).Lit()
	case uint32:
		return UInt32(x).Lit()
	case int64:
		return Int64(x).Lit()
	case uint64:
		return UInt64(x).Lit()
	case float64:
		return Float64(x).Lit()
	}
	panic("dsl: unreachable host scalar")
}

// LitOf wraps anything implementing Literalizer.
func LitOf(l Literalizer) Expr {
	return l.Lit()
}

// NullLit returns a literal expression holding Null.
func NullLit() Expr {
	return &Literal{Value: Null{}}
}
