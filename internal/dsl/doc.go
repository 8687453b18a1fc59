// Package dsl holds the literal leaf of the expression tree: the closed set
// of scalar values a query may carry, their logical types, their one-row
// column materialization, and the conversions that turn host values into
// literal expressions.
//
// # Scalar values
//
// LiteralValue is a sealed interface. Its variants are
//
//	Null, Boolean, Utf8, Binary, Int32, UInt32, Int64, UInt64, Float64
//
// Every variant is a comparable value type, so two literals are equal when
// they compare equal with ==. Binary keeps a private copy of its bytes and
// hands out copies, which keeps every variant immutable.
//
// Exhaustiveness is carried by the interface itself: String, DataType,
// ToSeries and Lit are methods on each variant, so a new variant that does
// not implement all of them does not satisfy LiteralValue. Type switches over
// variants elsewhere end in a panicking default arm, never a silent fallback.
//
// # Conversion
//
// Host values become expressions through Lit (generic over HostScalar),
// through the Literalizer capability that every variant implements, or
// through NullLit:
//
//	dsl.Lit(true)          // Boolean(true)
//	dsl.Lit("hi")          // Utf8("hi")
//	dsl.Lit(int64(7))      // Int64(7)
//	dsl.Int32(3).Lit()     // Int32(3)
//	dsl.NullLit()          // Null
//
// Untyped host data (decoded YAML, CUE, command-line text) goes through
// FromAny, Coerce, Parse or Infer instead.
//
// # Materialization
//
// ToSeries produces a length-one column named ColumnName. Binary values have
// no column representation and return ErrUnsupportedMaterialization;
// MustToSeries turns that into a panic for callers that treat it as fatal.
package dsl
