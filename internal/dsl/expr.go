package dsl

import (
	"fmt"

	"github.com/xlab/treeprint"

	"github.com/roach88/litcol/internal/datatype"
	"github.com/roach88/litcol/internal/series"
)

// Expr is a node of the expression tree. Only types in this package
// implement it: Literal, Column and Alias.
type Expr interface {
	fmt.Stringer

	// Children returns the direct child expressions. Leaves return nil.
	Children() []Expr

	exprNode() // Sealed
}

// Literal is a leaf holding one scalar value.
type Literal struct {
	Value LiteralValue
}

// Column is a leaf referring to a column by name.
type Column struct {
	Name string
}

// Alias renames the output of its child expression.
type Alias struct {
	Expr Expr
	Name string
}

func (*Literal) exprNode() {}
func (*Column) exprNode()  {}
func (*Alias) exprNode()   {}

func (l *Literal) String() string { return fmt.Sprintf("lit(%s)", l.Value) }
func (c *Column) String() string  { return fmt.Sprintf("col(%s)", c.Name) }
func (a *Alias) String() string   { return fmt.Sprintf("%s AS %s", a.Expr, a.Name) }

func (*Literal) Children() []Expr { return nil }
func (*Column) Children() []Expr  { return nil }
func (a *Alias) Children() []Expr { return []Expr{a.Expr} }

// DataType returns the logical type of the literal's value.
func (l *Literal) DataType() datatype.DataType {
	return l.Value.DataType()
}

// ToSeries materializes the literal's value as a one-row column.
func (l *Literal) ToSeries() (series.Series, error) {
	return l.Value.ToSeries()
}

// Col returns a column reference expression.
func Col(name string) Expr {
	return &Column{Name: name}
}

// AliasOf names the output of e.
func AliasOf(e Expr, name string) Expr {
	return &Alias{Expr: e, Name: name}
}

// AsLiteral returns the value held by e when e is a literal leaf.
func AsLiteral(e Expr) (LiteralValue, bool) {
	l, ok := e.(*Literal)
	if !ok || l == nil {
		return nil, false
	}
	return l.Value, true
}

// Tree renders e and its descendants as an indented text tree.
func Tree(e Expr) string {
	return addTree(e, nil).String()
}

func addTree(e Expr, parent treeprint.Tree) treeprint.Tree {
	label := describe(e)
	var branch treeprint.Tree
	if parent == nil {
		branch = treeprint.NewWithRoot(label)
	} else {
		branch = parent.AddBranch(label)
	}
	for _, child := range e.Children() {
		addTree(child, branch)
	}
	return branch
}

func describe(e Expr) string {
	switch node := e.(type) {
	case *Literal:
		return fmt.Sprintf("Literal %s: %s", node.Value.DataType(), node.Value)
	case *Column:
		return "Column: " + node.Name
	case *Alias:
		return "Alias: " + node.Name
	default:
		panic(fmt.Sprintf("dsl: unreachable expression node %T", e))
	}
}
