/*
 * Copyright (c) 2026-present unTill Software Development Group B.V.
 */

package expression

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/voedger/searchschema/pkg/tensor"
)

// Ranking expression tree node
type Node interface {
	fmt.Stringer

	// Returns direct children, nil for leaves
	Children() []Node

	// Returns copy of node with children replaced. Length must match Children()
	WithChildren([]Node) Node

	precedence() int
}

// Numeric literal
type Number struct {
	Value float64
}

func (n *Number) Children() []Node           { return nil }
func (n *Number) WithChildren(_ []Node) Node { return n }
func (n *Number) precedence() int            { return precPrimary }
func (n *Number) String() string {
	s := strconv.FormatFloat(n.Value, 'g', -1, 64)
	if n.Value < 0 {
		return "(" + s + ")"
	}
	return s
}

// String literal
type StringLiteral struct {
	Value string
}

func (n *StringLiteral) Children() []Node           { return nil }
func (n *StringLiteral) WithChildren(_ []Node) Node { return n }
func (n *StringLiteral) precedence() int            { return precPrimary }
func (n *StringLiteral) String() string             { return strconv.Quote(n.Value) }

// Feature reference: `name`, `name(args)` or `name(args).output`.
//
// References address rank features, query/attribute/constant values and function calls.
type Reference struct {
	Name   string
	Args   []Node
	Output string
}

func (r *Reference) Children() []Node { return r.Args }

func (r *Reference) WithChildren(c []Node) Node {
	return &Reference{Name: r.Name, Args: c, Output: r.Output}
}

func (r *Reference) precedence() int { return precPrimary }

func (r *Reference) String() string {
	s := strings.Builder{}
	s.WriteString(r.Name)
	if len(r.Args) > 0 {
		s.WriteString("(")
		for i, a := range r.Args {
			if i > 0 {
				s.WriteString(",")
			}
			s.WriteString(a.String())
		}
		s.WriteString(")")
	}
	if r.Output != "" {
		s.WriteString(".")
		s.WriteString(r.Output)
	}
	return s.String()
}

// Returns true if reference has neither arguments nor output
func (r *Reference) IsIdentifier() bool {
	return len(r.Args) == 0 && r.Output == ""
}

// Returns true for `query(x)`, `attribute(x)` and `constant(x)` references
// with a single identifier or literal argument and no output
func (r *Reference) IsSimpleFeature() bool {
	switch r.Name {
	case FeatureQuery, FeatureAttribute, FeatureConstant:
	default:
		return false
	}
	if r.Output != "" {
		return false
	}
	_, ok := r.SimpleArgument()
	return ok
}

// Returns the single argument as text if it is an identifier or a literal
func (r *Reference) SimpleArgument() (string, bool) {
	if len(r.Args) != 1 {
		return "", false
	}
	switch a := r.Args[0].(type) {
	case *Reference:
		if a.IsIdentifier() {
			return a.Name, true
		}
	case *StringLiteral:
		return a.Value, true
	case *Number:
		return a.String(), true
	}
	return "", false
}

// Returns key to address feature types. Simple features are keyed by unquoted argument
func (r *Reference) Key() string {
	if r.IsSimpleFeature() {
		arg, _ := r.SimpleArgument()
		return FeatureKey(r.Name, arg)
	}
	return r.String()
}

// Binary arithmetic or logical operation
type Arithmetic struct {
	Op          ArithmeticOp
	Left, Right Node
}

func (n *Arithmetic) Children() []Node { return []Node{n.Left, n.Right} }

func (n *Arithmetic) WithChildren(c []Node) Node {
	return &Arithmetic{Op: n.Op, Left: c[0], Right: c[1]}
}

func (n *Arithmetic) precedence() int {
	switch n.Op {
	case ArithmeticOp_Or:
		return precOr
	case ArithmeticOp_And:
		return precAnd
	case ArithmeticOp_Add, ArithmeticOp_Sub:
		return precAdd
	case ArithmeticOp_Pow:
		return precPow
	default:
		return precMul
	}
}

func (n *Arithmetic) String() string {
	p := n.precedence()
	if n.Op == ArithmeticOp_Pow {
		return wrap(n.Left, p+1) + arithmeticOps[n.Op] + wrap(n.Right, p)
	}
	return wrap(n.Left, p) + " " + arithmeticOps[n.Op] + " " + wrap(n.Right, p+1)
}

func (op ArithmeticOp) String() string {
	if op < ArithmeticOp_count {
		return arithmeticOps[op]
	}
	return fmt.Sprintf("ArithmeticOp(%d)", op)
}

// Comparison, produces 1 or 0
type Comparison struct {
	Op          ComparisonOp
	Left, Right Node
}

func (n *Comparison) Children() []Node { return []Node{n.Left, n.Right} }

func (n *Comparison) WithChildren(c []Node) Node {
	return &Comparison{Op: n.Op, Left: c[0], Right: c[1]}
}

func (n *Comparison) precedence() int { return precComparison }

func (n *Comparison) String() string {
	return wrap(n.Left, precComparison+1) + " " + comparisonOps[n.Op] + " " + wrap(n.Right, precComparison+1)
}

func (op ComparisonOp) String() string {
	if op < ComparisonOp_count {
		return comparisonOps[op]
	}
	return fmt.Sprintf("ComparisonOp(%d)", op)
}

// Unary minus
type Negate struct {
	Operand Node
}

func (n *Negate) Children() []Node           { return []Node{n.Operand} }
func (n *Negate) WithChildren(c []Node) Node { return &Negate{Operand: c[0]} }
func (n *Negate) precedence() int            { return precUnary }
func (n *Negate) String() string             { return "-" + wrap(n.Operand, precUnary) }

// Logical not
type Not struct {
	Operand Node
}

func (n *Not) Children() []Node           { return []Node{n.Operand} }
func (n *Not) WithChildren(c []Node) Node { return &Not{Operand: c[0]} }
func (n *Not) precedence() int            { return precUnary }
func (n *Not) String() string             { return "!" + wrap(n.Operand, precUnary) }

// Conditional `if(cond, true, false)`
type If struct {
	Condition, True, False Node
}

func (n *If) Children() []Node { return []Node{n.Condition, n.True, n.False} }

func (n *If) WithChildren(c []Node) Node {
	return &If{Condition: c[0], True: c[1], False: c[2]}
}

func (n *If) precedence() int { return precPrimary }

func (n *If) String() string {
	return fmt.Sprintf("if (%v, %v, %v)", n.Condition, n.True, n.False)
}

// Named ranking expression
type Expression struct {
	name string
	root Node
}

func New(name string, root Node) *Expression {
	return &Expression{name: name, root: root}
}

func (e *Expression) Name() string { return e.name }

func (e *Expression) Root() Node { return e.root }

func (e *Expression) String() string {
	if e == nil || e.root == nil {
		return ""
	}
	return e.root.String()
}

// User defined function of a rank profile
type Function struct {
	Name      string
	Arguments []string
	Body      *Expression

	// Declared argument types, optional
	ArgumentTypes map[string]tensor.Type
	// Declared return type, optional
	ReturnType *tensor.Type
}

func NewFunction(name string, arguments []string, body *Expression) *Function {
	return &Function{Name: name, Arguments: arguments, Body: body}
}

// Returns copy of function with replaced body
func (f *Function) WithBody(body *Expression) *Function {
	c := *f
	c.Body = body
	return &c
}

func (f *Function) String() string {
	return fmt.Sprintf("%s(%s) := %v", f.Name, strings.Join(f.Arguments, ","), f.Body)
}
