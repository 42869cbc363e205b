/*
 * Copyright (c) 2026-present unTill Software Development Group B.V.
 */

package expression

import (
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

type exprSpec struct {
	Head *andSpec   `parser:"@@"`
	Tail []*andSpec `parser:"( '||' @@ )*"`
}

type andSpec struct {
	Head *cmpSpec   `parser:"@@"`
	Tail []*cmpSpec `parser:"( '&&' @@ )*"`
}

type cmpSpec struct {
	Left  *addSpec `parser:"@@"`
	Op    string   `parser:"( @( '==' | '!=' | '<=' | '>=' | '<' | '>' | '~=' )"`
	Right *addSpec `parser:"  @@ )?"`
}

type addSpec struct {
	Head *mulSpec   `parser:"@@"`
	Tail []*addTail `parser:"@@*"`
}

type addTail struct {
	Op   string   `parser:"@( '+' | '-' )"`
	Expr *mulSpec `parser:"@@"`
}

type mulSpec struct {
	Head *powSpec   `parser:"@@"`
	Tail []*mulTail `parser:"@@*"`
}

type mulTail struct {
	Op   string   `parser:"@( '*' | '/' | '%' )"`
	Expr *powSpec `parser:"@@"`
}

type powSpec struct {
	Base *unarySpec `parser:"@@"`
	Exp  *powSpec   `parser:"( '^' @@ )?"`
}

type unarySpec struct {
	Op      string       `parser:"( @( '-' | '!' )"`
	Operand *unarySpec   `parser:"  @@ )"`
	Primary *primarySpec `parser:"| @@"`
}

type primarySpec struct {
	Number *float64  `parser:"  @Number"`
	String *string   `parser:"| @String"`
	If     *ifSpec   `parser:"| @@"`
	Ref    *refSpec  `parser:"| @@"`
	Sub    *exprSpec `parser:"| '(' @@ ')'"`
}

type ifSpec struct {
	Cond  *exprSpec `parser:"'if' '(' @@"`
	True  *exprSpec `parser:"',' @@"`
	False *exprSpec `parser:"',' @@ ')'"`
}

type refSpec struct {
	Name   string    `parser:"@Ident"`
	Call   *argsSpec `parser:"@@?"`
	Output []string  `parser:"( '.' @Ident )*"`
}

type argsSpec struct {
	Args []*exprSpec `parser:"'(' ( @@ ( ',' @@ )* )? ')'"`
}

var exprParser = participle.MustBuild[exprSpec](
	participle.Lexer(lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Comment", Pattern: `#[^\n]*`},
		{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
		{Name: "String", Pattern: `"(\\"|[^"])*"`},
		{Name: "Number", Pattern: `(\d+\.\d*|\.\d+|\d+)([eE][-+]?\d+)?`},
		{Name: "Operator", Pattern: `==|!=|<=|>=|~=|&&|\|\||[-+*/%^<>!(),.]`},
		{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
	})),
	participle.Elide("Whitespace", "Comment"),
	participle.Unquote("String"),
	participle.UseLookahead(2),
)

// Parses ranking expression text
func Parse(text string) (*Expression, error) {
	return ParseNamed("", text)
}

// Parses ranking expression text and names the result
func ParseNamed(name, text string) (*Expression, error) {
	spec, err := exprParser.ParseString(name, text)
	if err != nil {
		return nil, ErrSyntax(text, err)
	}
	return New(name, spec.node()), nil
}

// Same as Parse, but panics on error
func MustParse(text string) *Expression {
	e, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return e
}

// Parses feature reference like `query(q)` or `onnx(model).output`
func ParseReference(text string) (*Reference, error) {
	e, err := Parse(text)
	if err != nil {
		return nil, err
	}
	ref, ok := e.Root().(*Reference)
	if !ok {
		return nil, ErrNotReference(text)
	}
	return ref, nil
}

func (s *exprSpec) node() Node {
	n := s.Head.node()
	for _, t := range s.Tail {
		n = &Arithmetic{Op: ArithmeticOp_Or, Left: n, Right: t.node()}
	}
	return n
}

func (s *andSpec) node() Node {
	n := s.Head.node()
	for _, t := range s.Tail {
		n = &Arithmetic{Op: ArithmeticOp_And, Left: n, Right: t.node()}
	}
	return n
}

func (s *cmpSpec) node() Node {
	n := s.Left.node()
	if s.Right == nil {
		return n
	}
	for op, text := range comparisonOps {
		if text == s.Op {
			return &Comparison{Op: ComparisonOp(op), Left: n, Right: s.Right.node()}
		}
	}
	panic("unknown comparison operator " + s.Op)
}

func (s *addSpec) node() Node {
	n := s.Head.node()
	for _, t := range s.Tail {
		op := ArithmeticOp_Add
		if t.Op == "-" {
			op = ArithmeticOp_Sub
		}
		n = &Arithmetic{Op: op, Left: n, Right: t.Expr.node()}
	}
	return n
}

func (s *mulSpec) node() Node {
	n := s.Head.node()
	for _, t := range s.Tail {
		op := ArithmeticOp_Mul
		switch t.Op {
		case "/":
			op = ArithmeticOp_Div
		case "%":
			op = ArithmeticOp_Mod
		}
		n = &Arithmetic{Op: op, Left: n, Right: t.Expr.node()}
	}
	return n
}

func (s *powSpec) node() Node {
	n := s.Base.node()
	if s.Exp != nil {
		return &Arithmetic{Op: ArithmeticOp_Pow, Left: n, Right: s.Exp.node()}
	}
	return n
}

func (s *unarySpec) node() Node {
	if s.Primary != nil {
		return s.Primary.node()
	}
	if s.Op == "!" {
		return &Not{Operand: s.Operand.node()}
	}
	return &Negate{Operand: s.Operand.node()}
}

func (s *primarySpec) node() Node {
	switch {
	case s.Number != nil:
		return &Number{Value: *s.Number}
	case s.String != nil:
		return &StringLiteral{Value: *s.String}
	case s.If != nil:
		return &If{Condition: s.If.Cond.node(), True: s.If.True.node(), False: s.If.False.node()}
	case s.Ref != nil:
		return s.Ref.node()
	default:
		return s.Sub.node()
	}
}

func (s *refSpec) node() Node {
	ref := &Reference{Name: s.Name, Output: strings.Join(s.Output, ".")}
	if s.Call != nil {
		ref.Args = make([]Node, len(s.Call.Args))
		for i, a := range s.Call.Args {
			ref.Args[i] = a.node()
		}
	}
	if ref.IsIdentifier() {
		switch ref.Name {
		case "true":
			return &Number{Value: 1}
		case "false":
			return &Number{Value: 0}
		}
	}
	return ref
}
