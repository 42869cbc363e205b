/*
 * Copyright (c) 2026-present unTill Software Development Group B.V.
 */

package tensor

import (
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

type typeSpec struct {
	Cell *string    `parser:"'tensor' ( '<' @Ident '>' )?"`
	Dims []*dimSpec `parser:"'(' ( @@ ( ',' @@ )* )? ')'"`
}

type dimSpec struct {
	Name   string  `parser:"@Ident"`
	Mapped bool    `parser:"( @( '{' '}' )"`
	Size   *uint64 `parser:"| '[' @Int? ']' )"`
}

var typeParser = participle.MustBuild[typeSpec](
	participle.Lexer(lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
		{Name: "Int", Pattern: `\d+`},
		{Name: "Punct", Pattern: `[<>(){}\[\],]`},
		{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
	})),
	participle.Elide("Whitespace"),
)

// Parses tensor type from string like `tensor<float>(x[3],y{})`.
//
// Strings "double" and "tensor()" are parsed as scalar type.
func Parse(s string) (Type, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == cellTypeNames[CellType_double] {
		return Empty, nil
	}
	spec, err := typeParser.ParseString("", s)
	if err != nil {
		return Empty, ErrInvalidType("«%s»: %v", s, err)
	}

	cell := CellType_double
	if spec.Cell != nil {
		cell, err = parseCellType(*spec.Cell)
		if err != nil {
			return Empty, err
		}
	}

	dims := make([]Dimension, 0, len(spec.Dims))
	for _, d := range spec.Dims {
		switch {
		case d.Mapped:
			dims = append(dims, Mapped(d.Name))
		case d.Size != nil:
			dims = append(dims, Indexed(d.Name, *d.Size))
		default:
			dims = append(dims, IndexedUnbound(d.Name))
		}
	}
	t, err := New(cell, dims...)
	if err != nil {
		return Empty, ErrInvalidType("«%s»: %v", s, err)
	}
	return t, nil
}

// Same as Parse, but panics on error
func MustParse(s string) Type {
	t, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return t
}

func parseCellType(s string) (CellType, error) {
	for c, n := range cellTypeNames {
		if n == s {
			return CellType(c), nil
		}
	}
	return CellType_double, ErrInvalidType("unknown cell type «%s»", s)
}
