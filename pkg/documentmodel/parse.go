/*
 * Copyright (c) 2026-present unTill Software Development Group B.V.
 */

package documentmodel

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/voedger/searchschema/pkg/tensor"
)

type dataTypeSpec struct {
	Tensor *string         `parser:"  @Tensor"`
	Name   string          `parser:"| @Ident"`
	Args   []*dataTypeSpec `parser:"  ( '<' @@ ( ',' @@ )* '>' )?"`
}

var dataTypeParser = participle.MustBuild[dataTypeSpec](
	participle.Lexer(lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Tensor", Pattern: `tensor(\s*<\s*\w+\s*>)?\s*\([^)]*\)`},
		{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
		{Name: "Punct", Pattern: `[<>,]`},
		{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
	})),
	participle.Elide("Whitespace"),
)

// Parses data type text: primitive name, `array<T>`, `weightedset<T>`, `map<K,V>`,
// `reference<doc>`, `annotationreference<a>`, `tensor<cell>(dims)`.
// Any other name is returned as placeholder.
func ParseDataType(text string) (*DataType, error) {
	spec, err := dataTypeParser.ParseString("", text)
	if err != nil {
		return nil, ErrInvalidDataType(text, "%v", err)
	}
	return spec.dataType(text)
}

// Same as ParseDataType, but panics on error
func MustParseDataType(text string) *DataType {
	t, err := ParseDataType(text)
	if err != nil {
		panic(err)
	}
	return t
}

func (s *dataTypeSpec) dataType(text string) (*DataType, error) {
	if s.Tensor != nil {
		t, err := tensor.Parse(*s.Tensor)
		if err != nil {
			return nil, ErrInvalidDataType(text, "%v", err)
		}
		return Tensor(t), nil
	}

	args := make([]*DataType, len(s.Args))
	for i, a := range s.Args {
		t, err := a.dataType(text)
		if err != nil {
			return nil, err
		}
		args[i] = t
	}

	expect := func(n int) error {
		if len(args) != n {
			return ErrInvalidDataType(text, "«%s» expects %d type argument(s), got %d", s.Name, n, len(args))
		}
		return nil
	}
	named := func(t *DataType) error {
		if t.Kind != Kind_Placeholder {
			return ErrInvalidDataType(text, "«%s» expects type name, got «%v»", s.Name, t)
		}
		return nil
	}

	switch s.Name {
	case kindNames[Kind_Array], kindNames[Kind_WeightedSet]:
		if err := expect(1); err != nil {
			return nil, err
		}
		if s.Name == kindNames[Kind_Array] {
			return ArrayOf(args[0]), nil
		}
		return WeightedSetOf(args[0]), nil
	case kindNames[Kind_Map]:
		if err := expect(2); err != nil {
			return nil, err
		}
		return MapOf(args[0], args[1]), nil
	case kindNames[Kind_Reference], kindNames[Kind_AnnotationRef]:
		if err := expect(1); err != nil {
			return nil, err
		}
		if err := named(args[0]); err != nil {
			return nil, err
		}
		if s.Name == kindNames[Kind_Reference] {
			return ReferenceTo(args[0].Name), nil
		}
		return AnnotationRefTo(args[0].Name), nil
	}

	if err := expect(0); err != nil {
		return nil, err
	}
	if isPrimitive(s.Name) {
		return Primitive(s.Name), nil
	}
	return Placeholder(s.Name), nil
}
