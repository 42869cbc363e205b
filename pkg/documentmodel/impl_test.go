/*
 * Copyright (c) 2026-present unTill Software Development Group B.V.
 */

package documentmodel

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/voedger/searchschema/pkg/tensor"
)

func fld(name, typ string) *FieldNode {
	return &FieldNode{Name: name, Type: MustParseDataType(typ)}
}

func doc(name string, fields ...*FieldNode) *TypeNode {
	return &TypeNode{Name: name, Document: true, Fields: fields}
}

func strct(name string, fields ...*FieldNode) *TypeNode {
	return &TypeNode{Name: name, Fields: fields}
}

func inherits(n *TypeNode, parents ...string) *TypeNode {
	for _, p := range parents {
		n.Inherits = append(n.Inherits, Placeholder(p))
	}
	return n
}

func schemaOf(d *TypeNode) Schema {
	return Schema{Name: d.Name, Document: d}
}

func Test_ParseDataType(t *testing.T) {
	require := require.New(t)

	t.Run("should be ok to parse data types", func(t *testing.T) {
		for text, expected := range map[string]string{
			"int":                             "int",
			"array<S>":                        "array<S>",
			"array < array<string> >":         "array<array<string>>",
			"weightedset<string>":             "weightedset<string>",
			"map<string, S>":                  "map<string,S>",
			"reference<music>":                "reference<music>",
			"annotationreference<note>":       "annotationreference<note>",
			"tensor<float>(x[3], y{})":        "tensor<float>(x[3],y{})",
			"map<string, tensor<int8>(x[2])>": "map<string,tensor<int8>(x[2])>",
			"array<tensor(x[])>":              "array<tensor(x[])>",
			"UnknownStruct":                   "UnknownStruct",
		} {
			dt, err := ParseDataType(text)
			require.NoError(err, text)
			require.Equal(expected, dt.String(), text)
		}
	})

	t.Run("should be ok to detect kinds", func(t *testing.T) {
		require.Equal(Kind_Primitive, MustParseDataType("string").Kind)
		require.Equal(Kind_Placeholder, MustParseDataType("S").Kind)
		require.Equal(Kind_Tensor, MustParseDataType("tensor(x{})").Kind)
		require.Equal(tensor.MustParse("tensor(x{})"), MustParseDataType("tensor(x{})").Tensor)

		r := MustParseDataType("reference<music>")
		require.Equal(Kind_Reference, r.Kind)
		require.Equal("music", r.Nested.Name)

		require.True(MustParseDataType("array<long>").IsNumeric())
		require.False(MustParseDataType("array<string>").IsNumeric())
		require.True(MustParseDataType("float").IsSingleValue())
	})

	t.Run("should be errors", func(t *testing.T) {
		for _, text := range []string{
			"array<int, int>",
			"map<int>",
			"int<string>",
			"reference<array<int>>",
			"tensor<complex>(x[2])",
			"array<",
		} {
			_, err := ParseDataType(text)
			require.ErrorIs(err, ErrInvalidDataTypeError, text)
		}
	})
}

func Test_OrderTypes(t *testing.T) {
	require := require.New(t)

	t.Run("should be ok to order by inheritance and field types", func(t *testing.T) {
		a := inherits(doc("a", fld("c", "reference<c>")), "b")
		b := doc("b", fld("f", "array<s>"))
		b.Structs = []*TypeNode{inherits(strct("s", fld("p", "position")), "base"), strct("base", fld("x", "int"))}
		c := doc("c", fld("m", "map<string,s2>"))
		c.Structs = []*TypeNode{strct("s2", fld("x", "string"))}

		order, err := OrderTypes([]*TypeNode{a, b, c}, "int", "string", "position", "document")
		require.NoError(err)

		pos := map[string]int{}
		for i, n := range order {
			pos[n.Name] = i
		}
		require.Len(pos, 6)
		require.Less(pos["b"], pos["a"])
		require.Less(pos["s"], pos["b"])
		require.Less(pos["base"], pos["s"])
		require.Less(pos["s2"], pos["c"])
	})

	t.Run("should place parent before child referenced by parent", func(t *testing.T) {
		a := doc("a", fld("child", "reference<b>"))
		b := inherits(doc("b"), "a")

		order, err := OrderTypes([]*TypeNode{a, b})
		require.NoError(err)
		require.Equal([]*TypeNode{a, b}, order)
	})

	t.Run("should be error if inheritance is cyclic", func(t *testing.T) {
		a := inherits(doc("a"), "b")
		b := inherits(doc("b"), "a")
		c := doc("c")

		_, err := OrderTypes([]*TypeNode{a, b, c})
		require.ErrorIs(err, ErrStructuralError)
		require.ErrorContains(err, "«a» needs «b»")
		require.ErrorContains(err, "«b» needs «a»")
		require.NotContains(err.Error(), "«c»")
	})

	t.Run("should be error if parent is unknown", func(t *testing.T) {
		_, err := OrderTypes([]*TypeNode{inherits(doc("a"), "x", "document")}, "document")
		require.ErrorIs(err, ErrStructuralError)
		require.ErrorContains(err, "«a» needs «x»")
	})
}

func Test_Build(t *testing.T) {
	require := require.New(t)

	t.Run("should be ok to build forward declared struct", func(t *testing.T) {
		a := doc("a", fld("f", "array<S>"), fld("g", "S2"))
		a.Structs = []*TypeNode{strct("S")}
		b := doc("b")
		b.Structs = []*TypeNode{strct("S", fld("x", "int"), fld("y", "string")), strct("S2", fld("z", "long"))}

		m, err := Build([]Schema{schemaOf(a), schemaOf(b)})
		require.NoError(err)

		s := m.Type("S")
		require.NotNil(s)
		require.Equal(Kind_Struct, s.Kind())
		require.Len(s.Fields(), 2)
		require.Equal("b", s.Owner())

		count := 0
		for _, st := range m.Structs() {
			if st.Name() == "S" {
				count++
			}
		}
		require.Equal(1, count)

		f, ok := m.Document("a").Field("f")
		require.True(ok)
		require.Equal(Kind_Array, f.Type.Kind())
		require.Same(s, f.Type.Nested())

		g, ok := m.Document("a").Field("g")
		require.True(ok)
		require.Same(m.Type("S2"), g.Type)

		for _, typ := range m.Types() {
			require.False(typ.IsPlaceholder())
			for _, h := range typ.handles() {
				require.False(m.types[h].IsPlaceholder(), "%v refers to placeholder %s", typ, m.types[h].Name())
			}
		}

		require.Len(m.Substitutions(), 1)
		require.Equal("S2", m.Substitutions()[0].Old.Name())
		require.Same(m.Type("S2"), m.Substitutions()[0].New)
	})

	t.Run("first non-empty struct definition should win", func(t *testing.T) {
		a := doc("a")
		a.Structs = []*TypeNode{strct("S", fld("x", "int"))}
		b := doc("b")
		b.Structs = []*TypeNode{strct("S", fld("y", "string"))}

		m, err := Build([]Schema{schemaOf(a), schemaOf(b)})
		require.NoError(err)
		require.Len(m.Structs(), 1)
		_, ok := m.Type("S").Field("x")
		require.True(ok)
		require.Equal("a", m.Type("S").Owner())
	})

	t.Run("should be ok to inherit documents", func(t *testing.T) {
		base := doc("base", fld("title", "string"))
		child := inherits(doc("child", fld("year", "int")), "base")

		m, err := Build([]Schema{schemaOf(child), schemaOf(base)})
		require.NoError(err)

		require.Equal([]*Type{m.Document("base"), m.Document("child")}, m.Documents())
		require.Equal([]*Type{m.Type(TypeDocument)}, m.Document("base").Inherits())
		require.True(m.Document("child").IsA(m.Document("base")))

		names := []string{}
		for _, f := range m.Document("child").AllFields() {
			names = append(names, f.Name)
		}
		require.Equal([]string{"title", "year"}, names)
		require.Same(m.Document("child"), m.TypeByID(TypeID("child")))
		require.Equal(int32(8), m.Type(TypeDocument).ID())
	})

	t.Run("should be ok to resolve references and reference cycles", func(t *testing.T) {
		a := doc("a", fld("b", "reference<b>"))
		b := doc("b", fld("a", "reference<a>"))

		m, err := Build([]Schema{schemaOf(a), schemaOf(b)})
		require.NoError(err)
		f, _ := m.Document("a").Field("b")
		require.Equal(Kind_Reference, f.Type.Kind())
		require.Same(m.Document("b"), f.Type.Nested())
	})

	t.Run("should be ok to reference document from struct", func(t *testing.T) {
		artist := doc("artist")
		music := doc("music", fld("credits", "array<credit>"))
		music.Structs = []*TypeNode{strct("credit", fld("who", "reference<artist>"), fld("all", "array<reference<artist>>"))}

		m, err := Build([]Schema{schemaOf(artist), schemaOf(music)})
		require.NoError(err)
		f, ok := m.Type("credit").Field("who")
		require.True(ok)
		require.Equal(Kind_Reference, f.Type.Kind())
		require.Same(m.Document("artist"), f.Type.Nested())
	})

	t.Run("should be ok to defer schema until annotation is registered", func(t *testing.T) {
		a := doc("a", fld("n", "annotationreference<note>"))
		b := doc("b")
		b.Annotations = []*AnnotationNode{{Name: "note"}}

		m, err := Build([]Schema{schemaOf(a), schemaOf(b)})
		require.NoError(err)
		require.Equal([]*Type{m.Document("b"), m.Document("a")}, m.Documents())

		n, _ := m.Document("a").Field("n")
		require.Equal(Kind_AnnotationRef, n.Type.Kind())
		require.Same(m.Annotation("note"), n.Type.Nested())
	})

	t.Run("should be ok to propagate annotation payloads", func(t *testing.T) {
		a := doc("a")
		a.Annotations = []*AnnotationNode{
			{Name: "grand", Inherits: []string{"child"}},
			{Name: "child", Inherits: []string{"base"}},
			{Name: "base", Payload: strct("basepayload", fld("text", "string"))},
			{Name: "plain"},
			{Name: "own", Payload: &TypeNode{Fields: []*FieldNode{fld("n", "int")}}},
		}

		m, err := Build([]Schema{schemaOf(a)})
		require.NoError(err)

		base := m.Annotation("base").Payload()
		require.Equal("basepayload", base.Name())

		child := m.Annotation("child").Payload()
		require.Equal("annotation.child", child.Name())
		require.Equal([]*Type{base}, child.Inherits())

		grand := m.Annotation("grand").Payload()
		require.Equal("annotation.grand", grand.Name())
		require.Equal([]*Type{child}, grand.Inherits())
		_, ok := grand.Field("text")
		require.True(ok)

		require.Nil(m.Annotation("plain").Payload())
		require.Equal("annotation.own", m.Annotation("own").Payload().Name())
	})

	t.Run("should be structural errors", func(t *testing.T) {
		annotated := func() Schema {
			return schemaOf(doc("a", fld("n", "annotationreference<missing>")))
		}
		nested := func() Schema {
			d := doc("b")
			d.Structs = []*TypeNode{strct("s", fld("d", "array<a>"))}
			return schemaOf(d)
		}
		cyclic := func() Schema {
			d := doc("c")
			d.Annotations = []*AnnotationNode{{Name: "x", Inherits: []string{"y"}}, {Name: "y", Inherits: []string{"x"}}}
			return schemaOf(d)
		}

		for name, c := range map[string]struct {
			schemas []Schema
			msg     string
		}{
			"duplicate schema":        {[]Schema{schemaOf(doc("a")), schemaOf(doc("a"))}, "duplicate schema «a»"},
			"unresolved annotation":   {[]Schema{annotated()}, "«a» needs «missing»"},
			"nested document":         {[]Schema{schemaOf(doc("a")), nested()}, "can not be nested"},
			"unresolved field type":   {[]Schema{schemaOf(doc("a", fld("f", "map<string,Foo>")))}, "«Foo»"},
			"reference to struct":     {[]Schema{{Name: "a", Document: &TypeNode{Name: "a", Document: true, Fields: []*FieldNode{fld("r", "reference<s>")}, Structs: []*TypeNode{strct("s", fld("x", "int"))}}}}, "not a document"},
			"cyclic annotations":      {[]Schema{cyclic()}, "inherits itself"},
			"cyclic document parents": {[]Schema{schemaOf(inherits(doc("a"), "b")), schemaOf(inherits(doc("b"), "a"))}, "«a» needs «b»"},
		} {
			_, err := Build(c.schemas)
			require.ErrorIs(err, ErrStructuralError, name)
			require.ErrorContains(err, c.msg, name)
		}
	})
}
