/*
 * Copyright (c) 2026-present unTill Software Development Group B.V.
 */

package featuretypes

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/voedger/searchschema/pkg/expression"
	"github.com/voedger/searchschema/pkg/tensor"
)

func fn(name, body string, args ...string) *expression.Function {
	return expression.NewFunction(name, args, expression.MustParse(body))
}

func testContext() *Context {
	return NewBuilder().
		Set("query(q)", tensor.MustParse("tensor<float>(x[3],y{})")).
		Set("query(v3)", tensor.MustParse("tensor(x[3])")).
		Set("query(v5)", tensor.MustParse("tensor(x[5])")).
		Set("query(m)", tensor.MustParse("tensor(x{})")).
		Set("attribute(title)", tensor.MustParse("tensor<float>(x[3])")).
		Set("attribute(year)", tensor.Empty).
		Set("constant(c)", tensor.MustParse("tensor(y{})")).
		Set("onnx(model).out", tensor.MustParse("tensor<float>(d0[1],d1[10])")).
		SetFunction(fn("f", "attribute(x) * 2", "x")).
		SetFunction(fn("g", "f(y) + 1", "y")).
		SetFunction(fn("h", "attribute(title)")).
		SetFunction(fn("k", "h() + h()")).
		SetFunction(fn("reduced", "sum(t, x)", "t")).
		SetFunction(fn("loop1", "loop2()")).
		SetFunction(fn("loop2", "1 + loop1()")).
		SetFunction(fn("self", "self() * 2")).
		Build()
}

func typeOf(c *Context, text string) (tensor.Type, error) {
	return c.TypeOf(expression.MustParse(text).Root())
}

func Test_Type(t *testing.T) {
	require := require.New(t)
	c := testContext()

	t.Run("should be ok to type expressions", func(t *testing.T) {
		for text, expected := range map[string]string{
			"query(q)":                                          "tensor<float>(x[3],y{})",
			`attribute("title")`:                                "tensor<float>(x[3])",
			"query(unknown)":                                    "tensor()",
			"attribute(year) + 1":                               "tensor()",
			"c":                                                 "tensor(y{})",
			"constant(c) * query(m)":                            "tensor(x{},y{})",
			"f(title)":                                          "tensor<float>(x[3])",
			"g(title)":                                          "tensor<float>(x[3])",
			"rankingExpression(h)":                              "tensor<float>(x[3])",
			"k":                                                 "tensor<float>(x[3])",
			"reduced(query(q))":                                 "tensor<float>(y{})",
			"if (attribute(year) > 0, query(v3), query(v5))":    "tensor(x[])",
			"sum(query(q))":                                     "tensor()",
			"max(query(q), x)":                                  "tensor<float>(y{})",
			"max(query(v3), 0)":                                 "tensor(x[3])",
			"reduce(query(q), avg, y)":                          "tensor<float>(x[3])",
			"cosine_similarity(query(v3), attribute(title), x)": "tensor()",
			"matmul(query(q), attribute(title), x)":             "tensor<float>(y{})",
			"sqrt(-query(v5))":                                  "tensor(x[5])",
			"onnx(model).out":                                   "tensor<float>(d0[1],d1[10])",
			"firstPhase + bm25(title)":                          "tensor()",
		} {
			typ, err := typeOf(c, text)
			require.NoError(err, text)
			require.Equal(expected, typ.String(), text)
		}
	})

	t.Run("should be errors", func(t *testing.T) {
		for text, msg := range map[string]string{
			"attribute(unknown)":          "unknown feature «attribute(unknown)»",
			"constant(unknown)":           "unknown feature «constant(unknown)»",
			"f(unknown)":                  "unknown feature «attribute(unknown)»",
			"loop1":                       "invocation loop",
			"self()":                      "invocation loop",
			"if (1, query(v3), query(m))": "can not be generalized",
			"sum(query(q), z)":            "no dimension «z»",
			"query(m) + query(q)":         "mapped in one and indexed in other",
		} {
			_, err := typeOf(c, text)
			require.ErrorIs(err, ErrTypeError, text)
			require.ErrorContains(err, msg, text)
		}
	})
}

func Test_AttributeTypeIndependentOfNesting(t *testing.T) {
	require := require.New(t)

	c := NewBuilder().
		Set("attribute(a)", tensor.MustParse("tensor(x[2])")).
		SetFunction(fn("level1", "attribute(a)")).
		SetFunction(fn("level2", "level1() + attribute(a)")).
		SetFunction(fn("level3", "level2() * level1()")).
		SetFunction(fn("withArg", "level3() + attribute(a) + p", "p")).
		Build()

	expected, err := c.Type(expression.Simple(expression.FeatureAttribute, "a"))
	require.NoError(err)
	for _, text := range []string{"level1", "level2", "level3", "withArg(1)", "withArg(withArg(level3))"} {
		typ, err := typeOf(c, text)
		require.NoError(err, text)
		require.Equal(expected, typ, text)
	}
}

func Test_Context(t *testing.T) {
	require := require.New(t)

	t.Run("should return same context for empty bindings", func(t *testing.T) {
		c := testContext()
		require.Same(c, c.WithBindings(nil))

		bound := c.WithBindings(map[string]expression.Node{"x": expression.MustParse("query(q)").Root()})
		require.NotSame(c, bound)
		typ, err := bound.TypeOf(expression.MustParse("x").Root())
		require.NoError(err)
		require.Equal(tensor.MustParse("tensor<float>(x[3],y{})"), typ)

		require.NotSame(bound, bound.WithBindings(nil))
	})

	t.Run("should memoize top-level calls only", func(t *testing.T) {
		c := testContext()
		_, err := typeOf(c, "g(title) + k")
		require.NoError(err)
		require.True(c.memo.Contains("g(title)"))
		require.True(c.memo.Contains("k"))
		require.True(c.memo.Contains("h"))
		require.False(c.memo.Contains("f(y)"))

		derived := c.WithBindings(map[string]expression.Node{"z": &expression.Number{Value: 1}})
		_, err = typeOf(derived, "f(title)")
		require.NoError(err)
		require.False(c.memo.Contains("f(title)"))
	})

	t.Run("should be ok to access declarations", func(t *testing.T) {
		c := testContext()
		_, ok := c.Function("f")
		require.True(ok)
		_, ok = c.Function("unknown")
		require.False(ok)

		types := c.Types()
		delete(types, "query(q)")
		_, err := typeOf(c, "query(q)")
		require.NoError(err)
		require.Contains(c.Types(), "query(q)")
	})
}
