/*
 * Copyright (c) 2026-present unTill Software Development Group B.V.
 */

package featuretypes

import (
	"golang.org/x/exp/maps"

	"github.com/voedger/searchschema/pkg/expression"
	"github.com/voedger/searchschema/pkg/tensor"
)

// Returns type of feature reference.
//
// Simple features `query(x)`, `attribute(x)` and `constant(x)` are looked up
// directly after their argument is substituted through the call bindings.
// Unknown query features are scalars, unknown attributes and constants are errors.
// Declared functions are typed by their bodies. Other references are typed
// by declared types, and are scalars if not declared.
func (c *Context) Type(ref *expression.Reference) (tensor.Type, error) {
	if ref.IsIdentifier() && c.frame != nil {
		if actual, ok := c.frame.bindings[ref.Name]; ok {
			return c.frame.scope.TypeOf(actual)
		}
	}

	if ref.IsSimpleFeature() {
		return c.simpleFeatureType(ref)
	}

	if ref.Output == "" {
		if f, args, ok := c.function(ref); ok {
			return c.callType(ref, f, args)
		}
	}

	if t, ok := c.types[ref.Key()]; ok {
		return t, nil
	}

	if ref.Output == "" && len(ref.Args) > 0 {
		if t, ok, err := c.builtinType(ref); ok {
			return t, err
		}
	}

	if ref.IsIdentifier() {
		if t, ok := c.types[expression.FeatureKey(expression.FeatureConstant, ref.Name)]; ok {
			return t, nil
		}
	}

	return tensor.Empty, nil
}

// Returns type of expression node
func (c *Context) TypeOf(n expression.Node) (tensor.Type, error) {
	switch n := n.(type) {
	case *expression.Number, *expression.StringLiteral:
		return tensor.Empty, nil
	case *expression.Reference:
		return c.Type(n)
	case *expression.Arithmetic:
		return c.joinTypes(n.Left, n.Right)
	case *expression.Comparison:
		return c.joinTypes(n.Left, n.Right)
	case *expression.Negate:
		return c.TypeOf(n.Operand)
	case *expression.Not:
		return c.TypeOf(n.Operand)
	case *expression.If:
		if _, err := c.TypeOf(n.Condition); err != nil {
			return tensor.Empty, err
		}
		t, err := c.TypeOf(n.True)
		if err != nil {
			return tensor.Empty, err
		}
		f, err := c.TypeOf(n.False)
		if err != nil {
			return tensor.Empty, err
		}
		g, ok := tensor.Generalize(t, f)
		if !ok {
			return tensor.Empty, ErrType("«%v»: branches of types %v and %v can not be generalized", n, t, f)
		}
		return g, nil
	}
	return tensor.Empty, ErrType("unsupported expression «%v»", n)
}

// Returns context with new call bindings, or c itself if both c and
// new bindings are empty
func (c *Context) WithBindings(bindings map[string]expression.Node) *Context {
	if len(bindings) == 0 && c.frame == nil {
		return c
	}
	d := *c
	d.frame = &frame{bindings: bindings, scope: c}
	return &d
}

// Returns declared function by name
func (c *Context) Function(name string) (*expression.Function, bool) {
	f, ok := c.functions[name]
	return f, ok
}

// Returns declared feature types
func (c *Context) Types() map[string]tensor.Type {
	return maps.Clone(c.types)
}

func (c *Context) simpleFeatureType(ref *expression.Reference) (tensor.Type, error) {
	arg, _ := ref.SimpleArgument()
	key := expression.FeatureKey(ref.Name, c.substitute(arg))
	if t, ok := c.types[key]; ok {
		return t, nil
	}
	if ref.Name == expression.FeatureQuery {
		return tensor.Empty, nil
	}
	return tensor.Empty, ErrUnknownFeature(key)
}

// Substitutes argument name through bindings of enclosing calls
func (c *Context) substitute(name string) string {
	if c.frame == nil {
		return name
	}
	switch actual := c.frame.bindings[name].(type) {
	case *expression.Reference:
		if actual.IsIdentifier() {
			return c.frame.scope.substitute(actual.Name)
		}
	case *expression.StringLiteral:
		return actual.Value
	}
	return name
}

// Returns called function and actual arguments for function call
// `f(args)` or `rankingExpression(f)`
func (c *Context) function(ref *expression.Reference) (*expression.Function, []expression.Node, bool) {
	if ref.Name == expression.FeatureRankingExpression {
		if name, ok := ref.SimpleArgument(); ok {
			f, ok := c.functions[name]
			return f, nil, ok
		}
	}
	f, ok := c.functions[ref.Name]
	return f, ref.Args, ok
}

func (c *Context) callType(ref *expression.Reference, f *expression.Function, args []expression.Node) (tensor.Type, error) {
	for _, p := range c.path {
		if p == f.Name {
			return tensor.Empty, ErrInvocationLoop(c.path, f.Name)
		}
	}

	key := ref.String()
	if c.frame == nil {
		if t, ok := c.memo.Get(key); ok {
			return t, nil
		}
	}

	bindings := make(map[string]expression.Node, len(args))
	for i, formal := range f.Arguments {
		if i < len(args) {
			bindings[formal] = args[i]
		}
	}
	callee := c.WithBindings(bindings)
	if callee == c {
		d := *c
		callee = &d
	}
	callee.path = append(append(make([]string, 0, len(c.path)+1), c.path...), f.Name)

	if f.Body == nil || f.Body.Root() == nil {
		return tensor.Empty, ErrType("function «%s» has no body", f.Name)
	}
	t, err := callee.TypeOf(f.Body.Root())
	if err != nil {
		return tensor.Empty, err
	}
	if f.ReturnType != nil {
		if _, ok := tensor.Generalize(t, *f.ReturnType); !ok {
			return tensor.Empty, ErrType("function «%s» returns %v, declared %v", f.Name, t, *f.ReturnType)
		}
		t = *f.ReturnType
	}

	if c.frame == nil {
		c.memo.Add(key, t)
	}
	return t, nil
}

func (c *Context) joinTypes(a, b expression.Node) (tensor.Type, error) {
	ta, err := c.TypeOf(a)
	if err != nil {
		return tensor.Empty, err
	}
	tb, err := c.TypeOf(b)
	if err != nil {
		return tensor.Empty, err
	}
	t, err := tensor.Join(ta, tb)
	if err != nil {
		return tensor.Empty, ErrType("«%v %v»: %v", a, b, err)
	}
	return t, nil
}

// Returns type of builtin function call. Returns false if ref is not a builtin
func (c *Context) builtinType(ref *expression.Reference) (t tensor.Type, ok bool, err error) {
	name, args := ref.Name, ref.Args
	switch {
	case unaryFunctions[name]:
		t, err = c.TypeOf(args[0])
		return t, true, err
	case joinFunctions[name] && len(args) == 2:
		t, err = c.joinTypes(args[0], args[1])
		return t, true, err
	case name == functionMax || name == functionMin:
		if len(args) != 2 {
			return tensor.Empty, true, ErrType("«%v»: two arguments expected", ref)
		}
		a, err := c.TypeOf(args[0])
		if err != nil {
			return tensor.Empty, true, err
		}
		if dim, ok := identifier(args[1]); ok {
			if _, isDim := a.Dimension(dim); isDim {
				t, err = c.reduce(ref, a, dim)
				return t, true, err
			}
		}
		t, err = c.joinTypes(args[0], args[1])
		return t, true, err
	case reduceFunctions[name], name == functionReduce:
		dimArgs := args[1:]
		if name == functionReduce {
			if len(args) < 2 {
				return tensor.Empty, true, ErrType("«%v»: aggregator expected", ref)
			}
			dimArgs = args[2:]
		}
		a, err := c.TypeOf(args[0])
		if err != nil {
			return tensor.Empty, true, err
		}
		t, err = c.reduceOver(ref, a, dimArgs)
		return t, true, err
	case joinReduceFunctions[name]:
		if len(args) != 3 {
			return tensor.Empty, true, ErrType("«%v»: three arguments expected", ref)
		}
		j, err := c.joinTypes(args[0], args[1])
		if err != nil {
			return tensor.Empty, true, err
		}
		t, err = c.reduceOver(ref, j, args[2:])
		return t, true, err
	case name == functionXWPlusB:
		if len(args) != 4 {
			return tensor.Empty, true, ErrType("«%v»: four arguments expected", ref)
		}
		j, err := c.joinTypes(args[0], args[1])
		if err != nil {
			return tensor.Empty, true, err
		}
		r, err := c.reduceOver(ref, j, args[3:])
		if err != nil {
			return tensor.Empty, true, err
		}
		b, err := c.TypeOf(args[2])
		if err != nil {
			return tensor.Empty, true, err
		}
		t, err = tensor.Join(r, b)
		if err != nil {
			return tensor.Empty, true, ErrType("«%v»: %v", ref, err)
		}
		return t, true, nil
	}
	return tensor.Empty, false, nil
}

// Reduces type over dimensions named by identifier arguments
func (c *Context) reduceOver(ref *expression.Reference, t tensor.Type, dimArgs []expression.Node) (tensor.Type, error) {
	dims := make([]string, 0, len(dimArgs))
	for _, d := range dimArgs {
		name, ok := identifier(d)
		if !ok {
			return tensor.Empty, ErrType("«%v»: dimension name expected, got «%v»", ref, d)
		}
		dims = append(dims, name)
	}
	return c.reduce(ref, t, dims...)
}

func (c *Context) reduce(ref *expression.Reference, t tensor.Type, dims ...string) (tensor.Type, error) {
	r, err := tensor.Reduce(t, dims...)
	if err != nil {
		return tensor.Empty, ErrType("«%v»: %v", ref, err)
	}
	return r, nil
}

func identifier(n expression.Node) (string, bool) {
	if r, ok := n.(*expression.Reference); ok && r.IsIdentifier() {
		return r.Name, true
	}
	return "", false
}
