/*
 * Copyright (c) 2026-present unTill Software Development Group B.V.
 */

package rankprofile

import (
	"math"

	"golang.org/x/exp/slices"

	"github.com/voedger/searchschema/pkg/expression"
)

// Returns transforms applied to profiles by default: inlining, constants
// dereferencing and simplification
func DefaultTransforms() []Transform {
	return []Transform{FunctionInliner{}, ConstantDereferencer{}, Simplifier{}}
}

// Replaces calls of inline functions with their bodies
type FunctionInliner struct{}

func (FunctionInliner) Transform(n expression.Node, ctx *TransformContext) (expression.Node, error) {
	return inline(n, ctx, nil)
}

func inline(n expression.Node, ctx *TransformContext, path []string) (expression.Node, error) {
	return expression.Transform(n, func(n expression.Node) (expression.Node, error) {
		ref, ok := n.(*expression.Reference)
		if !ok || ref.Output != "" {
			return n, nil
		}
		f, ok := ctx.Inline(ref.Name)
		if !ok {
			return n, nil
		}
		if slices.Contains(path, f.Name) {
			return nil, ErrTransform("inline function «%s» calls itself through %v", f.Name, path)
		}
		bindings := map[string]expression.Node{}
		for i, formal := range f.Arguments {
			if i < len(ref.Args) {
				bindings[formal] = ref.Args[i]
			}
		}
		body, err := bind(f.Body.Root(), bindings)
		if err != nil {
			return nil, err
		}
		return inline(body, ctx, append(slices.Clone(path), f.Name))
	})
}

// Replaces formal argument identifiers with actual arguments
func bind(n expression.Node, bindings map[string]expression.Node) (expression.Node, error) {
	if len(bindings) == 0 {
		return n, nil
	}
	return expression.Transform(n, func(n expression.Node) (expression.Node, error) {
		if ref, ok := n.(*expression.Reference); ok && ref.IsIdentifier() {
			if actual, ok := bindings[ref.Name]; ok {
				return actual, nil
			}
		}
		return n, nil
	})
}

// Replaces scalar constants with their values. Tensor constants are
// referenced as `constant(name)` and their types are emitted as rank
// properties `constant(name).type`
type ConstantDereferencer struct{}

func (ConstantDereferencer) Transform(n expression.Node, ctx *TransformContext) (expression.Node, error) {
	return dereference(n, ctx), nil
}

// Arguments of simple features are names, they are not dereferenced
func dereference(n expression.Node, ctx *TransformContext) expression.Node {
	if ref, ok := n.(*expression.Reference); ok {
		switch {
		case ref.IsSimpleFeature():
			if ref.Name != expression.FeatureConstant {
				return n
			}
			name, _ := ref.SimpleArgument()
			return constantValue(n, name, ctx)
		case ref.IsIdentifier():
			if ctx.IsArgument(ref.Name) {
				return n
			}
			return constantValue(n, ref.Name, ctx)
		}
	}
	children := n.Children()
	if len(children) == 0 {
		return n
	}
	changed := make([]expression.Node, len(children))
	for i, c := range children {
		changed[i] = dereference(c, ctx)
	}
	return n.WithChildren(changed)
}

func constantValue(n expression.Node, name string, ctx *TransformContext) expression.Node {
	c, ok := ctx.Constant(name)
	if !ok {
		return n
	}
	if c.Type.IsScalar() && c.Value != nil {
		return &expression.Number{Value: *c.Value}
	}
	key := expression.FeatureKey(expression.FeatureConstant, name)
	ctx.AddRankProperty(key+constantTypeProperty, c.Type.String())
	return expression.Simple(expression.FeatureConstant, name)
}

// Folds operations on numbers and conditionals with constant conditions
type Simplifier struct{}

func (Simplifier) Transform(n expression.Node, _ *TransformContext) (expression.Node, error) {
	return expression.Transform(n, func(n expression.Node) (expression.Node, error) {
		switch n := n.(type) {
		case *expression.Arithmetic:
			if l, r, ok := numbers(n.Left, n.Right); ok {
				if v, ok := arithmetic(n.Op, l, r); ok {
					return &expression.Number{Value: v}, nil
				}
			}
		case *expression.Comparison:
			if l, r, ok := numbers(n.Left, n.Right); ok {
				return &expression.Number{Value: boolValue(compare(n.Op, l, r))}, nil
			}
		case *expression.Negate:
			if v, ok := n.Operand.(*expression.Number); ok {
				return &expression.Number{Value: -v.Value}, nil
			}
		case *expression.Not:
			if v, ok := n.Operand.(*expression.Number); ok {
				return &expression.Number{Value: boolValue(v.Value == 0)}, nil
			}
		case *expression.If:
			if v, ok := n.Condition.(*expression.Number); ok {
				if v.Value != 0 {
					return n.True, nil
				}
				return n.False, nil
			}
		}
		return n, nil
	})
}

func numbers(a, b expression.Node) (float64, float64, bool) {
	l, ok := a.(*expression.Number)
	if !ok {
		return 0, 0, false
	}
	r, ok := b.(*expression.Number)
	if !ok {
		return 0, 0, false
	}
	return l.Value, r.Value, true
}

// Returns false if result is not finite, such operations are left as is
func arithmetic(op expression.ArithmeticOp, l, r float64) (float64, bool) {
	var v float64
	switch op {
	case expression.ArithmeticOp_Or:
		v = boolValue(l != 0 || r != 0)
	case expression.ArithmeticOp_And:
		v = boolValue(l != 0 && r != 0)
	case expression.ArithmeticOp_Add:
		v = l + r
	case expression.ArithmeticOp_Sub:
		v = l - r
	case expression.ArithmeticOp_Mul:
		v = l * r
	case expression.ArithmeticOp_Div:
		v = l / r
	case expression.ArithmeticOp_Mod:
		v = math.Mod(l, r)
	case expression.ArithmeticOp_Pow:
		v = math.Pow(l, r)
	default:
		return 0, false
	}
	return v, !math.IsNaN(v) && !math.IsInf(v, 0)
}

func compare(op expression.ComparisonOp, l, r float64) bool {
	switch op {
	case expression.ComparisonOp_Eq:
		return l == r
	case expression.ComparisonOp_NotEq:
		return l != r
	case expression.ComparisonOp_Less:
		return l < r
	case expression.ComparisonOp_LessEq:
		return l <= r
	case expression.ComparisonOp_Greater:
		return l > r
	case expression.ComparisonOp_GreaterEq:
		return l >= r
	}
	// approximate equality
	return math.Abs(l-r) <= 1e-6*math.Max(math.Abs(l), math.Abs(r))
}

func boolValue(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
