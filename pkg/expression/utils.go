/*
 * Copyright (c) 2026-present unTill Software Development Group B.V.
 */

package expression

import "strings"

func wrap(n Node, prec int) string {
	if n.precedence() < prec {
		return "(" + n.String() + ")"
	}
	return n.String()
}

// Returns feature key `name(arg1,arg2)`
func FeatureKey(name string, args ...string) string {
	if len(args) == 0 {
		return name
	}
	return name + "(" + strings.Join(args, ",") + ")"
}

// Returns `name(arg)` reference with identifier argument
func Simple(name, arg string) *Reference {
	return &Reference{Name: name, Args: []Node{&Reference{Name: arg}}}
}

// Transforms tree bottom-up: children first, then the node itself with new children.
func Transform(n Node, f func(Node) (Node, error)) (Node, error) {
	if children := n.Children(); len(children) > 0 {
		changed := make([]Node, len(children))
		for i, c := range children {
			t, err := Transform(c, f)
			if err != nil {
				return nil, err
			}
			changed[i] = t
		}
		n = n.WithChildren(changed)
	}
	return f(n)
}

// Visits nodes top-down. Children are skipped if visit returns false
func Walk(n Node, visit func(Node) bool) {
	if !visit(n) {
		return
	}
	for _, c := range n.Children() {
		Walk(c, visit)
	}
}
