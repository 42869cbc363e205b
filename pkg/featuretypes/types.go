/*
 * Copyright (c) 2026-present unTill Software Development Group B.V.
 */

package featuretypes

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/voedger/searchschema/pkg/expression"
	"github.com/voedger/searchschema/pkg/tensor"
)

// Collects feature types and functions to build Context
type Builder struct {
	types     map[string]tensor.Type
	functions map[string]*expression.Function
	memoSize  int
}

// Types of ranking features.
//
// Context is immutable. Contexts derived by WithBindings share the types,
// functions and memo of function call types with their origin.
type Context struct {
	types     map[string]tensor.Type
	functions map[string]*expression.Function

	// Bindings of innermost function call, nil at top level
	frame *frame

	// Names of functions being typed, outermost first
	path []string

	memo *lru.Cache[string, tensor.Type]
}

// Formal to actual argument substitution of a function call
type frame struct {
	bindings map[string]expression.Node

	// Context of the caller, actual arguments are typed in it
	scope *Context
}
