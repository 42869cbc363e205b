/*
 * Copyright (c) 2026-present unTill Software Development Group B.V.
 */

package rankprofile

import "github.com/voedger/searchschema/pkg/expression"

// Rewrites ranking expressions while profile is compiled.
//
// Transforms are applied in order to each expression. Transform may add
// functions and rank properties through the context.
type Transform interface {
	Transform(n expression.Node, ctx *TransformContext) (expression.Node, error)
}
