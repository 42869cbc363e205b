/*
 * Copyright (c) 2026-present unTill Software Development Group B.V.
 */

package queryprofile

import "github.com/voedger/searchschema/pkg/tensor"

// Query profile type: declared query parameters with types
type Type struct {
	Name   string
	Fields []Field
}

// Declared query parameter.
//
// Name `query(x)` or `ranking.features.query(x)` declares query feature `x`
type Field struct {
	Name string
	Type tensor.Type
}

// Query profile types by name
type Registry struct {
	types  []*Type
	byName map[string]*Type
}
