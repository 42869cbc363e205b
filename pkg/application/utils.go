/*
 * Copyright (c) 2026-present unTill Software Development Group B.V.
 */

package application

import (
	"github.com/voedger/searchschema/pkg/rankprofile"
	"github.com/voedger/searchschema/pkg/schema"
)

// Returns schema by name or nil
func (a *Application) Schema(name string) *schema.Schema {
	for _, s := range a.Schemas {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// Returns compiled profile of schema, or global compiled profile if schema name is empty.
// Returns nil if not found
func (a *Application) Profile(schemaName, name string) *rankprofile.Compiled {
	for _, c := range a.Compiled {
		if c.Schema == schemaName && c.Name == name {
			return c
		}
	}
	return nil
}
