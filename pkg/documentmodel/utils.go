/*
 * Copyright (c) 2026-present unTill Software Development Group B.V.
 */

package documentmodel

import (
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Returns stable type id derived from name
func TypeID(name string) int32 {
	if id, ok := builtinIDs[name]; ok {
		return id
	}
	return int32(xxhash.Sum64String(name))
}

func (k Kind) String() string {
	if k < Kind_count {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

func isPrimitive(name string) bool {
	return slices.Contains(primitives, name)
}

// Formats `name: [missing, ...]` pairs sorted by name
func formatUnresolved(unresolved map[string][]string) string {
	names := maps.Keys(unresolved)
	slices.Sort(names)
	s := make([]string, 0, len(names))
	for _, n := range names {
		missing := slices.Clone(unresolved[n])
		slices.Sort(missing)
		missing = slices.Compact(missing)
		s = append(s, "«"+n+"» needs «"+strings.Join(missing, "», «")+"»")
	}
	return strings.Join(s, "; ")
}
