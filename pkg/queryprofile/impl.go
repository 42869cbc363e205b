/*
 * Copyright (c) 2026-present unTill Software Development Group B.V.
 */

package queryprofile

import (
	"strings"

	"github.com/voedger/searchschema/pkg/tensor"
)

func NewRegistry() *Registry {
	return &Registry{byName: map[string]*Type{}}
}

func (r *Registry) Add(t *Type) error {
	if _, ok := r.byName[t.Name]; ok {
		return ErrDuplicateType(t.Name)
	}
	r.byName[t.Name] = t
	r.types = append(r.types, t)
	return nil
}

// Returns type by name or nil
func (r *Registry) Type(name string) *Type { return r.byName[name] }

// Returns types in registration order
func (r *Registry) Types() []*Type { return r.types }

// Returns types of query features declared by all query profile types,
// keyed like `query(x)`. Features listed in skip are ignored.
//
// Same feature declared by several types gets the dimension-wise generalization
// of declared types. Returns error if declared types can not be generalized
func (r *Registry) Features(skip map[string]bool) (map[string]tensor.Type, error) {
	res := map[string]tensor.Type{}
	declaredBy := map[string]string{}
	for _, t := range r.types {
		for _, f := range t.Fields {
			feature, ok := FeatureName(f.Name)
			if !ok || skip[feature] {
				continue
			}
			prev, ok := res[feature]
			if !ok {
				res[feature] = f.Type
				declaredBy[feature] = t.Name
				continue
			}
			g, ok := tensor.DimensionwiseGeneralization(prev, f.Type)
			if !ok {
				return nil, ErrConflict(feature, declaredBy[feature], t.Name, prev, f.Type)
			}
			res[feature] = g
		}
	}
	return res, nil
}

// Returns query feature `query(x)` declared by field name
// `query(x)` or `ranking.features.query(x)`
func FeatureName(field string) (string, bool) {
	name := strings.TrimPrefix(field, rankingFeaturesPath)
	if strings.HasPrefix(name, featurePrefix) && strings.HasSuffix(name, ")") && len(name) > len(featurePrefix)+1 {
		return name, true
	}
	return "", false
}
