/*
 * Copyright (c) 2026-present unTill Software Development Group B.V.
 */

package rankprofile

import (
	"github.com/voedger/searchschema/pkg/schema"
)

// Namespace of global profiles
const globalNamespace = ""

func NewRegistry() *Registry {
	return &Registry{profiles: map[string]map[string]*RankProfile{}}
}

// Adds profile to namespace of its schema.
//
// Builtin `default` and `unranked` profiles are replaced, other duplicates are errors.
func (r *Registry) Add(p *RankProfile) error {
	ns := p.SchemaName()
	profiles, ok := r.profiles[ns]
	if !ok {
		profiles = map[string]*RankProfile{}
		r.profiles[ns] = profiles
		r.namespaces = append(r.namespaces, ns)
	}
	p.registry = r
	if old, ok := profiles[p.name]; ok {
		if p.name != DefaultProfile && p.name != UnrankedProfile {
			return ErrDuplicateProfile(namespaceName(ns), p.name)
		}
		profiles[p.name] = p
		for i, q := range r.order {
			if q == old {
				r.order[i] = p
			}
		}
		r.reset()
		return nil
	}
	profiles[p.name] = p
	r.order = append(r.order, p)
	r.reset()
	return nil
}

// Adds builtin `default` and `unranked` profiles of schema, if they are not added yet
func (r *Registry) AddBuiltins(s *schema.Schema) error {
	if r.lookup(s.Name, DefaultProfile) == nil {
		if err := r.Add(New(DefaultProfile, s)); err != nil {
			return err
		}
	}
	if r.lookup(s.Name, UnrankedProfile) == nil {
		u := New(UnrankedProfile, s)
		if err := u.SetFirstPhase("0"); err != nil {
			return err
		}
		u.SetIgnoreDefaultRankFeatures(true)
		u.SetRerankCount(0)
		u.SetKeepRankCount(0)
		if err := r.Add(u); err != nil {
			return err
		}
	}
	return nil
}

// Returns profile of schema namespace, or global profile, or nil
func (r *Registry) Get(schemaName, name string) *RankProfile {
	if p := r.lookup(schemaName, name); p != nil {
		return p
	}
	return r.lookup(globalNamespace, name)
}

// Returns profile visible from schema: profile of schema itself, of its
// inherited document schemas depth-first, or global profile. Returns nil
// if not found. Nil schema resolves global profiles only
func (r *Registry) Resolve(s *schema.Schema, name string) *RankProfile {
	if s != nil {
		if p := r.lookup(s.Name, name); p != nil {
			return p
		}
		for _, a := range s.Ancestors() {
			if p := r.lookup(a.Name, name); p != nil {
				return p
			}
		}
	}
	return r.lookup(globalNamespace, name)
}

// Returns profiles of schema in order of addition. Nil schema means global profiles
func (r *Registry) Profiles(s *schema.Schema) []*RankProfile {
	ns := globalNamespace
	if s != nil {
		ns = s.Name
	}
	res := []*RankProfile{}
	for _, p := range r.order {
		if p.SchemaName() == ns {
			res = append(res, p)
		}
	}
	return res
}

// Returns all profiles in order of addition
func (r *Registry) All() []*RankProfile {
	return append([]*RankProfile(nil), r.order...)
}

// Returns profile of namespace exactly
func (r *Registry) lookup(ns, name string) *RankProfile {
	return r.profiles[ns][name]
}

// Drops resolved inheritance of all profiles, since added profile may change it
func (r *Registry) reset() {
	for _, p := range r.order {
		p.parentResolved, p.parent, p.parentErr = false, nil, nil
	}
}

func namespaceName(ns string) string {
	if ns == globalNamespace {
		return "global"
	}
	return ns
}
