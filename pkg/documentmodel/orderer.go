/*
 * Copyright (c) 2026-present unTill Software Development Group B.V.
 */

package documentmodel

import (
	"fmt"

	"github.com/untillpro/goutils/logger"
)

type orderer struct {
	index   map[string]*TypeNode
	nodes   []*TypeNode
	ordered map[string]bool

	resolving map[string]bool
	ready     []*TypeNode

	state map[*TypeNode]visitState
	order []*TypeNode
}

type visitState uint8

const (
	visitState_none visitState = iota
	visitState_inProgress
	visitState_done
)

// Orders document and struct types so that every type follows the types it
// inherits and the types its fields use. Nested structs and annotation payloads
// of given nodes are ordered too.
//
// Known names (builtins) are treated as already ordered.
// Returns error if some inheritance can not be resolved.
func OrderTypes(nodes []*TypeNode, known ...string) ([]*TypeNode, error) {
	o := &orderer{
		index:     map[string]*TypeNode{},
		ordered:   map[string]bool{},
		resolving: map[string]bool{},
		state:     map[*TypeNode]visitState{},
	}
	for _, k := range known {
		o.ordered[k] = true
	}
	for _, n := range nodes {
		o.add(n)
	}

	if err := o.resolveInheritance(); err != nil {
		return nil, err
	}

	for _, n := range o.ready {
		o.visit(n)
	}
	return o.order, nil
}

func (o *orderer) add(n *TypeNode) {
	if prev, ok := o.index[n.Name]; ok {
		if len(prev.Fields) == 0 && len(n.Fields) > 0 {
			o.index[n.Name] = n
			for i, p := range o.nodes {
				if p == prev {
					o.nodes[i] = n
				}
			}
		}
	} else {
		o.index[n.Name] = n
		o.nodes = append(o.nodes, n)
	}
	for _, s := range n.Structs {
		o.add(s)
	}
	for _, a := range n.Annotations {
		if a.Payload != nil && a.Payload.Name != "" {
			o.add(a.Payload)
		}
	}
}

// Extracts nodes with ordered parents until nothing left or a pass makes no progress
func (o *orderer) resolveInheritance() error {
	remaining := o.nodes
	for len(remaining) > 0 {
		next := make([]*TypeNode, 0, len(remaining))
		for _, n := range remaining {
			if !o.resolve(n) {
				next = append(next, n)
			}
		}
		if len(next) == len(remaining) {
			unresolved := map[string][]string{}
			for _, n := range next {
				for _, p := range n.InheritedNames() {
					if !o.ordered[p] {
						unresolved[n.Name] = append(unresolved[n.Name], p)
					}
				}
			}
			return ErrNoProgress("can not resolve inheritance", unresolved)
		}
		remaining = next
	}
	return nil
}

// Orders node if all its parents are ordered, resolving unordered parents by name first
func (o *orderer) resolve(n *TypeNode) bool {
	if o.ordered[n.Name] {
		return true
	}
	if o.resolving[n.Name] {
		return false
	}
	o.resolving[n.Name] = true
	defer delete(o.resolving, n.Name)

	for _, t := range n.Inherits {
		if o.ordered[t.Name] {
			continue
		}
		p, ok := o.index[t.Name]
		if !ok || !o.resolve(p) {
			return false
		}
	}
	o.ordered[n.Name] = true
	o.ready = append(o.ready, n)
	return true
}

// Postorder walk. Returns false if node can not be placed yet because
// one of its parents is being visited
func (o *orderer) visit(n *TypeNode) bool {
	switch o.state[n] {
	case visitState_done:
		return true
	case visitState_inProgress:
		return false
	}
	o.state[n] = visitState_inProgress

	for _, t := range n.Inherits {
		if p, ok := o.index[t.Name]; ok && !o.visit(p) {
			o.state[n] = visitState_none
			return false
		}
	}
	for _, s := range n.Structs {
		o.visit(o.index[s.Name])
	}
	for _, a := range n.Annotations {
		if p, ok := o.index[a.payloadName()]; ok {
			o.visit(p)
		}
	}
	for _, f := range n.Fields {
		o.walk(f.Type)
	}

	o.state[n] = visitState_done
	o.order = append(o.order, n)
	return true
}

func (o *orderer) walk(t *DataType) {
	switch t.Kind {
	case Kind_Struct, Kind_Document, Kind_Placeholder:
		if n, ok := o.index[t.Name]; ok {
			o.visit(n)
		}
	case Kind_Array, Kind_WeightedSet, Kind_Reference:
		o.walk(t.Nested)
	case Kind_Map:
		o.walk(t.Key)
		o.walk(t.Value)
	case Kind_Primitive, Kind_Tensor, Kind_AnnotationRef:
	default:
		logger.Warning(fmt.Sprintf("unknown kind of type «%v»: %v", t, t.Kind))
	}
}
