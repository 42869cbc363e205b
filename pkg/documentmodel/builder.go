/*
 * Copyright (c) 2026-present unTill Software Development Group B.V.
 */

package documentmodel

import (
	"fmt"

	"github.com/untillpro/goutils/logger"
	"golang.org/x/exp/slices"
)

type builder struct {
	m *Model

	// Names of all input documents
	docs map[string]bool
}

// Builds canonical type model from document types of schemas.
//
// Schemas are converted in dependency order. A schema which refers to
// annotations or parents not converted yet is deferred to the next pass.
// Placeholders are replaced by concrete types once all schemas are converted.
func Build(schemas []Schema) (*Model, error) {
	b := &builder{m: newModel(), docs: map[string]bool{}}

	names := map[string]bool{}
	nodes := make([]*TypeNode, 0, len(schemas))
	for _, s := range schemas {
		if names[s.Name] {
			return nil, ErrDuplicateSchema(s.Name)
		}
		names[s.Name] = true
		if s.Document != nil {
			b.docs[s.Document.Name] = true
			nodes = append(nodes, s.Document)
		}
	}

	order, err := OrderTypes(nodes, b.m.builtinNames()...)
	if err != nil {
		return nil, err
	}

	pending := make([]Schema, 0, len(schemas))
	for _, s := range schemas {
		if s.Document != nil {
			pending = append(pending, s)
		}
	}
	pos := make(map[*TypeNode]int, len(order))
	for i, n := range order {
		pos[n] = i
	}
	slices.SortStableFunc(pending, func(a, b Schema) bool {
		return pos[a.Document] < pos[b.Document]
	})

	if err := b.convert(pending); err != nil {
		return nil, err
	}
	if err := b.substitute(); err != nil {
		return nil, err
	}
	if err := b.propagatePayloads(); err != nil {
		return nil, err
	}
	return b.m, nil
}

// Converts schemas pass by pass. Each pass converts every schema whose
// forward references are satisfied; a pass converting nothing is an error
func (b *builder) convert(pending []Schema) error {
	for pass := 1; len(pending) > 0; pass++ {
		deferred := make([]Schema, 0)
		missing := map[string][]string{}
		for _, s := range pending {
			miss, err := b.check(s)
			if err != nil {
				return err
			}
			if len(miss) > 0 {
				deferred = append(deferred, s)
				missing[s.Name] = miss
				continue
			}
			b.commit(s)
		}
		if len(deferred) == len(pending) {
			return ErrNoProgress("can not convert schemas", missing)
		}
		if len(deferred) > 0 && logger.IsVerbose() {
			logger.Verbose(fmt.Sprintf("pass %d: %d schema(s) deferred: %s", pass, len(deferred), formatUnresolved(missing)))
		}
		pending = deferred
	}
	return nil
}

// Checks schema can be converted now. Returns names of missed types if
// conversion should be deferred, or error if schema can never be converted
func (b *builder) check(s Schema) (missing []string, err error) {
	doc := s.Document
	if t := b.m.Type(doc.Name); t != nil {
		return nil, ErrDuplicateType(doc.Name, s.Name)
	}

	for _, p := range doc.InheritedNames() {
		if t := b.m.Type(p); t == nil || t.kind != Kind_Document {
			missing = append(missing, p)
		}
	}

	annotations := map[string]bool{}
	for _, a := range b.m.Annotations() {
		annotations[a.name] = true
	}
	for _, a := range doc.Annotations {
		annotations[a.Name] = true
	}
	for _, a := range doc.Annotations {
		for _, p := range a.Inherits {
			if !annotations[p] {
				missing = append(missing, p)
			}
		}
	}

	checkRefs := func(n *TypeNode) {
		for _, f := range n.Fields {
			walkDataType(f.Type, func(t *DataType) bool {
				if t.Kind == Kind_AnnotationRef && !annotations[t.Nested.Name] {
					missing = append(missing, t.Nested.Name)
				}
				return true
			})
		}
	}
	checkRefs(doc)

	for _, st := range doc.Structs {
		if st.Document {
			return nil, ErrStructural("document «%s» can not be nested in document «%s»", st.Name, doc.Name)
		}
		if err := b.checkStruct(st); err != nil {
			return nil, err
		}
		checkRefs(st)
	}
	for _, a := range doc.Annotations {
		if a.Payload != nil {
			if err := b.checkStruct(a.Payload); err != nil {
				return nil, err
			}
			checkRefs(a.Payload)
		}
	}
	return missing, nil
}

// Checks struct does not contain documents
func (b *builder) checkStruct(st *TypeNode) (err error) {
	for _, n := range st.Structs {
		if n.Document {
			return ErrStructural("document «%s» can not be nested in struct «%s»", n.Name, st.Name)
		}
		if err := b.checkStruct(n); err != nil {
			return err
		}
	}
	for _, f := range st.Fields {
		walkDataType(f.Type, func(t *DataType) bool {
			if t.Kind == Kind_Reference {
				return false
			}
			if err == nil && b.docs[t.Name] && (t.Kind == Kind_Placeholder || t.Kind == Kind_Document) {
				err = ErrNestedDocument(st.Name, f.Name, t.Name)
			}
			return err == nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// Converts checked schema
func (b *builder) commit(s Schema) {
	m := b.m
	doc := s.Document

	docSlot := m.add(newType(Kind_Document, doc.Name, doc.typeID(), s.Name))
	m.register(docSlot)
	m.documents = append(m.documents, docSlot)

	type pending struct {
		slot int
		node *TypeNode
	}
	structs := []pending{}
	var registerStructs func(nodes []*TypeNode)
	registerStructs = func(nodes []*TypeNode) {
		for _, n := range nodes {
			if slot, fresh := b.registerStruct(n, n.Name, s.Name); fresh {
				structs = append(structs, pending{slot, n})
			}
			registerStructs(n.Structs)
		}
	}
	registerStructs(doc.Structs)

	type annotation struct {
		slot, payload int
		node          *AnnotationNode
	}
	annotations := []annotation{}
	for _, a := range doc.Annotations {
		slot, fresh := b.registerAnnotation(a, s.Name)
		if !fresh {
			continue
		}
		payload := noSlot
		if a.Payload != nil {
			ps, fresh := b.registerStruct(a.Payload, a.payloadName(), s.Name)
			if fresh {
				structs = append(structs, pending{ps, a.Payload})
			}
			payload = ps
		}
		annotations = append(annotations, annotation{slot, payload, a})
	}

	for _, p := range structs {
		b.fill(p.slot, p.node)
	}
	for _, a := range annotations {
		t := m.types[a.slot]
		for _, p := range a.node.Inherits {
			t.inherits = append(t.inherits, b.resolve(Placeholder(p)))
		}
		t.nested = a.payload
	}

	b.fill(docSlot, doc)
	if len(doc.Inherits) == 0 {
		m.types[docSlot].inherits = []int{m.byName[TypeDocument]}
	}
}

// Registers struct by id. Returns slot and true if struct content should be
// filled from given node: the struct is new, or it upgrades a registered empty
// struct of the same id
func (b *builder) registerStruct(n *TypeNode, name, owner string) (slot int, fresh bool) {
	m := b.m
	id := n.ID
	if id == 0 {
		id = TypeID(name)
	}
	if s, ok := m.byID[id]; ok {
		existing := m.types[s]
		if existing.kind == Kind_Struct && len(existing.fields) == 0 && len(n.Fields) > 0 {
			if logger.IsVerbose() {
				logger.Verbose(fmt.Sprintf("struct «%s» (id %d) upgraded by definition from schema «%s»", name, id, owner))
			}
			upgraded := newType(Kind_Struct, name, id, owner)
			upgraded.m, upgraded.slot = m, s
			*existing = *upgraded
			if _, ok := m.byName[name]; !ok {
				m.byName[name] = s
			}
			return s, true
		}
		return s, false
	}
	s := m.add(newType(Kind_Struct, name, id, owner))
	m.register(s)
	m.structs = append(m.structs, s)
	return s, true
}

// Registers annotation by id. First registered wins
func (b *builder) registerAnnotation(a *AnnotationNode, owner string) (slot int, fresh bool) {
	m := b.m
	id := a.typeID()
	if s, ok := m.byID[id]; ok {
		return s, false
	}
	s := m.add(newType(Kind_Annotation, a.Name, id, owner))
	m.register(s)
	m.annotations = append(m.annotations, s)
	return s, true
}

// Resolves inherited types and fields of node into slot
func (b *builder) fill(slot int, n *TypeNode) {
	t := b.m.types[slot]
	for _, p := range n.Inherits {
		t.inherits = append(t.inherits, b.resolve(p))
	}
	for _, f := range n.Fields {
		t.fields = append(t.fields, field{name: f.Name, slot: b.resolve(f.Type)})
	}
}

// Returns slot of data type. Unknown names resolve to placeholders,
// composites are deduplicated by canonical name
func (b *builder) resolve(dt *DataType) int {
	m := b.m
	switch dt.Kind {
	case Kind_Primitive, Kind_Struct, Kind_Document, Kind_Annotation, Kind_Placeholder:
		if s, ok := m.byName[dt.Name]; ok {
			return s
		}
		return m.placeholderSlot(dt.Name)
	case Kind_Tensor:
		return m.composite(dt.Kind, dt.String(), func(t *Type) { t.tensor = dt.Tensor })
	case Kind_Array, Kind_WeightedSet, Kind_Reference, Kind_AnnotationRef:
		nested := b.resolve(dt.Nested)
		return m.composite(dt.Kind, dt.String(), func(t *Type) { t.nested = nested })
	case Kind_Map:
		key, value := b.resolve(dt.Key), b.resolve(dt.Value)
		return m.composite(Kind_Map, dt.String(), func(t *Type) { t.key, t.value = key, value })
	}
	logger.Warning(fmt.Sprintf("unknown kind of type «%v»: %v", dt, dt.Kind))
	return m.placeholderSlot(dt.String())
}

// Replaces placeholders by concrete types of the same name.
// Returns error if some placeholder can not be replaced or a reference
// targets a type of wrong kind
func (b *builder) substitute() error {
	m := b.m
	replace := map[int]int{}
	for _, t := range m.types {
		if !t.IsPlaceholder() {
			continue
		}
		if s, ok := m.byName[t.name]; ok {
			replace[t.slot] = s
			m.substitutions = append(m.substitutions, Substitution{Old: t, New: m.types[s]})
			if logger.IsVerbose() {
				logger.Verbose(fmt.Sprintf("placeholder «%s» substituted by %v", t.name, m.types[s]))
			}
		}
	}

	rewrite := func(s *int) {
		if n, ok := replace[*s]; ok {
			*s = n
		}
	}
	unresolved := []string{}
	for _, t := range m.types {
		if t.IsPlaceholder() {
			continue
		}
		rewrite(&t.nested)
		rewrite(&t.key)
		rewrite(&t.value)
		for i := range t.inherits {
			rewrite(&t.inherits[i])
		}
		for i := range t.fields {
			rewrite(&t.fields[i].slot)
		}
		for _, s := range t.handles() {
			if m.types[s].IsPlaceholder() {
				unresolved = append(unresolved, m.types[s].name)
			}
		}
	}
	if len(unresolved) > 0 {
		slices.Sort(unresolved)
		return ErrUnresolvedTypes(slices.Compact(unresolved))
	}

	for _, t := range m.types {
		switch t.kind {
		case Kind_Reference:
			if t.Nested().kind != Kind_Document {
				return ErrNotDocument(t.name, t.Nested().name)
			}
		case Kind_AnnotationRef:
			if t.Nested().kind != Kind_Annotation {
				return ErrStructural("«%s»: «%s» is not an annotation", t.name, t.Nested().name)
			}
		}
	}
	return nil
}

// Gives annotations without own payload a derived payload struct
// inheriting payloads of their ancestors
func (b *builder) propagatePayloads() error {
	m := b.m
	state := map[int]visitState{}
	var payload func(t *Type) (int, error)
	payload = func(t *Type) (int, error) {
		switch state[t.slot] {
		case visitState_done:
			return t.nested, nil
		case visitState_inProgress:
			return noSlot, ErrStructural("annotation «%s» inherits itself", t.name)
		}
		state[t.slot] = visitState_inProgress
		defer func() { state[t.slot] = visitState_done }()

		parents := []int{}
		for _, p := range t.Inherits() {
			ps, err := payload(p)
			if err != nil {
				return noSlot, err
			}
			if ps != noSlot {
				parents = append(parents, ps)
			}
		}
		if t.nested != noSlot || len(parents) == 0 {
			return t.nested, nil
		}

		name := annotationPayloadPrefix + t.name
		s, ok := m.byName[name]
		if !ok {
			st := newType(Kind_Struct, name, TypeID(name), t.owner)
			st.inherits = parents
			s = m.add(st)
			m.register(s)
			m.structs = append(m.structs, s)
		}
		t.nested = s
		return s, nil
	}

	for _, t := range m.Annotations() {
		if _, err := payload(t); err != nil {
			return err
		}
	}
	return nil
}

// Walks data type tree, children of t are skipped if f returns false
func walkDataType(t *DataType, f func(*DataType) bool) {
	if t == nil || !f(t) {
		return
	}
	walkDataType(t.Nested, f)
	walkDataType(t.Key, f)
	walkDataType(t.Value, f)
}
