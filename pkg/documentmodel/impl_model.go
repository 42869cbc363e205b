/*
 * Copyright (c) 2026-present unTill Software Development Group B.V.
 */

package documentmodel

func newType(kind Kind, name string, id int32, owner string) *Type {
	return &Type{kind: kind, name: name, id: id, owner: owner, nested: noSlot, key: noSlot, value: noSlot}
}

// Returns model with builtin types registered
func newModel() *Model {
	m := &Model{
		byName:      map[string]int{},
		byID:        map[int32]int{},
		placeholder: map[string]int{},
	}
	for _, p := range primitives {
		m.register(m.add(newType(Kind_Primitive, p, TypeID(p), "")))
	}

	position := newType(Kind_Struct, TypePosition, TypeID(TypePosition), "")
	position.fields = []field{
		{name: positionX, slot: m.byName[TypeInt]},
		{name: positionY, slot: m.byName[TypeInt]},
	}
	m.register(m.add(position))

	m.register(m.add(newType(Kind_Document, TypeDocument, TypeID(TypeDocument), "")))
	return m
}

// Appends type to arena, returns its slot
func (m *Model) add(t *Type) int {
	t.m = m
	t.slot = len(m.types)
	m.types = append(m.types, t)
	return t.slot
}

// Indexes named type by name and id. First registered wins
func (m *Model) register(slot int) {
	t := m.types[slot]
	if _, ok := m.byName[t.name]; !ok {
		m.byName[t.name] = slot
	}
	if _, ok := m.byID[t.id]; !ok {
		m.byID[t.id] = slot
	}
}

// Returns slot of composite type with canonical name, creating it if needed
func (m *Model) composite(kind Kind, name string, init func(*Type)) int {
	if s, ok := m.byName[name]; ok {
		return s
	}
	t := newType(kind, name, 0, "")
	init(t)
	s := m.add(t)
	m.byName[name] = s
	return s
}

// Returns slot of placeholder for name, creating it if needed
func (m *Model) placeholderSlot(name string) int {
	if s, ok := m.placeholder[name]; ok {
		return s
	}
	s := m.add(newType(Kind_Placeholder, name, 0, ""))
	m.placeholder[name] = s
	return s
}

// Returns names of types registered before any schema
func (m *Model) builtinNames() []string {
	names := make([]string, 0, len(m.types))
	for _, t := range m.types {
		names = append(names, t.name)
	}
	return names
}

// Returns slots of all types referenced by type
func (t *Type) handles() []int {
	res := make([]int, 0, len(t.inherits)+len(t.fields)+3)
	for _, s := range []int{t.nested, t.key, t.value} {
		if s != noSlot {
			res = append(res, s)
		}
	}
	res = append(res, t.inherits...)
	for _, f := range t.fields {
		res = append(res, f.slot)
	}
	return res
}
