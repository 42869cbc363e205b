/*
 * Copyright (c) 2026-present unTill Software Development Group B.V.
 */

package documentmodel

import (
	"github.com/voedger/searchschema/pkg/tensor"
)

// Canonical type of the model.
//
// Types reference each other by arena slots, so replacing the content
// of a slot is visible through every handle to it.
type Type struct {
	m    *Model
	slot int

	kind   Kind
	name   string
	id     int32
	tensor tensor.Type
	owner  string

	nested, key, value int
	inherits           []int
	fields             []field
}

type field struct {
	name string
	slot int
}

// Field of document or struct type
type Field struct {
	Name string
	Type *Type
}

func (t *Type) Kind() Kind { return t.kind }

// Returns canonical name, like `music`, `int` or `array<S>`
func (t *Type) Name() string { return t.name }

func (t *Type) ID() int32 { return t.id }

// Returns tensor type for Kind_Tensor
func (t *Type) Tensor() tensor.Type { return t.tensor }

// Returns name of schema declared the type. Empty for builtins and composites
func (t *Type) Owner() string { return t.owner }

func (t *Type) IsPlaceholder() bool { return t.kind == Kind_Placeholder }

// Returns element type of array or weighted set, target of reference or annotation
// reference, payload struct of annotation. Returns nil if none
func (t *Type) Nested() *Type { return t.m.slotType(t.nested) }

func (t *Type) Key() *Type { return t.m.slotType(t.key) }

func (t *Type) Value() *Type { return t.m.slotType(t.value) }

// Returns payload struct of annotation or nil
func (t *Type) Payload() *Type {
	if t.kind != Kind_Annotation {
		return nil
	}
	return t.Nested()
}

// Returns directly inherited types
func (t *Type) Inherits() []*Type {
	res := make([]*Type, len(t.inherits))
	for i, s := range t.inherits {
		res[i] = t.m.types[s]
	}
	return res
}

// Returns true if type is t or inherits t transitively
func (t *Type) IsA(other *Type) bool {
	if t == other {
		return true
	}
	for _, p := range t.Inherits() {
		if p.IsA(other) {
			return true
		}
	}
	return false
}

// Returns own fields in declaration order
func (t *Type) Fields() []Field {
	res := make([]Field, len(t.fields))
	for i, f := range t.fields {
		res[i] = Field{Name: f.name, Type: t.m.types[f.slot]}
	}
	return res
}

// Returns inherited fields followed by own fields. Redeclared fields are listed once
func (t *Type) AllFields() []Field {
	res := []Field{}
	seen := map[string]bool{}
	var collect func(*Type)
	collect = func(t *Type) {
		for _, p := range t.Inherits() {
			collect(p)
		}
		for _, f := range t.Fields() {
			if !seen[f.Name] {
				seen[f.Name] = true
				res = append(res, f)
			}
		}
	}
	collect(t)
	return res
}

// Returns field by name, inherited fields included
func (t *Type) Field(name string) (Field, bool) {
	for _, f := range t.AllFields() {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

func (t *Type) String() string {
	switch t.kind {
	case Kind_Document, Kind_Struct, Kind_Annotation:
		return t.kind.String() + " " + t.name
	}
	return t.name
}

// Placeholder replaced by concrete type during build
type Substitution struct {
	Old, New *Type
}

// Canonical, deduplicated type registry.
//
// Model is frozen once built and safe for concurrent reads.
type Model struct {
	types []*Type

	byName      map[string]int
	byID        map[int32]int
	placeholder map[string]int

	documents     []int
	structs       []int
	annotations   []int
	substitutions []Substitution
}

// Returns concrete type by canonical name or nil
func (m *Model) Type(name string) *Type {
	if s, ok := m.byName[name]; ok {
		return m.types[s]
	}
	return nil
}

// Returns struct, document, annotation or builtin type by id or nil
func (m *Model) TypeByID(id int32) *Type {
	if s, ok := m.byID[id]; ok {
		return m.types[s]
	}
	return nil
}

// Returns document type by name or nil
func (m *Model) Document(name string) *Type {
	if t := m.Type(name); t != nil && t.kind == Kind_Document {
		return t
	}
	return nil
}

// Returns documents in build order. Root `document` is not listed
func (m *Model) Documents() []*Type { return m.slotTypes(m.documents) }

// Returns registered structs in registration order
func (m *Model) Structs() []*Type { return m.slotTypes(m.structs) }

// Returns registered annotations in registration order
func (m *Model) Annotations() []*Type { return m.slotTypes(m.annotations) }

// Returns annotation by name or nil
func (m *Model) Annotation(name string) *Type {
	if t := m.Type(name); t != nil && t.kind == Kind_Annotation {
		return t
	}
	return nil
}

// Returns all concrete types in registration order
func (m *Model) Types() []*Type {
	res := make([]*Type, 0, len(m.types))
	for _, t := range m.types {
		if !t.IsPlaceholder() {
			res = append(res, t)
		}
	}
	return res
}

// Returns placeholders replaced during build
func (m *Model) Substitutions() []Substitution { return m.substitutions }

func (m *Model) slotType(s int) *Type {
	if s == noSlot {
		return nil
	}
	return m.types[s]
}

func (m *Model) slotTypes(slots []int) []*Type {
	res := make([]*Type, len(slots))
	for i, s := range slots {
		res[i] = m.types[s]
	}
	return res
}
