/*
 * Copyright (c) 2026-present unTill Software Development Group B.V.
 */

package documentmodel

import (
	"github.com/voedger/searchschema/pkg/tensor"
)

// Data type as declared in schema source.
//
// Named types not known at declaration are placeholders; they are
// replaced by concrete types while the model is built.
type DataType struct {
	Kind Kind

	// Name of primitive, struct, document, annotation or placeholder
	Name string

	// Tensor type, for Kind_Tensor
	Tensor tensor.Type

	// Element type of array and weighted set, target of reference and annotation reference
	Nested *DataType

	// Map key and value types
	Key, Value *DataType
}

func Primitive(name string) *DataType {
	return &DataType{Kind: Kind_Primitive, Name: name}
}

func Placeholder(name string) *DataType {
	return &DataType{Kind: Kind_Placeholder, Name: name}
}

func Tensor(t tensor.Type) *DataType {
	return &DataType{Kind: Kind_Tensor, Tensor: t}
}

func ArrayOf(t *DataType) *DataType {
	return &DataType{Kind: Kind_Array, Nested: t}
}

func WeightedSetOf(t *DataType) *DataType {
	return &DataType{Kind: Kind_WeightedSet, Nested: t}
}

func MapOf(key, value *DataType) *DataType {
	return &DataType{Kind: Kind_Map, Key: key, Value: value}
}

func ReferenceTo(doc string) *DataType {
	return &DataType{Kind: Kind_Reference, Nested: Placeholder(doc)}
}

func AnnotationRefTo(annotation string) *DataType {
	return &DataType{Kind: Kind_AnnotationRef, Nested: Placeholder(annotation)}
}

// Returns canonical type name, like `array<S>` or `map<string,int>`
func (t *DataType) String() string {
	switch t.Kind {
	case Kind_Tensor:
		return t.Tensor.String()
	case Kind_Array, Kind_WeightedSet, Kind_Reference, Kind_AnnotationRef:
		return t.Kind.String() + "<" + t.Nested.String() + ">"
	case Kind_Map:
		return "map<" + t.Key.String() + "," + t.Value.String() + ">"
	}
	return t.Name
}

// Returns true if type is a single value of primitive or tensor type
func (t *DataType) IsSingleValue() bool {
	return t.Kind == Kind_Primitive || t.Kind == Kind_Tensor
}

// Returns true if type is array or weighted set
func (t *DataType) IsCollection() bool {
	return t.Kind == Kind_Array || t.Kind == Kind_WeightedSet
}

// Returns true if type is numeric primitive or collection of numeric primitives
func (t *DataType) IsNumeric() bool {
	if t.IsCollection() {
		return t.Nested.IsNumeric()
	}
	if t.Kind != Kind_Primitive {
		return false
	}
	switch t.Name {
	case TypeInt, TypeLong, TypeFloat, TypeDouble, TypeByte, TypeBool:
		return true
	}
	return false
}

// Declared document or struct type
type TypeNode struct {
	Name string

	// Zero means id is derived from name
	ID int32

	// True for document types
	Document bool

	Inherits    []*DataType
	Fields      []*FieldNode
	Structs     []*TypeNode
	Annotations []*AnnotationNode
}

func (n *TypeNode) typeID() int32 {
	if n.ID != 0 {
		return n.ID
	}
	return TypeID(n.Name)
}

// Returns inherited type names
func (n *TypeNode) InheritedNames() []string {
	names := make([]string, len(n.Inherits))
	for i, t := range n.Inherits {
		names[i] = t.Name
	}
	return names
}

func (n *TypeNode) String() string {
	if n.Document {
		return "document " + n.Name
	}
	return "struct " + n.Name
}

// Declared field of document or struct
type FieldNode struct {
	Name string
	Type *DataType
}

// Declared annotation type
type AnnotationNode struct {
	Name string

	// Zero means id is derived from name
	ID int32

	// Inherited annotation names
	Inherits []string

	// Payload struct, optional
	Payload *TypeNode
}

// Returns name of payload struct, derived from annotation name if not declared
func (n *AnnotationNode) payloadName() string {
	if n.Payload == nil || n.Payload.Name == "" {
		return annotationPayloadPrefix + n.Name
	}
	return n.Payload.Name
}

func (n *AnnotationNode) typeID() int32 {
	if n.ID != 0 {
		return n.ID
	}
	return TypeID(n.Name)
}

// Document type of a named schema, the model builder input
type Schema struct {
	Name     string
	Document *TypeNode
}

func (s Schema) String() string {
	return "schema " + s.Name
}
