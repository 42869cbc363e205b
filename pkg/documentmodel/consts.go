/*
 * Copyright (c) 2026-present unTill Software Development Group B.V.
 */

package documentmodel

// Kind of data type
type Kind uint8

const (
	Kind_null Kind = iota

	// Builtin primitive: int, long, string, ...
	Kind_Primitive

	Kind_Tensor
	Kind_Struct
	Kind_Document
	Kind_Annotation

	// Collections
	Kind_Array
	Kind_WeightedSet
	Kind_Map

	// Reference to a document type, `reference<doc>`
	Kind_Reference

	// Reference to an annotation type, `annotationreference<a>`
	Kind_AnnotationRef

	// Stand-in for a named type not seen yet
	Kind_Placeholder

	Kind_count
)

var kindNames = [Kind_count]string{
	Kind_null:          "null",
	Kind_Primitive:     "primitive",
	Kind_Tensor:        "tensor",
	Kind_Struct:        "struct",
	Kind_Document:      "document",
	Kind_Annotation:    "annotation",
	Kind_Array:         "array",
	Kind_WeightedSet:   "weightedset",
	Kind_Map:           "map",
	Kind_Reference:     "reference",
	Kind_AnnotationRef: "annotationreference",
	Kind_Placeholder:   "placeholder",
}

// Names of builtin types
const (
	TypeInt       = "int"
	TypeFloat     = "float"
	TypeString    = "string"
	TypeRaw       = "raw"
	TypeLong      = "long"
	TypeDouble    = "double"
	TypeBool      = "bool"
	TypeByte      = "byte"
	TypeURI       = "uri"
	TypePredicate = "predicate"
	TypeTag       = "tag"
	TypePosition  = "position"

	// Root of all document types
	TypeDocument = "document"
)

// Ids of builtin types, as the search engine assigns them
var builtinIDs = map[string]int32{
	TypeInt:       0,
	TypeFloat:     1,
	TypeString:    2,
	TypeRaw:       3,
	TypeLong:      4,
	TypeDouble:    5,
	TypeBool:      6,
	TypeDocument:  8,
	TypeURI:       10,
	TypeByte:      16,
	TypeTag:       18,
	TypePredicate: 20,
}

// Primitive builtins in registration order
var primitives = []string{
	TypeInt, TypeFloat, TypeString, TypeRaw, TypeLong, TypeDouble,
	TypeBool, TypeURI, TypeByte, TypeTag, TypePredicate,
}

const (
	positionX = "x"
	positionY = "y"
)

// Prefix of structs derived for annotation payloads
const annotationPayloadPrefix = "annotation."

// Slot of absent type handle
const noSlot = -1
