/*
 * Copyright (c) 2026-present unTill Software Development Group B.V.
 */

package schema

import (
	"github.com/voedger/searchschema/pkg/documentmodel"
	"github.com/voedger/searchschema/pkg/onnx"
	"github.com/voedger/searchschema/pkg/tensor"
)

// Schema: named document type with indexing, summary and ranking declarations
type Schema struct {
	Name string

	// Document type, nil for document-less schemas
	Document *Document

	// Fields outside of document, computed at indexing time
	ExtraFields []*Field

	Indices        []*Index
	Summaries      []*Summary
	Constants      []*Constant
	OnnxModels     []*onnx.Model
	ImportedFields []*ImportedFieldDef

	parents  []*Schema
	imported []*ImportedField
}

// Document type of schema
type Document struct {
	Name string

	// Zero means id is derived from name
	ID int32

	// Inherited document names
	Inherits []string

	Fields      []*Field
	Structs     []*documentmodel.TypeNode
	Annotations []*documentmodel.AnnotationNode

	references []*DocumentReference
}

// Field of document or extra field of schema
type Field struct {
	Name string
	Type *documentmodel.DataType

	// Indexing of field
	Attribute bool
	Index     bool
	Summary   bool

	// Attribute has fast-search dictionary
	FastSearch bool

	// Rank settings. Zero weight means default weight
	Weight       int
	RankType     RankType
	LiteralBoost int

	// Field is ranked as filter
	Filter bool
}

// Explicitly declared index
type Index struct {
	Name            string
	PreferBitVector bool
}

// Document summary class
type Summary struct {
	Name     string
	Fields   []string
	FromDisk bool
}

// Named tensor constant
type Constant struct {
	Name string
	Type tensor.Type

	// Scalar value, for rank-0 constants
	Value *float64

	// Path of tensor value file
	File string
}

// Declaration `import field <reference>.<target> as <name>`
type ImportedFieldDef struct {
	Name           string
	ReferenceField string
	TargetField    string
}

// Resolved document reference field
type DocumentReference struct {
	Field  *Field
	Target *Schema
}

// Resolved imported field
type ImportedField struct {
	Name      string
	Reference *DocumentReference
	Target    *Field
}
