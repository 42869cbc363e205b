/*
 * Copyright (c) 2026-present unTill Software Development Group B.V.
 */

package schema

import (
	"fmt"

	"github.com/voedger/searchschema/pkg/documentmodel"
	"github.com/voedger/searchschema/pkg/onnx"
	"github.com/voedger/searchschema/pkg/tensor"
)

func (r RankType) String() string {
	if r < RankType_count {
		return rankTypeNames[r]
	}
	return fmt.Sprintf("RankType(%d)", r)
}

// Parses rank type name. Empty string is default rank type
func ParseRankType(s string) (RankType, error) {
	if s == "" {
		return RankType_default, nil
	}
	for r, n := range rankTypeNames {
		if n == s {
			return RankType(r), nil
		}
	}
	return RankType_default, ErrInvalidRankType(s)
}

// Returns document type node for model builder
func (s *Schema) DocumentTypeNode() *documentmodel.TypeNode {
	d := s.Document
	if d == nil {
		return nil
	}
	n := &documentmodel.TypeNode{
		Name:        d.Name,
		ID:          d.ID,
		Document:    true,
		Structs:     d.Structs,
		Annotations: d.Annotations,
	}
	for _, p := range d.Inherits {
		n.Inherits = append(n.Inherits, documentmodel.Placeholder(p))
	}
	for _, f := range d.Fields {
		n.Fields = append(n.Fields, &documentmodel.FieldNode{Name: f.Name, Type: f.Type})
	}
	return n
}

// Returns model builder input for schemas
func ModelInput(schemas []*Schema) []documentmodel.Schema {
	res := make([]documentmodel.Schema, len(schemas))
	for i, s := range schemas {
		res[i] = documentmodel.Schema{Name: s.Name, Document: s.DocumentTypeNode()}
	}
	return res
}

// Returns schemas of directly inherited documents. Available after references are resolved
func (s *Schema) Parents() []*Schema { return s.parents }

// Returns schemas of all inherited documents, depth-first, without duplicates
func (s *Schema) Ancestors() []*Schema {
	res := []*Schema{}
	seen := map[*Schema]bool{s: true}
	var collect func(*Schema)
	collect = func(s *Schema) {
		for _, p := range s.parents {
			if !seen[p] {
				seen[p] = true
				res = append(res, p)
				collect(p)
			}
		}
	}
	collect(s)
	return res
}

// Returns fields of inherited documents, own document fields and extra fields.
// Redeclared fields are listed once, the latest declaration wins
func (s *Schema) ConcreteFields() []*Field {
	res := []*Field{}
	pos := map[string]int{}
	add := func(f *Field) {
		if i, ok := pos[f.Name]; ok {
			res[i] = f
			return
		}
		pos[f.Name] = len(res)
		res = append(res, f)
	}
	var collect func(*Schema, map[*Schema]bool)
	collect = func(s *Schema, seen map[*Schema]bool) {
		if seen[s] {
			return
		}
		seen[s] = true
		for _, p := range s.parents {
			collect(p, seen)
		}
		if s.Document != nil {
			for _, f := range s.Document.Fields {
				add(f)
			}
		}
	}
	collect(s, map[*Schema]bool{})
	for _, f := range s.ExtraFields {
		add(f)
	}
	return res
}

// Returns concrete field by name or nil
func (s *Schema) Field(name string) *Field {
	for _, f := range s.ConcreteFields() {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// Returns explicit index by name or nil
func (s *Schema) Index(name string) *Index {
	for _, i := range s.Indices {
		if i.Name == name {
			return i
		}
	}
	return nil
}

// Returns constant by name or nil
func (s *Schema) Constant(name string) *Constant {
	for _, c := range s.Constants {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Returns onnx model by name or nil
func (s *Schema) OnnxModel(name string) *onnx.Model {
	for _, m := range s.OnnxModels {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// Returns resolved imported fields. Available after imported fields are resolved
func (s *Schema) Imported() []*ImportedField { return s.imported }

// Returns resolved reference fields in declaration order
func (d *Document) References() []*DocumentReference { return d.references }

// Returns resolved reference by field name or nil
func (d *Document) Reference(field string) *DocumentReference {
	for _, r := range d.references {
		if r.Field.Name == field {
			return r
		}
	}
	return nil
}

// Returns true if field is reference to document
func (f *Field) IsReference() bool {
	return f.Type != nil && f.Type.Kind == documentmodel.Kind_Reference
}

// Returns effective weight
func (f *Field) EffectiveWeight() int {
	if f.Weight > 0 {
		return f.Weight
	}
	return DefaultWeight
}

// Returns tensor type of attribute value as seen by ranking: tensor
// type for tensor fields, scalar for others
func (f *Field) AttributeType() tensor.Type {
	if f.Type != nil && f.Type.Kind == documentmodel.Kind_Tensor {
		return f.Type.Tensor
	}
	return tensor.Empty
}

// Returns true if field is single value numeric attribute
func (f *Field) IsNumericAttribute() bool {
	return f.Attribute && f.Type != nil && f.Type.Kind == documentmodel.Kind_Primitive && f.Type.IsNumeric()
}

// Returns error if constant can not be used in ranking
func (c *Constant) Validate() error {
	if c.Type.IsDense() && c.Type.HasUnboundIndexed() {
		return tensor.ErrInvalidType("constant «%s»: dense tensor type %v must have sized dimensions", c.Name, c.Type)
	}
	return nil
}
