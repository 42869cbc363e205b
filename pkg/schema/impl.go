/*
 * Copyright (c) 2026-present unTill Software Development Group B.V.
 */

package schema

// Resolves cross-schema links of documents: inherited documents and
// document reference fields.
//
// Reference fields must be attributes and must refer documents of known schemas.
// Resolved references are available from Document.References() in field
// declaration order.
func ResolveReferences(schemas []*Schema) error {
	byDocument := map[string]*Schema{}
	for _, s := range schemas {
		if s.Document != nil {
			byDocument[s.Document.Name] = s
		}
	}

	for _, s := range schemas {
		if s.Document == nil {
			continue
		}
		s.parents = nil
		for _, p := range s.Document.Inherits {
			ps, ok := byDocument[p]
			if !ok {
				return ErrUnknownParent(s.Name, p)
			}
			s.parents = append(s.parents, ps)
		}
	}

	for _, s := range schemas {
		if s.Document == nil {
			continue
		}
		refs := []*DocumentReference{}
		for _, f := range s.Document.Fields {
			if !f.IsReference() {
				continue
			}
			if !f.Attribute {
				return ErrNotAttribute(s.Name, f.Name)
			}
			target, ok := byDocument[f.Type.Nested.Name]
			if !ok {
				return ErrUnknownTarget(s.Name, f.Name, f.Type.Nested.Name)
			}
			refs = append(refs, &DocumentReference{Field: f, Target: target})
		}
		s.Document.references = refs
	}
	return nil
}

// Resolves `import field` declarations of schemas.
//
// Should be called after references are resolved. Reference field must be
// a resolved document reference, target field must be an attribute of
// the referenced schema
func ResolveImportedFields(schemas []*Schema) error {
	for _, s := range schemas {
		s.imported = nil
		for _, def := range s.ImportedFields {
			if s.Document == nil {
				return ErrImportedField(s.Name, def.Name, "schema has no document")
			}
			ref := s.Document.Reference(def.ReferenceField)
			if ref == nil {
				return ErrImportedField(s.Name, def.Name, "«%s» is not a reference field", def.ReferenceField)
			}
			target := ref.Target.Field(def.TargetField)
			if target == nil {
				return ErrImportedField(s.Name, def.Name, "field «%s» not found in schema «%s»", def.TargetField, ref.Target.Name)
			}
			if !target.Attribute {
				return ErrImportedField(s.Name, def.Name, "field «%s» of schema «%s» is not an attribute", def.TargetField, ref.Target.Name)
			}
			if s.Field(def.Name) != nil {
				return ErrImportedField(s.Name, def.Name, "field with the same name already exists")
			}
			s.imported = append(s.imported, &ImportedField{Name: def.Name, Reference: ref, Target: target})
		}
	}
	return nil
}
