/*
 * Copyright (c) 2026-present unTill Software Development Group B.V.
 */

package application

import (
	"errors"
	"fmt"
	"path"

	"gopkg.in/yaml.v2"

	"github.com/voedger/searchschema/pkg/coreutils"
	"github.com/voedger/searchschema/pkg/documentmodel"
	"github.com/voedger/searchschema/pkg/onnx"
	"github.com/voedger/searchschema/pkg/queryprofile"
	"github.com/voedger/searchschema/pkg/rankprofile"
	"github.com/voedger/searchschema/pkg/schema"
	"github.com/voedger/searchschema/pkg/tensor"
)

func loadPackageImpl(fs coreutils.IReadFS, dir string) (*Package, error) {
	c := &loadContext{pkg: NewPackage(), errs: make([]error, 0)}

	schemaFiles, err := coreutils.DirFiles(fs, path.Join(dir, SchemasDir), yamlExts...)
	if err != nil {
		return nil, err
	}
	if len(schemaFiles) == 0 {
		return nil, ErrDirContainsNoSchemaFiles
	}

	var models []*onnx.ModelInfo
	for _, load := range []struct {
		dir  string
		load func(file string, data []byte) error
	}{
		{SchemasDir, c.schema},
		{RankProfilesDir, c.rankProfile},
		{QueryProfileTypesDir, c.queryProfileType},
		{ModelsDir, func(file string, data []byte) error {
			m, err := c.model(file, data)
			if err == nil {
				models = append(models, m)
			}
			return err
		}},
	} {
		files, err := coreutils.DirFiles(fs, path.Join(dir, load.dir), yamlExts...)
		if err != nil {
			return nil, err
		}
		for _, file := range files {
			data, err := fs.ReadFile(file)
			if err != nil {
				return nil, err
			}
			if err := load.load(file, data); err != nil {
				c.errs = append(c.errs, err)
			}
		}
	}
	c.pkg.Models = onnx.NewModels(models...)

	if len(c.errs) > 0 {
		return nil, errors.Join(c.errs...)
	}
	return c.pkg, nil
}

func unmarshal(file string, data []byte, v any) error {
	if err := yaml.UnmarshalStrict(data, v); err != nil {
		return ErrInvalidPackage(file, err)
	}
	return nil
}

func (c *loadContext) schema(file string, data []byte) error {
	def := schemaDef{}
	if err := unmarshal(file, data, &def); err != nil {
		return err
	}
	if def.Name == "" {
		return ErrInvalidDefinition(file, "schema name is missed")
	}

	s := &schema.Schema{Name: def.Name}
	var err error
	if def.Document != nil {
		if s.Document, err = document(file, def.Name, def.Document); err != nil {
			return err
		}
	}
	if s.ExtraFields, err = fields(file, def.ExtraFields); err != nil {
		return err
	}
	for _, i := range def.Indices {
		s.Indices = append(s.Indices, &schema.Index{Name: i.Name, PreferBitVector: i.PreferBitVector})
	}
	for _, sm := range def.Summaries {
		s.Summaries = append(s.Summaries, &schema.Summary{Name: sm.Name, Fields: sm.Fields, FromDisk: sm.FromDisk})
	}
	if s.Constants, err = constants(file, def.Constants); err != nil {
		return err
	}
	for _, m := range def.OnnxModels {
		s.OnnxModels = append(s.OnnxModels, onnxModel(m))
	}
	for _, i := range def.ImportedFields {
		s.ImportedFields = append(s.ImportedFields, &schema.ImportedFieldDef{
			Name:           i.Name,
			ReferenceField: i.ReferenceField,
			TargetField:    i.TargetField,
		})
	}
	c.pkg.Schemas = append(c.pkg.Schemas, s)

	for _, p := range def.RankProfiles {
		if err := c.addRankProfile(file, s, p); err != nil {
			return err
		}
	}
	return nil
}

// Loads global rank profile
func (c *loadContext) rankProfile(file string, data []byte) error {
	def := rankProfileDef{}
	if err := unmarshal(file, data, &def); err != nil {
		return err
	}
	return c.addRankProfile(file, nil, def)
}

func (c *loadContext) addRankProfile(file string, s *schema.Schema, def rankProfileDef) error {
	p, err := newRankProfile(file, s, def)
	if err != nil {
		return err
	}
	if err := c.pkg.RankProfiles.Add(p); err != nil {
		return ErrInvalidPackage(file, err)
	}
	return nil
}

func (c *loadContext) queryProfileType(file string, data []byte) error {
	def := queryProfileTypeDef{}
	if err := unmarshal(file, data, &def); err != nil {
		return err
	}
	t := &queryprofile.Type{Name: def.Name}
	for _, f := range def.Fields {
		typ, err := tensorType(file, f.Type)
		if err != nil {
			return err
		}
		t.Fields = append(t.Fields, queryprofile.Field{Name: f.Name, Type: typ})
	}
	if err := c.pkg.QueryProfiles.Add(t); err != nil {
		return ErrInvalidPackage(file, err)
	}
	return nil
}

func (c *loadContext) model(file string, data []byte) (*onnx.ModelInfo, error) {
	def := modelDef{}
	if err := unmarshal(file, data, &def); err != nil {
		return nil, err
	}
	tensors := func(defs []typedDef) ([]onnx.Tensor, error) {
		res := make([]onnx.Tensor, 0, len(defs))
		for _, d := range defs {
			t, err := tensorType(file, d.Type)
			if err != nil {
				return nil, err
			}
			res = append(res, onnx.Tensor{Name: d.Name, Type: t})
		}
		return res, nil
	}
	inputs, err := tensors(def.Inputs)
	if err != nil {
		return nil, err
	}
	outputs, err := tensors(def.Outputs)
	if err != nil {
		return nil, err
	}
	m, err := onnx.NewModelInfo(def.Path, inputs, outputs)
	if err != nil {
		return nil, ErrInvalidPackage(file, err)
	}
	return m, nil
}

func document(file, schemaName string, def *documentDef) (*schema.Document, error) {
	d := &schema.Document{Name: def.Name, ID: def.ID, Inherits: def.Inherits}
	if d.Name == "" {
		d.Name = schemaName
	}
	var err error
	if d.Fields, err = fields(file, def.Fields); err != nil {
		return nil, err
	}
	for _, s := range def.Structs {
		n := &documentmodel.TypeNode{Name: s.Name, ID: s.ID}
		for _, p := range s.Inherits {
			n.Inherits = append(n.Inherits, documentmodel.Placeholder(p))
		}
		if n.Fields, err = fieldNodes(file, s.Fields); err != nil {
			return nil, err
		}
		d.Structs = append(d.Structs, n)
	}
	for _, a := range def.Annotations {
		n := &documentmodel.AnnotationNode{Name: a.Name, ID: a.ID, Inherits: a.Inherits}
		if len(a.Fields) > 0 {
			n.Payload = &documentmodel.TypeNode{}
			if n.Payload.Fields, err = fieldNodes(file, a.Fields); err != nil {
				return nil, err
			}
		}
		d.Annotations = append(d.Annotations, n)
	}
	return d, nil
}

func fields(file string, defs []fieldDef) ([]*schema.Field, error) {
	res := make([]*schema.Field, 0, len(defs))
	for _, def := range defs {
		typ, err := documentmodel.ParseDataType(def.Type)
		if err != nil {
			return nil, ErrInvalidPackage(file, err)
		}
		f := &schema.Field{
			Name:         def.Name,
			Type:         typ,
			FastSearch:   def.FastSearch,
			Weight:       def.Weight,
			LiteralBoost: def.LiteralBoost,
			Filter:       def.Filter,
		}
		for _, i := range def.Indexing {
			switch i {
			case indexingAttribute:
				f.Attribute = true
			case indexingIndex:
				f.Index = true
			case indexingSummary:
				f.Summary = true
			default:
				return nil, ErrInvalidDefinition(file, "field «%s»: unknown indexing «%s»", def.Name, i)
			}
		}
		if def.RankType != "" {
			if f.RankType, err = schema.ParseRankType(def.RankType); err != nil {
				return nil, ErrInvalidPackage(file, err)
			}
		}
		res = append(res, f)
	}
	return res, nil
}

func fieldNodes(file string, defs []fieldDef) ([]*documentmodel.FieldNode, error) {
	res := make([]*documentmodel.FieldNode, 0, len(defs))
	for _, def := range defs {
		typ, err := documentmodel.ParseDataType(def.Type)
		if err != nil {
			return nil, ErrInvalidPackage(file, err)
		}
		res = append(res, &documentmodel.FieldNode{Name: def.Name, Type: typ})
	}
	return res, nil
}

// Returns scalar for empty text
func tensorType(file, text string) (tensor.Type, error) {
	if text == "" {
		return tensor.Empty, nil
	}
	t, err := tensor.Parse(text)
	if err != nil {
		return tensor.Empty, ErrInvalidPackage(file, err)
	}
	return t, nil
}

func constants(file string, defs []constantDef) ([]*schema.Constant, error) {
	res := make([]*schema.Constant, 0, len(defs))
	for _, def := range defs {
		t, err := tensorType(file, def.Type)
		if err != nil {
			return nil, err
		}
		res = append(res, &schema.Constant{Name: def.Name, Type: t, Value: def.Value, File: def.File})
	}
	return res, nil
}

func onnxModel(def onnxModelDef) *onnx.Model {
	bindings := func(items yaml.MapSlice) []onnx.Binding {
		res := make([]onnx.Binding, 0, len(items))
		for _, item := range items {
			res = append(res, onnx.Binding{Name: fmt.Sprint(item.Key), Value: fmt.Sprint(item.Value)})
		}
		return res
	}
	return &onnx.Model{
		Name:    def.Name,
		Path:    def.Path,
		Inputs:  bindings(def.Inputs),
		Outputs: bindings(def.Outputs),
	}
}

func newRankProfile(file string, s *schema.Schema, def rankProfileDef) (*rankprofile.RankProfile, error) {
	if def.Name == "" {
		return nil, ErrInvalidDefinition(file, "rank profile name is missed")
	}
	p := rankprofile.New(def.Name, s)
	wrap := func(err error) error {
		if err != nil {
			return ErrInvalidPackage(file, err)
		}
		return nil
	}

	if def.Inherits != "" {
		p.SetInherits(def.Inherits)
	}
	if def.FirstPhase != "" {
		if err := p.SetFirstPhase(def.FirstPhase); err != nil {
			return nil, wrap(err)
		}
	}
	if def.SecondPhase != "" {
		if err := p.SetSecondPhase(def.SecondPhase); err != nil {
			return nil, wrap(err)
		}
	}
	for _, f := range def.Functions {
		if err := p.AddFunction(f.Name, f.Arguments, f.Expression, f.Inline); err != nil {
			return nil, wrap(err)
		}
	}
	for _, i := range def.Inputs {
		t, err := tensorType(file, i.Type)
		if err != nil {
			return nil, err
		}
		if err := p.AddInput(i.Name, t, i.Default); err != nil {
			return nil, wrap(err)
		}
	}
	cc, err := constants(file, def.Constants)
	if err != nil {
		return nil, err
	}
	for _, c := range cc {
		if err := p.AddConstant(c); err != nil {
			return nil, wrap(err)
		}
	}
	for _, m := range def.OnnxModels {
		p.AddOnnxModel(onnxModel(m))
	}
	for _, r := range def.RankProperties {
		p.AddRankProperty(r.Name, r.Value)
	}
	for _, r := range def.RankSettings {
		if r.Weight != nil {
			p.AddRankSetting(r.Field, rankprofile.RankSettingKind_Weight, *r.Weight)
		}
		if r.RankType != "" {
			rt, err := schema.ParseRankType(r.RankType)
			if err != nil {
				return nil, wrap(err)
			}
			p.AddRankSetting(r.Field, rankprofile.RankSettingKind_RankType, rt)
		}
		if r.LiteralBoost != nil {
			p.AddRankSetting(r.Field, rankprofile.RankSettingKind_LiteralBoost, *r.LiteralBoost)
		}
		if r.PreferBitVector != nil {
			p.AddRankSetting(r.Field, rankprofile.RankSettingKind_PreferBitVector, *r.PreferBitVector)
		}
	}
	if f := def.SummaryFeatures; f != nil {
		p.SetSummaryFeatures(f.Features, f.Inherits)
	}
	if f := def.MatchFeatures; f != nil {
		p.SetMatchFeatures(f.Features, f.Inherits)
	}
	p.AddRankFeatures(def.RankFeatures...)
	p.AddFilterFields(def.FilterFields...)

	if v := def.IgnoreDefaultRankFeatures; v != nil {
		p.SetIgnoreDefaultRankFeatures(*v)
	}
	for _, knob := range []struct {
		v   *int
		set func(int)
	}{
		{def.RerankCount, p.SetRerankCount},
		{def.KeepRankCount, p.SetKeepRankCount},
		{def.NumThreadsPerSearch, p.SetNumThreadsPerSearch},
		{def.MinHitsPerThread, p.SetMinHitsPerThread},
		{def.NumSearchPartitions, p.SetNumSearchPartitions},
	} {
		if knob.v != nil {
			knob.set(*knob.v)
		}
	}
	if v := def.TermwiseLimit; v != nil {
		p.SetTermwiseLimit(*v)
	}
	if m := def.MatchPhase; m != nil {
		p.SetMatchPhase(&rankprofile.MatchPhase{
			Attribute:         m.Attribute,
			Ascending:         m.Ascending,
			MaxHits:           m.MaxHits,
			MaxFilterCoverage: m.MaxFilterCoverage,
		})
	}
	if d := def.Diversity; d != nil {
		p.SetDiversity(&rankprofile.Diversity{
			Attribute:      d.Attribute,
			MinGroups:      d.MinGroups,
			CutoffFactor:   d.CutoffFactor,
			CutoffStrategy: d.CutoffStrategy,
		})
	}
	return p, nil
}
