/*
 * Copyright (c) 2026-present unTill Software Development Group B.V.
 */

package rankprofile

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/voedger/searchschema/pkg/expression"
	"github.com/voedger/searchschema/pkg/onnx"
	"github.com/voedger/searchschema/pkg/schema"
	"github.com/voedger/searchschema/pkg/tensor"
)

// Returns new profile. Nil schema means global profile
func New(name string, s *schema.Schema) *RankProfile {
	return &RankProfile{
		name:       name,
		schema:     s,
		functions:  map[string]*Function{},
		constants:  map[string]*schema.Constant{},
		onnxModels: map[string]*onnx.Model{},
		inputs:     map[string]Input{},
	}
}

func (p *RankProfile) Name() string { return p.name }

// Returns owning schema, nil for global profiles
func (p *RankProfile) Schema() *schema.Schema { return p.schema }

// Returns name of owning schema, empty for global profiles
func (p *RankProfile) SchemaName() string {
	if p.schema == nil {
		return ""
	}
	return p.schema.Name
}

// Returns fully qualified name `schema.profile`, or just name for global profiles
func (p *RankProfile) FullName() string {
	if p.schema == nil {
		return p.name
	}
	return p.schema.Name + "." + p.name
}

// Returns declared name of inherited profile
func (p *RankProfile) InheritsName() string { return p.inherits }

func (p *RankProfile) SetInherits(name string) {
	p.inherits = name
	p.parentResolved, p.parent, p.parentErr = false, nil, nil
}

func (p *RankProfile) SetFirstPhase(text string) error {
	e, err := expression.ParseNamed("firstphase", text)
	if err != nil {
		return ErrExpression(p.FullName(), "first phase", err)
	}
	p.firstPhase = e
	return nil
}

func (p *RankProfile) SetSecondPhase(text string) error {
	e, err := expression.ParseNamed("secondphase", text)
	if err != nil {
		return ErrExpression(p.FullName(), "second phase", err)
	}
	p.secondPhase = e
	return nil
}

// Adds function. Function name must be unique within profile
func (p *RankProfile) AddFunction(name string, args []string, body string, inline bool) error {
	if _, ok := p.functions[name]; ok {
		return ErrRankProfile(p.FullName(), "function «%s» already exists", name)
	}
	e, err := expression.ParseNamed(name, body)
	if err != nil {
		return ErrExpression(p.FullName(), "function «"+name+"»", err)
	}
	p.functions[name] = &Function{Function: expression.NewFunction(name, args, e), Inline: inline}
	return nil
}

func (p *RankProfile) AddRankSetting(field string, kind RankSettingKind, value any) {
	p.rankSettings = append(p.rankSettings, RankSetting{Field: field, Kind: kind, Value: value})
}

func (p *RankProfile) AddRankProperty(name, value string) {
	p.rankProperties = append(p.rankProperties, RankProperty{Name: name, Value: value})
}

// Adds constant. Dense constants must have sized dimensions
func (p *RankProfile) AddConstant(c *schema.Constant) error {
	if err := c.Validate(); err != nil {
		return ErrInvalidProfile(p.FullName(), err)
	}
	p.constants[c.Name] = c
	return nil
}

func (p *RankProfile) AddOnnxModel(m *onnx.Model) {
	p.onnxModels[m.Name] = m
}

// Declares type of input feature like `query(q)`
func (p *RankProfile) AddInput(name string, t tensor.Type, def string) error {
	ref, err := expression.ParseReference(name)
	if err != nil {
		return ErrExpression(p.FullName(), "input «"+name+"»", err)
	}
	key := ref.Key()
	p.inputs[key] = Input{Name: key, Type: t, Default: def}
	return nil
}

// Sets summary features. If inheritFrom names the inherited profile, its
// summary features are inherited too
func (p *RankProfile) SetSummaryFeatures(features []string, inheritFrom string) {
	p.summaryFeatures = slices.Clone(features)
	p.inheritSummaryFeatures = inheritFrom
}

// Sets match features. If inheritFrom names the inherited profile, its
// match features are inherited too
func (p *RankProfile) SetMatchFeatures(features []string, inheritFrom string) {
	p.matchFeatures = slices.Clone(features)
	p.inheritMatchFeatures = inheritFrom
}

func (p *RankProfile) AddRankFeatures(features ...string) {
	p.rankFeatures = append(p.rankFeatures, features...)
}

func (p *RankProfile) AddFilterFields(fields ...string) {
	p.filterFields = append(p.filterFields, fields...)
}

func (p *RankProfile) SetIgnoreDefaultRankFeatures(v bool) { p.ignoreDefaultRankFeatures = &v }
func (p *RankProfile) SetRerankCount(v int)                { p.rerankCount = &v }
func (p *RankProfile) SetKeepRankCount(v int)              { p.keepRankCount = &v }
func (p *RankProfile) SetNumThreadsPerSearch(v int)        { p.numThreadsPerSearch = &v }
func (p *RankProfile) SetMinHitsPerThread(v int)           { p.minHitsPerThread = &v }
func (p *RankProfile) SetNumSearchPartitions(v int)        { p.numSearchPartitions = &v }
func (p *RankProfile) SetTermwiseLimit(v float64)          { p.termwiseLimit = &v }
func (p *RankProfile) SetMatchPhase(m *MatchPhase)         { p.matchPhase = m }
func (p *RankProfile) SetDiversity(d *Diversity)           { p.diversity = d }

// Returns inherited profile, nil if profile inherits nothing.
//
// Inherited profile is resolved once. Name of profile itself in inherits
// means the same named profile of an inherited document schema.
// Returns error if inherited profile not found or inheritance is cyclic.
func (p *RankProfile) Inherited() (*RankProfile, error) {
	if !p.parentResolved {
		p.parent, p.parentErr = p.resolveInherited()
		p.parentResolved = true
	}
	return p.parent, p.parentErr
}

func (p *RankProfile) resolveInherited() (*RankProfile, error) {
	parent, err := p.lookupInherited()
	if err != nil || parent == nil {
		return nil, err
	}
	chain := []string{p.FullName()}
	visited := map[string]bool{p.FullName(): true}
	for q := parent; q != nil; {
		fqn := q.FullName()
		chain = append(chain, fqn)
		if visited[fqn] {
			return nil, ErrInheritanceCycle(p.FullName(), chain)
		}
		visited[fqn] = true
		if q, err = q.lookupInherited(); err != nil {
			return nil, err
		}
	}
	return parent, nil
}

// Finds inherited profile by name, without checking the chain
func (p *RankProfile) lookupInherited() (*RankProfile, error) {
	if p.inherits == "" {
		return nil, nil
	}
	var parent *RankProfile
	if p.registry != nil {
		if p.inherits == p.name {
			if p.schema != nil {
				for _, a := range p.schema.Ancestors() {
					if parent = p.registry.lookup(a.Name, p.name); parent != nil {
						break
					}
				}
			}
		} else {
			parent = p.registry.Resolve(p.schema, p.inherits)
		}
	}
	if parent == nil {
		return nil, ErrMissingParent(p.FullName(), p.inherits)
	}
	return parent, nil
}

// Inherited profile, nil if none or not resolvable
func (p *RankProfile) inherited() *RankProfile {
	parent, err := p.Inherited()
	if err != nil {
		return nil
	}
	return parent
}

func (p *RankProfile) FirstPhase() *expression.Expression {
	if p.firstPhase != nil {
		return p.firstPhase
	}
	if parent := p.inherited(); parent != nil {
		return parent.FirstPhase()
	}
	return nil
}

func (p *RankProfile) SecondPhase() *expression.Expression {
	if p.secondPhase != nil {
		return p.secondPhase
	}
	if parent := p.inherited(); parent != nil {
		return parent.SecondPhase()
	}
	return nil
}

// Returns functions of inherited profiles overlaid by local ones
func (p *RankProfile) Functions() map[string]*Function {
	res := map[string]*Function{}
	if parent := p.inherited(); parent != nil {
		res = parent.Functions()
	}
	maps.Copy(res, p.functions)
	return res
}

func (p *RankProfile) Function(name string) (*Function, bool) {
	f, ok := p.Functions()[name]
	return f, ok
}

// Returns local rank settings followed by inherited ones not overridden locally.
//
// Profiles which inherit nothing get settings of the schema `default` profile,
// which derives them from schema fields and indices.
func (p *RankProfile) RankSettings() []RankSetting {
	res := slices.Clone(p.rankSettings)
	var inherited []RankSetting
	switch parent := p.inherited(); {
	case parent != nil:
		inherited = parent.RankSettings()
	case p.name == DefaultProfile:
		inherited = p.derivedRankSettings()
	case p.schema != nil && p.registry != nil:
		if d := p.registry.Get(p.schema.Name, DefaultProfile); d != nil && d != p {
			inherited = d.RankSettings()
		} else {
			inherited = p.derivedRankSettings()
		}
	}
	for _, s := range inherited {
		if !containsSetting(res, s.Field, s.Kind) {
			res = append(res, s)
		}
	}
	return res
}

// Returns rank setting of field or nil
func (p *RankProfile) RankSetting(field string, kind RankSettingKind) *RankSetting {
	for _, s := range p.RankSettings() {
		if s.Field == field && s.Kind == kind {
			return &s
		}
	}
	return nil
}

// Derives rank settings from schema fields and explicit indices
func (p *RankProfile) derivedRankSettings() []RankSetting {
	if p.schema == nil {
		return nil
	}
	res := []RankSetting{}
	for _, f := range p.schema.ConcreteFields() {
		if f.Weight > 0 && f.Weight != schema.DefaultWeight {
			res = append(res, RankSetting{Field: f.Name, Kind: RankSettingKind_Weight, Value: f.Weight})
		}
		if f.RankType != schema.RankType_default {
			res = append(res, RankSetting{Field: f.Name, Kind: RankSettingKind_RankType, Value: f.RankType})
		}
		if f.LiteralBoost > 0 {
			res = append(res, RankSetting{Field: f.Name, Kind: RankSettingKind_LiteralBoost, Value: f.LiteralBoost})
		}
		if f.Filter {
			res = append(res, RankSetting{Field: f.Name, Kind: RankSettingKind_PreferBitVector, Value: true})
		}
	}
	for _, i := range p.schema.Indices {
		if i.PreferBitVector && !containsSetting(res, i.Name, RankSettingKind_PreferBitVector) {
			res = append(res, RankSetting{Field: i.Name, Kind: RankSettingKind_PreferBitVector, Value: true})
		}
	}
	return res
}

// Returns inherited rank properties overlaid by local ones: local
// properties replace all inherited values of the same name
func (p *RankProfile) RankProperties() []RankProperty {
	res := []RankProperty{}
	if parent := p.inherited(); parent != nil {
		local := map[string]bool{}
		for _, r := range p.rankProperties {
			local[r.Name] = true
		}
		for _, r := range parent.RankProperties() {
			if !local[r.Name] {
				res = append(res, r)
			}
		}
	}
	return append(res, p.rankProperties...)
}

// Returns schema of profile preceded by inherited document schemas, the farthest first
func (p *RankProfile) schemas() []*schema.Schema {
	if p.schema == nil {
		return nil
	}
	ancestors := p.schema.Ancestors()
	res := make([]*schema.Schema, 0, len(ancestors)+1)
	for i := len(ancestors) - 1; i >= 0; i-- {
		res = append(res, ancestors[i])
	}
	return append(res, p.schema)
}

// Returns constants of schema and inherited document schemas, overlaid by
// constants of inherited profiles and local constants
func (p *RankProfile) Constants() map[string]*schema.Constant {
	res := map[string]*schema.Constant{}
	for _, s := range p.schemas() {
		for _, c := range s.Constants {
			res[c.Name] = c
		}
	}
	maps.Copy(res, p.chainConstants())
	return res
}

func (p *RankProfile) chainConstants() map[string]*schema.Constant {
	res := map[string]*schema.Constant{}
	if parent := p.inherited(); parent != nil {
		res = parent.chainConstants()
	}
	maps.Copy(res, p.constants)
	return res
}

// Returns onnx models of schema, overlaid by models of inherited profiles
// and local models
func (p *RankProfile) OnnxModels() map[string]*onnx.Model {
	res := map[string]*onnx.Model{}
	for _, s := range p.schemas() {
		for _, m := range s.OnnxModels {
			res[m.Name] = m
		}
	}
	maps.Copy(res, p.chainOnnxModels())
	return res
}

func (p *RankProfile) chainOnnxModels() map[string]*onnx.Model {
	res := map[string]*onnx.Model{}
	if parent := p.inherited(); parent != nil {
		res = parent.chainOnnxModels()
	}
	maps.Copy(res, p.onnxModels)
	return res
}

// Returns declared inputs by feature name
func (p *RankProfile) Inputs() map[string]Input {
	res := map[string]Input{}
	if parent := p.inherited(); parent != nil {
		res = parent.Inputs()
	}
	maps.Copy(res, p.inputs)
	return res
}

// Returns summary features.
//
// Local summary features override inherited ones, unless profile opts in to
// inherit summary features of its parent, then union is returned.
// Empty local features fall back to inherited ones.
func (p *RankProfile) SummaryFeatures() []string {
	return p.overridableFeatures(p.summaryFeatures, p.inheritSummaryFeatures, (*RankProfile).SummaryFeatures)
}

// Returns match features, same rules as for summary features apply
func (p *RankProfile) MatchFeatures() []string {
	return p.overridableFeatures(p.matchFeatures, p.inheritMatchFeatures, (*RankProfile).MatchFeatures)
}

func (p *RankProfile) overridableFeatures(local []string, inheritFrom string, get func(*RankProfile) []string) []string {
	parent := p.inherited()
	if parent == nil {
		return slices.Clone(local)
	}
	if len(local) == 0 {
		return get(parent)
	}
	if inheritFrom != "" && inheritFrom == parent.name {
		return union(get(parent), local)
	}
	return slices.Clone(local)
}

// Returns inherited and local rank features
func (p *RankProfile) RankFeatures() []string {
	if parent := p.inherited(); parent != nil {
		return union(parent.RankFeatures(), p.rankFeatures)
	}
	return union(nil, p.rankFeatures)
}

// Returns inherited and local filter fields
func (p *RankProfile) FilterFields() []string {
	if parent := p.inherited(); parent != nil {
		return union(parent.FilterFields(), p.filterFields)
	}
	return union(nil, p.filterFields)
}

func (p *RankProfile) IgnoreDefaultRankFeatures() bool {
	return resolveKnob(p, func(p *RankProfile) *bool { return p.ignoreDefaultRankFeatures }, false)
}

func (p *RankProfile) RerankCount() int {
	return resolveKnob(p, func(p *RankProfile) *int { return p.rerankCount }, UnsetCount)
}

func (p *RankProfile) KeepRankCount() int {
	return resolveKnob(p, func(p *RankProfile) *int { return p.keepRankCount }, UnsetCount)
}

func (p *RankProfile) NumThreadsPerSearch() int {
	return resolveKnob(p, func(p *RankProfile) *int { return p.numThreadsPerSearch }, UnsetCount)
}

func (p *RankProfile) MinHitsPerThread() int {
	return resolveKnob(p, func(p *RankProfile) *int { return p.minHitsPerThread }, UnsetCount)
}

func (p *RankProfile) NumSearchPartitions() int {
	return resolveKnob(p, func(p *RankProfile) *int { return p.numSearchPartitions }, UnsetCount)
}

func (p *RankProfile) TermwiseLimit() float64 {
	return resolveKnob(p, func(p *RankProfile) *float64 { return p.termwiseLimit }, DefaultTermwiseLimit)
}

func (p *RankProfile) MatchPhase() *MatchPhase {
	if p.matchPhase != nil {
		return p.matchPhase
	}
	if parent := p.inherited(); parent != nil {
		return parent.MatchPhase()
	}
	return nil
}

func (p *RankProfile) Diversity() *Diversity {
	if p.diversity != nil {
		return p.diversity
	}
	if parent := p.inherited(); parent != nil {
		return parent.Diversity()
	}
	return nil
}

// Checks inheritance and settings which depend on schema
func (p *RankProfile) Validate() error {
	parent, err := p.Inherited()
	if err != nil {
		return err
	}

	for _, opt := range []struct{ what, from string }{
		{"summary", p.inheritSummaryFeatures},
		{"match", p.inheritMatchFeatures},
	} {
		if opt.from != "" && (parent == nil || parent.name != opt.from) {
			return ErrRankProfile(p.FullName(), "%s features can only be inherited from the inherited profile, not from «%s»", opt.what, opt.from)
		}
	}

	mp := p.MatchPhase()
	if mp != nil {
		f := p.field(mp.Attribute)
		switch {
		case f == nil:
			return ErrRankProfile(p.FullName(), "match-phase attribute «%s» not found", mp.Attribute)
		case !f.IsNumericAttribute():
			return ErrRankProfile(p.FullName(), "match-phase attribute «%s» must be a single value numeric attribute", mp.Attribute)
		case !f.FastSearch:
			return ErrRankProfile(p.FullName(), "match-phase attribute «%s» must have fast-search", mp.Attribute)
		}
	}

	if d := p.Diversity(); d != nil {
		if mp == nil {
			return ErrRankProfile(p.FullName(), "diversity requires match-phase")
		}
		f := p.field(d.Attribute)
		switch {
		case f == nil:
			return ErrRankProfile(p.FullName(), "diversity attribute «%s» not found", d.Attribute)
		case !f.Attribute || !f.Type.IsSingleValue():
			return ErrRankProfile(p.FullName(), "diversity attribute «%s» must be a single value attribute", d.Attribute)
		case d.MinGroups <= 0:
			return ErrRankProfile(p.FullName(), "diversity min-groups must be positive, got %d", d.MinGroups)
		}
	}
	return nil
}

// Returns schema field by name or nil
func (p *RankProfile) field(name string) *schema.Field {
	if p.schema == nil {
		return nil
	}
	return p.schema.Field(name)
}
