/*
 * Copyright (c) 2026-present unTill Software Development Group B.V.
 */

package rankprofile

import (
	"fmt"

	"github.com/untillpro/goutils/logger"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/voedger/searchschema/pkg/expression"
	"github.com/voedger/searchschema/pkg/featuretypes"
	"github.com/voedger/searchschema/pkg/onnx"
	"github.com/voedger/searchschema/pkg/queryprofile"
	"github.com/voedger/searchschema/pkg/schema"
	"github.com/voedger/searchschema/pkg/tensor"
)

// Compiles profile with settings of inherited profiles.
//
// Query profile types and models metadata are optional. Transforms are applied
// in order to phases and functions. Profile itself is not changed, compiling
// it again gives the same result.
func (p *RankProfile) Compile(queryProfiles *queryprofile.Registry, models onnx.IModels, transforms ...Transform) (*Compiled, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	fqn := p.FullName()

	constants := p.Constants()
	functions := map[string]*Function{}
	for name, f := range p.Functions() {
		fn := *f.Function
		functions[name] = &Function{Function: &fn, Inline: f.Inline}
	}

	for _, name := range sortedKeys(functions) {
		if _, ok := constants[name]; ok {
			return nil, ErrNameCollision(fqn, name)
		}
	}

	types, err := p.featureTypes(queryProfiles, models, constants, functions)
	if err != nil {
		return nil, err
	}

	ctx := &TransformContext{
		profile:   p,
		constants: constants,
		functions: functions,
		inline:    map[string]*Function{},
		types:     types.Build(),
	}

	compiled := map[string]bool{}
	for _, name := range sortedKeys(functions) {
		if f := functions[name]; f.Inline {
			if err := ctx.compileFunction(f, transforms); err != nil {
				return nil, ErrExpression(fqn, "function «"+name+"»", err)
			}
			compiled[name] = true
		}
	}
	for name := range compiled {
		ctx.inline[name] = functions[name]
	}

	first, err := ctx.apply(p.FirstPhase(), transforms)
	if err != nil {
		return nil, ErrExpression(fqn, "first phase", err)
	}
	second, err := ctx.apply(p.SecondPhase(), transforms)
	if err != nil {
		return nil, ErrExpression(fqn, "second phase", err)
	}

	// transforms may add functions, so function table is read again each step
	for {
		names := sortedKeys(ctx.functions)
		i := slices.IndexFunc(names, func(name string) bool { return !compiled[name] })
		if i < 0 {
			break
		}
		name := names[i]
		compiled[name] = true
		if err := ctx.compileFunction(ctx.functions[name], transforms); err != nil {
			return nil, ErrExpression(fqn, "function «"+name+"»", err)
		}
	}

	for _, f := range ctx.functions {
		types.SetFunction(f.Function)
	}
	final := types.Build()

	for _, phase := range []struct {
		part string
		e    *expression.Expression
	}{{"first phase", first}, {"second phase", second}} {
		if phase.e == nil {
			continue
		}
		t, err := final.TypeOf(phase.e.Root())
		if err != nil {
			return nil, ErrExpression(fqn, phase.part, err)
		}
		if !t.IsScalar() {
			return nil, ErrExpression(fqn, phase.part, featuretypes.ErrType("must produce a scalar, got %v", t))
		}
	}

	summaryFeatures, matchFeatures := p.SummaryFeatures(), p.MatchFeatures()
	for _, declared := range []struct {
		part     string
		features []string
	}{{"summary features", summaryFeatures}, {"match features", matchFeatures}} {
		for _, f := range declared.features {
			if err := resolveFeature(final, f); err != nil {
				return nil, ErrExpression(fqn, declared.part, err)
			}
		}
	}

	c := &Compiled{
		Name:                      p.name,
		Schema:                    p.SchemaName(),
		FirstPhase:                first,
		SecondPhase:               second,
		Functions:                 ctx.functions,
		Constants:                 constants,
		RankProperties:            append(p.RankProperties(), ctx.properties...),
		RankSettings:              p.RankSettings(),
		SummaryFeatures:           summaryFeatures,
		MatchFeatures:             matchFeatures,
		RankFeatures:              p.RankFeatures(),
		FilterFields:              p.FilterFields(),
		IgnoreDefaultRankFeatures: p.IgnoreDefaultRankFeatures(),
		RerankCount:               p.RerankCount(),
		KeepRankCount:             p.KeepRankCount(),
		NumThreadsPerSearch:       p.NumThreadsPerSearch(),
		MinHitsPerThread:          p.MinHitsPerThread(),
		NumSearchPartitions:       p.NumSearchPartitions(),
		TermwiseLimit:             p.TermwiseLimit(),
		MatchPhase:                p.MatchPhase(),
		Diversity:                 p.Diversity(),
		Types:                     final,
	}

	if logger.IsVerbose() {
		logger.Verbose(fmt.Sprintf("rank profile «%s» compiled: %d functions, %d rank properties", fqn, len(c.Functions), len(c.RankProperties)))
	}
	return c, nil
}

// Collects types of inputs, attributes, constants, query profile features
// and onnx model outputs
func (p *RankProfile) featureTypes(queryProfiles *queryprofile.Registry, models onnx.IModels,
	constants map[string]*schema.Constant, functions map[string]*Function) (*featuretypes.Builder, error) {
	b := featuretypes.NewBuilder()

	inputs := p.Inputs()
	declared := map[string]bool{}
	for key, in := range inputs {
		b.Set(key, in.Type)
		declared[key] = true
	}

	if p.schema != nil {
		for _, f := range p.schema.ConcreteFields() {
			if f.Attribute {
				b.Set(expression.FeatureKey(expression.FeatureAttribute, f.Name), f.AttributeType())
			}
		}
		for _, f := range p.schema.Imported() {
			if f.Target != nil && f.Target.Attribute {
				b.Set(expression.FeatureKey(expression.FeatureAttribute, f.Name), f.Target.AttributeType())
			}
		}
	}

	for name, c := range constants {
		b.Set(expression.FeatureKey(expression.FeatureConstant, name), c.Type)
	}

	if queryProfiles != nil {
		features, err := queryProfiles.Features(declared)
		if err != nil {
			return nil, ErrInvalidProfile(p.FullName(), err)
		}
		for key, t := range features {
			b.Set(key, t)
		}
	}

	for _, f := range functions {
		b.SetFunction(f.Function)
	}

	if models != nil {
		onnxModels := p.OnnxModels()
		for _, name := range sortedKeys(onnxModels) {
			if err := p.onnxTypes(b, onnxModels[name], models, functions); err != nil {
				return nil, err
			}
		}
	}
	return b, nil
}

// Sets types of model outputs: `onnx(model)` for default output and
// `onnx(model).alias` for every output
func (p *RankProfile) onnxTypes(b *featuretypes.Builder, m *onnx.Model, models onnx.IModels, functions map[string]*Function) error {
	fqn := p.FullName()
	info, ok := models.ModelInfo(m.Path)
	if !ok {
		return ErrRankProfile(fqn, "metadata of onnx model «%s» not found at «%s»", m.Name, m.Path)
	}

	ctx := b.Build()
	inputTypes := map[string]tensor.Type{}
	for _, input := range info.Inputs() {
		source := m.InputSource(input)
		ref, err := expression.ParseReference(source)
		if err != nil {
			return ErrExpression(fqn, fmt.Sprintf("onnx model «%s» input «%s»", m.Name, input), err)
		}
		if _, isFunction := functions[ref.Name]; !ref.IsSimpleFeature() && ref.Name != expression.FeatureRankingExpression && !(isFunction && ref.IsIdentifier()) {
			return ErrRankProfile(fqn, "onnx model «%s» input «%s»: «%s» is neither a simple feature nor a function", m.Name, input, source)
		}
		t, err := ctx.Type(ref)
		if err != nil {
			return ErrExpression(fqn, fmt.Sprintf("onnx model «%s» input «%s»", m.Name, input), err)
		}
		inputTypes[input] = t
	}

	key := expression.FeatureKey(expression.FeatureOnnx, m.Name)
	for _, output := range info.Outputs() {
		t, err := info.TensorType(output, inputTypes)
		if err != nil {
			return ErrInvalidProfile(fqn, err)
		}
		b.Set(key+"."+m.OutputAlias(output), t)
		if output == info.DefaultOutput() {
			b.Set(key, t)
		}
	}
	return nil
}

// Returns error if feature can not be typed
func resolveFeature(types *featuretypes.Context, feature string) error {
	ref, err := expression.ParseReference(feature)
	if err != nil {
		return err
	}
	_, err = types.Type(ref)
	return err
}

func (ctx *TransformContext) compileFunction(f *Function, transforms []Transform) error {
	ctx.arguments = f.Arguments
	defer func() { ctx.arguments = nil }()
	body, err := ctx.apply(f.Body, transforms)
	if err != nil {
		return err
	}
	f.Function = f.Function.WithBody(body)
	return nil
}

// Applies transforms to expression. Returns nil for nil expression
func (ctx *TransformContext) apply(e *expression.Expression, transforms []Transform) (*expression.Expression, error) {
	if e == nil {
		return nil, nil
	}
	root := e.Root()
	for _, t := range transforms {
		var err error
		if root, err = t.Transform(root, ctx); err != nil {
			return nil, err
		}
	}
	return expression.New(e.Name(), root), nil
}

// Returns profile being compiled
func (ctx *TransformContext) Profile() *RankProfile { return ctx.profile }

// Returns constant visible to profile
func (ctx *TransformContext) Constant(name string) (*schema.Constant, bool) {
	c, ok := ctx.constants[name]
	return c, ok
}

// Returns function of profile, including functions added by transforms
func (ctx *TransformContext) Function(name string) (*Function, bool) {
	f, ok := ctx.functions[name]
	return f, ok
}

// Returns names of all functions, sorted
func (ctx *TransformContext) Functions() []string { return sortedKeys(ctx.functions) }

// Returns compiled inline function
func (ctx *TransformContext) Inline(name string) (*Function, bool) {
	f, ok := ctx.inline[name]
	return f, ok
}

// Returns types of features known before expressions are compiled
func (ctx *TransformContext) Types() *featuretypes.Context { return ctx.types }

// Returns true if identifier is a formal argument of function being compiled
func (ctx *TransformContext) IsArgument(name string) bool {
	return slices.Contains(ctx.arguments, name)
}

// Adds function, it is compiled after the functions declared by profile
func (ctx *TransformContext) AddFunction(name string, args []string, body *expression.Expression) error {
	if _, ok := ctx.functions[name]; ok {
		return ErrTransform("function «%s» already exists", name)
	}
	if _, ok := ctx.constants[name]; ok {
		return ErrNameCollision(ctx.profile.FullName(), name)
	}
	if ctx.generated >= MaxGeneratedFunctions {
		return ErrTransform("too many generated functions, max is %d", MaxGeneratedFunctions)
	}
	ctx.generated++
	ctx.functions[name] = &Function{Function: expression.NewFunction(name, args, body)}
	return nil
}

// Adds rank property, same name and value pair is added once
func (ctx *TransformContext) AddRankProperty(name, value string) {
	p := RankProperty{Name: name, Value: value}
	if !slices.Contains(ctx.properties, p) {
		ctx.properties = append(ctx.properties, p)
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := maps.Keys(m)
	slices.Sort(keys)
	return keys
}
