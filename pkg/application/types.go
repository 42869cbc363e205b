/*
 * Copyright (c) 2026-present unTill Software Development Group B.V.
 */

package application

import (
	"gopkg.in/yaml.v2"

	"github.com/voedger/searchschema/pkg/documentmodel"
	"github.com/voedger/searchschema/pkg/onnx"
	"github.com/voedger/searchschema/pkg/queryprofile"
	"github.com/voedger/searchschema/pkg/rankprofile"
	"github.com/voedger/searchschema/pkg/schema"
)

// Application package: schemas, rank profiles, query profile types and models metadata
type Package struct {
	Schemas       []*schema.Schema
	RankProfiles  *rankprofile.Registry
	QueryProfiles *queryprofile.Registry
	Models        *onnx.Models
}

// Built application package
type Application struct {
	Schemas  []*schema.Schema
	Model    *documentmodel.Model
	Profiles *rankprofile.Registry

	// Compiled profiles in order of registration
	Compiled []*rankprofile.Compiled
}

type Option func(*options)

type options struct {
	transforms []rankprofile.Transform
	compile    bool
}

type buildContext struct {
	pkg  *Package
	opts options
	app  *Application
	errs []error
}

type buildFunc func() error

type loadContext struct {
	pkg  *Package
	errs []error
}

// YAML definitions

type schemaDef struct {
	Name           string             `yaml:"name"`
	Document       *documentDef       `yaml:"document"`
	ExtraFields    []fieldDef         `yaml:"extra-fields"`
	Indices        []indexDef         `yaml:"indices"`
	Summaries      []summaryDef       `yaml:"summaries"`
	Constants      []constantDef      `yaml:"constants"`
	OnnxModels     []onnxModelDef     `yaml:"onnx-models"`
	ImportedFields []importedFieldDef `yaml:"imported-fields"`
	RankProfiles   []rankProfileDef   `yaml:"rank-profiles"`
}

type documentDef struct {
	// Schema name if empty
	Name        string          `yaml:"name"`
	ID          int32           `yaml:"id"`
	Inherits    []string        `yaml:"inherits"`
	Fields      []fieldDef      `yaml:"fields"`
	Structs     []structDef     `yaml:"structs"`
	Annotations []annotationDef `yaml:"annotations"`
}

type fieldDef struct {
	Name         string   `yaml:"name"`
	Type         string   `yaml:"type"`
	Indexing     []string `yaml:"indexing"`
	FastSearch   bool     `yaml:"fast-search"`
	Weight       int      `yaml:"weight"`
	RankType     string   `yaml:"rank-type"`
	LiteralBoost int      `yaml:"literal-boost"`
	Filter       bool     `yaml:"filter"`
}

type structDef struct {
	Name     string     `yaml:"name"`
	ID       int32      `yaml:"id"`
	Inherits []string   `yaml:"inherits"`
	Fields   []fieldDef `yaml:"fields"`
}

type annotationDef struct {
	Name     string     `yaml:"name"`
	ID       int32      `yaml:"id"`
	Inherits []string   `yaml:"inherits"`
	Fields   []fieldDef `yaml:"fields"`
}

type indexDef struct {
	Name            string `yaml:"name"`
	PreferBitVector bool   `yaml:"prefer-bitvector"`
}

type summaryDef struct {
	Name     string   `yaml:"name"`
	Fields   []string `yaml:"fields"`
	FromDisk bool     `yaml:"from-disk"`
}

type constantDef struct {
	Name  string   `yaml:"name"`
	Type  string   `yaml:"type"`
	Value *float64 `yaml:"value"`
	File  string   `yaml:"file"`
}

type onnxModelDef struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`

	// Model input to feature, in declaration order
	Inputs yaml.MapSlice `yaml:"inputs"`

	// Model output to alias, in declaration order
	Outputs yaml.MapSlice `yaml:"outputs"`
}

type importedFieldDef struct {
	Name           string `yaml:"name"`
	ReferenceField string `yaml:"reference-field"`
	TargetField    string `yaml:"target-field"`
}

type rankProfileDef struct {
	Name        string `yaml:"name"`
	Inherits    string `yaml:"inherits"`
	FirstPhase  string `yaml:"first-phase"`
	SecondPhase string `yaml:"second-phase"`

	Functions      []functionDef     `yaml:"functions"`
	Inputs         []inputDef        `yaml:"inputs"`
	Constants      []constantDef     `yaml:"constants"`
	OnnxModels     []onnxModelDef    `yaml:"onnx-models"`
	RankProperties []rankPropertyDef `yaml:"rank-properties"`
	RankSettings   []rankSettingDef  `yaml:"rank-settings"`

	SummaryFeatures *featuresDef `yaml:"summary-features"`
	MatchFeatures   *featuresDef `yaml:"match-features"`
	RankFeatures    []string     `yaml:"rank-features"`
	FilterFields    []string     `yaml:"filter-fields"`

	IgnoreDefaultRankFeatures *bool    `yaml:"ignore-default-rank-features"`
	RerankCount               *int     `yaml:"rerank-count"`
	KeepRankCount             *int     `yaml:"keep-rank-count"`
	NumThreadsPerSearch       *int     `yaml:"num-threads-per-search"`
	MinHitsPerThread          *int     `yaml:"min-hits-per-thread"`
	NumSearchPartitions       *int     `yaml:"num-search-partitions"`
	TermwiseLimit             *float64 `yaml:"termwise-limit"`

	MatchPhase *matchPhaseDef `yaml:"match-phase"`
	Diversity  *diversityDef  `yaml:"diversity"`
}

type functionDef struct {
	Name       string   `yaml:"name"`
	Arguments  []string `yaml:"arguments"`
	Expression string   `yaml:"expression"`
	Inline     bool     `yaml:"inline"`
}

type inputDef struct {
	Name    string `yaml:"name"`
	Type    string `yaml:"type"`
	Default string `yaml:"default"`
}

type rankPropertyDef struct {
	Name  string `yaml:"name"`
	Value string `yaml:"value"`
}

type rankSettingDef struct {
	Field           string `yaml:"field"`
	Weight          *int   `yaml:"weight"`
	RankType        string `yaml:"rank-type"`
	LiteralBoost    *int   `yaml:"literal-boost"`
	PreferBitVector *bool  `yaml:"prefer-bitvector"`
}

type featuresDef struct {
	// Name of inherited profile whose features are inherited too
	Inherits string   `yaml:"inherits"`
	Features []string `yaml:"features"`
}

type matchPhaseDef struct {
	Attribute         string  `yaml:"attribute"`
	Ascending         bool    `yaml:"ascending"`
	MaxHits           int     `yaml:"max-hits"`
	MaxFilterCoverage float64 `yaml:"max-filter-coverage"`
}

type diversityDef struct {
	Attribute      string  `yaml:"attribute"`
	MinGroups      int     `yaml:"min-groups"`
	CutoffFactor   float64 `yaml:"cutoff-factor"`
	CutoffStrategy string  `yaml:"cutoff-strategy"`
}

type queryProfileTypeDef struct {
	Name   string     `yaml:"name"`
	Fields []typedDef `yaml:"fields"`
}

type modelDef struct {
	Path    string     `yaml:"path"`
	Inputs  []typedDef `yaml:"inputs"`
	Outputs []typedDef `yaml:"outputs"`
}

type typedDef struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}
