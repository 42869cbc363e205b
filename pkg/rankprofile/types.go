/*
 * Copyright (c) 2026-present unTill Software Development Group B.V.
 */

package rankprofile

import (
	"github.com/voedger/searchschema/pkg/expression"
	"github.com/voedger/searchschema/pkg/featuretypes"
	"github.com/voedger/searchschema/pkg/onnx"
	"github.com/voedger/searchschema/pkg/schema"
	"github.com/voedger/searchschema/pkg/tensor"
)

// Named, inheritable ranking configuration.
//
// Profile keeps only settings declared locally. Read accessors return the
// local value if set, otherwise the value of the inherited profile, otherwise
// a default.
type RankProfile struct {
	name     string
	schema   *schema.Schema
	registry *Registry
	inherits string

	firstPhase, secondPhase *expression.Expression

	functions      map[string]*Function
	rankSettings   []RankSetting
	rankProperties []RankProperty
	constants      map[string]*schema.Constant
	onnxModels     map[string]*onnx.Model
	inputs         map[string]Input

	summaryFeatures        []string
	inheritSummaryFeatures string
	matchFeatures          []string
	inheritMatchFeatures   string
	rankFeatures           []string
	filterFields           []string

	ignoreDefaultRankFeatures *bool
	rerankCount               *int
	keepRankCount             *int
	numThreadsPerSearch       *int
	minHitsPerThread          *int
	numSearchPartitions       *int
	termwiseLimit             *float64

	matchPhase *MatchPhase
	diversity  *Diversity

	parentResolved bool
	parent         *RankProfile
	parentErr      error
}

// User defined function of profile
type Function struct {
	*expression.Function

	// Function body is substituted into callers instead of a call
	Inline bool
}

// Rank setting of field
type RankSetting struct {
	Field string
	Kind  RankSettingKind
	Value any
}

// Key-value pair passed to the search engine
type RankProperty struct {
	Name  string
	Value string
}

// Declared query input feature
type Input struct {
	// Canonical feature name, like `query(q)`
	Name string
	Type tensor.Type

	// Default value, optional
	Default string
}

// Match phase degradation settings
type MatchPhase struct {
	Attribute         string
	Ascending         bool
	MaxHits           int
	MaxFilterCoverage float64
}

// Diversity settings of match phase
type Diversity struct {
	Attribute      string
	MinGroups      int
	CutoffFactor   float64
	CutoffStrategy string
}

// Namespaced rank profiles: per schema and global
type Registry struct {
	profiles   map[string]map[string]*RankProfile
	namespaces []string
	order      []*RankProfile
}

// Profile with all expressions compiled, settings resolved and types checked
type Compiled struct {
	Name   string
	Schema string

	FirstPhase  *expression.Expression
	SecondPhase *expression.Expression

	// Compiled functions by name
	Functions map[string]*Function

	Constants      map[string]*schema.Constant
	RankProperties []RankProperty
	RankSettings   []RankSetting

	SummaryFeatures []string
	MatchFeatures   []string
	RankFeatures    []string
	FilterFields    []string

	IgnoreDefaultRankFeatures bool
	RerankCount               int
	KeepRankCount             int
	NumThreadsPerSearch       int
	MinHitsPerThread          int
	NumSearchPartitions       int
	TermwiseLimit             float64

	MatchPhase *MatchPhase
	Diversity  *Diversity

	// Types of features used by expressions
	Types *featuretypes.Context
}

// State of expression transforms while profile is compiled
type TransformContext struct {
	profile   *RankProfile
	constants map[string]*schema.Constant
	functions map[string]*Function
	inline    map[string]*Function
	types     *featuretypes.Context

	// Formal arguments of function being compiled
	arguments []string

	generated  int
	properties []RankProperty
}
