/*
 * Copyright (c) 2026-present unTill Software Development Group B.V.
 */

package application

import (
	"github.com/voedger/searchschema/pkg/coreutils"
	"github.com/voedger/searchschema/pkg/onnx"
	"github.com/voedger/searchschema/pkg/queryprofile"
	"github.com/voedger/searchschema/pkg/rankprofile"
)

// Returns empty package
func NewPackage() *Package {
	return &Package{
		RankProfiles:  rankprofile.NewRegistry(),
		QueryProfiles: queryprofile.NewRegistry(),
		Models:        onnx.NewModels(),
	}
}

// Loads package from dir of file system.
//
// Package layout:
//
//	schemas/*.yaml              schemas, one per file, with their rank profiles
//	rank-profiles/*.yaml        global rank profiles, one per file
//	query-profile-types/*.yaml  query profile types, one per file
//	models/*.yaml               onnx models metadata, one per file
func LoadPackage(fs coreutils.IReadFS, dir string) (*Package, error) {
	return loadPackageImpl(fs, dir)
}

// Builds application from package: document model, cross-schema references
// and compiled rank profiles.
//
// Rank profiles are compiled with rankprofile.DefaultTransforms() unless
// other transforms are set by options.
func Build(pkg *Package, opts ...Option) (*Application, error) {
	c := newBuildContext(pkg, opts...)
	if err := c.build(); err != nil {
		return nil, err
	}
	return c.app, nil
}

// Sets transforms to compile rank profiles with
func WithTransforms(transforms ...rankprofile.Transform) Option {
	return func(o *options) {
		o.transforms = transforms
	}
}

// Rank profiles are validated but not compiled
func WithoutCompile() Option {
	return func(o *options) {
		o.compile = false
	}
}
