/*
 * Copyright (c) 2026-present unTill Software Development Group B.V.
 */

package application

import (
	"errors"
	"fmt"

	"github.com/untillpro/goutils/logger"

	"github.com/voedger/searchschema/pkg/documentmodel"
	"github.com/voedger/searchschema/pkg/onnx"
	"github.com/voedger/searchschema/pkg/rankprofile"
	"github.com/voedger/searchschema/pkg/schema"
)

func newBuildContext(pkg *Package, opts ...Option) *buildContext {
	c := &buildContext{
		pkg: pkg,
		opts: options{
			transforms: rankprofile.DefaultTransforms(),
			compile:    true,
		},
		app:  &Application{Schemas: pkg.Schemas, Profiles: pkg.RankProfiles},
		errs: make([]error, 0),
	}
	for _, o := range opts {
		o(&c.opts)
	}
	if c.app.Profiles == nil {
		c.app.Profiles = rankprofile.NewRegistry()
	}
	return c
}

// Runs build steps. Step which fails stops the build, errors of all items
// of failed step are returned
func (c *buildContext) build() error {
	var steps = []buildFunc{
		c.schemas,
		c.documentModel,
		c.references,
		c.importedFields,
		c.profiles,
		c.compile,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
		if len(c.errs) > 0 {
			return errors.Join(c.errs...)
		}
	}
	return nil
}

// Checks schema names and adds builtin rank profiles
func (c *buildContext) schemas() error {
	names := map[string]bool{}
	for _, s := range c.pkg.Schemas {
		switch {
		case s.Name == "":
			c.errs = append(c.errs, ErrInvalidSchema("schema without name"))
			continue
		case names[s.Name]:
			c.errs = append(c.errs, ErrInvalidSchema("duplicate schema «%s»", s.Name))
			continue
		}
		names[s.Name] = true
		if err := c.app.Profiles.AddBuiltins(s); err != nil {
			c.errs = append(c.errs, err)
		}
	}
	return nil
}

func (c *buildContext) documentModel() (err error) {
	if c.app.Model, err = documentmodel.Build(schema.ModelInput(c.pkg.Schemas)); err != nil {
		return err
	}
	if logger.IsVerbose() {
		logger.Verbose(fmt.Sprintf("document model built: %d documents, %d structs", len(c.app.Model.Documents()), len(c.app.Model.Structs())))
		for _, s := range c.app.Model.Substitutions() {
			logger.Verbose(fmt.Sprintf("type %v replaced by %v", s.Old, s.New))
		}
	}
	return nil
}

func (c *buildContext) references() error {
	return schema.ResolveReferences(c.pkg.Schemas)
}

func (c *buildContext) importedFields() error {
	return schema.ResolveImportedFields(c.pkg.Schemas)
}

// Validates inheritance and settings of all rank profiles
func (c *buildContext) profiles() error {
	for _, p := range c.app.Profiles.All() {
		if err := p.Validate(); err != nil {
			c.errs = append(c.errs, err)
		}
	}
	return nil
}

func (c *buildContext) compile() error {
	if !c.opts.compile {
		return nil
	}
	var models onnx.IModels
	if c.pkg.Models != nil {
		models = c.pkg.Models
	}
	for _, p := range c.app.Profiles.All() {
		compiled, err := p.Compile(c.pkg.QueryProfiles, models, c.opts.transforms...)
		if err != nil {
			c.errs = append(c.errs, err)
			continue
		}
		c.app.Compiled = append(c.app.Compiled, compiled)
	}
	if logger.IsVerbose() {
		logger.Verbose(fmt.Sprintf("%d rank profiles compiled", len(c.app.Compiled)))
	}
	return nil
}
