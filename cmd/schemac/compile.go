/*
 * Copyright (c) 2026-present unTill Software Development Group B.V.
 */

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/untillpro/goutils/logger"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/voedger/searchschema/pkg/application"
	"github.com/voedger/searchschema/pkg/coreutils"
)

type compileParams struct {
	validateOnly bool
	noTransforms bool
}

func newCompileCmd() *cobra.Command {
	params := compileParams{}
	cmd := &cobra.Command{
		Use:   "compile [dir]",
		Short: "compile application package",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			app, err := compile(dir, params)
			if err != nil {
				return err
			}
			printApplication(os.Stdout, app)
			return nil
		},
	}
	cmd.Flags().BoolVar(&params.validateOnly, "validate-only", false, "validate rank profiles without compiling")
	cmd.Flags().BoolVar(&params.noTransforms, "no-transforms", false, "compile rank profiles without expression transforms")
	return cmd
}

// compile loads and builds application package in dir
func compile(dir string, params compileParams) (*application.Application, error) {
	if logger.IsVerbose() {
		logger.Verbose("compiling " + dir)
	}
	pkg, err := application.LoadPackage(coreutils.NewPathReader(dir), ".")
	if err != nil {
		return nil, err
	}

	opts := []application.Option{}
	if params.validateOnly {
		opts = append(opts, application.WithoutCompile())
	}
	if params.noTransforms {
		opts = append(opts, application.WithTransforms())
	}

	app, err := application.Build(pkg, opts...)
	if err != nil {
		errs := coreutils.SplitErrors(err)
		for _, e := range errs {
			logger.Error(e)
		}
		return nil, errors.Join(errs...)
	}
	if logger.IsVerbose() {
		logger.Verbose("compiling succeeded")
	}
	return app, nil
}

func printApplication(w io.Writer, app *application.Application) {
	for _, d := range app.Model.Documents() {
		fmt.Fprintf(w, "%v\n", d)
		for _, f := range d.AllFields() {
			fmt.Fprintf(w, "    %s: %v\n", f.Name, f.Type)
		}
	}
	for _, c := range app.Compiled {
		name := c.Name
		if c.Schema != "" {
			name = c.Schema + "." + c.Name
		}
		fmt.Fprintf(w, "rank-profile %s\n", name)
		if c.FirstPhase != nil {
			fmt.Fprintf(w, "    first-phase: %v\n", c.FirstPhase)
		}
		if c.SecondPhase != nil {
			fmt.Fprintf(w, "    second-phase: %v\n", c.SecondPhase)
		}
		names := maps.Keys(c.Functions)
		slices.Sort(names)
		for _, n := range names {
			fmt.Fprintf(w, "    function %v\n", c.Functions[n])
		}
		for _, p := range c.RankProperties {
			fmt.Fprintf(w, "    property %s: %s\n", p.Name, p.Value)
		}
		if len(c.SummaryFeatures) > 0 {
			fmt.Fprintf(w, "    summary-features: %s\n", strings.Join(c.SummaryFeatures, " "))
		}
	}
}
