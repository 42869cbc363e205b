/*
 * Copyright (c) 2026-present unTill Software Development Group B.V.
 */

package main

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/untillpro/goutils/cobrau"
)

//go:embed version
var version string

func main() {
	if err := execRootCmd(os.Args, version); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func execRootCmd(args []string, ver string) error {
	rootCmd := cobrau.PrepareRootCmd(
		"schemac",
		"search schema compiler",
		args,
		ver,
		newCompileCmd(),
		newVersionCmd(ver),
	)

	return cobrau.ExecCommandAndCatchInterrupt(rootCmd)
}

func newVersionCmd(ver string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Prints the version of the schemac utility",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("schemac version", ver)
		},
	}
}
