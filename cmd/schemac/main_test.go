/*
 * Copyright (c) 2026-present unTill Software Development Group B.V.
 */

package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/voedger/searchschema/pkg/rankprofile"
)

func TestBasicUsage(t *testing.T) {
	require := require.New(t)

	t.Run("should compile package", func(t *testing.T) {
		err := execRootCmd([]string{"schemac", "compile", "testdata/app"}, "1.0.0")
		require.NoError(err)
	})

	t.Run("should validate package only", func(t *testing.T) {
		err := execRootCmd([]string{"schemac", "compile", "--validate-only", "testdata/app"}, "1.0.0")
		require.NoError(err)
	})

	t.Run("should print version", func(t *testing.T) {
		err := execRootCmd([]string{"schemac", "version"}, "1.0.0")
		require.NoError(err)
	})

	t.Run("should be error for invalid package", func(t *testing.T) {
		err := execRootCmd([]string{"schemac", "compile", "testdata/apperr"}, "1.0.0")
		require.ErrorIs(err, rankprofile.ErrRankProfileError)
	})
}

func TestPrintApplication(t *testing.T) {
	require := require.New(t)

	app, err := compile("testdata/app", compileParams{})
	require.NoError(err)

	out := bytes.Buffer{}
	printApplication(&out, app)
	s := out.String()
	require.Contains(s, "rank-profile book.recent\n    first-phase: attribute(year) * 0.5\n")
	require.Contains(s, "    function age() := 2026 - attribute(year)\n")
	require.Contains(s, "    summary-features: age\n")
	require.Contains(s, "rank-profile constant\n    first-phase: 3\n")

	app, err = compile("testdata/app", compileParams{noTransforms: true})
	require.NoError(err)
	out.Reset()
	printApplication(&out, app)
	require.Contains(out.String(), "first-phase: 1 + 2\n")
}
