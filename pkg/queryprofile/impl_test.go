/*
 * Copyright (c) 2026-present unTill Software Development Group B.V.
 */

package queryprofile

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/voedger/searchschema/pkg/tensor"
)

func Test_Registry(t *testing.T) {
	require := require.New(t)

	t.Run("should be ok to collect query features", func(t *testing.T) {
		r := NewRegistry()
		require.NoError(r.Add(&Type{Name: "root", Fields: []Field{
			{Name: "query(q)", Type: tensor.MustParse("tensor<float>(x[3])")},
			{Name: "ranking.features.query(w)", Type: tensor.Empty},
			{Name: "hits", Type: tensor.Empty},
		}}))
		require.NoError(r.Add(&Type{Name: "other", Fields: []Field{
			{Name: "ranking.features.query(q)", Type: tensor.MustParse("tensor<float>(x[5])")},
			{Name: "query(skipped)", Type: tensor.MustParse("tensor(y{})")},
		}}))
		require.ErrorIs(r.Add(&Type{Name: "root"}), ErrDuplicateTypeError)
		require.Equal("other", r.Type("other").Name)
		require.Len(r.Types(), 2)

		features, err := r.Features(map[string]bool{"query(skipped)": true})
		require.NoError(err)
		require.Equal(map[string]tensor.Type{
			"query(q)": tensor.MustParse("tensor<float>(x[])"),
			"query(w)": tensor.Empty,
		}, features)
	})

	t.Run("should be error naming both types if declarations conflict", func(t *testing.T) {
		r := NewRegistry()
		require.NoError(r.Add(&Type{Name: "first", Fields: []Field{{Name: "query(myFeature)", Type: tensor.MustParse("tensor(x[3])")}}}))
		require.NoError(r.Add(&Type{Name: "second", Fields: []Field{{Name: "query(myFeature)", Type: tensor.MustParse("tensor(y{})")}}}))

		_, err := r.Features(nil)
		require.ErrorIs(err, ErrConflictError)
		require.ErrorContains(err, "«first»")
		require.ErrorContains(err, "«second»")
		require.ErrorContains(err, "«query(myFeature)»")

		features, err := r.Features(map[string]bool{"query(myFeature)": true})
		require.NoError(err)
		require.Empty(features)
	})

	t.Run("should be ok to recognize feature names", func(t *testing.T) {
		for field, expected := range map[string]string{
			"query(a)":                  "query(a)",
			"ranking.features.query(b)": "query(b)",
			"query()":                   "",
			"ranking.features.other":    "",
			"hits":                      "",
		} {
			f, ok := FeatureName(field)
			require.Equal(expected != "", ok, field)
			require.Equal(expected, f, field)
		}
	})
}
