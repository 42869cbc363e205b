/*
 * Copyright (c) 2026-present unTill Software Development Group B.V.
 */

package application

import (
	"embed"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"github.com/voedger/searchschema/pkg/coreutils"
	"github.com/voedger/searchschema/pkg/documentmodel"
	"github.com/voedger/searchschema/pkg/rankprofile"
	"github.com/voedger/searchschema/pkg/schema"
)

//go:embed testdata/music
var musicFS embed.FS

func Test_BuildPackage(t *testing.T) {
	require := require.New(t)

	pkg, err := LoadPackage(musicFS, "testdata/music")
	require.NoError(err)
	require.Len(pkg.Schemas, 3)
	require.Equal("artist", pkg.Schemas[0].Name)
	require.Len(pkg.QueryProfiles.Types(), 1)
	_, ok := pkg.Models.ModelInfo("models/ranker.onnx")
	require.True(ok)

	app, err := Build(pkg)
	require.NoError(err)

	t.Run("should build document model", func(t *testing.T) {
		music := app.Model.Document("music")
		require.NotNil(music)
		require.True(music.IsA(app.Model.Document("base")))
		f, ok := music.Field("popularity")
		require.True(ok)
		require.Equal(documentmodel.TypeInt, f.Type.Name())

		credit := app.Model.Type("credit")
		require.NotNil(credit)
		require.Equal(documentmodel.Kind_Struct, credit.Kind())
		require.NotNil(app.Model.Annotation("highlight"))
	})

	t.Run("should resolve references and imported fields", func(t *testing.T) {
		music := app.Schema("music")
		refs := music.Document.References()
		require.Len(refs, 1)
		require.Same(app.Schema("artist"), refs[0].Target)

		imported := music.Imported()
		require.Len(imported, 1)
		require.Equal("rating", imported[0].Target.Name)
	})

	t.Run("should compile all rank profiles", func(t *testing.T) {
		require.Len(app.Compiled, 10)

		popular := app.Profile("music", "popular")
		require.NotNil(popular)
		require.Equal("attribute(popularity) * 2", popular.FirstPhase.String())
		require.Equal("attribute(artist_rating) + 1", popular.SecondPhase.String())
		require.Equal(200, popular.RerankCount)
		require.Equal([]string{"attribute(artist_rating)"}, popular.SummaryFeatures)

		semantic := app.Profile("music", "semantic")
		require.NotNil(semantic)
		require.Equal("similarity * 10", semantic.FirstPhase.String())
		require.Equal("sum(onnx(ranker).relevance)", semantic.SecondPhase.String())
		require.Equal("popularity", semantic.MatchPhase.Attribute)
		require.Contains(semantic.RankProperties, rankprofile.RankProperty{Name: "vespa.hitcollector.heapsize", Value: "100"})
		require.Equal("tensor<float>(s[1])", semantic.Types.Types()["onnx(ranker)"].String())
		require.Contains(semantic.RankSettings, rankprofile.RankSetting{Field: "title", Kind: rankprofile.RankSettingKind_Weight, Value: 200})
		require.Contains(semantic.RankSettings, rankprofile.RankSetting{Field: "title", Kind: rankprofile.RankSettingKind_PreferBitVector, Value: true})

		freshness := app.Profile("", "freshness")
		require.NotNil(freshness)
		require.Equal(50, freshness.RerankCount)

		unranked := app.Profile("artist", rankprofile.UnrankedProfile)
		require.NotNil(unranked)
		require.Equal("0", unranked.FirstPhase.String())
	})
}

func Test_BuildOptions(t *testing.T) {
	require := require.New(t)

	pkg, err := LoadPackage(musicFS, "testdata/music")
	require.NoError(err)

	t.Run("should not compile profiles", func(t *testing.T) {
		app, err := Build(pkg, WithoutCompile())
		require.NoError(err)
		require.Empty(app.Compiled)
		require.Len(app.Profiles.All(), 10)
	})

	t.Run("should compile with given transforms", func(t *testing.T) {
		app, err := Build(pkg, WithTransforms())
		require.NoError(err)
		require.Equal("attribute(popularity) * boost", app.Profile("music", "popular").FirstPhase.String())
	})
}

func Test_BuildErrors(t *testing.T) {
	require := require.New(t)

	t.Run("should be error if schema names are bad", func(t *testing.T) {
		pkg := NewPackage()
		pkg.Schemas = []*schema.Schema{{Name: "a"}, {Name: "a"}, {}}
		_, err := Build(pkg)
		errs := coreutils.SplitErrors(err)
		require.Len(errs, 2)
		require.ErrorIs(errs[0], ErrInvalidSchemaError)
		require.ErrorContains(errs[0], "duplicate schema «a»")
		require.ErrorContains(errs[1], "schema without name")
	})

	t.Run("should be error if document model can not be built", func(t *testing.T) {
		pkg := NewPackage()
		pkg.Schemas = []*schema.Schema{{Name: "a", Document: &schema.Document{Name: "a", Inherits: []string{"unknown"}}}}
		_, err := Build(pkg)
		require.ErrorIs(err, documentmodel.ErrStructuralError)
	})

	t.Run("should return errors of all invalid profiles", func(t *testing.T) {
		pkg := NewPackage()
		s := &schema.Schema{Name: "a", Document: &schema.Document{Name: "a"}}
		pkg.Schemas = []*schema.Schema{s}
		for _, name := range []string{"p1", "p2"} {
			p := rankprofile.New(name, s)
			p.SetInherits("unknown")
			require.NoError(pkg.RankProfiles.Add(p))
		}
		_, err := Build(pkg)
		errs := coreutils.SplitErrors(err)
		require.Len(errs, 2)
		require.ErrorIs(errs[0], rankprofile.ErrRankProfileError)
		require.ErrorContains(errs[1], "«a.p2»")
	})
}

func Test_LoadErrors(t *testing.T) {
	require := require.New(t)

	tests := []struct {
		name  string
		files fstest.MapFS
		err   string
	}{
		{"no schemas", fstest.MapFS{"pkg/rank-profiles/p.yaml": {Data: []byte("name: p")}}, "no schema files"},
		{"malformed yaml", fstest.MapFS{"pkg/schemas/a.yaml": {Data: []byte("name: [")}}, "pkg/schemas/a.yaml"},
		{"unknown key", fstest.MapFS{"pkg/schemas/a.yaml": {Data: []byte("name: a\ncolour: red")}}, "colour"},
		{"no schema name", fstest.MapFS{"pkg/schemas/a.yaml": {Data: []byte("document: {}")}}, "schema name is missed"},
		{"bad field type", fstest.MapFS{"pkg/schemas/a.yaml": {Data: []byte("name: a\ndocument:\n  fields:\n    - name: f\n      type: map<int>")}}, "pkg/schemas/a.yaml"},
		{"bad indexing", fstest.MapFS{"pkg/schemas/a.yaml": {Data: []byte("name: a\ndocument:\n  fields:\n    - name: f\n      type: int\n      indexing: [fast]")}}, "unknown indexing «fast»"},
		{"bad rank type", fstest.MapFS{"pkg/schemas/a.yaml": {Data: []byte("name: a\ndocument:\n  fields:\n    - name: f\n      type: string\n      rank-type: loud")}}, "loud"},
		{"bad expression", fstest.MapFS{
			"pkg/schemas/a.yaml":       {Data: []byte("name: a")},
			"pkg/rank-profiles/p.yaml": {Data: []byte("name: p\nfirst-phase: 1 +")},
		}, "pkg/rank-profiles/p.yaml"},
		{"duplicate profile", fstest.MapFS{
			"pkg/schemas/a.yaml":       {Data: []byte("name: a")},
			"pkg/rank-profiles/p.yaml": {Data: []byte("name: p")},
			"pkg/rank-profiles/q.yaml": {Data: []byte("name: p")},
		}, "already exists in «global»"},
		{"bad model", fstest.MapFS{
			"pkg/schemas/a.yaml": {Data: []byte("name: a")},
			"pkg/models/m.yaml":  {Data: []byte("path: m.onnx\ninputs:\n  - name: x\n    type: tensor(x[1])")},
		}, "model has no outputs"},
		{"bad tensor type", fstest.MapFS{
			"pkg/schemas/a.yaml":             {Data: []byte("name: a")},
			"pkg/query-profile-types/q.yaml": {Data: []byte("name: q\nfields:\n  - name: query(x)\n    type: tensor(x[")},
		}, "pkg/query-profile-types/q.yaml"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := LoadPackage(test.files, "pkg")
			require.Error(err)
			require.ErrorContains(err, test.err)
		})
	}

	t.Run("should collect errors of all files", func(t *testing.T) {
		_, err := LoadPackage(fstest.MapFS{
			"pkg/schemas/a.yaml": {Data: []byte("name: [")},
			"pkg/schemas/b.yaml": {Data: []byte("document: {}")},
		}, "pkg")
		errs := coreutils.SplitErrors(err)
		require.Len(errs, 2)
		require.ErrorIs(errs[0], ErrInvalidPackageError)
		require.ErrorIs(errs[1], ErrInvalidPackageError)
	})
}
