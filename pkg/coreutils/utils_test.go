/*
 * Copyright (c) 2026-present unTill Software Development Group B.V.
 */

package coreutils

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
)

type errUnwrapper struct {
	errs []error
}

func (e errUnwrapper) Error() string   { return "wrapped" }
func (e errUnwrapper) Unwrap() []error { return e.errs }

func TestSplitErrors(t *testing.T) {
	require := require.New(t)
	err := errors.New("err1")
	require.Equal([]error{err}, SplitErrors(err))
	require.Nil(SplitErrors(nil))
	wrapped := errUnwrapper{[]error{err, err}}
	require.Equal([]error{err, err}, SplitErrors(wrapped))

	err2 := errors.New("err2")
	require.Equal([]error{err, err2}, SplitErrors(errors.Join(err, err2)))
}

func TestDirFiles(t *testing.T) {
	require := require.New(t)

	fsys := fstest.MapFS{
		"pkg/schemas/b.yaml":     {Data: []byte("name: b")},
		"pkg/schemas/a.YML":      {Data: []byte("name: a")},
		"pkg/schemas/readme.md":  {Data: []byte("#")},
		"pkg/schemas/sub/c.yaml": {Data: []byte("name: c")},
	}

	t.Run("should list files with extensions", func(t *testing.T) {
		files, err := DirFiles(fsys, "pkg/schemas", ".yaml", ".yml")
		require.NoError(err)
		require.Equal([]string{"pkg/schemas/a.YML", "pkg/schemas/b.yaml"}, files)
	})

	t.Run("should be no files in missing dir", func(t *testing.T) {
		files, err := DirFiles(fsys, "pkg/models", ".yaml")
		require.NoError(err)
		require.Empty(files)
	})

	t.Run("should read files by path reader", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(os.MkdirAll(filepath.Join(root, "schemas"), 0o755))
		require.NoError(os.WriteFile(filepath.Join(root, "schemas", "a.yaml"), []byte("name: a"), 0o600))

		r := NewPathReader(root)
		files, err := DirFiles(r, "schemas", ".yaml")
		require.NoError(err)
		require.Equal([]string{"schemas/a.yaml"}, files)

		data, err := r.ReadFile(files[0])
		require.NoError(err)
		require.Equal("name: a", string(data))

		files, err = DirFiles(r, "models", ".yaml")
		require.NoError(err)
		require.Empty(files)
	})
}

func TestIsBlank(t *testing.T) {
	require := require.New(t)
	require.True(IsBlank(" \t\n"))
	require.False(IsBlank(" a "))
}
