/*
 * Copyright (c) 2026-present unTill Software Development Group B.V.
 */

package coreutils

import (
	"errors"
	"io/fs"
	"path"
	"strings"

	"golang.org/x/exp/slices"
)

func IsBlank(str string) bool {
	return len(strings.TrimSpace(str)) == 0
}

// Returns errors joined by errors.Join, or error itself
func SplitErrors(joinedError error) (errs []error) {
	if joinedError != nil {
		var pErr IErrUnwrapper
		if errors.As(joinedError, &pErr) {
			return pErr.Unwrap()
		}
		return []error{joinedError}
	}
	return
}

// Returns sorted paths of files in dir with given extensions, case insensitive.
// Missing dir has no files
func DirFiles(fsys IReadFS, dir string, exts ...string) ([]string, error) {
	entries, err := fsys.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	res := []string{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if slices.Contains(exts, strings.ToLower(path.Ext(entry.Name()))) {
			res = append(res, path.Join(dir, entry.Name()))
		}
	}
	slices.Sort(res)
	return res, nil
}
