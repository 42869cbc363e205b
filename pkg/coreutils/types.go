/*
 * Copyright (c) 2026-present unTill Software Development Group B.V.
 */

package coreutils

import (
	"io/fs"
	"os"
	"path/filepath"
)

// File system of application package: embed.FS in tests, PathReader for directories
type IReadFS interface {
	fs.ReadDirFS
	fs.ReadFileFS
}

// Reads files relative to root directory
type PathReader struct {
	rootPath string
}

func NewPathReader(rootPath string) *PathReader {
	return &PathReader{
		rootPath: rootPath,
	}
}

func (r *PathReader) Open(name string) (fs.File, error) {
	return os.Open(filepath.Join(r.rootPath, name))
}

func (r *PathReader) ReadDir(name string) ([]os.DirEntry, error) {
	return os.ReadDir(filepath.Join(r.rootPath, name))
}

func (r *PathReader) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(filepath.Join(r.rootPath, name))
}

type IErrUnwrapper interface {
	Unwrap() []error
}
