/*
 * Copyright (c) 2026-present unTill Software Development Group B.V.
 */

package application

import (
	"errors"
	"fmt"
)

var ErrDirContainsNoSchemaFiles = errors.New("no schema files in package")

var ErrInvalidPackageError = errors.New("invalid application package")

func ErrInvalidPackage(file string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrInvalidPackageError, file, err)
}

func ErrInvalidDefinition(file string, msg string, args ...any) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalidPackageError, file, fmt.Sprintf(msg, args...))
}

var ErrInvalidSchemaError = errors.New("invalid schema")

func ErrInvalidSchema(msg string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidSchemaError, fmt.Sprintf(msg, args...))
}
