/*
 * Copyright (c) 2026-present unTill Software Development Group B.V.
 */

package queryprofile

import (
	"errors"
	"fmt"

	"github.com/voedger/searchschema/pkg/tensor"
)

var ErrDuplicateTypeError = errors.New("duplicate query profile type")

func ErrDuplicateType(name string) error {
	return fmt.Errorf("%w «%s»", ErrDuplicateTypeError, name)
}

var ErrConflictError = errors.New("conflicting query feature types")

func ErrConflict(feature string, first, second string, a, b tensor.Type) error {
	return fmt.Errorf("%w: «%s» is %v in query profile type «%s» and %v in query profile type «%s»",
		ErrConflictError, feature, a, first, b, second)
}
