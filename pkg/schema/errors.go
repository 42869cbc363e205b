/*
 * Copyright (c) 2026-present unTill Software Development Group B.V.
 */

package schema

import (
	"errors"
	"fmt"
)

var ErrReferenceError = errors.New("reference error")

func ErrReference(msg string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrReferenceError, fmt.Sprintf(msg, args...))
}

func ErrNotAttribute(schema, field string) error {
	return ErrReference("schema «%s»: reference field «%s» must be an attribute", schema, field)
}

func ErrUnknownTarget(schema, field, target string) error {
	return ErrReference("schema «%s»: reference field «%s» refers unknown document «%s»", schema, field, target)
}

func ErrUnknownParent(schema, parent string) error {
	return ErrReference("schema «%s»: inherited document «%s» not found", schema, parent)
}

func ErrImportedField(schema, field string, msg string, args ...any) error {
	return ErrReference("schema «%s»: imported field «%s»: %s", schema, field, fmt.Sprintf(msg, args...))
}

var ErrInvalidRankTypeError = errors.New("invalid rank type")

func ErrInvalidRankType(s string) error {
	return fmt.Errorf("%w «%s»", ErrInvalidRankTypeError, s)
}
