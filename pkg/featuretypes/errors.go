/*
 * Copyright (c) 2026-present unTill Software Development Group B.V.
 */

package featuretypes

import (
	"errors"
	"fmt"
	"strings"
)

var ErrTypeError = errors.New("type error")

func ErrType(msg string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrTypeError, fmt.Sprintf(msg, args...))
}

func ErrUnknownFeature(feature string) error {
	return ErrType("unknown feature «%s»", feature)
}

func ErrInvocationLoop(path []string, function string) error {
	return ErrType("invocation loop: %s -> %s", strings.Join(path, " -> "), function)
}
