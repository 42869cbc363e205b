/*
 * Copyright (c) 2026-present unTill Software Development Group B.V.
 */

package tensor

import (
	"errors"
	"fmt"
)

var ErrInvalidTypeError = errors.New("invalid tensor type")

func ErrInvalidType(msg string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidTypeError, fmt.Sprintf(msg, args...))
}

var ErrIncompatibleError = errors.New("incompatible tensor types")

func ErrIncompatible(a, b Type, msg string, args ...any) error {
	return fmt.Errorf("%w: %v and %v: %s", ErrIncompatibleError, a, b, fmt.Sprintf(msg, args...))
}
