/*
 * Copyright (c) 2026-present unTill Software Development Group B.V.
 */

package onnx

import (
	"errors"
	"fmt"
)

var ErrModelError = errors.New("onnx model error")

func ErrModel(path string, msg string, args ...any) error {
	return fmt.Errorf("%w «%s»: %s", ErrModelError, path, fmt.Sprintf(msg, args...))
}
