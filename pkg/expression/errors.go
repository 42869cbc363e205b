/*
 * Copyright (c) 2026-present unTill Software Development Group B.V.
 */

package expression

import (
	"errors"
	"fmt"
)

var ErrSyntaxError = errors.New("ranking expression syntax error")

func ErrSyntax(text string, err error) error {
	return fmt.Errorf("%w: «%s»: %v", ErrSyntaxError, text, err)
}

func ErrNotReference(text string) error {
	return fmt.Errorf("%w: «%s» is not a feature reference", ErrSyntaxError, text)
}
