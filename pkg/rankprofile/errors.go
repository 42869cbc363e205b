/*
 * Copyright (c) 2026-present unTill Software Development Group B.V.
 */

package rankprofile

import (
	"errors"
	"fmt"
)

var ErrRankProfileError = errors.New("rank profile error")

func ErrRankProfile(profile string, msg string, args ...any) error {
	return fmt.Errorf("%w «%s»: %s", ErrRankProfileError, profile, fmt.Sprintf(msg, args...))
}

func ErrDuplicateProfile(namespace, name string) error {
	return ErrRankProfile(name, "already exists in «%s»", namespace)
}

func ErrMissingParent(profile, parent string) error {
	return ErrRankProfile(profile, "inherited profile «%s» not found", parent)
}

func ErrInheritanceCycle(profile string, chain []string) error {
	return ErrRankProfile(profile, "inheritance cycle %v", chain)
}

func ErrNameCollision(profile, name string) error {
	return ErrRankProfile(profile, "Cannot have both a constant and function named «%s»", name)
}

// Wraps error of profile part with profile context, keeps wrapped error visible to errors.Is
func ErrInvalidProfile(profile string, err error) error {
	return fmt.Errorf("%w «%s» is invalid: %w", ErrRankProfileError, profile, err)
}

var ErrExpressionError = errors.New("ranking expression error")

func ErrExpression(profile, part string, err error) error {
	return fmt.Errorf("%w: rank profile «%s», %s: %w", ErrExpressionError, profile, part, err)
}

var ErrTransformError = errors.New("transform error")

func ErrTransform(msg string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrTransformError, fmt.Sprintf(msg, args...))
}
