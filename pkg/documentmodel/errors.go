/*
 * Copyright (c) 2026-present unTill Software Development Group B.V.
 */

package documentmodel

import (
	"errors"
	"fmt"
	"strings"
)

// Structural problems of the type graph: unresolved or cyclic inheritance,
// duplicates, nested documents, unresolved types
var ErrStructuralError = errors.New("structural error")

func ErrStructural(msg string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrStructuralError, fmt.Sprintf(msg, args...))
}

func ErrDuplicateSchema(name string) error {
	return ErrStructural("duplicate schema «%s»", name)
}

func ErrDuplicateType(name, schema string) error {
	return ErrStructural("schema «%s»: type «%s» is already defined", schema, name)
}

func ErrNestedDocument(strct, field, doc string) error {
	return ErrStructural("struct «%s» field «%s»: document type «%s» can not be nested in a struct", strct, field, doc)
}

func ErrNoProgress(what string, unresolved map[string][]string) error {
	return ErrStructural("%s: %s", what, formatUnresolved(unresolved))
}

func ErrUnresolvedTypes(names []string) error {
	return ErrStructural("unresolved types: «%s»", strings.Join(names, "», «"))
}

func ErrNotDocument(field, name string) error {
	return ErrStructural("field «%s»: «%s» is not a document type and can not be referenced", field, name)
}

var ErrInvalidDataTypeError = errors.New("invalid data type")

func ErrInvalidDataType(text string, msg string, args ...any) error {
	return fmt.Errorf("%w «%s»: %s", ErrInvalidDataTypeError, text, fmt.Sprintf(msg, args...))
}
