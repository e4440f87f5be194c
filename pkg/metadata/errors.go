package metadata

import (
	"errors"
	"fmt"
)

// ErrValidation is the sentinel wrapped by every schema violation.
var ErrValidation = errors.New("metadata: document does not conform to schema")

// ValidationError identifies the offending field and the violated
// constraint. Path is dotted, with list indices in brackets, e.g.
// "metadata.creators[0].person_or_org.type".
type ValidationError struct {
	Path string
	Msg  string
}

func (e *ValidationError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("invalid metadata document: %s", e.Msg)
	}
	return fmt.Sprintf("invalid metadata at %s: %s", e.Path, e.Msg)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// IsValidationError reports whether err is (or wraps) a schema violation.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidation)
}

func fail(path, format string, args ...any) error {
	return &ValidationError{Path: path, Msg: fmt.Sprintf(format, args...)}
}
