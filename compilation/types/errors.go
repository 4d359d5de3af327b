package types

import (
	"errors"
	"fmt"
	"strings"
)

// CompilationInvalidError is the single error kind raised when toolchain build output cannot be assembled into a
// valid compilation model: an unusable artifact directory, a malformed build-info document, or a document with
// missing required fields. It carries the identity of the offending document, path, and contract where available.
// Errors of this kind abort processing of the current document; there is no partial acceptance.
type CompilationInvalidError struct {
	// Reason describes the human-readable cause of the failure.
	Reason string

	// Document describes the build-info document (or artifact location) which triggered the failure, if known.
	Document string

	// Path describes the source file path involved in the failure, if known.
	Path string

	// Contract describes the raw contract identifier involved in the failure, if known.
	Contract string
}

// Error returns the error message string, implementing the error interface.
func (e *CompilationInvalidError) Error() string {
	var context []string
	if e.Contract != "" {
		context = append(context, fmt.Sprintf("contract '%s'", e.Contract))
	}
	if e.Path != "" {
		context = append(context, fmt.Sprintf("path '%s'", e.Path))
	}
	if e.Document != "" {
		context = append(context, fmt.Sprintf("document '%s'", e.Document))
	}
	if len(context) == 0 {
		return e.Reason
	}
	return fmt.Sprintf("%s (%s)", e.Reason, strings.Join(context, ", "))
}

// IsCompilationInvalid returns a boolean indicating whether the provided error (or any error it wraps) is a
// CompilationInvalidError.
func IsCompilationInvalid(err error) bool {
	var compilationInvalidError *CompilationInvalidError
	return errors.As(err, &compilationInvalidError)
}
