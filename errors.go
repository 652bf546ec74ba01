package viron

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrorCode represents a machine-readable error code.
type ErrorCode string

const (
	CodeMalformedIdentifier ErrorCode = "malformed_identifier"
	CodeUnresolvedEndpoint  ErrorCode = "unresolved_endpoint"
	CodeEnvelopeMismatch    ErrorCode = "envelope_mismatch"
	CodeInvalidPage         ErrorCode = "invalid_page"
	CodeInvalidAPI          ErrorCode = "invalid_api"
)

// Sentinels for use with errors.Is. Any *Error with the same code matches.
var (
	ErrMalformedIdentifier = &Error{Code: CodeMalformedIdentifier}
	ErrUnresolvedEndpoint  = &Error{Code: CodeUnresolvedEndpoint}
	ErrEnvelopeMismatch    = &Error{Code: CodeEnvelopeMismatch}
	ErrInvalidPage         = &Error{Code: CodeInvalidPage}
	ErrInvalidAPI          = &Error{Code: CodeInvalidAPI}
)

// Error is a build-time configuration error.
// All of them are fatal: a document is never produced when one occurs.
type Error struct {
	Code    ErrorCode      `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is reports whether target is an *Error with the same code.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// NewError creates a new error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Errorf creates a new error with a formatted message.
func Errorf(code ErrorCode, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// WithDetail returns a new Error with the key-value pair added to details.
func (e *Error) WithDetail(key string, value any) *Error {
	details := make(map[string]any, len(e.Details)+1)
	for k, v := range e.Details {
		details[k] = v
	}
	details[key] = value
	return &Error{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
	}
}

// ValidationError converts a go-playground/validator error into an *Error
// with the given code. Each failing field is reported once, in field order.
// Errors of other kinds are wrapped as-is into the message.
func ValidationError(code ErrorCode, subject string, err error) *Error {
	var valErrs validator.ValidationErrors
	if !errors.As(err, &valErrs) {
		return Errorf(code, "%s: %v", subject, err)
	}

	details := make(map[string]any, len(valErrs))
	messages := make([]string, 0, len(valErrs))
	for _, ve := range valErrs {
		msg := formatValidationError(ve)
		details[ve.Field()] = msg
		messages = append(messages, ve.Field()+": "+msg)
	}
	return &Error{
		Code:    code,
		Message: subject + ": " + strings.Join(messages, "; "),
		Details: details,
	}
}

// formatValidationError converts a validator.FieldError to a human-readable message.
func formatValidationError(ve validator.FieldError) string {
	switch ve.Tag() {
	case "required":
		return "required"
	case "min":
		return fmt.Sprintf("must be at least %s", ve.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", ve.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", ve.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", ve.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", ve.Param())
	case "startswith":
		return fmt.Sprintf("must start with %q", ve.Param())
	default:
		if ve.Param() != "" {
			return fmt.Sprintf("failed %s=%s validation", ve.Tag(), ve.Param())
		}
		return fmt.Sprintf("failed %s validation", ve.Tag())
	}
}
