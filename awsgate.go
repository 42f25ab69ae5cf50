// Package awsgate holds the contracts shared by the gateway core and its
// callers: the error taxonomy surfaced to the HTTP layer and the Ref type
// used wherever a resource may be addressed by logical name or by native
// identifier, but never both.
package awsgate

import (
	"errors"
	"fmt"
)

// ValidationError reports caller input that is structurally invalid: a missing
// required field, a name/identifier pair where exactly one is expected, an
// unknown enum value or an out-of-range numeric parameter.
type ValidationError struct{ error }

// NewValidationError builds a ValidationError from a format string.
func NewValidationError(format string, args ...any) error {
	return &ValidationError{fmt.Errorf(format, args...)}
}

// Unwrap implements errors.Unwrap functionality.
func (e *ValidationError) Unwrap() error { return e.error }

// IsValidationError returns true if the given error is a ValidationError.
func IsValidationError(err error) bool {
	var target *ValidationError

	return errors.As(err, &target)
}

// NotFoundError reports that a logical name did not resolve to any existing
// resource after exhaustive lookup.
type NotFoundError struct{ error }

// NewNotFoundError builds a NotFoundError from a format string.
func NewNotFoundError(format string, args ...any) error {
	return &NotFoundError{fmt.Errorf(format, args...)}
}

// Unwrap implements errors.Unwrap functionality.
func (e *NotFoundError) Unwrap() error { return e.error }

// IsNotFoundError returns true if the given error is a NotFoundError.
func IsNotFoundError(err error) bool {
	var target *NotFoundError

	return errors.As(err, &target)
}

// UpstreamError reports that the backend service rejected or failed a call for
// reasons outside this system's own validation. The backend's message travels
// with the error; no retry is attempted here.
type UpstreamError struct{ error }

// WrapUpstreamError wraps a backend failure, annotated with the operation that
// produced it.
func WrapUpstreamError(op string, err error) error {
	return &UpstreamError{fmt.Errorf("%s: %w", op, err)}
}

// Unwrap implements errors.Unwrap functionality.
func (e *UpstreamError) Unwrap() error { return e.error }

// IsUpstreamError returns true if the given error is an UpstreamError.
func IsUpstreamError(err error) bool {
	var target *UpstreamError

	return errors.As(err, &target)
}

// ConfigurationError reports startup-time misconfiguration. It is fatal: the
// process must not serve requests after seeing one.
type ConfigurationError struct{ error }

// NewConfigurationError builds a ConfigurationError from a format string.
func NewConfigurationError(format string, args ...any) error {
	return &ConfigurationError{fmt.Errorf(format, args...)}
}

// Unwrap implements errors.Unwrap functionality.
func (e *ConfigurationError) Unwrap() error { return e.error }

// IsConfigurationError returns true if the given error is a ConfigurationError.
func IsConfigurationError(err error) bool {
	var target *ConfigurationError

	return errors.As(err, &target)
}

// RefKind tags which of the two Ref fields was supplied.
type RefKind int

const (
	// RefName means the caller supplied a logical name that still needs
	// resolution.
	RefName RefKind = iota + 1
	// RefNative means the caller supplied the AWS-native identifier (ARN or
	// queue URL) and no resolution is needed.
	RefNative
)

// Ref addresses a resource either by logical name or by native identifier.
// Exactly one of the two fields must be set.
type Ref struct {
	Name   string
	Native string
}

// Chosen validates the exactly-one-of invariant and reports which field the
// caller supplied. The label names the resource in error messages, e.g.
// "topic_name"/"topic_arn".
func (r Ref) Chosen(nameLabel, nativeLabel string) (string, RefKind, error) {
	switch {
	case r.Name != "" && r.Native != "":
		return "", 0, NewValidationError("%s and %s are mutually exclusive", nameLabel, nativeLabel)
	case r.Name != "":
		return r.Name, RefName, nil
	case r.Native != "":
		return r.Native, RefNative, nil
	default:
		return "", 0, NewValidationError("%s or %s is required", nameLabel, nativeLabel)
	}
}

// IsZero reports whether neither field is set.
func (r Ref) IsZero() bool {
	return r.Name == "" && r.Native == ""
}
