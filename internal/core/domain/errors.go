package domain

import (
	"fmt"
	"strings"
)

// ConfigurationError reports a missing credential or service configuration.
// Operations must fail with it before attempting any network call.
type ConfigurationError struct {
	Setting string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s is not configured", e.Setting)
}

// NewConfigurationError returns a ConfigurationError for the given setting
func NewConfigurationError(setting string) *ConfigurationError {
	return &ConfigurationError{Setting: setting}
}

// ValidationError reports missing or malformed caller input. Fields holds the
// offending field names in request order.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Fields, ", "))
}

// NewValidationError returns a ValidationError listing the given fields
func NewValidationError(fields ...string) *ValidationError {
	return &ValidationError{Fields: fields}
}

// UpstreamServiceError reports a non success response from an external hosted
// service. Status and Body carry the upstream response verbatim so callers can
// distinguish transient from permanent failures.
type UpstreamServiceError struct {
	Operation string
	Status    int
	Body      string
}

func (e *UpstreamServiceError) Error() string {
	return fmt.Sprintf("%s failed with status %d: %s", e.Operation, e.Status, e.Body)
}

// NewUpstreamServiceError builds an UpstreamServiceError from an upstream response
func NewUpstreamServiceError(operation string, status int, body []byte) *UpstreamServiceError {
	return &UpstreamServiceError{Operation: operation, Status: status, Body: string(body)}
}

// EncodingError reports a payload decode or merge failure
type EncodingError struct {
	Reason string
	Err    error
}

func (e *EncodingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Reason, e.Err)
	}
	return e.Reason
}

func (e *EncodingError) Unwrap() error {
	return e.Err
}

// NewEncodingError returns an EncodingError wrapping err
func NewEncodingError(reason string, err error) *EncodingError {
	return &EncodingError{Reason: reason, Err: err}
}
