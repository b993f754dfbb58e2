package core

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string
	Error string
}

// ValidationError carries field-level messages for a rejected payload;
// either produced locally by our validators or decoded from the API's
// 400 response envelope.
type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		if len(err.Fields) > 0 {
			return err.Fields[0].Field + ": " + err.Fields[0].Error
		}
		return ""
	}
	return err.Err.Error()
}

// FieldMap projects the field errors onto a form's field-error map.
func (err ValidationError) FieldMap() map[string]string {
	m := make(map[string]string, len(err.Fields))
	for _, fe := range err.Fields {
		m[fe.Field] = fe.Error
	}
	return m
}

// NotFoundError reports a 404 on a specific record.
type NotFoundError struct {
	Resource string
	ID       string
}

func (err NotFoundError) Error() string {
	if err.ID == "" {
		return err.Resource + " not found"
	}
	return fmt.Sprintf("%s %q not found", err.Resource, err.ID)
}

// ConflictError reports a 409, e.g. a duplicate email on user creation.
type ConflictError struct {
	Message string
}

func (err ConflictError) Error() string { return err.Message }

// AuthError reports a 401/403; callers route these to re-login.
type AuthError struct {
	Status  int
	Message string
}

func (err AuthError) Error() string { return err.Message }

// TransportError reports a network-level failure (conn refused, timeout, ...).
type TransportError struct {
	Cause error
}

func (err TransportError) Error() string { return "transport: " + err.Cause.Error() }
func (err TransportError) Unwrap() error { return err.Cause }

// ServerError reports a 5xx.
type ServerError struct {
	Status  int
	Message string
}

func (err ServerError) Error() string {
	return fmt.Sprintf("server error (%d): %s", err.Status, err.Message)
}

// NormalizationError reports a list response whose shape none of the known
// pagination conventions match. Never swallowed into an empty collection:
// that would be indistinguishable from zero results.
type NormalizationError struct {
	Shape []string // top-level keys seen
}

func (err NormalizationError) Error() string {
	return "unrecognized collection shape: {" + strings.Join(err.Shape, ", ") + "}"
}

// IsNotFound reports whether err (or its cause) is a NotFoundError.
func IsNotFound(err error) bool {
	var nf NotFoundError
	return errors.As(err, &nf)
}

// IsAuth reports whether err (or its cause) is an AuthError.
func IsAuth(err error) bool {
	var ae AuthError
	return errors.As(err, &ae)
}
