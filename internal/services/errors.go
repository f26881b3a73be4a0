package services

import (
	"fmt"
	"strings"

	apperrors "github.com/yungbote/analogyai-backend/internal/pkg/errors"
)

// FieldError names one invalid input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError reports malformed or missing input, field by field.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Fields) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return apperrors.ErrInvalidArgument }

func (e *ValidationError) add(field, msg string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: msg})
}

func (e *ValidationError) orNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

var ErrNotFound = apperrors.ErrNotFound

// NotFoundError is returned for records that are missing or owned by someone
// else; the two cases are indistinguishable to the caller.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	if e == nil || e.Resource == "" {
		return "Not found"
	}
	r := strings.ToUpper(e.Resource[:1]) + e.Resource[1:]
	return r + " not found"
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

func notFound(resource string) error { return &NotFoundError{Resource: resource} }

// GenerationFormatError means the provider replied in the wrong shape.
type GenerationFormatError struct {
	Reason string
}

func (e *GenerationFormatError) Error() string {
	return "generation format error: " + e.Reason
}

// GenerationProviderError means the provider call itself failed.
type GenerationProviderError struct {
	Provider string
	Cause    error
}

func (e *GenerationProviderError) Error() string {
	return fmt.Sprintf("generation provider error (%s): %v", e.Provider, e.Cause)
}

func (e *GenerationProviderError) Unwrap() error { return e.Cause }

var ErrUnauthorized = apperrors.ErrUnauthorized
