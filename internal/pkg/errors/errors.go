// Package errors holds the sentinels shared across layers. Typed errors in
// services wrap these so callers can match with errors.Is.
package errors

import "errors"

var (
	// ErrNotFound: the record is missing or belongs to another user.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized: no caller identity could be established.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidArgument: the request failed input validation.
	ErrInvalidArgument = errors.New("invalid argument")
)
