package services

import (
	"errors"
	"fmt"
)

// ErrInvalidCredentials covers both unknown emails and wrong passwords
// so login failures are indistinguishable to the caller.
var ErrInvalidCredentials = errors.New("invalid email or password")

// NotFoundError is returned when a referenced record does not exist.
// Message is the client-facing text, surfaced verbatim by handlers.
type NotFoundError struct {
	Resource string
	ID       string
	Message  string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

func NewNotFoundError(resource, id, message string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id, Message: message}
}

// PermissionError is returned when the caller is not allowed to perform
// an operation. Forbidden selects a 403 response instead of the usual
// 400 for ownership checks.
type PermissionError struct {
	UserID    string
	Resource  string
	Action    string
	Message   string
	Forbidden bool
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("user %s not allowed to %s %s: %s", e.UserID, e.Action, e.Resource, e.Message)
}

func NewPermissionError(userID, resource, action, message string) *PermissionError {
	return &PermissionError{UserID: userID, Resource: resource, Action: action, Message: message}
}

func NewForbiddenError(userID, resource, action, message string) *PermissionError {
	return &PermissionError{UserID: userID, Resource: resource, Action: action, Message: message, Forbidden: true}
}

// ConflictError is returned when a uniqueness rule rejects the request,
// duplicate applications or already registered emails.
type ConflictError struct {
	Resource string
	Message  string
}

func (e *ConflictError) Error() string {
	return e.Message
}

func NewConflictError(resource, message string) *ConflictError {
	return &ConflictError{Resource: resource, Message: message}
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsPermissionDenied reports whether err is a PermissionError.
func IsPermissionDenied(err error) bool {
	var pe *PermissionError
	return errors.As(err, &pe)
}

// IsConflict reports whether err is a ConflictError.
func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}
