package apperror

import (
	"errors"
	"fmt"
	"strings"
)

// InvalidIdentifierError rejects a malformed natural key before any store access.
type InvalidIdentifierError struct {
	Kind   string // "username" | "slug" | "auth_token" | "sequence_number" | "field_id"
	Value  string
	Reason string
}

func (e *InvalidIdentifierError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Kind, e.Value, e.Reason)
}

func NewInvalidIdentifier(kind, value, reason string) *InvalidIdentifierError {
	return &InvalidIdentifierError{Kind: kind, Value: value, Reason: reason}
}

// NotFoundError signals that the referenced entity does not exist.
type NotFoundError struct {
	Kind       string
	Identifier string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.Identifier)
}

func NewNotFound(kind, identifier string) *NotFoundError {
	return &NotFoundError{Kind: kind, Identifier: identifier}
}

// ConflictError signals a uniqueness violation (duplicate key, rename target taken).
type ConflictError struct {
	Kind       string
	Identifier string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s %q already exists", e.Kind, e.Identifier)
}

func NewConflict(kind, identifier string) *ConflictError {
	return &ConflictError{Kind: kind, Identifier: identifier}
}

// FieldError is a single failed check inside a field payload.
type FieldError struct {
	FieldID string `json:"field_id"`
	Reason  string `json:"reason"`
}

// FieldValidationError carries every per-field failure of one payload,
// never just the first one.
type FieldValidationError struct {
	Fields []FieldError
}

func (e *FieldValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = fmt.Sprintf("%s: %s", f.FieldID, f.Reason)
	}
	return "field validation failed: " + strings.Join(parts, "; ")
}

func (e *FieldValidationError) Add(fieldID, reason string) {
	e.Fields = append(e.Fields, FieldError{FieldID: fieldID, Reason: reason})
}

func (e *FieldValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

// RestrictedError blocks a delete while dependents exist.
type RestrictedError struct {
	Kind            string // entity being deleted
	Identifier      string
	ReferencingKind string // relationship blocking the delete
	Count           int64
}

func (e *RestrictedError) Error() string {
	return fmt.Sprintf("cannot delete %s %q: %d %s reference(s) exist",
		e.Kind, e.Identifier, e.Count, e.ReferencingKind)
}

func NewRestricted(kind, identifier, referencingKind string, count int64) *RestrictedError {
	return &RestrictedError{Kind: kind, Identifier: identifier, ReferencingKind: referencingKind, Count: count}
}

// SessionExpiredError: the token exists but no longer grants access.
type SessionExpiredError struct {
	Token string
}

func (e *SessionExpiredError) Error() string {
	return "session expired"
}

// AbortedError wraps a transactional conflict or deadline; the whole
// operation is safe to retry since nothing partial was committed.
type AbortedError struct {
	Op  string
	Err error
}

func (e *AbortedError) Error() string {
	return fmt.Sprintf("%s aborted: %v", e.Op, e.Err)
}

func (e *AbortedError) Unwrap() error {
	return e.Err
}

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

func IsConflict(err error) bool {
	var c *ConflictError
	return errors.As(err, &c)
}

func IsRestricted(err error) bool {
	var r *RestrictedError
	return errors.As(err, &r)
}
