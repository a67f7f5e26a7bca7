// Package domain defines the closed error taxonomy shared by the services
// and mapped onto HTTP statuses at the API boundary.
package domain

import (
	"errors"
	"fmt"
)

// Kind classifies a domain error.
type Kind int

const (
	// KindNotFound means a referenced snap, parent or engagement row is absent.
	KindNotFound Kind = iota
	// KindConflict means a uniqueness invariant was violated (duplicate
	// like/share/mention/favourite).
	KindConflict
	// KindValidationFailed means the input was malformed.
	KindValidationFailed
	// KindStoreFailure means an unclassified persistence-layer failure.
	KindStoreFailure
)

// String returns the taxonomy name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "NotFound"
	case KindConflict:
		return "Conflict"
	case KindValidationFailed:
		return "ValidationFailed"
	default:
		return "StoreFailure"
	}
}

// Error is a domain error carrying its kind, the entity involved and a
// human-readable detail.
type Error struct {
	Kind   Kind
	Entity string
	Detail string
	Cause  error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Entity, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Entity)
}

// Unwrap returns the underlying store error, if any.
func (e *Error) Unwrap() error {
	return e.Cause
}

// NotFound builds a NotFound error for the given entity.
func NotFound(entity string, detail string) *Error {
	return &Error{Kind: KindNotFound, Entity: entity, Detail: detail}
}

// Conflict builds a Conflict error for the given entity.
func Conflict(entity string, detail string) *Error {
	return &Error{Kind: KindConflict, Entity: entity, Detail: detail}
}

// Validation builds a ValidationFailed error.
func Validation(detail string) *Error {
	return &Error{Kind: KindValidationFailed, Entity: "request", Detail: detail}
}

// StoreFailure wraps an unclassified persistence error.
func StoreFailure(entity string, cause error) *Error {
	return &Error{Kind: KindStoreFailure, Entity: entity, Detail: "store failure", Cause: cause}
}

// KindOf extracts the kind of err, defaulting to KindStoreFailure for
// anything outside the taxonomy.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindStoreFailure
}

// IsKind reports whether err is a domain error of the given kind.
func IsKind(err error, kind Kind) bool {
	var de *Error
	return errors.As(err, &de) && de.Kind == kind
}
