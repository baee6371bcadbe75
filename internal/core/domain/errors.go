package domain

import "errors"

// ErrorKind classifies a domain error. The transport layer maps each kind to a
// status code.
type ErrorKind string

const (
	KindBadRequest   ErrorKind = "bad_request"
	KindUnauthorized ErrorKind = "unauthorized"
	KindForbidden    ErrorKind = "forbidden"
	KindNotFound     ErrorKind = "not_found"
	KindConflict     ErrorKind = "conflict"
)

// Error is the single error type raised by services, repositories and the
// validation boundary.
type Error struct {
	Kind    ErrorKind
	Message string
	Details []string
}

func (e *Error) Error() string {
	return e.Message
}

// NewError builds an Error of the given kind.
func NewError(kind ErrorKind, message string, details ...string) *Error {
	return &Error{Kind: kind, Message: message, Details: details}
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) (ErrorKind, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind, true
	}
	return "", false
}

var (
	ErrInvalidCredentials = NewError(KindUnauthorized, "Invalid credentials")
	ErrUnauthenticated    = NewError(KindUnauthorized, "Authentication required")
	ErrInvalidToken       = NewError(KindUnauthorized, "Invalid or expired token")
	ErrAccountGone        = NewError(KindUnauthorized, "User not found")

	ErrInsufficientRole  = NewError(KindForbidden, "Insufficient permissions")
	ErrNotOwner          = NewError(KindForbidden, "You can only manage your own equipment")
	ErrSelfAssignOnly    = NewError(KindForbidden, "Users can only assign equipment to themselves")
	ErrReassignAdminOnly = NewError(KindForbidden, "Only admins can reassign equipment")

	ErrUserNotFound      = NewError(KindNotFound, "User not found")
	ErrEquipmentNotFound = NewError(KindNotFound, "Equipment not found")

	ErrEmailTaken  = NewError(KindConflict, "Email already registered")
	ErrSerialTaken = NewError(KindConflict, "Serial number already registered")

	ErrEmptyPatch    = NewError(KindBadRequest, "No fields provided for update")
	ErrInvalidID     = NewError(KindBadRequest, "Invalid id")
	ErrOwnerNotFound = NewError(KindBadRequest, "Owner does not exist")

	ErrPasswordTooLong = NewError(KindBadRequest, "Validation failed", "password must be at most 72 bytes long")
)
