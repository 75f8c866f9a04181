// internal/services/errors.go
package services

import "errors"

// Sentinel errors returned by the service layer. Handlers map these onto
// HTTP status codes; services never touch HTTP themselves.
var (
	// ErrForbidden means the actor's role does not permit the operation, or
	// the operation crosses a tenant boundary in a way we admit to.
	ErrForbidden = errors.New("operation not permitted")

	// ErrInvalidTransition means the product lifecycle does not allow the
	// requested status change.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrInvalidInput means the request payload failed a business rule.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound means the resource does not exist. Resources in another
	// business also report not found so their existence is not leaked.
	ErrNotFound = errors.New("resource not found")

	// ErrConflict means a uniqueness rule was violated.
	ErrConflict = errors.New("resource already exists")

	// ErrInvalidCredentials is returned on failed login attempts.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrAccountDisabled is returned when an inactive user authenticates.
	ErrAccountDisabled = errors.New("account is disabled")

	// ErrTempPasswordExpired is returned when an invited user's temporary
	// credential has lapsed before they changed it.
	ErrTempPasswordExpired = errors.New("temporary password has expired")
)
