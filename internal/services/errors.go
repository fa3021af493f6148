package services

import "errors"

// Error kinds. Every *Error carries exactly one of them so transports can map
// failures to status codes with errors.Is.
var (
	ErrValidation      = errors.New("validation failed")
	ErrConflict        = errors.New("conflict")
	ErrNotFound        = errors.New("not found")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrServerConfig    = errors.New("server configuration")
)

// Error is a domain failure with a user facing message.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

// Unwrap exposes the kind to errors.Is.
func (e *Error) Unwrap() error { return e.Kind }

// Invalid returns a validation error with msg.
func Invalid(msg string) *Error {
	return &Error{Kind: ErrValidation, Message: msg}
}

var (
	ErrPasswordMismatch   = &Error{Kind: ErrValidation, Message: "Passwords do not match"}
	ErrDuplicateAccount   = &Error{Kind: ErrConflict, Message: "Email or phone already exists"}
	ErrUserNotFound       = &Error{Kind: ErrNotFound, Message: "User not found"}
	ErrInvalidOTP         = &Error{Kind: ErrValidation, Message: "Invalid or expired OTP"}
	ErrUnverified         = &Error{Kind: ErrForbidden, Message: "Please verify your email first"}
	ErrInvalidCredentials = &Error{Kind: ErrUnauthenticated, Message: "Invalid credentials"}
	ErrMissingSecret      = &Error{Kind: ErrServerConfig, Message: "Server configuration error"}

	ErrTokenMissing    = &Error{Kind: ErrUnauthenticated, Message: "Access denied. No token provided."}
	ErrTokenExpired    = &Error{Kind: ErrUnauthenticated, Message: "Token expired"}
	ErrTokenInvalid    = &Error{Kind: ErrUnauthenticated, Message: "Invalid token"}
	ErrSessionUserGone = &Error{Kind: ErrUnauthenticated, Message: "User not found"}
	ErrAdminRequired   = &Error{Kind: ErrForbidden, Message: "Access denied. Admin privileges required."}

	ErrEPKNotFound     = &Error{Kind: ErrNotFound, Message: "EPK not found"}
	ErrAppUserNotFound = &Error{Kind: ErrNotFound, Message: "User not found"}
	ErrSlugTaken       = &Error{Kind: ErrConflict, Message: "Slug already exists"}
	ErrPhoneTaken      = &Error{Kind: ErrConflict, Message: "Phone number already exists"}
)
