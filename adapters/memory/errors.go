package memory

import "github.com/goliatone/go-errors"

const (
	TextCodeUserNotFound       = "memory_user_not_found"
	TextCodeInvalidCredentials = "memory_invalid_credentials"
	TextCodeEmailTaken         = "memory_email_taken"
	TextCodeNoSession          = "memory_no_session"
)

// ErrUserNotFound is returned when no account matches the given email.
var ErrUserNotFound = errors.New("user not found", errors.CategoryNotFound).
	WithTextCode(TextCodeUserNotFound).
	WithCode(errors.CodeNotFound)

// ErrInvalidCredentials is returned when the password does not match.
var ErrInvalidCredentials = errors.New("invalid credentials", errors.CategoryAuth).
	WithTextCode(TextCodeInvalidCredentials).
	WithCode(errors.CodeUnauthorized)

// ErrEmailTaken is returned when an account with the email already exists.
var ErrEmailTaken = errors.New("email already registered", errors.CategoryConflict).
	WithTextCode(TextCodeEmailTaken).
	WithCode(errors.CodeConflict)

// ErrNoSession is returned when an operation needs an active session.
var ErrNoSession = errors.New("no active session", errors.CategoryAuth).
	WithTextCode(TextCodeNoSession).
	WithCode(errors.CodeUnauthorized)
