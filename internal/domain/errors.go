package domain

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEventNotFound      = errors.New("event not found")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotVerified        = errors.New("account not verified")
	ErrAlreadyRegistered  = errors.New("already registered for this event")
	ErrEventFull          = errors.New("event is full")
	ErrNotRegistered      = errors.New("not registered for this event")
	ErrNotAdmin           = errors.New("admin privileges required")
	ErrNotOwner           = errors.New("only the creating admin can modify this event")
	ErrTooManyRequests    = errors.New("too many password reset requests")
	ErrNoVerification     = errors.New("no verification code found")
	ErrNoResetCode        = errors.New("no reset code found")
	ErrCodeInvalid        = errors.New("invalid code")
	ErrCodeExpired        = errors.New("code has expired")
)
