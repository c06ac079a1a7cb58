package domain

import "errors"

// Input-validation failures. All of these map to 400 at the boundary.
var (
	ErrEmptyCredential = errors.New("email and password are required")
	ErrMissingFields   = errors.New("missing required fields")
	ErrBadEmailDomain  = errors.New("email domain is not allowed")

	ErrPasswordLength  = errors.New("password must be at least 8 characters long")
	ErrPasswordUpper   = errors.New("password must contain at least one uppercase letter")
	ErrPasswordLower   = errors.New("password must contain at least one lowercase letter")
	ErrPasswordDigit   = errors.New("password must contain at least one digit")
	ErrPasswordSpecial = errors.New("password must contain at least one special character (@$!%*?&)")

	ErrMissingTitle    = errors.New("title is required")
	ErrBadCapacity     = errors.New("capacity must be greater than 1")
	ErrEmptyOrganizers = errors.New("organizers must not be empty")
	ErrEmptySpeakers   = errors.New("speakers must not be empty")
	ErrBadEventID      = errors.New("invalid event id")
)
