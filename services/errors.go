package services

import "errors"

// Business-rule errors surfaced to handlers. Handlers map these to HTTP
// statuses with errors.Is; anything else is treated as an internal error.
var (
	ErrNotFound             = errors.New("record not found")
	ErrForbidden            = errors.New("not authorized")
	ErrInvalidDate          = errors.New("invalid date format")
	ErrQuizAlreadySubmitted = errors.New("quiz already submitted")
	ErrMaxAttemptsExceeded  = errors.New("maximum attempts reached")
	ErrQuizNotAvailable     = errors.New("quiz not available")
	ErrAlreadySubmitted     = errors.New("already submitted")
	ErrEmailTaken           = errors.New("email already registered")
	ErrInvalidCredentials   = errors.New("incorrect email or password")
	ErrInvalidResetToken    = errors.New("invalid or expired reset token")
)
