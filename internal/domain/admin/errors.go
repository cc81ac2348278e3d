package admin

import "errors"

var (
	ErrAccountNotFound    = errors.New("account not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrForbidden          = errors.New("admin privileges required")
	ErrEmailTaken         = errors.New("account already exists")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")
	ErrUnauthenticated    = errors.New("invalid token")
)
