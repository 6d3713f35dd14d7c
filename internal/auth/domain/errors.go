package domain

import "errors"

var (
	ErrInvalidUserName        = errors.New("name is required")
	ErrInvalidUserEmail       = errors.New("email is required")
	ErrInvalidUserEmailFormat = errors.New("email format is invalid")
	ErrInvalidUserPassword    = errors.New("password is required")
	ErrInvalidUserRole        = errors.New("role is not one of user, guide, lead-guide, admin")
	ErrPasswordMismatch       = errors.New("password and password confirmation do not match")
	ErrUserNotFound           = errors.New("user not found")
	ErrUserAlreadyExists      = errors.New("user with this email already exists")
	ErrInvalidCredentials     = errors.New("invalid email or password")
	ErrTooManyLoginAttempts   = errors.New("too many login attempts, please try again later")
	ErrEmailDelivery          = errors.New("there was an error sending the email, try again later")
)
