package domain

import "errors"

var (
	ErrInvalidUserID       = errors.New("invalid user id")
	ErrPasswordNotEditable = errors.New("password cannot be updated here, use /auth/update-password")
	ErrUserNotFound        = errors.New("user not found")
	ErrEmailTaken          = errors.New("user with this email already exists")
)
