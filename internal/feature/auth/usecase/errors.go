// Package usecase implements the business logic for the auth feature.
package usecase

import "errors"

var (
	// ErrUserNotFound is returned when a user cannot be found by email or ID.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailAlreadyExists is returned when attempting to create a user with an email that already exists.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrInvalidCredentials is returned when login fails. The cause (unknown
	// email vs. wrong password) is intentionally not distinguishable.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrInvalidRefreshToken is returned when a refresh token is invalid, expired or of the wrong class.
	ErrInvalidRefreshToken = errors.New("invalid refresh token")

	// ErrPasswordTooShort is returned when the password does not meet the minimum length.
	ErrPasswordTooShort = errors.New("password is too short")
)
