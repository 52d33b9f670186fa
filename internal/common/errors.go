// Package common defines shared constants and sentinel errors used across
// client and server layers of DogBox. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")

	// Remote store failures as seen by the client coordinators.
	ErrRegistry = errors.New("registry error")
	ErrStorage  = errors.New("storage error")

	// Upload pre-checks.
	ErrDuplicateName    = errors.New("file with that name already exists")
	ErrUploadInProgress = errors.New("upload already in progress")
	ErrInvalidName      = errors.New("invalid file name")
	ErrInvalidSize      = errors.New("invalid file size")

	// Auth errors.
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
