package repository

import "errors"

// Common errors that can be returned by the repositories
var (
	ErrAccountNotFound = errors.New("account not found")
	ErrDuplicateEmail  = errors.New("email already exists")
	ErrSessionNotFound = errors.New("session not found")
	ErrProfileNotFound = errors.New("profile not found")
	ErrUnknownProfile  = errors.New("unknown profile kind")
	ErrNotPending      = errors.New("account is not pending approval")
)

const uniqueViolation = "23505"
