package usecase

import "errors"

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrRequirementNotFound = errors.New("requirement not found")
	ErrNoRequirements      = errors.New("solicitation has no requirements")
	ErrNoActiveUsers       = errors.New("no active users found")
	ErrMatchNotFound       = errors.New("match not found")
	ErrInvalidStatus       = errors.New("invalid validation status")
	ErrBatchInProgress     = errors.New("match computation already in progress")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInternal            = errors.New("internal error")
)
