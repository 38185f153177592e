package services

import (
	"errors"

	"github.com/Michaelnacaya1234/Accounting-services/internal/repository"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrPendingApproval    = errors.New("account is pending approval")
	ErrRateLimited        = errors.New("too many requests")
	ErrInvalidInput       = errors.New("invalid input")
	ErrNotFound           = repository.ErrNotFound
	ErrUsernameTaken      = repository.ErrUsernameTaken
	ErrNoClientRecord     = errors.New("user does not have an associated client record")
)
