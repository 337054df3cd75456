package application

import (
	"errors"

	"github.com/oksasatya/careerboost/internal/domain/repository"
)

var (
	ErrNotFound = repository.ErrNotFound

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDisabled    = errors.New("account disabled")
	ErrEmailTaken         = errors.New("email already registered")
	ErrRoleNotAllowed     = errors.New("role cannot self-register")
	ErrSessionExpired     = errors.New("session expired")

	ErrForbidden          = errors.New("forbidden")
	ErrInvalidInput       = errors.New("invalid input")
	ErrAlreadyApplied     = errors.New("already applied to this offer")
	ErrOfferNotOpen       = errors.New("offer is not open for applications")
	ErrInvalidTransition  = errors.New("status transition not allowed")
	ErrCompanyNotVerified = errors.New("company is not verified")
	ErrAlreadyMember      = errors.New("user is already a member")
	ErrProfileIncomplete  = errors.New("candidate profile is missing")

	ErrSyncDisabled = errors.New("job-board sync is disabled")
	ErrSyncRunning  = errors.New("job-board sync already running")
)
