package services

import "errors"

// Errors shared across services and the HTTP error mapping.
var (
	ErrNotFound         = errors.New("requested resource not found")
	ErrValidationFailed = errors.New("validation failed")

	// Validation and business rules
	ErrPasswordTooShort        = errors.New("password is too short")
	ErrInvalidCredentials      = errors.New("invalid email or password")
	ErrTeamNameRequired        = errors.New("team name is required")
	ErrTournamentNameRequired  = errors.New("tournament name is required")
	ErrDivisionNameRequired    = errors.New("division name is required")
	ErrNotEnoughTeams          = errors.New("at least two teams are required to schedule")
	ErrInvalidMaxPools         = errors.New("max pools must be at least 1")
	ErrUnknownPoolStrategy     = errors.New("unknown pool strategy")
	ErrDivisionNotDraft        = errors.New("division schedule already generated")
	ErrDivisionNotScheduled    = errors.New("division has no schedule yet")
	ErrInvalidScore            = errors.New("scores must be non-negative")
	ErrScoreRequired           = errors.New("completed match requires both scores")
	ErrInvalidMatchStatus      = errors.New("invalid match status provided")
	ErrInvalidStatusTransition = errors.New("invalid match status transition")
	ErrUnknownExportFormat     = errors.New("unknown export format")
	ErrExportNotConfigured     = errors.New("export publishing is not configured")

	// Conflicts
	ErrUserEmailConflict = errors.New("email address is already in use")
	ErrTeamNameConflict  = errors.New("team name is already in use")

	// Authentication and authorization
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrForbiddenOperation   = errors.New("operation not allowed for the current user")

	// Entity lookups
	ErrUserNotFound       = errors.New("user not found")
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrDivisionNotFound   = errors.New("division not found")
	ErrTeamNotFound       = errors.New("team not found")
	ErrPoolNotFound       = errors.New("pool not found")
	ErrMatchNotFound      = errors.New("match not found")
)
