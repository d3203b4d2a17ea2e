package domain

import "errors"

// Auth errors.
var (
	ErrInvalidLogin    = errors.New("invalid login signature")
	ErrLoginExpired    = errors.New("login data expired")
	ErrLoginReplayed   = errors.New("login data already used")
	ErrNotAdmin        = errors.New("only administrators may sign in")
	ErrSessionExpired  = errors.New("session expired")
	ErrInvalidToken    = errors.New("invalid token")
	ErrUserNotFound    = errors.New("user not found")
	ErrAdminRequired   = errors.New("administrator rights required")
)

// Settings errors.
var (
	ErrScheduleNotFound = errors.New("schedule not found")
	ErrInvalidSchedule  = errors.New("schedule requires a name and a chat id")
	ErrInvalidWeekday   = errors.New("day must be a lowercase weekday name")
	ErrDuplicateAdmin   = errors.New("admin id already present")
	ErrLastAdmin        = errors.New("cannot remove the last administrator")
	ErrAdminIDRequired  = errors.New("admin_id is required")
)
