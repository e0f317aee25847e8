package service

import "errors"

// Sentinel errors shared across services so handlers can map them onto
// HTTP statuses without inspecting error strings.
var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrProjectNotFound    = errors.New("project not found")
	ErrSprintNotFound     = errors.New("sprint not found")
	ErrTaskNotFound       = errors.New("task not found")
	ErrMemberNotFound     = errors.New("project member not found")
	ErrMemberExists       = errors.New("user is already a project member")
	ErrSprintMismatch     = errors.New("sprint does not belong to the project")
)
