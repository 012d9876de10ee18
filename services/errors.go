package services

import "errors"

// Sentinel errors; wrap them with fmt.Errorf("%w: ...") so controllers can
// map them to status codes with errors.Is.
var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrRoomUnavailable = errors.New("room not available for the selected dates")
	ErrTokenExpired    = errors.New("token expired")
)
