package apperrors

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrInvalidState          = errors.New("invalid state")
	ErrNotFound              = errors.New("not found")
	ErrValidation            = errors.New("validation error")
	ErrEmptyStore            = errors.New("no trips yet")
	ErrPermissionDenied      = errors.New("permission denied")
	ErrCapabilityUnavailable = errors.New("capability unavailable")
	ErrEmptySelection        = errors.New("select a location first")
	ErrCancelled             = errors.New("cancelled")
)
