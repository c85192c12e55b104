package models

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidID       = errors.New("invalid id")
	ErrValidation      = errors.New("validation error")
	ErrNotAuthorized   = errors.New("not authorized")
	ErrDatesTaken      = errors.New("selected dates are not available")
	ErrHostUnavailable = errors.New("host is not available for booking")
	ErrDuplicateReview = errors.New("review already exists for this booking")
	ErrDuplicateHost   = errors.New("host profile already exists")
	ErrResponseExists  = errors.New("response already exists")
	ErrCancelWindow    = errors.New("cancellation not allowed for this booking")
	ErrReviewLocked    = errors.New("review can no longer be edited")
	ErrNotCompleted    = errors.New("can only review completed bookings")
)
