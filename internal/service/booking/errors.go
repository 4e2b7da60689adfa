package booking

import "errors"

var (
	ErrMissingRequiredFields = errors.New("missing required fields")
	ErrInvalidBookingID      = errors.New("invalid booking id")
	ErrInvalidDriverID       = errors.New("invalid driver id")
	ErrInvalidDate           = errors.New("invalid date")
	ErrInvalidTime           = errors.New("invalid start time")
	ErrInvalidSlot           = errors.New("start time is not a bookable slot")
	ErrSlotInPast            = errors.New("slot already started")
	ErrInvalidVolume         = errors.New("invalid vehicle volume")
	ErrInvalidName           = errors.New("invalid contact name")
	ErrInvalidPhone          = errors.New("invalid contact phone")
	ErrInvalidEmail          = errors.New("invalid contact email")
	ErrInvalidComments       = errors.New("comments too long")
	ErrInvalidStatus         = errors.New("invalid booking status")

	ErrForbidden         = errors.New("actor is not allowed to perform this action")
	ErrBookingNotFound   = errors.New("booking not found")
	ErrDriverNotFound    = errors.New("driver not found")
	ErrSlotConflict      = errors.New("slot conflicts with an existing booking")
	ErrInvalidTransition = errors.New("booking status transition not allowed")
)
