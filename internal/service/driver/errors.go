package driver

import "errors"

var (
	ErrMissingRequiredFields = errors.New("missing required fields")
	ErrInvalidDriverID       = errors.New("invalid driver id")
	ErrInvalidName           = errors.New("invalid name")
	ErrInvalidAbout          = errors.New("invalid about")
	ErrInvalidEmail          = errors.New("invalid contact email")
	ErrInvalidPhone          = errors.New("invalid contact phone")
	ErrInvalidLogoURL        = errors.New("invalid logo url")

	ErrForbidden      = errors.New("only drivers can manage a driver profile")
	ErrDriverNotFound = errors.New("driver not found")
	ErrConflict       = errors.New("driver profile already exists")
)
