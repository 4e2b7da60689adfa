package availability

import "errors"

var (
	ErrInvalidDriverID = errors.New("invalid driver id")
	ErrInvalidDate     = errors.New("invalid date")
	ErrDriverNotFound  = errors.New("driver not found")
)
