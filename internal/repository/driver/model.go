package driver

import "time"

type DriverDB struct {
	ID           string
	Name         string
	About        string
	ContactEmail string
	ContactPhone string
	LogoURL      string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type DriverModifyDB struct {
	ID           *string
	Name         *string
	About        *string
	ContactEmail *string
	ContactPhone *string
	LogoURL      *string
}
