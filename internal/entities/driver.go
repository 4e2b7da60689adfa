package entities

import "time"

type Driver struct {
	ID           string
	Name         string
	About        string
	ContactEmail string
	ContactPhone string
	LogoURL      string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type DriverModify struct {
	ID           *string
	Name         *string
	About        *string
	ContactEmail *string
	ContactPhone *string
	LogoURL      *string
}
