package booking

import (
	"time"

	"github.com/google/uuid"
)

type BookingDB struct {
	ID            uuid.UUID
	DriverID      string
	ClientID      string
	ClientName    string
	Date          string
	StartTime     string
	EndTime       string
	VehicleVolume string
	Name          string
	Phone         string
	Email         string
	Comments      string
	Status        string
	CreatedAt     time.Time
}
