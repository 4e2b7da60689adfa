package entities

import (
	"time"

	"github.com/google/uuid"
)

type Booking struct {
	ID            uuid.UUID
	DriverID      string
	ClientID      string
	ClientName    string
	Date          string // YYYY-MM-DD
	StartTime     string // HH:mm
	EndTime       string // HH:mm
	VehicleVolume VehicleVolume
	Name          string
	Phone         string
	Email         string
	Comments      string
	Status        BookingStatus
	CreatedAt     time.Time
}

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingInTransit BookingStatus = "in-transit"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

func (s BookingStatus) String() string {
	return string(s)
}

// IsTerminal - из completed и cancelled переходов нет.
func (s BookingStatus) IsTerminal() bool {
	return s == BookingCompleted || s == BookingCancelled
}

// CanTransitionTo описывает жизненный цикл:
// pending -> in-transit -> completed, pending -> cancelled.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	switch s {
	case BookingPending:
		return next == BookingInTransit || next == BookingCancelled
	case BookingInTransit:
		return next == BookingCompleted
	default:
		return false
	}
}

type VehicleVolume string

const (
	VolumeSmall  VehicleVolume = "small"
	VolumeMedium VehicleVolume = "medium"
	VolumeLarge  VehicleVolume = "large"
)

func (v VehicleVolume) String() string {
	return string(v)
}

// BookingDraft - то, что клиент присылает при бронировании.
// EndTime не передается, он выводится из длительности брони.
type BookingDraft struct {
	DriverID      string
	Date          string
	StartTime     string
	VehicleVolume VehicleVolume
	Name          string
	Phone         string
	Email         string
	Comments      string
}

// BookingModify - готовая к записи бронь, собранная сервисом.
type BookingModify struct {
	DriverID      string
	ClientID      string
	ClientName    string
	Date          string
	StartTime     string
	EndTime       string
	VehicleVolume VehicleVolume
	Name          string
	Phone         string
	Email         string
	Comments      string
	Status        BookingStatus
}

// BookingChange публикуется после каждого изменения брони,
// подписчики по (DriverID, Date) пересчитывают доступность.
type BookingChange struct {
	BookingID uuid.UUID     `json:"booking_id"`
	DriverID  string        `json:"driver_id"`
	Date      string        `json:"date"`
	Status    BookingStatus `json:"status"`
}

func (b *Booking) Change() BookingChange {
	return BookingChange{
		BookingID: b.ID,
		DriverID:  b.DriverID,
		Date:      b.Date,
		Status:    b.Status,
	}
}
