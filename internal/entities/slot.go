package entities

import "time"

// TimeSlot - кандидат на бронь: начало и конец окна фиксированной длительности.
type TimeSlot struct {
	Start time.Time
	End   time.Time
}

// AvailabilitySnapshot - один пересчет доступных слотов для водителя на дату.
// Seq растет с каждым снимком в рамках одной подписки.
type AvailabilitySnapshot struct {
	Seq      uint64
	DriverID string
	Date     string
	Slots    []TimeSlot
	Err      error
}
