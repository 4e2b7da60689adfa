package schedule

import (
	"time"

	"moveit/internal/entities"
)

type interval struct {
	start time.Time
	end   time.Time
}

// overlaps - пересечение полуинтервалов [start, end).
func (i interval) overlaps(other interval) bool {
	return i.start.Before(other.end) && i.end.After(other.start)
}

// AvailableTimeSlots убирает из слотов даты те, что пересекаются с
// заблокированным интервалом хотя бы одной брони. Бронь блокирует
// [start, end+Buffer). Отмененные брони ничего не блокируют.
// Входной срез не изменяется.
func (s *Schedule) AvailableTimeSlots(date time.Time, bookings []entities.Booking) []entities.TimeSlot {
	candidates := s.GenerateTimeSlots(date)
	if len(bookings) == 0 {
		return candidates
	}

	blocked := s.blockedIntervals(bookings)
	available := make([]entities.TimeSlot, 0, len(candidates))
	for _, slot := range candidates {
		if !collides(interval{start: slot.Start, end: slot.End}, blocked) {
			available = append(available, slot)
		}
	}
	return available
}

// Conflicts возвращает брони, с которыми столкнется слот, начинающийся в start.
func (s *Schedule) Conflicts(start time.Time, bookings []entities.Booking) []entities.Booking {
	candidate := interval{start: start, end: start.Add(s.cfg.BookingDuration)}

	var conflicts []entities.Booking
	for _, booking := range bookings {
		blocked, ok := s.blockedInterval(booking)
		if !ok {
			continue
		}
		if candidate.overlaps(blocked) {
			conflicts = append(conflicts, booking)
		}
	}
	return conflicts
}

func (s *Schedule) blockedIntervals(bookings []entities.Booking) []interval {
	blocked := make([]interval, 0, len(bookings))
	for _, booking := range bookings {
		if b, ok := s.blockedInterval(booking); ok {
			blocked = append(blocked, b)
		}
	}
	return blocked
}

// blockedInterval - false для отмененных броней и броней с нечитаемым временем.
func (s *Schedule) blockedInterval(booking entities.Booking) (interval, bool) {
	if booking.Status == entities.BookingCancelled {
		return interval{}, false
	}

	start, err := s.At(booking.Date, booking.StartTime)
	if err != nil {
		return interval{}, false
	}
	end, err := s.At(booking.Date, booking.EndTime)
	if err != nil {
		return interval{}, false
	}

	return interval{start: start, end: end.Add(s.cfg.Buffer)}, true
}

func collides(candidate interval, blocked []interval) bool {
	for _, b := range blocked {
		if candidate.overlaps(b) {
			return true
		}
	}
	return false
}
