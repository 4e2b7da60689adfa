package schedule

import (
	"time"

	"moveit/internal/entities"
)

// GenerateTimeSlots возвращает все начала броней на дату по возрастанию:
// каждый шаг Step от DayStartHour, пока бронь успевает закончиться к DayEndHour.
// Время суток во входной дате игнорируется. Некорректный конфиг дает пустой список.
func (s *Schedule) GenerateTimeSlots(date time.Time) []entities.TimeSlot {
	if !s.valid {
		return []entities.TimeSlot{}
	}

	dayStart := s.clock(date, s.cfg.DayStartHour, 0)
	dayEnd := s.clock(date, s.cfg.DayEndHour, 0)

	stepMinutes := int(s.cfg.Step / time.Minute)
	slots := make([]entities.TimeSlot, 0, int(dayEnd.Sub(dayStart)/s.cfg.Step)+1)
	for offset := 0; ; offset += stepMinutes {
		// Шаг по часам на циферблате, а не по прошедшему времени:
		// в день перехода на летнее время окно остается 08:00-18:00.
		current := s.clock(date, s.cfg.DayStartHour, offset)
		if !current.Before(dayEnd) {
			break
		}
		slot := s.slot(current)
		if slot.End.After(dayEnd) {
			break
		}
		slots = append(slots, slot)
	}
	return slots
}

// IsBookableStart - start совпадает с одним из сгенерированных слотов своей даты.
func (s *Schedule) IsBookableStart(start time.Time) bool {
	for _, slot := range s.GenerateTimeSlots(start) {
		if slot.Start.Equal(start) {
			return true
		}
	}
	return false
}

func (s *Schedule) slot(start time.Time) entities.TimeSlot {
	return entities.TimeSlot{
		Start: start,
		End:   start.Add(s.cfg.BookingDuration),
	}
}
