package schedule

import (
	"errors"
	"fmt"
	"time"

	"moveit/internal/entities"
)

const (
	BookingDurationHours = 2
	BufferDurationHours  = 1
	DayStartHour         = 8
	DayEndHour           = 18
	SlotStepHours        = 1
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

var (
	ErrInvalidConfig = errors.New("invalid schedule config")
	ErrInvalidDate   = errors.New("invalid date")
	ErrInvalidClock  = errors.New("invalid time of day")
)

// Config - параметры рабочего дня водителя.
// Все брони и слоты считаются в одной зоне Location.
type Config struct {
	BookingDuration time.Duration
	Buffer          time.Duration
	Step            time.Duration
	DayStartHour    int
	DayEndHour      int
	Location        *time.Location
}

func Default() Config {
	return Config{
		BookingDuration: BookingDurationHours * time.Hour,
		Buffer:          BufferDurationHours * time.Hour,
		Step:            SlotStepHours * time.Hour,
		DayStartHour:    DayStartHour,
		DayEndHour:      DayEndHour,
		Location:        time.Local,
	}
}

func (c Config) Validate() error {
	switch {
	case c.BookingDuration <= 0:
		return fmt.Errorf("%w: booking duration must be positive", ErrInvalidConfig)
	case c.Step < time.Minute || c.Step%time.Minute != 0:
		return fmt.Errorf("%w: slot step must be a positive whole number of minutes", ErrInvalidConfig)
	case c.Buffer < 0:
		return fmt.Errorf("%w: buffer must not be negative", ErrInvalidConfig)
	case c.DayStartHour < 0 || c.DayStartHour > 24:
		return fmt.Errorf("%w: day start hour %d out of range", ErrInvalidConfig, c.DayStartHour)
	case c.DayEndHour < 0 || c.DayEndHour > 24:
		return fmt.Errorf("%w: day end hour %d out of range", ErrInvalidConfig, c.DayEndHour)
	case time.Duration(c.DayEndHour-c.DayStartHour)*time.Hour < c.BookingDuration:
		return fmt.Errorf("%w: working window shorter than booking duration", ErrInvalidConfig)
	}
	return nil
}

// Schedule не хранит изменяемого состояния, один экземпляр безопасно
// использовать из любого числа горутин.
type Schedule struct {
	cfg   Config
	valid bool
}

func New(cfg Config) *Schedule {
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	return &Schedule{
		cfg:   cfg,
		valid: cfg.Validate() == nil,
	}
}

func (s *Schedule) Config() Config {
	return s.cfg
}

func (s *Schedule) Location() *time.Location {
	return s.cfg.Location
}

// ParseDate разбирает YYYY-MM-DD в полночь этой даты.
func (s *Schedule) ParseDate(value string) (time.Time, error) {
	day, err := time.ParseInLocation(DateLayout, value, s.cfg.Location)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w %q: %w", ErrInvalidDate, value, err)
	}
	return day, nil
}

// At собирает момент из даты и времени HH:mm.
func (s *Schedule) At(date, clock string) (time.Time, error) {
	day, err := s.ParseDate(date)
	if err != nil {
		return time.Time{}, err
	}

	t, err := time.ParseInLocation(ClockLayout, clock, s.cfg.Location)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w %q: %w", ErrInvalidClock, clock, err)
	}

	y, m, d := day.Date()
	return time.Date(y, m, d, t.Hour(), t.Minute(), 0, 0, s.cfg.Location), nil
}

// SlotAt возвращает окно брони, начинающееся в date+clock.
func (s *Schedule) SlotAt(date, clock string) (entities.TimeSlot, error) {
	start, err := s.At(date, clock)
	if err != nil {
		return entities.TimeSlot{}, err
	}
	return s.slot(start), nil
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

func FormatClock(t time.Time) string {
	return t.Format(ClockLayout)
}

// clock - момент hour:minute по часам Location в дату date.
// Переполнение минут переносится в часы, как в time.Date.
func (s *Schedule) clock(date time.Time, hour, minute int) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, hour, minute, 0, 0, s.cfg.Location)
}
