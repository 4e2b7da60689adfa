package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"moveit/internal/entities"
	"moveit/internal/pkg/schedule"
)

type Booking struct {
	repository Repository
	txManager  TxManager
	notifier   Notifier
	schedule   *schedule.Schedule
	now        func() time.Time
}

type Option func(*Booking)

// WithNow подменяет источник текущего времени.
func WithNow(now func() time.Time) Option {
	return func(b *Booking) {
		b.now = now
	}
}

func New(
	repository Repository,
	txManager TxManager,
	notifier Notifier,
	sched *schedule.Schedule,
	opts ...Option,
) *Booking {
	b := &Booking{
		repository: repository,
		txManager:  txManager,
		notifier:   notifier,
		schedule:   sched,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// CreateBooking проверяет черновик и фиксирует бронь. Доступность
// перепроверяется внутри транзакции под блокировкой расписания водителя,
// поэтому из двух одновременных запросов на пересекающиеся окна
// проходит ровно один, второй получает ErrSlotConflict.
func (b *Booking) CreateBooking(ctx context.Context, actor entities.Actor, draft entities.BookingDraft) (*entities.Booking, error) {
	if !actor.IsClient() {
		return nil, ErrForbidden
	}

	slot, err := b.validateDraft(draft)
	if err != nil {
		return nil, err
	}

	bookingModify := entities.BookingModify{
		DriverID:      strings.TrimSpace(draft.DriverID),
		ClientID:      actor.ID,
		ClientName:    actor.Name,
		Date:          schedule.FormatDate(slot.Start),
		StartTime:     schedule.FormatClock(slot.Start),
		EndTime:       schedule.FormatClock(slot.End),
		VehicleVolume: draft.VehicleVolume,
		Name:          strings.TrimSpace(draft.Name),
		Phone:         strings.TrimSpace(draft.Phone),
		Email:         strings.ToLower(strings.TrimSpace(draft.Email)),
		Comments:      strings.TrimSpace(draft.Comments),
		Status:        entities.BookingPending,
	}

	var created *entities.Booking
	err = b.txManager.Do(ctx, func(ctx context.Context) error {
		err := b.repository.LockDriverSchedule(ctx, bookingModify.DriverID)
		if err != nil {
			return fmt.Errorf("lock driver schedule: %w", err)
		}

		existing, err := b.repository.ListByDriverAndDate(ctx, bookingModify.DriverID, bookingModify.Date)
		if err != nil {
			return fmt.Errorf("list driver bookings: %w", err)
		}

		if conflicts := b.schedule.Conflicts(slot.Start, existing); len(conflicts) > 0 {
			return fmt.Errorf("%w: %s %s overlaps %s-%s",
				ErrSlotConflict, bookingModify.Date, bookingModify.StartTime,
				conflicts[0].StartTime, conflicts[0].EndTime)
		}

		created, err = b.repository.Create(ctx, bookingModify)
		if err != nil {
			return fmt.Errorf("create booking: %w", err)
		}
		return nil
	})
	if err != nil {
		commitsTotal.WithLabelValues(commitResult(err)).Inc()
		return nil, err
	}
	commitsTotal.WithLabelValues(resultCommitted).Inc()

	b.notifier.BookingChanged(ctx, created.Change())
	return created, nil
}

// UpdateStatus двигает бронь по жизненному циклу. Водитель-владелец
// может выполнить любой допустимый переход, клиент-владелец только отмену.
// Повторная установка текущего статуса ничего не меняет.
func (b *Booking) UpdateStatus(
	ctx context.Context,
	actor entities.Actor,
	id uuid.UUID,
	status entities.BookingStatus,
) (*entities.Booking, error) {
	if id == uuid.Nil {
		return nil, ErrInvalidBookingID
	}
	if !isValidStatus(status) {
		return nil, ErrInvalidStatus
	}

	var (
		updated *entities.Booking
		changed bool
	)
	err := b.txManager.Do(ctx, func(ctx context.Context) error {
		current, err := b.repository.GetByIDForUpdate(ctx, id)
		if err != nil {
			return fmt.Errorf("get booking: %w", err)
		}

		if !canChangeStatus(actor, current, status) {
			return ErrForbidden
		}

		if current.Status == status {
			updated = current
			return nil
		}

		if !current.Status.CanTransitionTo(status) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current.Status, status)
		}

		updated, err = b.repository.UpdateStatus(ctx, id, status)
		if err != nil {
			return fmt.Errorf("update booking status: %w", err)
		}
		changed = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	if changed {
		b.notifier.BookingChanged(ctx, updated.Change())
	}
	return updated, nil
}

// GetBooking отдает бронь только ее клиенту или водителю.
func (b *Booking) GetBooking(ctx context.Context, actor entities.Actor, id uuid.UUID) (*entities.Booking, error) {
	if id == uuid.Nil {
		return nil, ErrInvalidBookingID
	}

	booking, err := b.repository.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	if !isOwner(actor, booking) {
		return nil, ErrForbidden
	}
	return booking, nil
}

// ListBookings - брони участника, новые первыми.
func (b *Booking) ListBookings(ctx context.Context, actor entities.Actor) ([]entities.Booking, error) {
	var (
		bookings []entities.Booking
		err      error
	)

	switch {
	case actor.IsDriver():
		bookings, err = b.repository.ListByDriver(ctx, actor.ID)
	case actor.IsClient():
		bookings, err = b.repository.ListByClient(ctx, actor.ID)
	default:
		return nil, ErrForbidden
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	return bookings, nil
}

// CancelExpiredPending отменяет pending-брони, окно которых закончилось
// больше чем grace назад, и оповещает подписчиков по каждой.
func (b *Booking) CancelExpiredPending(ctx context.Context, grace time.Duration) (int64, error) {
	cutoff := b.now().In(b.schedule.Location()).Add(-grace)

	cancelled, err := b.repository.CancelPendingEndedBefore(ctx, cutoff)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return 0, fmt.Errorf("cancel expired timed out: %w", err)
		}
		return 0, fmt.Errorf("cancel expired: %w", err)
	}

	for i := range cancelled {
		b.notifier.BookingChanged(ctx, cancelled[i].Change())
	}
	return int64(len(cancelled)), nil
}

func (b *Booking) validateDraft(draft entities.BookingDraft) (entities.TimeSlot, error) {
	if strings.TrimSpace(draft.DriverID) == "" ||
		draft.Date == "" ||
		draft.StartTime == "" ||
		draft.VehicleVolume == "" ||
		draft.Name == "" ||
		draft.Phone == "" {
		return entities.TimeSlot{}, ErrMissingRequiredFields
	}

	if !isValidVolume(draft.VehicleVolume) {
		return entities.TimeSlot{}, ErrInvalidVolume
	}
	if !isValidName(draft.Name) {
		return entities.TimeSlot{}, ErrInvalidName
	}
	if !isValidPhone(draft.Phone) {
		return entities.TimeSlot{}, ErrInvalidPhone
	}
	if !isValidEmail(draft.Email) {
		return entities.TimeSlot{}, ErrInvalidEmail
	}
	if !isValidComments(draft.Comments) {
		return entities.TimeSlot{}, ErrInvalidComments
	}

	slot, err := b.schedule.SlotAt(draft.Date, draft.StartTime)
	if err != nil {
		if errors.Is(err, schedule.ErrInvalidDate) {
			return entities.TimeSlot{}, ErrInvalidDate
		}
		return entities.TimeSlot{}, ErrInvalidTime
	}

	if !b.schedule.IsBookableStart(slot.Start) {
		return entities.TimeSlot{}, ErrInvalidSlot
	}
	if !slot.Start.After(b.now()) {
		return entities.TimeSlot{}, ErrSlotInPast
	}

	return slot, nil
}

func isOwner(actor entities.Actor, booking *entities.Booking) bool {
	switch {
	case actor.IsDriver():
		return booking.DriverID == actor.ID
	case actor.IsClient():
		return booking.ClientID == actor.ID
	default:
		return false
	}
}

func canChangeStatus(actor entities.Actor, booking *entities.Booking, status entities.BookingStatus) bool {
	if !isOwner(actor, booking) {
		return false
	}
	if actor.IsClient() {
		return status == entities.BookingCancelled
	}
	return true
}
