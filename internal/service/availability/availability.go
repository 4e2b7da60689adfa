package availability

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"moveit/internal/entities"
	"moveit/internal/pkg/schedule"
	"moveit/internal/service/driver"
)

type Availability struct {
	repository    Repository
	driverService DriverService
	subscriber    Subscriber
	schedule      *schedule.Schedule
}

func New(
	repository Repository,
	driverService DriverService,
	subscriber Subscriber,
	sched *schedule.Schedule,
) *Availability {
	return &Availability{
		repository:    repository,
		driverService: driverService,
		subscriber:    subscriber,
		schedule:      sched,
	}
}

// Slots - свободные слоты водителя на дату по текущему состоянию броней.
func (a *Availability) Slots(ctx context.Context, driverID, date string) ([]entities.TimeSlot, error) {
	day, err := a.resolve(ctx, driverID, date)
	if err != nil {
		return nil, err
	}

	return a.compute(ctx, driverID, day)
}

// Watch отдает первый снимок доступности сразу, затем новый снимок после
// каждой пачки изменений броней водителя на эту дату. Подписка оформляется
// до первого чтения, поэтому изменение между ними не теряется. Канал
// закрывается при отмене ctx.
func (a *Availability) Watch(ctx context.Context, driverID, date string) (<-chan entities.AvailabilitySnapshot, error) {
	day, err := a.resolve(ctx, driverID, date)
	if err != nil {
		return nil, err
	}

	changes, err := a.subscriber.Subscribe(ctx, driverID, schedule.FormatDate(day))
	if err != nil {
		return nil, fmt.Errorf("subscribe booking changes: %w", err)
	}

	out := make(chan entities.AvailabilitySnapshot)
	go a.watch(ctx, driverID, day, changes, out)
	return out, nil
}

func (a *Availability) watch(
	ctx context.Context,
	driverID string,
	day time.Time,
	changes <-chan struct{},
	out chan<- entities.AvailabilitySnapshot,
) {
	defer close(out)

	var seq uint64
	emit := func() bool {
		seq++
		slots, err := a.compute(ctx, driverID, day)
		snapshot := entities.AvailabilitySnapshot{
			Seq:      seq,
			DriverID: driverID,
			Date:     schedule.FormatDate(day),
			Slots:    slots,
			Err:      err,
		}

		select {
		case out <- snapshot:
			return true
		case <-ctx.Done():
			return false
		}
	}

	if !emit() {
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-changes:
			if !ok {
				return
			}
			if !emit() {
				return
			}
		}
	}
}

func (a *Availability) resolve(ctx context.Context, driverID, date string) (time.Time, error) {
	if strings.TrimSpace(driverID) == "" {
		return time.Time{}, ErrInvalidDriverID
	}

	day, err := a.schedule.ParseDate(date)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %w", ErrInvalidDate, err)
	}

	_, err = a.driverService.GetDriver(ctx, driverID)
	if err != nil {
		if errors.Is(err, driver.ErrDriverNotFound) {
			return time.Time{}, ErrDriverNotFound
		}
		return time.Time{}, fmt.Errorf("get driver: %w", err)
	}

	return day, nil
}

func (a *Availability) compute(ctx context.Context, driverID string, day time.Time) ([]entities.TimeSlot, error) {
	bookings, err := a.repository.ListByDriverAndDate(ctx, driverID, schedule.FormatDate(day))
	if err != nil {
		return nil, fmt.Errorf("list driver bookings: %w", err)
	}

	return a.schedule.AvailableTimeSlots(day, bookings), nil
}
