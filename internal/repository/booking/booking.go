package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"moveit/internal/entities"
	"moveit/internal/repository"
	"moveit/internal/service/booking"
)

var qb sq.StatementBuilderType = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// date/time отдаем строками в формате API, чтобы не зависеть от зоны соединения.
const bookingColumns = `id, driver_id, client_id, client_name,
	to_char(date, 'YYYY-MM-DD'), to_char(start_time, 'HH24:MI'), to_char(end_time, 'HH24:MI'),
	vehicle_volume, name, phone, email, comments, status, created_at`

const timestampLayout = "2006-01-02 15:04:05"

type Repository struct {
	querier repository.Querier
}

func New(querier repository.Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

func (r *Repository) Create(ctx context.Context, bookingModify entities.BookingModify) (*entities.Booking, error) {
	query := `INSERT INTO bookings (
			driver_id, client_id, client_name, date, start_time, end_time,
			vehicle_volume, name, phone, email, comments, status
		)
		VALUES ($1, $2, $3, $4::date, $5::time, $6::time, $7, $8, $9, $10, $11, $12)
		RETURNING ` + bookingColumns

	bookingModel, err := scanBooking(r.querier.QueryRow(
		ctx,
		query,
		bookingModify.DriverID,
		bookingModify.ClientID,
		bookingModify.ClientName,
		bookingModify.Date,
		bookingModify.StartTime,
		bookingModify.EndTime,
		bookingModify.VehicleVolume.String(),
		bookingModify.Name,
		bookingModify.Phone,
		bookingModify.Email,
		bookingModify.Comments,
		bookingModify.Status.String(),
	))
	if err != nil {
		if repository.IsPgErrorWithCode(err, repository.PgErrForeignKeyViolation) {
			return nil, booking.ErrDriverNotFound
		}
		return nil, fmt.Errorf("unexpected booking repository create error: %w", err)
	}

	return ToDomain(bookingModel), nil
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Booking, error) {
	return r.getByID(ctx, id, false)
}

// GetByIDForUpdate блокирует строку брони до конца текущей транзакции.
func (r *Repository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entities.Booking, error) {
	return r.getByID(ctx, id, true)
}

func (r *Repository) getByID(ctx context.Context, id uuid.UUID, forUpdate bool) (*entities.Booking, error) {
	query := `SELECT ` + bookingColumns + `
		FROM bookings
		WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	bookingModel, err := scanBooking(r.querier.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, booking.ErrBookingNotFound
		}
		return nil, fmt.Errorf("unexpected booking repository getbyid error: %w", err)
	}

	return ToDomain(bookingModel), nil
}

// LockDriverSchedule берет блокировку строки водителя. Все коммиты броней
// одного водителя проходят через нее по очереди.
func (r *Repository) LockDriverSchedule(ctx context.Context, driverID string) error {
	query := `SELECT id FROM drivers WHERE id = $1 FOR UPDATE`

	var id string
	err := r.querier.QueryRow(ctx, query, driverID).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return booking.ErrDriverNotFound
		}
		return fmt.Errorf("unexpected booking repository lock driver error: %w", err)
	}
	return nil
}

// ListByDriverAndDate - все неотмененные брони водителя на дату.
func (r *Repository) ListByDriverAndDate(ctx context.Context, driverID, date string) ([]entities.Booking, error) {
	builder := qb.
		Select(bookingColumns).
		From("bookings").
		Where(sq.Eq{"driver_id": driverID}).
		Where(sq.Expr("date = ?::date", date)).
		Where(sq.NotEq{"status": entities.BookingCancelled.String()}).
		OrderBy("start_time")

	return r.list(ctx, builder)
}

func (r *Repository) ListByDriver(ctx context.Context, driverID string) ([]entities.Booking, error) {
	builder := qb.
		Select(bookingColumns).
		From("bookings").
		Where(sq.Eq{"driver_id": driverID}).
		OrderBy("date DESC", "start_time DESC")

	return r.list(ctx, builder)
}

func (r *Repository) ListByClient(ctx context.Context, clientID string) ([]entities.Booking, error) {
	builder := qb.
		Select(bookingColumns).
		From("bookings").
		Where(sq.Eq{"client_id": clientID}).
		OrderBy("date DESC", "start_time DESC")

	return r.list(ctx, builder)
}

func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.BookingStatus) (*entities.Booking, error) {
	query := `UPDATE bookings
		SET status = $2
		WHERE id = $1
		RETURNING ` + bookingColumns

	bookingModel, err := scanBooking(r.querier.QueryRow(ctx, query, id, status.String()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, booking.ErrBookingNotFound
		}
		if repository.IsPgErrorWithCode(err, repository.PgErrCheckViolation) {
			return nil, booking.ErrInvalidStatus
		}
		return nil, fmt.Errorf("unexpected booking repository update status error: %w", err)
	}

	return ToDomain(bookingModel), nil
}

// CancelPendingEndedBefore отменяет pending-брони, окно которых закончилось
// раньше before (сравнение по настенному времени before).
func (r *Repository) CancelPendingEndedBefore(ctx context.Context, before time.Time) ([]entities.Booking, error) {
	query := `UPDATE bookings
		SET status = $1
		WHERE status = $2
		  AND (date + end_time) < $3::timestamp
		RETURNING ` + bookingColumns

	rows, err := r.querier.Query(
		ctx,
		query,
		entities.BookingCancelled.String(),
		entities.BookingPending.String(),
		before.Format(timestampLayout),
	)
	if err != nil {
		return nil, fmt.Errorf("unexpected booking repository cancel expired error: %w", err)
	}

	return collect(rows)
}

func (r *Repository) list(ctx context.Context, builder sq.SelectBuilder) ([]entities.Booking, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected booking repository list error: %w", err)
	}

	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("unexpected booking repository list error: %w", err)
	}

	return collect(rows)
}

func collect(rows pgx.Rows) ([]entities.Booking, error) {
	defer rows.Close()

	bookingModels := make([]BookingDB, 0, 8)
	for rows.Next() {
		bookingModel, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("unexpected booking repository scan error: %w", err)
		}
		bookingModels = append(bookingModels, *bookingModel)
	}

	err := rows.Err()
	if err != nil {
		return nil, fmt.Errorf("unexpected booking repository rows error: %w", err)
	}

	return ToDomainList(bookingModels), nil
}

func scanBooking(row pgx.Row) (*BookingDB, error) {
	var bookingModel BookingDB
	err := row.Scan(
		&bookingModel.ID,
		&bookingModel.DriverID,
		&bookingModel.ClientID,
		&bookingModel.ClientName,
		&bookingModel.Date,
		&bookingModel.StartTime,
		&bookingModel.EndTime,
		&bookingModel.VehicleVolume,
		&bookingModel.Name,
		&bookingModel.Phone,
		&bookingModel.Email,
		&bookingModel.Comments,
		&bookingModel.Status,
		&bookingModel.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &bookingModel, nil
}
