package driver

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"moveit/internal/entities"
	"moveit/internal/repository"
	"moveit/internal/service/driver"
)

var qb sq.StatementBuilderType = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const driverColumns = "id, name, about, contact_email, contact_phone, logo_url, created_at, updated_at"

type Repository struct {
	querier repository.Querier
}

func New(querier repository.Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

func (r *Repository) Create(ctx context.Context, driverModifyEntity entities.DriverModify) (*entities.Driver, error) {
	driverModifyModel := FromDomainModify(&driverModifyEntity)

	logoURL := ""
	if driverModifyModel.LogoURL != nil {
		logoURL = *driverModifyModel.LogoURL
	}

	query := `INSERT INTO drivers (id, name, about, contact_email, contact_phone, logo_url)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + driverColumns

	driverModel, err := scanDriver(r.querier.QueryRow(
		ctx,
		query,
		driverModifyModel.ID,
		driverModifyModel.Name,
		driverModifyModel.About,
		driverModifyModel.ContactEmail,
		driverModifyModel.ContactPhone,
		logoURL,
	))
	if err != nil {
		if repository.IsPgErrorWithCode(err, repository.PgErrUniqueViolation) {
			return nil, driver.ErrConflict
		}
		return nil, fmt.Errorf("unexpected driver repository create error: %w", err)
	}

	return ToDomain(driverModel), nil
}

func (r *Repository) Update(ctx context.Context, driverModifyEntity entities.DriverModify) (*entities.Driver, error) {
	driverModifyModel := FromDomainModify(&driverModifyEntity)

	builder := qb.
		Update("drivers")

	// опциональные поля
	if driverModifyModel.Name != nil {
		builder = builder.Set("name", driverModifyModel.Name)
	}
	if driverModifyModel.About != nil {
		builder = builder.Set("about", driverModifyModel.About)
	}
	if driverModifyModel.ContactEmail != nil {
		builder = builder.Set("contact_email", driverModifyModel.ContactEmail)
	}
	if driverModifyModel.ContactPhone != nil {
		builder = builder.Set("contact_phone", driverModifyModel.ContactPhone)
	}
	if driverModifyModel.LogoURL != nil {
		builder = builder.Set("logo_url", driverModifyModel.LogoURL)
	}

	builder = builder.Set("updated_at", sq.Expr("NOW()"))

	builder = builder.
		Where(sq.Eq{"id": driverModifyModel.ID}).
		Suffix("RETURNING " + driverColumns)

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected driver repository update error: %w", err)
	}

	driverModel, err := scanDriver(r.querier.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, driver.ErrDriverNotFound
		}
		return nil, fmt.Errorf("unexpected driver repository update error: %w", err)
	}

	return ToDomain(driverModel), nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*entities.Driver, error) {
	query := `SELECT ` + driverColumns + `
		FROM drivers
		WHERE id = $1`

	driverModel, err := scanDriver(r.querier.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, driver.ErrDriverNotFound
		}
		return nil, fmt.Errorf("unexpected driver repository getbyid error: %w", err)
	}

	return ToDomain(driverModel), nil
}

func (r *Repository) GetAll(ctx context.Context) ([]entities.Driver, error) {
	query := `
	SELECT ` + driverColumns + `
	FROM drivers
	ORDER BY name, id`

	rows, err := r.querier.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("unexpected driver repository getall error: %w", err)
	}
	defer rows.Close()

	driverModels := make([]DriverDB, 0, 8)
	for rows.Next() {
		driverModel, err := scanDriver(rows)
		if err != nil {
			return nil, fmt.Errorf("unexpected driver repository getall error: %w", err)
		}
		driverModels = append(driverModels, *driverModel)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("unexpected driver repository getall error: %w", err)
	}

	return ToDomainList(driverModels), nil
}

func scanDriver(row pgx.Row) (*DriverDB, error) {
	var driverModel DriverDB
	err := row.Scan(
		&driverModel.ID,
		&driverModel.Name,
		&driverModel.About,
		&driverModel.ContactEmail,
		&driverModel.ContactPhone,
		&driverModel.LogoURL,
		&driverModel.CreatedAt,
		&driverModel.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &driverModel, nil
}
