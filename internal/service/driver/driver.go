package driver

import (
	"context"
	"fmt"
	"strings"

	"moveit/internal/entities"
)

type Driver struct {
	repository Repository
}

func New(repository Repository) *Driver {
	return &Driver{
		repository: repository,
	}
}

// CreateDriver заводит профиль водителя. Идентификатор профиля всегда
// берется из аутентифицированного участника.
func (s *Driver) CreateDriver(ctx context.Context, actor entities.Actor, driverModify entities.DriverModify) (*entities.Driver, error) {
	if !actor.IsDriver() {
		return nil, ErrForbidden
	}
	if strings.TrimSpace(actor.ID) == "" {
		return nil, ErrInvalidDriverID
	}

	if driverModify.Name == nil ||
		driverModify.About == nil ||
		driverModify.ContactEmail == nil ||
		driverModify.ContactPhone == nil {
		return nil, ErrMissingRequiredFields
	}

	err := validate(driverModify)
	if err != nil {
		return nil, err
	}

	driverModify.ID = &actor.ID
	driver, err := s.repository.Create(ctx, driverModify)
	if err != nil {
		return nil, fmt.Errorf("create driver: %w", err)
	}

	return driver, nil
}

func (s *Driver) UpdateDriver(ctx context.Context, actor entities.Actor, driverModify entities.DriverModify) (*entities.Driver, error) {
	if !actor.IsDriver() {
		return nil, ErrForbidden
	}

	if driverModify.Name == nil &&
		driverModify.About == nil &&
		driverModify.ContactEmail == nil &&
		driverModify.ContactPhone == nil &&
		driverModify.LogoURL == nil {
		return nil, fmt.Errorf("no fields to update: %w", ErrMissingRequiredFields)
	}

	err := validate(driverModify)
	if err != nil {
		return nil, err
	}

	driverModify.ID = &actor.ID
	driver, err := s.repository.Update(ctx, driverModify)
	if err != nil {
		return nil, fmt.Errorf("failed to update driver: %w", err)
	}
	return driver, nil
}

func (s *Driver) GetDriver(ctx context.Context, id string) (*entities.Driver, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrInvalidDriverID
	}

	driver, err := s.repository.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get driver: %w", err)
	}

	return driver, nil
}

func (s *Driver) GetDrivers(ctx context.Context) ([]entities.Driver, error) {
	drivers, err := s.repository.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get drivers: %w", err)
	}

	return drivers, nil
}

func validate(driverModify entities.DriverModify) error {
	if driverModify.Name != nil && !isValidName(*driverModify.Name) {
		return ErrInvalidName
	}
	if driverModify.About != nil && !isValidAbout(*driverModify.About) {
		return ErrInvalidAbout
	}
	if driverModify.ContactEmail != nil && !isValidEmail(*driverModify.ContactEmail) {
		return ErrInvalidEmail
	}
	if driverModify.ContactPhone != nil && !isValidPhone(*driverModify.ContactPhone) {
		return ErrInvalidPhone
	}
	if driverModify.LogoURL != nil && !isValidLogoURL(*driverModify.LogoURL) {
		return ErrInvalidLogoURL
	}
	return nil
}
