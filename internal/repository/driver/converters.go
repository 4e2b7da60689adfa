package driver

import (
	"strings"

	"moveit/internal/entities"
)

func ToDomain(d *DriverDB) *entities.Driver {
	if d == nil {
		return nil
	}

	return &entities.Driver{
		ID:           d.ID,
		Name:         d.Name,
		About:        d.About,
		ContactEmail: d.ContactEmail,
		ContactPhone: d.ContactPhone,
		LogoURL:      d.LogoURL,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

// FromDomainModify приводит строки к хранимому виду: без пробелов по краям,
// email в нижнем регистре.
func FromDomainModify(driverModify *entities.DriverModify) *DriverModifyDB {
	if driverModify == nil {
		return nil
	}

	driverDB := &DriverModifyDB{
		ID:           driverModify.ID,
		Name:         trimmed(driverModify.Name),
		About:        trimmed(driverModify.About),
		ContactPhone: trimmed(driverModify.ContactPhone),
		LogoURL:      trimmed(driverModify.LogoURL),
	}
	if driverModify.ContactEmail != nil {
		email := strings.ToLower(strings.TrimSpace(*driverModify.ContactEmail))
		driverDB.ContactEmail = &email
	}

	return driverDB
}

func ToDomainList(driversDB []DriverDB) []entities.Driver {
	if len(driversDB) == 0 {
		return []entities.Driver{}
	}

	result := make([]entities.Driver, len(driversDB))
	for i := range driversDB {
		result[i] = *ToDomain(&driversDB[i])
	}
	return result
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
