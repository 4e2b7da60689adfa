package booking

import (
	"moveit/internal/entities"
)

func ToDomain(b *BookingDB) *entities.Booking {
	if b == nil {
		return nil
	}

	return &entities.Booking{
		ID:            b.ID,
		DriverID:      b.DriverID,
		ClientID:      b.ClientID,
		ClientName:    b.ClientName,
		Date:          b.Date,
		StartTime:     b.StartTime,
		EndTime:       b.EndTime,
		VehicleVolume: entities.VehicleVolume(b.VehicleVolume),
		Name:          b.Name,
		Phone:         b.Phone,
		Email:         b.Email,
		Comments:      b.Comments,
		Status:        entities.BookingStatus(b.Status),
		CreatedAt:     b.CreatedAt,
	}
}

func ToDomainList(bookingsDB []BookingDB) []entities.Booking {
	if len(bookingsDB) == 0 {
		return []entities.Booking{}
	}

	result := make([]entities.Booking, len(bookingsDB))
	for i := range bookingsDB {
		result[i] = *ToDomain(&bookingsDB[i])
	}
	return result
}
