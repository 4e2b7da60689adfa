// Package presenter переводит доменные сущности в DTO ответа.
package presenter

import (
	"moveit/internal/entities"
	"moveit/internal/generated/dto"
	"moveit/internal/pkg/schedule"
)

func Driver(driver *entities.Driver) dto.Driver {
	return dto.Driver{
		Id:           driver.ID,
		Name:         driver.Name,
		About:        driver.About,
		ContactEmail: driver.ContactEmail,
		ContactPhone: driver.ContactPhone,
		LogoUrl:      driver.LogoURL,
		CreatedAt:    driver.CreatedAt,
		UpdatedAt:    driver.UpdatedAt,
	}
}

func Drivers(drivers []entities.Driver) []dto.Driver {
	result := make([]dto.Driver, 0, len(drivers))
	for i := range drivers {
		result = append(result, Driver(&drivers[i]))
	}
	return result
}

func Booking(booking *entities.Booking) dto.Booking {
	return dto.Booking{
		Id:            booking.ID.String(),
		DriverId:      booking.DriverID,
		ClientId:      booking.ClientID,
		ClientName:    booking.ClientName,
		Date:          booking.Date,
		StartTime:     booking.StartTime,
		EndTime:       booking.EndTime,
		VehicleVolume: booking.VehicleVolume.String(),
		Name:          booking.Name,
		Phone:         booking.Phone,
		Email:         booking.Email,
		Comments:      booking.Comments,
		Status:        dto.BookingStatus(booking.Status),
		CreatedAt:     booking.CreatedAt,
	}
}

func Bookings(bookings []entities.Booking) []dto.Booking {
	result := make([]dto.Booking, 0, len(bookings))
	for i := range bookings {
		result = append(result, Booking(&bookings[i]))
	}
	return result
}

// TimeSlots - слоты в формате HH:mm, пустой список сериализуется как [].
func TimeSlots(slots []entities.TimeSlot) []dto.TimeSlot {
	result := make([]dto.TimeSlot, 0, len(slots))
	for _, slot := range slots {
		result = append(result, dto.TimeSlot{
			StartTime: schedule.FormatClock(slot.Start),
			EndTime:   schedule.FormatClock(slot.End),
		})
	}
	return result
}
