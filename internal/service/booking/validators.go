package booking

import (
	"net/mail"
	"strings"
	"unicode/utf8"

	"moveit/internal/entities"
)

const (
	minNameLength   = 2
	minPhoneDigits  = 10
	maxPhoneDigits  = 15
	maxCommentsSize = 500
)

func isValidName(name string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(name)) >= minNameLength
}

// isValidPhone - необязательный "+" и от 10 до 15 цифр.
func isValidPhone(phone string) bool {
	phone = strings.TrimPrefix(strings.TrimSpace(phone), "+")
	if len(phone) < minPhoneDigits || len(phone) > maxPhoneDigits {
		return false
	}

	for _, char := range phone {
		if char < '0' || char > '9' {
			return false
		}
	}
	return true
}

// isValidEmail - пустой email допустим, он необязателен.
func isValidEmail(email string) bool {
	email = strings.TrimSpace(email)
	if email == "" {
		return true
	}
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

func isValidComments(comments string) bool {
	return utf8.RuneCountInString(comments) <= maxCommentsSize
}

func isValidVolume(volume entities.VehicleVolume) bool {
	switch volume {
	case entities.VolumeSmall, entities.VolumeMedium, entities.VolumeLarge:
		return true
	default:
		return false
	}
}

func isValidStatus(status entities.BookingStatus) bool {
	switch status {
	case entities.BookingPending, entities.BookingInTransit, entities.BookingCompleted, entities.BookingCancelled:
		return true
	default:
		return false
	}
}
