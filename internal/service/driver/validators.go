package driver

import (
	"net/mail"
	"net/url"
	"strings"
	"unicode/utf8"
)

const (
	minNameLength  = 2
	minAboutLength = 20
	maxAboutLength = 500
	minPhoneDigits = 10
	maxPhoneDigits = 15
)

func isValidName(name string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(name)) >= minNameLength
}

func isValidAbout(about string) bool {
	length := utf8.RuneCountInString(strings.TrimSpace(about))
	return length >= minAboutLength && length <= maxAboutLength
}

func isValidEmail(email string) bool {
	email = strings.TrimSpace(email)
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

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

// isValidLogoURL - пустая строка сбрасывает логотип.
func isValidLogoURL(logoURL string) bool {
	logoURL = strings.TrimSpace(logoURL)
	if logoURL == "" {
		return true
	}

	u, err := url.Parse(logoURL)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
