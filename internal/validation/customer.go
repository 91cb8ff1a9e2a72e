// Package validation содержит функции валидации входных данных.
package validation

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	maxCustomerIDLen = 64
	maxNameLen       = 128
)

// IsValidCustomerID проверяет идентификатор клиента: латинские буквы, цифры, '-' и '_', не длиннее 64 символов.
func IsValidCustomerID(id string) bool {
	if id == "" || len(id) > maxCustomerIDLen {
		return false
	}

	for _, ch := range id {
		if ch > unicode.MaxASCII {
			return false
		}
		if unicode.IsLetter(ch) || unicode.IsDigit(ch) || ch == '-' || ch == '_' {
			continue
		}
		return false
	}

	return true
}

// IsValidCustomerName проверяет, что имя непустое, печатное и не длиннее 128 символов.
func IsValidCustomerName(name string) bool {
	name = strings.TrimSpace(name)
	if name == "" || utf8.RuneCountInString(name) > maxNameLen {
		return false
	}

	for _, ch := range name {
		if !unicode.IsPrint(ch) {
			return false
		}
	}

	return true
}
