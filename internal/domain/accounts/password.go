package accounts

import (
	"cradle-api/internal/domain/apperr"

	"golang.org/x/crypto/bcrypt"
)

func isPasswordStrong(password string) bool {
	if len(password) < 8 {
		return false
	}
	hasLetter := false
	hasDigit := false
	for _, c := range password {
		switch {
		case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z':
			hasLetter = true
		case '0' <= c && c <= '9':
			hasDigit = true
		}
	}
	return hasLetter && hasDigit
}

// HashPassword checks strength and returns the bcrypt hash.
func HashPassword(password string) (string, error) {
	if !isPasswordStrong(password) {
		return "", apperr.Invalid("password must be at least 8 characters long and contain both letters and numbers")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", apperr.Upstream(err, "hash password")
	}
	return string(hashed), nil
}

// CheckPassword is false for accounts without a password.
func CheckPassword(hash *string, password string) bool {
	if hash == nil || *hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(*hash), []byte(password)) == nil
}
