package service

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// bcrypt ignores input past 72 bytes
const maxPasswordBytes = 72

var hashCost = bcrypt.DefaultCost

func hashPassword(password string, minLength int) (string, error) {
	if len([]rune(password)) < minLength {
		return "", invalid("password", fmt.Sprintf("password must be at least %d characters", minLength))
	}
	if len(password) > maxPasswordBytes {
		return "", invalid("password", fmt.Sprintf("password must be at most %d bytes", maxPasswordBytes))
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), hashCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

func checkPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// normalizeEmail trims the address and lower-cases its domain part.
func normalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at+1] + strings.ToLower(email[at+1:])
}
