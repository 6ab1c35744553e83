package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
)

// GenerateEmployeeCode generates a random employee code in the format
// EMP-XXXX-XXXX, used when an onboarding flow does not supply one.
func GenerateEmployeeCode() (string, error) {
	bytes := make([]byte, 4)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	hex := strings.ToUpper(hex.EncodeToString(bytes))
	return fmt.Sprintf("EMP-%s-%s", hex[0:4], hex[4:8]), nil
}
