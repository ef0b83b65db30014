package utils

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateAPIKey returns a random 32 character hex token.
func GenerateAPIKey() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return strings.ReplaceAll(id.String(), "-", ""), nil
}
