package utils

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// GenerateObjectKey returns a fresh storage key for an uploaded file,
// keeping the caller-supplied extension.
func GenerateObjectKey(fileType string) string {
	ext := strings.TrimPrefix(strings.TrimSpace(fileType), ".")
	if ext == "" {
		return uuid.New().String()
	}
	return fmt.Sprintf("%s.%s", uuid.New().String(), ext)
}
