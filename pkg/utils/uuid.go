package utils

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// ParseUUID parses a string into a UUID
func ParseUUID(s string) (uuid.UUID, error) {
	return uuid.Parse(strings.TrimSpace(s))
}

// GenerateOrderCode generates a unique order code such as ORD-20240131-1A2B3C4D
func GenerateOrderCode(at time.Time) string {
	return "ORD-" + at.Format("20060102") + "-" + shortID()
}

// GenerateProductCode generates a unique product code
func GenerateProductCode() string {
	return "PROD-" + shortID()
}

func shortID() string {
	return strings.ToUpper(uuid.New().String()[:8])
}
