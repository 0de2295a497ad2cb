package utils

import (
	"errors"
	"fmt"
	"io/fs"
	"math/rand"
	"strconv"
	"time"
)

// ParseInt converts string to int with default value
func ParseInt(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}

	result, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	if result < 1 {
		return defaultValue
	}

	return result
}

// GenerateOrderID creates a unique order ID with timestamp
func GenerateOrderID(now time.Time) string {
	// Format: BOOK-YYYYMMDD-HHMMSS-RANDOM
	datePart := now.Format("20060102")
	timePart := now.Format("150405")
	randomPart := fmt.Sprintf("%04d", rand.Intn(10000))

	return fmt.Sprintf("BOOK-%s-%s-%s", datePart, timePart, randomPart)
}

func isMissingFile(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
