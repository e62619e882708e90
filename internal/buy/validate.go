package buy

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// Validation messages shown when a price or count is rejected.
const (
	PriceMessage = "Must be a number 0 < x < 100"
	CountMessage = "Must be a number 0 < x"
)

var (
	// ErrInvalidPrice is returned for a price that is not an integer in 1..99.
	ErrInvalidPrice = errors.New(PriceMessage)
	// ErrInvalidCount is returned for a count that is not a positive integer.
	ErrInvalidCount = errors.New(CountMessage)
)

// ParsePrice parses a price in cents. Only integers strictly between 0 and
// 100 are accepted.
func ParsePrice(s string) (uint8, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || n <= 0 || n >= 100 {
		return 0, ErrInvalidPrice
	}
	return uint8(n), nil
}

// ParseCount parses a share count. Any positive integer that fits in a
// uint32 is accepted.
func ParseCount(s string) (uint32, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || n <= 0 || n > math.MaxUint32 {
		return 0, ErrInvalidCount
	}
	return uint32(n), nil
}

// ValidatePrice reports whether s is an acceptable price.
func ValidatePrice(s string) error {
	_, err := ParsePrice(s)
	return err
}

// ValidateCount reports whether s is an acceptable count.
func ValidateCount(s string) error {
	_, err := ParseCount(s)
	return err
}
