package expense

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

var (
	// ErrInvalidDescription is returned for empty or purely numeric descriptions.
	ErrInvalidDescription = errors.New("invalid description")
	// ErrInvalidAmount is returned when an amount is not a non-negative number.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrNotFound is returned when removing a description that is not recorded.
	ErrNotFound = errors.New("expense not found")
)

// NormalizeDescription trims and lower-cases s and rejects names that are
// empty or made only of numeric characters.
func NormalizeDescription(s string) (string, error) {
	d := normalize(s)
	if d == "" {
		return "", fmt.Errorf("%w: expense description cannot be empty", ErrInvalidDescription)
	}
	if isNumeric(d) {
		return "", fmt.Errorf("%w: expense description cannot be a numeric value", ErrInvalidDescription)
	}
	return d, nil
}

// ParseAmount reads a non-negative decimal amount. The value is kept as
// parsed; rounding happens only when it is displayed.
func ParseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: amount cannot be empty", ErrInvalidAmount)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidAmount, s)
	}
	if err := checkAmount(v); err != nil {
		return 0, err
	}
	return v, nil
}

func checkAmount(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: amount must be a finite number", ErrInvalidAmount)
	}
	if v < 0 {
		return fmt.Errorf("%w: amount cannot be negative", ErrInvalidAmount)
	}
	return nil
}

// IsAffirmative reports whether a confirmation answer means yes.
func IsAffirmative(answer string) bool {
	switch normalize(answer) {
	case "y", "yes":
		return true
	}
	return false
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsNumber(r) {
			return false
		}
	}
	return true
}

func notFound(desc string) error {
	return fmt.Errorf("%w: '%s' is not in your expense list", ErrNotFound, desc)
}
