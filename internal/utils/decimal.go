package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseDecimal parses a number that may use a comma as the decimal separator ("0,5").
func ParseDecimal(s string) (float64, error) {
	normalized := strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	if normalized == "" {
		return 0, fmt.Errorf("empty number")
	}
	f, err := strconv.ParseFloat(normalized, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	return f, nil
}

// FormatDecimal renders a dose without trailing zeros (1, 0.5, 1.25).
func FormatDecimal(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
