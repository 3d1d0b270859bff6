package utils

import (
	"fmt"
	"strconv"
	"time"
)

const DateLayout = "2006-01-02"

// MonthKey returns the YYYY-MM key used to associate budgets with a calendar month.
func MonthKey(year, month int) string {
	return fmt.Sprintf("%04d-%02d", year, month)
}

// ParseMonthKey parses a strict zero-padded YYYY-MM key.
func ParseMonthKey(key string) (year, month int, err error) {
	if len(key) != 7 || key[4] != '-' || !isDigits(key[:4]) || !isDigits(key[5:]) {
		return 0, 0, fmt.Errorf("invalid month key %q: expected YYYY-MM", key)
	}
	year, err = strconv.Atoi(key[:4])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid year in month key %q: %w", key, err)
	}
	month, err = strconv.Atoi(key[5:])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid month in month key %q: %w", key, err)
	}
	if !ValidYearMonth(year, month) {
		return 0, 0, fmt.Errorf("invalid month key %q: out of range", key)
	}
	return year, month, nil
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// MonthBounds returns the first day of the month and the first day of the next one.
func MonthBounds(year, month int) (time.Time, time.Time) {
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 1, 0)
}

// ValidYearMonth reports whether year and month can form a month key.
func ValidYearMonth(year, month int) bool {
	return year >= 1 && year <= 9999 && month >= 1 && month <= 12
}
