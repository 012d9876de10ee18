package utils

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

const DayLayout = "2006-01-02"

var ErrInvalidDate = errors.New("invalid date")

// ParseDay accepts YYYY-MM-DD or an RFC3339 timestamp and returns the UTC
// midnight of that calendar day.
func ParseDay(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty", ErrInvalidDate)
	}
	if t, err := time.Parse(DayLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return TruncateDay(t), nil
}

func TruncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func FormatDay(t time.Time) string {
	return t.UTC().Format(DayLayout)
}

// NightsBetween counts the nights of the stay [checkIn, checkOut).
func NightsBetween(checkIn, checkOut time.Time) int {
	return int(math.Round(TruncateDay(checkOut).Sub(TruncateDay(checkIn)).Hours() / 24))
}

// RoundMoney rounds to cents.
func RoundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}
