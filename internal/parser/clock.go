package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

var clockRegex = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)

// ParseClock combines a calendar day with an "HH:MM" wall-clock string into a
// local time. Session start and end inputs go through this.
func ParseClock(day time.Time, input string) (time.Time, error) {
	matches := clockRegex.FindStringSubmatch(input)
	if len(matches) != 3 {
		return time.Time{}, fmt.Errorf("invalid time '%s', use HH:MM", input)
	}

	hour, _ := strconv.Atoi(matches[1])
	minute, _ := strconv.Atoi(matches[2])
	if hour > 23 {
		return time.Time{}, fmt.Errorf("hour must be between 0 and 23")
	}
	if minute > 59 {
		return time.Time{}, fmt.Errorf("minute must be between 0 and 59")
	}

	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, time.Local), nil
}

// ParseDay parses a "dd/mm/yyyy" calendar day, defaulting to today when empty.
func ParseDay(input string) (time.Time, error) {
	if input == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local), nil
	}
	day, err := time.ParseInLocation("02/01/2006", input, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date '%s', use dd/mm/yyyy", input)
	}
	return day, nil
}
