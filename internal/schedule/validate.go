package schedule

import (
	"errors"
	"time"
)

// ErrInvalidRange is returned when a session's end does not come after its start.
var ErrInvalidRange = errors.New("end time must be after start time")

// ValidateRange checks a proposed session time range. It is called before
// every session create and update; a failing range must never reach the store.
func ValidateRange(start, end time.Time) error {
	if !end.After(start) {
		return ErrInvalidRange
	}
	return nil
}
