package domain

import (
	"errors"
	"fmt"
	"time"
)

const DateFormat = "2006-01-02"

var (
	ErrInvalidDate      = errors.New("date must be formatted as YYYY-MM-DD")
	ErrInvalidTimeRange = errors.New("end time must be after start time")
)

// DateRange is an inclusive [Start, End] span of YYYY-MM-DD dates.
type DateRange struct {
	Start string `json:"start_date"`
	End   string `json:"end_date"`
}

func (r DateRange) Validate() error {
	if _, err := time.Parse(DateFormat, r.Start); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDate, r.Start)
	}
	if _, err := time.Parse(DateFormat, r.End); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDate, r.End)
	}
	return nil
}

// Contains reports whether date falls within the range, both ends
// inclusive. YYYY-MM-DD strings order lexicographically.
func (r DateRange) Contains(date string) bool {
	return date >= r.Start && date <= r.End
}

// TimesheetFilters selects which entries a reload fetches. UserID and
// JobcodeID are optional; empty means all.
type TimesheetFilters struct {
	Range     DateRange `json:"range"`
	UserID    string    `json:"user_id,omitempty"`
	JobcodeID string    `json:"jobcode_id,omitempty"`
}

// Validate checks an entry before it is sent to the tracker API. The end
// timestamp must come strictly after the start when both are present.
func (e TimesheetEntry) Validate() error {
	if e.Start == "" || e.End == "" {
		return nil
	}
	start, err := time.Parse(time.RFC3339, e.Start)
	if err != nil {
		return fmt.Errorf("bad start timestamp: %v", err)
	}
	end, err := time.Parse(time.RFC3339, e.End)
	if err != nil {
		return fmt.Errorf("bad end timestamp: %v", err)
	}
	if !end.After(start) {
		return ErrInvalidTimeRange
	}
	return nil
}
