package models

import (
	"fmt"
	"time"
)

// DateLayout is the calendar-date format used for every date string in the API.
const DateLayout = "2006-01-02"

// DateRange is an inclusive calendar range.
type DateRange struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	IsMTD     bool   `json:"isMTD,omitempty"`
}

func NewDateRange(start, end time.Time) DateRange {
	return DateRange{StartDate: start.Format(DateLayout), EndDate: end.Format(DateLayout)}
}

// Contains compares as strings; both bounds are inclusive.
func (r DateRange) Contains(date string) bool {
	return date >= r.StartDate && date <= r.EndDate
}

// SameBounds ignores the MTD flag.
func (r DateRange) SameBounds(other DateRange) bool {
	return r.StartDate == other.StartDate && r.EndDate == other.EndDate
}

// Days returns the inclusive length of the range, or 0 when the bounds do not parse.
func (r DateRange) Days() int {
	start, err := time.Parse(DateLayout, r.StartDate)
	if err != nil {
		return 0
	}
	end, err := time.Parse(DateLayout, r.EndDate)
	if err != nil {
		return 0
	}
	return int(end.Sub(start).Hours()/24) + 1
}

func (r DateRange) String() string {
	return fmt.Sprintf("%s..%s", r.StartDate, r.EndDate)
}

// Validate checks format and ordering, and rejects bounds after today.
func (r DateRange) Validate(today string) error {
	start, err := time.Parse(DateLayout, r.StartDate)
	if err != nil {
		return fmt.Errorf("%w: startDate %q is not YYYY-MM-DD", ErrInvalidDateRange, r.StartDate)
	}
	end, err := time.Parse(DateLayout, r.EndDate)
	if err != nil {
		return fmt.Errorf("%w: endDate %q is not YYYY-MM-DD", ErrInvalidDateRange, r.EndDate)
	}
	if start.After(end) {
		return fmt.Errorf("%w: startDate %s is after endDate %s", ErrInvalidDateRange, r.StartDate, r.EndDate)
	}
	if r.StartDate > today || r.EndDate > today {
		return fmt.Errorf("%w: dates after %s cannot be fetched", ErrFutureDate, today)
	}
	return nil
}
