package booking

import (
	"errors"
	"math"
	"time"
)

var ErrInvalidDateRange = errors.New("rent end date must be after start date")

// RentPeriod is a date-granularity rental window. Both endpoints are
// normalized to midnight UTC; the end date must be strictly after the start.
type RentPeriod struct {
	start time.Time
	end   time.Time
}

func NewRentPeriod(start, end time.Time) (RentPeriod, error) {
	start = truncateToDate(start)
	end = truncateToDate(end)
	if !end.After(start) {
		return RentPeriod{}, ErrInvalidDateRange
	}
	return RentPeriod{start: start, end: end}, nil
}

func ReconstructRentPeriod(start, end time.Time) RentPeriod {
	return RentPeriod{start: truncateToDate(start), end: truncateToDate(end)}
}

func (p RentPeriod) Start() time.Time {
	return p.start
}

func (p RentPeriod) End() time.Time {
	return p.end
}

// Days is the billable duration: ceil of the calendar difference in days.
func (p RentPeriod) Days() int32 {
	hours := p.end.Sub(p.start).Hours()
	return int32(math.Ceil(hours / 24))
}

// HasExpired reports whether the rental window ended strictly before now.
func (p RentPeriod) HasExpired(now time.Time) bool {
	return p.end.Before(now)
}

// CancellableAt reports whether the period may still be cancelled:
// only strictly before the rental starts.
func (p RentPeriod) CancellableAt(now time.Time) bool {
	return now.Before(p.start)
}

func truncateToDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
