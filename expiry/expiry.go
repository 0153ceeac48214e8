// Package expiry buckets products by the number of days left before they expire.
package expiry

import (
	"fmt"
	"time"
)

// Status is the classification bucket of a product.
type Status string

const (
	Expired      Status = "Expired"
	Remove       Status = "Remove"
	Within30Days Status = "Within30Days"
	Held         Status = "Held"
)

const secondsPerDay = 24 * 60 * 60

// Bucket limits, in days from today.
const (
	RemoveWithinDays = 5
	WatchWithinDays  = 30
)

// Statuses returns every bucket, most urgent first.
func Statuses() []Status {
	return []Status{Expired, Remove, Within30Days, Held}
}

// ParseStatus validates a bucket name coming from user input.
func ParseStatus(s string) (Status, error) {
	for _, st := range Statuses() {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown status %q", s)
}

// Classify maps an expiry date to its bucket relative to today.
func Classify(expiryDate, today time.Time) Status {
	d := DaysUntil(expiryDate, today)
	switch {
	case d < 0:
		return Expired
	case d <= RemoveWithinDays:
		return Remove
	case d <= WatchWithinDays:
		return Within30Days
	default:
		return Held
	}
}

// DaysUntil counts whole calendar days from today to expiryDate. Time of day
// and location offsets are ignored; only the year, month and day of each value
// are used.
func DaysUntil(expiryDate, today time.Time) int {
	e := civil(expiryDate)
	t := civil(today)
	// Unix seconds, not Duration, which saturates after about 292 years
	return int((e.Unix() - t.Unix()) / secondsPerDay)
}

// Today returns the calendar date of now in loc, at midnight UTC.
func Today(now time.Time, loc *time.Location) time.Time {
	if loc != nil {
		now = now.In(loc)
	}
	return civil(now)
}

func civil(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
