// Package status turns sparse per-day status reports into a gap-filled
// color timeline.
//
// A day's color is derived from the set of distinct statuses reported
// for it, never from the latest report: a day with at least one outage
// report is never shown as plain green.
package status

import (
	"errors"
	"fmt"
	"time"
)

// DateLayout is the only accepted effective date format.
const DateLayout = "2006-01-02"

type Status string

const (
	Working Status = "working"
	Outage  Status = "outage"
)

type Color string

const (
	Gray   Color = "gray"   // no data
	Green  Color = "green"  // only working
	Red    Color = "red"    // only outage
	Orange Color = "orange" // working and outage on the same day
)

var (
	ErrInvalidStatus = errors.New("invalid status")
	ErrInvalidDate   = errors.New("invalid date")
)

// ParseStatus accepts exactly "working" or "outage". Matching is case-sensitive.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case Working, Outage:
		return Status(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
}

// ParseDate parses a strict YYYY-MM-DD calendar date. The result is
// midnight UTC of that date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}

// Day truncates t to midnight UTC of its UTC calendar date.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FormatDate renders the calendar date of t in DateLayout.
func FormatDate(t time.Time) string {
	return Day(t).Format(DateLayout)
}

// Event is one status report for one calendar day.
type Event struct {
	Status Status
	Date   time.Time
}
