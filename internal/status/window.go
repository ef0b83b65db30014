package status

import "time"

// DefaultWindowDays is the number of trailing days before today in the
// default history. Today is always included, so the default history
// has DefaultWindowDays+1 entries.
const DefaultWindowDays = 90

// Window is an inclusive range of calendar days.
type Window struct {
	Start time.Time
	End   time.Time
}

// TrailingWindow returns the window from days before now's date through
// now's date, both inclusive. Dates are taken in UTC.
func TrailingWindow(now time.Time, days int) Window {
	end := Day(now)
	return Window{
		Start: end.AddDate(0, 0, -days),
		End:   end,
	}
}

// Len is the number of day buckets in the window.
func (w Window) Len() int {
	if w.End.Before(w.Start) {
		return 0
	}
	// Calendar days in UTC are always 24h apart
	return int(w.End.Sub(w.Start)/(24*time.Hour)) + 1
}

// Contains reports whether t falls on a day inside the window.
func (w Window) Contains(t time.Time) bool {
	d := Day(t)
	return !d.Before(w.Start) && !d.After(w.End)
}

// Days returns every day in the window, oldest first.
func (w Window) Days() []time.Time {
	days := make([]time.Time, 0, w.Len())
	for d := w.Start; !d.After(w.End); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// Index returns the position of t's day in the window, or -1 if outside.
func (w Window) Index(t time.Time) int {
	if !w.Contains(t) {
		return -1
	}
	return int(Day(t).Sub(w.Start) / (24 * time.Hour))
}
