package status

import "time"

// statusSet is the set of distinct statuses seen on one day.
type statusSet uint8

const (
	sawWorking statusSet = 1 << iota
	sawOutage
)

func (s statusSet) with(st Status) statusSet {
	switch st {
	case Working:
		return s | sawWorking
	case Outage:
		return s | sawOutage
	}
	return s
}

func (s statusSet) color() Color {
	switch s {
	case 0:
		return Gray
	case sawWorking:
		return Green
	case sawOutage:
		return Red
	default:
		return Orange
	}
}

// ColorOf returns the color for a day on which the given statuses were
// reported. Duplicates and order do not matter.
func ColorOf(statuses ...Status) Color {
	var set statusSet
	for _, st := range statuses {
		set = set.with(st)
	}
	return set.color()
}

// Aggregate computes one color per day of w, oldest first. Events outside
// the window and events with unknown statuses are ignored.
func Aggregate(w Window, events []Event) []Color {
	byDay := make(map[time.Time]statusSet, len(events))
	for _, ev := range events {
		if !w.Contains(ev.Date) {
			continue
		}
		d := Day(ev.Date)
		byDay[d] = byDay[d].with(ev.Status)
	}

	colors := make([]Color, 0, w.Len())
	for _, d := range w.Days() {
		colors = append(colors, byDay[d].color())
	}
	return colors
}
