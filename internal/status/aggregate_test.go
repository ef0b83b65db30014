package status

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := ParseDate(s)
	require.NoError(t, err)
	return d
}

func allGray(n int) []Color {
	colors := make([]Color, n)
	for i := range colors {
		colors[i] = Gray
	}
	return colors
}

func TestColorOf(t *testing.T) {
	tests := []struct {
		name     string
		statuses []Status
		expected Color
	}{
		{name: "no reports", statuses: nil, expected: Gray},
		{name: "single working", statuses: []Status{Working}, expected: Green},
		{name: "single outage", statuses: []Status{Outage}, expected: Red},
		{name: "duplicate working collapses", statuses: []Status{Working, Working, Working}, expected: Green},
		{name: "duplicate outage collapses", statuses: []Status{Outage, Outage}, expected: Red},
		{name: "outage then recovery", statuses: []Status{Outage, Working}, expected: Orange},
		{name: "order does not matter", statuses: []Status{Working, Outage}, expected: Orange},
		{name: "many duplicates of both", statuses: []Status{Working, Outage, Working, Outage, Outage}, expected: Orange},
		{name: "unknown status ignored", statuses: []Status{"degraded"}, expected: Gray},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ColorOf(tt.statuses...))
		})
	}
}

func TestAggregate_NoEventsIsAllGray(t *testing.T) {
	w := TrailingWindow(time.Date(2024, 6, 10, 15, 30, 0, 0, time.UTC), DefaultWindowDays)

	colors := Aggregate(w, nil)

	assert.Len(t, colors, 91)
	assert.Equal(t, allGray(91), colors)
}

func TestAggregate_SingleWorkingDay(t *testing.T) {
	now := time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC)
	w := TrailingWindow(now, DefaultWindowDays)
	day := date(t, "2024-06-01")

	colors := Aggregate(w, []Event{{Status: Working, Date: day}})

	idx := w.Index(day)
	require.Equal(t, 81, idx)
	for i, c := range colors {
		if i == idx {
			assert.Equal(t, Green, c)
		} else {
			assert.Equal(t, Gray, c, "day %d", i)
		}
	}
}

func TestAggregate_MixedDayIsOrange(t *testing.T) {
	now := time.Date(2024, 6, 10, 23, 59, 59, 0, time.UTC)
	w := TrailingWindow(now, DefaultWindowDays)
	day := date(t, "2024-06-01")

	events := []Event{
		{Status: Outage, Date: day},
		{Status: Working, Date: day},
		{Status: Working, Date: day},
		{Status: Outage, Date: day},
		{Status: Outage, Date: date(t, "2024-06-02")},
		{Status: Working, Date: date(t, "2024-06-10")},
	}

	colors := Aggregate(w, events)

	require.Len(t, colors, 91)
	assert.Equal(t, Orange, colors[w.Index(day)])
	assert.Equal(t, Red, colors[w.Index(date(t, "2024-06-02"))])
	assert.Equal(t, Green, colors[len(colors)-1])
}

func TestAggregate_WindowBoundaries(t *testing.T) {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	w := TrailingWindow(now, DefaultWindowDays)

	exactly90 := now.AddDate(0, 0, -90)
	exactly91 := now.AddDate(0, 0, -91)
	tomorrow := now.AddDate(0, 0, 1)

	colors := Aggregate(w, []Event{
		{Status: Outage, Date: Day(exactly90)},
		{Status: Working, Date: Day(exactly91)},
		{Status: Working, Date: Day(tomorrow)},
	})

	require.Len(t, colors, 91)
	assert.Equal(t, Red, colors[0], "update 90 days back is the first bucket")
	for _, c := range colors[1:] {
		assert.Equal(t, Gray, c)
	}
}

func TestAggregate_EventTimeOfDayIgnored(t *testing.T) {
	now := time.Date(2024, 6, 10, 0, 0, 1, 0, time.UTC)
	w := TrailingWindow(now, 2)

	colors := Aggregate(w, []Event{
		{Status: Working, Date: time.Date(2024, 6, 9, 23, 59, 0, 0, time.UTC)},
		{Status: Outage, Date: time.Date(2024, 6, 9, 0, 0, 0, 0, time.UTC)},
	})

	assert.Equal(t, []Color{Gray, Orange, Gray}, colors)
}

func TestAggregate_Deterministic(t *testing.T) {
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	w := TrailingWindow(now, DefaultWindowDays)
	events := []Event{
		{Status: Working, Date: date(t, "2024-02-28")},
		{Status: Outage, Date: date(t, "2024-02-29")},
		{Status: Working, Date: date(t, "2024-02-29")},
	}

	first := Aggregate(w, events)
	second := Aggregate(w, events)

	assert.Equal(t, first, second)
	assert.Equal(t, Orange, first[w.Index(date(t, "2024-02-29"))])
}
