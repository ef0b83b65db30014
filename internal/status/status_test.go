package status

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		input   string
		want    Status
		wantErr bool
	}{
		{input: "working", want: Working},
		{input: "outage", want: Outage},
		{input: "Working", wantErr: true},
		{input: "OUTAGE", wantErr: true},
		{input: "down", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseStatus(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidStatus)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDate(t *testing.T) {
	valid := []string{"2024-01-15", "2024-02-29", "1999-12-31"}
	for _, s := range valid {
		t.Run(s, func(t *testing.T) {
			d, err := ParseDate(s)
			require.NoError(t, err)
			assert.Equal(t, s, FormatDate(d))
			assert.Equal(t, time.UTC, d.Location())
		})
	}

	invalid := []string{"", "2024-1-15", "2024-01-5", "15-01-2024", "2024/01/15", "2024-02-30", "2024-01-15T10:00:00Z", "2024-01-15 ", "yesterday"}
	for _, s := range invalid {
		t.Run("invalid "+s, func(t *testing.T) {
			_, err := ParseDate(s)
			assert.ErrorIs(t, err, ErrInvalidDate)
		})
	}
}

func TestTrailingWindow(t *testing.T) {
	now := time.Date(2024, 6, 10, 18, 45, 0, 0, time.UTC)
	w := TrailingWindow(now, DefaultWindowDays)

	assert.Equal(t, "2024-03-12", FormatDate(w.Start))
	assert.Equal(t, "2024-06-10", FormatDate(w.End))
	assert.Equal(t, 91, w.Len())
	assert.Len(t, w.Days(), 91)
	assert.Equal(t, w.Start, w.Days()[0])
	assert.Equal(t, w.End, w.Days()[90])
}

func TestTrailingWindow_UsesUTCDate(t *testing.T) {
	helsinki := time.FixedZone("EEST", 3*60*60)
	// 01:30 local on the 11th is still the 10th in UTC
	now := time.Date(2024, 6, 11, 1, 30, 0, 0, helsinki)

	w := TrailingWindow(now, 0)

	assert.Equal(t, 1, w.Len())
	assert.Equal(t, "2024-06-10", FormatDate(w.End))
}

func TestWindow_Index(t *testing.T) {
	w := TrailingWindow(time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), 9)

	assert.Equal(t, 0, w.Index(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)))
	assert.Equal(t, 9, w.Index(time.Date(2024, 1, 10, 23, 0, 0, 0, time.UTC)))
	assert.Equal(t, -1, w.Index(time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, -1, w.Index(time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC)))
}

func TestWindow_CrossesMonthAndLeapDay(t *testing.T) {
	w := Window{Start: Day(time.Date(2024, 2, 27, 0, 0, 0, 0, time.UTC)), End: Day(time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC))}

	days := w.Days()
	assert.Equal(t, 34, w.Len())
	assert.Len(t, days, 34)
	assert.Equal(t, "2024-02-29", FormatDate(days[2]))
}
