package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandRecurrence(t *testing.T) {
	// 2025-01-06 - понедельник
	start := date(2025, time.January, 6)
	end := date(2025, time.January, 15)

	t.Run("mondays and wednesdays", func(t *testing.T) {
		got := ExpandRecurrence(start, NewWeekdaySet(time.Monday, time.Wednesday), end)

		want := []time.Time{
			date(2025, time.January, 6),
			date(2025, time.January, 8),
			date(2025, time.January, 13),
			date(2025, time.January, 15),
		}
		assert.Equal(t, want, got)
	})

	t.Run("start day included when matching", func(t *testing.T) {
		got := ExpandRecurrence(start, NewWeekdaySet(time.Monday), start)
		require.Len(t, got, 1)
		assert.Equal(t, start, got[0])
	})

	t.Run("no matching weekday in window", func(t *testing.T) {
		// Окно пн-ср не содержит ни одной субботы
		got := ExpandRecurrence(start, NewWeekdaySet(time.Saturday), date(2025, time.January, 8))
		assert.Empty(t, got)
	})

	t.Run("empty weekday set", func(t *testing.T) {
		got := ExpandRecurrence(start, WeekdaySet{}, end)
		assert.Empty(t, got)
	})

	t.Run("end before start", func(t *testing.T) {
		got := ExpandRecurrence(end, NewWeekdaySet(time.Monday), start)
		assert.Empty(t, got)
	})

	t.Run("time component truncated", func(t *testing.T) {
		noisyStart := time.Date(2025, time.January, 6, 18, 45, 0, 0, time.UTC)
		got := ExpandRecurrence(noisyStart, NewWeekdaySet(time.Monday), end)

		require.Len(t, got, 2)
		assert.Equal(t, date(2025, time.January, 6), got[0])
		assert.Equal(t, date(2025, time.January, 13), got[1])
	})

	t.Run("every day of week", func(t *testing.T) {
		all := NewWeekdaySet(
			time.Sunday, time.Monday, time.Tuesday, time.Wednesday,
			time.Thursday, time.Friday, time.Saturday,
		)
		got := ExpandRecurrence(start, all, end)
		assert.Len(t, got, 10) // 6..15 января включительно
	})
}

func TestParseWeekday(t *testing.T) {
	tests := []struct {
		input   string
		want    time.Weekday
		wantErr bool
	}{
		{input: "monday", want: time.Monday},
		{input: "Monday", want: time.Monday},
		{input: "  wed ", want: time.Wednesday},
		{input: "SUN", want: time.Sunday},
		{input: "fri", want: time.Friday},
		{input: "", wantErr: true},
		{input: "someday", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseWeekday(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidWeekday)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWeekdaySet_Contains(t *testing.T) {
	set := NewWeekdaySet(time.Monday, time.Friday)
	assert.True(t, set.Contains(time.Monday))
	assert.True(t, set.Contains(time.Friday))
	assert.False(t, set.Contains(time.Sunday))
}
