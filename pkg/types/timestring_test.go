package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TimeString
		wantErr error
	}{
		{name: "canonical form", input: "10:00", want: "10:00"},
		{name: "zero-pads hour and minute", input: "9:5", want: "09:05"},
		{name: "midnight", input: "00:00", want: "00:00"},
		{name: "last minute of day", input: "23:59", want: "23:59"},
		{name: "missing colon", input: "1000", wantErr: ErrInvalidFormat},
		{name: "too many parts", input: "10:00:00", wantErr: ErrInvalidFormat},
		{name: "non-numeric hour", input: "aa:00", wantErr: ErrInvalidFormat},
		{name: "non-numeric minute", input: "10:bb", wantErr: ErrInvalidFormat},
		{name: "hour out of range", input: "24:00", wantErr: ErrInvalidFormat},
		{name: "minute out of range", input: "10:60", wantErr: ErrInvalidFormat},
		{name: "negative hour", input: "-1:00", wantErr: ErrInvalidFormat},
		{name: "empty string", input: "", wantErr: ErrInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.input)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewTimeStringFromMinutes(t *testing.T) {
	tests := []struct {
		name    string
		minutes int
		want    TimeString
		wantErr error
	}{
		{name: "midnight", minutes: 0, want: "00:00"},
		{name: "morning", minutes: 9*60 + 30, want: "09:30"},
		{name: "last minute of day", minutes: 1439, want: "23:59"},
		{name: "negative", minutes: -1, wantErr: ErrOutOfRange},
		{name: "full day", minutes: MinutesPerDay, wantErr: ErrOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTimeStringFromMinutes(tt.minutes)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_MinutesRoundTrip(t *testing.T) {
	// Каждая минута суток должна выдерживать round-trip minutes -> string -> minutes
	for total := 0; total < MinutesPerDay; total++ {
		ts, err := NewTimeStringFromMinutes(total)
		require.NoError(t, err)

		back, err := ts.Minutes()
		require.NoError(t, err)
		require.Equal(t, total, back, "round-trip mismatch for %s", ts)
	}
}

func TestTimeString_AddMinutes(t *testing.T) {
	tests := []struct {
		name    string
		start   TimeString
		add     int
		want    TimeString
		wantErr error
	}{
		{name: "forward one hour", start: "10:00", add: 60, want: "11:00"},
		{name: "backward one hour", start: "10:00", add: -60, want: "09:00"},
		{name: "zero shift", start: "10:00", add: 0, want: "10:00"},
		{name: "past midnight", start: "23:30", add: 60, wantErr: ErrOutOfRange},
		{name: "before day start", start: "00:30", add: -60, wantErr: ErrOutOfRange},
		{name: "malformed receiver", start: "bogus", add: 60, wantErr: ErrInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.start.AddMinutes(tt.add)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_Comparisons(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("10:00"))
	assert.False(t, TimeString("10:00").IsBefore("10:00"))
	assert.True(t, TimeString("10:00").IsAfter("09:59"))
	assert.False(t, TimeString("10:00").IsAfter("10:00"))
}

func TestNewTimeString(t *testing.T) {
	moment := time.Date(2025, 10, 15, 18, 5, 42, 0, time.UTC)
	assert.Equal(t, TimeString("18:05"), NewTimeString(moment))
}

func TestTimeString_IsZero(t *testing.T) {
	assert.True(t, TimeString("").IsZero())
	assert.False(t, TimeString("00:00").IsZero())
}
