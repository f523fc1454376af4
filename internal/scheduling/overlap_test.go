package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusvenues/Zeus-SchedulingService/pkg/types"
)

func TestRangesOverlap(t *testing.T) {
	tests := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd types.TimeString
		want                       bool
	}{
		{name: "partial overlap", aStart: "10:00", aEnd: "12:00", bStart: "11:00", bEnd: "13:00", want: true},
		{name: "b inside a", aStart: "10:00", aEnd: "14:00", bStart: "11:00", bEnd: "12:00", want: true},
		{name: "a inside b", aStart: "11:00", aEnd: "12:00", bStart: "10:00", bEnd: "14:00", want: true},
		{name: "identical ranges", aStart: "10:00", aEnd: "12:00", bStart: "10:00", bEnd: "12:00", want: true},
		{name: "one minute overlap", aStart: "10:00", aEnd: "11:01", bStart: "11:00", bEnd: "12:00", want: true},
		{name: "back-to-back a before b", aStart: "10:00", aEnd: "11:00", bStart: "11:00", bEnd: "12:00", want: false},
		{name: "back-to-back b before a", aStart: "11:00", aEnd: "12:00", bStart: "10:00", bEnd: "11:00", want: false},
		{name: "disjoint", aStart: "08:00", aEnd: "09:00", bStart: "20:00", bEnd: "21:00", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RangesOverlap(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd))
			// Пересечение симметрично
			assert.Equal(t, tt.want, RangesOverlap(tt.bStart, tt.bEnd, tt.aStart, tt.aEnd))
		})
	}
}

func TestShiftTime(t *testing.T) {
	hours := OperatingHours{OpenTime: "08:00", CloseTime: "23:00"}

	tests := []struct {
		name    string
		input   types.TimeString
		shift   int
		want    types.TimeString
		wantErr bool
	}{
		{name: "shift later", input: "10:00", shift: 2, want: "12:00"},
		{name: "shift earlier", input: "10:00", shift: -2, want: "08:00"},
		{name: "lands exactly on open", input: "09:00", shift: -1, want: "08:00"},
		{name: "lands exactly on close", input: "22:00", shift: 1, want: "23:00"},
		{name: "before open", input: "09:00", shift: -2, wantErr: true},
		{name: "after close", input: "22:00", shift: 2, wantErr: true},
		{name: "past midnight", input: "23:00", shift: 2, wantErr: true},
		{name: "before day start", input: "01:00", shift: -2, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ShiftTime(tt.input, tt.shift, hours)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrOutsideOperatingHours)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOperatingHours_IsDegenerate(t *testing.T) {
	assert.False(t, OperatingHours{OpenTime: "08:00", CloseTime: "23:00"}.IsDegenerate())
	assert.True(t, OperatingHours{OpenTime: "23:00", CloseTime: "08:00"}.IsDegenerate())
	assert.True(t, OperatingHours{OpenTime: "10:00", CloseTime: "10:00"}.IsDegenerate())
}
