package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusvenues/Zeus-SchedulingService/internal/domain"
	"github.com/zeusvenues/Zeus-SchedulingService/pkg/types"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func reservation(id, spaceID int64, day time.Time, start, end types.TimeString, status domain.ReservationStatus) *domain.Reservation {
	return &domain.Reservation{
		ID:        id,
		UserID:    100 + id,
		SpaceID:   spaceID,
		Date:      day,
		StartTime: start,
		EndTime:   end,
		Status:    status,
	}
}

func TestFindConflicts(t *testing.T) {
	mon := date(2025, time.January, 6)
	wed := date(2025, time.January, 8)

	existing := []*domain.Reservation{
		reservation(1, 5, mon, "18:00", "20:00", domain.StatusConfirmed),
		reservation(2, 5, wed, "10:00", "11:00", domain.StatusConfirmed),
		reservation(3, 7, mon, "18:00", "20:00", domain.StatusConfirmed), // другое пространство
		reservation(4, 5, mon, "18:00", "20:00", domain.StatusCancelled), // отменённое не считается
	}

	t.Run("reports only conflicting dates", func(t *testing.T) {
		candidate := CandidateRequest{
			SpaceID:   5,
			Dates:     []time.Time{mon, wed},
			StartTime: "19:00",
			EndTime:   "21:00",
		}

		reports, err := FindConflicts(candidate, existing)
		require.NoError(t, err)

		// Понедельник конфликтует с бронированием 18:00-20:00, среда свободна вечером
		require.Len(t, reports, 1)
		assert.Equal(t, mon, reports[0].Date)
		require.Len(t, reports[0].Conflicts, 1)
		assert.Equal(t, int64(1), reports[0].Conflicts[0].ReservationID)
		assert.Equal(t, types.TimeString("18:00"), reports[0].Conflicts[0].StartTime)
	})

	t.Run("cancelled reservations never conflict", func(t *testing.T) {
		candidate := CandidateRequest{
			SpaceID:   5,
			Dates:     []time.Time{mon},
			StartTime: "18:00",
			EndTime:   "20:00",
		}

		reports, err := FindConflicts(candidate, existing)
		require.NoError(t, err)

		// Находится только активное бронирование, отменённый дубль - нет
		require.Len(t, reports, 1)
		require.Len(t, reports[0].Conflicts, 1)
		assert.Equal(t, domain.StatusConfirmed, reports[0].Conflicts[0].Status)
	})

	t.Run("other space does not conflict", func(t *testing.T) {
		candidate := CandidateRequest{
			SpaceID:   9,
			Dates:     []time.Time{mon},
			StartTime: "18:00",
			EndTime:   "20:00",
		}

		reports, err := FindConflicts(candidate, existing)
		require.NoError(t, err)
		assert.Empty(t, reports)
	})

	t.Run("back-to-back slot is free", func(t *testing.T) {
		candidate := CandidateRequest{
			SpaceID:   5,
			Dates:     []time.Time{mon},
			StartTime: "20:00",
			EndTime:   "22:00",
		}

		reports, err := FindConflicts(candidate, existing)
		require.NoError(t, err)
		assert.Empty(t, reports)
	})

	t.Run("empty snapshot yields no conflicts", func(t *testing.T) {
		candidate := CandidateRequest{
			SpaceID:   5,
			Dates:     []time.Time{mon, wed},
			StartTime: "10:00",
			EndTime:   "11:00",
		}

		reports, err := FindConflicts(candidate, nil)
		require.NoError(t, err)
		assert.Empty(t, reports)
	})

	t.Run("start must be before end", func(t *testing.T) {
		candidate := CandidateRequest{
			SpaceID:   5,
			Dates:     []time.Time{mon},
			StartTime: "20:00",
			EndTime:   "18:00",
		}

		_, err := FindConflicts(candidate, existing)
		require.ErrorIs(t, err, ErrInvalidRange)
	})

	t.Run("malformed bound propagates format error", func(t *testing.T) {
		candidate := CandidateRequest{
			SpaceID:   5,
			Dates:     []time.Time{mon},
			StartTime: "18-00",
			EndTime:   "20:00",
		}

		_, err := FindConflicts(candidate, existing)
		require.ErrorIs(t, err, types.ErrInvalidFormat)
	})
}

func TestFindConflicts_AddingOverlapNeverShrinksReport(t *testing.T) {
	mon := date(2025, time.January, 6)

	candidate := CandidateRequest{
		SpaceID:   5,
		Dates:     []time.Time{mon},
		StartTime: "19:00",
		EndTime:   "21:00",
	}

	existing := []*domain.Reservation{
		reservation(1, 5, mon, "18:00", "20:00", domain.StatusConfirmed),
	}

	before, err := FindConflicts(candidate, existing)
	require.NoError(t, err)
	require.Len(t, before, 1)
	require.Len(t, before[0].Conflicts, 1)

	// Добавление пересекающегося бронирования не может уменьшить отчёт
	existing = append(existing, reservation(2, 5, mon, "20:30", "21:30", domain.StatusPending))

	after, err := FindConflicts(candidate, existing)
	require.NoError(t, err)
	require.Len(t, after, 1)
	assert.GreaterOrEqual(t, len(after[0].Conflicts), len(before[0].Conflicts))
	assert.Len(t, after[0].Conflicts, 2)
}

func TestFindConflicts_TimeComponentOnDateIgnored(t *testing.T) {
	// Дата снимка может нести компонент времени - сравниваются только календарные дни
	mon := date(2025, time.January, 6)
	monWithTime := time.Date(2025, time.January, 6, 15, 30, 0, 0, time.UTC)

	existing := []*domain.Reservation{
		reservation(1, 5, monWithTime, "18:00", "20:00", domain.StatusConfirmed),
	}

	candidate := CandidateRequest{
		SpaceID:   5,
		Dates:     []time.Time{mon},
		StartTime: "19:00",
		EndTime:   "20:00",
	}

	reports, err := FindConflicts(candidate, existing)
	require.NoError(t, err)
	require.Len(t, reports, 1)
}
