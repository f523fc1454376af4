package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusvenues/Zeus-SchedulingService/internal/domain"
	"github.com/zeusvenues/Zeus-SchedulingService/pkg/types"
)

func TestFindAlternatives_RankingAndSkipOriginal(t *testing.T) {
	mon := date(2025, time.January, 6)
	wed := date(2025, time.January, 8)

	// Понедельник занят 09:00-10:00, среда занята 10:00-11:00
	existing := []*domain.Reservation{
		reservation(1, 5, mon, "09:00", "10:00", domain.StatusConfirmed),
		reservation(2, 5, wed, "10:00", "11:00", domain.StatusConfirmed),
	}

	candidate := CandidateRequest{
		SpaceID:   5,
		Dates:     []time.Time{mon, wed},
		StartTime: "09:00",
		EndTime:   "10:00",
	}

	hours := OperatingHours{OpenTime: "08:00", CloseTime: "12:00"}

	slots, err := FindAlternatives(candidate, 60, existing, hours, 60)
	require.NoError(t, err)

	// Сетка: 08:00, 09:00 (исходный - пропущен), 10:00, 11:00.
	// 08:00 и 11:00 свободны на обеих датах, 10:00-11:00 конфликтует
	// со средой и свободен только на понедельник -> count 1.
	require.Len(t, slots, 3)

	assert.Equal(t, types.TimeString("08:00"), slots[0].StartTime)
	assert.Equal(t, 2, slots[0].AvailableDateCount)

	assert.Equal(t, types.TimeString("11:00"), slots[1].StartTime)
	assert.Equal(t, 2, slots[1].AvailableDateCount)

	assert.Equal(t, types.TimeString("10:00"), slots[2].StartTime)
	assert.Equal(t, 1, slots[2].AvailableDateCount)
	require.Len(t, slots[2].ConflictDates, 1)
	assert.Equal(t, wed, slots[2].ConflictDates[0])

	// Исходный слот никогда не предлагается обратно
	for _, slot := range slots {
		assert.False(t, slot.StartTime == candidate.StartTime && slot.EndTime == candidate.EndTime)
	}
}

func TestFindAlternatives_SlotValidity(t *testing.T) {
	mon := date(2025, time.January, 6)

	existing := []*domain.Reservation{
		reservation(1, 5, mon, "08:00", "12:00", domain.StatusConfirmed),
	}

	candidate := CandidateRequest{
		SpaceID:   5,
		Dates:     []time.Time{mon},
		StartTime: "10:00",
		EndTime:   "12:00",
	}

	hours := OperatingHours{OpenTime: "08:00", CloseTime: "23:00"}

	slots, err := FindAlternatives(candidate, 120, existing, hours, 60)
	require.NoError(t, err)
	require.NotEmpty(t, slots)

	for _, slot := range slots {
		// Каждый слот очищает хотя бы одну дату
		assert.GreaterOrEqual(t, slot.AvailableDateCount, 1)

		// Слот лежит внутри часов работы
		assert.False(t, slot.StartTime.IsBefore(hours.OpenTime))
		assert.False(t, slot.EndTime.IsAfter(hours.CloseTime))

		// Длительность сохранена
		startMin, err := slot.StartTime.Minutes()
		require.NoError(t, err)
		endMin, err := slot.EndTime.Minutes()
		require.NoError(t, err)
		assert.Equal(t, 120, endMin-startMin)
	}

	// Первый возможный слот после занятого утра - 12:00
	assert.Equal(t, types.TimeString("12:00"), slots[0].StartTime)
}

func TestFindAlternatives_FractionalDurationOnHourGrid(t *testing.T) {
	mon := date(2025, time.January, 6)

	candidate := CandidateRequest{
		SpaceID:   5,
		Dates:     []time.Time{mon},
		StartTime: "09:00",
		EndTime:   "10:30",
	}

	hours := OperatingHours{OpenTime: "08:00", CloseTime: "11:00"}

	slots, err := FindAlternatives(candidate, 90, nil, hours, 60)
	require.NoError(t, err)

	// Старты 08:00 и 09:00 (исходный 09:00-10:30 пропускается);
	// 10:00+90мин = 11:30 > 11:00 - отброшен.
	require.Len(t, slots, 1)
	assert.Equal(t, types.TimeString("08:00"), slots[0].StartTime)
	assert.Equal(t, types.TimeString("09:30"), slots[0].EndTime)
}

func TestFindAlternatives_DegenerateHours(t *testing.T) {
	candidate := CandidateRequest{
		SpaceID:   5,
		Dates:     []time.Time{date(2025, time.January, 6)},
		StartTime: "09:00",
		EndTime:   "10:00",
	}

	slots, err := FindAlternatives(candidate, 60, nil, OperatingHours{OpenTime: "22:00", CloseTime: "08:00"}, 60)
	require.NoError(t, err)
	assert.Empty(t, slots)

	slots, err = FindAlternatives(candidate, 60, nil, OperatingHours{OpenTime: "10:00", CloseTime: "10:00"}, 60)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestFindAlternatives_InvalidInput(t *testing.T) {
	candidate := CandidateRequest{
		SpaceID:   5,
		Dates:     []time.Time{date(2025, time.January, 6)},
		StartTime: "09:00",
		EndTime:   "10:00",
	}
	hours := OperatingHours{OpenTime: "08:00", CloseTime: "23:00"}

	_, err := FindAlternatives(candidate, 0, nil, hours, 60)
	require.ErrorIs(t, err, ErrInvalidDuration)

	_, err = FindAlternatives(candidate, -30, nil, hours, 60)
	require.ErrorIs(t, err, ErrInvalidDuration)

	_, err = FindAlternatives(candidate, 60, nil, OperatingHours{OpenTime: "bogus", CloseTime: "23:00"}, 60)
	require.ErrorIs(t, err, types.ErrInvalidFormat)
}

func TestFindAlternatives_DefaultStep(t *testing.T) {
	candidate := CandidateRequest{
		SpaceID:   5,
		Dates:     []time.Time{date(2025, time.January, 6)},
		StartTime: "09:00",
		EndTime:   "10:00",
	}
	hours := OperatingHours{OpenTime: "08:00", CloseTime: "11:00"}

	// Нулевой шаг заменяется шагом по умолчанию (час)
	slots, err := FindAlternatives(candidate, 60, nil, hours, 0)
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.Equal(t, types.TimeString("08:00"), slots[0].StartTime)
	assert.Equal(t, types.TimeString("10:00"), slots[1].StartTime)
}

func TestFindAlternatives_Deterministic(t *testing.T) {
	mon := date(2025, time.January, 6)
	wed := date(2025, time.January, 8)

	existing := []*domain.Reservation{
		reservation(1, 5, mon, "09:00", "10:00", domain.StatusConfirmed),
		reservation(2, 5, wed, "10:00", "11:00", domain.StatusConfirmed),
	}

	candidate := CandidateRequest{
		SpaceID:   5,
		Dates:     []time.Time{mon, wed},
		StartTime: "09:00",
		EndTime:   "10:00",
	}
	hours := OperatingHours{OpenTime: "08:00", CloseTime: "23:00"}

	first, err := FindAlternatives(candidate, 60, existing, hours, 60)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		again, err := FindAlternatives(candidate, 60, existing, hours, 60)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}
