package check_availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusvenues/Zeus-SchedulingService/internal/domain"
	configRepo "github.com/zeusvenues/Zeus-SchedulingService/internal/infra/storage/config"
	"github.com/zeusvenues/Zeus-SchedulingService/internal/integrations/venueservice"
	"github.com/zeusvenues/Zeus-SchedulingService/internal/scheduling"
	"github.com/zeusvenues/Zeus-SchedulingService/pkg/ptr"
	"github.com/zeusvenues/Zeus-SchedulingService/pkg/types"
)

// --- фейки зависимостей ---

type fakeReservationRepo struct {
	reservations []*domain.Reservation
	err          error
	lastFilter   *domain.VenueReservationsFilter
}

func (f *fakeReservationRepo) GetByVenueWithFilter(_ context.Context, filter domain.VenueReservationsFilter) ([]*domain.Reservation, error) {
	f.lastFilter = &filter
	return f.reservations, f.err
}

type fakeConfigRepo struct {
	cfg *domain.VenueScheduleConfig
	err error
}

func (f *fakeConfigRepo) GetConfigWithHierarchy(_ context.Context, _ int64, _ *int64) (*domain.VenueScheduleConfig, error) {
	return f.cfg, f.err
}

type fakeVenueClient struct {
	venue *venueservice.Venue
	err   error
}

func (f *fakeVenueClient) GetVenue(_ context.Context, _ int64) (*venueservice.Venue, error) {
	return f.venue, f.err
}

type fakeTimeProvider struct {
	now time.Time
}

func (f *fakeTimeProvider) Now() time.Time { return f.now }

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

// --- фикстуры ---

func testVenue() *venueservice.Venue {
	return &venueservice.Venue{
		ID:   1,
		Name: "Zeus Arena",
		Spaces: []venueservice.Space{
			{ID: 5, VenueID: 1, Name: "Поле 1"},
			{ID: 6, VenueID: 1, Name: "Поле 2"},
		},
	}
}

func testConfig() *domain.VenueScheduleConfig {
	return &domain.VenueScheduleConfig{
		ID:                 10,
		VenueID:            1,
		OpenTime:           "08:00",
		CloseTime:          "23:00",
		MinDurationMinutes: 60,
		GridStepMinutes:    60,
		SuggestionLimit:    5,
		AdvanceBookingDays: 0,
	}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newTestUseCase(repo *fakeReservationRepo, cfgRepo *fakeConfigRepo, venues *fakeVenueClient, now time.Time) *UseCase {
	uc := NewUseCase(repo, cfgRepo, venues, noopLogger{})
	uc.timeProvider = &fakeTimeProvider{now: now}
	return uc
}

// --- тесты ---

func TestUseCase_Execute_FreeSlot(t *testing.T) {
	now := day(2025, time.June, 1)
	target := day(2025, time.June, 10)

	repo := &fakeReservationRepo{}
	uc := newTestUseCase(repo, &fakeConfigRepo{cfg: testConfig()}, &fakeVenueClient{venue: testVenue()}, now)

	resp, err := uc.Execute(context.Background(), &Request{
		UserID:    42,
		VenueID:   1,
		SpaceID:   5,
		Dates:     []time.Time{target},
		StartTime: "18:00",
		EndTime:   "19:00",
	})
	require.NoError(t, err)

	assert.True(t, resp.IsAvailable())
	assert.Empty(t, resp.Conflicts)
	assert.Empty(t, resp.Alternatives)
	assert.Equal(t, types.TimeString("08:00"), resp.OpenTime)
	assert.Equal(t, types.TimeString("23:00"), resp.CloseTime)

	// Снимок запрашивается без отменённых и только по нужному пространству
	require.NotNil(t, repo.lastFilter)
	assert.False(t, repo.lastFilter.IncludeCancelled)
	require.NotNil(t, repo.lastFilter.SpaceID)
	assert.Equal(t, int64(5), *repo.lastFilter.SpaceID)
}

func TestUseCase_Execute_ConflictWithAlternatives(t *testing.T) {
	now := day(2025, time.June, 1)
	target := day(2025, time.June, 10)

	repo := &fakeReservationRepo{
		reservations: []*domain.Reservation{
			{
				ID:        1,
				UserID:    7,
				SpaceID:   5,
				Date:      target,
				StartTime: "18:00",
				EndTime:   "20:00",
				Status:    domain.StatusConfirmed,
			},
		},
	}
	uc := newTestUseCase(repo, &fakeConfigRepo{cfg: testConfig()}, &fakeVenueClient{venue: testVenue()}, now)

	resp, err := uc.Execute(context.Background(), &Request{
		UserID:    42,
		VenueID:   1,
		SpaceID:   5,
		Dates:     []time.Time{target},
		StartTime: "19:00",
		EndTime:   "20:00",
	})
	require.NoError(t, err)

	assert.False(t, resp.IsAvailable())
	require.Len(t, resp.Conflicts, 1)
	assert.Equal(t, target, resp.Conflicts[0].Date)

	require.NotEmpty(t, resp.Alternatives)
	assert.LessOrEqual(t, len(resp.Alternatives), testConfig().SuggestionLimit)
	for _, alt := range resp.Alternatives {
		// Альтернативы не пересекаются с занятым слотом
		assert.False(t, scheduling.RangesOverlap(alt.StartTime, alt.EndTime, "18:00", "20:00"))
	}
}

func TestUseCase_Execute_AlternativesTruncatedToLimit(t *testing.T) {
	now := day(2025, time.June, 1)
	target := day(2025, time.June, 10)

	cfg := testConfig()
	cfg.SuggestionLimit = 2

	repo := &fakeReservationRepo{
		reservations: []*domain.Reservation{
			{
				ID:        1,
				UserID:    7,
				SpaceID:   5,
				Date:      target,
				StartTime: "18:00",
				EndTime:   "19:00",
				Status:    domain.StatusConfirmed,
			},
		},
	}
	uc := newTestUseCase(repo, &fakeConfigRepo{cfg: cfg}, &fakeVenueClient{venue: testVenue()}, now)

	resp, err := uc.Execute(context.Background(), &Request{
		UserID:    42,
		VenueID:   1,
		SpaceID:   5,
		Dates:     []time.Time{target},
		StartTime: "18:00",
		EndTime:   "19:00",
	})
	require.NoError(t, err)

	// Свободных часов в сетке гораздо больше двух - ответ обрезан до лимита
	assert.Len(t, resp.Alternatives, 2)
}

func TestUseCase_Execute_RecurrenceExpansion(t *testing.T) {
	now := day(2025, time.June, 1)

	repo := &fakeReservationRepo{}
	uc := newTestUseCase(repo, &fakeConfigRepo{cfg: testConfig()}, &fakeVenueClient{venue: testVenue()}, now)

	// 2025-06-02 - понедельник
	resp, err := uc.Execute(context.Background(), &Request{
		UserID:  42,
		VenueID: 1,
		SpaceID: 5,
		Recurrence: &Recurrence{
			StartDate: day(2025, time.June, 2),
			Weekdays:  scheduling.NewWeekdaySet(time.Monday),
			EndDate:   day(2025, time.June, 16),
		},
		StartTime: "18:00",
		EndTime:   "19:00",
	})
	require.NoError(t, err)

	want := []time.Time{
		day(2025, time.June, 2),
		day(2025, time.June, 9),
		day(2025, time.June, 16),
	}
	assert.Equal(t, want, resp.Dates)
	assert.True(t, resp.IsAvailable())
}

func TestUseCase_Execute_EmptyRecurrenceIsNotAnError(t *testing.T) {
	now := day(2025, time.June, 1)

	uc := newTestUseCase(&fakeReservationRepo{}, &fakeConfigRepo{cfg: testConfig()}, &fakeVenueClient{venue: testVenue()}, now)

	resp, err := uc.Execute(context.Background(), &Request{
		UserID:  42,
		VenueID: 1,
		SpaceID: 5,
		Recurrence: &Recurrence{
			StartDate: day(2025, time.June, 2),
			Weekdays:  scheduling.WeekdaySet{},
			EndDate:   day(2025, time.June, 16),
		},
		StartTime: "18:00",
		EndTime:   "19:00",
	})
	require.NoError(t, err)

	assert.Empty(t, resp.Dates)
	assert.True(t, resp.IsAvailable())
}

func TestUseCase_Execute_DefaultConfigFallback(t *testing.T) {
	now := day(2025, time.June, 1)
	target := day(2025, time.June, 10)

	uc := newTestUseCase(
		&fakeReservationRepo{},
		&fakeConfigRepo{err: configRepo.ErrConfigNotFound},
		&fakeVenueClient{venue: testVenue()},
		now,
	)

	resp, err := uc.Execute(context.Background(), &Request{
		UserID:    42,
		VenueID:   1,
		SpaceID:   5,
		Dates:     []time.Time{target},
		StartTime: "18:00",
		EndTime:   "19:00",
	})
	require.NoError(t, err)

	def := domain.DefaultScheduleConfig()
	assert.Equal(t, def.OpenTime, resp.OpenTime)
	assert.Equal(t, def.CloseTime, resp.CloseTime)
}

func TestUseCase_Execute_Errors(t *testing.T) {
	now := day(2025, time.June, 1)
	target := day(2025, time.June, 10)

	validRequest := func() *Request {
		return &Request{
			UserID:    42,
			VenueID:   1,
			SpaceID:   5,
			Dates:     []time.Time{target},
			StartTime: "18:00",
			EndTime:   "19:00",
		}
	}

	t.Run("venue not found", func(t *testing.T) {
		uc := newTestUseCase(&fakeReservationRepo{}, &fakeConfigRepo{cfg: testConfig()},
			&fakeVenueClient{err: venueservice.ErrVenueNotFound}, now)

		_, err := uc.Execute(context.Background(), validRequest())
		require.ErrorIs(t, err, ErrVenueNotFound)
	})

	t.Run("space not found", func(t *testing.T) {
		uc := newTestUseCase(&fakeReservationRepo{}, &fakeConfigRepo{cfg: testConfig()},
			&fakeVenueClient{venue: testVenue()}, now)

		req := validRequest()
		req.SpaceID = 99
		_, err := uc.Execute(context.Background(), req)
		require.ErrorIs(t, err, ErrSpaceNotFound)
	})

	t.Run("date in the past", func(t *testing.T) {
		uc := newTestUseCase(&fakeReservationRepo{}, &fakeConfigRepo{cfg: testConfig()},
			&fakeVenueClient{venue: testVenue()}, now)

		req := validRequest()
		req.Dates = []time.Time{day(2025, time.May, 20)}
		_, err := uc.Execute(context.Background(), req)
		require.ErrorIs(t, err, ErrInvalidDate)
	})

	t.Run("date beyond advance booking limit", func(t *testing.T) {
		cfg := testConfig()
		cfg.AdvanceBookingDays = 7
		uc := newTestUseCase(&fakeReservationRepo{}, &fakeConfigRepo{cfg: cfg},
			&fakeVenueClient{venue: testVenue()}, now)

		_, err := uc.Execute(context.Background(), validRequest())
		require.ErrorIs(t, err, ErrDateTooFarInFuture)
	})

	t.Run("duration below minimum", func(t *testing.T) {
		uc := newTestUseCase(&fakeReservationRepo{}, &fakeConfigRepo{cfg: testConfig()},
			&fakeVenueClient{venue: testVenue()}, now)

		req := validRequest()
		req.EndTime = "18:30"
		_, err := uc.Execute(context.Background(), req)
		require.ErrorIs(t, err, ErrDurationTooShort)
	})

	t.Run("range outside operating hours", func(t *testing.T) {
		uc := newTestUseCase(&fakeReservationRepo{}, &fakeConfigRepo{cfg: testConfig()},
			&fakeVenueClient{venue: testVenue()}, now)

		req := validRequest()
		req.StartTime = "22:30"
		req.EndTime = "23:30"
		_, err := uc.Execute(context.Background(), req)
		require.ErrorIs(t, err, ErrOutsideOperatingHours)
	})

	t.Run("dates and recurrence are mutually exclusive", func(t *testing.T) {
		uc := newTestUseCase(&fakeReservationRepo{}, &fakeConfigRepo{cfg: testConfig()},
			&fakeVenueClient{venue: testVenue()}, now)

		req := validRequest()
		req.Recurrence = &Recurrence{
			StartDate: target,
			Weekdays:  scheduling.NewWeekdaySet(time.Monday),
			EndDate:   target.AddDate(0, 0, 7),
		}
		_, err := uc.Execute(context.Background(), req)
		require.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("recurrence window too long", func(t *testing.T) {
		uc := newTestUseCase(&fakeReservationRepo{}, &fakeConfigRepo{cfg: testConfig()},
			&fakeVenueClient{venue: testVenue()}, now)

		req := validRequest()
		req.Dates = nil
		req.Recurrence = &Recurrence{
			StartDate: target,
			Weekdays:  scheduling.NewWeekdaySet(time.Monday),
			EndDate:   target.AddDate(0, 0, domain.MaxRecurrenceWindowDays+1),
		}
		_, err := uc.Execute(context.Background(), req)
		require.ErrorIs(t, err, ErrRecurrenceTooLong)
	})

	t.Run("repository failure wraps internal error", func(t *testing.T) {
		uc := newTestUseCase(&fakeReservationRepo{err: assert.AnError}, &fakeConfigRepo{cfg: testConfig()},
			&fakeVenueClient{venue: testVenue()}, now)

		_, err := uc.Execute(context.Background(), validRequest())
		require.ErrorIs(t, err, ErrInternal)
	})
}

// Убеждаемся, что фильтр снимка покрывает весь период блочного бронирования
func TestUseCase_Execute_SnapshotCoversWholePeriod(t *testing.T) {
	now := day(2025, time.June, 1)

	repo := &fakeReservationRepo{}
	uc := newTestUseCase(repo, &fakeConfigRepo{cfg: testConfig()}, &fakeVenueClient{venue: testVenue()}, now)

	dates := []time.Time{
		day(2025, time.June, 20),
		day(2025, time.June, 5),
		day(2025, time.June, 12),
	}

	_, err := uc.Execute(context.Background(), &Request{
		UserID:    42,
		VenueID:   1,
		SpaceID:   5,
		Dates:     dates,
		StartTime: "18:00",
		EndTime:   "19:00",
	})
	require.NoError(t, err)

	require.NotNil(t, repo.lastFilter)
	require.NotNil(t, repo.lastFilter.StartDate)
	require.NotNil(t, repo.lastFilter.EndDate)
	assert.Equal(t, day(2025, time.June, 5), *repo.lastFilter.StartDate)
	assert.Equal(t, day(2025, time.June, 20), *repo.lastFilter.EndDate)
	assert.Equal(t, ptr.Ptr(int64(5)), repo.lastFilter.SpaceID)
}
