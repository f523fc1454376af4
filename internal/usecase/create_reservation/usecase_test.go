package create_reservation

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
)

// --- фейки зависимостей ---

type fakeReservationRepo struct {
	snapshot  []*domain.Reservation
	created   []*domain.Reservation
	nextID    int64
	createErr error
}

func (f *fakeReservationRepo) GetByVenueWithFilter(_ context.Context, _ domain.VenueReservationsFilter) ([]*domain.Reservation, error) {
	return f.snapshot, nil
}

func (f *fakeReservationRepo) Create(_ context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	stored := *res
	stored.ID = f.nextID
	stored.CreatedAt = time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)
	f.created = append(f.created, &stored)
	return &stored, nil
}

type fakeConfigRepo struct {
	cfg *domain.VenueScheduleConfig
	err error
}

func (f *fakeConfigRepo) GetConfigWithHierarchy(_ context.Context, _ int64, _ *int64) (*domain.VenueScheduleConfig, error) {
	return f.cfg, f.err
}

type fakeVenueClient struct {
	venue    *venueservice.Venue
	venueErr error
	customer *venueservice.Customer
}

func (f *fakeVenueClient) GetVenue(_ context.Context, _ int64) (*venueservice.Venue, error) {
	return f.venue, f.venueErr
}

func (f *fakeVenueClient) GetCustomerWithGracefulDegradation(_ context.Context, userID int64) *venueservice.Customer {
	if f.customer != nil {
		return f.customer
	}
	// Деградация: клиент недоступен, имя пустое
	return &venueservice.Customer{ID: userID}
}

// fakeTxManager выполняет функцию в том же контексте без настоящей транзакции
type fakeTxManager struct {
	calls int
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
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
	}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newTestUseCase(repo *fakeReservationRepo, cfgRepo *fakeConfigRepo, venues *fakeVenueClient, tx *fakeTxManager, now time.Time) *UseCase {
	uc := NewUseCase(repo, cfgRepo, venues, tx, noopLogger{})
	uc.timeProvider = &fakeTimeProvider{now: now}
	return uc
}

// --- тесты ---

func TestUseCase_Execute_SingleDate(t *testing.T) {
	now := day(2025, time.June, 1)
	target := day(2025, time.June, 10)

	repo := &fakeReservationRepo{}
	tx := &fakeTxManager{}
	venues := &fakeVenueClient{venue: testVenue(), customer: &venueservice.Customer{ID: 42, Name: "Иван Петров"}}
	uc := newTestUseCase(repo, &fakeConfigRepo{cfg: testConfig()}, venues, tx, now)

	resp, err := uc.Execute(context.Background(), &Request{
		UserID:    42,
		VenueID:   1,
		SpaceID:   5,
		Dates:     []time.Time{target},
		StartTime: "18:00",
		EndTime:   "19:00",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, tx.calls)
	require.Len(t, resp.Reservations, 1)
	assert.Equal(t, target, resp.Reservations[0].Date)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Reservations[0].Status)
	assert.Nil(t, resp.BlockID) // разовая запись блока не образует
	assert.Equal(t, "Иван Петров", resp.CustomerName)

	require.Len(t, repo.created, 1)
	assert.Equal(t, domain.StatusConfirmed, repo.created[0].Status)
	assert.Equal(t, "Иван Петров", repo.created[0].CustomerName)
	assert.Nil(t, repo.created[0].BlockID)
}

func TestUseCase_Execute_BlockSharesBlockID(t *testing.T) {
	now := day(2025, time.June, 1)

	repo := &fakeReservationRepo{}
	venues := &fakeVenueClient{venue: testVenue()}
	uc := newTestUseCase(repo, &fakeConfigRepo{cfg: testConfig()}, venues, &fakeTxManager{}, now)

	// 2025-06-02 - понедельник: три понедельника подряд
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

	require.NotNil(t, resp.BlockID)
	assert.Len(t, *resp.BlockID, 16) // hex от 8 случайных байт
	require.Len(t, resp.Reservations, 3)

	require.Len(t, repo.created, 3)
	for _, res := range repo.created {
		require.NotNil(t, res.BlockID)
		assert.Equal(t, *resp.BlockID, *res.BlockID)
	}
}

func TestUseCase_Execute_SlotConflictRejectsWholeBlock(t *testing.T) {
	now := day(2025, time.June, 1)

	// Второй понедельник уже занят
	repo := &fakeReservationRepo{
		snapshot: []*domain.Reservation{
			{
				ID:        1,
				UserID:    7,
				SpaceID:   5,
				Date:      day(2025, time.June, 9),
				StartTime: "18:00",
				EndTime:   "19:00",
				Status:    domain.StatusConfirmed,
			},
		},
	}
	venues := &fakeVenueClient{venue: testVenue()}
	uc := newTestUseCase(repo, &fakeConfigRepo{cfg: testConfig()}, venues, &fakeTxManager{}, now)

	_, err := uc.Execute(context.Background(), &Request{
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
	require.ErrorIs(t, err, ErrSlotConflict)

	// Всё или ничего: ни одна дата блока не записана
	assert.Empty(t, repo.created)
}

func TestUseCase_Execute_EmptyRecurrence(t *testing.T) {
	now := day(2025, time.June, 1)

	repo := &fakeReservationRepo{}
	uc := newTestUseCase(repo, &fakeConfigRepo{cfg: testConfig()},
		&fakeVenueClient{venue: testVenue()}, &fakeTxManager{}, now)

	_, err := uc.Execute(context.Background(), &Request{
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
	require.ErrorIs(t, err, ErrEmptyRecurrence)
	assert.Empty(t, repo.created)
}

func TestUseCase_Execute_CustomerLookupDegradesGracefully(t *testing.T) {
	now := day(2025, time.June, 1)
	target := day(2025, time.June, 10)

	repo := &fakeReservationRepo{}
	// customer не задан: фейк отвечает деградированным клиентом без имени
	uc := newTestUseCase(repo, &fakeConfigRepo{cfg: testConfig()},
		&fakeVenueClient{venue: testVenue()}, &fakeTxManager{}, now)

	resp, err := uc.Execute(context.Background(), &Request{
		UserID:    42,
		VenueID:   1,
		SpaceID:   5,
		Dates:     []time.Time{target},
		StartTime: "18:00",
		EndTime:   "19:00",
	})
	require.NoError(t, err)

	// Бронирование создано, несмотря на недоступность клиентского сервиса
	assert.Empty(t, resp.CustomerName)
	require.Len(t, repo.created, 1)
}

func TestUseCase_Execute_DefaultConfigFallback(t *testing.T) {
	now := day(2025, time.June, 1)
	target := day(2025, time.June, 10)

	repo := &fakeReservationRepo{}
	uc := newTestUseCase(repo, &fakeConfigRepo{err: configRepo.ErrConfigNotFound},
		&fakeVenueClient{venue: testVenue()}, &fakeTxManager{}, now)

	_, err := uc.Execute(context.Background(), &Request{
		UserID:    42,
		VenueID:   1,
		SpaceID:   5,
		Dates:     []time.Time{target},
		StartTime: "18:00",
		EndTime:   "19:00",
	})
	require.NoError(t, err)
	require.Len(t, repo.created, 1)
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
			&fakeVenueClient{venueErr: venueservice.ErrVenueNotFound}, &fakeTxManager{}, now)

		_, err := uc.Execute(context.Background(), validRequest())
		require.ErrorIs(t, err, ErrVenueNotFound)
	})

	t.Run("space not found", func(t *testing.T) {
		uc := newTestUseCase(&fakeReservationRepo{}, &fakeConfigRepo{cfg: testConfig()},
			&fakeVenueClient{venue: testVenue()}, &fakeTxManager{}, now)

		req := validRequest()
		req.SpaceID = 99
		_, err := uc.Execute(context.Background(), req)
		require.ErrorIs(t, err, ErrSpaceNotFound)
	})

	t.Run("date in the past", func(t *testing.T) {
		uc := newTestUseCase(&fakeReservationRepo{}, &fakeConfigRepo{cfg: testConfig()},
			&fakeVenueClient{venue: testVenue()}, &fakeTxManager{}, now)

		req := validRequest()
		req.Dates = []time.Time{day(2025, time.May, 20)}
		_, err := uc.Execute(context.Background(), req)
		require.ErrorIs(t, err, ErrInvalidDate)
	})

	t.Run("duration below minimum", func(t *testing.T) {
		uc := newTestUseCase(&fakeReservationRepo{}, &fakeConfigRepo{cfg: testConfig()},
			&fakeVenueClient{venue: testVenue()}, &fakeTxManager{}, now)

		req := validRequest()
		req.EndTime = "18:30"
		_, err := uc.Execute(context.Background(), req)
		require.ErrorIs(t, err, ErrDurationTooShort)
	})

	t.Run("range outside operating hours", func(t *testing.T) {
		uc := newTestUseCase(&fakeReservationRepo{}, &fakeConfigRepo{cfg: testConfig()},
			&fakeVenueClient{venue: testVenue()}, &fakeTxManager{}, now)

		req := validRequest()
		req.StartTime = "07:00"
		req.EndTime = "08:00"
		_, err := uc.Execute(context.Background(), req)
		require.ErrorIs(t, err, ErrOutsideOperatingHours)
	})

	t.Run("insert failure wraps internal error", func(t *testing.T) {
		repo := &fakeReservationRepo{createErr: assert.AnError}
		uc := newTestUseCase(repo, &fakeConfigRepo{cfg: testConfig()},
			&fakeVenueClient{venue: testVenue()}, &fakeTxManager{}, now)

		_, err := uc.Execute(context.Background(), validRequest())
		require.ErrorIs(t, err, ErrInternal)
	})
}

// Фильтр снимка и кандидат строятся по тому же пространству, что и запрос
func TestUseCase_Execute_CreatedFieldsMatchRequest(t *testing.T) {
	now := day(2025, time.June, 1)
	target := day(2025, time.June, 10)
	notes := ptr.Ptr("день рождения")

	repo := &fakeReservationRepo{}
	uc := newTestUseCase(repo, &fakeConfigRepo{cfg: testConfig()},
		&fakeVenueClient{venue: testVenue()}, &fakeTxManager{}, now)

	resp, err := uc.Execute(context.Background(), &Request{
		UserID:    42,
		VenueID:   1,
		SpaceID:   5,
		Dates:     []time.Time{target},
		StartTime: "18:00",
		EndTime:   "20:00",
		Notes:     notes,
	})
	require.NoError(t, err)

	require.Len(t, repo.created, 1)
	created := repo.created[0]
	assert.Equal(t, int64(42), created.UserID)
	assert.Equal(t, int64(1), created.VenueID)
	assert.Equal(t, int64(5), created.SpaceID)
	assert.Equal(t, notes, created.Notes)
	assert.Equal(t, notes, resp.Notes)
	assert.False(t, resp.CreatedAt.IsZero())
}
