package check_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/zeusvenues/Zeus-SchedulingService/internal/domain"
	configRepo "github.com/zeusvenues/Zeus-SchedulingService/internal/infra/storage/config"
	venueClient "github.com/zeusvenues/Zeus-SchedulingService/internal/integrations/venueservice"
	"github.com/zeusvenues/Zeus-SchedulingService/internal/scheduling"
	"github.com/zeusvenues/Zeus-SchedulingService/pkg/ptr"
)

// UseCase use case проверки доступности слота.
// Вызывается UI на каждое изменение формы бронирования: пересчитывает
// конфликты и подбирает альтернативные слоты. Ничего не записывает.
type UseCase struct {
	reservationRepo ReservationRepository
	configRepo      ConfigRepository
	venueClient     VenueServiceClient
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	configRepo ConfigRepository,
	venueClient VenueServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		configRepo:      configRepo,
		venueClient:     venueClient,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет проверку доступности
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckAvailability: user=%d, venue=%d, space=%d, range=%s-%s",
		req.UserID, req.VenueID, req.SpaceID, req.StartTime, req.EndTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CheckAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем площадку
	venue, err := uc.venueClient.GetVenue(ctx, req.VenueID)
	if err != nil {
		if errors.Is(err, venueClient.ErrVenueNotFound) {
			uc.logger.Warn("CheckAvailability: venue id=%d not found", req.VenueID)
			return nil, ErrVenueNotFound
		}
		uc.logger.Error("CheckAvailability: failed to get venue id=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: failed to get venue: %v", ErrInternal, err)
	}

	// 4. Проверяем существование пространства
	if err := validateSpaceExists(venue, req.SpaceID); err != nil {
		uc.logger.Warn("CheckAvailability: space id=%d not found in venue id=%d", req.SpaceID, req.VenueID)
		return nil, err
	}

	// 5. Получаем конфигурацию расписания с учетом иерархии
	cfg, err := uc.configRepo.GetConfigWithHierarchy(ctx, req.VenueID, ptr.Ptr(req.SpaceID))
	if err != nil && !errors.Is(err, configRepo.ErrConfigNotFound) {
		uc.logger.Error("CheckAvailability: failed to get config: %v", err)
		return nil, fmt.Errorf("%w: failed to get config: %v", ErrInternal, err)
	}

	// Если конфигурация не найдена, используем дефолтные значения
	if cfg == nil {
		cfg = domain.DefaultScheduleConfig()
		uc.logger.Info("CheckAvailability: using default config for venue=%d, space=%d",
			req.VenueID, req.SpaceID)
	} else {
		uc.logger.Info("CheckAvailability: using config id=%d", cfg.ID)
	}

	// 6. Разворачиваем даты (для блочного бронирования - по дням недели)
	dates := req.Dates
	if req.Recurrence != nil {
		dates = scheduling.ExpandRecurrence(req.Recurrence.StartDate, req.Recurrence.Weekdays, req.Recurrence.EndDate)
		uc.logger.Info("CheckAvailability: recurrence expanded to %d dates", len(dates))
	}

	// Пустое разворачивание - корректный результат "нечего бронировать", не ошибка
	if len(dates) == 0 {
		return &Response{
			VenueID:      req.VenueID,
			SpaceID:      req.SpaceID,
			Dates:        dates,
			OpenTime:     cfg.OpenTime,
			CloseTime:    cfg.CloseTime,
			Conflicts:    []scheduling.ConflictReport{},
			Alternatives: []scheduling.AlternativeSlot{},
		}, nil
	}

	// 7. Валидация дат и диапазона с учетом конфигурации
	if err := validateDates(dates, now, cfg.AdvanceBookingDays); err != nil {
		uc.logger.Warn("CheckAvailability: date validation failed: %v", err)
		return nil, err
	}
	if err := validateAgainstConfig(req.StartTime, req.EndTime, cfg); err != nil {
		uc.logger.Warn("CheckAvailability: range validation failed: %v", err)
		return nil, err
	}

	// 8. Получаем снимок бронирований пространства за весь период
	snapshot, err := uc.loadSnapshot(ctx, req, dates)
	if err != nil {
		uc.logger.Error("CheckAvailability: failed to load reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to load reservations: %v", ErrInternal, err)
	}

	// 9. Ищем конфликты по каждой дате
	candidate := scheduling.CandidateRequest{
		SpaceID:   req.SpaceID,
		Dates:     dates,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	}

	conflicts, err := scheduling.FindConflicts(candidate, snapshot)
	if err != nil {
		uc.logger.Error("CheckAvailability: conflict scan failed: %v", err)
		return nil, fmt.Errorf("%w: conflict scan failed: %v", ErrInternal, err)
	}

	response := &Response{
		VenueID:      req.VenueID,
		SpaceID:      req.SpaceID,
		Dates:        dates,
		OpenTime:     cfg.OpenTime,
		CloseTime:    cfg.CloseTime,
		Conflicts:    conflicts,
		Alternatives: []scheduling.AlternativeSlot{},
	}

	if len(conflicts) == 0 {
		uc.logger.Info("CheckAvailability: slot is free on all %d dates", len(dates))
		return response, nil
	}

	// 10. Есть конфликты - подбираем альтернативные слоты
	startMinutes, _ := req.StartTime.Minutes()
	endMinutes, _ := req.EndTime.Minutes()
	duration := endMinutes - startMinutes

	alternatives, err := scheduling.FindAlternatives(
		candidate,
		duration,
		snapshot,
		scheduling.OperatingHours{OpenTime: cfg.OpenTime, CloseTime: cfg.CloseTime},
		cfg.GridStepMinutes,
	)
	if err != nil {
		uc.logger.Error("CheckAvailability: alternative search failed: %v", err)
		return nil, fmt.Errorf("%w: alternative search failed: %v", ErrInternal, err)
	}

	// Ограничение топ-N - презентационное, применяется здесь, а не в движке
	if len(alternatives) > cfg.SuggestionLimit {
		alternatives = alternatives[:cfg.SuggestionLimit]
	}
	response.Alternatives = alternatives

	uc.logger.Info("CheckAvailability: %d conflicting dates, %d alternatives suggested",
		len(conflicts), len(alternatives))

	return response, nil
}

// loadSnapshot загружает бронирования пространства за период min..max дат
func (uc *UseCase) loadSnapshot(ctx context.Context, req *Request, dates []time.Time) ([]*domain.Reservation, error) {
	minDate, maxDate := dates[0], dates[0]
	for _, d := range dates[1:] {
		if d.Before(minDate) {
			minDate = d
		}
		if d.After(maxDate) {
			maxDate = d
		}
	}

	filter := domain.VenueReservationsFilter{
		VenueID:          req.VenueID,
		SpaceID:          ptr.Ptr(req.SpaceID),
		StartDate:        &minDate,
		EndDate:          &maxDate,
		IncludeCancelled: false, // Отменённые не занимают пространство
	}

	return uc.reservationRepo.GetByVenueWithFilter(ctx, filter)
}
