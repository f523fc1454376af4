package create_reservation

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/zeusvenues/Zeus-SchedulingService/internal/domain"
	configRepo "github.com/zeusvenues/Zeus-SchedulingService/internal/infra/storage/config"
	venueClient "github.com/zeusvenues/Zeus-SchedulingService/internal/integrations/venueservice"
	"github.com/zeusvenues/Zeus-SchedulingService/internal/scheduling"
	"github.com/zeusvenues/Zeus-SchedulingService/pkg/ptr"
)

// UseCase use case для создания бронирования (разового или блочного)
type UseCase struct {
	reservationRepo ReservationRepository
	configRepo      ConfigRepository
	venueClient     VenueServiceClient
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	configRepo ConfigRepository,
	venueClient VenueServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		configRepo:      configRepo,
		venueClient:     venueClient,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания бронирования.
// Проверка конфликтов и вставка выполняются в сериализуемой транзакции,
// чтобы два пользователя не заняли один слот одновременно.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: user=%d, venue=%d, space=%d, range=%s-%s",
		req.UserID, req.VenueID, req.SpaceID, req.StartTime, req.EndTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем площадку
	venue, err := uc.venueClient.GetVenue(ctx, req.VenueID)
	if err != nil {
		if errors.Is(err, venueClient.ErrVenueNotFound) {
			uc.logger.Warn("CreateReservation: venue id=%d not found", req.VenueID)
			return nil, ErrVenueNotFound
		}
		uc.logger.Error("CreateReservation: failed to get venue id=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: failed to get venue: %v", ErrInternal, err)
	}

	// 4. Проверяем существование пространства
	if err := validateSpaceExists(venue, req.SpaceID); err != nil {
		uc.logger.Warn("CreateReservation: space id=%d not found in venue id=%d", req.SpaceID, req.VenueID)
		return nil, err
	}

	// 5. Разворачиваем даты блочного бронирования
	dates := req.Dates
	var blockID *string
	if req.Recurrence != nil {
		dates = scheduling.ExpandRecurrence(req.Recurrence.StartDate, req.Recurrence.Weekdays, req.Recurrence.EndDate)
		if len(dates) == 0 {
			uc.logger.Warn("CreateReservation: recurrence expands to no dates")
			return nil, ErrEmptyRecurrence
		}
		uc.logger.Info("CreateReservation: recurrence expanded to %d dates", len(dates))
	}
	if len(dates) > 1 {
		id, err := newBlockID()
		if err != nil {
			return nil, fmt.Errorf("%w: failed to generate block id: %v", ErrInternal, err)
		}
		blockID = &id
	}

	// 6. Получаем имя клиента для денормализации (с graceful degradation)
	customer := uc.venueClient.GetCustomerWithGracefulDegradation(ctx, req.UserID)

	// Переменная для хранения результата
	result := &Response{
		UserID:       req.UserID,
		VenueID:      req.VenueID,
		SpaceID:      req.SpaceID,
		BlockID:      blockID,
		CustomerName: customer.Name,
		Notes:        req.Notes,
	}

	// 7. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 7.1. Получаем конфигурацию расписания с учетом иерархии
		cfg, err := uc.configRepo.GetConfigWithHierarchy(txCtx, req.VenueID, ptr.Ptr(req.SpaceID))
		if err != nil && !errors.Is(err, configRepo.ErrConfigNotFound) {
			uc.logger.Error("CreateReservation: failed to get config: %v", err)
			return fmt.Errorf("%w: failed to get config: %v", ErrInternal, err)
		}
		if cfg == nil {
			cfg = domain.DefaultScheduleConfig()
			uc.logger.Info("CreateReservation: using default config for venue=%d, space=%d",
				req.VenueID, req.SpaceID)
		} else {
			uc.logger.Info("CreateReservation: using config id=%d", cfg.ID)
		}

		// 7.2. Валидация дат и диапазона с учетом конфигурации
		if err := validateDates(dates, now, cfg.AdvanceBookingDays); err != nil {
			uc.logger.Warn("CreateReservation: date validation failed: %v", err)
			return err
		}
		if err := validateAgainstConfig(req.StartTime, req.EndTime, cfg); err != nil {
			uc.logger.Warn("CreateReservation: range validation failed: %v", err)
			return err
		}

		// 7.3. Получаем снимок бронирований с блокировкой (FOR UPDATE)
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

		snapshot, err := uc.reservationRepo.GetByVenueWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to load reservations: %v", err)
			return fmt.Errorf("%w: failed to load reservations: %v", ErrInternal, err)
		}

		// 7.4. Проверяем конфликты по каждой дате
		candidate := scheduling.CandidateRequest{
			SpaceID:   req.SpaceID,
			Dates:     dates,
			StartTime: req.StartTime,
			EndTime:   req.EndTime,
		}

		conflicts, err := scheduling.FindConflicts(candidate, snapshot)
		if err != nil {
			uc.logger.Error("CreateReservation: conflict scan failed: %v", err)
			return fmt.Errorf("%w: conflict scan failed: %v", ErrInternal, err)
		}

		if len(conflicts) > 0 {
			uc.logger.Warn("CreateReservation: %d of %d dates conflict, rejecting",
				len(conflicts), len(dates))
			return fmt.Errorf("%w: %d of %d dates are taken", ErrSlotConflict, len(conflicts), len(dates))
		}

		// 7.5. Создаем бронирование на каждую дату
		for _, date := range dates {
			res := &domain.Reservation{
				UserID:       req.UserID,
				VenueID:      req.VenueID,
				SpaceID:      req.SpaceID,
				Date:         date,
				StartTime:    req.StartTime,
				EndTime:      req.EndTime,
				Status:       domain.StatusConfirmed,
				BlockID:      blockID,
				CustomerName: customer.Name,
				Notes:        req.Notes,
			}

			created, err := uc.reservationRepo.Create(txCtx, res)
			if err != nil {
				uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
				return fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
			}

			result.Reservations = append(result.Reservations, CreatedReservation{
				ID:        created.ID,
				Date:      created.Date,
				StartTime: created.StartTime,
				EndTime:   created.EndTime,
				Status:    string(created.Status),
			})
			result.CreatedAt = created.CreatedAt
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateReservation: successfully created %d reservation(s) for user=%d",
		len(result.Reservations), req.UserID)

	return result, nil
}

// newBlockID генерирует идентификатор блочного бронирования (16 hex символов)
func newBlockID() (string, error) {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
